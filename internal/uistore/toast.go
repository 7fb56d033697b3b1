package uistore

import (
	"cmp"
	"time"
)

// ToastType is the severity of a toast.
type ToastType string

const (
	ToastWarning ToastType = "warning"
	ToastError   ToastType = "error"
	ToastInfo    ToastType = "info"
	ToastSuccess ToastType = "success"
)

// ToastAction is an inline button rendered with a toast.
type ToastAction struct {
	Text    string `json:"text"`
	OnClick func() `json:"-"`
}

// ToastOptions are merged into a toast when it is shown. Zero values are
// omitted.
type ToastOptions struct {
	Type    ToastType
	Timeout time.Duration
	Action  *ToastAction
}

// Toast is a transient notification. Removal after Timeout is the
// responsibility of whoever showed it.
type Toast struct {
	ID        string        `json:"id"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"createdAt"`
	Type      ToastType     `json:"type,omitempty"`
	Timeout   time.Duration `json:"timeout,omitempty"`
	Action    *ToastAction  `json:"action,omitempty"`

	seq uint64
}

// newestFirst orders toasts by CreatedAt descending. Equal timestamps keep
// insertion order.
func newestFirst(a, b Toast) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}
