package uistore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/five82/folio/internal/outline"
	"github.com/five82/folio/internal/storage"
)

// recordingStorage counts writes per key on top of an in-memory store.
type recordingStorage struct {
	*storage.Memory
	mu   sync.Mutex
	sets map[string]int
}

func newRecordingStorage() *recordingStorage {
	return &recordingStorage{Memory: storage.NewMemory(), sets: make(map[string]int)}
}

func (r *recordingStorage) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	r.sets[key]++
	r.mu.Unlock()
	return r.Memory.Set(ctx, key, value)
}

func (r *recordingStorage) count(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sets[key]
}

func (r *recordingStorage) value(t *testing.T, key string) string {
	t.Helper()
	v, ok, err := r.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get(%q) error: %v", key, err)
	}
	if !ok {
		t.Fatalf("key %q not stored", key)
	}
	return v
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("toast-%d", n)
	}
}

func newTestStore(t *testing.T, s storage.Storage) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	store := New(Options{
		Storage: s,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:     clock.Now,
		NewID:   sequentialIDs(),
	})
	return store, clock
}

func published(id, collectionID string) outline.Document {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return outline.Document{ID: id, CollectionID: collectionID, PublishedAt: &at}
}

func toastIDs(toasts []Toast) []string {
	ids := make([]string, len(toasts))
	for i, t := range toasts {
		ids[i] = t.ID
	}
	return ids
}

func TestNew_Defaults(t *testing.T) {
	s, _ := newTestStore(t, nil)

	snap := s.Snapshot()
	if snap.Theme != ThemeLight {
		t.Fatalf("Theme = %q, want light", snap.Theme)
	}
	if snap.TOCVisible || snap.EditMode || snap.ProgressBarVisible || snap.MobileSidebarVisible {
		t.Fatalf("flags = %+v, want all false", snap)
	}
	if snap.ActiveModalName != "" || snap.ActiveDocumentID != "" || snap.ActiveCollectionID != "" {
		t.Fatalf("selection = %+v, want empty", snap)
	}
	if len(snap.Toasts) != 0 {
		t.Fatalf("Toasts = %#v, want none", snap.Toasts)
	}
}

func TestShowToast_OrderedNewestFirst(t *testing.T) {
	s, clock := newTestStore(t, nil)

	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, s.ShowToast(fmt.Sprintf("message %d", i), ToastOptions{}))
		clock.Advance(time.Second)
	}
	s.RemoveToast(ids[2])

	ordered := s.OrderedToasts()
	if len(ordered) != 4 {
		t.Fatalf("len(OrderedToasts()) = %d, want 4", len(ordered))
	}
	if !sort.SliceIsSorted(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	}) {
		t.Fatalf("OrderedToasts() not sorted newest first: %v", toastIDs(ordered))
	}
	if ordered[0].ID != ids[4] || ordered[3].ID != ids[0] {
		t.Fatalf("OrderedToasts() = %v, want %s first and %s last", toastIDs(ordered), ids[4], ids[0])
	}
}

func TestShowToast_EqualTimestampsKeepInsertionOrder(t *testing.T) {
	s, _ := newTestStore(t, nil)

	want := []string{
		s.ShowToast("first", ToastOptions{}),
		s.ShowToast("second", ToastOptions{}),
		s.ShowToast("third", ToastOptions{}),
	}

	if got := toastIDs(s.OrderedToasts()); !slices.Equal(got, want) {
		t.Fatalf("OrderedToasts() = %v, want %v", got, want)
	}
}

func TestShowToast_EmptyMessageIsNoop(t *testing.T) {
	s, _ := newTestStore(t, nil)

	var notified int
	s.Subscribe(FieldToasts, func(Field) { notified++ })

	if id := s.ShowToast("", ToastOptions{Type: ToastError}); id != "" {
		t.Fatalf("ShowToast(\"\") = %q, want no id", id)
	}
	if n := len(s.OrderedToasts()); n != 0 {
		t.Fatalf("toast count = %d, want 0", n)
	}
	if notified != 0 {
		t.Fatalf("notified %d times, want 0", notified)
	}
}

func TestShowToast_MergesOptions(t *testing.T) {
	s, clock := newTestStore(t, nil)

	clicked := false
	id := s.ShowToast("Saved", ToastOptions{
		Type:    ToastSuccess,
		Timeout: 3 * time.Second,
		Action:  &ToastAction{Text: "Undo", OnClick: func() { clicked = true }},
	})
	if id == "" {
		t.Fatal("ShowToast returned no id")
	}

	toast, ok := s.Toast(id)
	if !ok {
		t.Fatalf("Toast(%q) not found", id)
	}
	if toast.ID != id || toast.Message != "Saved" || toast.Type != ToastSuccess || toast.Timeout != 3*time.Second {
		t.Fatalf("Toast = %+v, want merged options", toast)
	}
	if !toast.CreatedAt.Equal(clock.Now()) {
		t.Fatalf("CreatedAt = %v, want %v", toast.CreatedAt, clock.Now())
	}
	if toast.Action == nil || toast.Action.Text != "Undo" {
		t.Fatalf("Action = %+v, want Undo", toast.Action)
	}

	toast.Action.OnClick()
	if !clicked {
		t.Fatal("OnClick was not the callback passed in")
	}
}

func TestShowToast_DefaultIDsAreUUIDs(t *testing.T) {
	s := New(Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})

	a := s.ShowToast("a", ToastOptions{})
	b := s.ShowToast("b", ToastOptions{})
	if len(a) != 36 {
		t.Fatalf("id %q is not a UUID", a)
	}
	if a == b {
		t.Fatalf("ids should differ, both %q", a)
	}
}

func TestRemoveToast_UnknownIDIsNoop(t *testing.T) {
	s, _ := newTestStore(t, nil)
	s.ShowToast("hello", ToastOptions{})

	var notified int
	s.Subscribe(FieldToasts, func(Field) { notified++ })

	s.RemoveToast("does-not-exist")
	if n := len(s.OrderedToasts()); n != 1 {
		t.Fatalf("toast count = %d, want 1", n)
	}
	if notified != 0 {
		t.Fatalf("notified %d times, want 0", notified)
	}
}

func TestOrderedToasts_ReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t, nil)
	s.ShowToast("hello", ToastOptions{})

	ordered := s.OrderedToasts()
	ordered[0].Message = "mutated"
	if got := s.OrderedToasts()[0].Message; got != "hello" {
		t.Fatalf("stored message = %q, want hello", got)
	}
}

func TestActiveModal_SetAndClearAsPair(t *testing.T) {
	s, _ := newTestStore(t, nil)

	s.SetActiveModal("x", map[string]any{"a": 1})
	name, props, ok := s.ActiveModal()
	if !ok || name != "x" || !maps.Equal(props, map[string]any{"a": 1}) {
		t.Fatalf("ActiveModal() = %q, %v, %v, want x {a:1}", name, props, ok)
	}

	s.ClearActiveModal()
	name, props, ok = s.ActiveModal()
	if ok || name != "" || props != nil {
		t.Fatalf("after clear ActiveModal() = %q, %v, %v, want unset", name, props, ok)
	}
}

func TestSetActiveModal_EmptyNameClears(t *testing.T) {
	s, _ := newTestStore(t, nil)
	s.SetActiveModal("help", map[string]any{"page": 2})

	s.SetActiveModal("", map[string]any{"orphan": true})
	name, props, ok := s.ActiveModal()
	if ok || name != "" || props != nil {
		t.Fatalf("ActiveModal() = %q, %v, %v, want unset", name, props, ok)
	}
	if snap := s.Snapshot(); snap.ActiveModalProps != nil {
		t.Fatalf("Snapshot props = %v, want nil", snap.ActiveModalProps)
	}
}

func TestSetActiveDocument(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name           string
		doc            outline.Document
		wantCollection string
	}{
		{"published", published("d1", "c-new"), "c-new"},
		{"archived", func() outline.Document { d := published("d1", "c-new"); d.ArchivedAt = &now; return d }(), "c-prior"},
		{"deleted", func() outline.Document { d := published("d1", "c-new"); d.DeletedAt = &now; return d }(), "c-prior"},
		{"draft", outline.Document{ID: "d1", CollectionID: "c-new"}, "c-prior"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t, nil)
			s.SetActiveCollection(outline.Collection{ID: "c-prior"})

			s.SetActiveDocument(tt.doc)
			if got := s.ActiveDocumentID(); got != "d1" {
				t.Fatalf("ActiveDocumentID() = %q, want d1", got)
			}
			if got := s.ActiveCollectionID(); got != tt.wantCollection {
				t.Fatalf("ActiveCollectionID() = %q, want %q", got, tt.wantCollection)
			}
		})
	}
}

func TestClearActiveDocument_ClearsBoth(t *testing.T) {
	s, _ := newTestStore(t, nil)

	check := func(step string) {
		t.Helper()
		if s.ActiveDocumentID() != "" || s.ActiveCollectionID() != "" {
			t.Fatalf("%s: document=%q collection=%q, want both empty", step, s.ActiveDocumentID(), s.ActiveCollectionID())
		}
	}

	s.ClearActiveDocument()
	check("from empty")

	s.SetActiveDocument(published("d1", "c1"))
	s.ClearActiveDocument()
	check("after open")

	s.SetActiveCollection(outline.Collection{ID: "c2"})
	s.ClearActiveDocument()
	check("collection only")
}

func TestActiveCollection_Independent(t *testing.T) {
	s, _ := newTestStore(t, nil)

	s.SetActiveDocument(published("d1", "c1"))
	s.SetActiveCollection(outline.Collection{ID: "c2"})
	if s.ActiveDocumentID() != "d1" || s.ActiveCollectionID() != "c2" {
		t.Fatalf("document=%q collection=%q, want d1 c2", s.ActiveDocumentID(), s.ActiveCollectionID())
	}

	s.ClearActiveCollection()
	if s.ActiveDocumentID() != "d1" || s.ActiveCollectionID() != "" {
		t.Fatalf("document=%q collection=%q, want d1 and none", s.ActiveDocumentID(), s.ActiveCollectionID())
	}
}

func TestFlags(t *testing.T) {
	s, _ := newTestStore(t, nil)

	steps := []struct {
		name string
		do   func()
		get  func() bool
		want bool
	}{
		{"show toc", s.ShowTableOfContents, s.TOCVisible, true},
		{"hide toc", s.HideTableOfContents, s.TOCVisible, false},
		{"enable edit", s.EnableEditMode, s.EditMode, true},
		{"disable edit", s.DisableEditMode, s.EditMode, false},
		{"enable progress", s.EnableProgressBar, s.ProgressBarVisible, true},
		{"disable progress", s.DisableProgressBar, s.ProgressBarVisible, false},
		{"toggle sidebar on", s.ToggleMobileSidebar, s.MobileSidebarVisible, true},
		{"toggle sidebar off", s.ToggleMobileSidebar, s.MobileSidebarVisible, false},
		{"toggle sidebar again", s.ToggleMobileSidebar, s.MobileSidebarVisible, true},
		{"hide sidebar", s.HideMobileSidebar, s.MobileSidebarVisible, false},
	}
	for _, step := range steps {
		step.do()
		if got := step.get(); got != step.want {
			t.Fatalf("%s: got %v, want %v", step.name, got, step.want)
		}
	}
}

func TestToggleDarkMode_TwiceRestoresTheme(t *testing.T) {
	rec := newRecordingStorage()
	s, _ := newTestStore(t, rec)

	s.ToggleDarkMode()
	if s.Theme() != ThemeDark {
		t.Fatalf("Theme() = %q, want dark", s.Theme())
	}
	if got := rec.value(t, LegacyThemeKey); got != "dark" {
		t.Fatalf("legacy theme = %q, want dark", got)
	}

	s.ToggleDarkMode()
	if s.Theme() != ThemeLight {
		t.Fatalf("Theme() = %q, want light", s.Theme())
	}
	if got := rec.value(t, LegacyThemeKey); got != "light" {
		t.Fatalf("legacy theme = %q, want light", got)
	}
	if n := rec.count(LegacyThemeKey); n != 2 {
		t.Fatalf("legacy theme writes = %d, want 2", n)
	}
}

func TestSubscribe_NotifiesMatchingFieldsAfterCommit(t *testing.T) {
	s, _ := newTestStore(t, nil)

	var seen []Field
	var seenCollection string
	unsubscribe := s.Subscribe(FieldActiveCollection, func(changed Field) {
		seen = append(seen, changed)
		seenCollection = s.ActiveCollectionID()
	})

	s.EnableEditMode()
	if len(seen) != 0 {
		t.Fatalf("unrelated field notified: %v", seen)
	}

	s.SetActiveDocument(published("d1", "c1"))
	if len(seen) != 1 || seen[0] != FieldActiveDocument|FieldActiveCollection {
		t.Fatalf("seen = %v, want [document|collection]", seen)
	}
	if seenCollection != "c1" {
		t.Fatalf("subscriber read collection %q, want the committed c1", seenCollection)
	}

	s.SetActiveDocument(published("d2", "c1"))
	if len(seen) != 1 {
		t.Fatalf("collection did not change but subscriber ran: %v", seen)
	}

	unsubscribe()
	unsubscribe()
	s.ClearActiveDocument()
	if len(seen) != 1 {
		t.Fatalf("unsubscribed callback ran: %v", seen)
	}
}

func TestField_String(t *testing.T) {
	if got := Field(0).String(); got != "none" {
		t.Fatalf("Field(0).String() = %q, want none", got)
	}
	if got := PersistedFields.String(); got != "theme|toc" {
		t.Fatalf("PersistedFields.String() = %q, want theme|toc", got)
	}
	if !FieldAll.Has(FieldToasts) {
		t.Fatal("FieldAll should include toasts")
	}
	if PersistedFields.Has(FieldEditMode) {
		t.Fatal("edit mode is not persisted")
	}
}
