package uistore

import (
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/five82/folio/internal/outline"
	"github.com/five82/folio/internal/storage"
)

// Theme is the colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool { return t == ThemeLight || t == ThemeDark }

// Options configure a Store. Every field is optional.
type Options struct {
	// Storage receives the persisted subset. nil keeps state in memory only.
	Storage storage.Storage
	Logger  *slog.Logger
	Now     func() time.Time
	NewID   func() string
}

// Snapshot is a copy of every field of the store.
type Snapshot struct {
	Theme                Theme
	ActiveModalName      string
	ActiveModalProps     map[string]any
	ActiveDocumentID     string
	ActiveCollectionID   string
	ProgressBarVisible   bool
	EditMode             bool
	TOCVisible           bool
	MobileSidebarVisible bool
	Toasts               []Toast
}

type subscriber struct {
	id   int
	mask Field
	fn   func(changed Field)
}

// Store holds UI state for one session. Construct it once with New and pass
// it to whatever needs it.
//
// Every mutator commits its change, releases the lock, then synchronously
// calls the subscribers whose mask matches the fields that actually changed.
// Subscribers may read the store but must not mutate it.
type Store struct {
	mu      sync.Mutex
	storage storage.Storage
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string

	theme                Theme
	activeModalName      string
	activeModalProps     map[string]any
	activeDocumentID     string
	activeCollectionID   string
	progressBarVisible   bool
	editMode             bool
	tocVisible           bool
	mobileSidebarVisible bool

	toasts       map[string]Toast
	toastSeq     uint64
	toastVersion uint64
	ordered      []Toast
	orderedAt    uint64
	orderedValid bool

	subscribers []subscriber
	nextSubID   int

	// persistMu orders storage writes. Each save reads the state after
	// taking it, so the last write always carries the newest values.
	persistMu sync.Mutex
}

// New builds a store, rehydrates the persisted subset from opts.Storage and
// registers the persistence effect, which runs once immediately.
func New(opts Options) *Store {
	s := &Store{
		storage: opts.Storage,
		logger:  opts.Logger,
		now:     opts.Now,
		newID:   opts.NewID,
		theme:   ThemeLight,
		toasts:  make(map[string]Toast),
	}
	if s.storage == nil {
		s.storage = storage.NewMemory()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}

	prefs := s.rehydrate()
	s.theme = prefs.Theme
	s.tocVisible = prefs.TOCVisible

	s.Subscribe(PersistedFields, func(Field) { s.persist() })
	s.persist()
	return s
}

// Subscribe registers fn to run after any mutation that changes a field in
// mask. The returned function removes the subscription.
func (s *Store) Subscribe(mask Field, fn func(changed Field)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, mask: mask, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.subscribers = slices.DeleteFunc(s.subscribers, func(sub subscriber) bool {
				return sub.id == id
			})
		})
	}
}

// mutate runs fn under the lock and notifies subscribers of the fields it
// reports as changed.
func (s *Store) mutate(fn func() Field) {
	s.mu.Lock()
	changed := fn()
	var notify []subscriber
	if changed != 0 {
		for _, sub := range s.subscribers {
			if sub.mask.Has(changed) {
				notify = append(notify, sub)
			}
		}
	}
	s.mu.Unlock()

	for _, sub := range notify {
		sub.fn(changed)
	}
}

func setBool(dst *bool, v bool, f Field) Field {
	if *dst == v {
		return 0
	}
	*dst = v
	return f
}

func setString(dst *string, v string, f Field) Field {
	if *dst == v {
		return 0
	}
	*dst = v
	return f
}

// ToggleDarkMode flips the theme and also records it under the legacy theme
// key.
func (s *Store) ToggleDarkMode() {
	s.mutate(func() Field {
		if s.theme == ThemeDark {
			s.theme = ThemeLight
		} else {
			s.theme = ThemeDark
		}
		return FieldTheme
	})
	s.persistLegacyTheme()
}

// SetActiveModal opens the modal name with props. An empty name closes the
// modal instead.
func (s *Store) SetActiveModal(name string, props map[string]any) {
	if name == "" {
		s.ClearActiveModal()
		return
	}
	s.mutate(func() Field {
		s.activeModalName = name
		s.activeModalProps = maps.Clone(props)
		return FieldActiveModal
	})
}

// ClearActiveModal closes the modal and drops its props.
func (s *Store) ClearActiveModal() {
	s.mutate(func() Field {
		if s.activeModalName == "" && s.activeModalProps == nil {
			return 0
		}
		s.activeModalName = ""
		s.activeModalProps = nil
		return FieldActiveModal
	})
}

// SetActiveDocument selects doc. Its collection becomes active only when the
// document is published and neither archived nor deleted.
func (s *Store) SetActiveDocument(doc outline.Document) {
	s.mutate(func() Field {
		changed := setString(&s.activeDocumentID, doc.ID, FieldActiveDocument)
		if doc.IsPublished() && !doc.IsArchived() && !doc.IsDeleted() {
			changed |= setString(&s.activeCollectionID, doc.CollectionID, FieldActiveCollection)
		}
		return changed
	})
}

// SetActiveCollection selects c.
func (s *Store) SetActiveCollection(c outline.Collection) {
	s.mutate(func() Field {
		return setString(&s.activeCollectionID, c.ID, FieldActiveCollection)
	})
}

// ClearActiveCollection deselects the collection.
func (s *Store) ClearActiveCollection() {
	s.mutate(func() Field {
		return setString(&s.activeCollectionID, "", FieldActiveCollection)
	})
}

// ClearActiveDocument deselects both the document and the collection.
func (s *Store) ClearActiveDocument() {
	s.mutate(func() Field {
		return setString(&s.activeDocumentID, "", FieldActiveDocument) |
			setString(&s.activeCollectionID, "", FieldActiveCollection)
	})
}

func (s *Store) ShowTableOfContents() {
	s.mutate(func() Field { return setBool(&s.tocVisible, true, FieldTOC) })
}

func (s *Store) HideTableOfContents() {
	s.mutate(func() Field { return setBool(&s.tocVisible, false, FieldTOC) })
}

func (s *Store) EnableEditMode() {
	s.mutate(func() Field { return setBool(&s.editMode, true, FieldEditMode) })
}

func (s *Store) DisableEditMode() {
	s.mutate(func() Field { return setBool(&s.editMode, false, FieldEditMode) })
}

func (s *Store) EnableProgressBar() {
	s.mutate(func() Field { return setBool(&s.progressBarVisible, true, FieldProgressBar) })
}

func (s *Store) DisableProgressBar() {
	s.mutate(func() Field { return setBool(&s.progressBarVisible, false, FieldProgressBar) })
}

func (s *Store) ToggleMobileSidebar() {
	s.mutate(func() Field {
		s.mobileSidebarVisible = !s.mobileSidebarVisible
		return FieldMobileSidebar
	})
}

func (s *Store) HideMobileSidebar() {
	s.mutate(func() Field { return setBool(&s.mobileSidebarVisible, false, FieldMobileSidebar) })
}

// ShowToast adds a toast and returns its id. An empty message adds nothing and
// returns "".
func (s *Store) ShowToast(message string, opts ToastOptions) string {
	if message == "" {
		return ""
	}

	var id string
	s.mutate(func() Field {
		id = s.newID()
		s.toastSeq++
		s.toasts[id] = Toast{
			ID:        id,
			Message:   message,
			CreatedAt: s.now().UTC().Truncate(time.Millisecond),
			Type:      opts.Type,
			Timeout:   opts.Timeout,
			Action:    opts.Action,
			seq:       s.toastSeq,
		}
		s.toastVersion++
		return FieldToasts
	})
	return id
}

// RemoveToast deletes the toast with id. Unknown ids are ignored.
func (s *Store) RemoveToast(id string) {
	s.mutate(func() Field {
		if _, ok := s.toasts[id]; !ok {
			return 0
		}
		delete(s.toasts, id)
		s.toastVersion++
		return FieldToasts
	})
}

// OrderedToasts returns every toast, newest first.
func (s *Store) OrderedToasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.orderedToastsLocked())
}

func (s *Store) orderedToastsLocked() []Toast {
	if s.orderedValid && s.orderedAt == s.toastVersion {
		return s.ordered
	}
	ordered := slices.Collect(maps.Values(s.toasts))
	slices.SortFunc(ordered, newestFirst)
	s.ordered = ordered
	s.orderedAt = s.toastVersion
	s.orderedValid = true
	return s.ordered
}

// Toast returns the toast with id.
func (s *Store) Toast(id string) (Toast, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.toasts[id]
	return t, ok
}

func (s *Store) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// ActiveModal returns the open modal. ok is false when none is open.
func (s *Store) ActiveModal() (name string, props map[string]any, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeModalName, maps.Clone(s.activeModalProps), s.activeModalName != ""
}

func (s *Store) ActiveDocumentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeDocumentID
}

func (s *Store) ActiveCollectionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeCollectionID
}

func (s *Store) ProgressBarVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progressBarVisible
}

func (s *Store) EditMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editMode
}

func (s *Store) TOCVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tocVisible
}

func (s *Store) MobileSidebarVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mobileSidebarVisible
}

// Snapshot returns a copy of the whole store.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Theme:                s.theme,
		ActiveModalName:      s.activeModalName,
		ActiveModalProps:     maps.Clone(s.activeModalProps),
		ActiveDocumentID:     s.activeDocumentID,
		ActiveCollectionID:   s.activeCollectionID,
		ProgressBarVisible:   s.progressBarVisible,
		EditMode:             s.editMode,
		TOCVisible:           s.tocVisible,
		MobileSidebarVisible: s.mobileSidebarVisible,
		Toasts:               slices.Clone(s.orderedToastsLocked()),
	}
}
