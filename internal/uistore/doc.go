// Package uistore holds Folio's client-side UI state: theme, the open modal,
// the selected document and collection, toasts, and visibility flags for the
// table of contents, sidebar and progress bar.
//
// # Persistence
//
// Only the theme and table-of-contents visibility survive restarts. They are
// stored as JSON under StorageKey:
//
//	{"tocVisible":false,"theme":"light"}
//
// New reads that key once. Absent, malformed or unavailable storage yields the
// defaults without an error. Saving is an ordinary subscriber on
// PersistedFields, so it runs after every mutation that really changes one of
// them, plus once right after construction. ToggleDarkMode additionally writes
// the bare theme string under LegacyThemeKey, which is never read back.
//
// # Notification
//
// There is no implicit dependency tracking. Each mutator reports the Fields it
// changed and the store calls matching subscribers synchronously, after the
// change is committed and outside the lock:
//
//	unsubscribe := store.Subscribe(uistore.FieldToasts, func(changed uistore.Field) {
//		render(store.OrderedToasts())
//	})
//	defer unsubscribe()
//
// # Toasts
//
// ShowToast stamps a UUID and the current time (millisecond precision) and
// returns the id. The store never expires toasts itself; callers remove them
// after their Timeout. OrderedToasts is cached and rebuilt only when the toast
// set changes.
package uistore
