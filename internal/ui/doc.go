// Package ui renders the Folio terminal interface with Bubble Tea.
//
// The Model reads catalog data from catalog.Store and keeps every piece of
// view state (theme, open modal, active document and collection, sidebar,
// table of contents, edit mode, progress indicator, toasts) in a
// uistore.Store. Key handlers call store mutators; the model subscribes to
// the fields that affect the document pane and rebuilds the viewport when
// they change.
//
// Layout, left to right: collections sidebar (toggled with s), document
// list, table of contents (toggled with c, only while a document is open)
// and the document pane. Toasts occupy three lines above the footer and are
// removed by a tea.Tick after their timeout.
package ui
