// Package cli defines the folio command tree.
//
//	folio [--config path] [--poll seconds]   run the TUI
//	folio prefs show                          print the stored UI preferences
//	folio prefs reset                         delete them
package cli
