// Package app wires configuration, storage, the catalog poller and the UI
// into the Folio TUI.
//
// Run is the composition root:
//
//  1. Load ~/.config/folio/config.toml (config.Load)
//  2. Open the slog log file
//  3. Open the UI state storage backend, falling back to storage.Disabled
//  4. Choose the catalog source: the wiki API, or a YAML fixture when offline
//  5. Build the uistore.Store and catalog.Store
//  6. Start the Poller and run the UI until the user quits or ctx is cancelled
//
// The Poller refreshes immediately, then on every interval. Consecutive
// failures back off exponentially up to five minutes; errors are recorded in
// the catalog snapshot and never stop polling.
package app
