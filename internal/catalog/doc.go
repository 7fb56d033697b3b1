// Package catalog holds the latest documents and collections fetched from the
// wiki so the background poller and the UI can share them.
//
// # Architecture
//
//	Producer (poller):              Consumer (UI):
//	┌──────────────────┐            ┌──────────────────┐
//	│ ListDocuments()  │            │                  │
//	│ ListCollections()│            │                  │
//	│       ↓          │            │                  │
//	│ store.Update()   │───────────→│ store.Snapshot() │
//	│       ↓          │  (mutex)   │       ↓          │
//	│  repeat...       │            │  render list     │
//	└──────────────────┘            └──────────────────┘
//
// # Update Semantics
//
//	store.Update(docs, cols, nil) // replace data, clear error
//	store.Update(nil, nil, err)   // keep data, record error, count failure
//
// Both Update and Snapshot copy slices so neither side can mutate the
// other's view. The zero Store is ready to use.
//
// The catalog never owns UI selection. The UI store keeps only document and
// collection ids and resolves them against a Snapshot when rendering.
package catalog
