// Package state holds the application state shared between the query cache
// and the views.
//
// # Overview
//
// Two containers live here:
//
//   - Store: the query status table. The query cache writes one Status per
//     canonical query key; views read copies through Snapshot.
//   - Selection: the Pokémon chosen for the detail view, a two-state machine
//     (NoneSelected, Selected(name)) with observer callbacks.
//
// # Data Flow
//
//	query.Cache ──Set/Delete──> Store ──Snapshot()──> ui header
//	     │
//	     └── Subscription channels ──> ui listing/detail views
//
//	ui key press ──Select/Clear──> Selection ──observer──> ui remount
//
// # Status Lifecycle
//
// Every key moves strictly Uninitialized → Loading → (Success | Error).
// Success payloads are replaced wholesale on refetch and never modified in
// place, so readers may hold on to Data without copying it.
//
// # Concurrency Model
//
// Store uses a sync.RWMutex: one writer (the cache), many readers. Snapshot
// returns a cloned map so a reader can range over it without holding the lock.
//
// Selection serialises transitions with a mutex and runs observers after the
// lock is released, in no particular order. Observers must not block.
package state
