// Package query implements the keyed request cache behind the views.
//
// A Key names a registered Endpoint plus its parameters. The first
// Subscribe for a key creates its entry in the Loading phase and starts one
// request; every later subscriber shares that entry and its result. Each
// request runs on its own goroutine. The entry's in-flight flag is checked
// under the cache mutex before a request starts, so a key never has more
// than one request in flight.
//
// Each transition is written to the state.Store and delivered to the key's
// subscriptions. A subscription channel buffers only the newest status; slow
// readers skip intermediate statuses but never see them out of order.
//
// Failures are terminal until Invalidate. There is no retry and no
// cancellation of a running request besides the cache's base context.
package query
