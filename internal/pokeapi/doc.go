// Package pokeapi is the remote data source: a small GET-only HTTP client for
// the public PokeAPI, gjson-based parsers for the two responses the views
// consume, and the query definitions registered with the query cache.
//
// Transport problems (network errors, HTTP statuses of 400 and above) wrap
// ErrTransport. Bodies that are not JSON or lack an expected field wrap
// ErrParse. Callers that only need a yes/no outcome can ignore the
// distinction.
package pokeapi
