package query

import (
	"context"
	"maps"
	"net/url"
	"slices"
	"strings"
)

// Key identifies one cached request: an endpoint name plus its parameters.
// Two keys with the same String() share a cache entry.
type Key struct {
	Endpoint string
	Params   map[string]string
}

// NewKey builds a Key, copying params.
func NewKey(endpoint string, params map[string]string) Key {
	return Key{Endpoint: endpoint, Params: maps.Clone(params)}
}

// String returns the canonical form "endpoint?a=1&b=2" with parameters sorted
// by name. It is used as the store and in-flight key.
func (k Key) String() string {
	if len(k.Params) == 0 {
		return k.Endpoint
	}
	names := make([]string, 0, len(k.Params))
	for name := range k.Params {
		names = append(names, name)
	}
	slices.Sort(names)
	var b strings.Builder
	b.WriteString(k.Endpoint)
	for i, name := range names {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(k.Params[name]))
	}
	return b.String()
}

// Request is a GET relative to the fetcher's base URL.
type Request struct {
	Path  string
	Query url.Values
}

// Endpoint pairs a request builder with a response parser for one named query.
type Endpoint struct {
	Name  string
	Build func(params map[string]string) (Request, error)
	Parse func(body []byte) (any, error)
}

// Fetcher performs the network call for a built Request.
type Fetcher interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
}
