package app

import (
	"github.com/five82/pokedex/internal/query"
)

// Prefetch starts the requests for keys without waiting for them. The
// subscriptions are dropped right away; the requests keep running and their
// results stay in the cache for the first real subscriber.
func Prefetch(cache *query.Cache, keys ...query.Key) {
	for _, key := range keys {
		sub, err := cache.Subscribe(key)
		if err != nil {
			continue
		}
		sub.Unsubscribe()
	}
}
