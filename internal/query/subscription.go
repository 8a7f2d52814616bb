package query

import (
	"sync"

	"github.com/five82/pokedex/internal/state"
)

// Subscription is one observer of a query key.
type Subscription struct {
	id    uint64
	key   Key
	ch    chan state.Status
	cache *Cache
	once  sync.Once
}

// Key returns the subscribed key.
func (s *Subscription) Key() Key {
	return s.key
}

// ID is unique per cache and lets receivers tell subscriptions apart.
func (s *Subscription) ID() uint64 {
	return s.id
}

// C delivers the latest status of the key. Only the newest undelivered status
// is buffered; a slow reader skips intermediate ones. C is closed by
// Unsubscribe.
func (s *Subscription) C() <-chan state.Status {
	return s.ch
}

// Unsubscribe stops delivery and closes C. It does not cancel a running
// request; its result still lands in the cache. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.cache.unsubscribe(s)
	})
}

// deliver replaces any buffered status with status. Callers hold the cache
// lock, so there is exactly one writer.
func (s *Subscription) deliver(status state.Status) {
	for {
		select {
		case s.ch <- status:
			return
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}
