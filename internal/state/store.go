package state

import (
	"fmt"
	"maps"
	"sync"
	"time"
)

// Snapshot is a point-in-time copy of every known query status.
type Snapshot struct {
	Queries     map[string]Status
	LastUpdated time.Time
	LastError   error
	Loading     int
	Succeeded   int
	Failed      int
}

// Store holds query statuses keyed by their canonical query key. The query
// cache is the only writer; views read snapshots. The zero value is ready to use.
type Store struct {
	mu          sync.RWMutex
	queries     map[string]Status
	lastUpdated time.Time
	lastError   error
}

// Set replaces the status for key. Error statuses are also recorded as the
// most recent error for visibility in the header.
func (s *Store) Set(key string, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queries == nil {
		s.queries = make(map[string]Status)
	}
	if status.UpdatedAt.IsZero() {
		status.UpdatedAt = time.Now()
	}
	s.queries[key] = status
	s.lastUpdated = status.UpdatedAt
	if status.Phase == Error {
		s.lastError = status.Err
	}
}

// Get returns the status for key.
func (s *Store) Get(key string) Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queries[key]
}

// Delete forgets key, returning it to Uninitialized.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.queries, key)
	s.lastUpdated = time.Now()
}

// Snapshot returns a copy of the current table.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Queries:     maps.Clone(s.queries),
		LastUpdated: s.lastUpdated,
	}
	if snap.Queries == nil {
		snap.Queries = map[string]Status{}
	}
	if s.lastError != nil {
		snap.LastError = fmt.Errorf("%w", s.lastError)
	}
	for _, status := range s.queries {
		switch status.Phase {
		case Loading:
			snap.Loading++
		case Success:
			snap.Succeeded++
		case Error:
			snap.Failed++
		}
	}
	return snap
}
