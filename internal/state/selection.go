package state

import "sync"

// Selection is the Pokémon currently chosen for the detail view. The zero
// value is NoneSelected.
type Selection struct {
	mu        sync.Mutex
	name      string
	selected  bool
	observers map[int]func(name string, selected bool)
	nextID    int
}

// Select moves to Selected(name) from any state.
func (s *Selection) Select(name string) {
	s.transition(name, true)
}

// Clear moves to NoneSelected.
func (s *Selection) Clear() {
	s.transition("", false)
}

// Current returns the selected name and whether anything is selected.
func (s *Selection) Current() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name, s.selected
}

// Observe registers fn to run after every state change. Re-selecting the
// current name or clearing an empty selection is not a change. The returned
// function removes the observer.
func (s *Selection) Observe(fn func(name string, selected bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.observers == nil {
		s.observers = make(map[int]func(string, bool))
	}
	id := s.nextID
	s.nextID++
	s.observers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.observers, id)
		})
	}
}

func (s *Selection) transition(name string, selected bool) {
	s.mu.Lock()
	if s.selected == selected && s.name == name {
		s.mu.Unlock()
		return
	}
	s.name = name
	s.selected = selected
	observers := make([]func(string, bool), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	// Callbacks run outside the lock so they may read the selection.
	for _, fn := range observers {
		fn(name, selected)
	}
}
