package tasklist

import (
	"slices"
	"sync"

	"taskgenie/internal/service"
)

// Generation tags one refresh request.
type Generation uint64

// Store owns the task collection. It is replaced wholesale, never patched.
//
// Each refresh takes a ticket from Begin and hands its result to Commit. A
// result is applied only if no newer ticket has been issued since and the
// store has not been closed, so the newest request always wins and late
// responses after Close are dropped.
type Store struct {
	mu     sync.RWMutex
	tasks  []service.Task
	issued Generation
	closed bool
}

// NewStore returns a store seeded with tasks.
func NewStore(tasks []service.Task) *Store {
	return &Store{tasks: slices.Clone(tasks)}
}

// Tasks returns a copy of the collection.
func (s *Store) Tasks() []service.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// Len returns the size of the unfiltered collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Begin issues a ticket for a new refresh.
func (s *Store) Begin() Generation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Commit replaces the collection if gen is still the newest ticket. It
// reports whether the tasks were applied.
func (s *Store) Commit(gen Generation, tasks []service.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.issued {
		return false
	}
	s.tasks = slices.Clone(tasks)
	return true
}

// Close stops the store from accepting further commits.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
