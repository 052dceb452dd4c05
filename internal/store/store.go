package store

import (
	"sync"

	"jansctl/internal/actions"
	"jansctl/pkg/logging"
)

// Listener is notified after every reduction with the action and the state
// it produced.
type Listener func(act actions.Action, next State)

type subscription struct {
	id int
	fn Listener
}

// Store serializes dispatch over Reduce and fans out notifications.
type Store struct {
	// dispatchMu is held for a whole reduction and its notifications.
	dispatchMu sync.Mutex

	mu     sync.RWMutex
	state  State
	subs   []subscription
	nextID int
}

// New creates a store holding initial.
func New(initial State) *Store {
	return &Store{state: initial}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Select applies fn to a snapshot of the current state.
func Select[T any](s *Store, fn func(State) T) T {
	return fn(s.State())
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			subs := make([]subscription, 0, len(s.subs))
			for _, sub := range s.subs {
				if sub.id != id {
					subs = append(subs, sub)
				}
			}
			s.subs = subs
		})
	}
}

// Dispatch reduces act and notifies subscribers before returning.
func (s *Store) Dispatch(act actions.Action) {
	s.DispatchIf(nil, act)
}

// DispatchIf dispatches act only if cond, evaluated inside the serialized
// section, returns true. No other dispatch can interleave between the check
// and the reduction. A nil cond always dispatches.
func (s *Store) DispatchIf(cond func() bool, act actions.Action) bool {
	if act == nil {
		return false
	}

	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	if cond != nil && !cond() {
		logging.Debug("Store", "Dropped %s", act.Type())
		return false
	}

	s.mu.Lock()
	next := Reduce(s.state, act)
	s.state = next
	subs := s.subs
	s.mu.Unlock()

	logging.Debug("Store", "Reduced %s", act.Type())

	for _, sub := range subs {
		sub.fn(act, next)
	}
	return true
}
