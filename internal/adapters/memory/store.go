// Package memory implements ports.Storage in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/bft-labs/votebox/internal/domain"
)

// Store keeps the voting state behind a lock. It copies the state on the way
// in and on the way out, so callers never hold a live alias of it.
type Store struct {
	mu    sync.RWMutex
	state domain.VotingState
}

// NewStore returns a store seeded with a copy of initial.
func NewStore(initial domain.VotingState) *Store {
	return &Store{state: initial.Clone()}
}

// Load returns a copy of the stored state. It never fails.
func (s *Store) Load(_ context.Context) (domain.VotingState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone(), nil
}

// Save replaces the stored state with a copy of state. It never fails.
func (s *Store) Save(_ context.Context, state domain.VotingState) error {
	next := state.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next
	return nil
}
