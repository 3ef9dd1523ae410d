package ports

import (
	"context"

	"github.com/bft-labs/votebox/internal/domain"
)

// Storage holds the canonical voting state.
//
// Adapters are seeded with an initial state when they are constructed. Every
// state crossing this boundary is a copy: mutating the result of Load never
// changes what the adapter holds until Save is called.
type Storage interface {
	// Load returns the current state.
	// Fails with domain.ErrStorageUnavailable when the medium cannot be read and
	// with domain.ErrMalformedState when its content cannot be decoded.
	Load(ctx context.Context) (domain.VotingState, error)

	// Save replaces the current state as a whole.
	// Fails with domain.ErrStorageUnavailable on write failure, in which case the
	// previously saved state is left intact.
	Save(ctx context.Context, state domain.VotingState) error
}
