// Package votebox records one ballot per voter and keeps the tally in memory
// or in a JSON file.
//
// Example usage:
//
//	machine, err := votebox.Open(ctx, votebox.Config{
//	    Candidates: []string{"Alice", "Bob"},
//	    Storage:    votebox.StorageDurable,
//	    Path:       "machine.json",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	outcome, err := machine.CastVote(ctx, votebox.VoteRequest{Voter: "Claude", Candidate: "Alice"})
package votebox

import (
	"context"
	"fmt"

	"github.com/bft-labs/votebox/internal/adapters/fs"
	logadapter "github.com/bft-labs/votebox/internal/adapters/log"
	"github.com/bft-labs/votebox/internal/adapters/memory"
	"github.com/bft-labs/votebox/internal/app"
	"github.com/bft-labs/votebox/internal/domain"
	"github.com/bft-labs/votebox/internal/ports"
)

// Re-exported types. See internal/domain for their rules.
type (
	Controller  = app.Controller
	VoteRequest = app.VoteRequest
	VotingState = domain.VotingState
	Outcome     = domain.Outcome
	OutcomeKind = domain.OutcomeKind
	Voter       = domain.Voter
	Candidate   = domain.Candidate
	Logger      = ports.Logger
	LogField    = ports.Field
)

// Outcome kinds.
const (
	OutcomeAccepted     = domain.OutcomeAccepted
	OutcomeBlank        = domain.OutcomeBlank
	OutcomeInvalid      = domain.OutcomeInvalid
	OutcomeAlreadyVoted = domain.OutcomeAlreadyVoted
)

// Errors returned by Open, CastVote and ReadState.
var (
	ErrStorageUnavailable = domain.ErrStorageUnavailable
	ErrMalformedState     = domain.ErrMalformedState
	ErrInvalidCandidates  = domain.ErrInvalidCandidates
	ErrInvalidConfig      = domain.ErrInvalidConfig
)

// StorageKind selects the storage adapter.
type StorageKind string

const (
	// StorageVolatile keeps the tally in process memory.
	StorageVolatile StorageKind = "volatile"
	// StorageDurable keeps the tally in a JSON file.
	StorageDurable StorageKind = "durable"
)

// DefaultPath is the tally file used by durable storage when Path is empty.
const DefaultPath = fs.DefaultFileName

// Config selects the candidates and the storage of a voting machine.
type Config struct {
	// Candidates is the fixed candidate list. It must be non-empty and hold
	// distinct, non-empty names.
	Candidates []string

	// Storage defaults to StorageVolatile.
	Storage StorageKind

	// Path is the tally file for StorageDurable. Defaults to DefaultPath.
	Path string
}

// Option configures optional behavior of Open.
type Option func(*options)

type options struct {
	logger ports.Logger
}

// WithLogger sets the logger used by the controller and the storage adapter.
// Without it nothing is logged.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Open builds the initial state from cfg.Candidates, opens the configured
// storage and returns a controller over it. With durable storage an existing
// tally file takes precedence over the candidate list.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Controller, error) {
	o := options{logger: logadapter.NewNoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	candidates := make([]domain.Candidate, 0, len(cfg.Candidates))
	for _, c := range cfg.Candidates {
		candidates = append(candidates, domain.Candidate(c))
	}
	initial, err := domain.NewVotingState(candidates)
	if err != nil {
		return nil, err
	}

	store, err := openStorage(ctx, cfg, initial, o.logger)
	if err != nil {
		return nil, err
	}
	return app.NewController(store, o.logger), nil
}

func openStorage(ctx context.Context, cfg Config, initial domain.VotingState, logger ports.Logger) (ports.Storage, error) {
	switch cfg.Storage {
	case "", StorageVolatile:
		return memory.NewStore(initial), nil
	case StorageDurable:
		path := cfg.Path
		if path == "" {
			path = DefaultPath
		}
		return fs.Open(ctx, path, initial, logger)
	default:
		return nil, fmt.Errorf("%w: unknown storage %q", domain.ErrInvalidConfig, cfg.Storage)
	}
}
