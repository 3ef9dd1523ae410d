// Package app sequences storage and the voting rules into the two operations
// front ends use: casting a vote and reading the current state.
package app

import (
	"context"
	"sync"

	logadapter "github.com/bft-labs/votebox/internal/adapters/log"
	"github.com/bft-labs/votebox/internal/domain"
	"github.com/bft-labs/votebox/internal/ports"
)

// VoteRequest is what a front end hands over for one vote. An empty Candidate
// is an intentional blank ballot. Neither field is trimmed or normalized here.
type VoteRequest struct {
	Voter     string `json:"voter"`
	Candidate string `json:"candidate"`
}

// Ballot converts the request into a domain ballot.
func (r VoteRequest) Ballot() domain.Ballot {
	if r.Candidate == "" {
		return domain.BlankBallot(domain.Voter(r.Voter))
	}
	return domain.NewBallot(domain.Voter(r.Voter), domain.Candidate(r.Candidate))
}

// Controller owns the storage handle.
//
// CastVote holds a controller-wide lock from Load through Save, so votes are
// serialized across the whole process and concurrent votes for different
// voters never overwrite each other's increments. Throughput is bounded by
// one storage round trip per vote. Two processes sharing a durable file are
// not coordinated.
type Controller struct {
	store  ports.Storage
	logger ports.Logger

	castMu sync.Mutex
}

// NewController creates a controller over store. A nil logger discards output.
func NewController(store ports.Storage, logger ports.Logger) *Controller {
	return &Controller{store: store, logger: logadapter.OrNoop(logger)}
}

// CastVote loads the state, applies the ballot and saves the result.
//
// AlreadyVoted, Blank and Invalid are outcomes, not errors. Storage errors are
// returned unchanged and nothing is saved.
func (c *Controller) CastVote(ctx context.Context, req VoteRequest) (domain.Outcome, error) {
	c.castMu.Lock()
	defer c.castMu.Unlock()

	state, err := c.store.Load(ctx)
	if err != nil {
		return domain.Outcome{}, err
	}

	next, outcome := domain.Apply(state, req.Ballot())
	if outcome.Kind == domain.OutcomeAlreadyVoted {
		c.logger.Debug("ballot refused", ports.Any("voter", outcome.Voter))
		return outcome, nil
	}

	if err := c.store.Save(ctx, next); err != nil {
		return domain.Outcome{}, err
	}

	c.logger.Debug("ballot counted",
		ports.Any("voter", outcome.Voter),
		ports.Any("outcome", outcome.Kind),
		ports.Int("ballots", next.TotalBallots()))
	return outcome, nil
}

// ReadState returns a copy of the current state.
func (c *Controller) ReadState(ctx context.Context) (domain.VotingState, error) {
	return c.store.Load(ctx)
}
