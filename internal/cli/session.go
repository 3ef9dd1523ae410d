// Package cli is the interactive line front end: a prompt loop that casts
// votes and prints the attendance sheet and the scoreboard.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/bft-labs/votebox/internal/app"
	"github.com/bft-labs/votebox/internal/domain"
)

// Tabulator is the part of the controller the session drives.
type Tabulator interface {
	CastVote(ctx context.Context, req app.VoteRequest) (domain.Outcome, error)
	ReadState(ctx context.Context) (domain.VotingState, error)
}

// Session reads commands line by line and writes the answers.
type Session struct {
	tab Tabulator
	lex Lexicon
	in  *bufio.Scanner
	out io.Writer
}

// NewSession creates a session reading from in and writing to out.
func NewSession(tab Tabulator, lex Lexicon, in io.Reader, out io.Writer) *Session {
	return &Session{tab: tab, lex: lex, in: bufio.NewScanner(in), out: out}
}

// Run serves commands until the input ends or ctx is cancelled. Storage
// errors end the session and are returned.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, s.lex.Prompt)

		line, ok := s.readLine()
		if !ok {
			return s.in.Err()
		}
		if line == "" {
			continue
		}
		if err := s.handle(ctx, line); err != nil {
			return err
		}
	}
}

func (s *Session) handle(ctx context.Context, command string) error {
	switch command {
	case s.lex.VoteCommand:
		return s.vote(ctx)

	case s.lex.VotersCommand:
		st, err := s.tab.ReadState(ctx)
		if err != nil {
			return err
		}
		RenderVoters(s.out, s.lex, st)

	case s.lex.ScoreCommand:
		st, err := s.tab.ReadState(ctx)
		if err != nil {
			return err
		}
		RenderScoreboard(s.out, s.lex, st)

	default:
		fmt.Fprintf(s.out, s.lex.UnknownCommand+"\n", s.lex.commands())
	}
	return nil
}

func (s *Session) vote(ctx context.Context) error {
	fmt.Fprintln(s.out, s.lex.AskVoter)
	voter, ok := s.readLine()
	if !ok {
		return s.in.Err()
	}
	if voter == "" {
		fmt.Fprintln(s.out, s.lex.EmptyVoter)
		return nil
	}

	fmt.Fprintln(s.out, s.lex.AskCandidate)
	candidate, ok := s.readLine()
	if !ok {
		return s.in.Err()
	}
	if !utf8.ValidString(voter) || !utf8.ValidString(candidate) {
		fmt.Fprintln(s.out, s.lex.UnreadableName)
		return nil
	}

	out, err := s.tab.CastVote(ctx, app.VoteRequest{Voter: voter, Candidate: candidate})
	if err != nil {
		return err
	}
	RenderOutcome(s.out, s.lex, out)
	return nil
}

// readLine returns the next trimmed line; false at end of input.
func (s *Session) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}
