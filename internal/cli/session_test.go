package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bft-labs/votebox/internal/adapters/memory"
	"github.com/bft-labs/votebox/internal/app"
	"github.com/bft-labs/votebox/internal/domain"
)

func newTabulator(t *testing.T) *app.Controller {
	t.Helper()
	st, err := domain.NewVotingState([]domain.Candidate{"Alice", "Bob"})
	if err != nil {
		t.Fatalf("NewVotingState: %v", err)
	}
	return app.NewController(memory.NewStore(st), nil)
}

func voteFor(voter, candidate string) app.VoteRequest {
	return app.VoteRequest{Voter: voter, Candidate: candidate}
}

func runSession(t *testing.T, tab Tabulator, lex Lexicon, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := NewSession(tab, lex, strings.NewReader(input), &out).Run(context.Background())
	return out.String(), err
}

func TestSession_English(t *testing.T) {
	tab := newTabulator(t)
	input := strings.Join([]string{
		"vote", "  Claude  ", " Alice ",
		"vote", "Claude", "Bob",
		"vote", "Dana", "",
		"vote", "Eve", "Carol",
		"voters",
		"score",
	}, "\n")

	out, err := runSession(t, tab, English(), input)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, want := range []string{
		"Vote recorded for Alice",
		"You have already voted!",
		"Blank vote recorded",
		"Invalid vote recorded (unknown candidate)",
		"• Claude\n• Dana\n• Eve\n",
		"Blank", "Invalid",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}

	st, _ := tab.ReadState(context.Background())
	if !st.HasVoted("Claude") || st.HasVoted("  Claude  ") {
		t.Errorf("voter name was not trimmed: %v", st.Voters())
	}
	if st.Scoreboard.Scores["Alice"] != 1 || st.Scoreboard.Blank != 1 || st.Scoreboard.Invalid != 1 {
		t.Errorf("scoreboard = %+v, want Alice=1 blank=1 invalid=1", st.Scoreboard)
	}
}

func TestSession_French(t *testing.T) {
	tab := newTabulator(t)
	input := "voter\nJean\nBob\nvotants\nscore\nvote\n"

	out, err := runSession(t, tab, French(), input)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, want := range []string{
		"Quel est votre nom ?",
		"Vote enregistré pour Bob",
		"Liste des votants :",
		"Scores actuels :",
		"Blanc", "Nul",
		"Commande invalide ! Les commandes valides sont : voter, votants, score",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestSession_EmptyVoterIsRefused(t *testing.T) {
	tab := newTabulator(t)

	out, err := runSession(t, tab, English(), "vote\n   \nvoters\n")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !strings.Contains(out, "A voter name is required.") {
		t.Errorf("output lacks the empty voter message:\n%s", out)
	}
	if !strings.Contains(out, "Nobody has voted yet.") {
		t.Errorf("a ballot was cast for an empty voter:\n%s", out)
	}
}

func TestSession_UnreadableNameIsRefused(t *testing.T) {
	tab := newTabulator(t)

	out, err := runSession(t, tab, English(), "vote\nbob\xff\nAlice\nvote\nDana\n\xfe\nvoters\n")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Count(out, "Names must be valid UTF-8 text.") != 2 {
		t.Errorf("output lacks two refusals:\n%s", out)
	}
	if !strings.Contains(out, "Nobody has voted yet.") {
		t.Errorf("a ballot was cast for an unreadable name:\n%s", out)
	}
}

func TestSession_UnknownCommand(t *testing.T) {
	out, err := runSession(t, newTabulator(t), English(), "hello\n\n")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out, "Unknown command! Valid commands are: vote, voters, score") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

type brokenTabulator struct{ err error }

func (b brokenTabulator) CastVote(context.Context, app.VoteRequest) (domain.Outcome, error) {
	return domain.Outcome{}, b.err
}

func (b brokenTabulator) ReadState(context.Context) (domain.VotingState, error) {
	return domain.VotingState{}, b.err
}

func TestSession_StorageErrorEndsSession(t *testing.T) {
	boom := fmt.Errorf("%w: disk gone", domain.ErrStorageUnavailable)

	for _, input := range []string{"score\nvoters\n", "vote\nClaude\nAlice\nscore\n"} {
		_, err := runSession(t, brokenTabulator{err: boom}, English(), input)
		if !errors.Is(err, domain.ErrStorageUnavailable) {
			t.Errorf("Run(%q) error = %v, want ErrStorageUnavailable", input, err)
		}
	}
}

func TestSession_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := NewSession(newTabulator(t), English(), strings.NewReader("score\n"), &out).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestForLanguage(t *testing.T) {
	tests := []struct {
		lang   string
		want   string
		wantOK bool
	}{
		{"en", "vote", true},
		{"FR", "voter", true},
		{" fr ", "voter", true},
		{"de", "", false},
	}

	for _, tt := range tests {
		lex, ok := ForLanguage(tt.lang)
		if ok != tt.wantOK || lex.VoteCommand != tt.want {
			t.Errorf("ForLanguage(%q) = %q, %v; want %q, %v", tt.lang, lex.VoteCommand, ok, tt.want, tt.wantOK)
		}
	}
}
