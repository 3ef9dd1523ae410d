package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/bft-labs/votebox/internal/domain"
)

// RenderOutcome writes the message for one vote outcome.
func RenderOutcome(w io.Writer, lex Lexicon, out domain.Outcome) {
	switch out.Kind {
	case domain.OutcomeAccepted:
		fmt.Fprintf(w, lex.Accepted+"\n", out.Candidate)
	case domain.OutcomeBlank:
		fmt.Fprintln(w, lex.Blank)
	case domain.OutcomeInvalid:
		fmt.Fprintln(w, lex.Invalid)
	case domain.OutcomeAlreadyVoted:
		fmt.Fprintln(w, lex.AlreadyVoted)
	}
}

// RenderVoters writes the attendance sheet in lexical order.
func RenderVoters(w io.Writer, lex Lexicon, st domain.VotingState) {
	voters := st.Voters()
	if len(voters) == 0 {
		fmt.Fprintln(w, lex.NoVoters)
		return
	}
	fmt.Fprintln(w, lex.VotersHeading)
	for _, v := range voters {
		fmt.Fprintf(w, "• %s\n", v)
	}
}

// RenderScoreboard writes the scoreboard as a table: candidates in lexical
// order, then the blank and invalid counters.
func RenderScoreboard(w io.Writer, lex Lexicon, st domain.VotingState) {
	sb := st.Scoreboard

	fmt.Fprintln(w, lex.ScoresHeading)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{lex.CandidateColumn, lex.ScoreColumn})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")

	for _, c := range sb.Candidates() {
		table.Append([]string{string(c), strconv.Itoa(sb.Scores[c])})
	}
	table.Append([]string{lex.BlankLabel, strconv.Itoa(sb.Blank)})
	table.Append([]string{lex.InvalidLabel, strconv.Itoa(sb.Invalid)})

	table.Render()
}
