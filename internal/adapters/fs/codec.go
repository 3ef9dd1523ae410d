package fs

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/bft-labs/votebox/internal/domain"
)

// fileState is the on-disk representation of a voting state:
//
//	{"voters": [...], "scoreboard": {"scores": {...}, "blank_score": n, "invalid_score": n}}
//
// Voters are written in lexical order; readers must not rely on it.
type fileState struct {
	Voters     []string        `json:"voters"`
	Scoreboard *fileScoreboard `json:"scoreboard"`
}

type fileScoreboard struct {
	Scores       map[string]int `json:"scores"`
	BlankScore   int            `json:"blank_score"`
	InvalidScore int            `json:"invalid_score"`
}

// encodeState refuses names that are not valid UTF-8: JSON would replace the
// bad bytes with U+FFFD and the name read back would differ from the one saved.
func encodeState(st domain.VotingState) ([]byte, error) {
	voters := st.Voters()
	doc := fileState{
		Voters: make([]string, 0, len(voters)),
		Scoreboard: &fileScoreboard{
			Scores:       make(map[string]int, len(st.Scoreboard.Scores)),
			BlankScore:   st.Scoreboard.Blank,
			InvalidScore: st.Scoreboard.Invalid,
		},
	}
	for _, v := range voters {
		if !utf8.ValidString(string(v)) {
			return nil, fmt.Errorf("voter %q is not valid UTF-8", v)
		}
		doc.Voters = append(doc.Voters, string(v))
	}
	for c, n := range st.Scoreboard.Scores {
		if !utf8.ValidString(string(c)) {
			return nil, fmt.Errorf("candidate %q is not valid UTF-8", c)
		}
		doc.Scoreboard.Scores[string(c)] = n
	}
	return json.MarshalIndent(doc, "", "  ")
}

// decodeState parses data and checks it against the tally invariants. Every
// failure wraps domain.ErrMalformedState.
func decodeState(data []byte) (domain.VotingState, error) {
	var doc fileState
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.VotingState{}, fmt.Errorf("%w: %v", domain.ErrMalformedState, err)
	}
	if doc.Scoreboard == nil || doc.Scoreboard.Scores == nil {
		return domain.VotingState{}, fmt.Errorf("%w: missing scoreboard", domain.ErrMalformedState)
	}

	st := domain.VotingState{
		Attendance: make(domain.AttendanceSheet, len(doc.Voters)),
		Scoreboard: domain.Scoreboard{
			Scores:  make(map[domain.Candidate]int, len(doc.Scoreboard.Scores)),
			Blank:   doc.Scoreboard.BlankScore,
			Invalid: doc.Scoreboard.InvalidScore,
		},
	}
	for _, v := range doc.Voters {
		if st.Attendance.Contains(domain.Voter(v)) {
			return domain.VotingState{}, fmt.Errorf("%w: voter %q listed twice", domain.ErrMalformedState, v)
		}
		st.Attendance[domain.Voter(v)] = struct{}{}
	}
	for c, n := range doc.Scoreboard.Scores {
		st.Scoreboard.Scores[domain.Candidate(c)] = n
	}

	if err := st.Validate(); err != nil {
		return domain.VotingState{}, fmt.Errorf("%w: %v", domain.ErrMalformedState, err)
	}
	return st, nil
}
