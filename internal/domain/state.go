package domain

import (
	"fmt"
	"sort"
)

// AttendanceSheet is the set of voters who already cast a ballot.
// It only grows; a voter appears at most once.
type AttendanceSheet map[Voter]struct{}

// Contains reports whether the voter already cast a ballot.
func (a AttendanceSheet) Contains(v Voter) bool {
	_, ok := a[v]
	return ok
}

// Len returns the number of voters on the sheet.
func (a AttendanceSheet) Len() int {
	return len(a)
}

// Sorted returns the voters in lexical order.
func (a AttendanceSheet) Sorted() []Voter {
	voters := make([]Voter, 0, len(a))
	for v := range a {
		voters = append(voters, v)
	}
	sort.Slice(voters, func(i, j int) bool { return voters[i] < voters[j] })
	return voters
}

func (a AttendanceSheet) clone() AttendanceSheet {
	out := make(AttendanceSheet, len(a))
	for v := range a {
		out[v] = struct{}{}
	}
	return out
}

// Scoreboard holds the per-candidate counts and the blank and invalid counters.
// The key set of Scores is the fixed candidate list.
type Scoreboard struct {
	Scores  map[Candidate]int
	Blank   int
	Invalid int
}

// NewScoreboard returns a scoreboard with every candidate at zero.
func NewScoreboard(candidates []Candidate) (Scoreboard, error) {
	if len(candidates) == 0 {
		return Scoreboard{}, fmt.Errorf("%w: no candidates", ErrInvalidCandidates)
	}
	scores := make(map[Candidate]int, len(candidates))
	for _, c := range candidates {
		if c == "" {
			return Scoreboard{}, fmt.Errorf("%w: empty candidate name", ErrInvalidCandidates)
		}
		if _, dup := scores[c]; dup {
			return Scoreboard{}, fmt.Errorf("%w: duplicate candidate %q", ErrInvalidCandidates, c)
		}
		scores[c] = 0
	}
	return Scoreboard{Scores: scores}, nil
}

// Candidates returns the candidate names in lexical order.
func (s Scoreboard) Candidates() []Candidate {
	out := make([]Candidate, 0, len(s.Scores))
	for c := range s.Scores {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Total returns the sum of every counter.
func (s Scoreboard) Total() int {
	total := s.Blank + s.Invalid
	for _, n := range s.Scores {
		total += n
	}
	return total
}

func (s Scoreboard) clone() Scoreboard {
	scores := make(map[Candidate]int, len(s.Scores))
	for c, n := range s.Scores {
		scores[c] = n
	}
	return Scoreboard{Scores: scores, Blank: s.Blank, Invalid: s.Invalid}
}

// VotingState is the aggregate that storage adapters load and save as a whole.
type VotingState struct {
	Attendance AttendanceSheet
	Scoreboard Scoreboard
}

// NewVotingState returns a state with an empty attendance sheet and every
// candidate at zero.
func NewVotingState(candidates []Candidate) (VotingState, error) {
	sb, err := NewScoreboard(candidates)
	if err != nil {
		return VotingState{}, err
	}
	return VotingState{Attendance: AttendanceSheet{}, Scoreboard: sb}, nil
}

// Clone returns a deep copy sharing no maps with s.
func (s VotingState) Clone() VotingState {
	return VotingState{
		Attendance: s.Attendance.clone(),
		Scoreboard: s.Scoreboard.clone(),
	}
}

// HasVoted reports whether the voter is on the attendance sheet.
func (s VotingState) HasVoted(v Voter) bool {
	return s.Attendance.Contains(v)
}

// Voters returns the attendance sheet in lexical order.
func (s VotingState) Voters() []Voter {
	return s.Attendance.Sorted()
}

// TotalBallots returns the number of first ballots that were counted.
func (s VotingState) TotalBallots() int {
	return s.Attendance.Len()
}

// Validate checks the invariants a persisted state must satisfy: no negative
// counter, and counters summing to the number of voters.
func (s VotingState) Validate() error {
	if s.Scoreboard.Blank < 0 || s.Scoreboard.Invalid < 0 {
		return fmt.Errorf("negative blank or invalid count")
	}
	for c, n := range s.Scoreboard.Scores {
		if n < 0 {
			return fmt.Errorf("negative count for candidate %q", c)
		}
	}
	if total, voters := s.Scoreboard.Total(), s.Attendance.Len(); total != voters {
		return fmt.Errorf("tally counts %d ballots but attendance lists %d voters", total, voters)
	}
	return nil
}

// Equal reports whether both states hold the same voters and the same counts.
func (s VotingState) Equal(o VotingState) bool {
	if s.Attendance.Len() != o.Attendance.Len() {
		return false
	}
	for v := range s.Attendance {
		if !o.Attendance.Contains(v) {
			return false
		}
	}
	if s.Scoreboard.Blank != o.Scoreboard.Blank || s.Scoreboard.Invalid != o.Scoreboard.Invalid {
		return false
	}
	if len(s.Scoreboard.Scores) != len(o.Scoreboard.Scores) {
		return false
	}
	for c, n := range s.Scoreboard.Scores {
		if m, ok := o.Scoreboard.Scores[c]; !ok || m != n {
			return false
		}
	}
	return true
}

// Apply processes one ballot against state and returns the resulting state and
// its outcome. state itself is left untouched.
//
// Attendance is checked first: a voter already on the sheet gets
// OutcomeAlreadyVoted whatever the ballot contains.
func Apply(state VotingState, b Ballot) (VotingState, Outcome) {
	if state.HasVoted(b.Voter) {
		return state, AlreadyVoted(b.Voter)
	}

	next := state.Clone()
	next.Attendance[b.Voter] = struct{}{}

	if b.IsBlank() {
		next.Scoreboard.Blank++
		return next, Blank(b.Voter)
	}

	candidate := *b.Candidate
	if _, ok := next.Scoreboard.Scores[candidate]; ok {
		next.Scoreboard.Scores[candidate]++
		return next, Accepted(b.Voter, candidate)
	}

	next.Scoreboard.Invalid++
	return next, Invalid(b.Voter)
}
