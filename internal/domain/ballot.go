package domain

import "fmt"

// Voter identifies a person casting a ballot. The name is compared byte for
// byte: no case folding, no whitespace normalization.
type Voter string

// Candidate identifies a name a ballot can be cast for.
type Candidate string

// Ballot is a single vote request. A nil Candidate is an intentional blank vote.
type Ballot struct {
	Voter     Voter
	Candidate *Candidate
}

// NewBallot returns a ballot for the given candidate.
func NewBallot(voter Voter, candidate Candidate) Ballot {
	return Ballot{Voter: voter, Candidate: &candidate}
}

// BlankBallot returns a ballot without a candidate.
func BlankBallot(voter Voter) Ballot {
	return Ballot{Voter: voter}
}

// IsBlank reports whether the ballot carries no candidate.
func (b Ballot) IsBlank() bool {
	return b.Candidate == nil
}

// OutcomeKind classifies the result of processing a ballot.
type OutcomeKind int

const (
	// OutcomeAccepted means the ballot was counted for a known candidate.
	OutcomeAccepted OutcomeKind = iota
	// OutcomeBlank means the ballot carried no candidate.
	OutcomeBlank
	// OutcomeInvalid means the ballot named a candidate outside the fixed list.
	OutcomeInvalid
	// OutcomeAlreadyVoted means the voter was already on the attendance sheet.
	// Nothing was counted.
	OutcomeAlreadyVoted
)

// String returns the lower-case name of the kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeBlank:
		return "blank"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeAlreadyVoted:
		return "already_voted"
	default:
		return "unknown"
	}
}

// Outcome is the classification of a processed ballot. Candidate is only set
// for OutcomeAccepted.
type Outcome struct {
	Kind      OutcomeKind
	Voter     Voter
	Candidate Candidate
}

// Accepted returns an OutcomeAccepted outcome.
func Accepted(voter Voter, candidate Candidate) Outcome {
	return Outcome{Kind: OutcomeAccepted, Voter: voter, Candidate: candidate}
}

// Blank returns an OutcomeBlank outcome.
func Blank(voter Voter) Outcome {
	return Outcome{Kind: OutcomeBlank, Voter: voter}
}

// Invalid returns an OutcomeInvalid outcome.
func Invalid(voter Voter) Outcome {
	return Outcome{Kind: OutcomeInvalid, Voter: voter}
}

// AlreadyVoted returns an OutcomeAlreadyVoted outcome.
func AlreadyVoted(voter Voter) Outcome {
	return Outcome{Kind: OutcomeAlreadyVoted, Voter: voter}
}

// String renders the outcome as kind(voter) or accepted(voter, candidate).
func (o Outcome) String() string {
	if o.Kind == OutcomeAccepted {
		return fmt.Sprintf("%s(%q, %q)", o.Kind, o.Voter, o.Candidate)
	}
	return fmt.Sprintf("%s(%q)", o.Kind, o.Voter)
}
