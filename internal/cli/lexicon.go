package cli

import "strings"

// Lexicon holds the commands and messages of one front-end language.
type Lexicon struct {
	// Commands typed at the prompt.
	VoteCommand   string
	VotersCommand string
	ScoreCommand  string

	Prompt          string
	AskVoter        string
	AskCandidate    string
	EmptyVoter      string
	UnreadableName  string
	UnknownCommand  string
	VotersHeading   string
	NoVoters        string
	ScoresHeading   string
	CandidateColumn string
	ScoreColumn     string
	BlankLabel      string
	InvalidLabel    string

	// Vote outcomes. Accepted takes the candidate name.
	Accepted     string
	Blank        string
	Invalid      string
	AlreadyVoted string
}

// English returns the English lexicon.
func English() Lexicon {
	return Lexicon{
		VoteCommand:     "vote",
		VotersCommand:   "voters",
		ScoreCommand:    "score",
		Prompt:          "> ",
		AskVoter:        "What is your name?",
		AskCandidate:    "Who do you vote for? (leave empty for a blank vote)",
		EmptyVoter:      "A voter name is required.",
		UnreadableName:  "Names must be valid UTF-8 text.",
		UnknownCommand:  "Unknown command! Valid commands are: %s",
		VotersHeading:   "Voters:",
		NoVoters:        "Nobody has voted yet.",
		ScoresHeading:   "Current scores:",
		CandidateColumn: "Candidate",
		ScoreColumn:     "Votes",
		BlankLabel:      "Blank",
		InvalidLabel:    "Invalid",
		Accepted:        "Vote recorded for %s",
		Blank:           "Blank vote recorded",
		Invalid:         "Invalid vote recorded (unknown candidate)",
		AlreadyVoted:    "You have already voted!",
	}
}

// French returns the French lexicon.
func French() Lexicon {
	return Lexicon{
		VoteCommand:     "voter",
		VotersCommand:   "votants",
		ScoreCommand:    "score",
		Prompt:          "> ",
		AskVoter:        "Quel est votre nom ?",
		AskCandidate:    "Pour qui voulez-vous voter ? (Laissez vide pour un vote blanc)",
		EmptyVoter:      "Un nom de votant est obligatoire.",
		UnreadableName:  "Les noms doivent être du texte UTF-8 valide.",
		UnknownCommand:  "Commande invalide ! Les commandes valides sont : %s",
		VotersHeading:   "Liste des votants :",
		NoVoters:        "Personne n'a encore voté.",
		ScoresHeading:   "Scores actuels :",
		CandidateColumn: "Candidat",
		ScoreColumn:     "Voix",
		BlankLabel:      "Blanc",
		InvalidLabel:    "Nul",
		Accepted:        "Vote enregistré pour %s",
		Blank:           "Vote blanc enregistré",
		Invalid:         "Vote nul enregistré (candidat non trouvé)",
		AlreadyVoted:    "Vous avez déjà voté !",
	}
}

// ForLanguage returns the lexicon for "en" or "fr".
func ForLanguage(lang string) (Lexicon, bool) {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "en":
		return English(), true
	case "fr":
		return French(), true
	default:
		return Lexicon{}, false
	}
}

func (l Lexicon) commands() string {
	return strings.Join([]string{l.VoteCommand, l.VotersCommand, l.ScoreCommand}, ", ")
}
