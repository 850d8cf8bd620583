package quiz

// Challenge is the inbound challenge context a player is responding to.
// IsNew marks a challenge the current player is creating rather than
// answering; no comparison is rendered for those.
type Challenge struct {
	ID       string
	Username string
	Score    int
	IsNew    bool
}

// Outcome classifies a finished session against a challenge score.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

// Resolve compares finalScore against the challenge. It returns nil when
// there is nothing to compare: no challenge, or one the player originated
// themselves. Every integer pair maps to exactly one outcome.
func Resolve(finalScore int, ch *Challenge) *Outcome {
	if ch == nil || ch.IsNew {
		return nil
	}

	var out Outcome
	switch {
	case finalScore > ch.Score:
		out = OutcomeWin
	case finalScore < ch.Score:
		out = OutcomeLoss
	default:
		out = OutcomeDraw
	}
	return &out
}
