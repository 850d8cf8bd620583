// Package globetrotter defines the core domain types and validation rules.
// It has zero external dependencies — everything here is pure Go.
package globetrotter

import (
	"regexp"
	"time"
)

// TotalQuestions is the fixed length of one quiz session.
const TotalQuestions = 10

// Destination is one entry in the travel catalog. The (City, Country) pair
// acts as the natural key; two destinations with the same pair are the same
// place.
type Destination struct {
	ID       string
	City     string
	Country  string
	Clues    []string
	FunFacts []string
}

// Answer returns the option string that identifies this destination.
func (d Destination) Answer() string {
	return d.City + ", " + d.Country
}

// Question is a single round: one or two clues about a destination plus four
// answer options, exactly one of which equals the destination's Answer().
// Questions are created fresh per round and never mutated.
type Question struct {
	Destination Destination
	Clues       []string
	Options     []string
}

// CorrectAnswer returns the option that solves the question.
func (q Question) CorrectAnswer() string {
	return q.Destination.Answer()
}

// ChallengeRecord is an immutable snapshot of one shared, completed session.
// The ID is the sole credential needed to read the record: random enough to
// avoid casual forgery, but not cryptographically signed.
type ChallengeRecord struct {
	ID        string
	Username  string
	Score     int
	CreatedAt time.Time
}

// Identity is a persisted player identity, uniquely keyed by username.
type Identity struct {
	Username    string
	GamesPlayed int
	LastScore   int
	CreatedAt   time.Time
	LastPlayed  time.Time
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,}$`)

// ValidUsername reports whether name satisfies the username rules: at least
// three characters, letters, digits and underscores only. Case-sensitive.
func ValidUsername(name string) bool {
	return usernamePattern.MatchString(name)
}
