package globetrotter

import "errors"

var (
	// ErrEmptyCatalog is returned when a question is requested from a catalog
	// with zero destinations.
	ErrEmptyCatalog = errors.New("destination catalog is empty")
	// ErrNotEnoughDistractors is returned when fewer than three distinct other
	// cities exist to build the wrong options from.
	ErrNotEnoughDistractors = errors.New("not enough distinct cities for distractors")
	// ErrSessionComplete is returned when an answer is recorded against an
	// already finished session.
	ErrSessionComplete = errors.New("session already complete")
	// ErrInvalidUsername indicates a username that fails the format rules.
	ErrInvalidUsername = errors.New("invalid username")
	// ErrUsernameTaken indicates the username is already reserved by someone else.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrDuplicateDestination indicates a catalog entry with the same
	// city/country pair already exists.
	ErrDuplicateDestination = errors.New("destination already exists")
	// ErrNotFound indicates a missing record (challenge id, identity, destination).
	ErrNotFound = errors.New("not found")
)
