package server

import (
	"context"
	"time"

	"github.com/roamio/globetrotter/internal/globetrotter"
)

// Catalog exposes the destination set to the quiz engine. Implemented by the
// SQLite store directly and by the Redis-backed cache that wraps it.
type Catalog interface {
	ListDestinations(ctx context.Context) ([]globetrotter.Destination, error)
}

// Store is the persistence boundary for destinations, identities and game
// records.
type Store interface {
	Catalog
	CreateDestination(ctx context.Context, d globetrotter.Destination) (globetrotter.Destination, error)
	DeleteDestination(ctx context.Context, id string) error
	CountDestinations(ctx context.Context) (int, error)

	// FindIdentity backs the advisory availability check.
	FindIdentity(ctx context.Context, username string) (globetrotter.Identity, error)

	// Reserve atomically claims (or, for a returning player, updates) the
	// username and appends a new immutable game record. The users table's
	// uniqueness constraint is the authoritative decision point: of two
	// concurrent first-time claims exactly one succeeds, the other gets
	// globetrotter.ErrUsernameTaken. Nothing is persisted on any error.
	Reserve(ctx context.Context, username string, score int, returning bool) (globetrotter.Identity, globetrotter.ChallengeRecord, error)

	// GetGameRecord resolves a challenge id to its record and the
	// challenger's identity.
	GetGameRecord(ctx context.Context, id string) (globetrotter.ChallengeRecord, globetrotter.Identity, error)
}

// AdminStore is the authentication and session boundary for the catalog
// admin surface.
type AdminStore interface {
	AdminByEmail(ctx context.Context, email string) (adminID, passwordHash string, err error)
	CreateAdminSession(ctx context.Context, adminID string) (sessionID string, err error)
	DeleteAdminSession(ctx context.Context, sessionID string) error
	AdminFromSession(ctx context.Context, sessionID string) (adminSession, error)
	EnsureAdmin(ctx context.Context, email, passwordHash string) error
}

// parseTimestamp converts SQLite's RFC3339 text timestamps. Malformed input
// yields the zero time; the column defaults make that unreachable in practice.
func parseTimestamp(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
