package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/roamio/globetrotter/internal/globetrotter"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) ListDestinations(ctx context.Context) ([]globetrotter.Destination, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, city, country, clues, fun_facts
		FROM destinations
		ORDER BY city, country
	`)
	if err != nil {
		return nil, fmt.Errorf("listing destinations: %w", err)
	}
	defer rows.Close()

	var destinations []globetrotter.Destination
	for rows.Next() {
		var d globetrotter.Destination
		var clues, funFacts string
		if err := rows.Scan(&d.ID, &d.City, &d.Country, &clues, &funFacts); err != nil {
			return nil, fmt.Errorf("scanning destination: %w", err)
		}
		if err := json.Unmarshal([]byte(clues), &d.Clues); err != nil {
			return nil, fmt.Errorf("decoding clues for %s: %w", d.City, err)
		}
		if err := json.Unmarshal([]byte(funFacts), &d.FunFacts); err != nil {
			return nil, fmt.Errorf("decoding fun facts for %s: %w", d.City, err)
		}
		destinations = append(destinations, d)
	}
	return destinations, rows.Err()
}

func (s *SQLiteStore) CreateDestination(ctx context.Context, d globetrotter.Destination) (globetrotter.Destination, error) {
	clues, err := json.Marshal(d.Clues)
	if err != nil {
		return globetrotter.Destination{}, fmt.Errorf("encoding clues: %w", err)
	}
	funFacts, err := json.Marshal(d.FunFacts)
	if err != nil {
		return globetrotter.Destination{}, fmt.Errorf("encoding fun facts: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO destinations (city, country, clues, fun_facts)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`, d.City, d.Country, string(clues), string(funFacts)).Scan(&d.ID)
	if isUniqueViolation(err) {
		return globetrotter.Destination{}, globetrotter.ErrDuplicateDestination
	}
	if err != nil {
		return globetrotter.Destination{}, fmt.Errorf("inserting destination: %w", err)
	}
	return d, nil
}

func (s *SQLiteStore) DeleteDestination(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM destinations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting destination: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return globetrotter.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) CountDestinations(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM destinations`).Scan(&count)
	return count, err
}

func (s *SQLiteStore) FindIdentity(ctx context.Context, username string) (globetrotter.Identity, error) {
	ident, err := scanIdentity(s.db.QueryRowContext(ctx, `
		SELECT username, games_played, last_score, created_at, last_played
		FROM users
		WHERE username = ?
	`, username))
	if errors.Is(err, sql.ErrNoRows) {
		return globetrotter.Identity{}, globetrotter.ErrNotFound
	}
	if err != nil {
		return globetrotter.Identity{}, fmt.Errorf("finding identity: %w", err)
	}
	return ident, nil
}

func (s *SQLiteStore) Reserve(ctx context.Context, username string, score int, returning bool) (globetrotter.Identity, globetrotter.ChallengeRecord, error) {
	if !globetrotter.ValidUsername(username) {
		return globetrotter.Identity{}, globetrotter.ChallengeRecord{}, globetrotter.ErrInvalidUsername
	}

	// Identity write and game record land in one transaction so a failure
	// leaves no half-created state behind.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return globetrotter.Identity{}, globetrotter.ChallengeRecord{}, fmt.Errorf("beginning reservation: %w", err)
	}
	defer tx.Rollback()

	ident, err := claimUsername(ctx, tx, username, score, returning)
	if err != nil {
		return globetrotter.Identity{}, globetrotter.ChallengeRecord{}, err
	}

	var rec globetrotter.ChallengeRecord
	var playedAt string
	err = tx.QueryRowContext(ctx, `
		INSERT INTO games (username, score)
		VALUES (?, ?)
		RETURNING id, username, score, played_at
	`, username, score).Scan(&rec.ID, &rec.Username, &rec.Score, &playedAt)
	if err != nil {
		return globetrotter.Identity{}, globetrotter.ChallengeRecord{}, fmt.Errorf("creating game record: %w", err)
	}
	rec.CreatedAt = parseTimestamp(playedAt)

	if err := tx.Commit(); err != nil {
		return globetrotter.Identity{}, globetrotter.ChallengeRecord{}, fmt.Errorf("committing reservation: %w", err)
	}
	return ident, rec, nil
}

// claimUsername inserts the identity row, or updates it for a returning
// player. The constrained INSERT is the serialization point: when it returns
// no row the name is already held by someone.
func claimUsername(ctx context.Context, tx *sql.Tx, username string, score int, returning bool) (globetrotter.Identity, error) {
	ident, err := scanIdentity(tx.QueryRowContext(ctx, `
		INSERT INTO users (username, games_played, last_score)
		VALUES (?, 1, ?)
		ON CONFLICT (username) DO NOTHING
		RETURNING username, games_played, last_score, created_at, last_played
	`, username, score))
	if err == nil {
		return ident, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return globetrotter.Identity{}, fmt.Errorf("claiming username: %w", err)
	}

	if !returning {
		return globetrotter.Identity{}, globetrotter.ErrUsernameTaken
	}

	ident, err = scanIdentity(tx.QueryRowContext(ctx, `
		UPDATE users
		SET games_played = games_played + 1,
		    last_score   = ?,
		    last_played  = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		WHERE username = ?
		RETURNING username, games_played, last_score, created_at, last_played
	`, score, username))
	if errors.Is(err, sql.ErrNoRows) {
		return globetrotter.Identity{}, globetrotter.ErrNotFound
	}
	if err != nil {
		return globetrotter.Identity{}, fmt.Errorf("updating identity: %w", err)
	}
	return ident, nil
}

func (s *SQLiteStore) GetGameRecord(ctx context.Context, id string) (globetrotter.ChallengeRecord, globetrotter.Identity, error) {
	var rec globetrotter.ChallengeRecord
	var ident globetrotter.Identity
	var playedAt, created, lastPlayed string
	err := s.db.QueryRowContext(ctx, `
		SELECT g.id, g.username, g.score, g.played_at,
		       u.games_played, u.last_score, u.created_at, u.last_played
		FROM games g
		JOIN users u ON u.username = g.username
		WHERE g.id = ?
	`, id).Scan(&rec.ID, &rec.Username, &rec.Score, &playedAt,
		&ident.GamesPlayed, &ident.LastScore, &created, &lastPlayed)
	if errors.Is(err, sql.ErrNoRows) {
		return globetrotter.ChallengeRecord{}, globetrotter.Identity{}, globetrotter.ErrNotFound
	}
	if err != nil {
		return globetrotter.ChallengeRecord{}, globetrotter.Identity{}, fmt.Errorf("getting game record: %w", err)
	}
	rec.CreatedAt = parseTimestamp(playedAt)
	ident.Username = rec.Username
	ident.CreatedAt = parseTimestamp(created)
	ident.LastPlayed = parseTimestamp(lastPlayed)
	return rec, ident, nil
}

func scanIdentity(row *sql.Row) (globetrotter.Identity, error) {
	var ident globetrotter.Identity
	var created, lastPlayed string
	if err := row.Scan(&ident.Username, &ident.GamesPlayed, &ident.LastScore, &created, &lastPlayed); err != nil {
		return globetrotter.Identity{}, err
	}
	ident.CreatedAt = parseTimestamp(created)
	ident.LastPlayed = parseTimestamp(lastPlayed)
	return ident, nil
}

// isUniqueViolation matches SQLite's constraint error text; libsql does not
// expose a typed error for it.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
