package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roamio/globetrotter/internal/globetrotter"
)

func (s *SQLiteStore) AdminByEmail(ctx context.Context, email string) (string, string, error) {
	var adminID, passwordHash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash FROM admins WHERE email = ?
	`, email).Scan(&adminID, &passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", globetrotter.ErrNotFound
	}
	return adminID, passwordHash, err
}

func (s *SQLiteStore) CreateAdminSession(ctx context.Context, adminID string) (string, error) {
	var sessionID string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO admin_sessions (admin_id)
		VALUES (?)
		RETURNING id
	`, adminID).Scan(&sessionID)
	return sessionID, err
}

func (s *SQLiteStore) DeleteAdminSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = ?`, sessionID)
	return err
}

func (s *SQLiteStore) AdminFromSession(ctx context.Context, sessionID string) (adminSession, error) {
	var sess adminSession
	err := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.email
		FROM admin_sessions s
		JOIN admins a ON a.id = s.admin_id
		WHERE s.id = ?
	`, sessionID).Scan(&sess.AdminID, &sess.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return adminSession{}, errNoAdminSession
	}
	return sess, err
}

// EnsureAdmin creates the admin account if the email is not registered yet.
// Existing accounts keep their current password hash.
func (s *SQLiteStore) EnsureAdmin(ctx context.Context, email, passwordHash string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admins (email, password_hash)
		VALUES (?, ?)
		ON CONFLICT (email) DO NOTHING
	`, email, passwordHash)
	if err != nil {
		return fmt.Errorf("ensuring admin account: %w", err)
	}
	return nil
}
