package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Auth User Methods
// -----------------------------------------------------------------------------

// CreateAuthUser creates a new authentication identity and returns its ID.
func (db *DB) CreateAuthUser(ctx context.Context, email, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO auth_users (email, password_hash, email_confirmed)
		 VALUES ($1, $2, TRUE)
		 RETURNING id`,
		strings.ToLower(strings.TrimSpace(email)), passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create auth user: %w", err)
	}
	return id, nil
}

// GetAuthUserByEmail retrieves an auth user by email, or nil if absent.
func (db *DB) GetAuthUserByEmail(ctx context.Context, email string) (*AuthUser, error) {
	var u AuthUser
	err := db.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, email_confirmed, created_at, updated_at
		 FROM auth_users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.EmailConfirmed, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get auth user: %w", err)
	}
	return &u, nil
}

// GetAuthUser retrieves an auth user by ID, or nil if absent.
func (db *DB) GetAuthUser(ctx context.Context, id uuid.UUID) (*AuthUser, error) {
	var u AuthUser
	err := db.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, email_confirmed, created_at, updated_at
		 FROM auth_users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.EmailConfirmed, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get auth user: %w", err)
	}
	return &u, nil
}

// AuthEmailExists reports whether an auth identity already uses the email.
func (db *DB) AuthEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM auth_users WHERE email = $1)`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// UpdateAuthPassword replaces the stored password hash.
func (db *DB) UpdateAuthPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE auth_users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("auth user not found: %s", id)
	}
	return nil
}

// DeleteAuthUser removes an auth identity. Used to compensate a failed
// registration when the profile insert does not succeed.
func (db *DB) DeleteAuthUser(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM auth_users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete auth user: %w", err)
	}
	return nil
}
