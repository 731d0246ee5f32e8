package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Profile Methods
// -----------------------------------------------------------------------------

const profileColumns = `id, name, email, role, phone, address, profile_image, created_at, updated_at`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Role, &p.Phone, &p.Address,
		&p.ProfileImage, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProfile inserts a profile row. The ID must match the auth user ID.
func (db *DB) CreateProfile(ctx context.Context, p *Profile) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO profiles (id, name, email, role, phone, address, profile_image)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Name, p.Email, p.Role, p.Phone, p.Address, p.ProfileImage,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by ID, or nil if absent.
func (db *DB) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	p, err := scanProfile(db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// UpdateProfile updates the mutable fields of a profile.
func (db *DB) UpdateProfile(ctx context.Context, p *Profile) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE profiles
		 SET name = $1, phone = $2, address = $3, profile_image = $4, updated_at = NOW()
		 WHERE id = $5`,
		p.Name, p.Phone, p.Address, p.ProfileImage, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", p.ID)
	}
	return nil
}

// UpdateProfileRole changes a profile's role. Admin-only operation.
func (db *DB) UpdateProfileRole(ctx context.Context, id uuid.UUID, role Role) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE profiles SET role = $1, updated_at = NOW() WHERE id = $2`,
		role, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", id)
	}
	return nil
}

// ListProfiles retrieves all profiles, newest first.
func (db *DB) ListProfiles(ctx context.Context) ([]Profile, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, nil
}

// CountProfiles returns the total number of profiles.
func (db *DB) CountProfiles(ctx context.Context) (int, error) {
	var n int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return n, nil
}
