package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Advertisement Methods
// -----------------------------------------------------------------------------

const adColumns = `id, title, description, image_url, link_url, position, is_active, created_at`

// ListActiveAdvertisements retrieves active ads for a position, oldest first
// so rotation order is stable.
func (db *DB) ListActiveAdvertisements(ctx context.Context, position AdPosition) ([]Advertisement, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+adColumns+` FROM advertisements
		 WHERE position = $1 AND is_active = TRUE
		 ORDER BY created_at ASC`,
		position,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list advertisements: %w", err)
	}
	defer rows.Close()

	var ads []Advertisement
	for rows.Next() {
		var a Advertisement
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.ImageURL, &a.LinkURL,
			&a.Position, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan advertisement: %w", err)
		}
		ads = append(ads, a)
	}
	return ads, nil
}

// CreateAdvertisement inserts an advertisement and returns its ID.
func (db *DB) CreateAdvertisement(ctx context.Context, a *Advertisement) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO advertisements (title, description, image_url, link_url, position, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		a.Title, a.Description, a.ImageURL, a.LinkURL, a.Position, a.IsActive,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create advertisement: %w", err)
	}
	return id, nil
}

// GetAdvertisement retrieves an advertisement by ID, or nil if absent.
func (db *DB) GetAdvertisement(ctx context.Context, id uuid.UUID) (*Advertisement, error) {
	var a Advertisement
	err := db.pool.QueryRow(ctx,
		`SELECT `+adColumns+` FROM advertisements WHERE id = $1`, id,
	).Scan(&a.ID, &a.Title, &a.Description, &a.ImageURL, &a.LinkURL,
		&a.Position, &a.IsActive, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get advertisement: %w", err)
	}
	return &a, nil
}

// UpdateAdvertisement updates an advertisement in place.
func (db *DB) UpdateAdvertisement(ctx context.Context, a *Advertisement) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE advertisements
		 SET title = $1, description = $2, image_url = $3, link_url = $4, position = $5, is_active = $6
		 WHERE id = $7`,
		a.Title, a.Description, a.ImageURL, a.LinkURL, a.Position, a.IsActive, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update advertisement: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("advertisement not found: %s", a.ID)
	}
	return nil
}
