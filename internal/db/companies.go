package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Company Methods
// -----------------------------------------------------------------------------

const companyColumns = `id, name, description, address, phone, email, logo, owner_id, is_approved, created_at, updated_at`

func scanCompany(row pgx.Row) (*Company, error) {
	var c Company
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Address, &c.Phone, &c.Email,
		&c.Logo, &c.OwnerID, &c.IsApproved, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCompany inserts a company row. New companies always start unapproved.
func (db *DB) CreateCompany(ctx context.Context, c *Company) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO companies (name, description, address, phone, email, logo, owner_id, is_approved)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE)
		 RETURNING id`,
		c.Name, c.Description, c.Address, c.Phone, c.Email, c.Logo, c.OwnerID,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create company: %w", err)
	}
	return id, nil
}

// GetCompany retrieves a company by ID, or nil if absent.
func (db *DB) GetCompany(ctx context.Context, id uuid.UUID) (*Company, error) {
	c, err := scanCompany(db.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return c, nil
}

// ListCompaniesByOwner retrieves all companies owned by the given profile.
func (db *DB) ListCompaniesByOwner(ctx context.Context, ownerID uuid.UUID) ([]Company, error) {
	return db.listCompanies(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID)
}

// ListApprovedCompanies retrieves approved companies, newest first.
func (db *DB) ListApprovedCompanies(ctx context.Context) ([]Company, error) {
	return db.listCompanies(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE is_approved = TRUE ORDER BY created_at DESC`)
}

// ListCompanies retrieves every company regardless of approval state.
func (db *DB) ListCompanies(ctx context.Context) ([]Company, error) {
	return db.listCompanies(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY created_at DESC`)
}

func (db *DB) listCompanies(ctx context.Context, query string, args ...any) ([]Company, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, *c)
	}
	return companies, nil
}

// UpdateCompany updates the mutable fields of a company. Approval state is
// changed only via ApproveCompany.
func (db *DB) UpdateCompany(ctx context.Context, c *Company) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE companies
		 SET name = $1, description = $2, address = $3, phone = $4, email = $5, logo = $6, updated_at = NOW()
		 WHERE id = $7`,
		c.Name, c.Description, c.Address, c.Phone, c.Email, c.Logo, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("company not found: %s", c.ID)
	}
	return nil
}

// ApproveCompany flips is_approved to true. The flip is one-way; there is no
// un-approve operation.
func (db *DB) ApproveCompany(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE companies SET is_approved = TRUE, updated_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to approve company: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("company not found: %s", id)
	}
	return nil
}

// CountCompanies returns total and pending-approval company counts.
func (db *DB) CountCompanies(ctx context.Context) (total, pending int, err error) {
	err = db.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT is_approved) FROM companies`,
	).Scan(&total, &pending)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count companies: %w", err)
	}
	return total, pending, nil
}
