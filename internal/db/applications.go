package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Job Application Methods
// -----------------------------------------------------------------------------

const applicationColumns = `id, job_id, applicant_id, applicant_name, applicant_email,
	cover_letter, resume, status, job_title, company_name, skills, experience_years,
	phone, address, created_at, updated_at`

func scanApplication(row pgx.Row) (*JobApplication, error) {
	var a JobApplication
	var skillsJSON []byte
	err := row.Scan(&a.ID, &a.JobID, &a.ApplicantID, &a.ApplicantName, &a.ApplicantEmail,
		&a.CoverLetter, &a.Resume, &a.Status, &a.JobTitle, &a.CompanyName, &skillsJSON,
		&a.ExperienceYears, &a.Phone, &a.Address, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := a.Skills.Scan(skillsJSON); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateApplication inserts an application and increments the job's applicant
// counter in a single transaction, so capacity checks never observe a half
// applied submission.
func (db *DB) CreateApplication(ctx context.Context, a *JobApplication) (uuid.UUID, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	skillsJSON, err := a.Skills.Value()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal skills: %w", err)
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO job_applications (job_id, applicant_id, applicant_name, applicant_email,
		                               cover_letter, resume, status, job_title, company_name,
		                               skills, experience_years, phone, address)
		 VALUES ($1, $2, $3, $4, $5, $6, 'pending', $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		a.JobID, a.ApplicantID, a.ApplicantName, a.ApplicantEmail,
		a.CoverLetter, a.Resume, a.JobTitle, a.CompanyName,
		skillsJSON, a.ExperienceYears, a.Phone, a.Address,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create application: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE jobs SET current_applicants = current_applicants + 1, updated_at = NOW()
		 WHERE id = $1`,
		a.JobID,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to increment applicant count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit application: %w", err)
	}
	return id, nil
}

// GetApplication retrieves an application by ID, or nil if absent.
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*JobApplication, error) {
	a, err := scanApplication(db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM job_applications WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return a, nil
}

// ListApplicationsByApplicant retrieves an applicant's submissions, newest first.
func (db *DB) ListApplicationsByApplicant(ctx context.Context, applicantID uuid.UUID) ([]JobApplication, error) {
	return db.listApplications(ctx,
		`SELECT `+applicationColumns+` FROM job_applications
		 WHERE applicant_id = $1 ORDER BY created_at DESC`,
		applicantID)
}

// ListApplicationsByOwner retrieves applications for every job belonging to
// companies owned by the given employer, newest first.
func (db *DB) ListApplicationsByOwner(ctx context.Context, ownerID uuid.UUID) ([]JobApplication, error) {
	return db.listApplications(ctx,
		`SELECT a.id, a.job_id, a.applicant_id, a.applicant_name, a.applicant_email,
		        a.cover_letter, a.resume, a.status, a.job_title, a.company_name, a.skills,
		        a.experience_years, a.phone, a.address, a.created_at, a.updated_at
		 FROM job_applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN companies c ON c.id = j.company_id
		 WHERE c.owner_id = $1
		 ORDER BY a.created_at DESC`,
		ownerID)
}

func (db *DB) listApplications(ctx context.Context, query string, args ...any) ([]JobApplication, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []JobApplication
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *a)
	}
	return apps, nil
}

// UpdateApplicationStatus sets the review status of an application.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status ApplicationStatus) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE job_applications SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", id)
	}
	return nil
}

// CountApplications returns the total number of applications.
func (db *DB) CountApplications(ctx context.Context) (int, error) {
	var n int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM job_applications`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return n, nil
}
