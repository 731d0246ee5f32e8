package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Job Methods
// -----------------------------------------------------------------------------

const jobColumns = `id, title, description, requirements, salary, salary_per_hour,
	working_hours, location, district, company_id, company_name, is_active,
	is_approved, image, application_deadline, max_applicants, current_applicants,
	contact_person, organization_name, project_details, work_duration,
	created_at, updated_at`

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.Title, &j.Description, &j.Requirements, &j.Salary,
		&j.SalaryPerHour, &j.WorkingHours, &j.Location, &j.District, &j.CompanyID,
		&j.CompanyName, &j.IsActive, &j.IsApproved, &j.Image, &j.ApplicationDeadline,
		&j.MaxApplicants, &j.CurrentApplicants, &j.ContactPerson, &j.OrganizationName,
		&j.ProjectDetails, &j.WorkDuration, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// CreateJob inserts a job row. New jobs are active but unapproved; they stay
// invisible on the public listing until an admin approves them.
func (db *DB) CreateJob(ctx context.Context, j *Job) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, description, requirements, salary, salary_per_hour,
		                   working_hours, location, district, company_id, company_name,
		                   is_active, is_approved, image, application_deadline, max_applicants,
		                   contact_person, organization_name, project_details, work_duration)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE, FALSE, $11, $12, $13, $14, $15, $16, $17)
		 RETURNING id`,
		j.Title, j.Description, j.Requirements, j.Salary, j.SalaryPerHour,
		j.WorkingHours, j.Location, j.District, j.CompanyID, j.CompanyName,
		j.Image, j.ApplicationDeadline, j.MaxApplicants,
		j.ContactPerson, j.OrganizationName, j.ProjectDetails, j.WorkDuration,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job: %w", err)
	}
	return id, nil
}

// GetJob retrieves a job by ID, or nil if absent.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	j, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return j, nil
}

// ListApprovedJobs retrieves approved, active jobs newest first. Deadline and
// capacity are not filtered here; the listing engine applies the full open
// invariant against the caller's clock.
func (db *DB) ListApprovedJobs(ctx context.Context) ([]Job, error) {
	return db.listJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs
		 WHERE is_approved = TRUE AND is_active = TRUE
		 ORDER BY created_at DESC`)
}

// ListJobsByCompany retrieves all jobs for a company, newest first.
func (db *DB) ListJobsByCompany(ctx context.Context, companyID uuid.UUID) ([]Job, error) {
	return db.listJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE company_id = $1 ORDER BY created_at DESC`,
		companyID)
}

// ListJobsByOwner retrieves all jobs belonging to companies owned by the
// given employer, newest first.
func (db *DB) ListJobsByOwner(ctx context.Context, ownerID uuid.UUID) ([]Job, error) {
	return db.listJobs(ctx,
		`SELECT `+jobPrefixedColumns(`j`)+` FROM jobs j
		 JOIN companies c ON c.id = j.company_id
		 WHERE c.owner_id = $1
		 ORDER BY j.created_at DESC`,
		ownerID)
}

// ListJobs retrieves every job regardless of state, newest first.
func (db *DB) ListJobs(ctx context.Context) ([]Job, error) {
	return db.listJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`)
}

func (db *DB) listJobs(ctx context.Context, query string, args ...any) ([]Job, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, nil
}

// UpdateJob updates the mutable fields of a job. Approval state is changed
// only via ApproveJob, and current_applicants only via CreateApplication.
func (db *DB) UpdateJob(ctx context.Context, j *Job) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE jobs
		 SET title = $1, description = $2, requirements = $3, salary = $4,
		     salary_per_hour = $5, working_hours = $6, location = $7, district = $8,
		     is_active = $9, image = $10, application_deadline = $11, max_applicants = $12,
		     contact_person = $13, organization_name = $14, project_details = $15,
		     work_duration = $16, updated_at = NOW()
		 WHERE id = $17`,
		j.Title, j.Description, j.Requirements, j.Salary, j.SalaryPerHour,
		j.WorkingHours, j.Location, j.District, j.IsActive, j.Image,
		j.ApplicationDeadline, j.MaxApplicants, j.ContactPerson,
		j.OrganizationName, j.ProjectDetails, j.WorkDuration, j.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", j.ID)
	}
	return nil
}

// ApproveJob flips is_approved to true.
func (db *DB) ApproveJob(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE jobs SET is_approved = TRUE, updated_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to approve job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", id)
	}
	return nil
}

// CountJobs returns total and pending-approval job counts.
func (db *DB) CountJobs(ctx context.Context) (total, pending int, err error) {
	err = db.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT is_approved) FROM jobs`,
	).Scan(&total, &pending)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return total, pending, nil
}

// CountOpenJobs counts postings satisfying the open invariant at the given
// instant: active, approved, deadline not passed, capacity not reached. A job
// is still open at its exact deadline.
func (db *DB) CountOpenJobs(ctx context.Context, now time.Time) (int, error) {
	var n int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs
		 WHERE is_active AND is_approved
		   AND (application_deadline IS NULL OR application_deadline >= $1)
		   AND (max_applicants IS NULL OR current_applicants < max_applicants)`,
		now,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count open jobs: %w", err)
	}
	return n, nil
}

// jobPrefixedColumns qualifies every job column with a table alias for joins.
func jobPrefixedColumns(alias string) string {
	return alias + `.id, ` + alias + `.title, ` + alias + `.description, ` +
		alias + `.requirements, ` + alias + `.salary, ` + alias + `.salary_per_hour, ` +
		alias + `.working_hours, ` + alias + `.location, ` + alias + `.district, ` +
		alias + `.company_id, ` + alias + `.company_name, ` + alias + `.is_active, ` +
		alias + `.is_approved, ` + alias + `.image, ` + alias + `.application_deadline, ` +
		alias + `.max_applicants, ` + alias + `.current_applicants, ` +
		alias + `.contact_person, ` + alias + `.organization_name, ` +
		alias + `.project_details, ` + alias + `.work_duration, ` +
		alias + `.created_at, ` + alias + `.updated_at`
}
