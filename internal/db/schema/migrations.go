package schema

// All returns every migration in version order.
func All() []Migration {
	return []Migration{
		createIdentityTables,
		createCompanyAndJobTables,
		createApplicationTables,
		createNotificationAndAdTables,
	}
}

var createIdentityTables = Migration{
	Version:     1,
	Description: "Create auth_users and profiles tables",
	Up: `
		CREATE EXTENSION IF NOT EXISTS pgcrypto;

		CREATE TABLE IF NOT EXISTS auth_users (
			id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email           TEXT NOT NULL UNIQUE,
			password_hash   TEXT NOT NULL,
			email_confirmed BOOLEAN NOT NULL DEFAULT TRUE,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS profiles (
			id            UUID PRIMARY KEY REFERENCES auth_users(id) ON DELETE CASCADE,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL,
			role          TEXT NOT NULL CHECK (role IN ('admin', 'employer', 'applicant')),
			phone         TEXT NOT NULL DEFAULT '',
			address       TEXT NOT NULL DEFAULT '',
			profile_image TEXT NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`,
	Down: `DROP TABLE IF EXISTS profiles; DROP TABLE IF EXISTS auth_users;`,
}

var createCompanyAndJobTables = Migration{
	Version:     2,
	Description: "Create companies and jobs tables",
	Up: `
		CREATE TABLE IF NOT EXISTS companies (
			id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name        TEXT NOT NULL,
			description TEXT NOT NULL,
			address     TEXT NOT NULL,
			phone       TEXT NOT NULL,
			email       TEXT NOT NULL,
			logo        TEXT NOT NULL DEFAULT '',
			owner_id    UUID NOT NULL REFERENCES profiles(id),
			is_approved BOOLEAN NOT NULL DEFAULT FALSE,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_companies_owner ON companies(owner_id);

		CREATE TABLE IF NOT EXISTS jobs (
			id                   UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title                TEXT NOT NULL,
			description          TEXT NOT NULL,
			requirements         TEXT NOT NULL,
			salary               TEXT NOT NULL,
			salary_per_hour      DOUBLE PRECISION,
			working_hours        TEXT NOT NULL,
			location             TEXT NOT NULL,
			district             TEXT NOT NULL DEFAULT '',
			company_id           UUID NOT NULL REFERENCES companies(id),
			company_name         TEXT NOT NULL,
			is_active            BOOLEAN NOT NULL DEFAULT TRUE,
			is_approved          BOOLEAN NOT NULL DEFAULT FALSE,
			image                TEXT NOT NULL DEFAULT '',
			application_deadline TIMESTAMPTZ,
			max_applicants       INT,
			current_applicants   INT NOT NULL DEFAULT 0,
			contact_person       TEXT NOT NULL DEFAULT '',
			organization_name    TEXT NOT NULL DEFAULT '',
			project_details      TEXT NOT NULL DEFAULT '',
			work_duration        TEXT NOT NULL DEFAULT '',
			created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_jobs_company ON jobs(company_id);
		CREATE INDEX IF NOT EXISTS idx_jobs_visibility ON jobs(is_approved, is_active);
	`,
	Down: `DROP TABLE IF EXISTS jobs; DROP TABLE IF EXISTS companies;`,
}

var createApplicationTables = Migration{
	Version:     3,
	Description: "Create job_applications table",
	Up: `
		CREATE TABLE IF NOT EXISTS job_applications (
			id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			job_id           UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
			applicant_id     UUID NOT NULL REFERENCES profiles(id),
			applicant_name   TEXT NOT NULL,
			applicant_email  TEXT NOT NULL,
			cover_letter     TEXT NOT NULL,
			resume           TEXT NOT NULL DEFAULT '',
			status           TEXT NOT NULL DEFAULT 'pending'
			                 CHECK (status IN ('pending', 'approved', 'rejected')),
			job_title        TEXT NOT NULL,
			company_name     TEXT NOT NULL,
			skills           JSONB NOT NULL DEFAULT '[]',
			experience_years INT,
			phone            TEXT NOT NULL DEFAULT '',
			address          TEXT NOT NULL DEFAULT '',
			created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		-- No UNIQUE(job_id, applicant_id): repeat submissions are allowed.
		CREATE INDEX IF NOT EXISTS idx_applications_job ON job_applications(job_id);
		CREATE INDEX IF NOT EXISTS idx_applications_applicant ON job_applications(applicant_id);
	`,
	Down: `DROP TABLE IF EXISTS job_applications;`,
}

var createNotificationAndAdTables = Migration{
	Version:     4,
	Description: "Create notifications and advertisements tables",
	Up: `
		CREATE TABLE IF NOT EXISTS notifications (
			id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id    UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			title      TEXT NOT NULL,
			message    TEXT NOT NULL,
			type       TEXT NOT NULL DEFAULT 'info'
			           CHECK (type IN ('info', 'success', 'warning', 'error')),
			is_read    BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id);

		CREATE TABLE IF NOT EXISTS advertisements (
			id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title       TEXT NOT NULL,
			description TEXT NOT NULL,
			image_url   TEXT NOT NULL DEFAULT '',
			link_url    TEXT NOT NULL DEFAULT '',
			position    TEXT NOT NULL CHECK (position IN ('banner', 'sidebar', 'footer')),
			is_active   BOOLEAN NOT NULL DEFAULT TRUE,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`,
	Down: `DROP TABLE IF EXISTS advertisements; DROP TABLE IF EXISTS notifications;`,
}
