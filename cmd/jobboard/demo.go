package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nattapong/sarakham-jobs/internal/db"
)

var demoRole string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Adopt a simulated demo identity",
	Long: `Adopt a local demo identity without contacting the server. The simulated
identity is remembered between commands and overrides any stored token until
you log in for real or log out.`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringVar(&demoRole, "role", "applicant", "Demo role: admin, employer or applicant")
	rootCmd.AddCommand(demoCmd)
}

func demoProfileFor(role db.Role) *db.Profile {
	profile := &db.Profile{ID: uuid.New(), Role: role}
	switch role {
	case db.RoleAdmin:
		profile.Name = "ผู้ดูแลระบบ (ทดลอง)"
		profile.Email = "demo-admin@sarakham.jobs"
	case db.RoleEmployer:
		profile.Name = "นายจ้างทดลอง"
		profile.Email = "demo-employer@sarakham.jobs"
	default:
		profile.Name = "ผู้สมัครทดลอง"
		profile.Email = "demo-applicant@sarakham.jobs"
	}
	return profile
}

func runDemo(cmd *cobra.Command, _ []string) error {
	role := db.Role(demoRole)
	if !role.Valid() {
		return fmt.Errorf("unknown role: %s", demoRole)
	}

	manager, _, err := newSession()
	if err != nil {
		return err
	}
	if err := manager.Initialize(cmd.Context()); err != nil {
		return err
	}

	profile := demoProfileFor(role)
	if err := manager.LoginSimulated(profile); err != nil {
		return err
	}

	fmt.Printf("Now simulating %s (%s)\n", profile.Name, profile.Role)
	return nil
}
