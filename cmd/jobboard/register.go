package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nattapong/sarakham-jobs/internal/types"
)

var (
	registerEmail    string
	registerPassword string
	registerName     string
	registerRole     string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE:  runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password (min 8 characters)")
	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&registerRole, "role", "applicant", "Account role: employer or applicant")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")
	registerCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	manager, _, err := newSession()
	if err != nil {
		return err
	}
	if err := manager.Initialize(ctx); err != nil {
		return err
	}

	profile, err := manager.Register(ctx, &types.RegisterRequest{
		Email:    registerEmail,
		Password: registerPassword,
		Name:     registerName,
		Role:     registerRole,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Printf("Account created. Signed in as %s (%s)\n", profile.Name, profile.Role)
	return nil
}
