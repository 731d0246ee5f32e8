package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	manager, _, err := newSession()
	if err != nil {
		return err
	}
	if err := manager.Initialize(ctx); err != nil {
		return err
	}

	profile, err := manager.Login(ctx, loginEmail, loginPassword)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Printf("Signed in as %s (%s)\n", profile.Name, profile.Role)
	return nil
}
