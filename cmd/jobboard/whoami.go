package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nattapong/sarakham-jobs/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	manager, _, err := newSession()
	if err != nil {
		return err
	}
	if err := manager.Initialize(ctx); err != nil {
		return err
	}

	snap := manager.Current()
	switch snap.State {
	case session.StateAnonymous:
		fmt.Println("Not signed in.")
	case session.StateSimulated:
		fmt.Printf("Simulating %s (%s): demo identity, not signed in to the server\n",
			snap.Profile.Name, snap.Profile.Role)
	case session.StateAuthenticated:
		fmt.Printf("Signed in as %s (%s)\n", snap.Profile.Name, snap.Profile.Role)
		if snap.Profile.Email != "" {
			fmt.Printf("  email: %s\n", snap.Profile.Email)
		}
		if snap.Profile.Phone != "" {
			fmt.Printf("  phone: %s\n", snap.Profile.Phone)
		}
	default:
		fmt.Printf("Session state: %s\n", snap.State)
	}
	return nil
}
