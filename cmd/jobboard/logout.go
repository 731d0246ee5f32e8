package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	manager, _, err := newSession()
	if err != nil {
		return err
	}
	if err := manager.Initialize(ctx); err != nil {
		return err
	}

	if err := manager.Logout(ctx); err != nil {
		// The local session is gone either way.
		fmt.Printf("Signed out locally (server said: %v)\n", err)
		return nil
	}

	fmt.Println("Signed out.")
	return nil
}
