// Package main provides the entry point for the Sarakham Jobs server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobboard",
	Short: "Sarakham Jobs part-time job board",
	Long:  "Sarakham Jobs is a part-time job board for Maha Sarakham province: employers post jobs, job seekers browse and apply, and admins approve listings.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
