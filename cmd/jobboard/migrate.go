package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nattapong/sarakham-jobs/internal/db"
	"github.com/nattapong/sarakham-jobs/internal/db/schema"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long:  `Apply any schema migrations that have not yet run against DATABASE_URL. The server also does this on startup; this command exists for running migrations ahead of a deploy.`,
	RunE:  runMigrate,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which migrations have been applied",
	RunE:  runMigrateStatus,
}

func init() {
	migrateCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}

func openDatabase(ctx context.Context) (*db.DB, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	return db.Connect(ctx, databaseURL)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	if err := schema.NewMigrator(database.Pool(), logger).Apply(ctx); err != nil {
		return err
	}

	fmt.Println("Migrations applied.")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	applied, err := schema.NewMigrator(database.Pool(), zap.NewNop()).AppliedMigrations(ctx)
	if err != nil {
		return err
	}

	migrations := schema.All()
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	for _, m := range migrations {
		if at, ok := applied[m.Version]; ok {
			fmt.Printf("  %3d  applied %s  %s\n", m.Version, at.Format("2006-01-02 15:04"), m.Description)
		} else {
			fmt.Printf("  %3d  pending              %s\n", m.Version, m.Description)
		}
	}
	return nil
}
