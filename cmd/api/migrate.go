package main

import (
	"fmt"
	"log/slog"

	"github.com/congeflow/leave-backend-go/internal/config"
	"github.com/congeflow/leave-backend-go/internal/repository/postgresql"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "apply the embedded PostgreSQL schema migrations",
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
}

func runMigration(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if err := postgresql.Migrate(cmd.Context(), cfg.DatabaseURL(), migrateRollback); err != nil {
		return err
	}

	slog.Info("Migrations applied", "rollback", migrateRollback)
	return nil
}
