package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/templui/habits/internal/config"
	"github.com/templui/habits/internal/db"
)

func MigrateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	cmd.AddCommand(migrateUpCmd(cfg))
	cmd.AddCommand(migrateDownCmd(cfg))
	cmd.AddCommand(migrateStatusCmd(cfg))
	return cmd
}

func migrateUpCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cfg, func(database *sqlx.DB) error {
				if err := db.RunMigrations(database.DB, cfg.DBDriver); err != nil {
					return err
				}
				return printVersion(cmd, cfg, database)
			})
		},
	}
}

func migrateDownCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cfg, func(database *sqlx.DB) error {
				if err := db.MigrateDown(database.DB, cfg.DBDriver); err != nil {
					return err
				}
				return printVersion(cmd, cfg, database)
			})
		},
	}
}

func migrateStatusCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cfg, func(database *sqlx.DB) error {
				return printVersion(cmd, cfg, database)
			})
		},
	}
}

func withDB(cfg *config.Config, fn func(database *sqlx.DB) error) error {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close(database)

	return fn(database)
}

func printVersion(cmd *cobra.Command, cfg *config.Config, database *sqlx.DB) error {
	version, err := db.MigrationVersion(database.DB, cfg.DBDriver)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\n", version)
	return nil
}
