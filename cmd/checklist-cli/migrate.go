package main

import (
	"fmt"

	"checklist_manager/internal/config"
	"checklist_manager/internal/migrations"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and seed the admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			if err := migrations.RunMigrations(cmd.Context(), db, cfg.AdminPassword); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}
}
