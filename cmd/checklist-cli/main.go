package main

import (
	"fmt"
	"os"

	"checklist_manager/internal/config"
	"checklist_manager/internal/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var Version = "dev"

var databaseURL string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "checklist-cli",
		Short:         "Maintenance commands for recurring checklist subtasks",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database", "", "database URL (defaults to DATABASE_URL)")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(reconcileCmd())
	rootCmd.AddCommand(delaySecondsCmd())
	rootCmd.AddCommand(durationSecondsCmd())
	return rootCmd
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	url := databaseURL
	if url == "" {
		url = cfg.DatabaseURL
	}
	return database.Initialize(url, cfg.DBLogLevel)
}
