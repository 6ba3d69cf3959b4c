package cmd

import (
	"fmt"

	"github.com/revlence/transcribe-api/internal/database"
	"github.com/revlence/transcribe-api/internal/models"
	"github.com/revlence/transcribe-api/pkg/config"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the metadata store schema for the Transcribe API.

Available subcommands:
  up      - Apply pending migrations
  status  - Show current migration status`,
}

// migrateUpCmd applies pending migrations
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE:  runMigrateUp,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.LogQueries)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.TranscriptionMeta{}); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.LogQueries)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	if db.Migrator().HasTable(&models.TranscriptionMeta{}) {
		fmt.Fprintln(out, "transcriptions: present")
	} else {
		fmt.Fprintln(out, "transcriptions: missing (run 'migrate up')")
	}

	return nil
}
