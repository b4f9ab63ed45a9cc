package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osse101/PredictionContest_Go/internal/config"
	"github.com/osse101/PredictionContest_Go/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `Applies the embedded goose migrations to the postgres backend and prints
the resulting schema version.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	defer a.Close()

	if a.cfg.StorageBackend != config.StorageBackendPostgres {
		return errors.New("migrate requires the postgres storage backend")
	}
	version, err := database.MigrationVersion(ctx, a.storage.Pool)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
	return err
}
