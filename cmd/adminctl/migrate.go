package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"vendordesk/internal/db"
	"vendordesk/internal/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply SQL migrations in order",
	Long: `Apply every .sql file from the migrations directory, in lexical order.

Migrations are written to be idempotent (CREATE TABLE IF NOT EXISTS), so
re-running the command against an up-to-date database is safe.

Required environment variables:
  DATABASE_URL - PostgreSQL connection string`,
	Example: `  adminctl migrate
  adminctl migrate --dir ./migrations`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().String("dir", "migrations", "Directory containing .sql migration files")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("migrate")
	dir, _ := cmd.Flags().GetString("dir")

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no .sql files found in %s", dir)
	}
	sort.Strings(files)

	ctx := cmd.Context()
	pool, err := db.NewPool(ctx)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	for _, file := range files {
		sql, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("migration %s failed: %w", file, err)
		}
		log.Info().Str("file", file).Msg("migration applied")
	}

	log.Info().Int("count", len(files)).Msg("migrations complete")
	return nil
}
