package main

import (
	"fmt"

	"vendordesk/internal/db"
	"vendordesk/internal/logger"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the product catalog and a demo client",
	Long: `Insert the standard software catalog and, with --demo, a sample client.

Seeding is idempotent: existing codes are left untouched via ON CONFLICT DO NOTHING.

Required environment variables:
  DATABASE_URL - PostgreSQL connection string`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().Bool("demo", false, "Also insert a demo client")
}

// catalog is the vendor's standard product list.
var catalog = []struct {
	Code string
	Name string
}{
	{"ERP-CORE", "ERP Core Suite"},
	{"ERP-HR", "HR & Payroll Module"},
	{"ERP-INV", "Inventory Module"},
	{"ERP-FIN", "Finance Module"},
	{"ERP-CRM", "CRM Module"},
	{"ERP-WEB", "Web Portal"},
}

func runSeed(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("seed")
	demo, _ := cmd.Flags().GetBool("demo")

	ctx := cmd.Context()
	pool, err := db.NewPool(ctx)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	for _, p := range catalog {
		if _, err := pool.Exec(ctx, `
			INSERT INTO products (code, name) VALUES ($1, $2)
			ON CONFLICT (code) DO NOTHING
		`, p.Code, p.Name); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.Code, err)
		}
	}
	log.Info().Int("products", len(catalog)).Msg("catalog seeded")

	if demo {
		if _, err := pool.Exec(ctx, `
			INSERT INTO clients (code, name, contact_person, email, phone, city, gst_number)
			VALUES ('DEMO', 'Demo Industries Pvt Ltd', 'A. Operator', 'ops@demo.example', '+91 98000 00000', 'Pune', '27AAAAA0000A1Z5')
			ON CONFLICT (code) DO NOTHING
		`); err != nil {
			return fmt.Errorf("failed to seed demo client: %w", err)
		}
		log.Info().Msg("demo client seeded")
	}

	return nil
}
