package main

import (
	"fmt"
	"os"

	"vendordesk/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:     "adminctl",
	Short:   "Administrative CLI for the vendordesk database",
	Long:    `adminctl applies schema migrations and seeds reference data for a vendordesk installation.`,
	Version: version,
}

func main() {
	_ = godotenv.Load()

	if err := logger.Setup(logger.FromEnv()); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
