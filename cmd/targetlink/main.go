// Package main is the entry point for the targetlink CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/targetlink/targetlink/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targetlink",
		Short: "Target-disease association scoring",
		Long:  `Targetlink loads biomedical evidence records and aggregates them into scored target-disease association documents.`,
	}

	cmd.AddCommand(loadCmd())
	cmd.AddCommand(scoreCmd())
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from a .env file and the environment.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
