package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/targetlink/targetlink/application/loader"
)

func loadCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "load <kind> <file>",
		Short: "Ingest a JSON-lines data file",
		Long: `Ingest a JSON-lines data file into the database.

Supported kinds:
  evidence   Evidence records linking targets to diseases
  genes      Gene (target) metadata
  diseases   Disease metadata`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := loader.ParseKind(args[0])
			if err != nil {
				return err
			}

			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}

			client, logger, err := newClient(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			stats, err := client.Load(cmd.Context(), kind, args[1])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[1], err)
			}

			logger.Info("load complete",
				"kind", string(kind),
				"loaded", stats.Loaded,
				"skipped", stats.Skipped,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")
	return cmd
}
