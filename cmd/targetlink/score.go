package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func scoreCmd() *cobra.Command {
	var (
		envFile string
		targets []string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Run the association scoring pipeline",
		Long: `Run the association scoring pipeline.

Every target with evidence is scored against every disease its evidence
expands to, and the resulting association documents are written to the
database, replacing any previous run.

Environment variables:
  DATA_DIR          Data directory (default: ~/.targetlink)
  DB_URL            Database URL (default: sqlite://{data_dir}/targetlink.db)
  WORKER_COUNT      Scoring/storage worker pool size (default: CPU count)
  CHUNK_SIZE        Storage batch size (default: 1000)
  QUEUE_CAPACITY    Pipeline queue capacity (default: 10000)
  SCORING_CONFIG    Datasource registry YAML (default: built-in registry)
  SCORING_BUFFER    Harmonic scorer buffer capacity (default: 100)
  SCALE_FACTOR      Rank-decay exponent (default: 2.0)
  LOG_LEVEL         DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT        pretty, json (default: pretty)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}

			client, logger, err := newClient(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			stats, err := client.Score(cmd.Context(), targets...)
			if err != nil {
				return fmt.Errorf("score: %w", err)
			}

			logger.Info("scoring complete",
				"run_id", stats.RunID,
				"targets", stats.Targets,
				"bundles", stats.Bundles,
				"stored", stats.Stored,
				"duration", stats.Duration.String(),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")
	cmd.Flags().StringSliceVar(&targets, "target", nil, "Score only the given target ids (repeatable)")

	return cmd
}
