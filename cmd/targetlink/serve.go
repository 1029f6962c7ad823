package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/targetlink/targetlink/infrastructure/api"
	"github.com/targetlink/targetlink/internal/config"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Endpoints:
  GET /api/v1/associations/{id}        Association document by id
  GET /api/v1/associations?target=ID   Associations for a target, strongest first
  GET /healthz                         Health check
  GET /metrics                         Prometheus metrics

Environment variables:
  HOST         Server host to bind to (default: 0.0.0.0)
  PORT         Server port to listen on (default: 8080)
  DATA_DIR     Data directory (default: ~/.targetlink)
  DB_URL       Database URL (default: sqlite://{data_dir}/targetlink.db)
  LOG_LEVEL    DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT   pretty, json (default: pretty)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") || cmd.Flags().Changed("port") {
				cfg = overrideAddr(cfg, host, port, cmd.Flags().Changed("host"), cmd.Flags().Changed("port"))
			}

			client, logger, err := newClient(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			server := api.NewAPIServer(client.Associations, logger.Slog())

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.ListenAndServe(cfg.Addr())
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-stop:
				logger.Info("received signal, shutting down", "signal", sig.String())
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")
	cmd.Flags().StringVar(&host, "host", config.DefaultHost, "Host to bind to")
	cmd.Flags().IntVar(&port, "port", config.DefaultPort, "Port to listen on")

	return cmd
}

// overrideAddr rebuilds the config with flag-provided listen address parts.
func overrideAddr(cfg config.AppConfig, host string, port int, hostSet, portSet bool) config.AppConfig {
	options := []config.AppConfigOption{
		config.WithHost(cfg.Host()),
		config.WithPort(cfg.Port()),
		config.WithDataDir(cfg.DataDir()),
		config.WithDBURL(cfg.DBURL()),
		config.WithLogLevel(cfg.LogLevel()),
		config.WithLogFormat(cfg.LogFormat()),
		config.WithWorkerCount(cfg.WorkerCount()),
		config.WithChunkSize(cfg.ChunkSize()),
		config.WithQueueCapacity(cfg.QueueCapacity()),
		config.WithScoringConfigPath(cfg.ScoringConfigPath()),
		config.WithScoringBuffer(cfg.ScoringBuffer()),
		config.WithScaleFactor(cfg.ScaleFactor()),
	}
	if hostSet {
		options = append(options, config.WithHost(host))
	}
	if portSet {
		options = append(options, config.WithPort(port))
	}
	return config.NewAppConfig(options...)
}
