package targetlink

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/targetlink/targetlink/domain/datasource"
	"github.com/targetlink/targetlink/internal/config"
	"github.com/targetlink/targetlink/internal/log"
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	appOptions  []config.AppConfigOption
	logger      *log.Logger
	registry    *datasource.Registry
	registerer  prometheus.Registerer
	haveAppConf bool
	appConfig   config.AppConfig
}

func newClientConfig() *clientConfig {
	return &clientConfig{
		registerer: prometheus.DefaultRegisterer,
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithConfig uses a fully resolved AppConfig instead of building one from
// options.
func WithConfig(cfg config.AppConfig) Option {
	return func(c *clientConfig) {
		c.appConfig = cfg
		c.haveAppConf = true
	}
}

// WithSQLite stores data in a SQLite database at the given path.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.appOptions = append(c.appOptions, config.WithDBURL("sqlite://"+path))
	}
}

// WithPostgres stores data in a PostgreSQL database.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.appOptions = append(c.appOptions, config.WithDBURL(dsn))
	}
}

// WithDataDir sets the data directory.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.appOptions = append(c.appOptions, config.WithDataDir(dir))
	}
}

// WithWorkerCount sets the scoring and storage worker pool size.
func WithWorkerCount(n int) Option {
	return func(c *clientConfig) {
		c.appOptions = append(c.appOptions, config.WithWorkerCount(n))
	}
}

// WithScoringConfig loads the datasource registry from a YAML file.
func WithScoringConfig(path string) Option {
	return func(c *clientConfig) {
		c.appOptions = append(c.appOptions, config.WithScoringConfigPath(path))
	}
}

// WithRegistry uses an explicit datasource registry, overriding both the
// built-in registry and any configured YAML file.
func WithRegistry(registry datasource.Registry) Option {
	return func(c *clientConfig) {
		c.registry = &registry
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *log.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithMetricsRegisterer sets the Prometheus registerer for pipeline metrics.
// Defaults to the global registerer; tests pass an isolated registry.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(c *clientConfig) {
		c.registerer = reg
	}
}
