// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// LogFormat selects the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// Default configuration values.
const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 8080
	DefaultChunkSize      = 1000
	DefaultQueueCapacity  = 10000
	DefaultScoringBuffer  = 100
	DefaultScaleFactor    = 2.0
	DefaultProducerFactor = 2
)

// AppConfig holds the resolved application configuration. It is immutable
// after construction; use the With* options to derive variants.
type AppConfig struct {
	host              string
	port              int
	dataDir           string
	dbURL             string
	logLevel          string
	logFormat         LogFormat
	workerCount       int
	chunkSize         int
	queueCapacity     int
	scoringConfigPath string
	scoringBuffer     int
	scaleFactor       float64
}

// AppConfigOption mutates an AppConfig during construction.
type AppConfigOption func(*AppConfig)

// NewAppConfig creates an AppConfig with defaults applied.
func NewAppConfig(options ...AppConfigOption) AppConfig {
	cfg := AppConfig{
		host:          DefaultHost,
		port:          DefaultPort,
		dataDir:       defaultDataDir(),
		logLevel:      "INFO",
		logFormat:     LogFormatPretty,
		workerCount:   runtime.NumCPU(),
		chunkSize:     DefaultChunkSize,
		queueCapacity: DefaultQueueCapacity,
		scoringBuffer: DefaultScoringBuffer,
		scaleFactor:   DefaultScaleFactor,
	}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) { c.dataDir = dir }
}

// WithDBURL sets the database connection URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log verbosity level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log output format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithWorkerCount sets the scoring/storage worker pool size.
func WithWorkerCount(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.workerCount = n
		}
	}
}

// WithChunkSize sets the storage batch size.
func WithChunkSize(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

// WithQueueCapacity sets the bundle and association queue capacities.
func WithQueueCapacity(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.queueCapacity = n
		}
	}
}

// WithScoringConfigPath sets the datasource registry YAML path.
func WithScoringConfigPath(path string) AppConfigOption {
	return func(c *AppConfig) { c.scoringConfigPath = path }
}

// WithScoringBuffer sets the harmonic scorer buffer capacity.
func WithScoringBuffer(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.scoringBuffer = n
		}
	}
}

// WithScaleFactor sets the rank-decay exponent.
func WithScaleFactor(f float64) AppConfigOption {
	return func(c *AppConfig) {
		if f > 0 {
			c.scaleFactor = f
		}
	}
}

// Host returns the server host.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns the host:port listen address.
func (c AppConfig) Addr() string { return fmt.Sprintf("%s:%d", c.host, c.port) }

// DataDir returns the data directory.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL, defaulting to a SQLite
// database inside the data directory.
func (c AppConfig) DBURL() string {
	if c.dbURL != "" {
		return c.dbURL
	}
	return "sqlite://" + filepath.Join(c.dataDir, "targetlink.db")
}

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// WorkerCount returns the scoring/storage worker pool size.
func (c AppConfig) WorkerCount() int { return c.workerCount }

// ProducerCount returns the evidence producer pool size. Producers are
// I/O bound, so the pool is larger than the scoring pool.
func (c AppConfig) ProducerCount() int { return c.workerCount * DefaultProducerFactor }

// ChunkSize returns the storage batch size.
func (c AppConfig) ChunkSize() int { return c.chunkSize }

// QueueCapacity returns the bundle/association queue capacity.
func (c AppConfig) QueueCapacity() int { return c.queueCapacity }

// ScoringConfigPath returns the datasource registry YAML path, or empty
// when the built-in registry should be used.
func (c AppConfig) ScoringConfigPath() string { return c.scoringConfigPath }

// ScoringBuffer returns the harmonic scorer buffer capacity.
func (c AppConfig) ScoringBuffer() int { return c.scoringBuffer }

// ScaleFactor returns the rank-decay exponent.
func (c AppConfig) ScaleFactor() float64 { return c.scaleFactor }

// EnsureDataDir creates the data directory if it does not exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.dataDir, 0o755)
}

// LoadConfig loads configuration from a .env file (when present) and the
// environment.
func LoadConfig(envFile string) (AppConfig, error) {
	if err := LoadDotEnv(envFile); err != nil {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}
	env, err := LoadFromEnv()
	if err != nil {
		return AppConfig{}, fmt.Errorf("load environment: %w", err)
	}
	return env.ToAppConfig(), nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".targetlink"
	}
	return filepath.Join(home, ".targetlink")
}
