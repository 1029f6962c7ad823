package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.targetlink
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite://{data_dir}/targetlink.db
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// WorkerCount is the scoring/storage worker pool size.
	// Env: WORKER_COUNT (default: number of CPUs)
	WorkerCount int `envconfig:"WORKER_COUNT"`

	// ChunkSize is the storage write batch size.
	// Env: CHUNK_SIZE (default: 1000)
	ChunkSize int `envconfig:"CHUNK_SIZE"`

	// QueueCapacity bounds the bundle and association queues.
	// Env: QUEUE_CAPACITY (default: 10000)
	QueueCapacity int `envconfig:"QUEUE_CAPACITY"`

	// ScoringConfig is the datasource registry YAML path.
	// Env: SCORING_CONFIG
	ScoringConfig string `envconfig:"SCORING_CONFIG"`

	// ScoringBuffer is the harmonic scorer buffer capacity.
	// Env: SCORING_BUFFER (default: 100)
	ScoringBuffer int `envconfig:"SCORING_BUFFER"`

	// ScaleFactor is the rank-decay exponent.
	// Env: SCALE_FACTOR (default: 2)
	ScaleFactor float64 `envconfig:"SCALE_FACTOR"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix, e.g.
// prefix "TARGETLINK" requires TARGETLINK_DB_URL instead of DB_URL.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	var options []AppConfigOption

	if e.Host != "" {
		options = append(options, WithHost(e.Host))
	}
	if e.Port != 0 {
		options = append(options, WithPort(e.Port))
	}
	if e.DataDir != "" {
		options = append(options, WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		options = append(options, WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		options = append(options, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		options = append(options, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.WorkerCount > 0 {
		options = append(options, WithWorkerCount(e.WorkerCount))
	}
	if e.ChunkSize > 0 {
		options = append(options, WithChunkSize(e.ChunkSize))
	}
	if e.QueueCapacity > 0 {
		options = append(options, WithQueueCapacity(e.QueueCapacity))
	}
	if e.ScoringConfig != "" {
		options = append(options, WithScoringConfigPath(e.ScoringConfig))
	}
	if e.ScoringBuffer > 0 {
		options = append(options, WithScoringBuffer(e.ScoringBuffer))
	}
	if e.ScaleFactor > 0 {
		options = append(options, WithScaleFactor(e.ScaleFactor))
	}

	return NewAppConfig(options...)
}

func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
