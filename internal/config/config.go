// Package config defines all configuration structures for the SolHyCool
// visualization pipeline.  No I/O or parsing logic lives here, only plain
// data types and validation.
package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ResultsConfig locates the per-operating-point result files and the
// consolidated index written next to them.
type ResultsConfig struct {
	Dir       string `mapstructure:"dir"`
	IndexFile string `mapstructure:"index_file"`
}

// DiagramConfig holds the facility-diagram template and output settings.
type DiagramConfig struct {
	TemplatePath string `mapstructure:"template_path"`
	// AssetsDir defaults to the template's directory.
	AssetsDir string `mapstructure:"assets_dir"`
	// OutputDir overrides <results.dir>/<output_subdir> when set.
	OutputDir    string `mapstructure:"output_dir"`
	OutputSubdir string `mapstructure:"output_subdir"`
	GenerateDark bool   `mapstructure:"generate_dark"`
}

// WatchConfig holds the debounce/cooldown gate tunables, in seconds.
type WatchConfig struct {
	ChangeDelay    float64 `mapstructure:"change_delay"`
	CooldownPeriod float64 `mapstructure:"cooldown_period"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "console"
	Output string `mapstructure:"output"`
}

// MetricsConfig holds Prometheus registry parameters.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Subsystem string `mapstructure:"subsystem"`
}

// ServerConfig holds the status HTTP server tunables.
type ServerConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// MinIOConfig holds MinIO / S3-compatible object-storage parameters used to
// publish rendered diagrams and the consolidated index.
type MinIOConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Prefix    string `mapstructure:"prefix"`
}

// RedisConfig holds Redis connection parameters for the index cache.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IndexTTL     time.Duration `mapstructure:"index_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
	LockTTL      time.Duration `mapstructure:"lock_ttl"`
}

// KafkaConfig holds Apache Kafka producer parameters for pipeline events.
type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	ClientID     string        `mapstructure:"client_id"`
	BatchSize    int           `mapstructure:"batch_size"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	RequiredAcks int           `mapstructure:"required_acks"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure.  It is loaded once by the CLI
// and handed to constructors; nothing re-reads it mid-run.
type Config struct {
	Results ResultsConfig `mapstructure:"results"`
	Diagram DiagramConfig `mapstructure:"diagram"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Server  ServerConfig  `mapstructure:"server"`
	MinIO   MinIOConfig   `mapstructure:"minio"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
}

// IndexPath returns the consolidated index location.
func (c *Config) IndexPath() string {
	if filepath.IsAbs(c.Results.IndexFile) {
		return c.Results.IndexFile
	}
	return filepath.Join(c.Results.Dir, c.Results.IndexFile)
}

// DiagramOutputDir returns the folder rendered diagrams are written to.
func (c *Config) DiagramOutputDir() string {
	if c.Diagram.OutputDir != "" {
		return c.Diagram.OutputDir
	}
	return filepath.Join(c.Results.Dir, c.Diagram.OutputSubdir)
}

// AssetsDir returns the folder holding the alternate icons, dark backgrounds
// and logo variants.
func (c *Config) AssetsDir() string {
	if c.Diagram.AssetsDir != "" {
		return c.Diagram.AssetsDir
	}
	return filepath.Dir(c.Diagram.TemplatePath)
}

// ChangeDelayDuration returns the debounce delay as a Duration.
func (w WatchConfig) ChangeDelayDuration() time.Duration {
	return secondsToDuration(w.ChangeDelay)
}

// CooldownDuration returns the cooldown period as a Duration.
func (w WatchConfig) CooldownDuration() time.Duration {
	return secondsToDuration(w.CooldownPeriod)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	// Results
	if c.Results.Dir == "" {
		return fmt.Errorf("config: results.dir is required")
	}
	if c.Results.IndexFile == "" {
		return fmt.Errorf("config: results.index_file is required")
	}

	// Watch
	if c.Watch.ChangeDelay < 0 {
		return fmt.Errorf("config: watch.change_delay must be ≥ 0, got %v", c.Watch.ChangeDelay)
	}
	if c.Watch.CooldownPeriod < 0 {
		return fmt.Errorf("config: watch.cooldown_period must be ≥ 0, got %v", c.Watch.CooldownPeriod)
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	// Metrics
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("config: metrics.namespace is required when metrics are enabled")
	}

	// Server
	if c.Server.Enabled {
		if c.Server.Port < 1 || c.Server.Port > 65535 {
			return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
		}
		switch c.Server.Mode {
		case "debug", "release", "test":
		default:
			return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
		}
	}

	// MinIO
	if c.MinIO.Enabled {
		if c.MinIO.Endpoint == "" {
			return fmt.Errorf("config: minio.endpoint is required when minio is enabled")
		}
		if c.MinIO.Bucket == "" {
			return fmt.Errorf("config: minio.bucket is required when minio is enabled")
		}
	}

	// Redis
	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("config: redis.addr is required when redis is enabled")
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("config: redis.db must be ≥ 0, got %d", c.Redis.DB)
		}
	}

	// Kafka
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("config: kafka.brokers must contain at least one broker address")
		}
		if c.Kafka.Topic == "" {
			return fmt.Errorf("config: kafka.topic is required when kafka is enabled")
		}
	}

	return nil
}

//Personal.AI order the ending
