// Package config provides configuration loading, defaults, and validation for
// the SolHyCool visualization pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "SOLHYCOOL"

// Bare environment variables honored for the watch gate, in seconds.
const (
	EnvChangeDelay    = "CHANGE_DELAY"
	EnvCooldownPeriod = "COOLDOWN_PERIOD"
)

var (
	ErrConfigFileNotFound = errors.New("config: file not found")
	ErrConfigParseError   = errors.New("config: parse error")
	ErrConfigValidation   = errors.New("config: validation failed")
)

// newViper builds a pre-configured Viper instance: YAML file type, SOLHYCOOL_
// env prefix, automatic env binding, and a key replacer that maps "." → "_"
// so that nested keys like "watch.change_delay" resolve to
// "SOLHYCOOL_WATCH_CHANGE_DELAY".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerDefaults(v)

	// The prefixed name wins over the bare one.
	_ = v.BindEnv("watch.change_delay", envPrefix+"_WATCH_CHANGE_DELAY", EnvChangeDelay)
	_ = v.BindEnv("watch.cooldown_period", envPrefix+"_WATCH_COOLDOWN_PERIOD", EnvCooldownPeriod)
	return v
}

// registerDefaults makes every leaf key known to viper.  Unmarshal only
// consults the environment for keys viper already knows about.
func registerDefaults(v *viper.Viper) {
	v.SetDefault("results.dir", DefaultResultsDir)
	v.SetDefault("results.index_file", DefaultIndexFile)

	v.SetDefault("diagram.template_path", DefaultTemplatePath)
	v.SetDefault("diagram.assets_dir", "")
	v.SetDefault("diagram.output_dir", "")
	v.SetDefault("diagram.output_subdir", DefaultOutputSubdir)
	v.SetDefault("diagram.generate_dark", DefaultGenerateDark)

	v.SetDefault("watch.change_delay", DefaultChangeDelay)
	v.SetDefault("watch.cooldown_period", DefaultCooldown)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.output", DefaultLogOutput)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", DefaultMetricsNS)
	v.SetDefault("metrics.subsystem", DefaultMetricsSub)

	v.SetDefault("server.enabled", false)
	v.SetDefault("server.host", DefaultServerHost)
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.mode", DefaultServerMode)
	v.SetDefault("server.read_timeout", DefaultServerTimeout)
	v.SetDefault("server.write_timeout", DefaultServerTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)

	v.SetDefault("minio.enabled", false)
	v.SetDefault("minio.endpoint", DefaultMinIOEndpoint)
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.bucket", DefaultMinIOBucket)
	v.SetDefault("minio.region", "")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.prefix", DefaultMinIOPrefix)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", DefaultRedisAddr)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 0)
	v.SetDefault("redis.dial_timeout", DefaultRedisTimeout)
	v.SetDefault("redis.read_timeout", DefaultRedisTimeout)
	v.SetDefault("redis.write_timeout", DefaultRedisTimeout)
	v.SetDefault("redis.index_ttl", DefaultRedisIndexTTL)
	v.SetDefault("redis.key_prefix", DefaultRedisPrefix)
	v.SetDefault("redis.lock_ttl", DefaultRedisLockTTL)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{DefaultKafkaBroker})
	v.SetDefault("kafka.topic", DefaultKafkaTopic)
	v.SetDefault("kafka.client_id", DefaultKafkaClientID)
	v.SetDefault("kafka.batch_size", 0)
	v.SetDefault("kafka.batch_timeout", DefaultKafkaBatchTime)
	v.SetDefault("kafka.write_timeout", DefaultKafkaWriteTime)
	v.SetDefault("kafka.required_acks", 1)
}

// Load reads the YAML file at configPath, merges any SOLHYCOOL_* (and bare
// CHANGE_DELAY / COOLDOWN_PERIOD) environment overrides, applies defaults for
// unset fields, and validates the result.  An empty configPath is equivalent
// to LoadFromEnv.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return LoadFromEnv()
	}
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrConfigFileNotFound, configPath, err)
	}

	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrConfigParseError, configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from environment variables, with no
// config file required.
//
// Environment variable naming convention:
//
//	SOLHYCOOL_<SECTION>_<FIELD>   e.g.  SOLHYCOOL_RESULTS_DIR, SOLHYCOOL_REDIS_ADDR
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParseError, err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigValidation, err)
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified on disk.  Only the watch gate
// tunables and log level are meant to be applied at runtime; callers pick the
// safe subset.
//
// Watch is non-blocking; the file watcher goroutine is managed by viper.  If
// the changed file fails to parse or validate, onError is called instead of
// onChange.
func Watch(configPath string, onChange func(*Config), onError func(error)) error {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrConfigParseError, configPath, err)
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

//Personal.AI order the ending
