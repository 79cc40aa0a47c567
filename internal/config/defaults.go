package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultResultsDir = "results"
	DefaultIndexFile  = "results.json"

	DefaultTemplatePath  = "assets/diagram_template.svg"
	DefaultOutputSubdir  = "diagrams"
	DefaultGenerateDark  = false
	DefaultChangeDelay   = 20.0
	DefaultCooldown      = 60.0
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	DefaultLogOutput     = "stdout"
	DefaultMetricsNS     = "solhycool"
	DefaultMetricsSub    = "pipeline"
	DefaultServerHost    = "0.0.0.0"
	DefaultServerPort    = 8090
	DefaultServerMode    = "release"
	DefaultMinIOEndpoint = "localhost:9000"
	DefaultMinIOBucket   = "solhycool"
	DefaultMinIOPrefix   = "visualizations/"
	DefaultRedisAddr     = "localhost:6379"
	DefaultRedisPrefix   = "solhycool:"
	DefaultKafkaBroker   = "localhost:9092"
	DefaultKafkaTopic    = "solhycool.pipeline"
	DefaultKafkaClientID = "solhycool"
)

var (
	DefaultServerTimeout   = 10 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
	DefaultRedisIndexTTL   = 24 * time.Hour
	DefaultRedisLockTTL    = 2 * time.Minute
	DefaultRedisTimeout    = 3 * time.Second
	DefaultKafkaBatchTime  = 100 * time.Millisecond
	DefaultKafkaWriteTime  = 10 * time.Second
)

// ─────────────────────────────────────────────────────────────────────────────
// ApplyDefaults fills zero-value fields in cfg with well-known defaults.
// It must be called after unmarshalling raw config data and before Validate()
// so that optional-but-defaulted fields are never seen as missing.
// ─────────────────────────────────────────────────────────────────────────────

// ApplyDefaults fills every zero-value field in cfg with the default.  Fields
// that have already been set (non-zero values) are left unchanged so that
// explicit configuration always wins.  Booleans are not touched: false is
// their default.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Results ───────────────────────────────────────────────────────────────
	if cfg.Results.Dir == "" {
		cfg.Results.Dir = DefaultResultsDir
	}
	if cfg.Results.IndexFile == "" {
		cfg.Results.IndexFile = DefaultIndexFile
	}

	// ── Diagram ───────────────────────────────────────────────────────────────
	if cfg.Diagram.TemplatePath == "" {
		cfg.Diagram.TemplatePath = DefaultTemplatePath
	}
	if cfg.Diagram.OutputSubdir == "" {
		cfg.Diagram.OutputSubdir = DefaultOutputSubdir
	}

	// ── Watch ─────────────────────────────────────────────────────────────────
	// Zero is a legal gate setting, so the watch tunables are defaulted by the
	// loader's viper defaults and by NewDefaultConfig, never here.

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = DefaultLogOutput
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNS
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSub
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// ── MinIO ─────────────────────────────────────────────────────────────────
	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = DefaultMinIOBucket
	}
	if cfg.MinIO.Prefix == "" {
		cfg.MinIO.Prefix = DefaultMinIOPrefix
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisPrefix
	}
	if cfg.Redis.IndexTTL == 0 {
		cfg.Redis.IndexTTL = DefaultRedisIndexTTL
	}
	if cfg.Redis.LockTTL == 0 {
		cfg.Redis.LockTTL = DefaultRedisLockTTL
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = DefaultRedisTimeout
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = DefaultRedisTimeout
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = DefaultRedisTimeout
	}
	// DB is an int; 0 is a valid explicit value and also the default.

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = DefaultKafkaTopic
	}
	if cfg.Kafka.ClientID == "" {
		cfg.Kafka.ClientID = DefaultKafkaClientID
	}
	if cfg.Kafka.BatchTimeout == 0 {
		cfg.Kafka.BatchTimeout = DefaultKafkaBatchTime
	}
	if cfg.Kafka.WriteTimeout == 0 {
		cfg.Kafka.WriteTimeout = DefaultKafkaWriteTime
	}
}

// NewDefaultConfig returns a Config with every default applied.
func NewDefaultConfig() *Config {
	cfg := &Config{
		Watch: WatchConfig{
			ChangeDelay:    DefaultChangeDelay,
			CooldownPeriod: DefaultCooldown,
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

//Personal.AI order the ending
