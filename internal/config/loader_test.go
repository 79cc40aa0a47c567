package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
results:
  dir: "/data/results"
  index_file: "results.json"
diagram:
  template_path: "/data/assets/template.svg"
  generate_dark: true
watch:
  change_delay: 5
  cooldown_period: 30
log:
  level: "debug"
  format: "console"
server:
  enabled: true
  port: 9090
  mode: "release"
kafka:
  enabled: true
  brokers: ["k1:9092", "k2:9092"]
  topic: "events"
`

func createTempConfigFile(t *testing.T, content string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func setEnvVars(t *testing.T, vars map[string]string) {
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoad_FromFile_ValidConfig(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/results", cfg.Results.Dir)
	assert.Equal(t, "/data/assets/template.svg", cfg.Diagram.TemplatePath)
	assert.True(t, cfg.Diagram.GenerateDark)
	assert.Equal(t, 5*time.Second, cfg.Watch.ChangeDelayDuration())
	assert.Equal(t, 30*time.Second, cfg.Watch.CooldownDuration())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_FromFile_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrConfigFileNotFound)
}

func TestLoad_FromFile_InvalidYAML(t *testing.T) {
	path := createTempConfigFile(t, "invalid_yaml: [")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrConfigParseError)
}

func TestLoad_FromFile_ValidationFailure(t *testing.T) {
	path := createTempConfigFile(t, `
log:
  level: "verbose"
`)
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrConfigValidation)
}

func TestLoad_EmptyPathUsesEnv(t *testing.T) {
	setEnvVars(t, map[string]string{"SOLHYCOOL_RESULTS_DIR": "/env/results"})
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/env/results", cfg.Results.Dir)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	setEnvVars(t, map[string]string{
		"SOLHYCOOL_SERVER_PORT":           "9999",
		"SOLHYCOOL_DIAGRAM_GENERATE_DARK": "false",
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.False(t, cfg.Diagram.GenerateDark)
}

func TestLoadFromEnv_BareWatchVariables(t *testing.T) {
	setEnvVars(t, map[string]string{
		EnvChangeDelay:    "2.5",
		EnvCooldownPeriod: "10",
	})

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, cfg.Watch.ChangeDelayDuration())
	assert.Equal(t, 10*time.Second, cfg.Watch.CooldownDuration())
}

func TestLoadFromEnv_PrefixedWinsOverBare(t *testing.T) {
	setEnvVars(t, map[string]string{
		"SOLHYCOOL_WATCH_CHANGE_DELAY": "1",
		EnvChangeDelay:                 "7",
	})

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Watch.ChangeDelayDuration())
}

func TestLoadFromEnv_ExplicitZeroDelayKept(t *testing.T) {
	setEnvVars(t, map[string]string{EnvChangeDelay: "0"})

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Zero(t, cfg.Watch.ChangeDelay)
	assert.Equal(t, DefaultCooldown, cfg.Watch.CooldownPeriod)
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultResultsDir, cfg.Results.Dir)
	assert.Equal(t, DefaultIndexFile, cfg.Results.IndexFile)
	assert.Equal(t, DefaultOutputSubdir, cfg.Diagram.OutputSubdir)
	assert.False(t, cfg.Diagram.GenerateDark)
	assert.Equal(t, 20*time.Second, cfg.Watch.ChangeDelayDuration())
	assert.Equal(t, 60*time.Second, cfg.Watch.CooldownDuration())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "solhycool", cfg.Metrics.Namespace)
	assert.Equal(t, DefaultRedisIndexTTL, cfg.Redis.IndexTTL)
}

func TestLoadFromEnv_KafkaBrokersCommaSeparated(t *testing.T) {
	setEnvVars(t, map[string]string{"SOLHYCOOL_KAFKA_BROKERS": "a:9092,b:9092"})

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
}

func TestWatch_InvalidFile(t *testing.T) {
	path := createTempConfigFile(t, "invalid_yaml: [")
	err := Watch(path, func(*Config) {}, nil)
	assert.ErrorIs(t, err, ErrConfigParseError)
}

//Personal.AI order the ending
