package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return NewDefaultConfig()
}

func TestValidate_DefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"empty results dir", func(c *Config) { c.Results.Dir = "" }, "results.dir"},
		{"empty index file", func(c *Config) { c.Results.IndexFile = "" }, "results.index_file"},
		{"negative change delay", func(c *Config) { c.Watch.ChangeDelay = -1 }, "watch.change_delay"},
		{"negative cooldown", func(c *Config) { c.Watch.CooldownPeriod = -1 }, "watch.cooldown_period"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"metrics without namespace", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Namespace = "" }, "metrics.namespace"},
		{"server bad port", func(c *Config) { c.Server.Enabled = true; c.Server.Port = 70000 }, "server.port"},
		{"server bad mode", func(c *Config) { c.Server.Enabled = true; c.Server.Mode = "prod" }, "server.mode"},
		{"minio without bucket", func(c *Config) { c.MinIO.Enabled = true; c.MinIO.Bucket = "" }, "minio.bucket"},
		{"redis without addr", func(c *Config) { c.Redis.Enabled = true; c.Redis.Addr = "" }, "redis.addr"},
		{"kafka without brokers", func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Brokers = nil }, "kafka.brokers"},
		{"kafka without topic", func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Topic = "" }, "kafka.topic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.want)
			}
		})
	}
}

func TestValidate_DisabledPublishersNotChecked(t *testing.T) {
	c := validConfig()
	c.MinIO.Bucket = ""
	c.Kafka.Brokers = nil
	c.Redis.Addr = ""
	assert.NoError(t, c.Validate())
}

func TestConfig_Paths(t *testing.T) {
	c := validConfig()
	c.Results.Dir = "/data/results"
	c.Diagram.TemplatePath = "/data/assets/template.svg"

	assert.Equal(t, filepath.Join("/data/results", "results.json"), c.IndexPath())
	assert.Equal(t, filepath.Join("/data/results", "diagrams"), c.DiagramOutputDir())
	assert.Equal(t, "/data/assets", c.AssetsDir())

	c.Results.IndexFile = "/elsewhere/index.json"
	c.Diagram.OutputDir = "/out"
	c.Diagram.AssetsDir = "/icons"
	assert.Equal(t, "/elsewhere/index.json", c.IndexPath())
	assert.Equal(t, "/out", c.DiagramOutputDir())
	assert.Equal(t, "/icons", c.AssetsDir())
}

//Personal.AI order the ending
