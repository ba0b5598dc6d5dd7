package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/field-tools-mcp/internal/field"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Equal(t, field.DefaultHeightmapOptions(), cfg.Heightmap)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("FIELD_MCP_LOG_LEVEL", "debug")
	t.Setenv("FIELD_MCP_HEIGHTMAP_MAX_SIZE", "256")
	t.Setenv("FIELD_MCP_HEIGHTMAP_CHANNEL", "lightness")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 256, cfg.Heightmap.MaxSize)
	assert.Equal(t, field.ChannelLightness, cfg.Heightmap.Channel)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field-mcp.toml")
	content := `log_format = "json"
metrics_addr = ":9090"

[heightmap]
smooth = 1.5
scale = 100.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, 1.5, cfg.Heightmap.Smooth)
	assert.Equal(t, 100.0, cfg.Heightmap.Scale)
	assert.Equal(t, field.ChannelLuma, cfg.Heightmap.Channel)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("FIELD_MCP_LOG_LEVEL", "warn")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	flags.Int("max-size", 0, "")
	flags.Float64("threshold", 0, "")
	require.NoError(t, flags.Parse([]string{"--log-level=error"}))

	v := New()
	require.NoError(t, BindFlags(v, flags))
	cfg, err := Load(v, "")
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, 0, cfg.Heightmap.MaxSize)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{LogLevel: "info", LogFormat: "text", Heightmap: field.DefaultHeightmapOptions()}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad level", func(c *Config) { c.LogLevel = "chatty" }},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }},
		{"bad channel", func(c *Config) { c.Heightmap.Channel = "hue" }},
		{"negative max size", func(c *Config) { c.Heightmap.MaxSize = -1 }},
		{"negative smooth", func(c *Config) { c.Heightmap.Smooth = -0.5 }},
	}

	c := valid()
	require.NoError(t, c.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			require.ErrorIs(t, c.Validate(), ErrInvalid)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{LogLevel: "warn", LogFormat: "json"}
	log := cfg.NewLogger(&buf)

	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	_, ok := log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)

	log.Info("hidden")
	log.WithField("tool", "field_load").Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"tool":"field_load"`)
}
