// Package config loads runtime settings from flags, FIELD_MCP_* environment
// variables and an optional config file, and builds the process logger.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ironsheep/field-tools-mcp/internal/field"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "FIELD_MCP"

// Config holds all runtime settings.
type Config struct {
	LogLevel    string                 `mapstructure:"log_level"`
	LogFormat   string                 `mapstructure:"log_format"`
	MetricsAddr string                 `mapstructure:"metrics_addr"`
	Heightmap   field.HeightmapOptions `mapstructure:"heightmap"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	hm := field.DefaultHeightmapOptions()

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("metrics_addr", "")
	v.SetDefault("heightmap.channel", string(hm.Channel))
	v.SetDefault("heightmap.max_size", hm.MaxSize)
	v.SetDefault("heightmap.smooth", hm.Smooth)
	v.SetDefault("heightmap.scale", hm.Scale)
}

// New returns a viper instance with defaults and environment binding set up.
// Nested keys map to variables with dots replaced by underscores, so
// heightmap.max_size reads FIELD_MCP_HEIGHTMAP_MAX_SIZE.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"log-level":    "log_level",
	"log-format":   "log_format",
	"metrics-addr": "metrics_addr",
	"channel":      "heightmap.channel",
	"max-size":     "heightmap.max_size",
	"smooth":       "heightmap.smooth",
	"scale":        "heightmap.scale",
}

// BindFlags binds whichever of the known flags exist in flags to their keys.
// Flags that were not set on the command line do not override other sources.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the optional config file at path (any format viper knows by
// extension) and decodes the merged settings.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid setting")

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalid, c.LogFormat)
	}
	switch c.Heightmap.Channel {
	case "", field.ChannelLuma, field.ChannelLightness:
	default:
		return fmt.Errorf("%w: heightmap.channel %q", ErrInvalid, c.Heightmap.Channel)
	}
	if c.Heightmap.MaxSize < 0 || c.Heightmap.Smooth < 0 {
		return fmt.Errorf("%w: heightmap sizes must not be negative", ErrInvalid)
	}
	return nil
}

// NewLogger builds a logger writing to w (stderr when nil). stdout is never
// used since it carries the protocol stream.
func (c *Config) NewLogger(w io.Writer) *logrus.Logger {
	if w == nil {
		w = os.Stderr
	}
	log := logrus.New()
	log.SetOutput(w)

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}
	return log
}
