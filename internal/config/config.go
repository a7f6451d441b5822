// Package config loads dm-insights settings from defaults, an optional YAML
// file, DMI_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/iksnae/dm-insights/internal/analytics"
	"github.com/iksnae/dm-insights/internal/session"
)

// ErrConfiguration wraps every loading or validation failure
var ErrConfiguration = errors.New("configuration error")

// Config holds every setting of the tool
type Config struct {
	Identity       string          `mapstructure:"identity"`
	TimezoneOffset float64         `mapstructure:"timezone_offset" validate:"gte=-12,lte=14"`
	LogLevel       string          `mapstructure:"log_level"       validate:"oneof=debug info warn error"`
	Export         ExportConfig    `mapstructure:"export"`
	Analytics      AnalyticsConfig `mapstructure:"analytics"`
}

// ExportConfig controls where and how reports are written
type ExportConfig struct {
	Dir    string `mapstructure:"dir"    validate:"required"`
	Format string `mapstructure:"format" validate:"oneof=md json yaml jsonl sqlite"`
	Bundle bool   `mapstructure:"bundle"`
}

// AnalyticsConfig overrides the analytics thresholds
type AnalyticsConfig struct {
	EpisodeGap   time.Duration `mapstructure:"episode_gap"    validate:"min=1m"`
	BurstGap     time.Duration `mapstructure:"burst_gap"      validate:"min=1s"`
	BurstMinSize int           `mapstructure:"burst_min_size" validate:"min=2"`
	GapThreshold time.Duration `mapstructure:"gap_threshold"  validate:"min=1m"`
	TopGaps      int           `mapstructure:"top_gaps"       validate:"min=1,max=100"`
	ActiveDays   int           `mapstructure:"active_days"    validate:"min=1"`
	RecentDays   int           `mapstructure:"recent_days"    validate:"gtfield=ActiveDays"`
}

// Load reads configuration. An empty path searches the working directory and
// $HOME/.config/dm-insights for dm-insights.yaml; a missing file is fine
// unless the path was given explicitly. Flags that were set on the command
// line override everything else.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return cfg, nil
}

// flagKeys maps config keys onto the command-line flags that override them
var flagKeys = map[string]string{
	"identity":        "identity",
	"timezone_offset": "tz-offset",
	"log_level":       "log-level",
	"export.dir":      "out-dir",
	"export.format":   "format",
}

func readConfigFile(v *viper.Viper, path string) error {
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %v", path, err)
		}
		return nil
	}

	v.SetConfigName(ConfigName)
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", ConfigName))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %v", err)
		}
	}
	return nil
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// AnalyticsOptions converts the analytics settings
func (c *Config) AnalyticsOptions() analytics.Options {
	return analytics.Options{
		EpisodeGap:   c.Analytics.EpisodeGap,
		BurstGap:     c.Analytics.BurstGap,
		BurstMinSize: c.Analytics.BurstMinSize,
		GapThreshold: c.Analytics.GapThreshold,
		TopGaps:      c.Analytics.TopGaps,
		ActiveDays:   c.Analytics.ActiveDays,
		RecentDays:   c.Analytics.RecentDays,
	}
}

// SessionOptions converts the settings used to process an upload
func (c *Config) SessionOptions() session.Options {
	return session.Options{
		TimezoneOffset: c.TimezoneOffset,
		Analytics:      c.AnalyticsOptions(),
	}
}
