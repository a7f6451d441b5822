package config

import (
	"github.com/iksnae/dm-insights/internal/analytics"
)

// Default values for configuration
const (
	DefaultLogLevel       = "info"
	DefaultTimezoneOffset = 0.0

	DefaultExportDir    = "."
	DefaultExportFormat = "md"
	DefaultExportBundle = true

	DefaultEpisodeGap   = analytics.DefaultEpisodeGap
	DefaultBurstGap     = analytics.DefaultBurstGap
	DefaultBurstMinSize = analytics.DefaultBurstMinSize
	DefaultGapThreshold = analytics.DefaultGapThreshold
	DefaultTopGaps      = analytics.DefaultTopGaps
	DefaultActiveDays   = analytics.DefaultActiveDays
	DefaultRecentDays   = analytics.DefaultRecentDays
)

// ConfigName is the config file name looked up without extension
const ConfigName = "dm-insights"

// EnvPrefix prefixes every environment override, e.g. DMI_EXPORT_FORMAT
const EnvPrefix = "DMI"

var defaults = map[string]interface{}{
	"identity":                 "",
	"timezone_offset":          DefaultTimezoneOffset,
	"log_level":                DefaultLogLevel,
	"export.dir":               DefaultExportDir,
	"export.format":            DefaultExportFormat,
	"export.bundle":            DefaultExportBundle,
	"analytics.episode_gap":    DefaultEpisodeGap,
	"analytics.burst_gap":      DefaultBurstGap,
	"analytics.burst_min_size": DefaultBurstMinSize,
	"analytics.gap_threshold":  DefaultGapThreshold,
	"analytics.top_gaps":       DefaultTopGaps,
	"analytics.active_days":    DefaultActiveDays,
	"analytics.recent_days":    DefaultRecentDays,
}
