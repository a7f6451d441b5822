// Package analytics derives statistics from normalized conversations. Every
// function is pure: inputs are never modified and empty input yields zero
// values rather than errors.
package analytics

import "time"

// Defaults for Options
const (
	DefaultEpisodeGap   = 6 * time.Hour
	DefaultBurstGap     = 30 * time.Minute
	DefaultBurstMinSize = 5
	DefaultGapThreshold = 24 * time.Hour
	DefaultTopGaps      = 5
	DefaultActiveDays   = 30
	DefaultRecentDays   = 90
)

// Options tunes the thresholds used by the engine. Now is the reference
// time for streaks, categories, milestones and trends; leaving it zero uses
// the wall clock.
type Options struct {
	EpisodeGap   time.Duration
	BurstGap     time.Duration
	BurstMinSize int
	GapThreshold time.Duration
	TopGaps      int
	ActiveDays   int
	RecentDays   int
	Now          time.Time
}

// DefaultOptions returns the standard thresholds
func DefaultOptions() Options {
	return Options{
		EpisodeGap:   DefaultEpisodeGap,
		BurstGap:     DefaultBurstGap,
		BurstMinSize: DefaultBurstMinSize,
		GapThreshold: DefaultGapThreshold,
		TopGaps:      DefaultTopGaps,
		ActiveDays:   DefaultActiveDays,
		RecentDays:   DefaultRecentDays,
	}
}

// normalize fills unset fields from the defaults
func (o Options) normalize() Options {
	d := DefaultOptions()
	if o.EpisodeGap <= 0 {
		o.EpisodeGap = d.EpisodeGap
	}
	if o.BurstGap <= 0 {
		o.BurstGap = d.BurstGap
	}
	if o.BurstMinSize <= 0 {
		o.BurstMinSize = d.BurstMinSize
	}
	if o.GapThreshold <= 0 {
		o.GapThreshold = d.GapThreshold
	}
	if o.TopGaps <= 0 {
		o.TopGaps = d.TopGaps
	}
	if o.ActiveDays <= 0 {
		o.ActiveDays = d.ActiveDays
	}
	if o.RecentDays <= 0 {
		o.RecentDays = d.RecentDays
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	o.Now = o.Now.UTC()
	return o
}
