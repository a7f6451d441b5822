package analytics

import (
	"sort"
	"time"

	"github.com/iksnae/dm-insights/internal"
)

const day = 24 * time.Hour

// StreakStats describes runs of consecutive days with at least one message
type StreakStats struct {
	Longest      int       `json:"longest" yaml:"longest"`
	LongestStart time.Time `json:"longest_start,omitempty" yaml:"longest_start,omitempty"`
	LongestEnd   time.Time `json:"longest_end,omitempty" yaml:"longest_end,omitempty"`
	Current      int       `json:"current" yaml:"current"`
}

// Gap is a silence between two adjacent messages
type Gap struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
	Hours float64   `json:"hours" yaml:"hours"`
	Days  float64   `json:"days" yaml:"days"`
}

// activeDays returns the distinct calendar days with messages, in order
func activeDays(messages []internal.Message) []time.Time {
	var days []time.Time
	for _, msg := range messages {
		d := msg.Date()
		if len(days) == 0 || !days[len(days)-1].Equal(d) {
			days = append(days, d)
		}
	}
	return days
}

// ComputeStreaks finds the longest run of consecutive active days and the
// run ending at the last message. The current streak only counts while the
// last message is at most a day old.
func ComputeStreaks(messages []internal.Message, now time.Time) StreakStats {
	var stats StreakStats
	days := activeDays(messages)
	if len(days) == 0 {
		return stats
	}

	runStart, run := 0, 1
	stats.Longest = 1
	stats.LongestStart, stats.LongestEnd = days[0], days[0]
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == day {
			run++
		} else {
			runStart, run = i, 1
		}
		if run > stats.Longest {
			stats.Longest = run
			stats.LongestStart, stats.LongestEnd = days[runStart], days[i]
		}
	}

	last := messages[len(messages)-1].Timestamp
	if now.Sub(last) <= day {
		stats.Current = run
	}
	return stats
}

// FindGaps returns the top longest silences exceeding threshold, longest first
func FindGaps(messages []internal.Message, threshold time.Duration, top int) []Gap {
	var gaps []Gap
	for i := 1; i < len(messages); i++ {
		start, end := messages[i-1].Timestamp, messages[i].Timestamp
		d := end.Sub(start)
		if d <= threshold {
			continue
		}
		gaps = append(gaps, Gap{
			Start: start,
			End:   end,
			Hours: round2(d.Hours()),
			Days:  round2(d.Hours() / 24),
		})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].End.Sub(gaps[i].Start) > gaps[j].End.Sub(gaps[j].Start)
	})
	if top > 0 && len(gaps) > top {
		gaps = gaps[:top]
	}
	return gaps
}
