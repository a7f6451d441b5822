package analytics

import (
	"time"

	"github.com/iksnae/dm-insights/internal"
)

// InitiatorStats counts who starts conversation episodes
type InitiatorStats struct {
	Episodes    int     `json:"episodes" yaml:"episodes"`
	You         int     `json:"you" yaml:"you"`
	Them        int     `json:"them" yaml:"them"`
	YouPercent  float64 `json:"you_percent" yaml:"you_percent"`
	ThemPercent float64 `json:"them_percent" yaml:"them_percent"`
}

// ComputeInitiators splits the history into episodes separated by more than
// episodeGap of silence and tallies who sent each episode's first message.
// The very first message always opens an episode.
func ComputeInitiators(messages []internal.Message, you string, episodeGap time.Duration) InitiatorStats {
	var stats InitiatorStats
	for i, msg := range messages {
		if i > 0 && msg.Timestamp.Sub(messages[i-1].Timestamp) <= episodeGap {
			continue
		}
		stats.Episodes++
		if msg.From == you {
			stats.You++
		} else {
			stats.Them++
		}
	}
	stats.YouPercent = round2(percent(stats.You, stats.Episodes))
	stats.ThemPercent = round2(percent(stats.Them, stats.Episodes))
	return stats
}
