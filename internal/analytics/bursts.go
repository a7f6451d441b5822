package analytics

import (
	"time"

	"github.com/iksnae/dm-insights/internal"
)

// Burst is a run of rapid-fire messages
type Burst struct {
	Start           time.Time `json:"start" yaml:"start"`
	End             time.Time `json:"end" yaml:"end"`
	Count           int       `json:"count" yaml:"count"`
	DurationMinutes float64   `json:"duration_minutes" yaml:"duration_minutes"`
}

// DetectBursts finds maximal runs in which every message follows the previous
// one within maxGap. Runs shorter than minSize are discarded.
func DetectBursts(messages []internal.Message, maxGap time.Duration, minSize int) []Burst {
	var bursts []Burst
	if len(messages) == 0 {
		return bursts
	}

	emit := func(start, end int) {
		if end-start+1 < minSize {
			return
		}
		first, last := messages[start].Timestamp, messages[end].Timestamp
		bursts = append(bursts, Burst{
			Start:           first,
			End:             last,
			Count:           end - start + 1,
			DurationMinutes: round2(last.Sub(first).Minutes()),
		})
	}

	start := 0
	for i := 1; i < len(messages); i++ {
		if messages[i].Timestamp.Sub(messages[i-1].Timestamp) > maxGap {
			emit(start, i-1)
			start = i
		}
	}
	emit(start, len(messages)-1)
	return bursts
}
