package analytics

import (
	"github.com/iksnae/dm-insights/internal"
)

// ResponseStats summarizes reply latency for one side of a conversation
type ResponseStats struct {
	Count         int     `json:"count" yaml:"count"`
	MeanMinutes   float64 `json:"mean_minutes" yaml:"mean_minutes"`
	MedianMinutes float64 `json:"median_minutes" yaml:"median_minutes"`
}

// ResponseTimes splits reply latency between you and your partner(s)
type ResponseTimes struct {
	You  ResponseStats `json:"you" yaml:"you"`
	Them ResponseStats `json:"them" yaml:"them"`
}

// ComputeResponseTimes measures every sender change between adjacent
// messages. The gap is credited to whoever sent the later message.
func ComputeResponseTimes(messages []internal.Message, you string) ResponseTimes {
	var yours, theirs []float64
	for i := 1; i < len(messages); i++ {
		prev, cur := messages[i-1], messages[i]
		if prev.From == cur.From {
			continue
		}
		minutes := cur.Timestamp.Sub(prev.Timestamp).Minutes()
		if cur.From == you {
			yours = append(yours, minutes)
		} else {
			theirs = append(theirs, minutes)
		}
	}
	return ResponseTimes{
		You:  summarizeResponses(yours),
		Them: summarizeResponses(theirs),
	}
}

func summarizeResponses(minutes []float64) ResponseStats {
	return ResponseStats{
		Count:         len(minutes),
		MeanMinutes:   round2(mean(minutes)),
		MedianMinutes: round2(median(minutes)),
	}
}
