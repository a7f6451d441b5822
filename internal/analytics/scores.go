package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/iksnae/dm-insights/internal"
)

// BalanceScore is 100 for an even split of messages and 0 when one side
// sends everything
func BalanceScore(messages []internal.Message, you string) float64 {
	if len(messages) == 0 {
		return 0
	}
	yours := 0
	for _, msg := range messages {
		if msg.From == you {
			yours++
		}
	}
	return round2(100 - 2*math.Abs(50-percent(yours, len(messages))))
}

// dailyCounts counts messages per active calendar day
func dailyCounts(messages []internal.Message) []float64 {
	var counts []float64
	var current time.Time
	for _, msg := range messages {
		d := msg.Date()
		if len(counts) == 0 || !d.Equal(current) {
			counts = append(counts, 0)
			current = d
		}
		counts[len(counts)-1]++
	}
	return counts
}

// ConsistencyScore measures how evenly messages spread over active days:
// 100 × (1 − stddev/mean), floored at 0
func ConsistencyScore(messages []internal.Message) float64 {
	counts := dailyCounts(messages)
	m := mean(counts)
	if m == 0 {
		return 0
	}
	score := 100 * (1 - stdDev(counts)/m)
	if score < 0 {
		return 0
	}
	return round2(score)
}

// SpanDays is the number of days between the first and last message,
// rounded up, never less than one
func SpanDays(messages []internal.Message) int {
	if len(messages) == 0 {
		return 0
	}
	span := messages[len(messages)-1].Timestamp.Sub(messages[0].Timestamp)
	days := int(math.Ceil(span.Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// MessagesPerDay is the message density over the conversation's span
func MessagesPerDay(messages []internal.Message) float64 {
	days := SpanDays(messages)
	if days == 0 {
		return 0
	}
	return float64(len(messages)) / float64(days)
}

// DensityEntry ranks one conversation by message density
type DensityEntry struct {
	Partner        string  `json:"partner" yaml:"partner"`
	MessagesPerDay float64 `json:"messages_per_day" yaml:"messages_per_day"`
	Score          float64 `json:"score" yaml:"score"`
}

// DensityRanking scores each conversation's density as a percentage of the
// densest one, densest first
func DensityRanking(conversations map[string]*internal.Conversation) []DensityEntry {
	entries := make([]DensityEntry, 0, len(conversations))
	maxDensity := 0.0
	for partner, conv := range conversations {
		d := MessagesPerDay(conv.Messages)
		if d > maxDensity {
			maxDensity = d
		}
		entries = append(entries, DensityEntry{Partner: partner, MessagesPerDay: d})
	}

	for i := range entries {
		if maxDensity > 0 {
			entries[i].Score = round2(entries[i].MessagesPerDay / maxDensity * 100)
		}
		entries[i].MessagesPerDay = round2(entries[i].MessagesPerDay)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Partner < entries[j].Partner
	})
	return entries
}
