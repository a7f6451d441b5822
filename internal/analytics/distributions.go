package analytics

import (
	"sort"
	"time"

	"github.com/iksnae/dm-insights/internal"
)

// MonthPoint is one month of a conversation's timeline
type MonthPoint struct {
	Month string `json:"month" yaml:"month"`
	You   int    `json:"you" yaml:"you"`
	Them  int    `json:"them" yaml:"them"`
	Total int    `json:"total" yaml:"total"`
}

// HourlyDistribution counts messages per hour of day
func HourlyDistribution(messages []internal.Message) [24]int {
	var hours [24]int
	for _, msg := range messages {
		hours[msg.Hour]++
	}
	return hours
}

// WeekdayDistribution counts messages per day of week, Sunday first
func WeekdayDistribution(messages []internal.Message) [7]int {
	var days [7]int
	for _, msg := range messages {
		days[msg.Weekday]++
	}
	return days
}

// SenderCounts counts messages per sender
func SenderCounts(messages []internal.Message) map[string]int {
	counts := make(map[string]int)
	for _, msg := range messages {
		counts[msg.From]++
	}
	return counts
}

// MonthlyTimeline counts each calendar month's messages by side. Only
// months with messages appear.
func MonthlyTimeline(messages []internal.Message, you string) []MonthPoint {
	index := make(map[string]*MonthPoint)
	for _, msg := range messages {
		key := msg.MonthKey()
		point, ok := index[key]
		if !ok {
			point = &MonthPoint{Month: key}
			index[key] = point
		}
		if msg.From == you {
			point.You++
		} else {
			point.Them++
		}
		point.Total++
	}

	timeline := make([]MonthPoint, 0, len(index))
	for _, point := range index {
		timeline = append(timeline, *point)
	}
	sort.Slice(timeline, func(i, j int) bool { return timeline[i].Month < timeline[j].Month })
	return timeline
}

// MonthlyCounts is MonthlyTimeline without the split by side
func MonthlyCounts(messages []internal.Message) []MonthPoint {
	return MonthlyTimeline(messages, "")
}

// DaysActive counts distinct calendar days with messages
func DaysActive(messages []internal.Message) int {
	return len(activeDays(messages))
}

// WeekdayName returns the English name for a weekday index
func WeekdayName(d int) string {
	return time.Weekday(d).String()
}
