package analytics

import (
	"sort"

	"github.com/iksnae/dm-insights/internal"
)

// Peak is the busiest bucket of one dimension
type Peak struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// PeakActivity holds the busiest hour, weekday, week, month and date
// across every conversation combined
type PeakActivity struct {
	Hour         int  `json:"hour" yaml:"hour"`
	HourCount    int  `json:"hour_count" yaml:"hour_count"`
	Weekday      int  `json:"weekday" yaml:"weekday"`
	WeekdayCount int  `json:"weekday_count" yaml:"weekday_count"`
	Week         Peak `json:"week" yaml:"week"`
	Month        Peak `json:"month" yaml:"month"`
	Date         Peak `json:"date" yaml:"date"`
}

// ComputePeakActivity aggregates all conversations. Ties resolve to the
// earliest hour, weekday or key.
func ComputePeakActivity(conversations map[string]*internal.Conversation) PeakActivity {
	var hours [24]int
	var weekdays [7]int
	weeks := make(map[string]int)
	months := make(map[string]int)
	dates := make(map[string]int)

	for _, conv := range conversations {
		for _, msg := range conv.Messages {
			hours[msg.Hour]++
			weekdays[msg.Weekday]++
			weeks[msg.WeekKey()]++
			months[msg.MonthKey()]++
			dates[msg.DateKey()]++
		}
	}

	var peak PeakActivity
	peak.Hour, peak.HourCount = argMax(hours[:])
	peak.Weekday, peak.WeekdayCount = argMax(weekdays[:])
	peak.Week = maxKey(weeks)
	peak.Month = maxKey(months)
	peak.Date = maxKey(dates)
	return peak
}

func argMax(counts []int) (int, int) {
	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return best, counts[best]
}

func maxKey(counts map[string]int) Peak {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var peak Peak
	for _, k := range keys {
		if counts[k] > peak.Count {
			peak = Peak{Key: k, Count: counts[k]}
		}
	}
	return peak
}
