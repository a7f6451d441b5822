package analytics

import (
	"github.com/iksnae/dm-insights/internal"
)

// TrendDirection describes where activity is heading
type TrendDirection string

const (
	TrendUp           TrendDirection = "up"
	TrendDown         TrendDirection = "down"
	TrendStable       TrendDirection = "stable"
	TrendInsufficient TrendDirection = "insufficient data"
)

const (
	trendWindow    = 3
	trendThreshold = 10.0
)

// Trend compares the latest three months of activity with the three before
type Trend struct {
	Direction     TrendDirection `json:"direction" yaml:"direction"`
	RecentTotal   int            `json:"recent_total" yaml:"recent_total"`
	PreviousTotal int            `json:"previous_total" yaml:"previous_total"`
	ChangePercent float64        `json:"change_percent" yaml:"change_percent"`
}

// ComputeTrend needs at least six months with messages. A change of more
// than ten percent either way is a trend; anything smaller is stable.
func ComputeTrend(messages []internal.Message) Trend {
	timeline := MonthlyCounts(messages)
	if len(timeline) < 2*trendWindow {
		return Trend{Direction: TrendInsufficient}
	}

	n := len(timeline)
	var t Trend
	for _, point := range timeline[n-trendWindow:] {
		t.RecentTotal += point.Total
	}
	for _, point := range timeline[n-2*trendWindow : n-trendWindow] {
		t.PreviousTotal += point.Total
	}

	switch {
	case t.PreviousTotal > 0:
		t.ChangePercent = round2(float64(t.RecentTotal-t.PreviousTotal) / float64(t.PreviousTotal) * 100)
	case t.RecentTotal > 0:
		t.ChangePercent = 100
	}

	switch {
	case t.ChangePercent > trendThreshold:
		t.Direction = TrendUp
	case t.ChangePercent < -trendThreshold:
		t.Direction = TrendDown
	default:
		t.Direction = TrendStable
	}
	return t
}
