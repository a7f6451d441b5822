package analytics

import (
	"fmt"

	"github.com/iksnae/dm-insights/internal"
)

// Series is one named line or bar group of a chart
type Series struct {
	Name   string    `json:"name" yaml:"name"`
	Values []float64 `json:"values" yaml:"values"`
}

// Dataset is the {labels, series} shape handed to a chart renderer
type Dataset struct {
	Title  string   `json:"title" yaml:"title"`
	Labels []string `json:"labels" yaml:"labels"`
	Series []Series `json:"series" yaml:"series"`
}

// HourlyChart plots messages per hour of day
func HourlyChart(stats *ConversationStats) Dataset {
	labels := make([]string, 24)
	values := make([]float64, 24)
	for h := 0; h < 24; h++ {
		labels[h] = fmt.Sprintf("%02d:00", h)
		values[h] = float64(stats.Hourly[h])
	}
	return Dataset{Title: "Messages by hour", Labels: labels, Series: []Series{{Name: "messages", Values: values}}}
}

// WeekdayChart plots messages per day of week
func WeekdayChart(stats *ConversationStats) Dataset {
	labels := make([]string, 7)
	values := make([]float64, 7)
	for d := 0; d < 7; d++ {
		labels[d] = WeekdayName(d)[:3]
		values[d] = float64(stats.Weekday[d])
	}
	return Dataset{Title: "Messages by weekday", Labels: labels, Series: []Series{{Name: "messages", Values: values}}}
}

// TimelineChart plots each month's messages split by side
func TimelineChart(stats *ConversationStats) Dataset {
	labels := make([]string, len(stats.Timeline))
	you := make([]float64, len(stats.Timeline))
	them := make([]float64, len(stats.Timeline))
	for i, point := range stats.Timeline {
		labels[i] = point.Month
		you[i] = float64(point.You)
		them[i] = float64(point.Them)
	}
	return Dataset{
		Title:  "Monthly timeline",
		Labels: labels,
		Series: []Series{{Name: stats.You, Values: you}, {Name: stats.Partner, Values: them}},
	}
}

// ContentMixChart plots messages per content type
func ContentMixChart(stats *ConversationStats) Dataset {
	labels := make([]string, len(internal.ContentTypes))
	values := make([]float64, len(internal.ContentTypes))
	for i, t := range internal.ContentTypes {
		labels[i] = string(t)
		values[i] = float64(stats.ContentMix[t])
	}
	return Dataset{Title: "Content mix", Labels: labels, Series: []Series{{Name: "messages", Values: values}}}
}

// Charts returns every chart for a conversation
func Charts(stats *ConversationStats) []Dataset {
	return []Dataset{HourlyChart(stats), WeekdayChart(stats), TimelineChart(stats), ContentMixChart(stats)}
}
