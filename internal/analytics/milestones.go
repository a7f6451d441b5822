package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/iksnae/dm-insights/internal"
)

// MilestoneKind identifies what a milestone marks
type MilestoneKind string

const (
	MilestoneFirstMessage MilestoneKind = "first_message"
	MilestoneCount        MilestoneKind = "message_count"
	MilestoneAnniversary  MilestoneKind = "anniversary"
)

// CountThresholds are the message counts that earn a milestone
var CountThresholds = []int{100, 500, 1000, 5000, 10000}

// Milestone is a notable moment in a conversation
type Milestone struct {
	Kind  MilestoneKind `json:"kind" yaml:"kind"`
	Label string        `json:"label" yaml:"label"`
	Date  time.Time     `json:"date" yaml:"date"`
	Value int           `json:"value,omitempty" yaml:"value,omitempty"`
}

// ComputeMilestones lists the first message, every count threshold reached
// (dated at the message that reached it) and one anniversary per full year
// between the first message and now, in chronological order
func ComputeMilestones(messages []internal.Message, now time.Time) []Milestone {
	if len(messages) == 0 {
		return nil
	}

	first := messages[0].Timestamp
	milestones := []Milestone{{
		Kind:  MilestoneFirstMessage,
		Label: "First message",
		Date:  first,
	}}

	for _, threshold := range CountThresholds {
		if len(messages) < threshold {
			break
		}
		milestones = append(milestones, Milestone{
			Kind:  MilestoneCount,
			Label: fmt.Sprintf("%s messages", humanize.Comma(int64(threshold))),
			Date:  messages[threshold-1].Timestamp,
			Value: threshold,
		})
	}

	for years := 1; ; years++ {
		anniversary := first.AddDate(years, 0, 0)
		if anniversary.After(now) {
			break
		}
		milestones = append(milestones, Milestone{
			Kind:  MilestoneAnniversary,
			Label: fmt.Sprintf("%s anniversary", humanize.Ordinal(years)),
			Date:  anniversary,
			Value: years,
		})
	}

	sort.SliceStable(milestones, func(i, j int) bool {
		return milestones[i].Date.Before(milestones[j].Date)
	})
	return milestones
}
