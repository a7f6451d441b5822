package internal

import (
	"fmt"
	"sort"
	"time"
)

// DateRange is an inclusive span of calendar days
type DateRange struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// Days returns the number of calendar days covered by the range
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// WeekCluster groups the messages of a single ISO week. Messages is a
// sub-slice of the owning conversation's messages.
type WeekCluster struct {
	Year      int       `json:"year" yaml:"year"`
	Week      int       `json:"week" yaml:"week"`
	Messages  []Message `json:"-" yaml:"-"`
	Count     int       `json:"count" yaml:"count"`
	DateRange DateRange `json:"date_range" yaml:"date_range"`
}

// Key returns the cluster key, e.g. 2024-W03
func (w *WeekCluster) Key() string {
	return WeekKey(w.Year, w.Week)
}

// MonthGroup folds week clusters into the month of each week's first message
type MonthGroup struct {
	Year          int            `json:"year" yaml:"year"`
	Month         time.Month     `json:"month" yaml:"month"`
	MonthName     string         `json:"month_name" yaml:"month_name"`
	Weeks         []*WeekCluster `json:"weeks" yaml:"weeks"`
	TotalMessages int            `json:"total_messages" yaml:"total_messages"`
}

// Key returns the month key, e.g. 2024-03
func (g *MonthGroup) Key() string {
	return MonthKey(g.Year, g.Month)
}

// WeekKey formats an ISO year and week as 2024-W03
func WeekKey(year, week int) string {
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthKey formats a calendar month as 2024-03
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%d-%02d", year, int(month))
}

// ParseWeekKey splits a key such as 2024-W03 into year and week
func ParseWeekKey(key string) (int, int, error) {
	var year, week int
	if _, err := fmt.Sscanf(key, "%d-W%d", &year, &week); err != nil {
		return 0, 0, &ParseError{Source: "week", Key: key, Err: err}
	}
	if week < 1 || week > 53 {
		return 0, 0, &ParseError{Source: "week", Key: key, Err: fmt.Errorf("week %d out of range", week)}
	}
	return year, week, nil
}

// ISOWeekStart returns Monday 00:00 UTC of the given ISO week
func ISOWeekStart(year, week int) time.Time {
	// January 4th always falls in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	monday := jan4.AddDate(0, 0, -offset)
	return monday.AddDate(0, 0, (week-1)*7)
}

// ISOWeekRange returns Monday through Sunday of the given ISO week. The
// range comes from the week number alone, not from any messages.
func ISOWeekRange(year, week int) DateRange {
	start := ISOWeekStart(year, week)
	return DateRange{Start: start, End: start.AddDate(0, 0, 6)}
}

// ClusterByWeek groups sorted messages by (ISO year, ISO week). Sorted input
// keeps every week contiguous, so each cluster shares the backing array.
func ClusterByWeek(messages []Message) map[string]*WeekCluster {
	clusters := make(map[string]*WeekCluster)
	start := 0
	for i := 1; i <= len(messages); i++ {
		if i < len(messages) && messages[i].ISOYear == messages[start].ISOYear && messages[i].ISOWeek == messages[start].ISOWeek {
			continue
		}
		first := messages[start]
		key := first.WeekKey()
		if existing, ok := clusters[key]; ok {
			// Unsorted input; keep the invariant by appending.
			existing.Messages = append(existing.Messages, messages[start:i]...)
			existing.Count = len(existing.Messages)
		} else {
			clusters[key] = &WeekCluster{
				Year:      first.ISOYear,
				Week:      first.ISOWeek,
				Messages:  messages[start:i:i],
				Count:     i - start,
				DateRange: ISOWeekRange(first.ISOYear, first.ISOWeek),
			}
		}
		start = i
	}
	return clusters
}

// GroupByMonth assigns every week to the month of its first message. A week
// spanning a month boundary is never split.
func GroupByMonth(weeks map[string]*WeekCluster) map[string]*MonthGroup {
	groups := make(map[string]*MonthGroup)
	for _, week := range weeks {
		if len(week.Messages) == 0 {
			continue
		}
		first := week.Messages[0]
		key := first.MonthKey()
		group, ok := groups[key]
		if !ok {
			group = &MonthGroup{
				Year:      first.Year,
				Month:     first.Month,
				MonthName: first.Month.String(),
			}
			groups[key] = group
		}
		group.Weeks = append(group.Weeks, week)
		group.TotalMessages += week.Count
	}

	for _, group := range groups {
		sort.Slice(group.Weeks, func(i, j int) bool {
			if group.Weeks[i].Year != group.Weeks[j].Year {
				return group.Weeks[i].Year < group.Weeks[j].Year
			}
			return group.Weeks[i].Week < group.Weeks[j].Week
		})
	}
	return groups
}
