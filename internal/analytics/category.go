package analytics

import (
	"time"
)

// Category buckets a conversation by how recently it was active
type Category string

const (
	CategoryActive  Category = "active"
	CategoryRecent  Category = "recent"
	CategoryDormant Category = "dormant"
)

// Categories lists every category in display order
var Categories = []Category{CategoryActive, CategoryRecent, CategoryDormant}

// DaysSince counts whole days between t and now
func DaysSince(t, now time.Time) int {
	if t.IsZero() {
		return 0
	}
	return int(now.Sub(t) / day)
}

// Categorize places a conversation whose last message is at last
func Categorize(last, now time.Time, activeDays, recentDays int) Category {
	if last.IsZero() {
		return CategoryDormant
	}
	elapsed := now.Sub(last)
	switch {
	case elapsed <= time.Duration(activeDays)*day:
		return CategoryActive
	case elapsed <= time.Duration(recentDays)*day:
		return CategoryRecent
	default:
		return CategoryDormant
	}
}
