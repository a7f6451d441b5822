package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iksnae/dm-insights/internal"
)

// FormatWeek renders one week cluster as a Markdown report: a header, the
// messages grouped by calendar date and a statistics footer. The average per
// day is taken over the full seven days of the ISO week.
func FormatWeek(partner string, cluster *internal.WeekCluster) string {
	var b strings.Builder
	r := cluster.DateRange

	// Header
	fmt.Fprintf(&b, "# Conversation with %s\n\n", escapeMarkdown(partner))
	fmt.Fprintf(&b, "**Week:** %d, %d  \n", cluster.Week, cluster.Year)
	fmt.Fprintf(&b, "**Total messages:** %d  \n", cluster.Count)
	fmt.Fprintf(&b, "**Date range:** %s to %s\n\n", r.Start.Format("Mon, Jan 2 2006"), r.End.Format("Mon, Jan 2 2006"))
	b.WriteString("---\n\n")

	// Messages by date
	current := ""
	for _, msg := range cluster.Messages {
		if key := msg.DateKey(); key != current {
			if current != "" {
				b.WriteString("\n")
			}
			current = key
			fmt.Fprintf(&b, "## %s\n\n", msg.Timestamp.Format("Monday, January 2, 2006"))
		}
		content := escapeMarkdown(msg.Content)
		if msg.Type == internal.ContentEmpty {
			content = "_(empty)_"
		}
		fmt.Fprintf(&b, "- **%s** %s: %s\n", msg.Timestamp.Format("15:04"), escapeMarkdown(msg.From), strings.ReplaceAll(content, "\n", "\n  "))
	}
	b.WriteString("\n---\n\n")

	// Footer
	b.WriteString("## Statistics\n\n")
	fmt.Fprintf(&b, "- Messages: %d\n", cluster.Count)
	fmt.Fprintf(&b, "- Average per day: %.2f\n\n", float64(cluster.Count)/float64(r.Days()))

	senders := make(map[string]int)
	types := make(map[internal.ContentType]int)
	for _, msg := range cluster.Messages {
		senders[msg.From]++
		types[msg.Type]++
	}

	names := make([]string, 0, len(senders))
	for name := range senders {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if senders[names[i]] != senders[names[j]] {
			return senders[names[i]] > senders[names[j]]
		}
		return names[i] < names[j]
	})

	b.WriteString("### By sender\n\n")
	b.WriteString("| Sender | Messages | Share |\n|---|---:|---:|\n")
	for _, name := range names {
		share := 0.0
		if cluster.Count > 0 {
			share = float64(senders[name]) / float64(cluster.Count) * 100
		}
		fmt.Fprintf(&b, "| %s | %d | %.1f%% |\n", escapeTable(name), senders[name], share)
	}

	b.WriteString("\n### By type\n\n")
	b.WriteString("| Type | Messages |\n|---|---:|\n")
	for _, t := range internal.ContentTypes {
		if n := types[t]; n > 0 {
			fmt.Fprintf(&b, "| %s | %d |\n", t, n)
		}
	}

	return b.String()
}
