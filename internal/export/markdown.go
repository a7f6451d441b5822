package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/iksnae/dm-insights/internal"
	"github.com/iksnae/dm-insights/internal/analytics"
	"github.com/iksnae/dm-insights/internal/session"
)

const dateLayout = "2006-01-02"

// MarkdownExporter exports the session overview in Markdown format
type MarkdownExporter struct{}

// Export writes the global overview followed by one section per partner
func (e *MarkdownExporter) Export(state *session.State, w io.Writer) error {
	o := state.Overview

	// Header
	_, _ = fmt.Fprintf(w, "# Direct Message Insights\n\n")
	_, _ = fmt.Fprintf(w, "**Identity:** %s  \n", escapeMarkdown(state.Identity))
	_, _ = fmt.Fprintf(w, "**Conversations:** %s  \n", humanize.Comma(int64(o.TotalConversations)))
	_, _ = fmt.Fprintf(w, "**Messages:** %s (%s yours)  \n", humanize.Comma(int64(o.TotalMessages)), humanize.Comma(int64(o.YourMessages)))
	if !o.FirstMessage.IsZero() {
		_, _ = fmt.Fprintf(w, "**History:** %s to %s\n\n", o.FirstMessage.Format(dateLayout), o.LastMessage.Format(dateLayout))
	}

	_, _ = fmt.Fprintf(w, "## Activity\n\n")
	for _, c := range analytics.Categories {
		_, _ = fmt.Fprintf(w, "- %s: %d\n", c, o.Categories[c])
	}
	_, _ = fmt.Fprintf(w, "\n")

	_, _ = fmt.Fprintf(w, "## Peak Activity\n\n")
	_, _ = fmt.Fprintf(w, "- Hour: %02d:00 (%d messages)\n", o.Peak.Hour, o.Peak.HourCount)
	_, _ = fmt.Fprintf(w, "- Weekday: %s (%d messages)\n", analytics.WeekdayName(o.Peak.Weekday), o.Peak.WeekdayCount)
	_, _ = fmt.Fprintf(w, "- Week: %s (%d messages)\n", o.Peak.Week.Key, o.Peak.Week.Count)
	_, _ = fmt.Fprintf(w, "- Month: %s (%d messages)\n", o.Peak.Month.Key, o.Peak.Month.Count)
	_, _ = fmt.Fprintf(w, "- Date: %s (%d messages)\n\n", o.Peak.Date.Key, o.Peak.Date.Count)

	_, _ = fmt.Fprintf(w, "## Conversations\n\n")
	_, _ = fmt.Fprintf(w, "| Partner | Messages | Density | Balance | Last active | Category |\n")
	_, _ = fmt.Fprintf(w, "|---|---:|---:|---:|---|---|\n")
	density := make(map[string]analytics.DensityEntry, len(o.Density))
	for _, d := range o.Density {
		density[d.Partner] = d
	}
	for _, p := range o.TopPartners {
		s := state.Stats[p.Partner]
		_, _ = fmt.Fprintf(w, "| %s | %s | %.2f/day | %.0f | %s | %s |\n",
			escapeTable(p.Partner),
			humanize.Comma(int64(s.TotalMessages)),
			density[p.Partner].MessagesPerDay,
			s.BalanceScore,
			humanize.RelTime(s.LastMessage, state.CreatedAt, "ago", "from now"),
			s.Category)
	}
	_, _ = fmt.Fprintf(w, "\n")

	_, _ = fmt.Fprintf(w, "## Styles\n\n")
	for _, style := range analytics.Styles {
		members := o.StyleClusters[style]
		if len(members) == 0 {
			continue
		}
		_, _ = fmt.Fprintf(w, "- **%s:** %s\n", style, escapeMarkdown(strings.Join(members, ", ")))
	}
	_, _ = fmt.Fprintf(w, "\n---\n\n")

	for i, partner := range state.Partners {
		writeConversationSection(w, state.Stats[partner])
		// Horizontal rule between conversations
		if i < len(state.Partners)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

func writeConversationSection(w io.Writer, s *analytics.ConversationStats) {
	_, _ = fmt.Fprintf(w, "## %s\n\n", escapeMarkdown(s.Partner))
	_, _ = fmt.Fprintf(w, "- Messages: %d (you %d, them %d)\n", s.TotalMessages, s.YourMessages, s.TheirMessages)
	_, _ = fmt.Fprintf(w, "- Span: %s to %s, %d active days\n", s.FirstMessage.Format(dateLayout), s.LastMessage.Format(dateLayout), s.DaysActive)
	_, _ = fmt.Fprintf(w, "- Balance: %.0f, consistency: %.0f\n", s.BalanceScore, s.ConsistencyScore)
	_, _ = fmt.Fprintf(w, "- Response time (median): you %.1f min, them %.1f min\n", s.ResponseTimes.You.MedianMinutes, s.ResponseTimes.Them.MedianMinutes)
	_, _ = fmt.Fprintf(w, "- Episodes started: you %.0f%%, them %.0f%%\n", s.Initiators.YouPercent, s.Initiators.ThemPercent)
	_, _ = fmt.Fprintf(w, "- Streaks: longest %d days, current %d\n", s.Streaks.Longest, s.Streaks.Current)
	_, _ = fmt.Fprintf(w, "- Bursts: %d\n", len(s.Bursts))
	_, _ = fmt.Fprintf(w, "- Trend: %s\n", s.Trend.Direction)

	mix := make([]string, 0, len(internal.ContentTypes))
	for _, t := range internal.ContentTypes {
		if n := s.ContentMix[t]; n > 0 {
			mix = append(mix, fmt.Sprintf("%s %d", t, n))
		}
	}
	_, _ = fmt.Fprintf(w, "- Content: %s\n\n", strings.Join(mix, ", "))

	if len(s.Milestones) > 0 {
		_, _ = fmt.Fprintf(w, "### Milestones\n\n")
		for _, m := range s.Milestones {
			_, _ = fmt.Fprintf(w, "- %s: %s\n", m.Date.Format(dateLayout), m.Label)
		}
		_, _ = fmt.Fprintf(w, "\n")
	}
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	// Basic escaping - preserve code blocks
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			// Escape markdown syntax outside code blocks
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// escapeTable keeps a value from breaking a table row
func escapeTable(text string) string {
	text = strings.ReplaceAll(escapeMarkdown(text), "|", "\\|")
	return strings.ReplaceAll(text, "\n", " ")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
