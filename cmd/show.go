package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/iksnae/dm-insights/internal"
	"github.com/iksnae/dm-insights/internal/analytics"
	"github.com/iksnae/dm-insights/internal/export"
	"github.com/spf13/cobra"
)

const barWidth = 30

var (
	// Styles for show command
	conversationHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	conversationMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Width(10)
)

func newShowCmd(a *app) *cobra.Command {
	var (
		limit int
		week  string
	)

	cmd := &cobra.Command{
		Use:   "show <input> <partner>",
		Short: "Show statistics for one conversation",
		Long: `Display the statistics of one conversation: volume, balance, response times,
activity patterns, streaks and milestones, followed by its most recent weeks.

Use --week to print the messages of a single ISO week (for example 2024-W03).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := a.loadState(cmd, args[0])
			if err != nil {
				return err
			}
			conv, err := state.Conversation(args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if week != "" {
				if _, _, err := internal.ParseWeekKey(week); err != nil {
					return err
				}
				cluster, ok := conv.WeekClusters[week]
				if !ok {
					return fmt.Errorf("%w: %s", export.ErrUnknownWeek, week)
				}
				fmt.Fprint(out, export.FormatWeek(conv.Partner, cluster))
				return nil
			}

			displayConversation(out, state.Stats[conv.Partner])
			displayWeeks(out, conv, limit)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of recent weeks to list (0 for all)")
	cmd.Flags().StringVarP(&week, "week", "w", "", "Print the messages of one week (YYYY-Www)")
	return cmd
}

func displayConversation(out io.Writer, s *analytics.ConversationStats) {
	fmt.Fprintln(out, conversationHeaderStyle.Render(fmt.Sprintf("💬 %s", s.Partner)))

	metaParts := []string{
		fmt.Sprintf("Messages: %s", humanize.Comma(int64(s.TotalMessages))),
		fmt.Sprintf("You: %s (%.1f%%)", s.You, s.YourPercent),
		fmt.Sprintf("Category: %s", s.Category),
	}
	fmt.Fprintln(out, conversationMetaStyle.Render(strings.Join(metaParts, " • ")))
	if !s.FirstMessage.IsZero() {
		fmt.Fprintln(out, conversationMetaStyle.Render(fmt.Sprintf("%s to %s (%d days, %d active)",
			s.FirstMessage.Format("Jan 2, 2006"), s.LastMessage.Format("Jan 2, 2006"), s.SpanDays, s.DaysActive)))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, sectionStyle.Render("Conversation"))
	fmt.Fprintf(out, "  Balance score:      %.0f\n", s.BalanceScore)
	fmt.Fprintf(out, "  Consistency score:  %.0f\n", s.ConsistencyScore)
	fmt.Fprintf(out, "  Messages per day:   %.2f\n", s.MessagesPerDay)
	fmt.Fprintf(out, "  Conversations:      %d (you started %.0f%%)\n", s.Initiators.Episodes, s.Initiators.YouPercent)
	fmt.Fprintf(out, "  Your replies:       %s\n", formatResponse(s.ResponseTimes.You))
	fmt.Fprintf(out, "  Their replies:      %s\n", formatResponse(s.ResponseTimes.Them))
	fmt.Fprintf(out, "  Bursts:             %d\n", len(s.Bursts))
	fmt.Fprintf(out, "  Longest streak:     %d day(s), current %d\n", s.Streaks.Longest, s.Streaks.Current)
	if len(s.Gaps) > 0 {
		fmt.Fprintf(out, "  Longest silence:    %.1f days\n", s.Gaps[0].Days)
	}
	fmt.Fprintf(out, "  Trend:              %s\n", formatTrend(s.Trend))
	if len(s.Styles) > 0 {
		styles := make([]string, len(s.Styles))
		for i, st := range s.Styles {
			styles[i] = string(st)
		}
		fmt.Fprintf(out, "  Style:              %s\n", strings.Join(styles, ", "))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, sectionStyle.Render("Content"))
	for _, typ := range internal.ContentTypes {
		if n := s.ContentMix[typ]; n > 0 {
			fmt.Fprintf(out, "  %-10s %d\n", typ, n)
		}
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, sectionStyle.Render("By weekday"))
	weekday := analytics.WeekdayChart(s)
	renderBars(out, weekday.Labels, weekday.Series[0].Values)
	fmt.Fprintln(out)

	fmt.Fprintln(out, sectionStyle.Render("By hour"))
	hourly := analytics.HourlyChart(s)
	renderBars(out, hourly.Labels, hourly.Series[0].Values)
	fmt.Fprintln(out)

	if len(s.Milestones) > 0 {
		fmt.Fprintln(out, sectionStyle.Render("Milestones"))
		for _, m := range s.Milestones {
			fmt.Fprintf(out, "  %s  %s\n", dateStyle.Render(m.Date.Format("2006-01-02")), m.Label)
		}
		fmt.Fprintln(out)
	}
}

// renderBars draws one horizontal bar per label, skipping empty rows
func renderBars(out io.Writer, labels []string, values []float64) {
	peak := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		fmt.Fprintln(out, hintStyle.Render("  (no messages)"))
		return
	}
	for i, v := range values {
		if v == 0 {
			continue
		}
		n := int(v / peak * barWidth)
		if n == 0 {
			n = 1
		}
		fmt.Fprintf(out, "  %s %s %.0f\n", labelStyle.Render(labels[i]), barStyle.Render(strings.Repeat("█", n)), v)
	}
}

func formatResponse(r analytics.ResponseStats) string {
	if r.Count == 0 {
		return "—"
	}
	return fmt.Sprintf("median %.0f min, mean %.0f min (%d)", r.MedianMinutes, r.MeanMinutes, r.Count)
}

func formatTrend(t analytics.Trend) string {
	if t.Direction == analytics.TrendInsufficient {
		return string(t.Direction)
	}
	return fmt.Sprintf("%s (%+.1f%%)", t.Direction, t.ChangePercent)
}

// displayWeeks lists the most recent weeks under their months, newest first
func displayWeeks(out io.Writer, conv *internal.Conversation, limit int) {
	total := len(conv.WeekClusters)
	fmt.Fprintln(out, sectionStyle.Render(fmt.Sprintf("Weeks (%d)", total)))

	shown := 0
	months := conv.MonthKeys()
	for i := len(months) - 1; i >= 0; i-- {
		if limit > 0 && shown == limit {
			break
		}
		group := conv.MonthGroups[months[i]]
		fmt.Fprintf(out, "  %s %s\n",
			titleStyle.Render(fmt.Sprintf("%s %d", group.MonthName, group.Year)),
			dateStyle.Render(fmt.Sprintf("(%d)", group.TotalMessages)))

		for j := len(group.Weeks) - 1; j >= 0; j-- {
			if limit > 0 && shown == limit {
				break
			}
			cluster := group.Weeks[j]
			fmt.Fprintf(out, "    %s  %s  %s\n",
				cluster.Key(),
				dateStyle.Render(cluster.DateRange.Start.Format("Jan 2")+" to "+cluster.DateRange.End.Format("Jan 2, 2006")),
				countStyle.Render(fmt.Sprintf("%d message(s)", cluster.Count)))
			shown++
		}
	}

	if remaining := total - shown; remaining > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, hintStyle.Render(fmt.Sprintf("... (%d more week(s))", remaining)))
	}
}
