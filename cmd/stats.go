package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/iksnae/dm-insights/internal"
	"github.com/iksnae/dm-insights/internal/analytics"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		top    int
	)

	cmd := &cobra.Command{
		Use:   "stats <input>",
		Short: "Show an overview across all conversations",
		Long: `Summarize the whole export: totals, activity categories, busiest partners,
conversation density, peak activity and communication styles.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := a.loadState(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(state.Overview)
			}
			displayOverview(out, state.Overview, top)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the overview as JSON")
	cmd.Flags().IntVar(&top, "top", 5, "Number of partners in the rankings")
	return cmd
}

func displayOverview(out io.Writer, o *analytics.Overview, top int) {
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📊 Direct messages of %s", o.Identity)))
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  Conversations:  %s\n", humanize.Comma(int64(o.TotalConversations)))
	fmt.Fprintf(out, "  Messages:       %s (%s yours)\n", humanize.Comma(int64(o.TotalMessages)), humanize.Comma(int64(o.YourMessages)))
	if !o.FirstMessage.IsZero() {
		fmt.Fprintf(out, "  History:        %s to %s\n", o.FirstMessage.Format("Jan 2, 2006"), o.LastMessage.Format("Jan 2, 2006"))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, sectionStyle.Render("Activity"))
	for _, c := range analytics.Categories {
		fmt.Fprintf(out, "  %s %d\n", categoryStyles[c].Width(10).Render(string(c)), o.Categories[c])
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, sectionStyle.Render("Busiest conversations"))
	for i, p := range o.TopPartners {
		if top > 0 && i == top {
			break
		}
		fmt.Fprintf(out, "  %d. %s %s\n", i+1, p.Partner, countStyle.Render(humanize.Comma(int64(p.Messages))))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, sectionStyle.Render("Most intense conversations"))
	for i, d := range o.Density {
		if top > 0 && i == top {
			break
		}
		fmt.Fprintf(out, "  %d. %s %s\n", i+1, d.Partner, dateStyle.Render(fmt.Sprintf("%.2f/day, score %.0f", d.MessagesPerDay, d.Score)))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, sectionStyle.Render("Peak activity"))
	fmt.Fprintf(out, "  Hour:     %02d:00 (%d)\n", o.Peak.Hour, o.Peak.HourCount)
	fmt.Fprintf(out, "  Weekday:  %s (%d)\n", analytics.WeekdayName(o.Peak.Weekday), o.Peak.WeekdayCount)
	if o.Peak.Date.Key != "" {
		fmt.Fprintf(out, "  Day:      %s (%d)\n", o.Peak.Date.Key, o.Peak.Date.Count)
		fmt.Fprintf(out, "  Week:     %s (%d)\n", o.Peak.Week.Key, o.Peak.Week.Count)
		fmt.Fprintf(out, "  Month:    %s (%d)\n", o.Peak.Month.Key, o.Peak.Month.Count)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, sectionStyle.Render("Content"))
	for _, typ := range internal.ContentTypes {
		fmt.Fprintf(out, "  %-10s %d\n", typ, o.ContentMix[typ])
	}

	if len(o.StyleClusters) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, sectionStyle.Render("Styles"))
		for _, st := range analytics.Styles {
			if partners := o.StyleClusters[st]; len(partners) > 0 {
				fmt.Fprintf(out, "  %-14s %s\n", st, strings.Join(partners, ", "))
			}
		}
	}
}
