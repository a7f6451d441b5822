package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/iksnae/dm-insights/internal/analytics"
	"github.com/iksnae/dm-insights/internal/session"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	categoryStyles = map[analytics.Category]lipgloss.Style{
		analytics.CategoryActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		analytics.CategoryRecent:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		analytics.CategoryDormant: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
	}
)

func newListCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list <input>",
		Short: "List conversations in an export",
		Long: `List every conversation in the export, busiest first, with message counts,
your share of the messages, last activity and activity category.

<input> is the export file, a directory containing it, or - for stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if category != "" && !validCategory(category) {
				return fmt.Errorf("unknown category %q (expected active, recent or dormant)", category)
			}
			state, err := a.loadState(cmd, args[0])
			if err != nil {
				return err
			}
			displayConversations(cmd.OutOrStdout(), state, analytics.Category(category))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list conversations in this category (active, recent, dormant)")
	return cmd
}

func validCategory(s string) bool {
	for _, c := range analytics.Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

func displayConversations(out io.Writer, state *session.State, only analytics.Category) {
	var partners []string
	for _, partner := range state.PartnersByActivity() {
		if only == "" || state.Stats[partner].Category == only {
			partners = append(partners, partner)
		}
	}

	if len(partners) == 0 {
		fmt.Fprintln(out, headerStyle.Render("📋 No conversations found"))
		return
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📋 Found %d conversation(s) for %s", len(partners), state.Identity)))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)

	_, _ = fmt.Fprintln(w, titleStyle.Render("Partner")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Yours")+"\t"+titleStyle.Render("Last activity")+"\t"+titleStyle.Render("Category")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))

	for _, partner := range partners {
		stats := state.Stats[partner]

		name := partner
		// Truncate long names but keep them readable
		if len([]rune(name)) > 30 {
			name = string([]rune(name)[:27]) + "..."
		}

		count := countStyle.Render(strconv.Itoa(stats.TotalMessages))
		yours := fmt.Sprintf("%.0f%%", stats.YourPercent)

		last := dateStyle.Render("—")
		if !stats.LastMessage.IsZero() {
			last = dateStyle.Render(humanize.RelTime(stats.LastMessage, state.CreatedAt, "ago", "from now"))
		}

		category := categoryStyles[stats.Category].Render(string(stats.Category))

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", name, count, yours, last, category)
	}

	_ = w.Flush()
	fmt.Fprintln(out)
	fmt.Fprintln(out, hintStyle.Render(fmt.Sprintf("💡 Tip: Use `dm-insights show <input> %q` for details", partners[0])))
}
