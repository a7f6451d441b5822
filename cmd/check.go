package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/iksnae/dm-insights/internal"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))
)

// maxListed caps the per-partner detail lines of a check
const maxListed = 5

// errCheckFailed is returned when the export cannot be analyzed at all
var errCheckFailed = errors.New("check failed")

// checkReport tallies what a check found
type checkReport struct {
	Path          string
	Partners      int
	Messages      int
	Dropped       map[string]int
	Omitted       []string
	BadTimestamps map[string]int
	Candidates    []string
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <input>",
		Short: "Check that an export can be read and analyzed",
		Long: `Check an export by verifying:
  • The export file can be located
  • The direct message section has the expected structure
  • Message records are complete
  • Timestamps can be parsed
  • Candidate identities can be detected

Use --verbose for per-conversation details.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), args[0], cmd.InOrStdin(), a.cfg.TimezoneOffset, a.verbose)
		},
	}
}

func runCheck(out io.Writer, input string, stdin io.Reader, offset float64, details bool) error {
	fmt.Fprintln(out, sectionStyle.Render("🔍 Export Check"))
	fmt.Fprintln(out)

	report := &checkReport{}
	fail := func(msg string, err error) error {
		fmt.Fprintln(out, errorStyle.Render("❌ "+msg+":"), err)
		return fmt.Errorf("%w: %v", errCheckFailed, err)
	}

	// Step 1: locate the export
	fmt.Fprintln(out, infoStyle.Render("Step 1: Locating export..."))
	path, err := internal.ResolveInputPath(input)
	if err != nil {
		return fail("Export not found", err)
	}
	report.Path = path
	fmt.Fprintln(out, successStyle.Render("✅ Export located"))
	if details {
		fmt.Fprintf(out, "   Path: %s\n", path)
	}
	fmt.Fprintln(out)

	// Step 2: structure
	fmt.Fprintln(out, infoStyle.Render("Step 2: Validating structure..."))
	data, err := internal.ReadInput(path, stdin)
	if err != nil {
		return fail("Failed to read export", err)
	}
	result, err := internal.IngestDetailed(data)
	if err != nil {
		return fail("Invalid export", err)
	}
	report.Partners = len(result.Conversations)
	report.Messages = result.Conversations.TotalMessages()
	report.Dropped = result.Dropped
	report.Omitted = result.Omitted
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Found %d conversation(s) with %s message(s) (%s)",
		report.Partners, humanize.Comma(int64(report.Messages)), humanize.Bytes(uint64(len(data))))))
	fmt.Fprintln(out)

	// Step 3: records
	fmt.Fprintln(out, infoStyle.Render("Step 3: Checking message records..."))
	if dropped := result.DroppedTotal(); dropped > 0 {
		fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("⚠️  %d incomplete record(s) will be skipped", dropped)))
		if details {
			printCounts(out, report.Dropped)
		}
	} else {
		fmt.Fprintln(out, successStyle.Render("✅ All records are complete"))
	}
	for _, partner := range report.Omitted {
		fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("⚠️  Conversation with %s has no usable messages", partner)))
	}
	fmt.Fprintln(out)

	// Step 4: timestamps
	fmt.Fprintln(out, infoStyle.Render("Step 4: Parsing timestamps..."))
	report.BadTimestamps = countBadTimestamps(result.Conversations, offset)
	bad := 0
	for _, n := range report.BadTimestamps {
		bad += n
	}
	if bad > 0 {
		fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("⚠️  %d message(s) have unparseable dates and will be skipped", bad)))
		if details {
			printCounts(out, report.BadTimestamps)
		}
	} else {
		fmt.Fprintln(out, successStyle.Render("✅ All timestamps parse"))
	}
	fmt.Fprintln(out)

	// Step 5: identities
	fmt.Fprintln(out, infoStyle.Render("Step 5: Detecting identities..."))
	report.Candidates = internal.DetectCandidateIdentities(result.Conversations)
	if len(report.Candidates) == 0 {
		fmt.Fprintln(out, warningStyle.Render("⚠️  No senders found"))
	} else {
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Most likely you: %s", report.Candidates[0])))
		if details {
			for i, name := range report.Candidates {
				if i == maxListed {
					fmt.Fprintf(out, "   ... and %d more\n", len(report.Candidates)-maxListed)
					break
				}
				fmt.Fprintf(out, "   [%d] %s\n", i+1, name)
			}
		}
	}
	fmt.Fprintln(out)

	// Summary
	fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
	fmt.Fprintln(out)
	usable := report.Messages - bad
	if report.Partners == 0 || usable == 0 {
		fmt.Fprintln(out, errorStyle.Render("❌ Check failed"))
		fmt.Fprintln(out, "   • The export holds no usable messages")
		return fmt.Errorf("%w: %v", errCheckFailed, internal.ErrEmptyExport)
	}
	if result.DroppedTotal() > 0 || bad > 0 || len(report.Omitted) > 0 {
		fmt.Fprintln(out, warningStyle.Render("⚠️  Check passed with warnings"))
	} else {
		fmt.Fprintln(out, successStyle.Render("✅ Check passed!"))
	}
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("   • Conversations: %d", report.Partners)))
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("   • Usable messages: %s", humanize.Comma(int64(usable)))))
	return nil
}

// countBadTimestamps counts, per partner, messages whose date cannot be parsed
func countBadTimestamps(conversations internal.Conversations, offset float64) map[string]int {
	normalizer := internal.NewNormalizer(offset)
	counts := make(map[string]int)
	for partner, raws := range conversations {
		for _, raw := range raws {
			if _, err := normalizer.NormalizeMessage(raw); err != nil {
				counts[partner]++
			}
		}
	}
	return counts
}

func printCounts(out io.Writer, counts map[string]int) {
	partners := make([]string, 0, len(counts))
	for partner := range counts {
		partners = append(partners, partner)
	}
	sort.Slice(partners, func(i, j int) bool {
		if counts[partners[i]] != counts[partners[j]] {
			return counts[partners[i]] > counts[partners[j]]
		}
		return partners[i] < partners[j]
	})
	for i, partner := range partners {
		if i == maxListed {
			fmt.Fprintf(out, "   ... and %d more\n", len(partners)-maxListed)
			break
		}
		fmt.Fprintf(out, "   %s: %d\n", partner, counts[partner])
	}
}
