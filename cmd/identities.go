package cmd

import (
	"fmt"
	"io"

	"github.com/iksnae/dm-insights/internal"
	"github.com/spf13/cobra"
)

func newIdentitiesCmd(a *app) *cobra.Command {
	var selected string

	cmd := &cobra.Command{
		Use:   "identities <input>",
		Short: "List the senders that could be you",
		Long: `List every sender in the export, most likely export owner first.

The owner takes part in every conversation, so senders are ranked by the
number of conversations they appear in, then by message count. Pass the
chosen name to other commands with --identity, or use --select to check
how the export looks from that sender's side.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := internal.ReadInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			candidates, err := a.holder.Upload(data)
			if err != nil {
				return err
			}
			displayCandidates(cmd.OutOrStdout(), candidates)
			if selected == "" {
				return nil
			}

			state, err := a.holder.SelectIdentity(cmd.Context(), selected)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			internal.PrintSuccess(fmt.Sprintf("Processed %d conversation(s) as %s: %d of %d messages are yours",
				len(state.Partners), state.Identity, state.Overview.YourMessages, state.Overview.TotalMessages))
			return nil
		},
	}

	cmd.Flags().StringVar(&selected, "select", "", "Process the export as this sender")
	return cmd
}

func displayCandidates(out io.Writer, candidates []string) {
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("👤 Found %d sender(s)", len(candidates))))
	fmt.Fprintln(out)
	for i, name := range candidates {
		line := fmt.Sprintf("  %d. %s", i+1, name)
		if i == 0 {
			line += " " + hintStyle.Render("(most likely you)")
		}
		fmt.Fprintln(out, line)
	}
	if len(candidates) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, hintStyle.Render(fmt.Sprintf("💡 Tip: Pass --identity %q to pick a different sender", candidates[0])))
	}
}
