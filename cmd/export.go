package cmd

import (
	"errors"
	"fmt"

	"github.com/iksnae/dm-insights/internal"
	"github.com/iksnae/dm-insights/internal/config"
	"github.com/iksnae/dm-insights/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		weeks    []string
		all      bool
		noBundle bool
	)

	cmd := &cobra.Command{
		Use:   "export <input> <partner>",
		Short: "Export weeks of a conversation as Markdown",
		Long: `Export selected ISO weeks of one conversation, one Markdown file per week.

Several weeks are bundled into a single <partner>_export.zip unless
--no-bundle is given or export.bundle is false in the config file.
Use 'dm-insights show <input> <partner>' to see the available weeks.`,
		Example: `  dm-insights export user_data.json alice --week 2024-W03 --week 2024-W04
  dm-insights export user_data.json alice --all --no-bundle --out-dir ./alice`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(weeks) > 0) {
				return errors.New("select weeks with --week or pass --all")
			}

			state, err := a.loadState(cmd, args[0])
			if err != nil {
				return err
			}
			partner := args[1]
			if all {
				conv, err := state.Conversation(partner)
				if err != nil {
					return err
				}
				weeks = conv.WeekKeys()
			}

			files, err := export.ExportSelection(state, partner, weeks)
			if err != nil {
				return err
			}
			if a.cfg.Export.Bundle && !noBundle {
				bundle, err := export.Bundle(partner, files)
				if err != nil {
					return err
				}
				files = []export.File{*bundle}
			}

			paths, err := export.WriteFiles(cmd.Context(), a.cfg.Export.Dir, files)
			if err != nil {
				return err
			}
			for _, path := range paths {
				internal.PrintSuccess(fmt.Sprintf("Exported %s", path))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&weeks, "week", "w", nil, "Week to export (YYYY-Www), repeatable")
	cmd.Flags().BoolVar(&all, "all", false, "Export every week of the conversation")
	cmd.Flags().BoolVar(&noBundle, "no-bundle", false, "Write one file per week instead of a zip archive")
	cmd.Flags().StringP("out-dir", "o", config.DefaultExportDir, "Output directory")
	return cmd
}
