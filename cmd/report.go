package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iksnae/dm-insights/internal"
	"github.com/iksnae/dm-insights/internal/config"
	"github.com/iksnae/dm-insights/internal/export"
	"github.com/iksnae/dm-insights/internal/session"
	"github.com/spf13/cobra"
)

// reportBaseName names report files written without --out; stdoutPath
// writes to standard output instead
const (
	reportBaseName = "dm-insights-report"
	stdoutPath     = "-"
)

func newReportCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "report <input>",
		Short: "Write a full report of every conversation",
		Long: fmt.Sprintf(`Write the overview and the statistics of every conversation to a file.

Supported formats: %s. The SQLite report also holds every message
with its week and month so it can be queried directly.`, strings.Join(export.Formats, ", ")),
		Example: `  dm-insights report user_data.json --format json
  dm-insights report user_data.json -f sqlite -o dms.db
  dm-insights report user_data.json -f md -o - | less`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exporter, err := export.NewExporter(a.cfg.Export.Format)
			if err != nil {
				return err
			}

			state, err := a.loadState(cmd, args[0])
			if err != nil {
				return err
			}

			if out == stdoutPath {
				return exporter.Export(state, cmd.OutOrStdout())
			}

			path := out
			if path == "" {
				path = filepath.Join(a.cfg.Export.Dir, reportBaseName+"."+exporter.Extension())
			}
			if err := writeReport(exporter, state, path); err != nil {
				return err
			}
			internal.PrintSuccess(fmt.Sprintf("Wrote %s report to %s", a.cfg.Export.Format, path))
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", config.DefaultExportFormat, "Report format ("+strings.Join(export.Formats, ", ")+")")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, or - for stdout (default <out-dir>/"+reportBaseName+".<ext>)")
	cmd.Flags().String("out-dir", config.DefaultExportDir, "Output directory")
	return cmd
}

func writeReport(exporter export.Exporter, state *session.State, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &internal.ExportError{Format: exporter.Extension(), Path: dir, Err: err}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	if err := exporter.Export(state, f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	return nil
}
