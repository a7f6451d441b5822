package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/iksnae/dm-insights/internal"
	"github.com/iksnae/dm-insights/internal/config"
	"github.com/iksnae/dm-insights/internal/session"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// app carries what every subcommand shares once flags are parsed
type app struct {
	verbose    bool
	configPath string

	cfg    *config.Config
	holder *session.Holder
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "dm-insights",
		Short: "Analyze direct message history from a social media data export",
		Long: `A CLI tool to explore the direct messages in a social media data export.

The export's direct message history is validated, every message is normalized
and grouped by ISO week and month, and each conversation is analyzed for
activity patterns, response times, streaks and more.

Features:
  • Detect which participant is you
  • Per-conversation statistics and an overview across all conversations
  • Export selected weeks of a conversation as Markdown, zipped or loose
  • Full reports as Markdown, JSON, YAML, JSONL or SQLite

Quick Start:
  dm-insights identities user_data.json      # Who is the export owner?
  dm-insights list user_data.json            # List conversations
  dm-insights show user_data.json alice      # Statistics for one conversation
  dm-insights report user_data.json -f json  # Write a full report`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVar(&a.configPath, "config", "", "Config file (default ./dm-insights.yaml or ~/.config/dm-insights/dm-insights.yaml)")
	pf.StringP("identity", "i", "", "Your name in the export (default: detected)")
	pf.Float64("tz-offset", config.DefaultTimezoneOffset, "Hours added to every timestamp, e.g. -5 or 5.5")
	pf.String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")

	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	cmd.AddCommand(
		newIdentitiesCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newStatsCmd(a),
		newExportCmd(a),
		newReportCmd(a),
		newCheckCmd(a),
	)
	return cmd
}

// setup loads configuration for the command about to run
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	internal.SetLogLevel(internal.ParseLogLevel(cfg.LogLevel))
	if a.verbose {
		internal.SetVerbose(true)
	}
	internal.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

	a.cfg = cfg
	a.holder = session.NewHolder(cfg.SessionOptions())
	internal.LogDebug("Loaded configuration (format %s, dir %s)", cfg.Export.Format, cfg.Export.Dir)
	return nil
}

// loadState reads the export at input and processes it as the configured
// identity
func (a *app) loadState(cmd *cobra.Command, input string) (*session.State, error) {
	var data []byte
	var state *session.State

	steps := []internal.ProgressStep{
		{
			Message: "Reading export",
			Fn: func(ctx context.Context) error {
				var err error
				data, err = internal.ReadInput(input, cmd.InOrStdin())
				return err
			},
		},
		{
			Message: "Analyzing conversations",
			Fn: func(ctx context.Context) error {
				var err error
				state, err = a.holder.Load(ctx, data, a.cfg.Identity)
				return err
			},
		},
	}
	if err := internal.ShowProgressWithSteps(cmd.Context(), steps); err != nil {
		return nil, err
	}
	return state, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
