package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"worklog/internal/bootstrap"
	"worklog/internal/platform/config"
	"worklog/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

type rootOptions struct {
	dataDir string
	cfgFile string
	debug   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "worklog",
		Short:         "Track work, break and idle time from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "dir", ".", "data directory holding the session log")
	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default <dir>/worklog.yaml)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log at debug level")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newStatusCmd(opts))
	root.AddCommand(newReindexCmd(opts))
	root.AddCommand(newReportCmd(opts))
	root.AddCommand(newExportCmd(opts))
	return root
}

// loadApp resolves configuration and wires the application. Callers own the
// returned closer.
func loadApp(opts *rootOptions) (*bootstrap.App, io.Closer, error) {
	cfg, err := config.Load(opts.dataDir, opts.cfgFile, true)
	if err != nil {
		return nil, nil, err
	}
	cfg.Debug = cfg.Debug || opts.debug

	logger, logFile, err := logging.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		return nil, nil, err
	}
	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		_ = logFile.Close()
		return nil, nil, err
	}
	return app, closerFunc(func() error {
		appErr := app.Close()
		if err := logFile.Close(); err != nil {
			return err
		}
		return appErr
	}), nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func runTUI(ctx context.Context, opts *rootOptions) error {
	app, closer, err := loadApp(opts)
	if err != nil {
		return err
	}
	defer closer.Close()
	return bootstrap.RunTUI(ctx, app)
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the tracking dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the latest session and today's totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closer, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer closer.Close()
			out, err := app.HistoryCLI.Status(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderStatus(out))
			return nil
		},
	}
}

func newReindexCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite projection from the session log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closer, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer closer.Close()
			out, err := app.HistoryCLI.Reindex(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindexed %d sessions into %s\n", out.Sessions, app.Config.DBPath)
			return nil
		},
	}
}

func newReportCmd(opts *rootOptions) *cobra.Command {
	var days int
	var plain bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize work and break time per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closer, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer closer.Close()
			out, err := app.HistoryCLI.Report(cmd.Context(), days)
			if err != nil {
				return err
			}
			if plain {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderReportPlain(out))
				return nil
			}
			rendered, err := renderReportMarkdown(out)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "number of days to include, today counted")
	cmd.Flags().BoolVar(&plain, "plain", false, "print a plain table instead of rendered markdown")
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a day's sessions to a markdown journal note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closer, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer closer.Close()
			out, err := app.HistoryCLI.Export(cmd.Context(), date)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d sessions for %s to %s\n", out.Sessions, out.Date, out.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to export as YYYY-MM-DD (default today)")
	return cmd
}
