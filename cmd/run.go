package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/stevehiehn/plix/internal/display"
	"github.com/stevehiehn/plix/internal/engine"
	"github.com/stevehiehn/plix/internal/watch"
)

var (
	runWatch         bool
	runWatchPatterns []string
)

var runCmd = &cobra.Command{
	Use:   "run [name:value ...]",
	Short: "Run the build for every selected variant",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, args)
		if err != nil {
			return err
		}

		// With --json stdout carries only the result.
		displayOut := cmd.OutOrStdout()
		if jsonOutput {
			displayOut = cmd.ErrOrStderr()
		}
		build := func(ctx context.Context) (*engine.Result, error) {
			return s.run(ctx, displayOut, cmd.OutOrStdout())
		}

		result, err := build(cmd.Context())
		if !runWatch && len(runWatchPatterns) == 0 {
			if err != nil {
				return s.fail(cmd, err)
			}
			if !result.Success {
				cmd.SilenceUsage = true
				cmd.SilenceErrors = true
				return &ExitError{Code: 1}
			}
			return nil
		}
		if err != nil {
			s.report(err)
		}

		w, err := watch.New(watch.Config{
			Files:    []string{s.settings.Configuration},
			Patterns: runWatchPatterns,
			Logger:   s.logger,
			OnChange: func(ctx context.Context, _ []string) error {
				if _, err := build(ctx); err != nil {
					s.report(err)
				}
				return nil
			},
		})
		if err != nil {
			return s.fail(cmd, err)
		}
		s.logger.Info("Watching for changes. Press Ctrl+C to stop.")
		return w.Run(cmd.Context())
	},
}

// run loads the build file and runs it once, writing the JSON result to
// jsonOut when requested.
func (s *session) run(ctx context.Context, displayOut, jsonOut io.Writer) (*engine.Result, error) {
	cfg, err := s.load()
	if err != nil {
		return nil, err
	}
	ex, err := s.newExecutor(cfg)
	if err != nil {
		return nil, err
	}
	d := display.NewStreamDisplay(displayOut, s.displayOptions()...)
	rc := engine.NewRunContext(ex, d, s.logger, s.pairs)
	s.logger.Debug("Starting build", "run_id", rc.RunID)

	result, err := engine.Execute(ctx, cfg, rc, engine.ModeRun)
	if err != nil {
		return nil, err
	}
	if jsonOutput {
		if err := writeJSON(jsonOut, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func init() {
	runCmd.Flags().BoolVarP(&runWatch, "watch", "w", false, "Run again whenever the build file changes")
	runCmd.Flags().StringArrayVar(&runWatchPatterns, "watch-pattern", nil, "Also run again when a file matching this glob changes; implies --watch")
	rootCmd.AddCommand(runCmd)
}
