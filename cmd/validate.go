package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stevehiehn/plix/internal/engine"
	plixerrors "github.com/stevehiehn/plix/internal/errors"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the build file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, nil)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		err = validateBuild(s)
		if jsonOutput {
			doc := map[string]any{"valid": err == nil}
			if err != nil {
				doc["error"] = errorDoc(err)
			}
			if werr := writeJSON(out, doc); werr != nil {
				return werr
			}
			if err != nil {
				cmd.SilenceUsage = true
				cmd.SilenceErrors = true
				return &ExitError{Code: 1, Err: err}
			}
			return nil
		}
		if err != nil {
			return s.fail(cmd, err)
		}
		fmt.Fprintf(out, "%s is valid.\n", s.settings.Configuration)
		return nil
	},
}

// validateBuild checks the schema, the executor and the template keys.
// Nothing is rendered.
func validateBuild(s *session) error {
	cfg, err := s.load()
	if err != nil {
		return err
	}
	if _, err := s.newExecutor(cfg); err != nil {
		return err
	}
	plan, err := engine.Prepare(cfg, nil)
	if err != nil {
		return err
	}
	if len(plan.Unreferenced) > 0 {
		s.logger.Warnf("These keys are never referenced: %s.", plan.Unreferenced)
	}
	return nil
}

// errorDoc keeps the type, keys and hint of a RunError.
func errorDoc(err error) any {
	var re *plixerrors.RunError
	if errors.As(err, &re) {
		return re
	}
	return map[string]string{"message": err.Error()}
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
