package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stevehiehn/plix/internal/config"
	"github.com/stevehiehn/plix/internal/engine"
)

var dryRunCmd = &cobra.Command{
	Use:   "dry-run [name:value ...]",
	Short: "Show the commands each variant would run without running them",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, args)
		if err != nil {
			return err
		}
		cfg, err := s.load()
		if err != nil {
			return s.fail(cmd, err)
		}
		rc := engine.NewRunContext(nil, nil, s.logger, s.pairs)
		result, err := engine.Execute(cmd.Context(), cfg, rc, engine.ModeDryRun)
		if err != nil {
			return s.fail(cmd, err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(out, result)
		}
		for _, vr := range result.Variants {
			fmt.Fprintf(out, "Variant: %s\n", variantLabel(vr.Variant))
			for _, phase := range config.Phases {
				commands := vr.Commands[phase]
				if len(commands) == 0 {
					continue
				}
				fmt.Fprintf(out, "  %s:\n", phase)
				for _, c := range commands {
					fmt.Fprintf(out, "    %s\n", c)
				}
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dryRunCmd)
}
