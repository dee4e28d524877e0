package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stevehiehn/plix/internal/engine"
)

var explainCmd = &cobra.Command{
	Use:   "explain [name:value ...]",
	Short: "Show the matrix and the variants it expands to",
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
		result, err := engine.Execute(cmd.Context(), cfg, rc, engine.ModeExplain)
		if err != nil {
			return s.fail(cmd, err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(out, result)
		}
		fmt.Fprintf(out, "Declared dimensions:   %s\n", listOrNone(result.Declared))
		fmt.Fprintf(out, "Referenced dimensions: %s\n", listOrNone(result.Referenced))
		fmt.Fprintf(out, "Unreferenced keys:     %s\n", listOrNone(result.Unreferenced))
		fmt.Fprintf(out, "\n%d of %d variant(s) selected:\n", len(result.Variants), result.Total)
		for _, vr := range result.Variants {
			fmt.Fprintf(out, "  %s\n", variantLabel(vr.Variant))
		}
		return nil
	},
}

func listOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}

func variantLabel(v string) string {
	if v == "" {
		return "(empty variant)"
	}
	return v
}

func init() {
	rootCmd.AddCommand(explainCmd)
}
