// Package cmd contains the plix command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/stevehiehn/plix/internal/config"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"

	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "plix",
	Short: "Run build scripts across a matrix of variants",
	Long: `plix expands the matrix declared in a build file into variants,
renders the templated commands of each variant and runs them phase by
phase, stopping at the first failure.

Variants can be selected with name:value pairs:

  plix run python:3.6 os:linux`,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("configuration", "c", config.DefaultFile, "Build file to read (YAML or TOML)")
	flags.BoolP("debug", "d", false, "Log debug output, including the normalized build file")
	flags.Bool("no-color", false, "Disable colored output")
	flags.String("executor", "", "Executor to run commands with, overriding the build file")
	flags.BoolVar(&jsonOutput, "json", false, "Output raw JSON")
}

func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// Execute runs the root command and exits with the build's status.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
