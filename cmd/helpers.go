package cmd

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/stevehiehn/plix/internal/config"
	"github.com/stevehiehn/plix/internal/display"
	plixerrors "github.com/stevehiehn/plix/internal/errors"
	"github.com/stevehiehn/plix/internal/executor"
	"github.com/stevehiehn/plix/internal/logging"
	"github.com/stevehiehn/plix/internal/matrix"
)

// session is what every command resolves before touching the build file.
type session struct {
	settings *config.Settings
	logger   *log.Logger
	pairs    matrix.Constraint
}

// newSession resolves settings, builds the logger and parses the
// name:value arguments.
func newSession(cmd *cobra.Command, args []string) (*session, error) {
	settings, err := config.LoadSettings(cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger := logging.New(cmd.ErrOrStderr(), logging.Options{
		Debug:   settings.Debug,
		NoColor: settings.NoColor,
	})
	s := &session{settings: settings, logger: logger}

	pairs, err := matrix.ParsePairs(args)
	if err != nil {
		return nil, s.fail(cmd, err)
	}
	s.pairs = pairs
	return s, nil
}

// load reads the build file named by the settings.
func (s *session) load() (*config.Configuration, error) {
	s.logger.Debug("Loading build file", "path", s.settings.Configuration)
	cfg, err := config.LoadFile(s.settings.Configuration)
	if err != nil {
		return nil, err
	}
	if s.settings.Debug {
		if dump, err := cfg.Dump(); err == nil {
			s.logger.Debugf("Normalized build file:\n%s", dump)
		}
	}
	return cfg, nil
}

// newExecutor builds the executor of cfg, or the one named by --executor.
// An override by another name drops the build file's options.
func (s *session) newExecutor(cfg *config.Configuration) (executor.Executor, error) {
	spec := cfg.Executor
	if name := s.settings.Executor; name != "" && name != spec.Name {
		spec = config.ExecutorSpec{Name: name}
	}
	s.logger.Debug("Using executor", "name", spec.Name)
	return spec.New()
}

func (s *session) displayOptions() []display.Option {
	if s.settings.NoColor {
		return []display.Option{display.WithoutColor()}
	}
	return nil
}

// report logs err for a human, with the full chain in debug mode.
func (s *session) report(err error) {
	var re *plixerrors.RunError
	if errors.As(err, &re) && re.Hint != "" {
		s.logger.Error(err.Error(), "hint", re.Hint)
	} else {
		s.logger.Error(err.Error())
	}
	for e := errors.Unwrap(err); e != nil; e = errors.Unwrap(e) {
		s.logger.Debug("Caused by", "err", e)
	}
}

// fail reports err and turns it into a silent exit status 1.
func (s *session) fail(cmd *cobra.Command, err error) error {
	s.report(err)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return &ExitError{Code: 1, Err: err}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
