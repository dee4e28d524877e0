// Package config loads and normalizes plix build files and tool settings.
package config

import (
	"fmt"

	"github.com/stevehiehn/plix/internal/executor"
	"github.com/stevehiehn/plix/internal/matrix"
)

// Phase names, in the order a variant runs them.
const (
	BeforeInstall = "before_install"
	Install       = "install"
	BeforeScript  = "before_script"
	Script        = "script"
	AfterSuccess  = "after_success"
	AfterFailure  = "after_failure"
	AfterScript   = "after_script"
)

// MainPhases stop at the first failing command.
var MainPhases = []string{BeforeInstall, Install, BeforeScript, Script}

// Phases lists every phase.
var Phases = []string{BeforeInstall, Install, BeforeScript, Script, AfterSuccess, AfterFailure, AfterScript}

// Configuration is a normalized build file.
type Configuration struct {
	Executor      ExecutorSpec     `yaml:"executor" json:"executor"`
	Global        map[string]any   `yaml:"global" json:"global"`
	Matrix        matrix.Matrix    `yaml:"matrix" json:"matrix"`
	Exclude       []map[string]any `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	BeforeInstall []string         `yaml:"before_install,omitempty" json:"before_install,omitempty"`
	Install       []string         `yaml:"install,omitempty" json:"install,omitempty"`
	BeforeScript  []string         `yaml:"before_script,omitempty" json:"before_script,omitempty"`
	Script        []string         `yaml:"script,omitempty" json:"script,omitempty"`
	AfterSuccess  []string         `yaml:"after_success,omitempty" json:"after_success,omitempty"`
	AfterFailure  []string         `yaml:"after_failure,omitempty" json:"after_failure,omitempty"`
	AfterScript   []string         `yaml:"after_script,omitempty" json:"after_script,omitempty"`
}

// Commands returns the command templates of phase.
func (c *Configuration) Commands(phase string) []string {
	switch phase {
	case BeforeInstall:
		return c.BeforeInstall
	case Install:
		return c.Install
	case BeforeScript:
		return c.BeforeScript
	case Script:
		return c.Script
	case AfterSuccess:
		return c.AfterSuccess
	case AfterFailure:
		return c.AfterFailure
	case AfterScript:
		return c.AfterScript
	}
	return nil
}

func (c *Configuration) setCommands(phase string, commands []string) {
	switch phase {
	case BeforeInstall:
		c.BeforeInstall = commands
	case Install:
		c.Install = commands
	case BeforeScript:
		c.BeforeScript = commands
	case Script:
		c.Script = commands
	case AfterSuccess:
		c.AfterSuccess = commands
	case AfterFailure:
		c.AfterFailure = commands
	case AfterScript:
		c.AfterScript = commands
	}
}

// Exclusions returns the exclude entries as matrix constraints.
func (c *Configuration) Exclusions() []matrix.Constraint {
	out := make([]matrix.Constraint, 0, len(c.Exclude))
	for _, e := range c.Exclude {
		out = append(out, matrix.ConstraintFromMap(e))
	}
	return out
}

// ExecutorSpec names an executor and its options. It is written as a bare
// name when there are no options.
type ExecutorSpec struct {
	Name    string           `yaml:"name" json:"name"`
	Options executor.Options `yaml:"options,omitempty" json:"options,omitempty"`
}

// MarshalYAML renders the spec as a name or a name/options mapping.
func (s ExecutorSpec) MarshalYAML() (any, error) {
	if len(s.Options) == 0 {
		return s.Name, nil
	}
	type plain ExecutorSpec
	return plain(s), nil
}

// New builds the executor described by s.
func (s ExecutorSpec) New() (executor.Executor, error) {
	ex, err := executor.New(s.Name, s.Options)
	if err != nil {
		return nil, fmt.Errorf("executor %q: %w", s.Name, err)
	}
	return ex, nil
}
