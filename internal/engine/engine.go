package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/stevehiehn/plix/internal/config"
	"github.com/stevehiehn/plix/internal/executor"
	"github.com/stevehiehn/plix/internal/logging"
	"github.com/stevehiehn/plix/internal/matrix"
)

// Mode controls execution behavior.
type Mode int

const (
	ModeExplain Mode = iota
	ModeDryRun
	ModeRun
)

// Execute builds cfg in the given mode. Explain only expands variants,
// dry-run also renders their commands, run executes them. The first failing
// variant stops the build; later variants are reported as skipped.
func Execute(ctx context.Context, cfg *config.Configuration, rc *RunContext, mode Mode) (*Result, error) {
	plan, err := Prepare(cfg, rc.Pairs)
	if err != nil {
		return nil, err
	}
	logger := rc.Logger

	result := &Result{
		RunID:        rc.RunID,
		Success:      true,
		Declared:     plan.Declared.Sorted(),
		Referenced:   plan.Matrix.Names(),
		Unreferenced: plan.Unreferenced.Sorted(),
		Total:        len(plan.Variants),
	}

	if len(plan.Unreferenced) > 0 {
		logger.Warnf("These keys are never referenced: %s. You might want to remove them from the build file.", plan.Unreferenced)
	}
	logger.Debugf("Matrix has %d dimension(s), %d variant(s).", len(plan.Matrix), len(plan.Variants))

	if len(plan.Selected) == len(plan.Variants) {
		logger.Infof("About to %s all %d variants...", verb(mode), len(plan.Selected))
	} else {
		logger.Infof("About to %s %d out of %d variants...", verb(mode), len(plan.Selected), len(plan.Variants))
	}
	if len(plan.Selected) == 0 && len(rc.Pairs) > 0 {
		logger.Warnf("No variant matches %s.", rc.Pairs)
	}

	failed := false
	for _, v := range plan.Selected {
		vr := VariantResult{Variant: v.String(), Pairs: v.Context()}
		if failed {
			vr.Status = StatusSkipped
			result.Variants = append(result.Variants, vr)
			continue
		}

		switch mode {
		case ModeExplain:
			vr.Status = StatusExplain
		case ModeDryRun:
			rv, err := RenderVariant(cfg, v)
			if err != nil {
				return nil, err
			}
			vr.Status = StatusDryRun
			vr.Commands = rv.Commands
		default:
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("build interrupted: %w", err)
			}
			if err := runVariant(ctx, cfg, rc, v, &vr); err != nil {
				return nil, err
			}
		}

		result.Variants = append(result.Variants, vr)
		if vr.Status == StatusFailed {
			result.Success = false
			result.FailedVariant = vr.Variant
			failed = true
			logger.Error("Last variant failed: build interrupted.")
		}
	}

	if mode == ModeRun && result.Success {
		logging.Success(logger, fmt.Sprintf("All %d variant(s) succeeded.", len(plan.Selected)), "run_id", rc.RunID)
	}
	return result, nil
}

func verb(mode Mode) string {
	switch mode {
	case ModeExplain:
		return "list"
	case ModeDryRun:
		return "render"
	}
	return "run"
}

// runVariant renders every phase of v before running anything, then runs
// the main phases fail-fast followed by the hooks. Hooks never change the
// variant's status.
func runVariant(ctx context.Context, cfg *config.Configuration, rc *RunContext, v matrix.Variant, vr *VariantResult) error {
	rc.Logger.Infof("Running variant %s.", v)

	rv, err := RenderVariant(cfg, v)
	if err != nil {
		return err
	}

	start := time.Now()
	index := 0
	run := func(phase string) (bool, error) {
		commands := rv.Commands[phase]
		if len(commands) == 0 {
			return true, nil
		}
		rc.Logger.Debug("Running phase", "phase", phase, "commands", len(commands))
		ok, err := executor.ExecuteAt(ctx, rc.Executor, rc.Environment, commands, rc.Display, index)
		index += len(commands)
		if err != nil {
			return false, fmt.Errorf("variant %s, %s: %w", v, phase, err)
		}
		return ok, nil
	}

	vr.Status = StatusSuccess
	for _, phase := range config.MainPhases {
		ok, err := run(phase)
		if err != nil {
			return err
		}
		if !ok {
			vr.Status = StatusFailed
			vr.FailedPhase = phase
			break
		}
	}

	hook := config.AfterSuccess
	if vr.Status == StatusFailed {
		hook = config.AfterFailure
	}
	for _, phase := range []string{hook, config.AfterScript} {
		ok, err := run(phase)
		if err != nil {
			return err
		}
		if !ok {
			rc.Logger.Warnf("%s failed for variant %s.", phase, v)
		}
	}

	vr.Duration = time.Since(start).Round(time.Millisecond).String()
	return nil
}
