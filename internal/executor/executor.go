package executor

import (
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/homebase/internal/errors"
	logger "github.com/PolarWolf314/homebase/internal/logging"
	"github.com/PolarWolf314/homebase/internal/plan"
)

// Outcome is what happened to one step.
type Outcome string

const (
	OutcomePlanned Outcome = "planned"
	OutcomeDone    Outcome = "done"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// StepError is a failure confined to one step. Later steps still run.
type StepError struct {
	Index int
	Step  plan.Step
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s) failed: %v", e.Index+1, e.Step, e.Err)
}

func (e *StepError) Unwrap() []error {
	return []error{kerrors.ErrStepFailed, e.Err}
}

type StepResult struct {
	Index   int       `json:"index" yaml:"index"`
	Step    plan.Step `json:"step" yaml:"step"`
	Outcome Outcome   `json:"outcome" yaml:"outcome"`
	Err     error     `json:"-" yaml:"-"`
	Message string    `json:"message,omitempty" yaml:"message,omitempty"`
}

type Report struct {
	Apply   bool         `json:"apply" yaml:"apply"`
	Results []StepResult `json:"results" yaml:"results"`
}

// Count returns how many steps ended with outcome.
func (r *Report) Count(outcome Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}

// Failures returns the step errors in step order.
func (r *Report) Failures() []*StepError {
	var out []*StepError
	for _, res := range r.Results {
		if serr, ok := res.Err.(*StepError); ok {
			out = append(out, serr)
		}
	}
	return out
}

type Executor struct {
	Logger logger.Logger
}

func New(log logger.Logger) *Executor {
	return &Executor{Logger: log}
}

// Execute runs steps in order. With apply false nothing on disk changes and
// every handled step is reported as planned. A failing step is recorded and
// execution moves on; earlier steps are not undone.
func (e *Executor) Execute(steps []plan.Step, apply bool) *Report {
	mode := "dry-run"
	if apply {
		mode = "apply"
	}
	e.Logger.Infof("Executing %d steps (%s)", len(steps), mode)

	report := &Report{Apply: apply, Results: make([]StepResult, 0, len(steps))}
	for i, step := range steps {
		e.Logger.Debugf("Step %d/%d: %s", i+1, len(steps), step)

		result := StepResult{Index: i, Step: step}
		var err error

		switch step.Type {
		case plan.StepCreateDir:
			err = e.createDir(step, apply)
		case plan.StepMoveFile:
			err = e.moveFile(step, apply)
		default:
			e.Logger.WarnfAlways("Skipping step %d: no handler for %s", i+1, step.Type)
			result.Outcome = OutcomeSkipped
			result.Message = "no handler for step type"
			report.Results = append(report.Results, result)
			continue
		}

		switch {
		case err != nil:
			result.Outcome = OutcomeFailed
			result.Err = &StepError{Index: i, Step: step, Err: err}
			result.Message = err.Error()
			e.Logger.Warnf("Step %d failed: %v", i+1, err)
		case apply:
			result.Outcome = OutcomeDone
		default:
			result.Outcome = OutcomePlanned
		}
		report.Results = append(report.Results, result)
	}

	e.Logger.Infof("Finished: %d done, %d planned, %d failed, %d skipped",
		report.Count(OutcomeDone), report.Count(OutcomePlanned), report.Count(OutcomeFailed), report.Count(OutcomeSkipped))
	return report
}

func (e *Executor) createDir(step plan.Step, apply bool) error {
	path, ok := step.Args[plan.ArgPath]
	if !ok || path == "" {
		return fmt.Errorf("missing %q argument", plan.ArgPath)
	}

	if !apply {
		e.Logger.Infof("Would create %s", path)
		return nil
	}

	// MkdirAll succeeds when the directory already exists.
	if err := os.MkdirAll(path, 0755); err != nil {
		return err
	}
	e.Logger.Infof("Created %s", path)
	return nil
}

func (e *Executor) moveFile(step plan.Step, apply bool) error {
	src, srcOK := step.Args[plan.ArgSrc]
	dst, dstOK := step.Args[plan.ArgDst]
	if !srcOK || src == "" || !dstOK || dst == "" {
		return fmt.Errorf("missing %q or %q argument", plan.ArgSrc, plan.ArgDst)
	}

	if !apply {
		e.Logger.Infof("Would move %s -> %s", src, dst)
		return nil
	}

	if _, err := os.Lstat(src); err != nil {
		return fmt.Errorf("source %s: %w", src, err)
	}
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("destination %s already exists", dst)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("destination %s: %w", dst, err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err != nil {
		return err
	}
	e.Logger.Infof("Moved %s -> %s", src, dst)
	return nil
}
