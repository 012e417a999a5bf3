package workflows

import (
	"context"

	"github.com/google/uuid"

	"github.com/PolarWolf314/homebase/internal/audit"
	"github.com/PolarWolf314/homebase/internal/executor"
	logger "github.com/PolarWolf314/homebase/internal/logging"
	"github.com/PolarWolf314/homebase/internal/plan"
	"github.com/PolarWolf314/homebase/internal/policy"
	"github.com/PolarWolf314/homebase/internal/task"
)

// ActionResult is what an in-process action reports back to the pipeline.
type ActionResult struct {
	// Details are recorded with the COMPLETED audit entry. They must never
	// contain secrets.
	Details map[string]any

	// Output is returned to the caller in RunResult.Output.
	Output any
}

// Action carries out a task whose plan has no filesystem steps.
type Action func(ctx context.Context, apply bool) (ActionResult, error)

// RunOptions configures a single pipeline run.
type RunOptions struct {
	// Apply performs the task. When false the run is a dry run.
	Apply bool

	// Action runs for plans with no filesystem effect. It is ignored for
	// filesystem plans.
	Action Action
}

// RunResult contains the outcome of a pipeline run.
type RunResult struct {
	RequestID     string           `json:"request_id" yaml:"request_id"`
	TaskType      task.Type        `json:"task_type" yaml:"task_type"`
	DryRun        bool             `json:"dry_run" yaml:"dry_run"`
	Plan          plan.Plan        `json:"plan" yaml:"plan"`
	AffectedPaths []string         `json:"affected_paths" yaml:"affected_paths"`
	Report        *executor.Report `json:"report,omitempty" yaml:"report,omitempty"`
	Details       map[string]any   `json:"details,omitempty" yaml:"details,omitempty"`
	Output        any              `json:"output,omitempty" yaml:"output,omitempty"`
}

// Pipeline drives a request through validate, plan, policy and execute, and
// records each stage it passes in the audit log.
type Pipeline struct {
	Planner  *plan.Planner
	Policy   *policy.Engine
	Executor *executor.Executor
	Logger   logger.Logger
}

// Run processes req. Validation, planning and policy failures are returned
// before anything is executed, and the audit trail for the run stops at the
// last stage passed. Step failures during execution do not fail the run; they
// are in the report.
//
// Returns ErrUnknownTaskType or ErrSchemaValidation if the request is invalid.
// Returns ErrNoPlannerRegistered if the task type cannot be planned.
// Returns ErrPathOutsideHome or ErrTooManyAffectedPaths if policy rejects it.
func (p *Pipeline) Run(ctx context.Context, req task.Request, opts RunOptions) (*RunResult, error) {
	requestID := uuid.NewString()
	record := func(status audit.Status, details map[string]any) {
		entry := audit.NewEntry(req, status, details)
		entry.RequestID = requestID
		audit.Log(entry)
	}

	p.Logger.Debugf("Request %s: %s %v", requestID, req.Type(), req.Fields())
	record(audit.StatusStarted, nil)

	if err := task.Validate(req); err != nil {
		return nil, err
	}
	record(audit.StatusValidated, nil)

	pl, err := p.Planner.Plan(req)
	if err != nil {
		return nil, err
	}
	if pl.Effect == plan.EffectFilesystem {
		p.Logger.Infof("Planned %d steps", len(pl.Steps))
		record(audit.StatusPlanned, map[string]any{"step_count": len(pl.Steps)})
	} else {
		p.Logger.Infof("No filesystem steps, running as an in-process action")
		record(audit.StatusPlanned, map[string]any{"steps": "none (pure code action)"})
	}

	paths := pl.AffectedPaths()
	if err := p.Policy.Check(req, paths); err != nil {
		return nil, err
	}
	p.Logger.Infof("Policy approved %s (%d affected paths)", req.Type(), len(paths))
	record(audit.StatusPolicyApproved, map[string]any{"affected_paths": len(paths)})

	result := &RunResult{
		RequestID:     requestID,
		TaskType:      req.Type(),
		DryRun:        !opts.Apply,
		Plan:          pl,
		AffectedPaths: paths,
	}

	switch pl.Effect {
	case plan.EffectFilesystem:
		result.Report = p.Executor.Execute(pl.Steps, opts.Apply)
		result.Details = map[string]any{
			"dry_run":        !opts.Apply,
			"steps_executed": len(pl.Steps),
			"steps_failed":   result.Report.Count(executor.OutcomeFailed),
		}
	default:
		result.Details = map[string]any{"dry_run": !opts.Apply}
		if opts.Action != nil {
			out, err := opts.Action(ctx, opts.Apply)
			if err != nil {
				return nil, err
			}
			for k, v := range out.Details {
				result.Details[k] = v
			}
			result.Output = out.Output
		}
	}

	record(audit.StatusCompleted, result.Details)
	return result, nil
}
