package policy

import (
	"fmt"

	kerrors "github.com/PolarWolf314/homebase/internal/errors"
	"github.com/PolarWolf314/homebase/internal/task"
	"github.com/PolarWolf314/homebase/internal/utils"
)

// DefaultMaxAffectedPaths bounds how many paths a single plan may touch.
const DefaultMaxAffectedPaths = 100

// Rule is a task-specific check run after the universal ones.
type Rule func(req task.Request, paths []string) error

// PathOutsideHomeError names the first affected path that escapes home.
type PathOutsideHomeError struct {
	Path     string
	Resolved string
	Home     string
}

func (e *PathOutsideHomeError) Error() string {
	if e.Resolved != "" && e.Resolved != e.Path {
		return fmt.Sprintf("policy violation: %s (resolves to %s) is outside the home directory %s", e.Path, e.Resolved, e.Home)
	}
	return fmt.Sprintf("policy violation: %s is outside the home directory %s", e.Path, e.Home)
}

func (e *PathOutsideHomeError) Unwrap() error {
	return kerrors.ErrPathOutsideHome
}

type TooManyPathsError struct {
	Count int
	Limit int
}

func (e *TooManyPathsError) Error() string {
	return fmt.Sprintf("policy violation: plan affects %d paths (limit %d)", e.Count, e.Limit)
}

func (e *TooManyPathsError) Unwrap() error {
	return kerrors.ErrTooManyAffectedPaths
}

type Engine struct {
	home     string
	maxPaths int
	rules    map[task.Type][]Rule
}

// NewEngine creates an engine confining plans to home.
func NewEngine(home string) *Engine {
	return &Engine{
		home:     home,
		maxPaths: DefaultMaxAffectedPaths,
		rules:    make(map[task.Type][]Rule),
	}
}

// AddRule registers an extra check for one task type. Rules for a type run in
// the order they were added.
func (e *Engine) AddRule(t task.Type, rule Rule) {
	e.rules[t] = append(e.rules[t], rule)
}

// Check approves the plan for req by returning nil. The checks run in order
// and the first failure is returned:
//
//  1. every path must resolve to home or somewhere beneath it
//  2. there must be at most DefaultMaxAffectedPaths paths
//  3. rules registered for the task type
func (e *Engine) Check(req task.Request, paths []string) error {
	home, err := utils.ResolvePath(e.home, e.home)
	if err != nil {
		return fmt.Errorf("failed to resolve home directory %s: %w", e.home, err)
	}

	for _, path := range paths {
		resolved, err := utils.ResolvePath(path, e.home)
		if err != nil {
			return &PathOutsideHomeError{Path: path, Home: home}
		}
		if !utils.IsWithin(resolved, home) {
			return &PathOutsideHomeError{Path: path, Resolved: resolved, Home: home}
		}
	}

	if len(paths) > e.maxPaths {
		return &TooManyPathsError{Count: len(paths), Limit: e.maxPaths}
	}

	for _, rule := range e.rules[req.Type()] {
		if err := rule(req, paths); err != nil {
			return err
		}
	}

	return nil
}
