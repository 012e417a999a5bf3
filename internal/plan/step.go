package plan

import (
	"fmt"
	"sort"
	"strings"
)

// StepType is a primitive filesystem operation.
type StepType string

const (
	StepCreateDir StepType = "CREATE_DIR"
	StepMoveFile  StepType = "MOVE_FILE"

	// StepRenameFile is reserved; no planner emits it and the executor skips it.
	StepRenameFile StepType = "RENAME_FILE"
)

// Argument keys. CREATE_DIR uses ArgPath, MOVE_FILE uses ArgSrc and ArgDst.
const (
	ArgPath = "path"
	ArgSrc  = "src"
	ArgDst  = "dst"
)

type Step struct {
	Type StepType          `json:"step_type" yaml:"step_type"`
	Args map[string]string `json:"args" yaml:"args"`
}

func CreateDir(path string) Step {
	return Step{Type: StepCreateDir, Args: map[string]string{ArgPath: path}}
}

func MoveFile(src, dst string) Step {
	return Step{Type: StepMoveFile, Args: map[string]string{ArgSrc: src, ArgDst: dst}}
}

func (s Step) String() string {
	switch s.Type {
	case StepCreateDir:
		return fmt.Sprintf("%s %s", s.Type, s.Args[ArgPath])
	case StepMoveFile:
		return fmt.Sprintf("%s %s -> %s", s.Type, s.Args[ArgSrc], s.Args[ArgDst])
	}

	keys := make([]string, 0, len(s.Args))
	for k := range s.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+s.Args[k])
	}
	return fmt.Sprintf("%s %s", s.Type, strings.Join(parts, " "))
}

// AffectedPaths lists every path, src and dst argument of steps, in step
// order. Duplicates are kept: a path touched twice counts twice.
func AffectedPaths(steps []Step) []string {
	var paths []string
	for _, s := range steps {
		for _, key := range []string{ArgPath, ArgSrc, ArgDst} {
			if v, ok := s.Args[key]; ok {
				paths = append(paths, v)
			}
		}
	}
	return paths
}
