package executor

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/homebase/internal/errors"
	logger "github.com/PolarWolf314/homebase/internal/logging"
	"github.com/PolarWolf314/homebase/internal/plan"
)

func quietExecutor() *Executor {
	var buf bytes.Buffer
	return New(logger.Logger{Out: &buf, Err: &buf})
}

// snapshot lists every path under root with its mode and size.
func snapshot(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		out = append(out, fmt.Sprintf("%s:%s:%d", rel, info.Mode(), info.Size()))
		return nil
	})
	require.NoError(t, err)
	sort.Strings(out)
	return out
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestExecute_DryRunChangesNothing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.pdf"), "pdf")
	before := snapshot(t, root)

	steps := []plan.Step{
		plan.CreateDir(filepath.Join(root, "Documents")),
		plan.MoveFile(filepath.Join(root, "a.pdf"), filepath.Join(root, "Documents", "a.pdf")),
		plan.MoveFile(filepath.Join(root, "missing"), filepath.Join(root, "x")),
		{Type: plan.StepRenameFile, Args: map[string]string{"src": "a", "dst": "b"}},
	}
	report := quietExecutor().Execute(steps, false)

	assert.Equal(t, before, snapshot(t, root))
	assert.False(t, report.Apply)
	assert.Equal(t, 3, report.Count(OutcomePlanned))
	assert.Equal(t, 1, report.Count(OutcomeSkipped))
}

func TestExecute_CreateDir(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "a", "b", "c")

	report := quietExecutor().Execute([]plan.Step{plan.CreateDir(target)}, true)

	require.Len(t, report.Results, 1)
	assert.Equal(t, OutcomeDone, report.Results[0].Outcome)
	assert.DirExists(t, target)
}

func TestExecute_CreateDirIdempotent(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "exists")
	require.NoError(t, os.Mkdir(target, 0755))

	report := quietExecutor().Execute([]plan.Step{plan.CreateDir(target), plan.CreateDir(target)}, true)

	assert.Equal(t, 2, report.Count(OutcomeDone))
	assert.Empty(t, report.Failures())
}

func TestExecute_CreateDirOverFile(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "file")
	writeFile(t, target, "x")

	report := quietExecutor().Execute([]plan.Step{plan.CreateDir(target)}, true)

	require.Len(t, report.Failures(), 1)
	assert.True(t, errors.Is(report.Failures()[0], kerrors.ErrStepFailed))
}

func TestExecute_MoveFile(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "photo.jpg")
	dst := filepath.Join(root, "Images", "photo.jpg")
	writeFile(t, src, "jpg")

	report := quietExecutor().Execute([]plan.Step{plan.MoveFile(src, dst)}, true)

	assert.Equal(t, OutcomeDone, report.Results[0].Outcome)
	assert.NoFileExists(t, src)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "jpg", string(data))
}

func TestExecute_MoveFileRefusesOverwrite(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "new.txt")
	dst := filepath.Join(root, "Documents", "new.txt")
	writeFile(t, src, "new")
	writeFile(t, dst, "old")

	report := quietExecutor().Execute([]plan.Step{plan.MoveFile(src, dst)}, true)

	assert.Equal(t, OutcomeFailed, report.Results[0].Outcome)
	assert.Contains(t, report.Results[0].Message, "already exists")
	assert.FileExists(t, src)
	data, _ := os.ReadFile(dst)
	assert.Equal(t, "old", string(data))
}

func TestExecute_PartialFailureContinues(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "Documents")
	writeFile(t, filepath.Join(root, "one.txt"), "1")
	writeFile(t, filepath.Join(root, "three.txt"), "3")

	steps := []plan.Step{
		plan.MoveFile(filepath.Join(root, "one.txt"), filepath.Join(dest, "one.txt")),
		plan.MoveFile(filepath.Join(root, "two.txt"), filepath.Join(dest, "two.txt")),
		plan.MoveFile(filepath.Join(root, "three.txt"), filepath.Join(dest, "three.txt")),
	}
	report := quietExecutor().Execute(steps, true)

	require.Len(t, report.Results, 3)
	assert.Equal(t, OutcomeDone, report.Results[0].Outcome)
	assert.Equal(t, OutcomeFailed, report.Results[1].Outcome)
	assert.Equal(t, OutcomeDone, report.Results[2].Outcome)

	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, 1, failures[0].Index)
	assert.True(t, errors.Is(failures[0], kerrors.ErrStepFailed))
	assert.True(t, errors.Is(failures[0], os.ErrNotExist))

	assert.FileExists(t, filepath.Join(dest, "one.txt"))
	assert.FileExists(t, filepath.Join(dest, "three.txt"))
}

func TestExecute_SkipsUnhandledSteps(t *testing.T) {
	var buf bytes.Buffer
	exec := New(logger.Logger{Out: &buf, Err: &buf})

	steps := []plan.Step{
		{Type: plan.StepRenameFile, Args: map[string]string{"src": "/a", "dst": "/b"}},
		{Type: "DELETE_FILE", Args: map[string]string{"path": "/a"}},
	}
	report := exec.Execute(steps, true)

	assert.Equal(t, 2, report.Count(OutcomeSkipped))
	assert.Empty(t, report.Failures())
	assert.Contains(t, buf.String(), "RENAME_FILE")
}

func TestExecute_MissingArguments(t *testing.T) {
	report := quietExecutor().Execute([]plan.Step{
		{Type: plan.StepCreateDir, Args: map[string]string{}},
		{Type: plan.StepMoveFile, Args: map[string]string{"src": "/a"}},
	}, true)

	assert.Equal(t, 2, report.Count(OutcomeFailed))
}

func TestExecute_VerboseLogsProgress(t *testing.T) {
	var out bytes.Buffer
	exec := New(logger.Logger{Verbose: true, Out: &out, Err: &out})

	exec.Execute([]plan.Step{plan.CreateDir("/nowhere/x")}, false)

	assert.Contains(t, out.String(), "Would create /nowhere/x")
}

// Whatever the steps, a dry run leaves the tree untouched.
func TestExecute_DryRunProperty(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.txt"), "k")
	before := snapshot(t, root)
	exec := quietExecutor()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("dry run mutates nothing", prop.ForAll(
		func(names []string, move bool) bool {
			var steps []plan.Step
			for _, n := range names {
				if move {
					steps = append(steps, plan.MoveFile(filepath.Join(root, "keep.txt"), filepath.Join(root, "d"+n, "keep.txt")))
				} else {
					steps = append(steps, plan.CreateDir(filepath.Join(root, "d"+n)))
				}
			}
			exec.Execute(steps, false)
			return assert.ObjectsAreEqual(before, snapshot(t, root))
		},
		gen.SliceOf(gen.AlphaString()),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
