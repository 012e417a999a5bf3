package workflows

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/homebase/internal/audit"
	"github.com/PolarWolf314/homebase/internal/configs"
	kerrors "github.com/PolarWolf314/homebase/internal/errors"
	"github.com/PolarWolf314/homebase/internal/executor"
	logger "github.com/PolarWolf314/homebase/internal/logging"
	"github.com/PolarWolf314/homebase/internal/plan"
	"github.com/PolarWolf314/homebase/internal/task"
)

type recordingClipboard struct {
	text string
	err  error
}

func (c *recordingClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

// setupEnv builds an Env rooted in a temp home and points the audit log there.
func setupEnv(t *testing.T) (*Env, string) {
	t.Helper()

	home := t.TempDir()
	settings := configs.NewSettings(home, filepath.Join(home, ".config", "homebase"))

	original := configs.HomebaseSettings
	configs.HomebaseSettings = settings
	t.Cleanup(func() { configs.HomebaseSettings = original })

	var out bytes.Buffer
	env := NewEnv(settings, nil, logger.Logger{Out: &out, Err: &out})
	env.Clipboard = &recordingClipboard{}
	return env, home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func statuses(t *testing.T, requestID string) []audit.Status {
	t.Helper()
	entries, err := audit.ReadEntries()
	require.NoError(t, err)

	var out []audit.Status
	for _, e := range entries {
		if requestID == "" || e.RequestID == requestID {
			out = append(out, e.Status)
		}
	}
	return out
}

var fullTrail = []audit.Status{
	audit.StatusStarted,
	audit.StatusValidated,
	audit.StatusPlanned,
	audit.StatusPolicyApproved,
	audit.StatusCompleted,
}

func TestOrganizeDownloads_DryRun(t *testing.T) {
	env, home := setupEnv(t)
	writeFile(t, filepath.Join(home, "Downloads", "report.pdf"), "pdf")
	writeFile(t, filepath.Join(home, "Downloads", "photo.jpg"), "jpg")

	result, err := OrganizeDownloads(context.Background(), env, OrganizeDownloadsOptions{})
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Len(t, result.Plan.Steps, 4)
	assert.Equal(t, 4, result.Report.Count(executor.OutcomePlanned))
	assert.FileExists(t, filepath.Join(home, "Downloads", "report.pdf"))
	assert.NoDirExists(t, filepath.Join(home, "Downloads", "Documents"))

	assert.Equal(t, fullTrail, statuses(t, result.RequestID))
}

func TestOrganizeDownloads_Apply(t *testing.T) {
	env, home := setupEnv(t)
	dl := filepath.Join(home, "Downloads")
	writeFile(t, filepath.Join(dl, "report.pdf"), "pdf")
	writeFile(t, filepath.Join(dl, "archive.tar"), "tar")
	writeFile(t, filepath.Join(dl, "README"), "readme")

	result, err := OrganizeDownloads(context.Background(), env, OrganizeDownloadsOptions{SourceDir: "~/Downloads", Apply: true})
	require.NoError(t, err)

	assert.False(t, result.DryRun)
	assert.Equal(t, 6, result.Report.Count(executor.OutcomeDone))
	assert.FileExists(t, filepath.Join(dl, "Documents", "report.pdf"))
	assert.FileExists(t, filepath.Join(dl, "Archives", "archive.tar"))
	assert.FileExists(t, filepath.Join(dl, "Other", "README"))

	entries, err := audit.ReadEntries()
	require.NoError(t, err)
	last := entries[len(entries)-1]
	assert.Equal(t, audit.StatusCompleted, last.Status)
	assert.Equal(t, false, last.Details["dry_run"])
	assert.Equal(t, float64(6), last.Details["steps_executed"])
}

func TestOrganizeDownloads_OutsideHomeRejected(t *testing.T) {
	env, _ := setupEnv(t)
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "a.pdf"), "pdf")

	_, err := OrganizeDownloads(context.Background(), env, OrganizeDownloadsOptions{SourceDir: outside, Apply: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, kerrors.ErrPathOutsideHome))

	assert.FileExists(t, filepath.Join(outside, "a.pdf"))
	assert.Equal(t, []audit.Status{audit.StatusStarted, audit.StatusValidated, audit.StatusPlanned}, statuses(t, ""))
}

func TestOrganizeDownloads_TooManyFiles(t *testing.T) {
	env, home := setupEnv(t)
	dl := filepath.Join(home, "Downloads")
	// Each file contributes three affected paths.
	for i := 0; i < 34; i++ {
		writeFile(t, filepath.Join(dl, fmt.Sprintf("note%02d.txt", i)), "x")
	}

	_, err := OrganizeDownloads(context.Background(), env, OrganizeDownloadsOptions{Apply: true})
	assert.True(t, errors.Is(err, kerrors.ErrTooManyAffectedPaths))
	assert.NoDirExists(t, filepath.Join(dl, "Documents"))
}

func TestOrganizeDownloads_MissingSource(t *testing.T) {
	env, _ := setupEnv(t)

	_, err := OrganizeDownloads(context.Background(), env, OrganizeDownloadsOptions{SourceDir: "~/nope"})
	assert.True(t, errors.Is(err, kerrors.ErrSourceUnreadable))
	assert.Equal(t, []audit.Status{audit.StatusStarted, audit.StatusValidated}, statuses(t, ""))
}

func TestCreateProject(t *testing.T) {
	env, home := setupEnv(t)

	result, err := CreateProject(context.Background(), env, CreateProjectOptions{Name: "demo", Apply: true})
	require.NoError(t, err)

	root := filepath.Join(home, "Projects", "demo")
	assert.Equal(t, []plan.Step{
		plan.CreateDir(root),
		plan.CreateDir(filepath.Join(root, "src")),
		plan.CreateDir(filepath.Join(root, "tests")),
		plan.CreateDir(filepath.Join(root, "docs")),
	}, result.Plan.Steps)
	for _, dir := range []string{"src", "tests", "docs"} {
		assert.DirExists(t, filepath.Join(root, dir))
	}
}

func TestCreateProject_MissingName(t *testing.T) {
	env, home := setupEnv(t)

	_, err := CreateProject(context.Background(), env, CreateProjectOptions{Apply: true})
	assert.True(t, errors.Is(err, kerrors.ErrSchemaValidation))
	assert.NoDirExists(t, filepath.Join(home, "Projects"))
	assert.Equal(t, []audit.Status{audit.StatusStarted}, statuses(t, ""))
}

func TestCreateProject_ConfiguredLayout(t *testing.T) {
	env, home := setupEnv(t)
	config := configs.DefaultUserConfig()
	config.Projects.Layouts["go_project"] = []string{"cmd", "internal"}
	env = NewEnv(env.Settings, config, env.Logger)

	result, err := CreateProject(context.Background(), env, CreateProjectOptions{Name: "svc", ProjectType: "go_project", Location: home})
	require.NoError(t, err)
	assert.Len(t, result.Plan.Steps, 3)
}

func TestRunTask(t *testing.T) {
	env, home := setupEnv(t)

	result, err := RunTask(context.Background(), env, RunTaskOptions{
		Type:   "CREATE_PROJECT_SCAFFOLD",
		Params: []byte(`{"name":"x","location":"~/code"}`),
		Apply:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, task.TypeCreateProject, result.TaskType)
	assert.DirExists(t, filepath.Join(home, "code", "x", "src"))
}

func TestRunTask_Errors(t *testing.T) {
	env, _ := setupEnv(t)

	tests := []struct {
		name     string
		taskType string
		params   string
		want     error
	}{
		{"unknown type", "WIPE_DISK", `{}`, kerrors.ErrUnknownTaskType},
		{"bad json", "SEARCH_DOCUMENTS", `{`, kerrors.ErrInvalidParams},
		{"bad params", "GENERATE_PASSWORD", `{"label":"x","length":200}`, kerrors.ErrSchemaValidation},
		{"no planner", "BULK_RENAME", `{"folder":"~/pics"}`, kerrors.ErrNoPlannerRegistered},
		{"no planner search", "SEARCH_DOCUMENTS", `{"scope":"~"}`, kerrors.ErrNoPlannerRegistered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RunTask(context.Background(), env, RunTaskOptions{Type: tt.taskType, Params: []byte(tt.params)})
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestPipeline_ActionErrorStopsBeforeCompleted(t *testing.T) {
	env, _ := setupEnv(t)
	boom := errors.New("boom")

	_, err := env.Pipeline.Run(context.Background(), task.New(task.AutofillApp{App: "x"}), RunOptions{
		Apply: true,
		Action: func(ctx context.Context, apply bool) (ActionResult, error) {
			return ActionResult{}, boom
		},
	})
	assert.ErrorIs(t, err, boom)
	assert.NotContains(t, statuses(t, ""), audit.StatusCompleted)
}

func TestPipeline_AuditFailureDoesNotAbort(t *testing.T) {
	env, home := setupEnv(t)
	blocker := filepath.Join(home, "blocker")
	writeFile(t, blocker, "x")
	// The audit directory is a regular file, so every audit write fails.
	configs.HomebaseSettings = configs.NewSettings(home, blocker)

	result, err := CreateProject(context.Background(), env, CreateProjectOptions{Name: "p", Location: home, Apply: true})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Report.Count(executor.OutcomeDone))
}

func TestPipeline_RequestIDsDiffer(t *testing.T) {
	env, home := setupEnv(t)

	a, err := CreateProject(context.Background(), env, CreateProjectOptions{Name: "a", Location: home})
	require.NoError(t, err)
	b, err := CreateProject(context.Background(), env, CreateProjectOptions{Name: "b", Location: home})
	require.NoError(t, err)

	assert.NotEqual(t, a.RequestID, b.RequestID)
	assert.Equal(t, fullTrail, statuses(t, a.RequestID))
	assert.Equal(t, fullTrail, statuses(t, b.RequestID))
}
