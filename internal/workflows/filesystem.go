package workflows

import (
	"context"

	"github.com/PolarWolf314/homebase/internal/task"
)

// OrganizeDownloadsOptions configures the organize-downloads workflow.
type OrganizeDownloadsOptions struct {
	// SourceDir is the folder to sort. Defaults to the configured downloads path.
	SourceDir string

	// Apply moves the files. When false only the plan is reported.
	Apply bool
}

// OrganizeDownloads sorts the files directly inside a folder into category
// subfolders by extension.
//
// Returns ErrSourceUnreadable if the folder cannot be listed.
// Returns ErrPathOutsideHome or ErrTooManyAffectedPaths if policy rejects the plan.
func OrganizeDownloads(ctx context.Context, env *Env, opts OrganizeDownloadsOptions) (*RunResult, error) {
	source := opts.SourceDir
	if source == "" {
		source = env.Config.Downloads.Path
	}

	req := task.New(task.OrganizeDownloads{SourceDir: source})
	return env.Run(ctx, req, opts.Apply)
}

// CreateProjectOptions configures the create-project workflow.
type CreateProjectOptions struct {
	Name string

	// Location is the parent folder. Defaults to the configured projects location.
	Location string

	// ProjectType picks the directory layout. Defaults to the configured type.
	ProjectType string

	Apply bool
}

// CreateProject creates a project root and the layout for its type.
func CreateProject(ctx context.Context, env *Env, opts CreateProjectOptions) (*RunResult, error) {
	location := opts.Location
	if location == "" {
		location = env.Config.Projects.Location
	}
	projectType := opts.ProjectType
	if projectType == "" {
		projectType = env.Config.Projects.Type
	}

	req := task.New(task.CreateProject{
		Name:        opts.Name,
		Location:    location,
		ProjectType: projectType,
	})
	return env.Run(ctx, req, opts.Apply)
}
