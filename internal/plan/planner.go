package plan

import (
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/homebase/internal/errors"
	"github.com/PolarWolf314/homebase/internal/task"
	"github.com/PolarWolf314/homebase/internal/utils"
)

// Effect says how a plan reaches the outside world.
type Effect string

const (
	// EffectFilesystem plans are carried out step by step by the executor.
	EffectFilesystem Effect = "filesystem"

	// EffectNone plans have no steps. The task runs as an in-process action
	// and the plan only names the files that action may touch.
	EffectNone Effect = "none"
)

type Plan struct {
	Effect Effect   `json:"effect" yaml:"effect"`
	Steps  []Step   `json:"steps,omitempty" yaml:"steps,omitempty"`
	Fixed  []string `json:"fixed_paths,omitempty" yaml:"fixed_paths,omitempty"`
}

// AffectedPaths is the input to the policy check.
func (p Plan) AffectedPaths() []string {
	if p.Effect == EffectNone {
		return append([]string(nil), p.Fixed...)
	}
	return AffectedPaths(p.Steps)
}

type Planner struct {
	home         string
	vaultKeyPath string
	vaultPath    string
	tables       Tables
}

// New creates a planner. The vault paths are reported as the affected paths
// of every vault task.
func New(home, vaultKeyPath, vaultPath string, tables Tables) *Planner {
	return &Planner{
		home:         home,
		vaultKeyPath: vaultKeyPath,
		vaultPath:    vaultPath,
		tables:       tables,
	}
}

// Plan maps a request to its plan. Task types with a schema but no planning
// rule fail with ErrNoPlannerRegistered. Planning reads the filesystem but
// never changes it.
func (p *Planner) Plan(req task.Request) (Plan, error) {
	switch params := req.Params.(type) {
	case task.OrganizeDownloads:
		return p.organizeDownloads(params)
	case *task.OrganizeDownloads:
		return p.organizeDownloads(*params)
	case task.CreateProject:
		return p.createProject(params), nil
	case *task.CreateProject:
		return p.createProject(*params), nil
	case task.GeneratePassword, *task.GeneratePassword,
		task.AutofillApp, *task.AutofillApp:
		return p.pure(), nil
	case task.ScanPasswordFields:
		return p.pure(params.Scope), nil
	case *task.ScanPasswordFields:
		return p.pure(params.Scope), nil
	case task.AutofillConfig:
		return p.pure(params.File), nil
	case *task.AutofillConfig:
		return p.pure(params.File), nil
	case task.BulkRename, *task.BulkRename, task.SearchDocuments, *task.SearchDocuments:
		return Plan{}, fmt.Errorf("%w: %s", kerrors.ErrNoPlannerRegistered, req.Type())
	case nil:
		return Plan{}, fmt.Errorf("%w: request has no parameters", kerrors.ErrUnknownTaskType)
	default:
		return Plan{}, fmt.Errorf("%w: %s", kerrors.ErrUnknownTaskType, req.Type())
	}
}

func (p *Planner) expand(path string) string {
	return utils.ExpandHome(path, p.home)
}

// organizeDownloads moves every regular file directly inside the source
// directory into a category folder next to it. Each file gets its own
// CREATE_DIR step, so a category appears once per file that lands in it.
func (p *Planner) organizeDownloads(params task.OrganizeDownloads) (Plan, error) {
	source := p.expand(params.SourceDir)

	entries, err := os.ReadDir(source)
	if err != nil {
		return Plan{}, fmt.Errorf("%w: %s: %v", kerrors.ErrSourceUnreadable, source, err)
	}

	steps := []Step{}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		categoryDir := filepath.Join(source, p.tables.Category(filepath.Ext(name)))

		steps = append(steps,
			CreateDir(categoryDir),
			MoveFile(filepath.Join(source, name), filepath.Join(categoryDir, name)),
		)
	}

	return Plan{Effect: EffectFilesystem, Steps: steps}, nil
}

func (p *Planner) createProject(params task.CreateProject) Plan {
	root := filepath.Join(p.expand(params.Location), params.Name)

	steps := []Step{CreateDir(root)}
	for _, dir := range p.tables.Layouts[params.ProjectType] {
		steps = append(steps, CreateDir(filepath.Join(root, dir)))
	}

	return Plan{Effect: EffectFilesystem, Steps: steps}
}

func (p *Planner) pure(extra ...string) Plan {
	fixed := make([]string, 0, len(extra)+2)
	for _, path := range extra {
		fixed = append(fixed, p.expand(path))
	}
	fixed = append(fixed, p.vaultKeyPath, p.vaultPath)
	return Plan{Effect: EffectNone, Fixed: fixed}
}
