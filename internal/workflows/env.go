package workflows

import (
	"context"

	"github.com/PolarWolf314/homebase/internal/configs"
	"github.com/PolarWolf314/homebase/internal/executor"
	logger "github.com/PolarWolf314/homebase/internal/logging"
	"github.com/PolarWolf314/homebase/internal/plan"
	"github.com/PolarWolf314/homebase/internal/policy"
	"github.com/PolarWolf314/homebase/internal/task"
	"github.com/PolarWolf314/homebase/internal/utils"
	"github.com/PolarWolf314/homebase/internal/vault"
)

// Env holds the services shared by every workflow in one process.
type Env struct {
	Settings  *configs.Settings
	Config    *configs.UserConfig
	Pipeline  *Pipeline
	Clipboard vault.Clipboard
	Logger    logger.Logger

	vault *vault.Vault
}

// NewEnv wires the pipeline for settings and config. A nil settings uses
// configs.HomebaseSettings; a nil config uses the defaults.
func NewEnv(settings *configs.Settings, config *configs.UserConfig, log logger.Logger) *Env {
	if settings == nil {
		settings = configs.HomebaseSettings
	}
	if config == nil {
		config = configs.DefaultUserConfig()
	}

	tables := plan.DefaultTables().With(config.Downloads.Categories, config.Projects.Layouts)

	return &Env{
		Settings: settings,
		Config:   config,
		Logger:   log,
		Pipeline: &Pipeline{
			Planner:  plan.New(settings.HomeDir, settings.VaultKeyPath, settings.VaultPath, tables),
			Policy:   policy.NewEngine(settings.HomeDir),
			Executor: executor.New(log),
			Logger:   log,
		},
		Clipboard: vault.SystemClipboard{},
	}
}

// Vault opens the vault on first use and returns the same handle afterwards,
// so the key file is only created by commands that need it.
func (e *Env) Vault() (*vault.Vault, error) {
	if e.vault != nil {
		return e.vault, nil
	}

	v, err := vault.Open(e.Settings.VaultKeyPath, e.Settings.VaultPath)
	if err != nil {
		return nil, err
	}
	v.RegisterApps(e.Config.Apps)

	e.vault = v
	return v, nil
}

// Run sends req through the pipeline with the in-process action its task
// type needs, if any.
func (e *Env) Run(ctx context.Context, req task.Request, apply bool) (*RunResult, error) {
	return e.Pipeline.Run(ctx, req, RunOptions{
		Apply:  apply,
		Action: e.actionFor(req),
	})
}

func (e *Env) actionFor(req task.Request) Action {
	switch p := task.Value(req.Params).(type) {
	case task.GeneratePassword:
		return e.generatePasswordAction(p, false)
	case task.ScanPasswordFields:
		return e.scanPasswordsAction(p)
	case task.AutofillApp:
		return e.autofillAppAction(p)
	case task.AutofillConfig:
		return e.autofillConfigAction(p)
	}
	return nil
}

func (e *Env) expand(path string) string {
	return utils.ExpandHome(path, e.Settings.HomeDir)
}
