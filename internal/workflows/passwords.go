package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/homebase/internal/task"
	"github.com/PolarWolf314/homebase/internal/utils"
	"github.com/PolarWolf314/homebase/internal/vault"
)

// GeneratePasswordOptions configures the generate-password workflow.
type GeneratePasswordOptions struct {
	Label string

	// Length defaults to the configured password length.
	Length int

	// ExcludeSymbols drops the symbol class. The configured default applies
	// when it is false.
	ExcludeSymbols bool

	// Copy puts the new password on the clipboard.
	Copy bool

	Apply bool
}

// GeneratePasswordResult contains the outcome of a generate-password run.
type GeneratePasswordResult struct {
	RequestID string         `json:"request_id" yaml:"request_id"`
	Label     string         `json:"label" yaml:"label"`
	Policy    vault.Policy   `json:"policy" yaml:"policy"`
	Strength  int            `json:"strength" yaml:"strength"`
	DryRun    bool           `json:"dry_run" yaml:"dry_run"`
	Stored    bool           `json:"stored" yaml:"stored"`
	Masked    string         `json:"masked,omitempty" yaml:"masked,omitempty"`
	Delivery  vault.Delivery `json:"delivery,omitempty" yaml:"delivery,omitempty"`
	VaultPath string         `json:"vault_path" yaml:"vault_path"`
}

// GeneratePassword creates a password for a label and stores it in the vault,
// replacing any previous password under that label. A dry run reports the
// policy and strength without touching the vault.
//
// Returns ErrSchemaValidation if the length is outside 8-128.
// Returns ErrEmptyCharset if every character class is disabled.
// Returns ErrKeyUnavailable or ErrVaultCorrupted if the vault cannot be used.
func GeneratePassword(ctx context.Context, env *Env, opts GeneratePasswordOptions) (*GeneratePasswordResult, error) {
	length := opts.Length
	if length == 0 {
		length = env.Config.Passwords.Length
	}

	params := task.GeneratePassword{
		Label:     opts.Label,
		Length:    length,
		Uppercase: true,
		Lowercase: true,
		Digits:    true,
		Symbols:   !(opts.ExcludeSymbols || env.Config.Passwords.ExcludeSymbols),
	}

	run, err := env.Pipeline.Run(ctx, task.New(params), RunOptions{
		Apply:  opts.Apply,
		Action: env.generatePasswordAction(params, opts.Copy),
	})
	if err != nil {
		return nil, err
	}

	result := run.Output.(*GeneratePasswordResult)
	result.RequestID = run.RequestID
	return result, nil
}

func (e *Env) generatePasswordAction(p task.GeneratePassword, copyToClipboard bool) Action {
	return func(ctx context.Context, apply bool) (ActionResult, error) {
		policy := vault.Policy{
			Length:    p.Length,
			Uppercase: p.Uppercase,
			Lowercase: p.Lowercase,
			Digits:    p.Digits,
			Symbols:   p.Symbols,
		}
		if err := policy.Validate(); err != nil {
			return ActionResult{}, err
		}

		out := &GeneratePasswordResult{
			Label:     p.Label,
			Policy:    policy,
			Strength:  vault.Strength(policy),
			DryRun:    !apply,
			VaultPath: e.Settings.VaultPath,
		}
		if !apply {
			return ActionResult{Output: out}, nil
		}

		v, err := e.Vault()
		if err != nil {
			return ActionResult{}, err
		}
		entry, err := v.GeneratePassword(p.Label, policy)
		if err != nil {
			return ActionResult{}, err
		}

		out.Stored = true
		out.Strength = entry.Strength
		out.Masked = utils.MaskSecret(entry.Password)

		if copyToClipboard {
			out.Delivery = vault.DeliveryClipboard
			if err := e.Clipboard.WriteAll(entry.Password); err != nil {
				e.Logger.WarnfAlways("Could not copy to clipboard: %v", err)
				out.Delivery = vault.DeliveryDisplay
			}
		}

		return ActionResult{
			Details: map[string]any{"strength": entry.Strength},
			Output:  out,
		}, nil
	}
}

// ScanPasswordsOptions configures the scan-passwords workflow.
type ScanPasswordsOptions struct {
	Scope string

	// Exclude holds doublestar globs, relative to Scope, to leave out.
	Exclude []string

	Apply bool
}

// ScanPasswordsResult contains the outcome of a scan.
type ScanPasswordsResult struct {
	RequestID string          `json:"request_id" yaml:"request_id"`
	Scope     string          `json:"scope" yaml:"scope"`
	Findings  []vault.Finding `json:"findings" yaml:"findings"`
	DryRun    bool            `json:"dry_run" yaml:"dry_run"`
}

// ScanPasswords looks for password fields in the text files under a folder.
// Scanning only reads files, so it runs in dry-run mode too.
func ScanPasswords(ctx context.Context, env *Env, opts ScanPasswordsOptions) (*ScanPasswordsResult, error) {
	run, err := env.Run(ctx, task.New(task.ScanPasswordFields{Scope: opts.Scope, Exclude: opts.Exclude}), opts.Apply)
	if err != nil {
		return nil, err
	}

	result := run.Output.(*ScanPasswordsResult)
	result.RequestID = run.RequestID
	return result, nil
}

func (e *Env) scanPasswordsAction(p task.ScanPasswordFields) Action {
	return func(ctx context.Context, apply bool) (ActionResult, error) {
		v, err := e.Vault()
		if err != nil {
			return ActionResult{}, err
		}

		scope := e.expand(p.Scope)
		findings, err := v.ScanForPasswordFields(scope, vault.ScanOptions{Exclude: p.Exclude})
		if err != nil {
			return ActionResult{}, err
		}
		e.Logger.Infof("Scanned %s: %d findings", scope, len(findings))

		return ActionResult{
			Details: map[string]any{"findings": len(findings)},
			Output:  &ScanPasswordsResult{Scope: scope, Findings: findings, DryRun: !apply},
		}, nil
	}
}

// AutofillAppOptions configures the autofill-app workflow.
type AutofillAppOptions struct {
	App   string
	Apply bool
}

// AutofillAppResult contains the outcome of an autofill-app run.
type AutofillAppResult struct {
	RequestID string `json:"request_id" yaml:"request_id"`
	vault.AutofillResult
}

// AutofillApp finds the saved password for a known application and, with
// Apply, copies it to the clipboard. An unknown app or a missing password is
// reported in the result, not as an error.
func AutofillApp(ctx context.Context, env *Env, opts AutofillAppOptions) (*AutofillAppResult, error) {
	run, err := env.Run(ctx, task.New(task.AutofillApp{App: opts.App}), opts.Apply)
	if err != nil {
		return nil, err
	}

	return &AutofillAppResult{
		RequestID:      run.RequestID,
		AutofillResult: run.Output.(vault.AutofillResult),
	}, nil
}

func (e *Env) autofillAppAction(p task.AutofillApp) Action {
	return func(ctx context.Context, apply bool) (ActionResult, error) {
		v, err := e.Vault()
		if err != nil {
			return ActionResult{}, err
		}

		res, err := v.AutofillApp(p.App, apply, e.Clipboard)
		if err != nil {
			return ActionResult{}, err
		}
		if res.ClipboardError != "" {
			e.Logger.Warnf("Clipboard unavailable, falling back to masked display: %s", res.ClipboardError)
		}

		details := map[string]any{"ok": res.OK, "delivery": string(res.Delivery)}
		if res.Label != "" {
			details["label"] = res.Label
		}
		if res.Reason != "" {
			details["reason"] = res.Reason
		}
		return ActionResult{Details: details, Output: res}, nil
	}
}

// AutofillConfigOptions configures the autofill-config workflow.
type AutofillConfigOptions struct {
	File  string
	Apply bool
}

// AutofillConfigResult contains the password fields found in a config file.
type AutofillConfigResult struct {
	RequestID string              `json:"request_id" yaml:"request_id"`
	File      string              `json:"file" yaml:"file"`
	Matches   []vault.ConfigMatch `json:"matches" yaml:"matches"`
	DryRun    bool                `json:"dry_run" yaml:"dry_run"`
}

// AutofillConfig reports the password fields in a config file and whether
// the vault has a password for each. It is read-only in both modes.
//
// Returns ErrFileNotFound if the file does not exist.
func AutofillConfig(ctx context.Context, env *Env, opts AutofillConfigOptions) (*AutofillConfigResult, error) {
	run, err := env.Run(ctx, task.New(task.AutofillConfig{File: opts.File}), opts.Apply)
	if err != nil {
		return nil, err
	}

	result := run.Output.(*AutofillConfigResult)
	result.RequestID = run.RequestID
	return result, nil
}

func (e *Env) autofillConfigAction(p task.AutofillConfig) Action {
	return func(ctx context.Context, apply bool) (ActionResult, error) {
		v, err := e.Vault()
		if err != nil {
			return ActionResult{}, err
		}

		file := e.expand(p.File)
		matches, err := v.AutofillConfig(file)
		if err != nil {
			return ActionResult{}, err
		}

		saved := 0
		for _, m := range matches {
			if m.HasSaved {
				saved++
			}
		}

		return ActionResult{
			Details: map[string]any{"matches": len(matches), "saved": saved},
			Output:  &AutofillConfigResult{File: file, Matches: matches, DryRun: !apply},
		}, nil
	}
}

// RunTaskOptions configures the generic run workflow.
type RunTaskOptions struct {
	// Type is the task type name, e.g. "ORGANIZE_DOWNLOADS".
	Type string

	// Params is a JSON object with the task parameters.
	Params []byte

	Apply bool
}

// RunTask builds a request from a task type name and JSON parameters and runs
// it. It is the entry point for task types without a dedicated command.
//
// Returns ErrUnknownTaskType for an unknown type name.
// Returns ErrInvalidParams if Params is not a JSON object.
// Returns ErrNoPlannerRegistered for task types that cannot be planned.
func RunTask(ctx context.Context, env *Env, opts RunTaskOptions) (*RunResult, error) {
	req, err := task.ParseJSON(task.Type(opts.Type), opts.Params)
	if err != nil {
		return nil, fmt.Errorf("parsing %s request: %w", opts.Type, err)
	}
	return env.Run(ctx, req, opts.Apply)
}
