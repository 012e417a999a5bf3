package vault

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/atotto/clipboard"

	kerrors "github.com/PolarWolf314/homebase/internal/errors"
	"github.com/PolarWolf314/homebase/internal/utils"
)

// Clipboard receives autofilled passwords.
type Clipboard interface {
	WriteAll(text string) error
}

var errClipboardUnsupported = errors.New("no clipboard utility available")

// SystemClipboard writes to the desktop clipboard through atotto/clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// Delivery says where an autofilled password went.
type Delivery string

const (
	DeliveryNone      Delivery = "none"
	DeliveryClipboard Delivery = "clipboard"
	DeliveryDisplay   Delivery = "display"
)

// Reasons an autofill did not happen.
const (
	ReasonUnknownApp = "no login pattern known for app"
	ReasonNotStored  = "no saved password for label"
)

type AutofillResult struct {
	App      string   `json:"app" yaml:"app"`
	Label    string   `json:"label,omitempty" yaml:"label,omitempty"`
	OK       bool     `json:"ok" yaml:"ok"`
	Reason   string   `json:"reason,omitempty" yaml:"reason,omitempty"`
	Apply    bool     `json:"apply" yaml:"apply"`
	Delivery Delivery `json:"delivery" yaml:"delivery"`
	Masked   string   `json:"masked,omitempty" yaml:"masked,omitempty"`

	// ClipboardError is set when the clipboard failed and the masked
	// display was used instead.
	ClipboardError string `json:"clipboard_error,omitempty" yaml:"clipboard_error,omitempty"`
}

// AutofillApp looks up the password for app. An unknown app or a missing
// password is a result with OK false, not an error. In apply mode the
// password is written to cb; if that is not possible the result falls back
// to the masked display.
func (v *Vault) AutofillApp(app string, apply bool, cb Clipboard) (AutofillResult, error) {
	result := AutofillResult{App: app, Apply: apply, Delivery: DeliveryNone}

	label, ok := v.DetectAppLogin(app)
	if !ok {
		result.Reason = ReasonUnknownApp
		return result, nil
	}
	result.Label = label

	password, found, err := v.GetPassword(label)
	if err != nil {
		return result, err
	}
	if !found {
		result.Reason = ReasonNotStored
		return result, nil
	}

	result.OK = true
	result.Masked = utils.MaskSecret(password)
	if !apply {
		return result, nil
	}

	if cb == nil {
		cb = SystemClipboard{}
	}
	if err := cb.WriteAll(password); err != nil {
		result.Delivery = DeliveryDisplay
		result.ClipboardError = err.Error()
		return result, nil
	}
	result.Delivery = DeliveryClipboard
	return result, nil
}

// PlaceholderMissing stands in for a field that has no value in the file.
const PlaceholderMissing = "MISSING"

var (
	configFieldPattern = regexp.MustCompile(`(?i)(password|pwd|pass(?:word)?)\s*[:=]\s*["']?([^"',\s]+)["']?`)

	configAttributePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)autocomplete=["']?password["']`),
		regexp.MustCompile(`(?i)type=["']?password["']`),
	}
)

type ConfigMatch struct {
	Field       string `json:"field" yaml:"field"`
	Placeholder string `json:"placeholder" yaml:"placeholder"`
	Label       string `json:"label" yaml:"label"`
	HasSaved    bool   `json:"has_saved" yaml:"has_saved"`
}

// AutofillConfig lists the password fields in the file at path and whether
// the vault holds a password for each. Labels are "<file stem>_<field>". It
// never writes anything.
func (v *Vault) AutofillConfig(path string) ([]ConfigMatch, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := v.Load()
	if err != nil {
		return nil, err
	}

	stem := utils.FileStem(path)
	matches := []ConfigMatch{}
	add := func(field, placeholder string) {
		label := stem + "_" + field
		_, saved := doc[label]
		matches = append(matches, ConfigMatch{
			Field:       field,
			Placeholder: placeholder,
			Label:       label,
			HasSaved:    saved,
		})
	}

	for _, m := range configFieldPattern.FindAllStringSubmatch(string(content), -1) {
		placeholder := m[2]
		if placeholder == "" {
			placeholder = PlaceholderMissing
		}
		add(strings.ToLower(m[1]), placeholder)
	}
	for _, pattern := range configAttributePatterns {
		for range pattern.FindAllStringIndex(string(content), -1) {
			add("password", PlaceholderMissing)
		}
	}

	return matches, nil
}
