package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/PolarWolf314/homebase/internal/utils"
)

// Suggested actions for a finding.
const (
	SuggestGenerateNew   = "generate_new"
	SuggestAutofillSaved = "autofill_saved"
)

const findingLine = "Detected password field pattern"

// passwordFieldPatterns are tried in order and the first match wins. The
// index sets the confidence, so reordering changes reported results.
var passwordFieldPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)password\s*[:=]\s*["']?\w*["']?`),
	regexp.MustCompile(`(?i)pwd\s*[:=]\s*["']?\w*["']?`),
	regexp.MustCompile(`(?i)pass(wd)?\s*[:=]\s*["']?\w*["']?`),
	regexp.MustCompile(`(?i)autocomplete=["']?password["']?`),
	regexp.MustCompile(`(?i)type=["']?password["']?`),
	regexp.MustCompile(`(?i)input.*name=["']?(pwd|pass|password)["']?`),
}

// scannableExtensions is matched case-sensitively.
var scannableExtensions = map[string]bool{
	".html": true,
	".htm":  true,
	".txt":  true,
	".md":   true,
	".conf": true,
	".json": true,
	".yaml": true,
	".yml":  true,
}

// Confidence of a match on pattern index i.
func Confidence(i int) int {
	return 80 + 5*i
}

type Finding struct {
	File       string `json:"file" yaml:"file"`
	Line       string `json:"line" yaml:"line"`
	Label      string `json:"label" yaml:"label"`
	Suggestion string `json:"suggestion" yaml:"suggestion"`
	Confidence int    `json:"confidence" yaml:"confidence"`
}

type ScanOptions struct {
	// Exclude holds doublestar globs matched against paths relative to the
	// scan root, with forward slashes. A matching directory is not entered.
	Exclude []string
}

// ScanForPasswordFields walks root and reports at most one finding per file
// whose content looks like it holds a password field. Files that cannot be
// read or are not UTF-8 text are skipped. A root that does not exist yields
// no findings.
func (v *Vault) ScanForPasswordFields(root string, opts ScanOptions) ([]Finding, error) {
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	if _, err := os.Stat(root); err != nil {
		return []Finding{}, nil
	}

	// WalkDir does not descend into a symlinked root, so walk its target and
	// report paths under root.
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return []Finding{}, nil
	}

	doc, err := v.Load()
	if err != nil {
		return nil, err
	}

	findings := []Finding{}
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != walkRoot {
				return filepath.SkipDir
			}
			return nil
		}

		if path != walkRoot && excluded(walkRoot, path, opts.Exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !scannableExtensions[filepath.Ext(path)] {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil || !utf8.Valid(content) {
			return nil
		}

		for i, pattern := range passwordFieldPatterns {
			if !pattern.Match(content) {
				continue
			}
			reported := path
			if rel, err := filepath.Rel(walkRoot, path); err == nil {
				reported = filepath.Join(root, rel)
			}
			label := utils.FileStem(path)
			suggestion := SuggestGenerateNew
			if _, ok := doc[label]; ok {
				suggestion = SuggestAutofillSaved
			}
			findings = append(findings, Finding{
				File:       reported,
				Line:       findingLine,
				Label:      label,
				Suggestion: suggestion,
				Confidence: Confidence(i),
			})
			break
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return findings, nil
}

func excluded(root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
