package configs

import (
	"fmt"
	"os"
)

// Defaults applied when config.toml is absent or leaves a value unset.
const (
	DefaultDownloadsPath   = "~/Downloads"
	DefaultProjectLocation = "~/Projects"
	DefaultProjectType     = "python_project"
	DefaultPasswordLength  = 20
)

type UserConfig struct {
	Downloads DownloadsConfig   `toml:"downloads" json:"downloads" yaml:"downloads"`
	Projects  ProjectsConfig    `toml:"projects" json:"projects" yaml:"projects"`
	Passwords PasswordsConfig   `toml:"passwords" json:"passwords" yaml:"passwords"`
	Apps      map[string]string `toml:"apps" json:"apps" yaml:"apps"`
}

type DownloadsConfig struct {
	Path string `toml:"path" json:"path" yaml:"path"`

	// Categories maps an extension (".svg") to a folder name, on top of the
	// built-in table.
	Categories map[string]string `toml:"categories" json:"categories" yaml:"categories"`
}

type ProjectsConfig struct {
	Location string `toml:"location" json:"location" yaml:"location"`
	Type     string `toml:"type" json:"type" yaml:"type"`

	// Layouts maps a project type to the subdirectories created under the
	// project root, on top of the built-in layouts.
	Layouts map[string][]string `toml:"layouts" json:"layouts" yaml:"layouts"`
}

type PasswordsConfig struct {
	Length         int  `toml:"length" json:"length" yaml:"length"`
	ExcludeSymbols bool `toml:"exclude_symbols" json:"exclude_symbols" yaml:"exclude_symbols"`
}

// DefaultUserConfig returns the configuration used when no file exists.
func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Downloads: DownloadsConfig{
			Path:       DefaultDownloadsPath,
			Categories: make(map[string]string),
		},
		Projects: ProjectsConfig{
			Location: DefaultProjectLocation,
			Type:     DefaultProjectType,
			Layouts:  make(map[string][]string),
		},
		Passwords: PasswordsConfig{
			Length: DefaultPasswordLength,
		},
		Apps: make(map[string]string),
	}
}

// LoadUserConfig loads config.toml, filling anything unset with defaults.
func LoadUserConfig() (*UserConfig, error) {
	configPath := HomebaseSettings.ConfigFilePath

	config := DefaultUserConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	config.applyDefaults()
	return config, nil
}

// SaveUserConfig writes config.toml.
func SaveUserConfig(config *UserConfig) error {
	if err := SaveTOML(HomebaseSettings.ConfigFilePath, config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}
	return nil
}

// EnsureUserConfig writes the default config.toml if none exists and returns
// the effective configuration.
func EnsureUserConfig() (*UserConfig, bool, error) {
	if _, err := os.Stat(HomebaseSettings.ConfigFilePath); err == nil {
		config, err := LoadUserConfig()
		return config, false, err
	} else if !os.IsNotExist(err) {
		return nil, false, fmt.Errorf("failed to check user config: %w", err)
	}

	config := DefaultUserConfig()
	if err := SaveUserConfig(config); err != nil {
		return nil, false, err
	}
	return config, true, nil
}

func (c *UserConfig) applyDefaults() {
	if c.Downloads.Path == "" {
		c.Downloads.Path = DefaultDownloadsPath
	}
	if c.Downloads.Categories == nil {
		c.Downloads.Categories = make(map[string]string)
	}
	if c.Projects.Location == "" {
		c.Projects.Location = DefaultProjectLocation
	}
	if c.Projects.Type == "" {
		c.Projects.Type = DefaultProjectType
	}
	if c.Projects.Layouts == nil {
		c.Projects.Layouts = make(map[string][]string)
	}
	if c.Passwords.Length == 0 {
		c.Passwords.Length = DefaultPasswordLength
	}
	if c.Apps == nil {
		c.Apps = make(map[string]string)
	}
}
