package configs

import (
	"log"
	"os"
	"path/filepath"
)

// EnvConfigDir overrides the per-user configuration root when set.
const EnvConfigDir = "HOMEBASE_CONFIG_DIR"

type Settings struct {
	HomeDir        string
	ConfigDir      string
	ConfigFilePath string
	VaultKeyPath   string
	VaultPath      string
	AuditLogPath   string
}

// HomebaseSettings holds the process-wide paths. Tests swap it and restore it.
var HomebaseSettings *Settings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir := os.Getenv(EnvConfigDir)
	if configDir == "" {
		userConfigDir, err := os.UserConfigDir()
		if err != nil {
			log.Fatalf("error getting config directory: %s", err)
		}
		configDir = filepath.Join(userConfigDir, "homebase")
	}

	HomebaseSettings = NewSettings(homeDir, configDir)
}

// NewSettings lays out every persisted file under configDir.
func NewSettings(homeDir, configDir string) *Settings {
	return &Settings{
		HomeDir:        homeDir,
		ConfigDir:      configDir,
		ConfigFilePath: filepath.Join(configDir, "config.toml"),
		VaultKeyPath:   filepath.Join(configDir, "vault.key"),
		VaultPath:      filepath.Join(configDir, "vault.enc"),
		AuditLogPath:   filepath.Join(configDir, "audit.jsonl"),
	}
}
