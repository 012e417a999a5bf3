// Package configs manages homebase paths and user configuration.
//
// # Settings
//
// HomebaseSettings is initialized at startup from the user's home and config
// directories. Every persisted file lives under one root,
// $XDG_CONFIG_HOME/homebase (or HOMEBASE_CONFIG_DIR when set):
//
//	config.toml   user configuration
//	vault.key     vault key material (0600)
//	vault.enc     encrypted vault document (0600)
//	audit.jsonl   append-only pipeline audit trail
//
// HomeDir is the boundary enforced by the policy engine.
//
// # User Configuration
//
// config.toml is optional. It supplies defaults for command flags and extends
// the built-in tables:
//
//	[downloads]
//	path = "~/Downloads"
//	[downloads.categories]
//	".svg" = "Images"
//
//	[projects]
//	location = "~/Projects"
//	type = "python_project"
//	[projects.layouts]
//	go_project = ["cmd", "internal", "docs"]
//
//	[passwords]
//	length = 20
//
//	[apps]
//	signal = "signal_account"
package configs
