package vault

import "strings"

func defaultApps() map[string]string {
	return map[string]string{
		"spotify": "spotify_account",
		"discord": "discord_user",
		"steam":   "steam_account",
		"slack":   "slack_workspace",
		"zoom":    "zoom_personal",
		"teams":   "teams_work",
	}
}

// RegisterApps adds app-to-label mappings on top of the built-in ones. App
// names are matched case-insensitively.
func (v *Vault) RegisterApps(apps map[string]string) {
	for app, label := range apps {
		app = strings.ToLower(strings.TrimSpace(app))
		if app == "" || label == "" {
			continue
		}
		v.apps[app] = label
	}
}

// DetectAppLogin returns the vault label used for app. Unknown apps report
// ok false.
func (v *Vault) DetectAppLogin(app string) (label string, ok bool) {
	label, ok = v.apps[strings.ToLower(strings.TrimSpace(app))]
	return label, ok
}
