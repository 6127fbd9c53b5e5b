package platform

import (
	"fmt"
	"os"
	"strings"
)

// SetLaunchAtLogin registers or removes the current executable as a
// login item for the current user.
func SetLaunchAtLogin(appName string, enabled bool) error {
	if appName == "" {
		return fmt.Errorf("launch at login: app name is empty")
	}
	if !enabled {
		return disableAutostart(appName)
	}

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("launch at login: resolve executable: %w", err)
	}
	return enableAutostart(appName, execPath)
}

func slugify(appName string) string {
	name := strings.ToLower(strings.TrimSpace(appName))
	return strings.ReplaceAll(name, " ", "-")
}
