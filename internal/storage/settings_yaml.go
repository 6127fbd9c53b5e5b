package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// Settings defines editable user preferences.
type Settings struct {
	FocusMinutes       int
	BreakMinutes       int
	AutosaveSeconds    int
	ShowWidgetOnLaunch bool
	LaunchAtLogin      bool
}

// DefaultSettings returns default settings for FocusDock.
func DefaultSettings() Settings {
	return Settings{
		FocusMinutes:       25,
		BreakMinutes:       5,
		AutosaveSeconds:    30,
		ShowWidgetOnLaunch: true,
		LaunchAtLogin:      false,
	}
}

type yamlSettings struct {
	FocusMinutes       int  `yaml:"focus_minutes"`
	BreakMinutes       int  `yaml:"break_minutes"`
	AutosaveSeconds    int  `yaml:"autosave_seconds"`
	ShowWidgetOnLaunch bool `yaml:"show_widget_on_launch"`
	LaunchAtLogin      bool `yaml:"launch_at_login"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (Settings, error) {
	settings := DefaultSettings()
	configPath, err := resolveSettingsPath(appName)
	if err != nil {
		return settings, err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings Settings) error {
	configPath, err := resolveSettingsPath(appName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		FocusMinutes:       settings.FocusMinutes,
		BreakMinutes:       settings.BreakMinutes,
		AutosaveSeconds:    settings.AutosaveSeconds,
		ShowWidgetOnLaunch: settings.ShowWidgetOnLaunch,
		LaunchAtLogin:      settings.LaunchAtLogin,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveSettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *Settings, fileData yamlSettings) {
	if fileData.FocusMinutes > 0 && fileData.FocusMinutes <= 180 {
		settings.FocusMinutes = fileData.FocusMinutes
	}
	if fileData.BreakMinutes > 0 && fileData.BreakMinutes <= 60 {
		settings.BreakMinutes = fileData.BreakMinutes
	}
	if fileData.AutosaveSeconds >= 5 && fileData.AutosaveSeconds <= 600 {
		settings.AutosaveSeconds = fileData.AutosaveSeconds
	}
	settings.ShowWidgetOnLaunch = fileData.ShowWidgetOnLaunch
	settings.LaunchAtLogin = fileData.LaunchAtLogin
}
