package storage

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestApplyYamlSettingsClampsInvalidValues(t *testing.T) {
	settings := DefaultSettings()
	applyYamlSettings(&settings, yamlSettings{
		FocusMinutes:    -10,
		BreakMinutes:    900,
		AutosaveSeconds: 1,
	})

	defaults := DefaultSettings()
	if settings.FocusMinutes != defaults.FocusMinutes {
		t.Fatalf("negative focus minutes accepted: %d", settings.FocusMinutes)
	}
	if settings.BreakMinutes != defaults.BreakMinutes {
		t.Fatalf("oversized break minutes accepted: %d", settings.BreakMinutes)
	}
	if settings.AutosaveSeconds != defaults.AutosaveSeconds {
		t.Fatalf("too-frequent autosave accepted: %d", settings.AutosaveSeconds)
	}
}

func TestApplyYamlSettingsAcceptsValidValues(t *testing.T) {
	settings := DefaultSettings()
	applyYamlSettings(&settings, yamlSettings{
		FocusMinutes:       50,
		BreakMinutes:       10,
		AutosaveSeconds:    60,
		ShowWidgetOnLaunch: false,
		LaunchAtLogin:      true,
	})

	if settings.FocusMinutes != 50 || settings.BreakMinutes != 10 || settings.AutosaveSeconds != 60 {
		t.Fatalf("valid values rejected: %+v", settings)
	}
	if settings.ShowWidgetOnLaunch || !settings.LaunchAtLogin {
		t.Fatalf("booleans not applied: %+v", settings)
	}
}

func TestSettingsYamlFieldNames(t *testing.T) {
	serialized, err := yaml.Marshal(yamlSettings{FocusMinutes: 25})
	if err != nil {
		t.Fatal(err)
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(serialized, &parsed); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"focus_minutes", "break_minutes", "autosave_seconds", "show_widget_on_launch", "launch_at_login"} {
		if _, ok := parsed[key]; !ok {
			t.Fatalf("missing yaml key %q in %s", key, serialized)
		}
	}
}
