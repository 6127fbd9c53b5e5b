package main

import (
	"fmt"
	"log"
	"time"

	"focusdock/internal/core/model"
	"focusdock/internal/core/timer"
	"focusdock/internal/platform"
	"focusdock/internal/router"
	"focusdock/internal/storage"
	"focusdock/internal/surface"
	"focusdock/internal/ui/mainwin"
	"focusdock/internal/ui/tray"
	"focusdock/internal/ui/widgetwin"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "FocusDock"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v", err)
	}

	snapshotStore, err := storage.NewSnapshotStore(appName)
	if err != nil {
		log.Printf("resolve state path: %v", err)
		snapshotStore = storage.NewSnapshotStoreAt("focusdock-state.json")
	}

	registry := surface.NewRegistry()
	hub := surface.NewHub(registry)
	engine := timer.New(snapshotStore, hub, timer.Config{
		TickInterval:   time.Second,
		SaveEveryTicks: settings.AutosaveSeconds,
	})

	sessionsPath, err := storage.DefaultSessionDBPath(appName)
	if err != nil {
		log.Printf("resolve sessions path: %v", err)
		sessionsPath = "focusdock-sessions.db"
	}
	sessions, err := storage.NewSessionStore(sessionsPath)
	if err != nil {
		log.Printf("open session store: %v", err)
		return
	}
	defer sessions.Close()

	fyneApp := app.NewWithID("io.focusdock.app")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		return
	}

	commands := router.New(engine, registry)

	var widgetWindow *widgetwin.Window
	mainWindow := mainwin.New(fyneApp, settings, sessions, commands.Dispatch, func(updated storage.Settings) {
		settings = updated
		if err := storage.SaveSettings(appName, updated); err != nil {
			log.Printf("save settings: %v", err)
		}
		if err := platform.SetLaunchAtLogin(appName, updated.LaunchAtLogin); err != nil {
			log.Printf("launch at login: %v", err)
		}
		widgetWindow.SetPresets(updated.FocusMinutes, updated.BreakMinutes)
	})
	widgetWindow = widgetwin.New(fyneApp, settings.FocusMinutes, settings.BreakMinutes, commands.DispatchWidget)

	registry.Attach(mainWindow)
	registry.Attach(widgetWindow)

	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnShowMain: func() {
			registry.Show(surface.KindMain)
		},
		OnShowWidget: func() {
			registry.Show(surface.KindWidget)
		},
		OnTogglePause: func() {
			if engine.Snapshot().Status == model.StatusPaused {
				commands.Dispatch(router.Command{Type: router.TypeResume})
			} else {
				commands.Dispatch(router.Command{Type: router.TypePause})
			}
		},
		OnStopTimer: func() {
			commands.Dispatch(router.Command{Type: router.TypeStop})
		},
		OnQuit: func() {
			engine.Shutdown()
			widgetWindow.Close()
			fyneApp.Quit()
		},
	})
	registry.Attach(&traySurface{manager: trayManager})

	// Windows exist; a session persisted as RUNNING picks its ticker
	// back up now.
	engine.Recover()

	// Until the backend pushes its category list, seed the cache so
	// the picker is usable offline.
	if len(engine.Snapshot().AvailableCategories) == 0 {
		commands.Dispatch(router.Command{
			Type: router.TypeSyncCategories,
			Categories: []model.Category{
				{ID: "cat_work", Name: "Work", Color: "#4a90d9"},
				{ID: "cat_study", Name: "Study", Color: "#50b868"},
				{ID: "cat_personal", Name: "Personal", Color: "#d9a04a"},
			},
		})
	}

	mainWindow.Show()
	if settings.ShowWidgetOnLaunch {
		registry.Show(surface.KindWidget)
	}

	fyneApp.Run()
	engine.Shutdown()
}

// traySurface adapts the tray manager into a render target so the
// status line follows broadcasts like any other surface.
type traySurface struct {
	manager *tray.Manager
}

func (adapter *traySurface) ID() string         { return "tray" }
func (adapter *traySurface) Kind() surface.Kind { return surface.KindTray }
func (adapter *traySurface) Alive() bool        { return true }

func (adapter *traySurface) Render(snapshot model.Snapshot) {
	fyne.Do(func() {
		adapter.manager.SetPaused(snapshot.Status == model.StatusPaused)
		switch snapshot.Status {
		case model.StatusRunning, model.StatusPaused:
			adapter.manager.SetStatus(formatClock(snapshot.SecondsRemaining))
		default:
			adapter.manager.SetStatus("idle")
		}
	})
}

func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := seconds / 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds%60)
}
