package mainwin

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"focusdock/internal/core/model"
	"focusdock/internal/router"
	"focusdock/internal/storage"
	"focusdock/internal/surface"
)

// Window is the main surface: full timer controls, category picker,
// daily stats and session history. It is a renderer of broadcast
// snapshots and a source of commands, nothing more; the timer engine
// never hands it a mutable reference.
type Window struct {
	window         fyne.Window
	dispatch       func(router.Command)
	sessions       *storage.SessionStore
	settings       storage.Settings
	onSaveSettings func(storage.Settings)

	timerLabel   *widget.Label
	statusLabel  *widget.Label
	todayLabel   *widget.Label
	historyLabel *widget.Label
	categoryPick *widget.Select

	categoryIDs    map[string]string
	activeCategory atomic.Pointer[model.Category]
	rendering      bool
	closed         atomic.Bool
}

// New creates the main window.
func New(app fyne.App, settings storage.Settings, sessions *storage.SessionStore,
	dispatch func(router.Command), onSaveSettings func(storage.Settings)) *Window {

	window := app.NewWindow("FocusDock")

	mainWindow := &Window{
		window:         window,
		dispatch:       dispatch,
		sessions:       sessions,
		settings:       settings,
		onSaveSettings: onSaveSettings,
		categoryIDs:    map[string]string{},
	}

	mainWindow.timerLabel = widget.NewLabelWithStyle("25:00", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	mainWindow.statusLabel = widget.NewLabelWithStyle("idle", fyne.TextAlignCenter, fyne.TextStyle{})
	mainWindow.todayLabel = widget.NewLabel("Today: 0m focus")
	mainWindow.historyLabel = widget.NewLabel("No sessions yet.")
	mainWindow.historyLabel.Wrapping = fyne.TextWrapWord

	mainWindow.categoryPick = widget.NewSelect(nil, func(selected string) {
		if mainWindow.rendering {
			return
		}
		if id, ok := mainWindow.categoryIDs[selected]; ok {
			dispatch(router.Command{Type: router.TypeSetCategory, CategoryID: id})
		}
	})
	mainWindow.categoryPick.PlaceHolder = "Category"

	startFocus := widget.NewButton("Start focus", func() {
		minutes := mainWindow.settings.FocusMinutes
		dispatch(router.Command{Type: router.TypeStart, Minutes: minutes, Mode: model.FocusMode(minutes)})
	})
	startBreak := widget.NewButton("Start break", func() {
		minutes := mainWindow.settings.BreakMinutes
		dispatch(router.Command{Type: router.TypeStart, Minutes: minutes, Mode: model.BreakMode(minutes)})
	})
	pauseButton := widget.NewButton("Pause", func() {
		dispatch(router.Command{Type: router.TypePause})
	})
	resumeButton := widget.NewButton("Resume", func() {
		dispatch(router.Command{Type: router.TypeResume})
	})
	stopButton := widget.NewButton("Stop", func() {
		dispatch(router.Command{Type: router.TypeStop})
	})
	settingsButton := widget.NewButton("Settings", mainWindow.showSettingsDialog)

	controls := container.NewGridWithColumns(5, startFocus, startBreak, pauseButton, resumeButton, stopButton)
	content := container.NewVBox(
		mainWindow.timerLabel,
		mainWindow.statusLabel,
		mainWindow.categoryPick,
		controls,
		widget.NewSeparator(),
		mainWindow.todayLabel,
		widget.NewLabelWithStyle("Recent sessions", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mainWindow.historyLabel,
		settingsButton,
	)

	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 480))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	mainWindow.refreshHistory()
	return mainWindow
}

// ID implements surface.Surface.
func (mainWindow *Window) ID() string { return "main" }

// Kind implements surface.Surface.
func (mainWindow *Window) Kind() surface.Kind { return surface.KindMain }

// Alive implements surface.Surface.
func (mainWindow *Window) Alive() bool { return !mainWindow.closed.Load() }

// Render implements surface.Surface.
func (mainWindow *Window) Render(snapshot model.Snapshot) {
	if snapshot.ActiveCategory != nil {
		selected := *snapshot.ActiveCategory
		mainWindow.activeCategory.Store(&selected)
	} else {
		mainWindow.activeCategory.Store(nil)
	}
	fyne.Do(func() {
		mainWindow.rendering = true
		defer func() { mainWindow.rendering = false }()

		mainWindow.timerLabel.SetText(formatClock(snapshot.SecondsRemaining))
		mainWindow.statusLabel.SetText(describeStatus(snapshot))
		mainWindow.todayLabel.SetText(describeToday(snapshot))

		options := make([]string, 0, len(snapshot.AvailableCategories))
		mainWindow.categoryIDs = make(map[string]string, len(snapshot.AvailableCategories))
		for _, category := range snapshot.AvailableCategories {
			options = append(options, category.Name)
			mainWindow.categoryIDs[category.Name] = category.ID
		}
		mainWindow.categoryPick.Options = options
		if snapshot.ActiveCategory != nil {
			mainWindow.categoryPick.Selected = snapshot.ActiveCategory.Name
		}
		mainWindow.categoryPick.Refresh()
	})
}

// TimerCompleted implements surface.CompletionReceiver: the finished
// session goes into local history, standing in for the backend's
// save-session call.
func (mainWindow *Window) TimerCompleted(completion model.Completion) {
	category := mainWindow.activeCategory.Load()
	// Off the broadcast path: the engine must never wait on disk.
	go func() {
		if err := mainWindow.sessions.Record(completion, category); err != nil {
			log.Printf("record session: %v", err)
		}
		mainWindow.refreshHistory()
	}()
}

// Show brings the main window to the front.
func (mainWindow *Window) Show() {
	fyne.Do(func() {
		mainWindow.window.Show()
		mainWindow.window.RequestFocus()
	})
}

// Hide conceals the main window.
func (mainWindow *Window) Hide() {
	fyne.Do(func() {
		mainWindow.window.Hide()
	})
}

func (mainWindow *Window) refreshHistory() {
	records, err := mainWindow.sessions.Recent(5)
	if err != nil {
		log.Printf("load session history: %v", err)
		return
	}

	text := "No sessions yet."
	if len(records) > 0 {
		var lines []string
		for _, record := range records {
			line := fmt.Sprintf("%s · %dm", record.CompletedAt.Local().Format("Jan 2 15:04"), record.DurationMinutes)
			if record.CategoryName != "" {
				line += " · " + record.CategoryName
			}
			if !record.Mode.IsFocus() {
				line += " (break)"
			}
			lines = append(lines, line)
		}
		text = strings.Join(lines, "\n")
	}

	fyne.Do(func() {
		mainWindow.historyLabel.SetText(text)
	})
}

func (mainWindow *Window) showSettingsDialog() {
	focusEntry := widget.NewEntry()
	focusEntry.SetText(strconv.Itoa(mainWindow.settings.FocusMinutes))
	breakEntry := widget.NewEntry()
	breakEntry.SetText(strconv.Itoa(mainWindow.settings.BreakMinutes))
	autosaveEntry := widget.NewEntry()
	autosaveEntry.SetText(strconv.Itoa(mainWindow.settings.AutosaveSeconds))
	widgetCheck := widget.NewCheck("Show widget on launch", nil)
	widgetCheck.SetChecked(mainWindow.settings.ShowWidgetOnLaunch)
	loginCheck := widget.NewCheck("Launch at login", nil)
	loginCheck.SetChecked(mainWindow.settings.LaunchAtLogin)

	items := []*widget.FormItem{
		widget.NewFormItem("Focus minutes", focusEntry),
		widget.NewFormItem("Break minutes", breakEntry),
		widget.NewFormItem("Autosave seconds", autosaveEntry),
		widget.NewFormItem("", widgetCheck),
		widget.NewFormItem("", loginCheck),
	}

	dialog.ShowForm("Settings", "Save", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		settings := mainWindow.settings
		if minutes, ok := parsePositiveInt(focusEntry.Text); ok {
			settings.FocusMinutes = minutes
		}
		if minutes, ok := parsePositiveInt(breakEntry.Text); ok {
			settings.BreakMinutes = minutes
		}
		if seconds, ok := parsePositiveInt(autosaveEntry.Text); ok {
			settings.AutosaveSeconds = seconds
		}
		settings.ShowWidgetOnLaunch = widgetCheck.Checked
		settings.LaunchAtLogin = loginCheck.Checked

		mainWindow.settings = settings
		if mainWindow.onSaveSettings != nil {
			mainWindow.onSaveSettings(settings)
		}
	}, mainWindow.window)
}

func describeStatus(snapshot model.Snapshot) string {
	switch snapshot.Status {
	case model.StatusRunning:
		if snapshot.Mode.IsFocus() {
			return "focusing"
		}
		return "on a break"
	case model.StatusPaused:
		return "paused"
	default:
		return "idle"
	}
}

func describeToday(snapshot model.Snapshot) string {
	today := 0
	if len(snapshot.DailyStats) > 0 {
		// The engine keys stats by local date.
		for day, seconds := range snapshot.DailyStats {
			if day == localToday() {
				today = seconds
			}
		}
	}
	return fmt.Sprintf("Today: %s focus · %s all time", formatSpan(today), formatSpan(snapshot.TotalFocusTime))
}

func localToday() string {
	return time.Now().Format("2006-01-02")
}

func formatSpan(seconds int) string {
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
