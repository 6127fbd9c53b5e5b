package widgetwin

import (
	"fmt"
	"image/color"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"focusdock/internal/core/model"
	"focusdock/internal/router"
	"focusdock/internal/surface"
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// Window is the compact always-on-top widget surface. It renders the
// remaining time and speaks only the restricted widget vocabulary;
// closing it hides it rather than destroying it.
type Window struct {
	window       fyne.Window
	dispatch     func(router.Command)
	timerLabel   *canvas.Text
	modeLabel    *canvas.Text
	focusMinutes int
	breakMinutes int
	closed       atomic.Bool
}

// New creates the widget window. Commands go through dispatch, which
// routes the restricted vocabulary.
func New(app fyne.App, focusMinutes, breakMinutes int, dispatch func(router.Command)) *Window {
	window := app.NewWindow("FocusDock")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 24, G: 24, B: 32, A: 235})

	timerLabel := canvas.NewText("25:00", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true}
	timerLabel.TextSize = 28

	modeLabel := canvas.NewText("idle", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	modeLabel.Alignment = fyne.TextAlignCenter
	modeLabel.TextSize = 12

	widgetWindow := &Window{
		window:       window,
		dispatch:     dispatch,
		timerLabel:   timerLabel,
		modeLabel:    modeLabel,
		focusMinutes: focusMinutes,
		breakMinutes: breakMinutes,
	}

	focusButton := widget.NewButton("Focus", func() {
		dispatch(router.Command{Type: router.TypeStartFocus, Minutes: widgetWindow.focusMinutes})
	})
	breakButton := widget.NewButton("Break", func() {
		dispatch(router.Command{Type: router.TypeStartBreak, Minutes: widgetWindow.breakMinutes})
	})
	stopButton := widget.NewButton("Stop", func() {
		dispatch(router.Command{Type: router.TypeStopTimer})
	})
	hideButton := widget.NewButton("Hide", func() {
		dispatch(router.Command{Type: router.TypeHideWidget})
	})

	buttons := container.NewGridWithColumns(4, focusButton, breakButton, stopButton, hideButton)
	content := container.NewVBox(timerLabel, modeLabel, buttons)
	window.SetContent(container.NewStack(background, content))
	window.Resize(fyne.NewSize(260, 110))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return widgetWindow
}

// SetPresets updates the minutes the Focus and Break buttons request.
func (widgetWindow *Window) SetPresets(focusMinutes, breakMinutes int) {
	if focusMinutes > 0 {
		widgetWindow.focusMinutes = focusMinutes
	}
	if breakMinutes > 0 {
		widgetWindow.breakMinutes = breakMinutes
	}
}

// ID implements surface.Surface.
func (widgetWindow *Window) ID() string { return "widget" }

// Kind implements surface.Surface.
func (widgetWindow *Window) Kind() surface.Kind { return surface.KindWidget }

// Alive implements surface.Surface.
func (widgetWindow *Window) Alive() bool { return !widgetWindow.closed.Load() }

// Render implements surface.Surface. The snapshot is complete, so the
// widget redraws from it alone.
func (widgetWindow *Window) Render(snapshot model.Snapshot) {
	fyne.Do(func() {
		widgetWindow.timerLabel.Text = formatClock(snapshot.SecondsRemaining)
		widgetWindow.timerLabel.Refresh()
		widgetWindow.modeLabel.Text = describeSession(snapshot)
		widgetWindow.modeLabel.Refresh()
	})
}

// Show makes the widget visible.
func (widgetWindow *Window) Show() {
	fyne.Do(func() {
		widgetWindow.window.Show()
	})
}

// Hide conceals the widget without destroying it.
func (widgetWindow *Window) Hide() {
	fyne.Do(func() {
		widgetWindow.window.Hide()
	})
}

// Close destroys the window for good, at process shutdown.
func (widgetWindow *Window) Close() {
	widgetWindow.closed.Store(true)
	widgetWindow.window.Close()
}

func describeSession(snapshot model.Snapshot) string {
	switch snapshot.Status {
	case model.StatusRunning:
		if snapshot.Mode.IsFocus() {
			if snapshot.ActiveCategory != nil {
				return "focus · " + snapshot.ActiveCategory.Name
			}
			return "focus"
		}
		return "break"
	case model.StatusPaused:
		return "paused"
	default:
		return "idle"
	}
}

func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
