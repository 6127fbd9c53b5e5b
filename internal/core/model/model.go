package model

import "strings"

// Status is the lifecycle state of the timer authority.
type Status string

const (
	StatusIdle    Status = "IDLE"
	StatusRunning Status = "RUNNING"
	StatusPaused  Status = "PAUSED"
)

// Mode identifies the active session preset. Focus variants accrue
// focus time; break variants do not.
type Mode string

const (
	ModeFocus25 Mode = "FOCUS_25"
	ModeFocus50 Mode = "FOCUS_50"
	ModeBreak5  Mode = "BREAK_5"
	ModeBreak10 Mode = "BREAK_10"
)

// IsFocus reports whether the mode denotes a focus variant.
func (mode Mode) IsFocus() bool {
	return strings.HasPrefix(string(mode), "FOCUS")
}

// FocusMode returns the focus preset closest to the given length.
func FocusMode(minutes int) Mode {
	if minutes >= 40 {
		return ModeFocus50
	}
	return ModeFocus25
}

// BreakMode returns the break preset closest to the given length.
func BreakMode(minutes int) Mode {
	if minutes >= 8 {
		return ModeBreak10
	}
	return ModeBreak5
}

// Category is a cached summary of a category owned by the backend.
// The timer authority never writes categories back; it only mirrors
// the list pushed in through a sync command.
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Snapshot is the complete serializable subset of the timer state.
// It is both the broadcast payload and the persisted document; the
// live ticker handle is deliberately absent.
type Snapshot struct {
	Status              Status         `json:"status"`
	Mode                Mode           `json:"mode"`
	SecondsRemaining    int            `json:"secondsRemaining"`
	TotalDuration       int            `json:"totalDuration"`
	ActiveCategory      *Category      `json:"activeCategory"`
	AvailableCategories []Category     `json:"availableCategories"`
	TotalFocusTime      int            `json:"totalFocusTime"`
	DailyStats          map[string]int `json:"dailyStats"`
}

// DefaultSnapshot returns the cold-start state used when no persisted
// snapshot is found.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Status:           StatusIdle,
		Mode:             ModeFocus25,
		SecondsRemaining: 25 * 60,
		TotalDuration:    25 * 60,
		DailyStats:       map[string]int{},
	}
}

// Clone returns a deep copy safe to hand to other goroutines.
func (snapshot Snapshot) Clone() Snapshot {
	clone := snapshot
	if snapshot.ActiveCategory != nil {
		category := *snapshot.ActiveCategory
		clone.ActiveCategory = &category
	}
	clone.AvailableCategories = append([]Category(nil), snapshot.AvailableCategories...)
	clone.DailyStats = make(map[string]int, len(snapshot.DailyStats))
	for day, seconds := range snapshot.DailyStats {
		clone.DailyStats[day] = seconds
	}
	return clone
}

// Completion is the one-shot notification emitted when a session
// reaches zero, addressed to the main surface only.
type Completion struct {
	Mode            Mode `json:"mode"`
	DurationMinutes int  `json:"durationMinutes"`
}
