package timer

import (
	"sync"
	"time"

	"focusdock/internal/core/model"
)

// Store persists timer snapshots. Implementations absorb I/O failures
// themselves; the engine never blocks a transition on disk.
type Store interface {
	Load() (model.Snapshot, bool)
	Save(snapshot model.Snapshot)
}

// Broadcaster fans state out to the UI surfaces.
type Broadcaster interface {
	Broadcast(snapshot model.Snapshot)
	TimerComplete(completion model.Completion)
}

// Config contains runtime options for the Engine.
type Config struct {
	TickInterval   time.Duration
	SaveEveryTicks int
}

// Engine is the single timer authority. It owns the canonical state
// record and the one live ticker; every other component sees only
// snapshots pushed through the Broadcaster.
type Engine struct {
	mu             sync.Mutex
	options        Config
	store          Store
	hub            Broadcaster
	state          model.Snapshot
	tickerStop     chan struct{}
	ticksSinceSave int
}

// New creates an Engine, restoring persisted state when a snapshot
// exists. Call Recover afterwards to re-arm a session that was
// persisted as RUNNING.
func New(store Store, hub Broadcaster, options Config) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.SaveEveryTicks <= 0 {
		options.SaveEveryTicks = 30
	}

	engine := &Engine{
		options: options,
		store:   store,
		hub:     hub,
		state:   model.DefaultSnapshot(),
	}
	if snapshot, ok := store.Load(); ok {
		engine.state = normalizeRestored(snapshot)
	}
	return engine
}

func normalizeRestored(snapshot model.Snapshot) model.Snapshot {
	if snapshot.DailyStats == nil {
		snapshot.DailyStats = map[string]int{}
	}
	if snapshot.TotalDuration <= 0 {
		return model.DefaultSnapshot()
	}
	if snapshot.SecondsRemaining < 0 {
		snapshot.SecondsRemaining = 0
	}
	if snapshot.SecondsRemaining > snapshot.TotalDuration {
		snapshot.SecondsRemaining = snapshot.TotalDuration
	}
	switch snapshot.Status {
	case model.StatusIdle, model.StatusRunning, model.StatusPaused:
	default:
		snapshot.Status = model.StatusIdle
	}
	return snapshot
}

// Recover re-arms a restored RUNNING session with a live ticker. A
// snapshot persisted mid-session carries status RUNNING but no ticker
// can survive a process restart, so recovery goes through Resume,
// which accepts the RUNNING state for exactly this reason.
func (engine *Engine) Recover() {
	engine.mu.Lock()
	running := engine.state.Status == model.StatusRunning
	engine.mu.Unlock()
	if running {
		engine.Resume()
	}
}

// Start begins a session. A positive minutes value sets a fresh
// duration; a non-empty mode selects the preset. Starting while a
// session is live replaces its ticker, never stacks a second one.
func (engine *Engine) Start(minutes int, mode model.Mode) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if minutes > 0 {
		engine.state.TotalDuration = minutes * 60
		engine.state.SecondsRemaining = minutes * 60
	}
	if mode != "" {
		engine.state.Mode = mode
	}
	engine.state.Status = model.StatusRunning
	engine.persistLocked()
	engine.broadcastLocked()
	engine.startTickingLocked()
}

// Pause freezes the countdown in place. Without a live ticker this is
// a no-op, which covers surfaces issuing a stale pause from IDLE.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.tickerStop == nil {
		return
	}
	engine.stopTickingLocked()
	engine.state.Status = model.StatusPaused
	engine.persistLocked()
	engine.broadcastLocked()
}

// Resume continues the countdown from wherever it stopped. Valid from
// PAUSED and from RUNNING: the latter is the restart-recovery entry
// point, where persisted status says RUNNING but no ticker exists.
func (engine *Engine) Resume() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.state.Status != model.StatusPaused && engine.state.Status != model.StatusRunning {
		return
	}
	engine.state.Status = model.StatusRunning
	engine.persistLocked()
	engine.broadcastLocked()
	engine.startTickingLocked()
}

// Stop hard-resets the session: the countdown returns to the full
// duration and the machine goes IDLE. Capturing the elapsed portion is
// the caller's job, from the snapshot broadcast before the stop.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.stopTickingLocked()
	engine.state.SecondsRemaining = engine.state.TotalDuration
	engine.state.Status = model.StatusIdle
	engine.persistLocked()
	engine.broadcastLocked()
}

// SetActiveCategory selects a category from the cached list. An
// unknown id leaves the selection untouched; the current snapshot is
// broadcast either way so surfaces stay settled.
func (engine *Engine) SetActiveCategory(categoryID string) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	for _, category := range engine.state.AvailableCategories {
		if category.ID == categoryID {
			selected := category
			engine.state.ActiveCategory = &selected
			engine.persistLocked()
			break
		}
	}
	engine.broadcastLocked()
}

// SyncCategories replaces the cached category list wholesale. The
// backend owns categories; this cache only exists so the widget
// surface can render without reaching the backend itself.
func (engine *Engine) SyncCategories(categories []model.Category, active *model.Category) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.state.AvailableCategories = append([]model.Category(nil), categories...)
	if active != nil {
		selected := *active
		engine.state.ActiveCategory = &selected
	}
	engine.persistLocked()
	engine.broadcastLocked()
}

// Snapshot returns a copy of the current state.
func (engine *Engine) Snapshot() model.Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.state.Clone()
}

// Shutdown cancels the ticker and flushes state to disk. Called once
// at process exit.
func (engine *Engine) Shutdown() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.stopTickingLocked()
	engine.persistLocked()
}

// startTickingLocked is the only way a ticker comes to life. It always
// clears the previous ticker first, so at most one is live at any
// instant regardless of how start/resume/recover calls interleave.
func (engine *Engine) startTickingLocked() {
	engine.stopTickingLocked()
	stop := make(chan struct{})
	engine.tickerStop = stop
	engine.ticksSinceSave = 0
	go engine.runTicker(stop)
}

func (engine *Engine) stopTickingLocked() {
	if engine.tickerStop != nil {
		close(engine.tickerStop)
		engine.tickerStop = nil
	}
}

func (engine *Engine) runTicker(stop chan struct{}) {
	ticker := time.NewTicker(engine.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case tickTime := <-ticker.C:
			engine.tick(stop, tickTime)
		}
	}
}

func (engine *Engine) tick(stop chan struct{}, tickTime time.Time) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	// A cancelled ticker may deliver one final tick while its
	// goroutine winds down; only the current ticker may advance state.
	if stop == nil || engine.tickerStop != stop || engine.state.Status != model.StatusRunning {
		return
	}

	if engine.state.SecondsRemaining > 0 {
		engine.state.SecondsRemaining--
	}
	if engine.state.Mode.IsFocus() {
		engine.state.TotalFocusTime++
		day := tickTime.Format("2006-01-02")
		engine.state.DailyStats[day]++
	}

	if engine.state.SecondsRemaining == 0 {
		engine.completeLocked()
		return
	}

	engine.ticksSinceSave++
	if engine.ticksSinceSave >= engine.options.SaveEveryTicks {
		engine.ticksSinceSave = 0
		engine.persistLocked()
	}
	engine.broadcastLocked()
}

func (engine *Engine) completeLocked() {
	engine.stopTickingLocked()
	engine.state.Status = model.StatusIdle
	engine.persistLocked()
	engine.broadcastLocked()
	engine.hub.TimerComplete(model.Completion{
		Mode:            engine.state.Mode,
		DurationMinutes: engine.state.TotalDuration / 60,
	})
}

func (engine *Engine) persistLocked() {
	engine.store.Save(engine.state.Clone())
}

func (engine *Engine) broadcastLocked() {
	engine.hub.Broadcast(engine.state.Clone())
}
