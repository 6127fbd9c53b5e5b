package surface

import (
	"sync"

	"focusdock/internal/core/model"
)

// Kind distinguishes the UI surfaces the timer authority knows about.
type Kind string

const (
	KindMain   Kind = "main"
	KindWidget Kind = "widget"
	KindTray   Kind = "tray"
)

// Surface is a live UI target. Render must not block: window-backed
// implementations hand the snapshot to their UI thread and return.
type Surface interface {
	ID() string
	Kind() Kind
	Alive() bool
	Render(snapshot model.Snapshot)
}

// CompletionReceiver is implemented by surfaces that handle the
// one-shot session-complete notification. Only main-kind surfaces
// receive it.
type CompletionReceiver interface {
	TimerCompleted(completion model.Completion)
}

// Hideable is implemented by surfaces whose visibility can be toggled
// without destroying them.
type Hideable interface {
	Show()
	Hide()
}

// Registry tracks which surfaces exist. Surfaces attach and detach at
// any time; the timer state machine is indifferent to either.
type Registry struct {
	mu       sync.Mutex
	surfaces []Surface
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Attach registers a surface. Re-attaching an id replaces the old
// entry.
func (registry *Registry) Attach(target Surface) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for index, existing := range registry.surfaces {
		if existing.ID() == target.ID() {
			registry.surfaces[index] = target
			return
		}
	}
	registry.surfaces = append(registry.surfaces, target)
}

// Detach removes a surface. Unknown ids are ignored.
func (registry *Registry) Detach(id string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for index, existing := range registry.surfaces {
		if existing.ID() == id {
			registry.surfaces = append(registry.surfaces[:index], registry.surfaces[index+1:]...)
			return
		}
	}
}

// Show makes every live surface of the given kind visible, where the
// surface supports visibility at all.
func (registry *Registry) Show(kind Kind) {
	for _, target := range registry.ofKind(kind) {
		if hideable, ok := target.(Hideable); ok && target.Alive() {
			hideable.Show()
		}
	}
}

// Hide hides every live surface of the given kind.
func (registry *Registry) Hide(kind Kind) {
	for _, target := range registry.ofKind(kind) {
		if hideable, ok := target.(Hideable); ok && target.Alive() {
			hideable.Hide()
		}
	}
}

func (registry *Registry) ofKind(kind Kind) []Surface {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	var matched []Surface
	for _, target := range registry.surfaces {
		if target.Kind() == kind {
			matched = append(matched, target)
		}
	}
	return matched
}

func (registry *Registry) all() []Surface {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return append([]Surface(nil), registry.surfaces...)
}
