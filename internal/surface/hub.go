package surface

import "focusdock/internal/core/model"

// Hub fans timer state out to every live surface. Delivery is
// fire-and-forget: a surface that died between attach and send is
// skipped, never an error. Each message carries the full snapshot, so
// renderers stay correct even when intermediate messages are dropped.
type Hub struct {
	registry *Registry
}

// NewHub creates a hub over the given registry.
func NewHub(registry *Registry) *Hub {
	return &Hub{registry: registry}
}

// Broadcast sends the snapshot to every live surface.
func (hub *Hub) Broadcast(snapshot model.Snapshot) {
	for _, target := range hub.registry.all() {
		if !target.Alive() {
			continue
		}
		target.Render(snapshot)
	}
}

// TimerComplete delivers the one-shot completion notification to live
// main surfaces only. The widget never records sessions.
func (hub *Hub) TimerComplete(completion model.Completion) {
	for _, target := range hub.registry.all() {
		if target.Kind() != KindMain || !target.Alive() {
			continue
		}
		if receiver, ok := target.(CompletionReceiver); ok {
			receiver.TimerCompleted(completion)
		}
	}
}
