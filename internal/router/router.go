package router

import (
	"log"

	"focusdock/internal/core/model"
	"focusdock/internal/surface"
)

// Type tags an inbound command.
type Type string

// Full vocabulary, accepted from any surface.
const (
	TypeStart          Type = "START"
	TypeStop           Type = "STOP"
	TypePause          Type = "PAUSE"
	TypeResume         Type = "RESUME"
	TypeSetCategory    Type = "SET_CATEGORY"
	TypeSyncCategories Type = "SYNC_CATEGORIES"
)

// Restricted widget vocabulary. The widget never mutates raw state; it
// speaks in terms of what it shows.
const (
	TypeStartFocus Type = "START_FOCUS"
	TypeStartBreak Type = "START_BREAK"
	TypeStopTimer  Type = "STOP_TIMER"
	TypeHideWidget Type = "HIDE_WIDGET"
)

// Command is the tagged union carried from a surface to the router.
// Fields beyond Type are meaningful only for the types that name them.
type Command struct {
	Type           Type
	Minutes        int
	Mode           model.Mode
	CategoryID     string
	Categories     []model.Category
	ActiveCategory *model.Category
}

// Machine is the subset of the timer engine the router drives.
type Machine interface {
	Start(minutes int, mode model.Mode)
	Pause()
	Resume()
	Stop()
	SetActiveCategory(categoryID string)
	SyncCategories(categories []model.Category, active *model.Category)
}

// Router validates inbound commands and forwards them to the timer
// state machine. Unrecognized or malformed commands are dropped
// without touching the machine.
type Router struct {
	machine  Machine
	registry *surface.Registry
}

// New creates a router over the given machine and surface registry.
func New(machine Machine, registry *surface.Registry) *Router {
	return &Router{machine: machine, registry: registry}
}

// Dispatch handles a command from the full vocabulary.
func (router *Router) Dispatch(command Command) {
	switch command.Type {
	case TypeStart:
		if command.Minutes < 0 {
			return
		}
		router.machine.Start(command.Minutes, command.Mode)
	case TypeStop:
		router.machine.Stop()
	case TypePause:
		router.machine.Pause()
	case TypeResume:
		router.machine.Resume()
	case TypeSetCategory:
		if command.CategoryID == "" {
			return
		}
		router.machine.SetActiveCategory(command.CategoryID)
	case TypeSyncCategories:
		router.machine.SyncCategories(command.Categories, command.ActiveCategory)
	default:
		log.Printf("router: dropping unknown command %q", command.Type)
	}
}

// DispatchWidget handles the widget's restricted vocabulary,
// normalizing it into the same machine calls the full vocabulary
// uses. HIDE_WIDGET never reaches the machine: it only toggles
// visibility in the registry.
func (router *Router) DispatchWidget(command Command) {
	switch command.Type {
	case TypeStartFocus:
		if command.Minutes <= 0 {
			return
		}
		router.machine.Start(command.Minutes, model.FocusMode(command.Minutes))
	case TypeStartBreak:
		if command.Minutes <= 0 {
			return
		}
		router.machine.Start(command.Minutes, model.BreakMode(command.Minutes))
	case TypeStopTimer:
		router.machine.Stop()
	case TypeSetCategory:
		if command.CategoryID == "" {
			return
		}
		router.machine.SetActiveCategory(command.CategoryID)
	case TypeHideWidget:
		router.registry.Hide(surface.KindWidget)
	default:
		log.Printf("router: dropping unknown widget command %q", command.Type)
	}
}
