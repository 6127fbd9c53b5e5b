package router

import (
	"testing"

	"focusdock/internal/core/model"
	"focusdock/internal/surface"
)

type call struct {
	name       string
	minutes    int
	mode       model.Mode
	categoryID string
}

type fakeMachine struct {
	calls []call
}

func (machine *fakeMachine) Start(minutes int, mode model.Mode) {
	machine.calls = append(machine.calls, call{name: "start", minutes: minutes, mode: mode})
}

func (machine *fakeMachine) Pause() {
	machine.calls = append(machine.calls, call{name: "pause"})
}

func (machine *fakeMachine) Resume() {
	machine.calls = append(machine.calls, call{name: "resume"})
}

func (machine *fakeMachine) Stop() {
	machine.calls = append(machine.calls, call{name: "stop"})
}

func (machine *fakeMachine) SetActiveCategory(categoryID string) {
	machine.calls = append(machine.calls, call{name: "setCategory", categoryID: categoryID})
}

func (machine *fakeMachine) SyncCategories(categories []model.Category, active *model.Category) {
	machine.calls = append(machine.calls, call{name: "syncCategories", minutes: len(categories)})
}

type hideableWidget struct {
	hidden int
}

func (widget *hideableWidget) ID() string              { return "widget" }
func (widget *hideableWidget) Kind() surface.Kind      { return surface.KindWidget }
func (widget *hideableWidget) Alive() bool             { return true }
func (widget *hideableWidget) Render(_ model.Snapshot) {}
func (widget *hideableWidget) Show()                   {}
func (widget *hideableWidget) Hide()                   { widget.hidden++ }

func newTestRouter() (*Router, *fakeMachine, *hideableWidget) {
	machine := &fakeMachine{}
	registry := surface.NewRegistry()
	widget := &hideableWidget{}
	registry.Attach(widget)
	return New(machine, registry), machine, widget
}

func TestDispatchFullVocabulary(t *testing.T) {
	cases := []struct {
		command Command
		want    call
	}{
		{Command{Type: TypeStart, Minutes: 25, Mode: model.ModeFocus25}, call{name: "start", minutes: 25, mode: model.ModeFocus25}},
		{Command{Type: TypeStop}, call{name: "stop"}},
		{Command{Type: TypePause}, call{name: "pause"}},
		{Command{Type: TypeResume}, call{name: "resume"}},
		{Command{Type: TypeSetCategory, CategoryID: "cat_1"}, call{name: "setCategory", categoryID: "cat_1"}},
	}

	for _, testCase := range cases {
		routerInstance, machine, _ := newTestRouter()
		routerInstance.Dispatch(testCase.command)
		if len(machine.calls) != 1 || machine.calls[0] != testCase.want {
			t.Fatalf("command %s: got calls %+v, want %+v", testCase.command.Type, machine.calls, testCase.want)
		}
	}
}

func TestDispatchSyncCategories(t *testing.T) {
	routerInstance, machine, _ := newTestRouter()
	routerInstance.Dispatch(Command{
		Type:       TypeSyncCategories,
		Categories: []model.Category{{ID: "cat_1"}, {ID: "cat_2"}},
	})
	if len(machine.calls) != 1 || machine.calls[0].name != "syncCategories" || machine.calls[0].minutes != 2 {
		t.Fatalf("unexpected calls: %+v", machine.calls)
	}
}

func TestUnknownCommandDropped(t *testing.T) {
	routerInstance, machine, _ := newTestRouter()
	routerInstance.Dispatch(Command{Type: "FORMAT_DISK"})
	routerInstance.DispatchWidget(Command{Type: "FORMAT_DISK"})
	if len(machine.calls) != 0 {
		t.Fatalf("unknown command reached the machine: %+v", machine.calls)
	}
}

func TestMalformedPayloadsDropped(t *testing.T) {
	routerInstance, machine, _ := newTestRouter()

	routerInstance.Dispatch(Command{Type: TypeStart, Minutes: -5})
	routerInstance.Dispatch(Command{Type: TypeSetCategory})
	routerInstance.DispatchWidget(Command{Type: TypeStartFocus, Minutes: 0})
	routerInstance.DispatchWidget(Command{Type: TypeStartBreak, Minutes: -1})
	routerInstance.DispatchWidget(Command{Type: TypeSetCategory})

	if len(machine.calls) != 0 {
		t.Fatalf("malformed command reached the machine: %+v", machine.calls)
	}
}

func TestWidgetVocabularyNormalized(t *testing.T) {
	routerInstance, machine, _ := newTestRouter()

	routerInstance.DispatchWidget(Command{Type: TypeStartFocus, Minutes: 25})
	routerInstance.DispatchWidget(Command{Type: TypeStartBreak, Minutes: 5})
	routerInstance.DispatchWidget(Command{Type: TypeStopTimer})
	routerInstance.DispatchWidget(Command{Type: TypeSetCategory, CategoryID: "cat_2"})

	want := []call{
		{name: "start", minutes: 25, mode: model.ModeFocus25},
		{name: "start", minutes: 5, mode: model.ModeBreak5},
		{name: "stop"},
		{name: "setCategory", categoryID: "cat_2"},
	}
	if len(machine.calls) != len(want) {
		t.Fatalf("got %d calls, want %d", len(machine.calls), len(want))
	}
	for index, expected := range want {
		if machine.calls[index] != expected {
			t.Fatalf("call %d: got %+v, want %+v", index, machine.calls[index], expected)
		}
	}
}

func TestHideWidgetBypassesMachine(t *testing.T) {
	routerInstance, machine, widget := newTestRouter()

	routerInstance.DispatchWidget(Command{Type: TypeHideWidget})

	if len(machine.calls) != 0 {
		t.Fatalf("HIDE_WIDGET reached the machine: %+v", machine.calls)
	}
	if widget.hidden != 1 {
		t.Fatalf("widget not hidden, hidden=%d", widget.hidden)
	}
}
