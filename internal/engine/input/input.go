// Package input handles SDL2 input events for the desktop host.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
)

// Action is a preview command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggleVisible
	ActionNextTemplate
	ActionCycleAccent
	ActionScreenshot
	ActionOrbitLeft
	ActionOrbitRight
	ActionOrbitUp
	ActionOrbitDown
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionToggleVisible:
		return "toggle-visible"
	case ActionNextTemplate:
		return "next-template"
	case ActionCycleAccent:
		return "cycle-accent"
	case ActionScreenshot:
		return "screenshot"
	case ActionOrbitLeft:
		return "orbit-left"
	case ActionOrbitRight:
		return "orbit-right"
	case ActionOrbitUp:
		return "orbit-up"
	case ActionOrbitDown:
		return "orbit-down"
	}
	return "none"
}

var keyBindings = map[sdl.Scancode]Action{
	sdl.SCANCODE_ESCAPE: ActionQuit,
	sdl.SCANCODE_V:      ActionToggleVisible,
	sdl.SCANCODE_T:      ActionNextTemplate,
	sdl.SCANCODE_C:      ActionCycleAccent,
	sdl.SCANCODE_S:      ActionScreenshot,
	sdl.SCANCODE_LEFT:   ActionOrbitLeft,
	sdl.SCANCODE_RIGHT:  ActionOrbitRight,
	sdl.SCANCODE_UP:     ActionOrbitUp,
	sdl.SCANCODE_DOWN:   ActionOrbitDown,
}

// ActionFor returns the action bound to a key.
func ActionFor(key sdl.Scancode) Action {
	return keyBindings[key]
}

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Action Action
	Width  int
	Height int
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events. It returns true if the host should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		ev, ok := translate(event)
		if !ok {
			continue
		}
		i.events = append(i.events, ev)
		if ev.Type == EventQuit || ev.Action == ActionQuit {
			quit = true
		}
	}
	return quit
}

func translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			return Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		// Auto-repeat would flip visibility on every repeat tick.
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			return Event{
				Type:   EventKeyDown,
				Key:    e.Keysym.Scancode,
				Action: ActionFor(e.Keysym.Scancode),
			}, true
		}
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Actions returns the bound actions triggered during the last Update.
func (i *Input) Actions() []Action {
	var out []Action
	for _, e := range i.events {
		if e.Action != ActionNone {
			out = append(out, e.Action)
		}
	}
	return out
}
