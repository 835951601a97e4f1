package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestActionFor(t *testing.T) {
	tests := []struct {
		key  sdl.Scancode
		want Action
	}{
		{sdl.SCANCODE_ESCAPE, ActionQuit},
		{sdl.SCANCODE_V, ActionToggleVisible},
		{sdl.SCANCODE_T, ActionNextTemplate},
		{sdl.SCANCODE_C, ActionCycleAccent},
		{sdl.SCANCODE_S, ActionScreenshot},
		{sdl.SCANCODE_LEFT, ActionOrbitLeft},
		{sdl.SCANCODE_DOWN, ActionOrbitDown},
		{sdl.SCANCODE_Q, ActionNone},
	}
	for _, tt := range tests {
		if got := ActionFor(tt.key); got != tt.want {
			t.Errorf("ActionFor(%d) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		event  sdl.Event
		want   Event
		wantOK bool
	}{
		{
			name:   "quit",
			event:  &sdl.QuitEvent{Type: sdl.QUIT},
			want:   Event{Type: EventQuit},
			wantOK: true,
		},
		{
			name: "key down",
			event: &sdl.KeyboardEvent{
				Type:   sdl.KEYDOWN,
				Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_T},
			},
			want:   Event{Type: EventKeyDown, Key: sdl.SCANCODE_T, Action: ActionNextTemplate},
			wantOK: true,
		},
		{
			name: "key repeat ignored",
			event: &sdl.KeyboardEvent{
				Type:   sdl.KEYDOWN,
				Repeat: 1,
				Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_V},
			},
		},
		{
			name: "key up ignored",
			event: &sdl.KeyboardEvent{
				Type:   sdl.KEYUP,
				Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_V},
			},
		},
		{
			name:   "resize",
			event:  &sdl.WindowEvent{Event: sdl.WINDOWEVENT_RESIZED, Data1: 640, Data2: 480},
			want:   Event{Type: EventWindowResize, Width: 640, Height: 480},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translate(tt.event)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("translate = %+v, %v; want %+v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
