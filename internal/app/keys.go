package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/golden-sphere/internal/controls"
)

// keyBindings maps scancodes to viewer actions.
var keyBindings = map[sdl.Scancode]controls.Action{
	sdl.SCANCODE_UP:       controls.PointsUp,
	sdl.SCANCODE_DOWN:     controls.PointsDown,
	sdl.SCANCODE_PAGEUP:   controls.PointsUpFast,
	sdl.SCANCODE_PAGEDOWN: controls.PointsDownFast,
	sdl.SCANCODE_T:        controls.CycleTopology,
	sdl.SCANCODE_1:        controls.ShowPoints,
	sdl.SCANCODE_2:        controls.ShowLines,
	sdl.SCANCODE_3:        controls.ShowTriangles,
	sdl.SCANCODE_R:        controls.ToggleRotation,
	sdl.SCANCODE_A:        controls.ToggleAnimation,
	sdl.SCANCODE_F12:      controls.Screenshot,
	sdl.SCANCODE_ESCAPE:   controls.Quit,
}

// ctrlBindings are checked before keyBindings while Ctrl is held.
var ctrlBindings = map[sdl.Scancode]controls.Action{
	sdl.SCANCODE_S: controls.SaveSettings,
}

// lookupAction resolves a key press, preferring Ctrl chords.
func lookupAction(key sdl.Scancode, mod sdl.Keymod) (controls.Action, bool) {
	if mod&sdl.KMOD_CTRL != 0 {
		if action, ok := ctrlBindings[key]; ok {
			return action, true
		}
	}
	action, ok := keyBindings[key]
	return action, ok
}
