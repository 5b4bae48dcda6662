package app

import (
	"gltf-viewer/camera"
	"gltf-viewer/core"
)

// sampleInput polls the window once and packs the state the controllers
// consume. Key bindings follow the usual fly-through layout: WASD plus
// Up/Down arrows, Q/E roll, Shift/Ctrl select the trackball mode.
func sampleInput(w *core.Window) camera.Input {
	x, y := w.GetCursorPos()
	return camera.Input{
		CursorX:      x,
		CursorY:      y,
		LeftButton:   w.IsMouseButtonPressed(core.MouseButtonLeft),
		MiddleButton: w.IsMouseButtonPressed(core.MouseButtonMiddle),

		DollyIn:      w.IsKeyPressed(core.KeyW),
		DollyOut:     w.IsKeyPressed(core.KeyS),
		TruckLeft:    w.IsKeyPressed(core.KeyA),
		TruckRight:   w.IsKeyPressed(core.KeyD),
		PedestalUp:   w.IsKeyPressed(core.KeyUp),
		PedestalDown: w.IsKeyPressed(core.KeyDown),
		RollLeft:     w.IsKeyPressed(core.KeyQ),
		RollRight:    w.IsKeyPressed(core.KeyE),

		Pan:  w.IsKeyPressed(core.KeyLeftShift),
		Zoom: w.IsKeyPressed(core.KeyLeftControl),
	}
}

// keyEdge debounces a key so an action fires once per press.
type keyEdge struct {
	wasDown bool
}

func (k *keyEdge) pressed(down bool) bool {
	fired := down && !k.wasDown
	k.wasDown = down
	return fired
}
