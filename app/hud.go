package app

import (
	"fmt"

	"gltf-viewer/camera"
	"gltf-viewer/core"
)

// hud mirrors the viewer state into the window title a few times per second:
// frame rate, active controller, current eye position. The eye/center/up
// triple printed here can be fed back through --lookat to reproduce a view.
type hud struct {
	window     *core.Window
	baseTitle  string
	lastUpdate float64
	frames     int
}

func newHUD(w *core.Window) *hud {
	return &hud{window: w, baseTitle: w.Title, lastUpdate: core.Time()}
}

func (h *hud) frame(mode camera.Mode, cam camera.Camera) {
	h.frames++
	now := core.Time()
	interval := now - h.lastUpdate
	if interval < 0.25 {
		return
	}

	fps := float64(h.frames) / interval
	h.frames = 0
	h.lastUpdate = now

	h.window.SetTitle(fmt.Sprintf("%s | %.1f FPS | %s | eye %.2f %.2f %.2f",
		h.baseTitle, fps, mode, cam.Eye.X(), cam.Eye.Y(), cam.Eye.Z()))
}
