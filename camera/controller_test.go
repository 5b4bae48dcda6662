package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var worldUp = mgl32.Vec3{0, 1, 0}

func TestIdleUpdateIsNoOp(t *testing.T) {
	for _, mode := range []Mode{ModeFirstPerson, ModeTrackball} {
		ctl := NewController(mode, 1, worldUp)
		before := ctl.Camera()

		if ctl.Update(Input{}, 0.016) {
			t.Errorf("%s: idle update reported a change", mode)
		}
		if ctl.Camera() != before {
			t.Errorf("%s: idle update modified the camera: %+v -> %+v", mode, before, ctl.Camera())
		}
	}
}

func TestFirstPersonDolly(t *testing.T) {
	ctl := NewController(ModeFirstPerson, 2, worldUp)

	if !ctl.Update(Input{DollyIn: true}, 0.5) {
		t.Fatal("dolly update reported no change")
	}
	// speed 2 for 0.5s along front (0,0,-1)
	vecNear(t, "eye", ctl.Camera().Eye, mgl32.Vec3{0, 0, -1})
	vecNear(t, "center", ctl.Camera().Center, mgl32.Vec3{0, 0, -2})
}

func TestFirstPersonDragPans(t *testing.T) {
	ctl := NewController(ModeFirstPerson, 1, worldUp)
	frontBefore := ctl.Camera().Front()

	// Press frame latches the anchor: zero delta, no change.
	if ctl.Update(Input{LeftButton: true, CursorX: 100, CursorY: 100}, 0.016) {
		t.Fatal("press frame reported a change")
	}
	// Cursor moves right: camera pans (front rotates), eye stays put.
	if !ctl.Update(Input{LeftButton: true, CursorX: 110, CursorY: 100}, 0.016) {
		t.Fatal("drag frame reported no change")
	}

	cam := ctl.Camera()
	vecNear(t, "eye", cam.Eye, mgl32.Vec3{0, 0, 0})
	if cam.Front() == frontBefore {
		t.Fatal("drag did not rotate the view direction")
	}

	// Release returns to idle: further cursor motion is ignored.
	if ctl.Update(Input{CursorX: 500, CursorY: 500}, 0.016) {
		t.Fatal("released drag still reported a change")
	}
}

func TestTrackballZoomNeverCrossesCenter(t *testing.T) {
	ctl := NewController(ModeTrackball, 1, worldUp)
	cam, err := NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0}, worldUp)
	if err != nil {
		t.Fatal(err)
	}
	ctl.SetCamera(cam)

	// Latch the drag, then zoom in hard for many frames.
	ctl.Update(Input{MiddleButton: true, Zoom: true}, 0.016)
	x := 0.0
	for i := 0; i < 50; i++ {
		x += 1000
		ctl.Update(Input{MiddleButton: true, Zoom: true, CursorX: x}, 0.016)
	}

	got := ctl.Camera()
	dist := got.Eye.Sub(got.Center).Len()
	if dist < 1e-4-tolerance {
		t.Fatalf("zoom crossed the center: distance %v", dist)
	}
	vecNear(t, "center", got.Center, mgl32.Vec3{0, 0, 0})
}

func TestTrackballOrbitKeepsCenterAndDistance(t *testing.T) {
	ctl := NewController(ModeTrackball, 1, worldUp)
	cam, err := NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0}, worldUp)
	if err != nil {
		t.Fatal(err)
	}
	ctl.SetCamera(cam)

	ctl.Update(Input{MiddleButton: true}, 0.016)
	if !ctl.Update(Input{MiddleButton: true, CursorX: 40, CursorY: 25}, 0.016) {
		t.Fatal("orbit reported no change")
	}

	got := ctl.Camera()
	vecNear(t, "center", got.Center, mgl32.Vec3{0, 0, 0})
	if absf(got.Eye.Sub(got.Center).Len()-5) > 1e-4 {
		t.Fatalf("orbit changed the distance: %v", got.Eye.Sub(got.Center).Len())
	}
	if got.Eye == cam.Eye {
		t.Fatal("orbit did not move the eye")
	}
}

func TestTrackballPanKeepsViewDirection(t *testing.T) {
	ctl := NewController(ModeTrackball, 1, worldUp)
	frontBefore := ctl.Camera().Front()

	ctl.Update(Input{MiddleButton: true, Pan: true}, 0.016)
	if !ctl.Update(Input{MiddleButton: true, Pan: true, CursorX: 30, CursorY: -10}, 0.016) {
		t.Fatal("pan reported no change")
	}

	got := ctl.Camera()
	vecNear(t, "front", got.Front(), frontBefore)
	if got.Eye == (mgl32.Vec3{}) {
		t.Fatal("pan did not translate the eye")
	}
}

func TestSwitchingControllerPreservesPose(t *testing.T) {
	fp := NewController(ModeFirstPerson, 3, worldUp)
	fp.Update(Input{DollyIn: true, TruckLeft: true}, 0.25)
	fp.Update(Input{PedestalUp: true}, 0.25)

	tb := NewController(ModeTrackball, 3, worldUp)
	tb.SetCamera(fp.Camera())

	if tb.Camera() != fp.Camera() {
		t.Fatalf("switch lost the pose: %+v vs %+v", fp.Camera(), tb.Camera())
	}

	// And back again.
	fp2 := NewController(ModeFirstPerson, 3, worldUp)
	fp2.SetCamera(tb.Camera())
	if fp2.Camera() != tb.Camera() {
		t.Fatal("switching back lost the pose")
	}
}
