package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Input is the per-frame input sample the controllers consume. The
// application fills it from the window once per frame, so the controllers
// never touch the windowing layer directly.
type Input struct {
	CursorX, CursorY float64
	LeftButton       bool
	MiddleButton     bool

	// Translation intents (first-person)
	DollyIn, DollyOut        bool
	TruckLeft, TruckRight    bool
	PedestalUp, PedestalDown bool
	RollLeft, RollRight      bool

	// Mode modifiers (trackball)
	Pan  bool
	Zoom bool
}

// Mode selects which controller variant drives the camera.
type Mode int

const (
	ModeFirstPerson Mode = iota
	ModeTrackball
)

func (m Mode) String() string {
	if m == ModeTrackball {
		return "trackball"
	}
	return "first-person"
}

// Controller updates a camera pose from per-frame input samples. Update
// returns false when nothing changed, so callers can skip recomputing the
// view matrix. Exactly one controller owns the Camera value at a time;
// switching variants moves the value via Camera/SetCamera.
type Controller interface {
	Update(in Input, elapsed float32) bool
	Camera() Camera
	SetCamera(Camera)
}

// NewController builds a controller of the given mode around the default
// camera pose.
func NewController(mode Mode, speed float32, worldUpAxis mgl32.Vec3) Controller {
	if mode == ModeTrackball {
		return &Trackball{speed: speed, worldUpAxis: worldUpAxis, cam: DefaultCamera()}
	}
	return &FirstPerson{speed: speed, worldUpAxis: worldUpAxis, cam: DefaultCamera()}
}

// drag tracks the Idle/Dragging state for one pointer button and yields the
// cursor delta while dragging. The press frame latches the cursor as the
// anchor, so its delta is zero.
type drag struct {
	held         bool
	lastX, lastY float64
}

func (d *drag) delta(pressed bool, x, y float64) (dx, dy float64) {
	switch {
	case pressed && !d.held:
		d.held = true
		d.lastX, d.lastY = x, y
	case !pressed && d.held:
		d.held = false
	}
	if !d.held {
		return 0, 0
	}
	dx, dy = x-d.lastX, y-d.lastY
	d.lastX, d.lastY = x, y
	return dx, dy
}

// FirstPerson is a fly-through controller: keys translate the camera in its
// own frame, dragging the left button pans and tilts it.
type FirstPerson struct {
	speed       float32
	worldUpAxis mgl32.Vec3
	drag        drag
	cam         Camera
}

func (c *FirstPerson) Camera() Camera          { return c.cam }
func (c *FirstPerson) SetCamera(cam Camera)    { c.cam = cam }
func (c *FirstPerson) Speed() float32          { return c.speed }
func (c *FirstPerson) SetSpeed(speed float32)  { c.speed = speed }
func (c *FirstPerson) WorldUpAxis() mgl32.Vec3 { return c.worldUpAxis }

// IncreaseSpeed adjusts the movement speed, never below zero.
func (c *FirstPerson) IncreaseSpeed(delta float32) {
	c.speed = math32.Max(c.speed+delta, 0)
}

// Update applies the sampled input to the camera. Returns true when the pose
// changed.
func (c *FirstPerson) Update(in Input, elapsed float32) bool {
	dx, dy := c.drag.delta(in.LeftButton, in.CursorX, in.CursorY)

	var truckLeft, pedestalUp, dollyIn, rollRightAngle float32
	step := c.speed * elapsed
	if in.DollyIn {
		dollyIn += step
	}
	if in.DollyOut {
		dollyIn -= step
	}
	if in.TruckLeft {
		truckLeft += step
	}
	if in.TruckRight {
		truckLeft -= step
	}
	if in.PedestalUp {
		pedestalUp += step
	}
	if in.PedestalDown {
		pedestalUp -= step
	}
	// Roll is a fixed increment per frame, not time-scaled.
	if in.RollLeft {
		rollRightAngle -= 0.001
	}
	if in.RollRight {
		rollRightAngle += 0.001
	}

	// Cursor going right means pan left by a negative angle.
	panLeftAngle := -0.01 * float32(dx)
	tiltDownAngle := 0.01 * float32(dy)

	if truckLeft == 0 && pedestalUp == 0 && dollyIn == 0 &&
		panLeftAngle == 0 && tiltDownAngle == 0 && rollRightAngle == 0 {
		return false
	}

	c.cam.MoveLocal(truckLeft, pedestalUp, dollyIn)
	c.cam.RotateLocal(rollRightAngle, tiltDownAngle, 0)
	c.cam.RotateWorld(panLeftAngle, c.worldUpAxis)
	return true
}

// Trackball orbits, pans and zooms around the camera's center point while
// the middle button is dragged. Pan and Zoom modifiers select the mode;
// orbiting is the default.
type Trackball struct {
	speed       float32
	worldUpAxis mgl32.Vec3
	drag        drag
	cam         Camera
}

func (c *Trackball) Camera() Camera          { return c.cam }
func (c *Trackball) SetCamera(cam Camera)    { c.cam = cam }
func (c *Trackball) Speed() float32          { return c.speed }
func (c *Trackball) SetSpeed(speed float32)  { c.speed = speed }
func (c *Trackball) WorldUpAxis() mgl32.Vec3 { return c.worldUpAxis }

// IncreaseSpeed adjusts the movement speed, never below zero.
func (c *Trackball) IncreaseSpeed(delta float32) {
	c.speed = math32.Max(c.speed+delta, 0)
}

// Update applies the sampled input to the camera. Returns true when the pose
// changed.
func (c *Trackball) Update(in Input, elapsed float32) bool {
	dx, dy := c.drag.delta(in.MiddleButton, in.CursorX, in.CursorY)

	if in.Pan {
		truckLeft := 0.01 * float32(dx)
		pedestalUp := 0.01 * float32(dy)
		if truckLeft == 0 && pedestalUp == 0 {
			return false
		}
		c.cam.MoveLocal(truckLeft, pedestalUp, 0)
		return true
	}

	if in.Zoom {
		offset := 0.01 * float32(dx)
		if offset == 0 {
			return false
		}
		// Move along the view vector, never past the center: keep at least
		// 1e-4 between eye and center.
		view := c.cam.Center.Sub(c.cam.Eye)
		l := view.Len()
		if offset > 0 {
			offset = math32.Min(offset, l-1e-4)
		}
		newEye := c.cam.Eye.Add(view.Mul(offset / l))
		cam, err := NewCamera(newEye, c.cam.Center, c.worldUpAxis)
		if err != nil {
			return false
		}
		c.cam = cam
		return true
	}

	// Orbit: rotate the eye around the center. The vertical component
	// rotates around the camera's local left axis, the horizontal one
	// around the world up axis.
	longitudeAngle := 0.01 * float32(dy)
	latitudeAngle := -0.01 * float32(dx)
	if longitudeAngle == 0 && latitudeAngle == 0 {
		return false
	}

	depthAxis := c.cam.Eye.Sub(c.cam.Center)
	rotated := rotateAbout(depthAxis, longitudeAngle, c.cam.Left())
	rotated = rotateAbout(rotated, latitudeAngle, c.worldUpAxis)

	cam, err := NewCamera(c.cam.Center.Add(rotated), c.cam.Center, c.worldUpAxis)
	if err != nil {
		// The rotation drove the view direction onto the world up axis;
		// leave the pose as it was rather than degenerate.
		return false
	}
	c.cam = cam
	return true
}
