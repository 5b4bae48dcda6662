package camera

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrDegenerateBasis is returned when the up vector is parallel to the view
// direction, so no orthonormal camera frame exists.
var ErrDegenerateBasis = errors.New("camera: up vector parallel to view direction")

// Camera is a view pose defined by an eye position, a center position and an
// up vector. Construction re-orthonormalizes up, so Front, Left and Up always
// form a right-handed orthonormal basis.
type Camera struct {
	Eye    mgl32.Vec3
	Center mgl32.Vec3
	Up     mgl32.Vec3
}

// NewCamera builds a camera looking from eye towards center. The given up
// vector only fixes the roll: it is replaced by normalize(cross(front, left)).
// Returns ErrDegenerateBasis when up and the view direction are parallel.
func NewCamera(eye, center, up mgl32.Vec3) (Camera, error) {
	front := center.Sub(eye)
	left := up.Cross(front)
	if left.Len() < 1e-20 {
		return Camera{}, ErrDegenerateBasis
	}
	return Camera{
		Eye:    eye,
		Center: center,
		Up:     front.Cross(left).Normalize(),
	}, nil
}

// DefaultCamera sits at the origin looking down -Z with +Y up.
func DefaultCamera() Camera {
	c, _ := NewCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return c
}

// ViewMatrix returns the world-to-view transform for this pose.
func (c Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Center, c.Up)
}

// Front returns the normalized view direction.
func (c Camera) Front() mgl32.Vec3 {
	return c.Center.Sub(c.Eye).Normalize()
}

// Left returns the normalized left axis of the camera frame.
func (c Camera) Left() mgl32.Vec3 {
	return c.Up.Cross(c.Center.Sub(c.Eye)).Normalize()
}

// TruckLeft moves the camera along its left axis.
func (c *Camera) TruckLeft(offset float32) {
	t := c.Left().Mul(offset)
	c.Eye = c.Eye.Add(t)
	c.Center = c.Center.Add(t)
}

// PedestalUp moves the camera along its up axis.
func (c *Camera) PedestalUp(offset float32) {
	t := c.Up.Mul(offset)
	c.Eye = c.Eye.Add(t)
	c.Center = c.Center.Add(t)
}

// DollyIn moves the camera along its view direction.
func (c *Camera) DollyIn(offset float32) {
	t := c.Front().Mul(offset)
	c.Eye = c.Eye.Add(t)
	c.Center = c.Center.Add(t)
}

// MoveLocal translates eye and center in the camera's own frame.
func (c *Camera) MoveLocal(truckLeft, pedestalUp, dollyIn float32) {
	t := c.Left().Mul(truckLeft).
		Add(c.Up.Mul(pedestalUp)).
		Add(c.Front().Mul(dollyIn))
	c.Eye = c.Eye.Add(t)
	c.Center = c.Center.Add(t)
}

// RollRight rotates the up vector around the view direction.
func (c *Camera) RollRight(radians float32) {
	c.Up = rotateAbout(c.Up, radians, c.Center.Sub(c.Eye))
}

// TiltDown rotates the view direction and up vector around the left axis,
// keeping the eye fixed.
func (c *Camera) TiltDown(radians float32) {
	front := c.Center.Sub(c.Eye)
	left := c.Up.Cross(front)
	c.Center = c.Eye.Add(rotateAbout(front, radians, left))
	c.Up = rotateAbout(c.Up, radians, left)
}

// PanLeft rotates the view direction around the up vector, keeping the eye
// fixed.
func (c *Camera) PanLeft(radians float32) {
	front := c.Center.Sub(c.Eye)
	c.Center = c.Eye.Add(rotateAbout(front, radians, c.Up))
}

// RotateLocal applies roll, tilt and pan in that order, each around the
// camera axis as it stands after the previous rotation.
func (c *Camera) RotateLocal(rollRight, tiltDown, panLeft float32) {
	front := c.Center.Sub(c.Eye)
	c.Up = rotateAbout(c.Up, rollRight, front)

	left := c.Up.Cross(front)
	newFront := rotateAbout(front, tiltDown, left)
	c.Center = c.Eye.Add(newFront)
	c.Up = rotateAbout(c.Up, tiltDown, left)

	c.Center = c.Eye.Add(rotateAbout(newFront, panLeft, c.Up))
}

// RotateWorld rotates the view direction and up vector around a world axis,
// keeping the eye fixed.
func (c *Camera) RotateWorld(radians float32, axis mgl32.Vec3) {
	front := c.Center.Sub(c.Eye)
	c.Center = c.Eye.Add(rotateAbout(front, radians, axis))
	c.Up = rotateAbout(c.Up, radians, axis)
}

// rotateAbout rotates v by the given angle around axis. The axis does not
// need to be normalized (mgl32.QuatRotate, unlike glm, expects a unit axis).
func rotateAbout(v mgl32.Vec3, radians float32, axis mgl32.Vec3) mgl32.Vec3 {
	if math32.Abs(radians) < 1e-20 {
		return v
	}
	return mgl32.QuatRotate(radians, axis.Normalize()).Rotate(v)
}
