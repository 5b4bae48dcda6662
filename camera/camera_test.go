package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const tolerance = 1e-5

func absf(v float32) float64 {
	return math.Abs(float64(v))
}

func vecNear(t *testing.T, name string, got, want mgl32.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if absf(got[i]-want[i]) > tolerance {
			t.Fatalf("%s: expected %v, got %v", name, want, got)
		}
	}
}

func TestNewCameraOrthonormalBasis(t *testing.T) {
	cases := []struct {
		eye, center, up mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{3, 2, 1}, mgl32.Vec3{-1, 4, 2}, mgl32.Vec3{0, 1, 0}},
		// Skewed up vector: construction must re-orthonormalize it.
		{mgl32.Vec3{5, 5, 5}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0.3, 0.9, 0.1}},
	}

	for _, c := range cases {
		cam, err := NewCamera(c.eye, c.center, c.up)
		if err != nil {
			t.Fatalf("NewCamera(%v, %v, %v): %v", c.eye, c.center, c.up, err)
		}

		front := cam.Front()
		left := cam.Left()
		up := cam.Up

		for name, v := range map[string]mgl32.Vec3{"front": front, "left": left, "up": up} {
			if absf(v.Len()-1) > tolerance {
				t.Errorf("%s: expected unit length, got %v", name, v.Len())
			}
		}
		if absf(front.Dot(left)) > tolerance {
			t.Errorf("front.left: expected 0, got %v", front.Dot(left))
		}
		if absf(front.Dot(up)) > tolerance {
			t.Errorf("front.up: expected 0, got %v", front.Dot(up))
		}
		if absf(left.Dot(up)) > tolerance {
			t.Errorf("left.up: expected 0, got %v", left.Dot(up))
		}
	}
}

func TestNewCameraDegenerate(t *testing.T) {
	// Up parallel to the view direction: no valid frame exists.
	_, err := NewCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -3}, mgl32.Vec3{0, 0, 1})
	if err != ErrDegenerateBasis {
		t.Fatalf("expected ErrDegenerateBasis, got %v", err)
	}

	// Zero up vector is degenerate too.
	_, err = NewCamera(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{4, 5, 6}, mgl32.Vec3{})
	if err != ErrDegenerateBasis {
		t.Fatalf("expected ErrDegenerateBasis, got %v", err)
	}
}

func TestMoveLocal(t *testing.T) {
	cam := DefaultCamera()

	// Looking down -Z with +Y up: left is -X.
	cam.MoveLocal(1, 0, 0)
	vecNear(t, "truck eye", cam.Eye, mgl32.Vec3{-1, 0, 0})
	vecNear(t, "truck center", cam.Center, mgl32.Vec3{-1, 0, -1})

	cam = DefaultCamera()
	cam.MoveLocal(0, 2, 0)
	vecNear(t, "pedestal eye", cam.Eye, mgl32.Vec3{0, 2, 0})

	cam = DefaultCamera()
	cam.MoveLocal(0, 0, 3)
	vecNear(t, "dolly eye", cam.Eye, mgl32.Vec3{0, 0, -3})
	vecNear(t, "dolly center", cam.Center, mgl32.Vec3{0, 0, -4})
}

func TestRotateWorldKeepsEye(t *testing.T) {
	cam := DefaultCamera()
	cam.RotateWorld(float32(math.Pi/2), mgl32.Vec3{0, 1, 0})

	vecNear(t, "eye", cam.Eye, mgl32.Vec3{0, 0, 0})
	// Front (0,0,-1) rotated +90 degrees around +Y lands on -X.
	vecNear(t, "front", cam.Front(), mgl32.Vec3{-1, 0, 0})
	vecNear(t, "up", cam.Up, mgl32.Vec3{0, 1, 0})
}

func TestTiltDownKeepsEyeAndDistance(t *testing.T) {
	cam, err := NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	before := cam.Center.Sub(cam.Eye).Len()

	cam.TiltDown(0.3)

	vecNear(t, "eye", cam.Eye, mgl32.Vec3{0, 0, 5})
	after := cam.Center.Sub(cam.Eye).Len()
	if absf(after-before) > tolerance {
		t.Errorf("tilt changed view distance: %v -> %v", before, after)
	}
	if absf(cam.Front().Dot(cam.Up)) > tolerance {
		t.Errorf("tilt broke orthogonality: front.up = %v", cam.Front().Dot(cam.Up))
	}
}

func TestViewMatrixMapsEyeToOrigin(t *testing.T) {
	cam, err := NewCamera(mgl32.Vec3{2, 3, 4}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	v := cam.ViewMatrix().Mul4x1(mgl32.Vec4{2, 3, 4, 1})
	for i := 0; i < 3; i++ {
		if absf(v[i]) > tolerance {
			t.Fatalf("view matrix: expected eye at origin, got %v", v)
		}
	}
}
