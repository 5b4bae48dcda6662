package images

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestFlipVertical(t *testing.T) {
	// 2x3 image, 1 component: rows 0/1/2 become 2/1/0.
	pixels := []byte{
		0, 1,
		2, 3,
		4, 5,
	}
	FlipVertical(2, 3, 1, pixels)

	want := []byte{
		4, 5,
		2, 3,
		0, 1,
	}
	if !bytes.Equal(pixels, want) {
		t.Fatalf("expected %v, got %v", want, pixels)
	}
}

func TestFlipVerticalTwiceIsIdentity(t *testing.T) {
	pixels := make([]byte, 4*5*4)
	for i := range pixels {
		pixels[i] = byte(i % 251)
	}
	orig := append([]byte(nil), pixels...)

	FlipVertical(4, 5, 4, pixels)
	FlipVertical(4, 5, 4, pixels)

	if !bytes.Equal(pixels, orig) {
		t.Fatal("double flip did not restore the original buffer")
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")

	pixels := make([]byte, 2*2*4)
	for i := range pixels {
		pixels[i] = 0xff
	}
	if err := WritePNG(path, 2, 2, pixels); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 || !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatalf("output does not look like a PNG (%d bytes)", len(data))
	}
}

func TestWritePNGRejectsShortBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := WritePNG(path, 4, 4, make([]byte, 3)); err == nil {
		t.Fatal("expected an error for a short pixel buffer")
	}
}
