// Package images holds the pixel-buffer helpers for the offscreen render
// mode: OpenGL reads frames bottom-to-top, PNG wants top-to-bottom.
package images

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// FlipVertical reverses the row order of a tightly packed pixel buffer in
// place. components is the number of channels per pixel.
func FlipVertical(width, height, components int, pixels []byte) {
	rowLen := width * components
	top := 0
	bottom := (height - 1) * rowLen
	for top < bottom {
		for x := 0; x < rowLen; x++ {
			pixels[top+x], pixels[bottom+x] = pixels[bottom+x], pixels[top+x]
		}
		top += rowLen
		bottom -= rowLen
	}
}

// WritePNG encodes a tightly packed RGBA buffer to a PNG file.
func WritePNG(path string, width, height int, pixels []byte) error {
	if len(pixels) != width*height*4 {
		return fmt.Errorf("images: pixel buffer is %d bytes, want %d", len(pixels), width*height*4)
	}
	img := &image.NRGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("images: create %q: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("images: encode %q: %w", path, err)
	}
	return f.Close()
}
