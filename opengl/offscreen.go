package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// RenderToImage renders exactly one frame into an offscreen framebuffer and
// returns the RGBA pixels, row-major and bottom-to-top as OpenGL reads them.
// Callers writing standard image formats must flip the rows.
//
// The previously bound texture and framebuffer are restored before
// returning, so draw may rely on the GL state it was called with (apart from
// the draw framebuffer itself).
func RenderToImage(width, height int, draw func()) ([]byte, error) {
	var prevTexture, prevFramebuffer int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &prevTexture)
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFramebuffer)

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, uint32(prevTexture))

	var depth uint32
	gl.GenRenderbuffers(1, &depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, texture, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, depth)

	cleanup := func() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFramebuffer))
		gl.DeleteFramebuffers(1, &fbo)
		gl.DeleteRenderbuffers(1, &depth)
		gl.DeleteTextures(1, &texture)
	}

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		cleanup()
		return nil, fmt.Errorf("offscreen framebuffer incomplete: 0x%x", status)
	}

	draw()

	pixels := make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	cleanup()
	return pixels, nil
}
