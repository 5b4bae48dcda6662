package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// Vertex attribute locations, fixed by the forward vertex shader.
const (
	attribPosition  = 0
	attribNormal    = 1
	attribTexCoord0 = 2
)

// vaoRange locates the vertex array objects of one mesh inside the flat VAO
// slice: one VAO per primitive.
type vaoRange struct {
	begin int
	count int
}

// Renderer draws a glTF document with a single forward program and a
// directional light. Geometry is sourced straight from the document's binary
// buffers, uploaded once by UploadScene.
type Renderer struct {
	program uint32
	version string

	mvpLoc            int32
	mvLoc             int32
	normalLoc         int32
	lightDirectionLoc int32
	lightIntensityLoc int32

	buffers  []uint32
	vaos     []uint32
	meshVAOs []vaoRange
}

// NewRenderer initialises OpenGL and compiles the forward program.
// Must be called after the GLFW window context is made current.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	prog, err := newProgram(forwardVertSrc, diffuseDirectionalFragSrc)
	if err != nil {
		return nil, fmt.Errorf("shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	return &Renderer{
		program:           prog,
		version:           gl.GoStr(gl.GetString(gl.VERSION)),
		mvpLoc:            gl.GetUniformLocation(prog, gl.Str("uModelViewProjMatrix\x00")),
		mvLoc:             gl.GetUniformLocation(prog, gl.Str("uModelViewMatrix\x00")),
		normalLoc:         gl.GetUniformLocation(prog, gl.Str("uNormalMatrix\x00")),
		lightDirectionLoc: gl.GetUniformLocation(prog, gl.Str("uLightDirection\x00")),
		lightIntensityLoc: gl.GetUniformLocation(prog, gl.Str("uLightIntensity\x00")),
	}, nil
}

// Version reports the OpenGL version string of the current context.
func (r *Renderer) Version() string {
	return r.version
}

// UploadScene pushes every glTF buffer to the GPU and builds one vertex
// array object per mesh primitive, wiring POSITION, NORMAL and TEXCOORD_0
// attributes from the accessor metadata.
func (r *Renderer) UploadScene(doc *gltf.Document) {
	r.buffers = make([]uint32, len(doc.Buffers))
	if len(r.buffers) > 0 {
		gl.GenBuffers(int32(len(r.buffers)), &r.buffers[0])
	}
	for i, buf := range doc.Buffers {
		if len(buf.Data) == 0 {
			continue
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, r.buffers[i])
		gl.BufferData(gl.ARRAY_BUFFER, len(buf.Data), gl.Ptr(buf.Data), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.meshVAOs = make([]vaoRange, len(doc.Meshes))
	for mi, mesh := range doc.Meshes {
		r.meshVAOs[mi] = vaoRange{begin: len(r.vaos), count: len(mesh.Primitives)}

		prims := make([]uint32, len(mesh.Primitives))
		if len(prims) > 0 {
			gl.GenVertexArrays(int32(len(prims)), &prims[0])
		}
		r.vaos = append(r.vaos, prims...)

		for pi, prim := range mesh.Primitives {
			gl.BindVertexArray(prims[pi])
			r.bindAttribute(doc, prim, "POSITION", attribPosition)
			r.bindAttribute(doc, prim, "NORMAL", attribNormal)
			r.bindAttribute(doc, prim, "TEXCOORD_0", attribTexCoord0)

			if prim.Indices != nil {
				acc := doc.Accessors[*prim.Indices]
				if acc.BufferView != nil {
					bv := doc.BufferViews[*acc.BufferView]
					gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.buffers[bv.Buffer])
				}
			}
		}
	}
	gl.BindVertexArray(0)
}

// bindAttribute points one vertex attribute at the accessor data inside the
// already-uploaded buffer objects. Absent attributes stay disabled.
func (r *Renderer) bindAttribute(doc *gltf.Document, prim *gltf.Primitive, name string, location uint32) {
	accIdx, ok := prim.Attributes[name]
	if !ok {
		return
	}
	acc := doc.Accessors[accIdx]
	if acc.BufferView == nil {
		return
	}
	bv := doc.BufferViews[*acc.BufferView]

	gl.EnableVertexAttribArray(location)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.buffers[bv.Buffer])
	gl.VertexAttribPointerWithOffset(location,
		componentCount(acc.Type), glComponentType(acc.ComponentType),
		false, int32(bv.ByteStride), uintptr(acc.ByteOffset+bv.ByteOffset))
}

// BeginFrame sets the viewport and clears color and depth.
func (r *Renderer) BeginFrame(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)
}

// SetLight uploads the directional light. The direction must already be in
// view space and point towards the light.
func (r *Renderer) SetLight(direction, intensity mgl32.Vec3) {
	gl.UseProgram(r.program)
	gl.Uniform3fv(r.lightDirectionLoc, 1, &direction[0])
	gl.Uniform3fv(r.lightIntensityLoc, 1, &intensity[0])
}

// DrawMesh issues one draw call per primitive of the given mesh with the
// model/view/projection matrices of the node being visited.
func (r *Renderer) DrawMesh(doc *gltf.Document, meshIdx int, model, view, proj mgl32.Mat4) {
	if meshIdx < 0 || meshIdx >= len(r.meshVAOs) {
		return
	}
	mv := view.Mul4(model)
	mvp := proj.Mul4(mv)
	normal := mv.Inv().Transpose()

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvLoc, 1, false, &mv[0])
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, &mvp[0])
	gl.UniformMatrix4fv(r.normalLoc, 1, false, &normal[0])

	mesh := doc.Meshes[meshIdx]
	rng := r.meshVAOs[meshIdx]
	for pi := 0; pi < rng.count; pi++ {
		prim := mesh.Primitives[pi]
		gl.BindVertexArray(r.vaos[rng.begin+pi])
		mode := glPrimitiveMode(prim.Mode)

		if prim.Indices != nil {
			acc := doc.Accessors[*prim.Indices]
			offset := acc.ByteOffset
			if acc.BufferView != nil {
				offset += doc.BufferViews[*acc.BufferView].ByteOffset
			}
			gl.DrawElementsWithOffset(mode, int32(acc.Count),
				glComponentType(acc.ComponentType), uintptr(offset))
		} else if posIdx, ok := prim.Attributes["POSITION"]; ok {
			gl.DrawArrays(mode, 0, int32(doc.Accessors[posIdx].Count))
		}
	}
	gl.BindVertexArray(0)
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	if len(r.vaos) > 0 {
		gl.DeleteVertexArrays(int32(len(r.vaos)), &r.vaos[0])
	}
	if len(r.buffers) > 0 {
		gl.DeleteBuffers(int32(len(r.buffers)), &r.buffers[0])
	}
	gl.DeleteProgram(r.program)
}

func glComponentType(c gltf.ComponentType) uint32 {
	switch c {
	case gltf.ComponentByte:
		return gl.BYTE
	case gltf.ComponentUbyte:
		return gl.UNSIGNED_BYTE
	case gltf.ComponentShort:
		return gl.SHORT
	case gltf.ComponentUshort:
		return gl.UNSIGNED_SHORT
	case gltf.ComponentUint:
		return gl.UNSIGNED_INT
	default:
		return gl.FLOAT
	}
}

func componentCount(t gltf.AccessorType) int32 {
	switch t {
	case gltf.AccessorScalar:
		return 1
	case gltf.AccessorVec2:
		return 2
	case gltf.AccessorVec3:
		return 3
	default:
		return 4
	}
}

func glPrimitiveMode(m gltf.PrimitiveMode) uint32 {
	switch m {
	case gltf.PrimitivePoints:
		return gl.POINTS
	case gltf.PrimitiveLines:
		return gl.LINES
	case gltf.PrimitiveLineLoop:
		return gl.LINE_LOOP
	case gltf.PrimitiveLineStrip:
		return gl.LINE_STRIP
	case gltf.PrimitiveTriangleStrip:
		return gl.TRIANGLE_STRIP
	case gltf.PrimitiveTriangleFan:
		return gl.TRIANGLE_FAN
	default:
		return gl.TRIANGLES
	}
}
