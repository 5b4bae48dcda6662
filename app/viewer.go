package app

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"gltf-viewer/camera"
	"gltf-viewer/core"
	"gltf-viewer/images"
	"gltf-viewer/opengl"
	"gltf-viewer/scene"
)

// Config carries everything the CLI hands to the viewer.
type Config struct {
	GltfPath string
	Width    int
	Height   int

	// Lookat is an optional explicit camera pose. When nil the camera is
	// derived from the scene bounds.
	Lookat *camera.Camera

	// OutputPath switches to offscreen mode: render one frame, write it as
	// PNG, exit. The window stays hidden.
	OutputPath string
}

// Light is the directional light state, owned by the frame loop and passed
// down explicitly each frame.
type Light struct {
	Theta      float32 // polar angle from world up, radians
	Phi        float32 // azimuth, radians
	Intensity  mgl32.Vec3
	FromCamera bool // override direction with the view direction
}

// Direction returns the world-space unit vector pointing towards the light.
func (l Light) Direction() mgl32.Vec3 {
	sinTheta := math32.Sin(l.Theta)
	return mgl32.Vec3{
		sinTheta * math32.Cos(l.Phi),
		math32.Cos(l.Theta),
		sinTheta * math32.Sin(l.Phi),
	}
}

// Viewer owns the window, renderer and loaded scene for one run.
type Viewer struct {
	cfg      Config
	window   *core.Window
	renderer *opengl.Renderer
	scene    *scene.Scene

	proj    mgl32.Mat4
	worldUp mgl32.Vec3
	light   Light
}

// Run loads the scene and either renders a single frame to the configured
// PNG or enters the interactive loop.
func Run(cfg Config) error {
	wc := core.DefaultWindowConfig()
	wc.Width = cfg.Width
	wc.Height = cfg.Height
	wc.Visible = cfg.OutputPath == ""

	window, err := core.NewWindow(wc)
	if err != nil {
		return err
	}
	defer window.Destroy()

	renderer, err := opengl.NewRenderer()
	if err != nil {
		return err
	}
	defer renderer.Destroy()
	fmt.Printf("OpenGL version: %s\n", renderer.Version())

	sc, err := scene.Load(cfg.GltfPath)
	if err != nil {
		return err
	}
	renderer.UploadScene(sc.Doc)

	v := &Viewer{
		cfg:      cfg,
		window:   window,
		renderer: renderer,
		scene:    sc,
		worldUp:  mgl32.Vec3{0, 1, 0},
		light: Light{
			Theta:     math32.Pi / 4,
			Phi:       math32.Pi / 4,
			Intensity: mgl32.Vec3{1, 1, 1},
		},
	}

	bboxMin, bboxMax := sc.Bounds()
	diag := bboxMax.Sub(bboxMin)
	maxDistance := diag.Len()
	// Empty or degenerate scenes yield an infinite or zero diagonal.
	if math32.IsInf(maxDistance, 0) || math32.IsNaN(maxDistance) || maxDistance == 0 {
		maxDistance = 100
	}
	v.proj = mgl32.Perspective(mgl32.DegToRad(70),
		float32(cfg.Width)/float32(cfg.Height),
		0.001*maxDistance, 1.5*maxDistance)

	cam := cfg.Lookat
	if cam == nil {
		c := defaultCameraForBounds(bboxMin, bboxMax, v.worldUp)
		cam = &c
	}

	if cfg.OutputPath != "" {
		return v.renderToFile(*cam)
	}
	return v.loop(*cam, 0.5*maxDistance)
}

// defaultCameraForBounds frames the whole scene: look at the bbox center
// from one diagonal away, or from the side when the scene is flat in Z.
func defaultCameraForBounds(bboxMin, bboxMax, up mgl32.Vec3) camera.Camera {
	center := bboxMin.Add(bboxMax).Mul(0.5)
	diag := bboxMax.Sub(bboxMin)
	if math32.IsInf(diag.Len(), 0) || math32.IsNaN(diag.Len()) {
		return camera.DefaultCamera()
	}

	var eye mgl32.Vec3
	if diag.Z() > 0 {
		eye = center.Add(diag)
	} else {
		eye = center.Add(diag.Cross(up).Mul(2))
	}

	cam, err := camera.NewCamera(eye, center, up)
	if err != nil {
		return camera.DefaultCamera()
	}
	return cam
}

// drawScene renders one frame for the given pose: propagate world transforms
// over the node forest and draw every mesh-bearing node.
func (v *Viewer) drawScene(cam camera.Camera, width, height int) {
	view := cam.ViewMatrix()

	v.renderer.BeginFrame(width, height)

	lightDir := mgl32.Vec3{0, 0, 1} // towards the viewer, in view space
	if !v.light.FromCamera {
		d := v.light.Direction()
		lightDir = view.Mul4x1(mgl32.Vec4{d.X(), d.Y(), d.Z(), 0}).Vec3().Normalize()
	}
	v.renderer.SetLight(lightDir, v.light.Intensity)

	doc := v.scene.Doc
	v.scene.Traverse(v.scene.Roots(), mgl32.Ident4(), func(nodeIdx int, world mgl32.Mat4) {
		node := doc.Nodes[nodeIdx]
		if node.Mesh != nil {
			v.renderer.DrawMesh(doc, *node.Mesh, world, view, v.proj)
		}
	})
}

// renderToFile runs the camera/traversal logic for exactly one frame against
// an offscreen target and writes the result as PNG.
func (v *Viewer) renderToFile(cam camera.Camera) error {
	w, h := v.cfg.Width, v.cfg.Height
	pixels, err := opengl.RenderToImage(w, h, func() {
		v.drawScene(cam, w, h)
	})
	if err != nil {
		return err
	}

	// GL rows come out bottom-to-top.
	images.FlipVertical(w, h, 4, pixels)
	if err := images.WritePNG(v.cfg.OutputPath, w, h, pixels); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%dx%d)\n", v.cfg.OutputPath, w, h)
	return nil
}

// loop is the interactive frame loop: draw, present, poll, update.
func (v *Viewer) loop(cam camera.Camera, speed float32) error {
	mode := camera.ModeFirstPerson
	controller := camera.NewController(mode, speed, v.worldUp)
	controller.SetCamera(cam)

	hud := newHUD(v.window)
	var switchKey, lightKey keyEdge

	for !v.window.ShouldClose() {
		frameStart := core.Time()

		width, height := v.window.GetFramebufferSize()
		current := controller.Camera()
		v.drawScene(current, width, height)

		hud.frame(mode, current)

		v.window.SwapBuffers()
		v.window.PollEvents()

		elapsed := float32(core.Time() - frameStart)

		// Switching controllers moves the camera value to the new owner.
		if switchKey.pressed(v.window.IsKeyPressed(core.KeyTab)) {
			if mode == camera.ModeFirstPerson {
				mode = camera.ModeTrackball
			} else {
				mode = camera.ModeFirstPerson
			}
			next := camera.NewController(mode, speed, v.worldUp)
			next.SetCamera(controller.Camera())
			controller = next
		}

		v.updateLight(elapsed, &lightKey)
		controller.Update(sampleInput(v.window), elapsed)
	}
	return nil
}

// updateLight applies the light-control keys: I/K tilt, J/L swing, F toggles
// following the camera.
func (v *Viewer) updateLight(elapsed float32, toggle *keyEdge) {
	const rate = 1.0
	if v.window.IsKeyPressed(core.KeyI) {
		v.light.Theta -= rate * elapsed
	}
	if v.window.IsKeyPressed(core.KeyK) {
		v.light.Theta += rate * elapsed
	}
	if v.window.IsKeyPressed(core.KeyJ) {
		v.light.Phi -= rate * elapsed
	}
	if v.window.IsKeyPressed(core.KeyL) {
		v.light.Phi += rate * elapsed
	}
	if toggle.pressed(v.window.IsKeyPressed(core.KeyF)) {
		v.light.FromCamera = !v.light.FromCamera
	}
}
