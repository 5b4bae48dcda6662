package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// Scene wraps a parsed glTF document. The document is read-only from this
// package's point of view: traversal and bounds only ever look at it.
type Scene struct {
	Doc  *gltf.Document
	Path string
}

// Load opens a .glb or .gltf file and wraps the parsed document.
func Load(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	return &Scene{Doc: doc, Path: path}, nil
}

// Roots returns the node indices the traversal starts from: the default
// scene's nodes, or every parentless node when no default scene is set.
func (s *Scene) Roots() []int {
	doc := s.Doc
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}

	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// LocalToWorld returns the world transform of a node given its parent's
// world transform. A node with an explicit matrix contributes it verbatim;
// otherwise the translation/rotation/scale triple composes as T*R*S per the
// glTF transformation rules, with identity defaults for absent components.
func LocalToWorld(n *gltf.Node, parent mgl32.Mat4) mgl32.Mat4 {
	if m := n.MatrixOrDefault(); m != gltf.DefaultMatrix {
		var local mgl32.Mat4
		for i, v := range m {
			local[i] = float32(v)
		}
		return parent.Mul4(local)
	}

	t := n.TranslationOrDefault()
	r := n.RotationOrDefault() // x, y, z, w
	sc := n.ScaleOrDefault()

	world := parent.Mul4(mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])))
	world = world.Mul4(mgl32.Quat{
		W: float32(r[3]),
		V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])},
	}.Mat4())
	return world.Mul4(mgl32.Scale3D(float32(sc[0]), float32(sc[1]), float32(sc[2])))
}
