package scene

import (
	"log"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf/modeler"
)

// Bounds computes the axis-aligned bounding box of every drawable vertex in
// the scene, in world space. Primitives without a POSITION attribute are
// skipped silently; primitives whose index buffer cannot be decoded are
// skipped with a warning. An empty scene yields a (+Inf, -Inf) box.
func (s *Scene) Bounds() (bboxMin, bboxMax mgl32.Vec3) {
	inf := math32.Inf(1)
	bboxMin = mgl32.Vec3{inf, inf, inf}
	bboxMax = mgl32.Vec3{-inf, -inf, -inf}

	doc := s.Doc
	s.Traverse(s.Roots(), mgl32.Ident4(), func(nodeIdx int, world mgl32.Mat4) {
		node := doc.Nodes[nodeIdx]
		if node.Mesh == nil || *node.Mesh >= len(doc.Meshes) {
			return
		}
		for pi, prim := range doc.Meshes[*node.Mesh].Primitives {
			posIdx, ok := prim.Attributes["POSITION"]
			if !ok {
				continue
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				log.Printf("scene: mesh %d prim %d positions: %v, skipping", *node.Mesh, pi, err)
				continue
			}

			fold := func(p [3]float32) {
				w := world.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1})
				bboxMin = mgl32.Vec3{
					math32.Min(bboxMin.X(), w.X()),
					math32.Min(bboxMin.Y(), w.Y()),
					math32.Min(bboxMin.Z(), w.Z()),
				}
				bboxMax = mgl32.Vec3{
					math32.Max(bboxMax.X(), w.X()),
					math32.Max(bboxMax.Y(), w.Y()),
					math32.Max(bboxMax.Z(), w.Z()),
				}
			}

			if prim.Indices != nil {
				indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					log.Printf("scene: mesh %d prim %d indices: %v, skipping", *node.Mesh, pi, err)
					continue
				}
				for _, idx := range indices {
					if int(idx) < len(positions) {
						fold(positions[idx])
					}
				}
			} else {
				for _, p := range positions {
					fold(p)
				}
			}
		}
	})
	return bboxMin, bboxMax
}
