package scene

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
)

// Visitor receives each reachable node index together with its world
// transform. Parents are always visited before their children.
type Visitor func(nodeIdx int, world mgl32.Mat4)

// Traverse walks the node forest starting at roots, accumulating world
// transforms against parent, and calls visit for every reachable node in
// pre-order. It is stateless and re-entrant.
//
// The walk uses an explicit work list instead of call-stack recursion, so
// arbitrarily deep graphs cannot overflow the stack. Node indices already
// visited in this traversal are skipped with a warning: the glTF format
// forbids cycles but nothing validates that at load time.
func (s *Scene) Traverse(roots []int, parent mgl32.Mat4, visit Visitor) {
	type item struct {
		nodeIdx int
		parent  mgl32.Mat4
	}

	doc := s.Doc
	visited := make(map[int]bool, len(doc.Nodes))

	// Roots are pushed in reverse so they pop in order; same for children.
	stack := make([]item, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, item{roots[i], parent})
	}

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if it.nodeIdx < 0 || it.nodeIdx >= len(doc.Nodes) {
			log.Printf("scene: node index %d out of range, skipping", it.nodeIdx)
			continue
		}
		if visited[it.nodeIdx] {
			log.Printf("scene: node %d reached twice (cycle or shared subtree), skipping", it.nodeIdx)
			continue
		}
		visited[it.nodeIdx] = true

		node := doc.Nodes[it.nodeIdx]
		world := LocalToWorld(node, it.parent)
		visit(it.nodeIdx, world)

		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{node.Children[i], world})
		}
	}
}
