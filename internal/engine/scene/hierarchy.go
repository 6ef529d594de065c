package scene

import (
	"fmt"

	"github.com/Faultbox/corridor/pkg/math"
)

// BeginFrame drops every memoized world matrix.
func (s *Scene) BeginFrame() {
	s.invalidate()
}

func (s *Scene) invalidate() {
	s.gen++
}

// WorldTransform returns the world matrix of id: its local matrix for a
// root, otherwise parentWorld * local. Results are memoized until the next
// mutation or BeginFrame.
func (s *Scene) WorldTransform(id NodeID) math.Mat4 {
	s.mustNode(id)
	if s.memoGen[id] == s.gen {
		return s.world[id]
	}

	// Walk up to the first root or memoized ancestor.
	chain := s.chain[:0]
	base := math.Identity()
	haveBase := false
	for cur := id; ; {
		if len(chain) > len(s.nodes) {
			panic(fmt.Sprintf("scene: parent chain of node %d does not terminate", id))
		}
		if s.memoGen[cur] == s.gen {
			base = s.world[cur]
			haveBase = true
			break
		}
		chain = append(chain, cur)
		parent := s.nodes[cur].Parent
		if parent == NoNode {
			break
		}
		if !s.valid(parent) {
			panic(fmt.Sprintf("scene: node %d has parent %d out of range", cur, parent))
		}
		cur = parent
	}

	// Resolve downwards from the top of the chain.
	for i := len(chain) - 1; i >= 0; i-- {
		n := chain[i]
		var world math.Mat4
		if haveBase {
			world = s.nodes[n].Local.Combine(base)
		} else {
			world = s.nodes[n].Local.Matrix()
		}
		s.world[n] = world
		s.memoGen[n] = s.gen
		base = world
		haveBase = true
	}
	s.chain = chain
	return s.world[id]
}

// WorldPosition returns the world-space origin of id.
func (s *Scene) WorldPosition(id NodeID) math.Vec3 {
	return s.WorldTransform(id).Translation()
}

// Children returns the direct children of id in insertion order.
func (s *Scene) Children(id NodeID) []NodeID {
	s.mustNode(id)
	return s.children[id]
}

// Descendants returns every node below id, depth first.
func (s *Scene) Descendants(id NodeID) []NodeID {
	s.mustNode(id)
	var out []NodeID
	stack := append([]NodeID(nil), s.children[id]...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, n)
		stack = append(stack, s.children[n]...)
	}
	return out
}

// Depth returns the number of ancestors of id.
func (s *Scene) Depth(id NodeID) int {
	s.mustNode(id)
	depth := 0
	for p := s.nodes[id].Parent; p != NoNode; p = s.nodes[p].Parent {
		depth++
		if depth > len(s.nodes) {
			panic(fmt.Sprintf("scene: parent chain of node %d does not terminate", id))
		}
	}
	return depth
}
