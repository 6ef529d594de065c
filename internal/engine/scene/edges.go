package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/corridor/pkg/math"
)

// EdgeTransform stretches a unit line segment along X so it spans from and
// to: centred on the midpoint, scaled to the distance, and yawed about Y.
func EdgeTransform(from, to math.Vec3) Transform {
	d := to.Sub(from)
	return Transform{
		Position: from.Add(to).Scale(0.5),
		Rotation: math.QuatFromYaw(math32.Atan2(-d.Z, d.X)),
		Scale:    math.Vec3{X: d.Length(), Y: 1, Z: 1},
	}
}

// affectedBy returns the nodes whose edges must follow a move of id: id and
// all its descendants for a root, otherwise id alone.
func (s *Scene) affectedBy(id NodeID) map[NodeID]bool {
	set := map[NodeID]bool{id: true}
	if s.nodes[id].IsRoot() {
		for _, d := range s.Descendants(id) {
			set[d] = true
		}
	}
	return set
}

// AttachedEdges returns the edge nodes that follow a move of id.
func (s *Scene) AttachedEdges(id NodeID) []NodeID {
	s.mustNode(id)
	affected := s.affectedBy(id)
	var out []NodeID
	for i, ref := range s.edgeRefs {
		if ref.From != NoNode && ref.Touches(affected) {
			out = append(out, NodeID(i))
		}
	}
	return out
}

// SyncEdges recomputes every edge attached to moved (or, for a root, to any
// of its descendants) from the endpoints' world positions. It returns the
// number of edges updated.
func (s *Scene) SyncEdges(moved NodeID) int {
	edges := s.AttachedEdges(moved)
	for _, id := range edges {
		ref := s.edgeRefs[id]
		s.SetLocalTransform(id, EdgeTransform(s.WorldPosition(ref.From), s.WorldPosition(ref.To)))
	}
	return len(edges)
}
