package scene

import (
	"github.com/Faultbox/corridor/internal/engine/picking"
)

// WorldAABB returns the world-space bounds of node id's mesh.
func (s *Scene) WorldAABB(id NodeID) picking.AABB {
	s.mustNode(id)
	return picking.ComputeAABB(s.pickMesh[s.nodes[id].Mesh].Positions, s.WorldTransform(id))
}

// Bounds returns the world-space box around every node. ok is false for an
// empty scene.
func (s *Scene) Bounds() (box picking.AABB, ok bool) {
	for i := range s.nodes {
		b := s.WorldAABB(NodeID(i))
		if !ok {
			box, ok = b, true
			continue
		}
		box.Min = box.Min.Min(b.Min)
		box.Max = box.Max.Max(b.Max)
	}
	return box, ok
}

// Pick returns the selectable node whose front-facing geometry the ray hits
// closest to its origin. Equal distances keep the earlier node.
func (s *Scene) Pick(ray picking.Ray) (NodeID, bool) {
	best := NoNode
	var bestT float32

	for i, n := range s.nodes {
		if !n.Selectable {
			continue
		}
		id := NodeID(i)
		model := s.WorldTransform(id)
		tri := s.pickMesh[n.Mesh]

		if _, ok := ray.IntersectAABB(picking.ComputeAABB(tri.Positions, model)); !ok {
			continue
		}
		t, ok := ray.IntersectMesh(tri, model)
		if !ok {
			continue
		}
		if best == NoNode || t < bestT {
			best, bestT = id, t
		}
	}
	return best, best != NoNode
}

// HitTester finds the node under the pointer. x, y are pointer coordinates
// and ray is the camera ray through them.
type HitTester interface {
	HitTest(s *Scene, x, y float32, ray picking.Ray) (NodeID, bool)
}

// CPUHitTester picks analytically against CPU-side mesh data.
type CPUHitTester struct{}

// HitTest implements HitTester.
func (CPUHitTester) HitTest(s *Scene, _, _ float32, ray picking.Ray) (NodeID, bool) {
	return s.Pick(ray)
}

// GPUHitTester picks through an id buffer. Each call requests the pixel under
// the pointer and answers with the latest resolved readback, so results trail
// the pointer by a few frames.
type GPUHitTester struct {
	Buffer *picking.IDBuffer
}

// HitTest implements HitTester.
func (g GPUHitTester) HitTest(s *Scene, x, y float32, _ picking.Ray) (NodeID, bool) {
	g.Buffer.Request(int(x), int(y))
	n, ok := g.Buffer.Result()
	if !ok {
		return NoNode, false
	}
	id := NodeID(n)
	if !s.valid(id) || !s.nodes[id].Selectable {
		return NoNode, false
	}
	return id, true
}

// SetHitTester selects the hover strategy. nil restores CPU picking.
func (s *Scene) SetHitTester(h HitTester) {
	if h == nil {
		h = CPUHitTester{}
	}
	s.tester = h
}
