package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/corridor/internal/engine/picking"
	"github.com/Faultbox/corridor/pkg/math"
)

var towardNegZ = picking.Ray{Origin: math.Vec3{X: 0.1, Y: 0.2, Z: 10}, Direction: math.Vec3{Z: -1}}

func TestPickClosestRegardlessOfOrder(t *testing.T) {
	near := At(math.Vec3{Z: 3}, 1)
	far := At(math.Vec3{Z: 0}, 1)

	for _, order := range [][]Transform{{near, far}, {far, near}} {
		s := newTestScene()
		ids := make([]NodeID, len(order))
		for i, tr := range order {
			ids[i] = s.AddNode(NewNode(0, 0, tr, true))
		}

		got, ok := s.Pick(towardNegZ)
		require.True(t, ok)
		assert.Equal(t, near, s.Node(got).Local)
	}
}

func TestPickSkipsUnselectable(t *testing.T) {
	s := newTestScene()
	s.AddNode(NewNode(0, 0, At(math.Vec3{Z: 3}, 1), false))
	back := s.AddNode(NewNode(0, 0, At(math.Vec3{}, 1), true))

	got, ok := s.Pick(towardNegZ)
	require.True(t, ok)
	assert.Equal(t, back, got)
}

func TestPickMiss(t *testing.T) {
	s := newTestScene()
	s.AddNode(NewNode(0, 0, At(math.Vec3{X: 5}, 1), true))

	got, ok := s.Pick(towardNegZ)
	assert.False(t, ok)
	assert.Equal(t, NoNode, got)
}

func TestPickUsesWorldTransform(t *testing.T) {
	s := newTestScene()
	parent := s.AddNode(NewNode(0, 0, At(math.Vec3{X: 5}, 1), false))
	child := s.AddNode(NewNode(0, 0, At(math.Vec3{X: -5}, 1), true).WithParent(parent))

	got, ok := s.Pick(towardNegZ)
	require.True(t, ok)
	assert.Equal(t, child, got)
}

func TestPickFlatQuadFromBelowIsCulled(t *testing.T) {
	s := newTestScene()
	s.AddNode(NewNode(1, 0, IdentityTransform(), true))

	down := picking.Ray{Origin: math.Vec3{X: 0.2, Y: 5, Z: 0.1}, Direction: math.Vec3{Y: -1}}
	_, ok := s.Pick(down)
	assert.True(t, ok)

	up := picking.Ray{Origin: math.Vec3{X: 0.2, Y: -5, Z: 0.1}, Direction: math.Vec3{Y: 1}}
	_, ok = s.Pick(up)
	assert.False(t, ok)
}

func TestWorldAABB(t *testing.T) {
	s := newTestScene()
	id := s.AddNode(NewNode(0, 0, At(math.Vec3{X: 1, Y: 2, Z: 3}, 2), true))
	box := s.WorldAABB(id)
	assert.Equal(t, math.Vec3{X: 0, Y: 1, Z: 2}, box.Min)
	assert.Equal(t, math.Vec3{X: 2, Y: 3, Z: 4}, box.Max)
}

func TestBounds(t *testing.T) {
	s := newTestScene()
	_, ok := s.Bounds()
	assert.False(t, ok)

	s.AddNode(NewNode(0, 0, At(math.Vec3{X: -3}, 1), false))
	s.AddNode(NewNode(0, 0, At(math.Vec3{Y: 4}, 2), true))
	box, ok := s.Bounds()
	require.True(t, ok)
	assert.Equal(t, math.Vec3{X: -3.5, Y: -0.5, Z: -1}, box.Min)
	assert.Equal(t, math.Vec3{X: 1, Y: 5, Z: 1}, box.Max)
}

type stubReadback struct{ id uint32 }

func (r *stubReadback) Submit(int, int) error      { return nil }
func (r *stubReadback) Poll() (uint32, bool, error) { return r.id, true, nil }

func TestGPUHitTester(t *testing.T) {
	s := newTestScene()
	s.AddNode(NewNode(0, 0, IdentityTransform(), false))
	sel := s.AddNode(NewNode(0, 0, IdentityTransform(), true))

	rb := &stubReadback{id: picking.EncodeID(int(sel))}
	buf := picking.NewIDBuffer(rb)
	s.SetHitTester(GPUHitTester{Buffer: buf})

	// Nothing resolved yet.
	assert.False(t, s.PointerMoved(1, 1, topDown{}))
	assert.Equal(t, NoNode, s.Picking.Hovered)

	require.NoError(t, buf.Update())
	require.NoError(t, buf.Update())
	s.PointerMoved(1, 1, topDown{})
	assert.Equal(t, sel, s.Picking.Hovered)

	// Ids of unselectable nodes are ignored.
	rb.id = picking.EncodeID(0)
	require.NoError(t, buf.Update())
	require.NoError(t, buf.Update())
	s.PointerMoved(1, 1, topDown{})
	assert.Equal(t, NoNode, s.Picking.Hovered)

	s.SetHitTester(nil)
	assert.IsType(t, CPUHitTester{}, s.tester)
}
