package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/corridor/pkg/math"
)

// Counter-clockwise seen from +Z.
var (
	triA = math.Vec3{}
	triB = math.Vec3{X: 1}
	triC = math.Vec3{Y: 1}
)

func TestIntersectTriangleFront(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 0.25, Y: 0.25, Z: 1}, Direction: math.Vec3{Z: -1}}
	d, ok := r.IntersectTriangle(triA, triB, triC)
	require.True(t, ok)
	assert.InDelta(t, 1, d, 1e-6)
}

func TestIntersectTriangleBackFaceCulled(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 0.25, Y: 0.25, Z: -1}, Direction: math.Vec3{Z: 1}}
	_, ok := r.IntersectTriangle(triA, triB, triC)
	assert.False(t, ok)

	// Flipping the winding makes the same ray front-facing.
	d, ok := r.IntersectTriangle(triA, triC, triB)
	require.True(t, ok)
	assert.InDelta(t, 1, d, 1e-6)
}

func TestIntersectTriangleOutside(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 0.8, Y: 0.8, Z: 1}, Direction: math.Vec3{Z: -1}}
	_, ok := r.IntersectTriangle(triA, triB, triC)
	assert.False(t, ok)
}

func TestIntersectTriangleBehindOrigin(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 0.25, Y: 0.25, Z: -1}, Direction: math.Vec3{Z: -1}}
	_, ok := r.IntersectTriangle(triA, triB, triC)
	assert.False(t, ok)
}

func TestIntersectTriangleParallel(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: -1, Y: 0.25}, Direction: math.Vec3{X: 1}}
	_, ok := r.IntersectTriangle(triA, triB, triC)
	assert.False(t, ok)
}

func TestIntersectMeshClosest(t *testing.T) {
	// Two stacked copies of the triangle at z=0 and z=0.5.
	mesh := Triangles{
		Positions: []math.Vec3{triA, triB, triC, {Z: 0.5}, {X: 1, Z: 0.5}, {Y: 1, Z: 0.5}},
		Indices:   []uint32{0, 1, 2, 3, 4, 5},
	}
	r := Ray{Origin: math.Vec3{X: 0.25, Y: 0.25, Z: 2}, Direction: math.Vec3{Z: -1}}
	d, ok := r.IntersectMesh(mesh, math.Identity())
	require.True(t, ok)
	assert.InDelta(t, 1.5, d, 1e-6)

	// Moving the mesh moves the hit.
	d, ok = r.IntersectMesh(mesh, math.Translate(math.Vec3{Z: -1}))
	require.True(t, ok)
	assert.InDelta(t, 2.5, d, 1e-6)
}
