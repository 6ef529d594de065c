package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/corridor/pkg/math"
)

var unitBox = AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

func TestIntersectAABBHit(t *testing.T) {
	r := Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}
	d, ok := r.IntersectAABB(unitBox)
	require.True(t, ok)
	assert.InDelta(t, 4, d, 1e-5)
}

func TestIntersectAABBMiss(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 5, Y: 5, Z: 5}, Direction: math.Vec3{X: 1}}
	_, ok := r.IntersectAABB(unitBox)
	assert.False(t, ok)
}

func TestIntersectAABBBehind(t *testing.T) {
	r := Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: 1}}
	_, ok := r.IntersectAABB(unitBox)
	assert.False(t, ok)
}

func TestIntersectAABBInside(t *testing.T) {
	r := Ray{Origin: math.Vec3{}, Direction: math.Vec3{Y: 1}}
	d, ok := r.IntersectAABB(unitBox)
	require.True(t, ok)
	assert.Equal(t, float32(0), d)
}

func TestIntersectAABBParallelOutside(t *testing.T) {
	// Parallel to X but above the box.
	r := Ray{Origin: math.Vec3{X: -5, Y: 2}, Direction: math.Vec3{X: 1}}
	_, ok := r.IntersectAABB(unitBox)
	assert.False(t, ok)
}

func TestIntersectAABBDegenerate(t *testing.T) {
	// A zero-size box has an empty slab interval on the parallel axes.
	r := Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}
	_, ok := r.IntersectAABB(AABB{})
	assert.False(t, ok)
}

func TestComputeAABB(t *testing.T) {
	verts := []math.Vec3{{X: -1, Y: 0, Z: 0}, {X: 1, Y: 2, Z: 0}, {X: 0, Y: 0, Z: 3}}
	box := ComputeAABB(verts, math.Translate(math.Vec3{X: 10}))
	assert.Equal(t, math.Vec3{X: 9, Y: 0, Z: 0}, box.Min)
	assert.Equal(t, math.Vec3{X: 11, Y: 2, Z: 3}, box.Max)
	assert.Equal(t, math.Vec3{X: 10, Y: 1, Z: 1.5}, box.Center())
}

func TestComputeAABBEmpty(t *testing.T) {
	box := ComputeAABB(nil, math.Translate(math.Vec3{X: 10}))
	assert.Equal(t, AABB{}, box)
}

func TestIntersectPlane(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 1, Y: 4, Z: 2}, Direction: math.Vec3{Y: -1}}
	p, ok := r.IntersectPlaneY(0)
	require.True(t, ok)
	assert.Equal(t, math.Vec3{X: 1, Y: 0, Z: 2}, p)
}

func TestIntersectPlaneParallel(t *testing.T) {
	r := Ray{Origin: math.Vec3{Y: 4}, Direction: math.Vec3{X: 1}}
	_, ok := r.IntersectPlaneY(0)
	assert.False(t, ok)
}

func TestIntersectPlaneBehind(t *testing.T) {
	r := Ray{Origin: math.Vec3{Y: 4}, Direction: math.Vec3{Y: 1}}
	_, ok := r.IntersectPlaneY(0)
	assert.False(t, ok)
}

func TestScreenToRayCenter(t *testing.T) {
	view := math.LookAt(math.Vec3{Z: 5}, math.Vec3{}, math.Vec3Up)
	proj := math.Perspective(0.8, 1, 0.1, 100)
	inv := proj.Mul(view).Inverse()

	r := ScreenToRay(50, 50, 100, 100, inv)
	assert.True(t, r.Direction.ApproxEqual(math.Vec3{Z: -1}, 1e-4), "direction %v", r.Direction)
	assert.InDelta(t, 4.9, r.Origin.Z, 1e-3)
}
