// Package picking provides ray casting and object picking utilities.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/corridor/pkg/math"
)

// Epsilon is the tolerance used by the slab and triangle tests.
const Epsilon = 1e-7

// planeEpsilon rejects rays nearly parallel to a plane.
const planeEpsilon = 1e-6

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at parametric distance t.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the box midpoint.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent on each axis.
func (b AABB) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// ComputeAABB transforms every vertex by model and returns the bounds.
// No vertices yields a degenerate box at the origin.
func ComputeAABB(vertices []math.Vec3, model math.Mat4) AABB {
	if len(vertices) == 0 {
		return AABB{}
	}
	p := model.TransformPoint(vertices[0])
	box := AABB{Min: p, Max: p}
	for _, v := range vertices[1:] {
		p = model.TransformPoint(v)
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	return box
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // Flip Y

	near := invViewProj.Project(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	far := invViewProj.Project(math.Vec3{X: ndcX, Y: ndcY, Z: 1})

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// IntersectPlane intersects the ray with the plane through point with the
// given normal. Parallel rays and hits behind the origin report false.
func (r Ray) IntersectPlane(point, normal math.Vec3) (math.Vec3, bool) {
	denom := r.Direction.Dot(normal)
	if math32.Abs(denom) < planeEpsilon {
		return math.Vec3{}, false
	}
	t := point.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return math.Vec3{}, false
	}
	return r.At(t), true
}

// IntersectPlaneY intersects the ray with a horizontal plane at height y.
func (r Ray) IntersectPlaneY(y float32) (math.Vec3, bool) {
	return r.IntersectPlane(math.Vec3{Y: y}, math.Vec3Up)
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box
// using the slab method. Returns the entry distance, or 0 if the origin is
// inside the box.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	origin := r.Origin.Array()
	dir := r.Direction.Array()
	lo := box.Min.Array()
	hi := box.Max.Array()

	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		// Near-parallel axes get a huge reciprocal instead of a division by zero.
		inv := float32(1 / Epsilon)
		if math32.Abs(dir[axis]) >= Epsilon {
			inv = 1 / dir[axis]
		}

		t1 := (lo[axis] - origin[axis]) * inv
		t2 := (hi[axis] - origin[axis]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	return math32.Max(tmin, 0), true
}
