package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/corridor/pkg/math"
)

// IntersectTriangle runs the Moller-Trumbore test against triangle (a, b, c).
// Only the front face, counter-clockwise as seen by the ray, can be hit.
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)

	// Back faces and edge-on triangles are not pickable.
	if e1.Cross(e2).Dot(r.Direction) >= 0 {
		return 0, false
	}

	h := r.Direction.Cross(e2)
	det := e1.Dot(h)
	if math32.Abs(det) < Epsilon {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := inv * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := inv * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := inv * e2.Dot(q)
	if t <= Epsilon {
		return 0, false
	}
	return t, true
}

// Triangles is an indexed triangle list in local space.
type Triangles struct {
	Positions []math.Vec3
	Indices   []uint32
}

// IntersectMesh transforms every triangle by model and returns the closest
// front-face hit distance.
func (r Ray) IntersectMesh(mesh Triangles, model math.Mat4) (float32, bool) {
	best := float32(math32.MaxFloat32)
	hit := false
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a := model.TransformPoint(mesh.Positions[mesh.Indices[i]])
		b := model.TransformPoint(mesh.Positions[mesh.Indices[i+1]])
		c := model.TransformPoint(mesh.Positions[mesh.Indices[i+2]])
		if t, ok := r.IntersectTriangle(a, b, c); ok && t < best {
			best = t
			hit = true
		}
	}
	return best, hit
}
