package scene

import "github.com/Faultbox/corridor/pkg/math"

// Transform is a local position, rotation and scale.
type Transform struct {
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
}

// IdentityTransform returns a transform with no translation, rotation or scaling.
func IdentityTransform() Transform {
	return Transform{Rotation: math.QuatIdentity(), Scale: math.Vec3One}
}

// NewTransform builds a transform from a position, Euler angles in radians
// and a scale.
func NewTransform(position, euler, scale math.Vec3) Transform {
	return Transform{
		Position: position,
		Rotation: math.QuatFromEuler(euler.X, euler.Y, euler.Z),
		Scale:    scale,
	}
}

// At returns an unrotated transform at position with uniform scale s.
func At(position math.Vec3, s float32) Transform {
	return Transform{Position: position, Rotation: math.QuatIdentity(), Scale: math.Vec3{X: s, Y: s, Z: s}}
}

// Matrix returns T * R * S. The rotation is normalized first.
func (t Transform) Matrix() math.Mat4 {
	return math.FromTRS(t.Position, t.Rotation.Normalize(), t.Scale)
}

// Combine returns parent * t.Matrix().
func (t Transform) Combine(parent math.Mat4) math.Mat4 {
	return parent.Mul(t.Matrix())
}
