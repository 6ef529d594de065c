package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/corridor/internal/engine/geometry"
	"github.com/Faultbox/corridor/pkg/math"
)

// Demo mesh ids.
const (
	DemoCubeMesh MeshID = iota
	DemoQuadMesh
	DemoLineMesh
)

// Demo material ids.
const (
	Red MaterialID = iota
	Blue
	Green
	Gray
	Black
	Yellow
	Cyan
	Magenta
	White
)

// Demo builds a small showcase scene: a ground quad, colored cubes, a grid
// of line segments and a three-level hierarchy.
func Demo() *Scene {
	s := New()
	s.AddMesh(geometry.Cube())
	s.AddMesh(geometry.Quad())
	s.AddMesh(geometry.LineSegment(0.05))

	s.AddMaterial(RGB("red", 1, 0, 0))
	s.AddMaterial(RGB("blue", 0, 0, 1))
	s.AddMaterial(RGB("green", 0, 1, 0))
	s.AddMaterial(RGB("gray", 0.5, 0.5, 0.5))
	s.AddMaterial(RGB("black", 0, 0, 0))
	s.AddMaterial(RGB("yellow", 1, 1, 0))
	s.AddMaterial(RGB("cyan", 0, 1, 1))
	s.AddMaterial(RGB("magenta", 1, 0, 1))
	s.AddMaterial(RGB("white", 1, 1, 1))

	ground := IdentityTransform()
	ground.Scale = math.Vec3{X: 10, Y: 1, Z: 10}
	s.AddNode(NewNode(DemoQuadMesh, Gray, ground, true))

	cubes := []struct {
		pos   math.Vec3
		scale float32
		mat   MaterialID
	}{
		{math.Vec3{X: -2, Y: 0.5}, 1, Red},
		{math.Vec3{X: 2, Y: 0.5}, 1, Blue},
		{math.Vec3{Y: 1, Z: 2}, 0.5, Green},
		{math.Vec3{X: -4, Y: 0.3, Z: -3}, 0.6, Red},
		{math.Vec3{X: 4, Y: 0.3, Z: -3}, 0.6, Blue},
		{math.Vec3{Y: 0.3, Z: -4}, 0.6, Green},
	}
	for _, c := range cubes {
		s.AddNode(NewNode(DemoCubeMesh, c.mat, At(c.pos, c.scale), true))
	}

	// Grid lines just above the ground.
	for i := -2; i <= 2; i++ {
		offset := float32(i) * 2
		alongX := Transform{
			Position: math.Vec3{Y: 0.01, Z: offset},
			Rotation: math.QuatIdentity(),
			Scale:    math.Vec3{X: 8, Y: 1, Z: 1},
		}
		alongZ := Transform{
			Position: math.Vec3{X: offset, Y: 0.01},
			Rotation: math.QuatFromYaw(math32.Pi / 2),
			Scale:    math.Vec3{X: 8, Y: 1, Z: 1},
		}
		s.AddNode(NewNode(DemoLineMesh, Black, alongX, true))
		s.AddNode(NewNode(DemoLineMesh, Black, alongZ, true))
	}

	parent := s.AddNode(NewNode(DemoCubeMesh, Yellow, At(math.Vec3{Y: 1.5, Z: -2}, 1), true))
	left := s.AddNode(NewNode(DemoCubeMesh, Cyan, At(math.Vec3{X: 1.5}, 0.5), true).WithParent(parent))
	s.AddNode(NewNode(DemoCubeMesh, Magenta, At(math.Vec3{X: -1.5}, 0.5), true).WithParent(parent))
	s.AddNode(NewNode(DemoCubeMesh, White, At(math.Vec3{Y: 1}, 0.3), true).WithParent(left))

	return s
}
