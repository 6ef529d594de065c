package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/corridor/pkg/math"
)

// faceNormal returns (b-a)x(c-a), normalized.
func faceNormal(m *Mesh, i int) math.Vec3 {
	a, b, c := m.Triangle(i)
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

func TestCubeCounts(t *testing.T) {
	m := Cube()
	assert.Len(t, m.Vertices, 24)
	assert.Len(t, m.Indices, 36)
	assert.Equal(t, 12, m.TriangleCount())
}

func TestCubeWindingFacesOutward(t *testing.T) {
	m := Cube()
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		center := a.Add(b).Add(c).Scale(1.0 / 3)
		n := faceNormal(m, i)
		assert.Greater(t, n.Dot(center), float32(0), "triangle %d faces inward", i)

		stored := math.Vec3FromArray(m.Vertices[m.Indices[i*3]].Normal)
		assert.True(t, n.ApproxEqual(stored, 1e-6), "triangle %d: winding %v, stored normal %v", i, n, stored)
	}
}

func TestCubeBounds(t *testing.T) {
	min, max := Cube().Bounds()
	assert.Equal(t, math.Vec3{X: -0.5, Y: -0.5, Z: -0.5}, min)
	assert.Equal(t, math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, max)
}

func TestFlatMeshesFaceUp(t *testing.T) {
	for _, m := range []*Mesh{Quad(), LineSegment(0.125)} {
		require.Equal(t, 2, m.TriangleCount(), m.Name)
		for i := 0; i < m.TriangleCount(); i++ {
			n := faceNormal(m, i)
			assert.True(t, n.ApproxEqual(math.Vec3Up, 1e-6), "%s triangle %d normal %v", m.Name, i, n)
		}
	}
}

func TestLineSegmentWidth(t *testing.T) {
	min, max := LineSegment(0.2).Bounds()
	assert.InDelta(t, 1.0, max.X-min.X, 1e-6)
	assert.InDelta(t, 0.2, max.Z-min.Z, 1e-6)
	assert.Equal(t, float32(0), max.Y-min.Y)
}

func TestEmptyMeshBounds(t *testing.T) {
	min, max := (&Mesh{}).Bounds()
	assert.Equal(t, math.Vec3{}, min)
	assert.Equal(t, math.Vec3{}, max)
}

func TestInterleaved(t *testing.T) {
	data := Quad().Interleaved()
	require.Len(t, data, 4*6)
	assert.Equal(t, []float32{-0.5, 0, -0.5, 0, 1, 0}, data[:6])
}
