// Package geometry builds the procedural meshes drawn by the renderer.
//
// All meshes use counter-clockwise winding when viewed from outside, so the
// face normal (b-a)x(c-a) points away from the surface.
package geometry

import "github.com/Faultbox/corridor/pkg/math"

// Vertex is a single mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// VertexStride is the size of one Vertex in bytes.
const VertexStride = 6 * 4

// Mesh is an indexed triangle list.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the corner positions of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c math.Vec3) {
	a = math.Vec3FromArray(m.Vertices[m.Indices[i*3]].Position)
	b = math.Vec3FromArray(m.Vertices[m.Indices[i*3+1]].Position)
	c = math.Vec3FromArray(m.Vertices[m.Indices[i*3+2]].Position)
	return a, b, c
}

// Bounds returns the local axis-aligned bounds of all vertices.
func (m *Mesh) Bounds() (min, max math.Vec3) {
	if len(m.Vertices) == 0 {
		return math.Vec3{}, math.Vec3{}
	}
	min = math.Vec3FromArray(m.Vertices[0].Position)
	max = min
	for _, v := range m.Vertices[1:] {
		p := math.Vec3FromArray(v.Position)
		min = min.Min(p)
		max = max.Max(p)
	}
	return min, max
}

// Interleaved returns the vertex data packed as position then normal.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*6)
	for _, v := range m.Vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Normal[:]...)
	}
	return out
}

// face appends a quad given in counter-clockwise order.
func (m *Mesh) face(normal [3]float32, corners [4][3]float32) {
	base := uint32(len(m.Vertices))
	for _, p := range corners {
		m.Vertices = append(m.Vertices, Vertex{Position: p, Normal: normal})
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

// Cube returns a unit cube centered at the origin with 24 vertices and
// 36 indices, four vertices per face so each face has a flat normal.
func Cube() *Mesh {
	const h = 0.5
	m := &Mesh{Name: "cube"}
	m.face([3]float32{0, 0, 1}, [4][3]float32{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}})
	m.face([3]float32{0, 0, -1}, [4][3]float32{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}})
	m.face([3]float32{0, 1, 0}, [4][3]float32{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}})
	m.face([3]float32{0, -1, 0}, [4][3]float32{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}})
	m.face([3]float32{1, 0, 0}, [4][3]float32{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}})
	m.face([3]float32{-1, 0, 0}, [4][3]float32{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}})
	return m
}

// Quad returns a unit square in the XZ plane facing +Y.
func Quad() *Mesh {
	return flat("quad", 1)
}

// LineSegment returns a thin flat strip of unit length along X and the given
// width along Z, facing +Y. Edge transforms stretch it between endpoints.
func LineSegment(width float32) *Mesh {
	return flat("line_segment", width)
}

func flat(name string, depth float32) *Mesh {
	const hx = 0.5
	hz := depth / 2
	return &Mesh{
		Name: name,
		Vertices: []Vertex{
			{Position: [3]float32{-hx, 0, -hz}, Normal: [3]float32{0, 1, 0}},
			{Position: [3]float32{hx, 0, -hz}, Normal: [3]float32{0, 1, 0}},
			{Position: [3]float32{hx, 0, hz}, Normal: [3]float32{0, 1, 0}},
			{Position: [3]float32{-hx, 0, hz}, Normal: [3]float32{0, 1, 0}},
		},
		Indices: []uint32{0, 2, 1, 0, 3, 2},
	}
}
