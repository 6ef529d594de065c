// Package scene holds the scene graph: meshes, materials and a flat array of
// nodes forming a transform forest. It resolves world transforms, batches
// instances for the renderer, picks nodes with rays and drives pointer
// dragging, keeping graph edges attached to the nodes they connect.
//
// The scene is owned by a single goroutine; nothing here is safe for
// concurrent use. Out-of-range ids passed to construction methods are
// programming errors and panic.
package scene

import (
	"fmt"

	"github.com/Faultbox/corridor/internal/engine/geometry"
	"github.com/Faultbox/corridor/internal/engine/picking"
	"github.com/Faultbox/corridor/pkg/math"
)

// Scene owns all meshes, materials and nodes.
type Scene struct {
	meshes    []*geometry.Mesh
	pickMesh  []picking.Triangles
	materials []Material
	nodes     []Node
	edgeRefs  []EdgeRef
	children  [][]NodeID

	// World matrix memo, valid while memoGen[i] == gen.
	world   []math.Mat4
	memoGen []uint64
	gen     uint64
	chain   []NodeID

	Picking PickingState
	ground  GroundPlane
	tester  HitTester
}

// New returns an empty scene with the ground plane at y = 0.
func New() *Scene {
	return &Scene{
		gen:     1,
		Picking: NewPickingState(),
		ground:  DefaultGroundPlane(),
		tester:  CPUHitTester{},
	}
}

// AddMesh registers a mesh and returns its id.
func (s *Scene) AddMesh(m *geometry.Mesh) MeshID {
	positions := make([]math.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = math.Vec3FromArray(v.Position)
	}
	s.meshes = append(s.meshes, m)
	s.pickMesh = append(s.pickMesh, picking.Triangles{Positions: positions, Indices: m.Indices})
	return MeshID(len(s.meshes) - 1)
}

// AddMaterial registers a material and returns its id.
func (s *Scene) AddMaterial(m Material) MaterialID {
	s.materials = append(s.materials, m)
	return MaterialID(len(s.materials) - 1)
}

// AddNode appends a node. Its mesh and material must exist and its parent,
// if any, must already be in the scene.
func (s *Scene) AddNode(n Node) NodeID {
	if n.Mesh < 0 || int(n.Mesh) >= len(s.meshes) {
		panic(fmt.Sprintf("scene: node mesh %d out of range (%d meshes)", n.Mesh, len(s.meshes)))
	}
	if n.Material < 0 || int(n.Material) >= len(s.materials) {
		panic(fmt.Sprintf("scene: node material %d out of range (%d materials)", n.Material, len(s.materials)))
	}
	if n.Parent != NoNode && !s.valid(n.Parent) {
		panic(fmt.Sprintf("scene: node parent %d out of range (%d nodes)", n.Parent, len(s.nodes)))
	}

	id := NodeID(len(s.nodes))
	s.nodes = append(s.nodes, n)
	s.edgeRefs = append(s.edgeRefs, EdgeRef{From: NoNode, To: NoNode})
	s.children = append(s.children, nil)
	s.world = append(s.world, math.Mat4{})
	s.memoGen = append(s.memoGen, 0)
	if n.Parent != NoNode {
		s.children[n.Parent] = append(s.children[n.Parent], id)
	}
	return id
}

// AddEdge appends a node that visually connects from and to.
func (s *Scene) AddEdge(n Node, from, to NodeID) NodeID {
	s.mustNode(from)
	s.mustNode(to)
	id := s.AddNode(n)
	s.edgeRefs[id] = EdgeRef{From: from, To: to}
	return id
}

// Reparent moves id under parent, or makes it a root when parent is NoNode.
// It fails with ErrCycle if parent is id or one of its descendants.
func (s *Scene) Reparent(id, parent NodeID) error {
	if !s.valid(id) {
		return fmt.Errorf("reparent %d: %w", id, ErrInvalidNode)
	}
	if parent != NoNode && !s.valid(parent) {
		return fmt.Errorf("reparent %d under %d: %w", id, parent, ErrInvalidNode)
	}
	for p := parent; p != NoNode; p = s.nodes[p].Parent {
		if p == id {
			return fmt.Errorf("reparent %d under %d: %w", id, parent, ErrCycle)
		}
	}

	if old := s.nodes[id].Parent; old != NoNode {
		s.children[old] = removeID(s.children[old], id)
	}
	s.nodes[id].Parent = parent
	if parent != NoNode {
		s.children[parent] = append(s.children[parent], id)
	}
	s.invalidate()
	return nil
}

func removeID(ids []NodeID, id NodeID) []NodeID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// NodeCount returns the number of nodes.
func (s *Scene) NodeCount() int {
	return len(s.nodes)
}

// Node returns a copy of node id.
func (s *Scene) Node(id NodeID) Node {
	s.mustNode(id)
	return s.nodes[id]
}

// Nodes returns the node array. Callers must not modify it.
func (s *Scene) Nodes() []Node {
	return s.nodes
}

// Meshes returns the mesh table.
func (s *Scene) Meshes() []*geometry.Mesh {
	return s.meshes
}

// Mesh returns mesh id.
func (s *Scene) Mesh(id MeshID) *geometry.Mesh {
	return s.meshes[id]
}

// Materials returns the material table.
func (s *Scene) Materials() []Material {
	return s.materials
}

// EdgeRef returns the endpoints of an edge node.
func (s *Scene) EdgeRef(id NodeID) (EdgeRef, bool) {
	s.mustNode(id)
	ref := s.edgeRefs[id]
	return ref, ref.From != NoNode
}

// EdgeCount returns the number of edge nodes.
func (s *Scene) EdgeCount() int {
	n := 0
	for _, ref := range s.edgeRefs {
		if ref.From != NoNode {
			n++
		}
	}
	return n
}

// VertexCount returns the vertices drawn across all node instances.
func (s *Scene) VertexCount() int {
	total := 0
	for _, n := range s.nodes {
		total += len(s.meshes[n.Mesh].Vertices)
	}
	return total
}

// SetLocalTransform replaces the local transform of id.
func (s *Scene) SetLocalTransform(id NodeID, t Transform) {
	s.mustNode(id)
	s.nodes[id].Local = t
	s.invalidate()
}

// SetPosition replaces the local position of id.
func (s *Scene) SetPosition(id NodeID, p math.Vec3) {
	s.mustNode(id)
	s.nodes[id].Local.Position = p
	s.invalidate()
}

func (s *Scene) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(s.nodes)
}

func (s *Scene) mustNode(id NodeID) {
	if !s.valid(id) {
		panic(fmt.Sprintf("scene: node %d out of range (%d nodes)", id, len(s.nodes)))
	}
}
