package scene

import (
	"fmt"
	"sort"

	"github.com/Faultbox/corridor/pkg/math"
)

// Instance highlight flags.
const (
	FlagHovered  uint32 = 1 << 0
	FlagDragging uint32 = 1 << 1
)

// Instance is the per-node data uploaded to the GPU.
type Instance struct {
	Model math.Mat4
	Color [4]float32
	Flags uint32
}

// DrawBatch is one instanced draw: Count instances of Mesh starting at First.
type DrawBatch struct {
	Mesh  MeshID
	First int
	Count int
}

// RenderList is the frame's instance array and the draws that cover it.
// Instance i belongs to node Order[i].
type RenderList struct {
	Instances []Instance
	Batches   []DrawBatch
	Order     []NodeID
}

// BatchOptions controls instance ordering.
type BatchOptions struct {
	// SortByMesh stable-sorts nodes by mesh so each mesh is drawn once.
	// Without it instances follow node order and a mesh may be drawn in
	// several runs.
	SortByMesh bool
}

// Batches splits a mesh sequence into maximal runs of equal ids.
func Batches(meshes []MeshID) []DrawBatch {
	var out []DrawBatch
	for i, m := range meshes {
		if len(out) > 0 && out[len(out)-1].Mesh == m {
			out[len(out)-1].Count++
			continue
		}
		out = append(out, DrawBatch{Mesh: m, First: i, Count: 1})
	}
	return out
}

// BuildRenderList resolves every node and returns a fresh render list.
func (s *Scene) BuildRenderList(opts BatchOptions) RenderList {
	var l RenderList
	s.FillRenderList(&l, opts)
	return l
}

// FillRenderList rebuilds l in place, reusing its slices.
func (s *Scene) FillRenderList(l *RenderList, opts BatchOptions) {
	l.Order = l.Order[:0]
	for i := range s.nodes {
		l.Order = append(l.Order, NodeID(i))
	}
	if opts.SortByMesh {
		sort.SliceStable(l.Order, func(a, b int) bool {
			return s.nodes[l.Order[a]].Mesh < s.nodes[l.Order[b]].Mesh
		})
	}

	l.Instances = l.Instances[:0]
	l.Batches = l.Batches[:0]
	for i, id := range l.Order {
		n := s.nodes[id]
		if int(n.Mesh) >= len(s.meshes) || n.Mesh < 0 {
			panic(fmt.Sprintf("scene: node %d mesh %d out of range", id, n.Mesh))
		}
		l.Instances = append(l.Instances, Instance{
			Model: s.WorldTransform(id),
			Color: s.materials[n.Material].Color,
			Flags: s.Picking.flagsFor(id),
		})

		if last := len(l.Batches) - 1; last >= 0 && l.Batches[last].Mesh == n.Mesh {
			l.Batches[last].Count++
		} else {
			l.Batches = append(l.Batches, DrawBatch{Mesh: n.Mesh, First: i, Count: 1})
		}
	}
}

// NodeAt returns the node drawn by instance i.
func (l *RenderList) NodeAt(i int) NodeID {
	return l.Order[i]
}

// InstanceOf returns the instance index of node id, or -1.
func (l *RenderList) InstanceOf(id NodeID) int {
	for i, n := range l.Order {
		if n == id {
			return i
		}
	}
	return -1
}
