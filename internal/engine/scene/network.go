package scene

import (
	"fmt"
	"sort"

	"github.com/chewxy/math32"

	"github.com/Faultbox/corridor/internal/engine/geometry"
	"github.com/Faultbox/corridor/internal/network"
	"github.com/Faultbox/corridor/pkg/math"
)

// Layout of mode layers inside a pillar. The unit cube spans y in
// [-0.5, 0.5]; layers keep a margin from both ends.
const (
	positionQuantum = 100
	layerMargin     = 0.1
	pillarHalf      = 0.5
	lineWidth       = 0.125
	layerScale      = 0.15
)

// Mesh and material ids used by network scenes.
const (
	NetworkCubeMesh MeshID = 0
	NetworkLineMesh MeshID = 1

	PillarMaterial MaterialID = 0
)

var modeMaterials = map[network.TransportMode]MaterialID{
	network.Bike:    1,
	network.Walk:    2,
	network.Transit: 3,
	network.Car:     4,
}

// ModeMaterial returns the material used for a transport mode.
func ModeMaterial(mode network.TransportMode) MaterialID {
	return modeMaterials[mode]
}

type gridKey [2]int32

type modeNode struct {
	mode  network.TransportMode
	index int
}

// LayerOffset returns the vertical offset of layer i of count inside a
// pillar. A single layer sits at the centre.
func LayerOffset(i, count int) float32 {
	if count <= 1 {
		return 0
	}
	lo := float32(-pillarHalf + layerMargin)
	hi := float32(pillarHalf - layerMargin)
	return lo + float32(i)*(hi-lo)/float32(count-1)
}

// quantize scales v to hundredths and truncates toward zero. Values outside
// the int32 range saturate and NaN maps to 0.
func quantize(v float32) int32 {
	q := v * positionQuantum
	switch {
	case math32.IsNaN(q):
		return 0
	case q >= 1<<31:
		return 1<<31 - 1
	case q <= -1<<31:
		return -1 << 31
	}
	return int32(q)
}

// FromNetwork builds a scene with one selectable pillar per physical
// location. Nodes of different modes whose positions agree to 0.01 share a
// pillar and become stacked, non-selectable layers inside it. Every edge
// becomes a line segment node tracked for resynchronisation.
func FromNetwork(n *network.Network) (*Scene, error) {
	s := New()
	s.AddMesh(geometry.Cube())
	s.AddMesh(geometry.LineSegment(lineWidth))

	s.AddMaterial(RGB("pillar", 0.5, 0.5, 0.5))
	s.AddMaterial(RGB("bike", 0, 0.8, 0))
	s.AddMaterial(RGB("walk", 0, 0.5, 1))
	s.AddMaterial(RGB("transit", 1, 0, 0))
	s.AddMaterial(RGB("car", 1, 0.8, 0))

	groups := make(map[gridKey][]modeNode)
	for _, mode := range network.Modes {
		g := n.Graph(mode)
		if g == nil {
			continue
		}
		for i, node := range g.Nodes {
			key := gridKey{quantize(node.Position[0]), quantize(node.Position[1])}
			groups[key] = append(groups[key], modeNode{mode: mode, index: i})
		}
	}

	keys := make([]gridKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})

	ids := make(map[modeNode]NodeID)
	for _, key := range keys {
		members := groups[key]
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].mode.Order() < members[j].mode.Order()
		})

		var sumX, sumZ float32
		for _, m := range members {
			p := n.Graph(m.mode).Nodes[m.index].Position
			sumX += p[0]
			sumZ += p[1]
		}
		count := float32(len(members))

		pillar := s.AddNode(NewNode(NetworkCubeMesh, PillarMaterial, Transform{
			Position: math.Vec3{X: sumX / count, Z: sumZ / count},
			Rotation: math.QuatIdentity(),
			Scale:    math.Vec3{X: 0.5, Y: 1, Z: 0.5},
		}, true))

		for layer, m := range members {
			local := At(math.Vec3{Y: LayerOffset(layer, len(members))}, layerScale)
			child := s.AddNode(NewNode(NetworkCubeMesh, ModeMaterial(m.mode), local, false).WithParent(pillar))
			ids[m] = child
		}
	}

	for _, mode := range network.Modes {
		g := n.Graph(mode)
		if g == nil {
			continue
		}
		for i, e := range g.Edges {
			from, ok := ids[modeNode{mode, e.From}]
			if !ok {
				return nil, fmt.Errorf("%s edge %d from node %d: %w", mode, i, e.From, ErrUnknownEndpoint)
			}
			to, ok := ids[modeNode{mode, e.To}]
			if !ok {
				return nil, fmt.Errorf("%s edge %d to node %d: %w", mode, i, e.To, ErrUnknownEndpoint)
			}
			t := EdgeTransform(s.WorldPosition(from), s.WorldPosition(to))
			s.AddEdge(NewNode(NetworkLineMesh, ModeMaterial(mode), t, false), from, to)
		}
	}
	return s, nil
}
