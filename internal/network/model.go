// Package network describes multi-modal transportation networks: one graph
// per transport mode, with 2D node positions and index-based edges.
package network

import (
	"fmt"

	"github.com/chewxy/math32"
)

// TransportMode names a transport mode graph.
type TransportMode string

// Known transport modes.
const (
	Car     TransportMode = "Car"
	Bike    TransportMode = "Bike"
	Walk    TransportMode = "Walk"
	Transit TransportMode = "Transit"
)

// Modes lists every mode in display order, bottom layer first.
var Modes = []TransportMode{Car, Bike, Walk, Transit}

// Order returns the mode's position in Modes, or -1 if unknown.
func (m TransportMode) Order() int {
	for i, mode := range Modes {
		if mode == m {
			return i
		}
	}
	return -1
}

// Valid reports whether m is a known mode.
func (m TransportMode) Valid() bool {
	return m.Order() >= 0
}

// NodeType classifies a network node.
type NodeType string

const (
	Intersection     NodeType = "Intersection"
	MidblockCrossing NodeType = "MidblockCrossing"
	TransitStop      NodeType = "TransitStop"
	Terminus         NodeType = "Terminus"
)

// Node is a vertex of a mode graph. Position is (x, z) on the ground plane.
type Node struct {
	ID                 int        `json:"id" yaml:"id" toml:"id"`
	Position           [2]float32 `json:"position" yaml:"position" toml:"position"`
	Type               NodeType   `json:"node_type" yaml:"node_type" toml:"node_type"`
	PhysicalAttributes []string   `json:"physical_attributes" yaml:"physical_attributes" toml:"physical_attributes"`
	TurnRestrictions   [][]int    `json:"turn_restrictions" yaml:"turn_restrictions" toml:"turn_restrictions"`
}

// Edge connects two nodes of the same mode graph by index into its Nodes.
type Edge struct {
	ID                 int      `json:"id" yaml:"id" toml:"id"`
	From               int      `json:"from_node" yaml:"from_node" toml:"from_node"`
	To                 int      `json:"to_node" yaml:"to_node" toml:"to_node"`
	FacilityType       string   `json:"facility_type" yaml:"facility_type" toml:"facility_type"`
	PhysicalAttributes []string `json:"physical_attributes" yaml:"physical_attributes" toml:"physical_attributes"`
}

// ModeGraph holds the nodes and edges of one transport mode.
type ModeGraph struct {
	Mode  TransportMode `json:"mode" yaml:"mode" toml:"mode"`
	Nodes []Node        `json:"nodes" yaml:"nodes" toml:"nodes"`
	Edges []Edge        `json:"edges" yaml:"edges" toml:"edges"`
}

// Length returns the ground-plane length of edge e.
func (g *ModeGraph) Length(e Edge) float32 {
	from := g.Nodes[e.From].Position
	to := g.Nodes[e.To].Position
	return math32.Hypot(to[0]-from[0], to[1]-from[1])
}

// Network is the full multi-modal network.
type Network struct {
	Graphs map[TransportMode]*ModeGraph `json:"graphs" yaml:"graphs" toml:"graphs"`
}

// New returns an empty network.
func New() *Network {
	return &Network{Graphs: make(map[TransportMode]*ModeGraph)}
}

// Graph returns the graph for mode, or nil.
func (n *Network) Graph(mode TransportMode) *ModeGraph {
	return n.Graphs[mode]
}

// Stats summarises one mode graph.
type Stats struct {
	Mode        TransportMode
	Nodes       int
	Edges       int
	TotalLength float32
}

// Stats returns per-mode counts in display order.
func (n *Network) Stats() []Stats {
	var out []Stats
	for _, mode := range Modes {
		g := n.Graphs[mode]
		if g == nil {
			continue
		}
		s := Stats{Mode: mode, Nodes: len(g.Nodes), Edges: len(g.Edges)}
		for _, e := range g.Edges {
			s.TotalLength += g.Length(e)
		}
		out = append(out, s)
	}
	return out
}

// Validate checks that every graph has a known mode and every edge references
// nodes inside its graph. Missing graph modes are filled from the map key.
func (n *Network) Validate() error {
	for key, g := range n.Graphs {
		if !key.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownMode, key)
		}
		if g == nil {
			return fmt.Errorf("graph %s: %w", key, ErrEmptyGraph)
		}
		if g.Mode == "" {
			g.Mode = key
		}
		if g.Mode != key {
			return fmt.Errorf("graph %s declares mode %q: %w", key, g.Mode, ErrUnknownMode)
		}
		for i, e := range g.Edges {
			if e.From < 0 || e.From >= len(g.Nodes) || e.To < 0 || e.To >= len(g.Nodes) {
				return fmt.Errorf("graph %s edge %d (%d -> %d, %d nodes): %w",
					key, i, e.From, e.To, len(g.Nodes), ErrInvalidEdge)
			}
		}
	}
	return nil
}
