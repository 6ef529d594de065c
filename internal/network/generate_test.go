package network

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsValid(t *testing.T) {
	n := Generate(DefaultGenerateOptions())
	require.NoError(t, n.Validate())
	assert.Len(t, n.Graphs, 3)

	for mode, g := range n.Graphs {
		assert.NotEmpty(t, g.Edges, mode)
		for i, node := range g.Nodes {
			assert.Equal(t, i, node.ID, "%s node ids are dense", mode)
		}
	}
}

func TestGenerateDropsIsolatedNodes(t *testing.T) {
	n := Generate(GenerateOptions{Points: 49, Modes: []TransportMode{Car, Walk}, Seed: 7})
	for mode, g := range n.Graphs {
		degree := make([]int, len(g.Nodes))
		for _, e := range g.Edges {
			degree[e.From]++
			degree[e.To]++
		}
		for i, d := range degree {
			assert.NotZero(t, d, "%s node %d is isolated", mode, i)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	opts := GenerateOptions{Points: 16, Modes: []TransportMode{Bike}, Seed: 42}
	a := Generate(opts)
	b := Generate(opts)
	assert.Equal(t, a.Graph(Bike).Edges, b.Graph(Bike).Edges)
	assert.Equal(t, a.Graph(Bike).Nodes, b.Graph(Bike).Nodes)
}

func TestGenerateFacilityTypes(t *testing.T) {
	n := Generate(GenerateOptions{Points: 25, Modes: []TransportMode{Transit}, Seed: 3})
	for _, e := range n.Graph(Transit).Edges {
		assert.Contains(t, facilityTypes[Transit], e.FacilityType)
	}
}

func TestBaseGraphCentred(t *testing.T) {
	positions := [][2]float32{{0, 0}, {10, 4}, {2, 8}}
	centre(positions)
	assert.Equal(t, [2]float32{-5, -4}, positions[0])
	assert.Equal(t, [2]float32{5, 0}, positions[1])
	assert.True(t, math32.Abs(positions[2][1]-4) < 1e-6)
}

func TestGenerateSinglePoint(t *testing.T) {
	n := Generate(GenerateOptions{Points: 1, Modes: []TransportMode{Walk}, Seed: 1})
	// A single point has no edges, so every node is isolated.
	assert.Empty(t, n.Graph(Walk).Nodes)
}
