package network

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
)

// Pruning fractions applied per mode to the shared base topology.
const (
	NodeRemovalFraction = 0.10
	EdgeRemovalFraction = 0.20
)

var facilityTypes = map[TransportMode][]string{
	Car:     {"Highway", "Arterial", "LocalStreet"},
	Bike:    {"ProtectedLane", "BufferedLane", "SharedLane"},
	Walk:    {"Sidewalk", "SharedUsePath", "Trail"},
	Transit: {"BusLane", "Rail", "BRT"},
}

// GenerateOptions controls synthetic network generation.
type GenerateOptions struct {
	Points int
	Modes  []TransportMode
	Seed   uint64
}

// DefaultGenerateOptions returns the generator defaults.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Points: 25,
		Modes:  []TransportMode{Bike, Walk, Transit},
		Seed:   1,
	}
}

type baseEdge struct{ a, b int }

// Generate builds a synthetic city network. All modes share one jittered
// grid topology; each mode then loses a fraction of its nodes and edges, and
// nodes left without edges are dropped. The layout is centred on the origin.
func Generate(opts GenerateOptions) *Network {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	nodes, edges := baseGraph(rng, opts.Points)

	n := New()
	for _, mode := range opts.Modes {
		n.Graphs[mode] = modeGraph(rng, mode, nodes, edges)
	}
	return n
}

// baseGraph lays out a jittered square lattice joined to its 4 neighbours.
func baseGraph(rng *rand.Rand, points int) ([][2]float32, []baseEdge) {
	if points < 1 {
		return nil, nil
	}
	side := int(math32.Ceil(math32.Sqrt(float32(points))))
	size := math32.Max(30, math32.Sqrt(float32(points))*10)
	spacing := size / float32(side)

	positions := make([][2]float32, 0, side*side)
	for row := 0; row < side; row++ {
		for col := 0; col < side; col++ {
			jx := (rng.Float32() - 0.5) * spacing * 0.5
			jz := (rng.Float32() - 0.5) * spacing * 0.5
			positions = append(positions, [2]float32{
				round2(float32(col)*spacing + jx),
				round2(float32(row)*spacing + jz),
			})
		}
	}

	var edges []baseEdge
	for row := 0; row < side; row++ {
		for col := 0; col < side; col++ {
			i := row*side + col
			if col+1 < side {
				edges = append(edges, baseEdge{i, i + 1})
			}
			if row+1 < side {
				edges = append(edges, baseEdge{i, i + side})
			}
		}
	}

	centre(positions)
	return positions, edges
}

func modeGraph(rng *rand.Rand, mode TransportMode, positions [][2]float32, edges []baseEdge) *ModeGraph {
	removed := sample(rng, len(positions), NodeRemovalFraction)

	var kept []baseEdge
	for _, e := range edges {
		if !removed[e.a] && !removed[e.b] {
			kept = append(kept, e)
		}
	}
	dropped := sample(rng, len(kept), EdgeRemovalFraction)
	var survivors []baseEdge
	for i, e := range kept {
		if !dropped[i] {
			survivors = append(survivors, e)
		}
	}

	// Reindex so only connected nodes remain.
	connected := make(map[int]bool)
	for _, e := range survivors {
		connected[e.a] = true
		connected[e.b] = true
	}
	index := make(map[int]int)
	g := &ModeGraph{Mode: mode}
	for id, pos := range positions {
		if !connected[id] {
			continue
		}
		index[id] = len(g.Nodes)
		g.Nodes = append(g.Nodes, Node{
			ID:                 len(g.Nodes),
			Position:           pos,
			Type:               Intersection,
			PhysicalAttributes: []string{},
			TurnRestrictions:   [][]int{},
		})
	}

	types := facilityTypes[mode]
	for _, e := range survivors {
		facility := "Generic"
		if len(types) > 0 {
			facility = types[rng.IntN(len(types))]
		}
		g.Edges = append(g.Edges, Edge{
			ID:                 len(g.Edges),
			From:               index[e.a],
			To:                 index[e.b],
			FacilityType:       facility,
			PhysicalAttributes: []string{},
		})
	}
	return g
}

// sample marks floor(n*fraction) distinct indices in [0, n).
func sample(rng *rand.Rand, n int, fraction float32) map[int]bool {
	out := make(map[int]bool)
	count := int(float32(n) * fraction)
	for _, i := range rng.Perm(n)[:count] {
		out[i] = true
	}
	return out
}

func centre(positions [][2]float32) {
	if len(positions) == 0 {
		return
	}
	minX, maxX := positions[0][0], positions[0][0]
	minZ, maxZ := positions[0][1], positions[0][1]
	for _, p := range positions[1:] {
		minX, maxX = math32.Min(minX, p[0]), math32.Max(maxX, p[0])
		minZ, maxZ = math32.Min(minZ, p[1]), math32.Max(maxZ, p[1])
	}
	cx, cz := (minX+maxX)/2, (minZ+maxZ)/2
	for i := range positions {
		positions[i][0] -= cx
		positions[i][1] -= cz
	}
}

func round2(v float32) float32 {
	return math32.Floor(v*100+0.5) / 100
}
