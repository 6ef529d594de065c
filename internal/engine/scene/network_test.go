package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/corridor/internal/network"
	"github.com/Faultbox/corridor/pkg/math"
)

func graph(mode network.TransportMode, edges [][2]int, positions ...[2]float32) *network.ModeGraph {
	g := &network.ModeGraph{Mode: mode}
	for i, p := range positions {
		g.Nodes = append(g.Nodes, network.Node{ID: i, Position: p, Type: network.Intersection})
	}
	for i, e := range edges {
		g.Edges = append(g.Edges, network.Edge{ID: i, From: e[0], To: e[1]})
	}
	return g
}

// sampleNetwork has bike and walk sharing the location (0,0); walk also has
// (4,0), bike also has (0,3), and transit stands alone at (10,10)-(10,12).
func sampleNetwork() *network.Network {
	n := network.New()
	n.Graphs[network.Bike] = graph(network.Bike, [][2]int{{0, 1}}, [2]float32{0, 0}, [2]float32{0, 3})
	n.Graphs[network.Walk] = graph(network.Walk, [][2]int{{0, 1}}, [2]float32{0.001, 0.004}, [2]float32{4, 0})
	n.Graphs[network.Transit] = graph(network.Transit, [][2]int{{0, 1}}, [2]float32{10, 10}, [2]float32{10, 12})
	return n
}

func TestLayerOffset(t *testing.T) {
	assert.Equal(t, float32(0), LayerOffset(0, 1))
	assert.InDelta(t, -0.4, LayerOffset(0, 2), 1e-6)
	assert.InDelta(t, 0.4, LayerOffset(1, 2), 1e-6)
	assert.InDelta(t, 0, LayerOffset(1, 3), 1e-6)
	assert.InDelta(t, 0.4, LayerOffset(3, 4), 1e-6)
}

func TestQuantize(t *testing.T) {
	assert.Equal(t, int32(0), quantize(0.001))
	assert.Equal(t, int32(150), quantize(1.5))
	assert.Equal(t, int32(-150), quantize(-1.5))
	assert.Equal(t, int32(1<<31-1), quantize(3e7))
	assert.Equal(t, int32(-1<<31), quantize(-3e7))
	assert.Equal(t, int32(0), quantize(math32.NaN()))
}

func TestFromNetworkDistantNodesKeepSeparatePillars(t *testing.T) {
	n := network.New()
	n.Graphs[network.Car] = graph(network.Car, [][2]int{{0, 1}}, [2]float32{3e7, 0}, [2]float32{-3e7, 0})

	s, err := FromNetwork(n)
	require.NoError(t, err)

	pillars := 0
	for _, node := range s.Nodes() {
		if node.IsRoot() && node.Mesh == NetworkCubeMesh {
			pillars++
		}
	}
	assert.Equal(t, 2, pillars)
}

func TestFromNetworkGroupsCoincidentNodes(t *testing.T) {
	s, err := FromNetwork(sampleNetwork())
	require.NoError(t, err)

	var pillars []NodeID
	for i, n := range s.Nodes() {
		if n.IsRoot() && n.Mesh == NetworkCubeMesh {
			pillars = append(pillars, NodeID(i))
		}
	}
	// (0,0) shared, (0,3), (4,0), (10,10), (10,12).
	require.Len(t, pillars, 5)

	var shared NodeID = NoNode
	for _, p := range pillars {
		assert.True(t, s.Node(p).Selectable)
		if len(s.Children(p)) == 2 {
			shared = p
		}
	}
	require.NotEqual(t, NoNode, shared)

	// Bike sits below walk inside the shared pillar.
	kids := s.Children(shared)
	assert.Equal(t, ModeMaterial(network.Bike), s.Node(kids[0]).Material)
	assert.Equal(t, ModeMaterial(network.Walk), s.Node(kids[1]).Material)
	assert.InDelta(t, -0.4, s.Node(kids[0]).Local.Position.Y, 1e-6)
	assert.InDelta(t, 0.4, s.Node(kids[1]).Local.Position.Y, 1e-6)
	for _, k := range kids {
		assert.False(t, s.Node(k).Selectable)
	}

	// The pillar sits at the average of its members.
	pos := s.Node(shared).Local.Position
	assert.InDelta(t, 0.0005, pos.X, 1e-6)
	assert.InDelta(t, 0.002, pos.Z, 1e-6)
	assert.Equal(t, float32(0), pos.Y)
}

func TestFromNetworkEdges(t *testing.T) {
	s, err := FromNetwork(sampleNetwork())
	require.NoError(t, err)
	assert.Equal(t, 3, s.EdgeCount())

	for i, n := range s.Nodes() {
		ref, ok := s.EdgeRef(NodeID(i))
		if !ok {
			continue
		}
		assert.Equal(t, NetworkLineMesh, n.Mesh)
		assert.False(t, n.Selectable)

		from := s.WorldPosition(ref.From)
		to := s.WorldPosition(ref.To)
		assert.True(t, n.Local.Position.ApproxEqual(from.Lerp(to, 0.5), 1e-5))
		assert.InDelta(t, from.Distance(to), n.Local.Scale.X, 1e-5)
	}
}

func TestFromNetworkDeterministic(t *testing.T) {
	a, err := FromNetwork(sampleNetwork())
	require.NoError(t, err)
	b, err := FromNetwork(sampleNetwork())
	require.NoError(t, err)
	assert.Equal(t, a.Nodes(), b.Nodes())
}

func TestFromNetworkUnknownEndpoint(t *testing.T) {
	n := network.New()
	n.Graphs[network.Car] = graph(network.Car, [][2]int{{0, 5}}, [2]float32{0, 0})

	_, err := FromNetwork(n)
	assert.ErrorIs(t, err, ErrUnknownEndpoint)
}

func TestEdgeTransform(t *testing.T) {
	from := math.Vec3{X: 1, Y: 0.5, Z: 1}
	to := math.Vec3{X: 4, Y: 0.5, Z: 5}
	tr := EdgeTransform(from, to)

	assert.Equal(t, math.Vec3{X: 2.5, Y: 0.5, Z: 3}, tr.Position)
	assert.InDelta(t, 5, tr.Scale.X, 1e-6)

	// The unit segment's ends land on the endpoints.
	m := tr.Matrix()
	assert.True(t, m.TransformPoint(math.Vec3{X: -0.5}).ApproxEqual(from, 1e-5))
	assert.True(t, m.TransformPoint(math.Vec3{X: 0.5}).ApproxEqual(to, 1e-5))

	yaw := math32.Atan2(-4, 3)
	assert.InDelta(t, 1, tr.Rotation.Dot(math.QuatFromYaw(yaw)), 1e-6)
}

func TestSyncEdgesAfterPillarMove(t *testing.T) {
	s, err := FromNetwork(sampleNetwork())
	require.NoError(t, err)

	var shared NodeID = NoNode
	for i, n := range s.Nodes() {
		if n.IsRoot() && n.Selectable && len(s.Children(NodeID(i))) == 2 {
			shared = NodeID(i)
		}
	}
	require.NotEqual(t, NoNode, shared)

	related := map[NodeID]bool{shared: true}
	for _, d := range s.Descendants(shared) {
		related[d] = true
	}

	before := make(map[NodeID]Transform)
	for i := range s.Nodes() {
		if _, ok := s.EdgeRef(NodeID(i)); ok {
			before[NodeID(i)] = s.Node(NodeID(i)).Local
		}
	}

	s.SetPosition(shared, math.Vec3{X: -3, Z: 2})
	assert.Equal(t, 2, s.SyncEdges(shared))

	for id, old := range before {
		ref, _ := s.EdgeRef(id)
		now := s.Node(id).Local
		if ref.Touches(related) {
			assert.NotEqual(t, old, now, "edge %d should follow the pillar", id)
			want := EdgeTransform(s.WorldPosition(ref.From), s.WorldPosition(ref.To))
			assert.Equal(t, want, now)
		} else {
			assert.Equal(t, old, now, "edge %d is unrelated", id)
		}
	}
}

func TestSyncEdgesOnChildOnly(t *testing.T) {
	s := newTestScene()
	root := s.AddNode(NewNode(0, 0, IdentityTransform(), true))
	a := s.AddNode(NewNode(0, 0, At(math.Vec3{Y: 1}, 1), false).WithParent(root))
	b := s.AddNode(NewNode(0, 0, At(math.Vec3{Y: -1}, 1), false).WithParent(root))
	other := s.AddNode(NewNode(0, 0, At(math.Vec3{X: 5}, 1), true))

	ea := s.AddEdge(NewNode(1, 0, IdentityTransform(), false), a, other)
	eb := s.AddEdge(NewNode(1, 0, IdentityTransform(), false), b, other)

	// Moving a child updates only its own edges.
	s.SetPosition(a, math.Vec3{Y: 2})
	assert.Equal(t, 1, s.SyncEdges(a))
	assert.NotEqual(t, IdentityTransform(), s.Node(ea).Local)
	assert.Equal(t, IdentityTransform(), s.Node(eb).Local)

	// Moving the root reaches edges of every descendant.
	assert.Equal(t, []NodeID{ea, eb}, s.AttachedEdges(root))
	assert.Equal(t, []NodeID{eb}, s.AttachedEdges(b))
	assert.Empty(t, s.AttachedEdges(ea))
	assert.Equal(t, 2, s.SyncEdges(root))
}

func TestDragMovesAttachedEdges(t *testing.T) {
	s, err := FromNetwork(sampleNetwork())
	require.NoError(t, err)

	// The transit pillar at (10,10) has one edge to (10,12).
	var transit NodeID = NoNode
	for i, n := range s.Nodes() {
		if n.IsRoot() && n.Local.Position.X == 10 && n.Local.Position.Z == 10 {
			transit = NodeID(i)
		}
	}
	require.NotEqual(t, NoNode, transit)

	s.PointerMoved(10.05, 10.1, topDown{})
	require.Equal(t, transit, s.Picking.Hovered)
	require.True(t, s.PointerPressed(10.05, 10.1, topDown{}))
	s.PointerMoved(6.05, 10.1, topDown{})
	s.PointerReleased()

	child := s.Children(transit)[0]
	for i := range s.Nodes() {
		ref, ok := s.EdgeRef(NodeID(i))
		if !ok || (ref.From != child && ref.To != child) {
			continue
		}
		mid := s.WorldPosition(ref.From).Lerp(s.WorldPosition(ref.To), 0.5)
		assert.True(t, s.Node(NodeID(i)).Local.Position.ApproxEqual(mid, 1e-5))
		assert.InDelta(t, 8, mid.X, 1e-4)
	}
}
