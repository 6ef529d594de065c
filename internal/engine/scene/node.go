package scene

// NodeID indexes Scene nodes. IDs are stable for the scene lifetime.
type NodeID int

// NoNode marks the absence of a node, e.g. the parent of a root.
const NoNode NodeID = -1

// MeshID indexes Scene meshes.
type MeshID int

// MaterialID indexes Scene materials.
type MaterialID int

// Node is an entry in the scene graph.
type Node struct {
	Mesh       MeshID
	Material   MaterialID
	Local      Transform
	Selectable bool
	Parent     NodeID
}

// NewNode returns a root node.
func NewNode(mesh MeshID, material MaterialID, local Transform, selectable bool) Node {
	return Node{
		Mesh:       mesh,
		Material:   material,
		Local:      local,
		Selectable: selectable,
		Parent:     NoNode,
	}
}

// WithParent returns a copy of n attached to parent.
func (n Node) WithParent(parent NodeID) Node {
	n.Parent = parent
	return n
}

// IsRoot reports whether n has no parent.
func (n Node) IsRoot() bool {
	return n.Parent == NoNode
}

// EdgeRef records the two nodes an edge node connects.
type EdgeRef struct {
	From, To NodeID
}

// Touches reports whether the edge ends at any node in set.
func (e EdgeRef) Touches(set map[NodeID]bool) bool {
	return set[e.From] || set[e.To]
}
