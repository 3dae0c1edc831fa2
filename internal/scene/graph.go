// Package scene provides a minimal scene graph: an arena of named nodes with
// local poses, parent/child links and renderer components.
//
// Nodes are addressed by NodeID handles. A handle is never reused after its
// node is destroyed, so stale handles simply stop being Valid.
package scene

import (
	"github.com/Faultbox/handviz/pkg/math"
)

// NodeID is a handle to a node in a Graph.
type NodeID int32

// NoNode is the null handle.
const NoNode NodeID = -1

type node struct {
	name       string
	local      math.Pose
	parent     NodeID
	children   []NodeID
	components []Component
	alive      bool
}

// Graph owns every node in a scene.
type Graph struct {
	nodes []node
	live  int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	return g.live
}

// Valid reports whether id refers to a live node.
func (g *Graph) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes) && g.nodes[id].alive
}

func (g *Graph) get(id NodeID) *node {
	if !g.Valid(id) {
		return nil
	}
	return &g.nodes[id]
}

// Create adds a node at identity local pose under parent. Pass NoNode for a
// scene root.
func (g *Graph) Create(name string, parent NodeID) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, node{
		name:   name,
		local:  math.PoseIdentity(),
		parent: NoNode,
		alive:  true,
	})
	g.live++
	if g.Valid(parent) {
		g.attach(id, parent)
	}
	return id
}

// Destroy removes id and its whole subtree. Destroying an invalid handle is a
// no-op.
func (g *Graph) Destroy(id NodeID) {
	n := g.get(id)
	if n == nil {
		return
	}
	g.detach(id)
	g.destroySubtree(id)
}

func (g *Graph) destroySubtree(id NodeID) {
	n := &g.nodes[id]
	for _, c := range n.children {
		g.destroySubtree(c)
	}
	n.children = nil
	n.components = nil
	n.parent = NoNode
	n.alive = false
	g.live--
}

// Name returns the node's name, or "" for an invalid handle.
func (g *Graph) Name(id NodeID) string {
	if n := g.get(id); n != nil {
		return n.name
	}
	return ""
}

// SetName renames a node.
func (g *Graph) SetName(id NodeID, name string) {
	if n := g.get(id); n != nil {
		n.name = name
	}
}

// Parent returns the node's parent, or NoNode.
func (g *Graph) Parent(id NodeID) NodeID {
	if n := g.get(id); n != nil {
		return n.parent
	}
	return NoNode
}

// Children returns the node's children in insertion order. The slice is
// owned by the graph and must not be modified.
func (g *Graph) Children(id NodeID) []NodeID {
	if n := g.get(id); n != nil {
		return n.children
	}
	return nil
}

// SetParent moves id under parent, keeping its local pose. Pass NoNode to
// make it a root. Moving a node under its own descendant is refused.
func (g *Graph) SetParent(id, parent NodeID) bool {
	if !g.Valid(id) {
		return false
	}
	if parent != NoNode {
		if !g.Valid(parent) {
			return false
		}
		for p := parent; p != NoNode; p = g.nodes[p].parent {
			if p == id {
				return false
			}
		}
	}
	g.detach(id)
	if parent != NoNode {
		g.attach(id, parent)
	}
	return true
}

func (g *Graph) attach(id, parent NodeID) {
	g.nodes[id].parent = parent
	g.nodes[parent].children = append(g.nodes[parent].children, id)
}

func (g *Graph) detach(id NodeID) {
	p := g.nodes[id].parent
	if p == NoNode {
		return
	}
	siblings := g.nodes[p].children
	for i, c := range siblings {
		if c == id {
			g.nodes[p].children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	g.nodes[id].parent = NoNode
}

// LocalPose returns the node's pose relative to its parent.
func (g *Graph) LocalPose(id NodeID) math.Pose {
	if n := g.get(id); n != nil {
		return n.local
	}
	return math.PoseIdentity()
}

// SetLocalPose sets the node's pose relative to its parent.
func (g *Graph) SetLocalPose(id NodeID, pose math.Pose) {
	if n := g.get(id); n != nil {
		n.local = pose
	}
}

// WorldPose composes local poses from the root down to id.
func (g *Graph) WorldPose(id NodeID) math.Pose {
	n := g.get(id)
	if n == nil {
		return math.PoseIdentity()
	}
	pose := n.local
	for p := n.parent; p != NoNode; p = g.nodes[p].parent {
		pose = pose.TransformedBy(g.nodes[p].local)
	}
	return pose
}

// AddComponent attaches c to the node.
func (g *Graph) AddComponent(id NodeID, c Component) {
	if n := g.get(id); n != nil {
		n.components = append(n.components, c)
	}
}

// Components returns the node's components. The slice is owned by the graph.
func (g *Graph) Components(id NodeID) []Component {
	if n := g.get(id); n != nil {
		return n.components
	}
	return nil
}

// Walk visits root and its descendants depth-first, parents before
// children. Returning false from fn skips that node's children.
func (g *Graph) Walk(root NodeID, fn func(id NodeID) bool) {
	if !g.Valid(root) {
		return
	}
	if !fn(root) {
		return
	}
	for _, c := range g.nodes[root].children {
		g.Walk(c, fn)
	}
}

// Roots returns every live node without a parent.
func (g *Graph) Roots() []NodeID {
	var roots []NodeID
	for i := range g.nodes {
		if g.nodes[i].alive && g.nodes[i].parent == NoNode {
			roots = append(roots, NodeID(i))
		}
	}
	return roots
}

// FindChild returns the first direct child of id satisfying match.
func (g *Graph) FindChild(id NodeID, match func(name string) bool) (NodeID, bool) {
	for _, c := range g.Children(id) {
		if match(g.nodes[c].name) {
			return c, true
		}
	}
	return NoNode, false
}

// FindInSubtree returns the first node under root (root included) whose name
// equals name.
func (g *Graph) FindInSubtree(root NodeID, name string) (NodeID, bool) {
	found := NoNode
	g.Walk(root, func(id NodeID) bool {
		if found != NoNode {
			return false
		}
		if g.nodes[id].name == name {
			found = id
			return false
		}
		return true
	})
	return found, found != NoNode
}
