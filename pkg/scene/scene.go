package scene

import (
	"fmt"

	"github.com/samber/lo"
)

// Scene is the top-level immutable structure produced by recipe evaluation.
// Each evaluation produces a new scene.
type Scene struct {
	Nodes     map[NodeID]*Node  `json:"nodes"`
	Roots     []NodeID          `json:"roots"`
	NameIndex map[string]NodeID `json:"name_index"`
	order     []NodeID
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		Nodes:     make(map[NodeID]*Node),
		NameIndex: make(map[string]NodeID),
	}
}

// AddNode adds a node to the scene. It does not check for duplicates.
func (s *Scene) AddNode(n *Node) {
	if _, seen := s.Nodes[n.ID]; !seen {
		s.order = append(s.order, n.ID)
	}
	s.Nodes[n.ID] = n
	if n.Name != "" {
		s.NameIndex[n.Name] = n.ID
	}
}

// AddRoot registers a node ID as a root of the scene.
func (s *Scene) AddRoot(id NodeID) {
	s.Roots = append(s.Roots, id)
}

// Lookup returns the node with the given name, or nil.
func (s *Scene) Lookup(name string) *Node {
	id, ok := s.NameIndex[name]
	if !ok {
		return nil
	}
	return s.Nodes[id]
}

// MustLookup returns the node with the given name, or panics.
func (s *Scene) MustLookup(name string) *Node {
	n := s.Lookup(name)
	if n == nil {
		panic(fmt.Sprintf("scene: no node named %q", name))
	}
	return n
}

// Get returns the node with the given ID, or nil.
func (s *Scene) Get(id NodeID) *Node {
	return s.Nodes[id]
}

// All returns every node in insertion order.
func (s *Scene) All() []*Node {
	return lo.FilterMap(s.order, func(id NodeID, _ int) (*Node, bool) {
		n, ok := s.Nodes[id]
		return n, ok
	})
}

// Primitives returns all primitive nodes in insertion order.
func (s *Scene) Primitives() []*Node {
	return lo.Filter(s.All(), func(n *Node, _ int) bool { return n.Kind == NodePrimitive })
}

// Materials returns the distinct non-empty material names referenced by
// primitives and boolean nodes, in first-use order.
func (s *Scene) Materials() []string {
	names := lo.FilterMap(s.All(), func(n *Node, _ int) (string, bool) {
		switch d := n.Data.(type) {
		case PrimitiveData:
			return d.Material, d.Material != ""
		case BooleanData:
			return d.Material, d.Material != ""
		}
		return "", false
	})
	return lo.Uniq(names)
}

// Children returns the child nodes of the given node.
func (s *Scene) Children(n *Node) []*Node {
	children := make([]*Node, 0, len(n.Children))
	for _, cid := range n.Children {
		if c := s.Nodes[cid]; c != nil {
			children = append(children, c)
		}
	}
	return children
}

// NodeCount returns the total number of nodes.
func (s *Scene) NodeCount() int {
	return len(s.Nodes)
}
