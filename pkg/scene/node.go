package scene

// NodeKind enumerates the types of nodes in a scene.
type NodeKind int

const (
	NodePrimitive NodeKind = iota // box, cylinder or sphere
	NodeTransform                 // placement of its children
	NodeGroup                     // logical grouping (assembly)
	NodeBoolean                   // union, difference or intersection of its children
)

func (k NodeKind) String() string {
	switch k {
	case NodePrimitive:
		return "primitive"
	case NodeTransform:
		return "transform"
	case NodeGroup:
		return "group"
	case NodeBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Node is the fundamental element of a scene.
type Node struct {
	ID       NodeID   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Name     string   `json:"name,omitempty"`
	Children []NodeID `json:"children,omitempty"`
	Data     NodeData `json:"data"`
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}
