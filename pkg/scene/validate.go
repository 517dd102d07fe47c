package scene

import (
	"fmt"

	"github.com/samber/lo"
)

// ValidationSeverity indicates whether a validation finding blocks
// tessellation or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks tessellation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	NodeID   NodeID             // which node has the problem (zero if scene-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.NodeID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID.Short(), e.Message)
}

// Validate runs all structural and geometric checks on the scene and
// returns the findings in node insertion order. It never mutates the scene.
func Validate(s *Scene) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateDAG(s)...)
	errs = append(errs, validateReferences(s)...)
	errs = append(errs, validateNames(s)...)
	errs = append(errs, validateRoots(s)...)
	errs = append(errs, validateData(s)...)
	return errs
}

// Errors filters findings down to the blocking ones.
func Errors(findings []ValidationError) []ValidationError {
	return lo.Filter(findings, func(e ValidationError, _ int) bool { return e.Severity == SeverityError })
}

// validateDAG checks for cycles using DFS with 3-color marking.
func validateDAG(s *Scene) []ValidationError {
	const (
		white = iota
		gray
		black
	)

	color := make(map[NodeID]int)
	var errs []ValidationError

	var visit func(id NodeID) bool // true if a cycle was found
	visit = func(id NodeID) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("cycle detected: node %s is part of a cycle", id.Short()),
				Severity: SeverityError,
			})
			return true
		}
		color[id] = gray
		node, ok := s.Nodes[id]
		if !ok {
			// Dangling reference; handled by validateReferences.
			color[id] = black
			return false
		}
		for _, childID := range node.Children {
			if visit(childID) {
				return true
			}
		}
		color[id] = black
		return false
	}

	for _, n := range s.All() {
		if color[n.ID] == white && visit(n.ID) {
			break
		}
	}
	return errs
}

// validateReferences checks that every child reference exists.
func validateReferences(s *Scene) []ValidationError {
	var errs []ValidationError
	for _, node := range s.All() {
		for _, childID := range node.Children {
			if _, ok := s.Nodes[childID]; !ok {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("child reference %s does not exist", childID.Short()),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

// validateNames checks that no two nodes share a name.
func validateNames(s *Scene) []ValidationError {
	var errs []ValidationError
	for name, id := range s.NameIndex {
		if _, ok := s.Nodes[id]; !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("name index entry %q references non-existent node %s", name, id.Short()),
				Severity: SeverityError,
			})
		}
	}

	named := lo.Filter(s.All(), func(n *Node, _ int) bool { return n.Name != "" })
	counts := lo.CountValuesBy(named, func(n *Node) string { return n.Name })
	for _, n := range lo.UniqBy(named, func(n *Node) string { return n.Name }) {
		if c := counts[n.Name]; c > 1 {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("duplicate name %q assigned to %d nodes", n.Name, c),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateRoots checks that every root exists and warns about nodes that
// no root reaches.
func validateRoots(s *Scene) []ValidationError {
	var errs []ValidationError
	for _, rid := range s.Roots {
		if _, ok := s.Nodes[rid]; !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("root reference %s does not exist", rid.Short()),
				Severity: SeverityError,
			})
		}
	}
	if len(s.Nodes) == 0 {
		return errs
	}

	reachable := make(map[NodeID]bool)
	queue := make([]NodeID, 0, len(s.Roots))
	for _, rid := range s.Roots {
		if _, ok := s.Nodes[rid]; ok && !reachable[rid] {
			reachable[rid] = true
			queue = append(queue, rid)
		}
	}
	for len(queue) > 0 {
		node := s.Nodes[queue[0]]
		queue = queue[1:]
		if node == nil {
			continue
		}
		for _, childID := range node.Children {
			if !reachable[childID] {
				reachable[childID] = true
				queue = append(queue, childID)
			}
		}
	}

	for _, node := range s.All() {
		if reachable[node.ID] {
			continue
		}
		name := node.Name
		if name == "" {
			name = node.ID.Short()
		}
		errs = append(errs, ValidationError{
			NodeID:   node.ID,
			Message:  fmt.Sprintf("node %q is not reachable from any root (orphan)", name),
			Severity: SeverityWarning,
		})
	}
	return errs
}

// validateData checks kind-specific payloads: positive primitive
// dimensions and boolean nodes with something to combine.
func validateData(s *Scene) []ValidationError {
	var errs []ValidationError
	fail := func(id NodeID, format string, args ...any) {
		errs = append(errs, ValidationError{NodeID: id, Message: fmt.Sprintf(format, args...), Severity: SeverityError})
	}

	for _, node := range s.All() {
		switch d := node.Data.(type) {
		case PrimitiveData:
			if node.Kind != NodePrimitive {
				fail(node.ID, "%s node carries primitive data", node.Kind)
			}
			switch d.Kind {
			case PrimBox:
				for i, axis := range []string{"X", "Y", "Z"} {
					if d.Size[i] <= 0 {
						fail(node.ID, "box dimension %s is %.4f, must be positive", axis, d.Size[i])
					}
				}
			case PrimCylinder:
				if d.Radius <= 0 || d.Height <= 0 {
					fail(node.ID, "cylinder radius %.4f and height %.4f must be positive", d.Radius, d.Height)
				}
			case PrimSphere:
				if d.Radius <= 0 {
					fail(node.ID, "sphere radius is %.4f, must be positive", d.Radius)
				}
			default:
				fail(node.ID, "unknown primitive kind %d", int(d.Kind))
			}
		case BooleanData:
			if node.Kind != NodeBoolean {
				fail(node.ID, "%s node carries boolean data", node.Kind)
			}
			if len(node.Children) == 0 {
				fail(node.ID, "%s has no operands", d.Op)
			}
			if d.Op == OpDifference && len(node.Children) < 2 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  "difference has nothing to subtract",
					Severity: SeverityWarning,
				})
			}
		case nil:
			fail(node.ID, "%s node has no data", node.Kind)
		}
	}
	return errs
}
