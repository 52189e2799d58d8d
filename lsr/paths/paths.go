// Package paths provides a compact representation of the routes computed by
// the link-state engine.
package paths

import (
	"fmt"
	"strings"
)

// None is the router ID reported when there is no next hop.
const None = -1

// Path represents a route between two routers as the ordered sequence of the
// router IDs it traverses.
//
// A Path respects the following invariants:
//
//   - Empty: the destination is unreached (or nothing was computed yet)
//   - Length 1: the path from a router to itself
//   - Source: first element, destination: last element
//
// Paths are values. Extend never modifies the receiver so that a path can be
// shared by every route that goes through it.
type Path struct {
	nodes []int
}

// New returns a path made of the given router IDs.
func New(nodes ...int) Path {
	p := Path{nodes: make([]int, len(nodes))}
	copy(p.nodes, nodes)
	return p
}

// Extend returns a new path made of the receiver followed by node.
func (p Path) Extend(node int) Path {
	nodes := make([]int, len(p.nodes)+1)
	copy(nodes, p.nodes)
	nodes[len(p.nodes)] = node
	return Path{nodes: nodes}
}

// Length returns the length of the path in terms of routers.
func (p Path) Length() int {
	return len(p.nodes)
}

// Empty returns true if the path does not reach its destination.
func (p Path) Empty() bool {
	return len(p.nodes) == 0
}

// Node returns the router at position pos starting from 0 (the source) and
// ending at Length()-1 (the destination).
func (p Path) Node(pos int) int {
	return p.nodes[pos]
}

// Nodes returns the sequence of routers in the path (including the path's
// source and destination).
//
// Important: the slice is a view on the path's internal structure and should
// only be used in read-only operations.
func (p Path) Nodes() []int {
	return p.nodes
}

// Source returns the first router of the path or None if the path is empty.
func (p Path) Source() int {
	if len(p.nodes) == 0 {
		return None
	}
	return p.nodes[0]
}

// Destination returns the last router of the path or None if the path is
// empty.
func (p Path) Destination() int {
	if len(p.nodes) == 0 {
		return None
	}
	return p.nodes[len(p.nodes)-1]
}

// NextHop returns the router that traffic leaving the source must be sent to.
// A path of length 1 routes to itself and an empty path has no next hop.
func (p Path) NextHop() int {
	switch len(p.nodes) {
	case 0:
		return None
	case 1:
		return p.nodes[0]
	default:
		return p.nodes[1]
	}
}

// Equal returns true if both paths traverse the same routers in the same
// order.
func (p Path) Equal(o Path) bool {
	if len(p.nodes) != len(o.nodes) {
		return false
	}
	for i := range p.nodes {
		if p.nodes[i] != o.nodes[i] {
			return false
		}
	}
	return true
}

// String returns a string representation of the path as a sequence of routers
// separated by " -> ". For example: "1 -> 2 -> 4". Empty paths are
// represented by "-".
func (p Path) String() string {
	if len(p.nodes) == 0 {
		return "-"
	}
	sb := strings.Builder{}
	for i := 0; i < len(p.nodes)-1; i++ {
		sb.WriteString(fmt.Sprintf("%d -> ", p.nodes[i]))
	}
	sb.WriteString(fmt.Sprintf("%d", p.nodes[len(p.nodes)-1]))
	return sb.String()
}
