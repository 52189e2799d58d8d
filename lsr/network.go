// Package lsr simulates link-state routing on a small in-memory network. A
// Network is built from a cost matrix; shortest paths and forwarding tables
// are computed per router on demand, routers can be failed, and the best
// router to originate a broadcast can be selected.
//
// A Network is not safe for concurrent use.
package lsr

import (
	"fmt"
	"sort"

	"github.com/rhartert/sparsesets"
)

// Network owns the routers built from a cost matrix.
type Network struct {
	size     int
	matrix   *CostMatrix
	topology *Topology
	routers  []Router

	// Routers that were failed. The set is never cleared: once down, a
	// router stays down for the lifetime of the network.
	down *sparsesets.Set

	broadcastRouter int
}

// NewNetwork returns a network of n routers without any link. Links are
// added with Rebuild.
func NewNetwork(n int) (*Network, error) {
	if n < 1 || MaxRouters < n {
		return nil, fmt.Errorf("%w: network must have between 1 and %d routers, got %d", ErrMatrixShape, MaxRouters, n)
	}
	m := NewCostMatrix(n)
	net := &Network{
		size:            n,
		matrix:          m,
		topology:        TopologyOf(m),
		routers:         make([]Router, n),
		down:            sparsesets.New(n),
		broadcastRouter: NoRouter,
	}
	for i := range net.routers {
		net.routers[i] = newRouter(i+1, n)
	}
	return net, nil
}

// Build returns a network built from the cost matrix m. The network keeps a
// reference to m, which is modified in place when routers are failed.
func Build(m *CostMatrix) (*Network, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil cost matrix", ErrMatrixShape)
	}
	net, err := NewNetwork(m.Size())
	if err != nil {
		return nil, err
	}
	if err := net.Rebuild(m); err != nil {
		return nil, err
	}
	return net, nil
}

// Rebuild replaces the links of the network with the ones described by m and
// discards the routing state of every router. Routers that are down remain
// down.
func (n *Network) Rebuild(m *CostMatrix) error {
	if m == nil {
		return fmt.Errorf("%w: nil cost matrix", ErrMatrixShape)
	}
	if m.Size() != n.size {
		return fmt.Errorf("%w: matrix has %d routers, network has %d", ErrSizeMismatch, m.Size(), n.size)
	}

	n.matrix = m
	n.topology = TopologyOf(m)
	n.invalidate()

	for u := range n.routers {
		neighbors := make([]Neighbor, 0, len(n.topology.Nexts[u]))
		for _, e := range n.topology.Nexts[u] {
			link := n.topology.Edges[e]
			neighbors = append(neighbors, Neighbor{
				Index:   link.To,
				OutCost: link.Cost,
				InCost:  m.Cost(link.To, u),
			})
		}
		n.routers[u].neighbors = neighbors
	}
	return nil
}

// invalidate discards every result derived from the current topology.
func (n *Network) invalidate() {
	for i := range n.routers {
		n.routers[i].reset()
	}
	n.broadcastRouter = NoRouter
}

// FailRouter simulates the failure of router id: every link to and from the
// router is removed from the cost matrix, the network is rebuilt and the
// router is marked as down. Shortest paths must be computed again for every
// router whose routing state is needed.
func (n *Network) FailRouter(id int) error {
	i, err := n.index(id)
	if err != nil {
		return err
	}
	n.matrix.isolate(i)
	if err := n.Rebuild(n.matrix); err != nil {
		return err
	}
	if err := n.down.Insert(i); err != nil {
		return fmt.Errorf("error marking router %d as down: %w", id, err)
	}
	return nil
}

// FindBroadcastRouter selects the router with the smallest broadcast cost,
// computing shortest paths for the routers that do not have them yet. Ties
// are broken in favor of the smallest ID. The second returned value is false
// if no router can reach every router that is not down.
func (n *Network) FindBroadcastRouter() (int, bool) {
	best, bestCost := NoRouter, Infinity
	for i := range n.routers {
		r := &n.routers[i]
		if !r.Computed() && !n.down.Contains(i) {
			n.populate(i)
		}
		if c, ok := r.BroadcastCost(); ok && c < bestCost {
			best, bestCost = r.id, c
		}
	}
	n.broadcastRouter = best
	return best, best != NoRouter
}

// BroadcastRouter returns the result of the last call to FindBroadcastRouter
// since the last topology change.
func (n *Network) BroadcastRouter() (int, bool) {
	return n.broadcastRouter, n.broadcastRouter != NoRouter
}

// Size returns the number of routers in the network.
func (n *Network) Size() int {
	return n.size
}

// Matrix returns the cost matrix the network was last built from.
func (n *Network) Matrix() *CostMatrix {
	return n.matrix
}

// Topology returns the links of the network as a directed graph.
//
// Important: the topology is the network's internal structure and should only
// be used in read-only operations.
func (n *Network) Topology() *Topology {
	return n.topology
}

// Router returns router id.
func (n *Network) Router(id int) (*Router, error) {
	i, err := n.index(id)
	if err != nil {
		return nil, err
	}
	return &n.routers[i], nil
}

// IsDown returns true if router id was failed.
func (n *Network) IsDown(id int) bool {
	i, err := n.index(id)
	if err != nil {
		return false
	}
	return n.down.Contains(i)
}

// DownRouters returns the IDs of the routers that were failed in increasing
// order.
func (n *Network) DownRouters() []int {
	ids := []int{}
	for _, i := range n.down.Content() {
		ids = append(ids, i+1)
	}
	sort.Ints(ids)
	return ids
}

func (n *Network) index(id int) (int, error) {
	if id < 1 || n.size < id {
		return 0, fmt.Errorf("%w: %d is not in [1, %d]", ErrUnknownRouter, id, n.size)
	}
	return id - 1, nil
}
