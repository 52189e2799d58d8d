package lsr

import (
	"math"

	"github.com/rhartert/lsrsim/lsr/paths"
)

const (
	// Infinity is the path cost to a router that is not reachable.
	Infinity = math.MaxInt

	// NoRouter is the router ID used when there is no router to report, for
	// example the next hop towards an unreachable destination.
	NoRouter = paths.None

	// Uncomputed is the broadcast cost of a router whose shortest paths have
	// not been computed since the last topology change.
	Uncomputed = -1
)

// Neighbor is a link from a router to one of its adjacent routers.
type Neighbor struct {
	// Index of the adjacent router (its ID minus one).
	Index int

	// Cost of the link from the router to the neighbor.
	OutCost int

	// Cost of the link from the neighbor back to the router. It is NoEdge or
	// any other non-positive value when the link is one-way.
	InCost int
}

// Router holds the state of a single router: its links, discovered when the
// network is built, and the routing state derived from its shortest paths.
type Router struct {
	id          int
	networkSize int
	neighbors   []Neighbor

	pathCosts     []int
	paths         []paths.Path
	forwarding    []int
	broadcastCost int
}

func newRouter(id int, networkSize int) Router {
	r := Router{
		id:          id,
		networkSize: networkSize,
		pathCosts:   make([]int, networkSize),
		paths:       make([]paths.Path, networkSize),
		forwarding:  make([]int, networkSize),
	}
	r.reset()
	return r
}

// reset discards all the state derived from shortest paths. It is the only
// place where that state is invalidated.
func (r *Router) reset() {
	for i := range r.pathCosts {
		r.pathCosts[i] = Infinity
		r.paths[i] = paths.Path{}
		r.forwarding[i] = NoRouter
	}
	r.pathCosts[r.id-1] = 0
	r.paths[r.id-1] = paths.New(r.id)
	r.broadcastCost = Uncomputed
}

// ID returns the router's ID in [1, N].
func (r *Router) ID() int {
	return r.id
}

// NetworkSize returns the number of routers in the router's network.
func (r *Router) NetworkSize() int {
	return r.networkSize
}

// Neighbors returns the links leaving the router in increasing order of
// neighbor index.
//
// Important: the slice is a view on the router's internal structure and
// should only be used in read-only operations.
func (r *Router) Neighbors() []Neighbor {
	return r.neighbors
}

// PathCost returns the cost of the best known path to router dest, or
// Infinity if dest is not reachable.
func (r *Router) PathCost(dest int) int {
	return r.pathCosts[dest-1]
}

// PathCosts returns a copy of the path costs to every router, indexed by
// router ID minus one.
func (r *Router) PathCosts() []int {
	costs := make([]int, len(r.pathCosts))
	copy(costs, r.pathCosts)
	return costs
}

// Path returns the best known path to router dest. The path is empty if dest
// is unreachable or shortest paths have not been computed.
func (r *Router) Path(dest int) paths.Path {
	return r.paths[dest-1]
}

// NextHop returns the ID of the router that traffic for dest must be sent to,
// the router's own ID if dest is the router itself, or NoRouter if dest is
// unreachable.
func (r *Router) NextHop(dest int) int {
	return r.forwarding[dest-1]
}

// ForwardingTable returns a copy of the router's forwarding table, indexed by
// destination ID minus one.
func (r *Router) ForwardingTable() []int {
	table := make([]int, len(r.forwarding))
	copy(table, r.forwarding)
	return table
}

// BroadcastCost returns the sum of the path costs from the router to every
// router that is not down. The second returned value is false if the cost was
// not computed since the last topology change or if some router that is not
// down cannot be reached.
func (r *Router) BroadcastCost() (int, bool) {
	if r.broadcastCost == Uncomputed || r.broadcastCost == Infinity {
		return r.broadcastCost, false
	}
	return r.broadcastCost, true
}

// Computed returns true if the router's shortest paths were computed since
// the last topology change.
func (r *Router) Computed() bool {
	return r.broadcastCost != Uncomputed
}
