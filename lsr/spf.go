package lsr

import (
	"fmt"

	"github.com/rhartert/sparsesets"
)

// ComputeShortestPaths computes the shortest paths from router id to every
// other router, then derives the router's forwarding table and broadcast
// cost. It returns true if at least one other router is reachable.
//
// An error wrapping ErrRouterDown is returned, and nothing is computed, if
// the router was failed.
func (n *Network) ComputeShortestPaths(id int) (bool, error) {
	i, err := n.index(id)
	if err != nil {
		return false, err
	}
	if n.down.Contains(i) {
		return false, fmt.Errorf("router %d: %w", id, ErrRouterDown)
	}
	return n.populate(i), nil
}

// populate fills the routing state of the router at index src.
func (n *Network) populate(src int) bool {
	r := &n.routers[src]
	reached := n.shortestPaths(src)
	r.buildForwardingTable()
	r.broadcastCost = n.broadcastCost(r)
	return reached
}

// shortestPaths computes the costs and paths from the router at index src to
// every router it can reach. Link costs must be positive.
//
// Routers are visited in increasing order of path cost, and among routers at
// the same cost the one with the smallest ID is visited first.
func (n *Network) shortestPaths(src int) bool {
	r := &n.routers[src]
	r.reset()

	visited := sparsesets.New(n.size)
	reached := false
	for visits := 0; visits < n.size; visits++ {
		u := closest(r, visited)
		if u == NoRouter {
			break // every reachable router was visited
		}
		visited.Insert(u) // u is in [0, n.size), Insert cannot fail
		if u != src {
			reached = true
		}
		n.relax(r, u, visited)
	}
	return reached
}

// closest returns the index of the unvisited router with the smallest path
// cost, or NoRouter if no unvisited router is reachable. Ties are broken in
// favor of the smallest index.
func closest(r *Router, visited *sparsesets.Set) int {
	best := NoRouter
	for _, i := range visited.Absent() {
		c := r.pathCosts[i]
		if c == Infinity {
			continue
		}
		if best == NoRouter || c < r.pathCosts[best] || (c == r.pathCosts[best] && i < best) {
			best = i
		}
	}
	return best
}

// relax updates the paths of r through the links leaving the router at index
// u. A path is replaced by any path that is not more expensive: among paths of
// equal cost, the last one found is kept.
func (n *Network) relax(r *Router, u int, visited *sparsesets.Set) {
	for _, e := range n.topology.Nexts[u] {
		link := n.topology.Edges[e]
		v := link.To
		if visited.Contains(v) {
			continue
		}
		newCost := r.pathCosts[u] + link.Cost
		if r.pathCosts[v] < newCost {
			continue
		}
		r.pathCosts[v] = newCost
		r.paths[v] = r.paths[u].Extend(v + 1)
	}
}
