package lsr

// buildForwardingTable derives the next hop towards every destination from
// the router's shortest paths.
func (r *Router) buildForwardingTable() {
	for dest, p := range r.paths {
		r.forwarding[dest] = p.NextHop()
	}
}

// broadcastCost returns the sum of the path costs from r to every router that
// is not down, or Infinity if one of them cannot be reached.
//
// The sum starts from the Uncomputed sentinel and is incremented once at the
// end, which makes it exactly the sum of the path costs.
func (n *Network) broadcastCost(r *Router) int {
	cost := Uncomputed
	for i, c := range r.pathCosts {
		if n.down.Contains(i) {
			continue
		}
		if c == Infinity {
			return Infinity
		}
		cost += c
	}
	cost++
	return cost
}
