package lsr

// Edge represents a directed link between two routers. From and To are router
// indices (router IDs minus one).
type Edge struct {
	From int
	To   int
	Cost int
}

// Topology is the directed graph of the links of a network. Nexts[u] holds
// the indices in Edges of the links leaving router u, in increasing order of
// destination.
type Topology struct {
	Nexts [][]int
	Edges []Edge
}

// TopologyOf returns the topology described by a cost matrix. There is an
// edge from u to v for every u != v with a positive cost.
func TopologyOf(m *CostMatrix) *Topology {
	t := &Topology{
		Nexts: make([][]int, m.Size()),
		Edges: []Edge{},
	}
	for u := 0; u < m.Size(); u++ {
		for v := 0; v < m.Size(); v++ {
			if !m.HasEdge(u, v) {
				continue
			}
			t.Nexts[u] = append(t.Nexts[u], len(t.Edges))
			t.Edges = append(t.Edges, Edge{From: u, To: v, Cost: m.Cost(u, v)})
		}
	}
	return t
}
