// Package verify checks the routing state computed by the lsr package against
// an independent shortest-path implementation.
package verify

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/RyanCarrier/dijkstra"
	"github.com/rhartert/lsrsim/lsr"
)

// ErrNotComputed is returned when the router to check has no routing state.
var ErrNotComputed = errors.New("shortest paths not computed")

// Mismatch reports a destination for which the router's routing state is
// wrong.
type Mismatch struct {
	Dest int

	// Cost of the shortest path found by the reference implementation, or
	// lsr.Infinity if the destination is unreachable.
	Want int

	// Cost stored in the router.
	Got int

	// Reason describes what is wrong.
	Reason string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("destination %d: %s (want cost %s, got %s)", m.Dest, m.Reason, costString(m.Want), costString(m.Got))
}

func costString(c int) string {
	if c == lsr.Infinity {
		return "inf"
	}
	return strconv.Itoa(c)
}

// Graph returns the reference graph of the network's cost matrix. Vertices are
// named after the router IDs.
func Graph(net *lsr.Network) (*dijkstra.Graph, error) {
	g := dijkstra.NewGraph()
	for id := 1; id <= net.Size(); id++ {
		g.AddMappedVertex(strconv.Itoa(id))
	}
	for _, e := range lsr.TopologyOf(net.Matrix()).Edges {
		from, to := strconv.Itoa(e.From+1), strconv.Itoa(e.To+1)
		if err := g.AddMappedArc(from, to, int64(e.Cost)); err != nil {
			return nil, fmt.Errorf("error adding link %s -> %s: %s", from, to, err)
		}
	}
	return g, nil
}

// CrossCheck compares the path costs of router source with the ones found by
// the reference implementation, and checks that every path is made of
// existing links and costs what the router says. It returns the list of
// destinations that disagree, which is empty if the routing state is correct.
func CrossCheck(net *lsr.Network, source int) ([]Mismatch, error) {
	r, err := net.Router(source)
	if err != nil {
		return nil, err
	}
	if !r.Computed() {
		return nil, fmt.Errorf("router %d: %w", source, ErrNotComputed)
	}

	g, err := Graph(net)
	if err != nil {
		return nil, err
	}
	src, err := g.GetMapping(strconv.Itoa(source))
	if err != nil {
		return nil, err
	}

	mismatches := []Mismatch{}
	for dest := 1; dest <= net.Size(); dest++ {
		got := r.PathCost(dest)
		if dest == source {
			if got != 0 {
				mismatches = append(mismatches, Mismatch{dest, 0, got, "non-zero cost to itself"})
			}
			continue
		}

		want := lsr.Infinity
		dst, err := g.GetMapping(strconv.Itoa(dest))
		if err != nil {
			return nil, err
		}
		if best, err := g.Shortest(src, dst); err == nil {
			want = int(best.Distance)
		}

		if want != got {
			mismatches = append(mismatches, Mismatch{dest, want, got, "cost differs"})
			continue
		}
		if got == lsr.Infinity {
			continue
		}
		p := r.Path(dest)
		if c, ok := net.Matrix().PathCost(p); !ok || c != got {
			mismatches = append(mismatches, Mismatch{dest, want, got, fmt.Sprintf("path %s is not valid", p)})
			continue
		}
		if r.NextHop(dest) != p.NextHop() {
			mismatches = append(mismatches, Mismatch{dest, want, got, fmt.Sprintf("next hop %d is not on path %s", r.NextHop(dest), p)})
		}
	}
	return mismatches, nil
}
