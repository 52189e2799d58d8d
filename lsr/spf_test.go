package lsr

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// pentagonRows describes a network with one-way links and several paths of
// equal cost.
var pentagonRows = [][]int{
	{-1, 2, 3, -1, -1},
	{2, -1, 1, 4, -1},
	{-1, 1, -1, 3, 6},
	{-1, -1, 3, -1, 1},
	{9, -1, -1, 1, -1},
}

// asymmetricRows describes a network where most links have a different cost
// in each direction and the cheapest paths avoid the direct links.
var asymmetricRows = [][]int{
	{-1, -1, -1, 10, -1, 12, 1},
	{-1, -1, 10, 17, 15, 3, -1},
	{-1, -1, -1, 12, 8, 6, 12},
	{19, -1, 4, -1, 20, 1, 2},
	{5, 16, 9, -1, -1, 6, -1},
	{13, -1, 3, 10, -1, -1, 18},
	{-1, 15, -1, 1, -1, 6, -1},
}

func TestNetwork_ComputeShortestPaths_square(t *testing.T) {
	net := mustBuild(t, squareRows)
	wantCosts := []int{0, 1, 3, 4}
	wantPaths := [][]int{{1}, {1, 2}, {1, 2, 3}, {1, 2, 3, 4}}
	wantTable := []int{1, 2, 2, 2}

	ok, err := net.ComputeShortestPaths(1)

	if err != nil || !ok {
		t.Fatalf("ComputeShortestPaths(1): want (true, nil), got (%t, %v)", ok, err)
	}
	r := mustRouter(t, net, 1)
	if diff := cmp.Diff(wantCosts, r.PathCosts()); diff != "" {
		t.Errorf("PathCosts(): mismatch (-want +got):\n%s", diff)
	}
	for dest, want := range wantPaths {
		if diff := cmp.Diff(want, r.Path(dest+1).Nodes()); diff != "" {
			t.Errorf("Path(%d): mismatch (-want +got):\n%s", dest+1, diff)
		}
	}
	if diff := cmp.Diff(wantTable, r.ForwardingTable()); diff != "" {
		t.Errorf("ForwardingTable(): mismatch (-want +got):\n%s", diff)
	}
	if got, ok := r.BroadcastCost(); !ok || got != 8 {
		t.Errorf("BroadcastCost(): want (8, true), got (%d, %t)", got, ok)
	}
}

func TestNetwork_ComputeShortestPaths_afterFailure(t *testing.T) {
	net := mustBuild(t, squareRows)
	if _, err := net.ComputeShortestPaths(1); err != nil {
		t.Fatalf("ComputeShortestPaths(1): %s", err)
	}
	if err := net.FailRouter(2); err != nil {
		t.Fatalf("FailRouter(2): %s", err)
	}
	assertReset(t, mustRouter(t, net, 1))

	ok, err := net.ComputeShortestPaths(1)

	if err != nil || !ok {
		t.Fatalf("ComputeShortestPaths(1): want (true, nil), got (%t, %v)", ok, err)
	}
	r := mustRouter(t, net, 1)
	if diff := cmp.Diff([]int{0, Infinity, 5, 4}, r.PathCosts()); diff != "" {
		t.Errorf("PathCosts(): mismatch (-want +got):\n%s", diff)
	}
	if got := r.Path(2); !got.Empty() {
		t.Errorf("Path(2): want empty, got %s", got)
	}
	if diff := cmp.Diff([]int{1, 4, 3}, r.Path(3).Nodes()); diff != "" {
		t.Errorf("Path(3): mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, NoRouter, 4, 4}, r.ForwardingTable()); diff != "" {
		t.Errorf("ForwardingTable(): mismatch (-want +got):\n%s", diff)
	}
	// Router 2 is down and excluded from the broadcast cost.
	if got, ok := r.BroadcastCost(); !ok || got != 9 {
		t.Errorf("BroadcastCost(): want (9, true), got (%d, %t)", got, ok)
	}
}

func TestNetwork_ComputeShortestPaths_onlyBridgeFailed(t *testing.T) {
	net := mustBuild(t, chainRows)
	if err := net.FailRouter(2); err != nil {
		t.Fatalf("FailRouter(2): %s", err)
	}

	ok, err := net.ComputeShortestPaths(1)

	if err != nil || ok {
		t.Fatalf("ComputeShortestPaths(1): want (false, nil), got (%t, %v)", ok, err)
	}
	r := mustRouter(t, net, 1)
	if got := r.PathCost(3); got != Infinity {
		t.Errorf("PathCost(3): want Infinity, got %d", got)
	}
	if got := r.Path(3); !got.Empty() {
		t.Errorf("Path(3): want empty, got %s", got)
	}
	if got, ok := r.BroadcastCost(); ok {
		t.Errorf("BroadcastCost(): want unreachable, got (%d, %t)", got, ok)
	}
	if !r.Computed() {
		t.Errorf("Computed(): want true")
	}
}

func TestNetwork_ComputeShortestPaths_isolated(t *testing.T) {
	testCases := []struct {
		desc string
		rows [][]int
	}{
		{"single router", [][]int{{-1}}},
		{"no link", [][]int{{-1, -1}, {-1, -1}}},
		{"incoming link only", [][]int{{-1, -1}, {3, -1}}},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			net := mustBuild(t, tc.rows)

			ok, err := net.ComputeShortestPaths(1)

			if err != nil || ok {
				t.Fatalf("ComputeShortestPaths(1): want (false, nil), got (%t, %v)", ok, err)
			}
			r := mustRouter(t, net, 1)
			if got := r.PathCost(1); got != 0 {
				t.Errorf("PathCost(1): want 0, got %d", got)
			}
			if got := r.NextHop(1); got != 1 {
				t.Errorf("NextHop(1): want 1, got %d", got)
			}
		})
	}
}

func TestNetwork_ComputeShortestPaths_down(t *testing.T) {
	net := mustBuild(t, squareRows)
	if err := net.FailRouter(1); err != nil {
		t.Fatalf("FailRouter(1): %s", err)
	}

	ok, err := net.ComputeShortestPaths(1)

	if !errors.Is(err, ErrRouterDown) || ok {
		t.Fatalf("ComputeShortestPaths(1): want (false, %v), got (%t, %v)", ErrRouterDown, ok, err)
	}
	r := mustRouter(t, net, 1)
	if r.Computed() {
		t.Errorf("Computed(): want false for a router that is down")
	}
	assertReset(t, r)
}

func TestNetwork_ComputeShortestPaths_oneWayLinks(t *testing.T) {
	// 1-->2-->3, nothing goes back.
	net := mustBuild(t, [][]int{
		{-1, 1, -1},
		{-1, -1, 1},
		{-1, -1, -1},
	})

	for _, id := range []int{1, 2, 3} {
		if _, err := net.ComputeShortestPaths(id); err != nil {
			t.Fatalf("ComputeShortestPaths(%d): %s", id, err)
		}
	}

	if diff := cmp.Diff([]int{0, 1, 2}, mustRouter(t, net, 1).PathCosts()); diff != "" {
		t.Errorf("router 1: PathCosts(): mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{Infinity, Infinity, 0}, mustRouter(t, net, 3).PathCosts()); diff != "" {
		t.Errorf("router 3: PathCosts(): mismatch (-want +got):\n%s", diff)
	}
}

// floydWarshall returns the cost of the shortest path between every pair of
// router indices of m, or Infinity if there is none.
func floydWarshall(m *CostMatrix) [][]int {
	n := m.Size()
	dist := make([][]int, n)
	for i := range dist {
		dist[i] = make([]int, n)
		for j := range dist[i] {
			switch {
			case i == j:
				dist[i][j] = 0
			case m.HasEdge(i, j):
				dist[i][j] = m.Cost(i, j)
			default:
				dist[i][j] = Infinity
			}
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if dist[i][k] == Infinity || dist[k][j] == Infinity {
					continue
				}
				if c := dist[i][k] + dist[k][j]; c < dist[i][j] {
					dist[i][j] = c
				}
			}
		}
	}
	return dist
}

// randomRows returns the cost matrix of a network of n routers where each
// directed link exists with probability 0.4 and costs between 1 and 20.
func randomRows(rng *rand.Rand, n int) [][]int {
	rows := make([][]int, n)
	for i := range rows {
		rows[i] = make([]int, n)
		for j := range rows[i] {
			rows[i][j] = NoEdge
			if i != j && rng.Float64() < 0.4 {
				rows[i][j] = 1 + rng.Intn(20)
			}
		}
	}
	return rows
}

// assertShortestPaths computes the shortest paths of every router that is not
// down and checks them against an exhaustive recomputation.
func assertShortestPaths(t *testing.T, net *Network) {
	t.Helper()
	want := floydWarshall(net.Matrix())

	for src := 1; src <= net.Size(); src++ {
		if net.IsDown(src) {
			continue
		}
		if _, err := net.ComputeShortestPaths(src); err != nil {
			t.Fatalf("ComputeShortestPaths(%d): %s", src, err)
		}
		r := mustRouter(t, net, src)

		if diff := cmp.Diff(want[src-1], r.PathCosts()); diff != "" {
			t.Errorf("router %d: PathCosts(): mismatch (-want +got):\n%s", src, diff)
			continue
		}
		for dest := 1; dest <= net.Size(); dest++ {
			p := r.Path(dest)
			if p.Empty() {
				if r.PathCost(dest) != Infinity || r.NextHop(dest) != NoRouter {
					t.Errorf("router %d: unreachable %d has cost %d and next hop %d", src, dest, r.PathCost(dest), r.NextHop(dest))
				}
				continue
			}
			if p.Source() != src || p.Destination() != dest {
				t.Errorf("router %d: Path(%d) = %s does not go from %d to %d", src, dest, p, src, dest)
			}
			cost, ok := net.Matrix().PathCost(p)
			if !ok || cost != r.PathCost(dest) {
				t.Errorf("router %d: Path(%d) = %s costs (%d, %t), want (%d, true)", src, dest, p, cost, ok, r.PathCost(dest))
			}
			if dest != src && r.NextHop(dest) != p.Node(1) {
				t.Errorf("router %d: NextHop(%d): want %d, got %d", src, dest, p.Node(1), r.NextHop(dest))
			}
		}
	}
}

func TestNetwork_ComputeShortestPaths_pathsAreConsistent(t *testing.T) {
	testCases := []struct {
		desc string
		rows [][]int
	}{
		{desc: "square", rows: squareRows},
		{desc: "chain", rows: chainRows},
		{desc: "pentagon", rows: pentagonRows},
		{desc: "asymmetric", rows: asymmetricRows},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			assertShortestPaths(t, mustBuild(t, tc.rows))
		})
	}
}

func TestNetwork_ComputeShortestPaths_randomNetworks(t *testing.T) {
	for seed := int64(0); seed < 300; seed++ {
		rng := rand.New(rand.NewSource(seed))
		rows := randomRows(rng, 6+rng.Intn(7))
		net := mustBuild(t, rows)

		assertShortestPaths(t, net)
		if t.Failed() {
			t.Fatalf("seed %d: rows = %v", seed, rows)
		}

		if err := net.FailRouter(1 + rng.Intn(net.Size())); err != nil {
			t.Fatalf("seed %d: FailRouter(): %s", seed, err)
		}
		assertShortestPaths(t, net)
		if t.Failed() {
			t.Fatalf("seed %d: rows after failure = %v", seed, net.Matrix().Rows())
		}
	}
}

func TestNetwork_ComputeShortestPaths_asymmetric(t *testing.T) {
	net := mustBuild(t, asymmetricRows)
	// 1 -> 7 -> 4 -> 3 and 1 -> 7 -> 4 -> 6 -> 3 both cost 6. The direct
	// links 1 -> 4 and 1 -> 6 are more expensive than going through 7.
	wantCosts := []int{0, 16, 6, 2, 14, 3, 1}
	wantPaths := [][]int{
		{1},
		{1, 7, 2},
		{1, 7, 4, 6, 3},
		{1, 7, 4},
		{1, 7, 4, 6, 3, 5},
		{1, 7, 4, 6},
		{1, 7},
	}
	wantTable := []int{1, 7, 7, 7, 7, 7, 7}

	if _, err := net.ComputeShortestPaths(1); err != nil {
		t.Fatalf("ComputeShortestPaths(1): %s", err)
	}

	r := mustRouter(t, net, 1)
	if diff := cmp.Diff(wantCosts, r.PathCosts()); diff != "" {
		t.Errorf("PathCosts(): mismatch (-want +got):\n%s", diff)
	}
	for dest, want := range wantPaths {
		if diff := cmp.Diff(want, r.Path(dest+1).Nodes()); diff != "" {
			t.Errorf("Path(%d): mismatch (-want +got):\n%s", dest+1, diff)
		}
	}
	if diff := cmp.Diff(wantTable, r.ForwardingTable()); diff != "" {
		t.Errorf("ForwardingTable(): mismatch (-want +got):\n%s", diff)
	}
}

func TestNetwork_ComputeShortestPaths_pentagon(t *testing.T) {
	net := mustBuild(t, pentagonRows)
	// 1 -> 3 and 1 -> 2 -> 3 both cost 3; 1 -> 2 -> 4 and 1 -> 2 -> 3 -> 4
	// both cost 6. The path found last is kept.
	wantPaths := [][]int{{1}, {1, 2}, {1, 2, 3}, {1, 2, 3, 4}, {1, 2, 3, 4, 5}}
	wantCosts := []int{0, 2, 3, 6, 7}

	if _, err := net.ComputeShortestPaths(1); err != nil {
		t.Fatalf("ComputeShortestPaths(1): %s", err)
	}

	r := mustRouter(t, net, 1)
	if diff := cmp.Diff(wantCosts, r.PathCosts()); diff != "" {
		t.Errorf("PathCosts(): mismatch (-want +got):\n%s", diff)
	}
	for dest, want := range wantPaths {
		if diff := cmp.Diff(want, r.Path(dest+1).Nodes()); diff != "" {
			t.Errorf("Path(%d): mismatch (-want +got):\n%s", dest+1, diff)
		}
	}
}

func TestNetwork_ComputeShortestPaths_idempotent(t *testing.T) {
	net := mustBuild(t, pentagonRows)
	if _, err := net.ComputeShortestPaths(2); err != nil {
		t.Fatalf("ComputeShortestPaths(2): %s", err)
	}
	r := mustRouter(t, net, 2)
	wantCosts := r.PathCosts()
	wantTable := r.ForwardingTable()
	wantPaths := [][]int{}
	for dest := 1; dest <= net.Size(); dest++ {
		wantPaths = append(wantPaths, r.Path(dest).Nodes())
	}
	wantBroadcast, _ := r.BroadcastCost()

	if _, err := net.ComputeShortestPaths(2); err != nil {
		t.Fatalf("ComputeShortestPaths(2): %s", err)
	}

	if diff := cmp.Diff(wantCosts, r.PathCosts()); diff != "" {
		t.Errorf("PathCosts(): mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantTable, r.ForwardingTable()); diff != "" {
		t.Errorf("ForwardingTable(): mismatch (-want +got):\n%s", diff)
	}
	for dest := 1; dest <= net.Size(); dest++ {
		if diff := cmp.Diff(wantPaths[dest-1], r.Path(dest).Nodes()); diff != "" {
			t.Errorf("Path(%d): mismatch (-want +got):\n%s", dest, diff)
		}
	}
	if got, _ := r.BroadcastCost(); got != wantBroadcast {
		t.Errorf("BroadcastCost(): want %d, got %d", wantBroadcast, got)
	}
}
