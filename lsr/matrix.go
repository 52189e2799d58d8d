package lsr

import (
	"fmt"
	"math"

	"github.com/rhartert/lsrsim/lsr/paths"
)

const (
	// NoEdge is the cost stored in a matrix for a missing link. Any
	// non-positive cost is read as a missing link.
	NoEdge = -1

	// MaxCost is the largest link cost accepted in a matrix.
	MaxCost = math.MaxInt32

	// MaxRouters is the largest network that can be simulated. Together with
	// MaxCost it guarantees that path costs never overflow.
	MaxRouters = 1 << 12
)

// CostMatrix is an N×N table of directed link costs stored in a single
// row-major buffer. Cost(i, j) is the cost of the link from the router at
// index i to the router at index j (indices are router IDs minus one).
type CostMatrix struct {
	n     int
	costs []int
}

// NewCostMatrix returns an n×n matrix without any link.
func NewCostMatrix(n int) *CostMatrix {
	m := &CostMatrix{
		n:     n,
		costs: make([]int, n*n),
	}
	for i := range m.costs {
		m.costs[i] = NoEdge
	}
	for i := 0; i < n; i++ {
		m.costs[i*n+i] = 0
	}
	return m
}

// CostMatrixFromRows validates rows and copies them into a new matrix. Rows
// must form a square matrix with at most MaxRouters rows, and every cost must
// be at most MaxCost.
func CostMatrixFromRows(rows [][]int) (*CostMatrix, error) {
	n := len(rows)
	if n > MaxRouters {
		return nil, fmt.Errorf("%w: %d routers, at most %d supported", ErrMatrixShape, n, MaxRouters)
	}
	m := &CostMatrix{
		n:     n,
		costs: make([]int, n*n),
	}
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrMatrixShape, i+1, len(row), n)
		}
		for j, c := range row {
			if c > MaxCost {
				return nil, fmt.Errorf("%w: cost %d at (%d, %d) exceeds %d", ErrCostRange, c, i+1, j+1, MaxCost)
			}
			m.costs[i*n+j] = c
		}
	}
	return m, nil
}

// Size returns the number of routers described by the matrix.
func (m *CostMatrix) Size() int {
	return m.n
}

// Cost returns the cost of the link from index i to index j.
func (m *CostMatrix) Cost(i int, j int) int {
	return m.costs[i*m.n+j]
}

// SetCost sets the cost of the link from index i to index j.
func (m *CostMatrix) SetCost(i int, j int, cost int) {
	m.costs[i*m.n+j] = cost
}

// HasEdge returns true if there is a link from index i to index j.
func (m *CostMatrix) HasEdge(i int, j int) bool {
	return i != j && m.Cost(i, j) > 0
}

// Rows returns a copy of the matrix as a slice of rows.
func (m *CostMatrix) Rows() [][]int {
	rows := make([][]int, m.n)
	for i := range rows {
		rows[i] = make([]int, m.n)
		copy(rows[i], m.costs[i*m.n:(i+1)*m.n])
	}
	return rows
}

// Clone returns a deep copy of the matrix.
func (m *CostMatrix) Clone() *CostMatrix {
	c := &CostMatrix{
		n:     m.n,
		costs: make([]int, len(m.costs)),
	}
	copy(c.costs, m.costs)
	return c
}

// PathCost returns the sum of the link costs along p, where p is a sequence
// of router IDs. The second returned value is false if p is empty, refers to
// an unknown router, or uses a link that does not exist.
func (m *CostMatrix) PathCost(p paths.Path) (int, bool) {
	if p.Empty() {
		return 0, false
	}
	cost := 0
	for i := 0; i < p.Length(); i++ {
		if p.Node(i) < 1 || m.n < p.Node(i) {
			return 0, false
		}
		if i == 0 {
			continue
		}
		from, to := p.Node(i-1)-1, p.Node(i)-1
		if !m.HasEdge(from, to) {
			return 0, false
		}
		cost += m.Cost(from, to)
	}
	return cost, true
}

// isolate removes every link to and from index i.
func (m *CostMatrix) isolate(i int) {
	for j := 0; j < m.n; j++ {
		m.SetCost(i, j, NoEdge)
		m.SetCost(j, i, NoEdge)
	}
}
