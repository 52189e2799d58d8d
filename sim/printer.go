package sim

import (
	"fmt"
	"io"

	"github.com/rhartert/lsrsim/lsr"
	"github.com/rhartert/lsrsim/parser"
)

// Printer writes reports in a human readable format.
type Printer struct {
	w io.Writer
}

// NewPrinter returns a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Matrix prints a cost matrix, one row per line.
func (p *Printer) Matrix(m *lsr.CostMatrix) error {
	return parser.WriteMatrix(p.w, m)
}

// Table prints a connection table. Destinations without a next hop, and the
// source itself, are printed as "-".
func (p *Printer) Table(r *TableReport) {
	fmt.Fprintf(p.w, "Router %d Connection Table\n", r.Source)
	fmt.Fprintln(p.w, "Destination\tInterface")
	fmt.Fprintln(p.w, "========================")
	for i, hop := range r.NextHops {
		dest := i + 1
		if dest == r.Source || hop == lsr.NoRouter {
			fmt.Fprintf(p.w, "%d\t\t-\n", dest)
			continue
		}
		fmt.Fprintf(p.w, "%d\t\t%d\n", dest, hop)
	}
}

// Path prints a shortest path and its cost.
func (p *Printer) Path(r *PathReport) {
	if !r.Reachable() {
		fmt.Fprintf(p.w, "No path exists from source router %d to destination router %d in the network\n", r.Source, r.Dest)
		return
	}
	fmt.Fprintf(p.w, "Shortest Path from router %d to router %d is -\n", r.Source, r.Dest)
	fmt.Fprintln(p.w, r.Path)
	fmt.Fprintf(p.w, "Cost = %d\n", r.Cost)
}

// Fail prints the state of the network after a router failure.
func (p *Printer) Fail(r *FailReport) {
	fmt.Fprintf(p.w, "Router %d is down\n", r.Router)
	if r.Table != nil {
		p.Table(r.Table)
	}
	if r.Path != nil {
		if r.Table != nil {
			fmt.Fprintln(p.w)
		}
		p.Path(r.Path)
	}
}

// Broadcast prints the selected broadcast router and its connection table.
func (p *Printer) Broadcast(r *BroadcastReport) {
	if !r.Found {
		fmt.Fprintln(p.w, "Network Graph is disjoint (Multiple Network clusters exist)")
		fmt.Fprintln(p.w, "No global broadcast router exists")
		return
	}
	fmt.Fprintf(p.w, "Broadcast Router is Router %d\n", r.Router)
	fmt.Fprintf(p.w, "Broadcast Cost (sum of path costs to all other routers) = %d\n", r.Cost)
	p.Table(r.Table)
}

// Links prints the links of a topology, one per line.
func (p *Printer) Links(edges []lsr.Edge) {
	for _, e := range edges {
		fmt.Fprintf(p.w, "%d -> %d\t%d\n", e.From+1, e.To+1, e.Cost)
	}
}

// Error prints an error that does not stop the simulation.
func (p *Printer) Error(err error) {
	fmt.Fprintf(p.w, "Error: %s\n", err)
}
