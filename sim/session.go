// Package sim sequences the operations of a link-state routing simulation:
// loading a topology, building connection tables, finding shortest paths,
// failing routers and selecting a broadcast router.
package sim

import (
	"errors"
	"fmt"

	"github.com/rhartert/lsrsim/lsr"
	"github.com/rhartert/lsrsim/lsr/paths"
	"github.com/rhartert/lsrsim/parser"
	"github.com/rhartert/lsrsim/verify"
	"go.uber.org/zap"
)

var (
	// ErrNotLoaded is returned when an operation is requested before any
	// topology was loaded.
	ErrNotLoaded = errors.New("no topology loaded")

	// ErrInconsistent is returned when the verification of a routing table
	// fails.
	ErrInconsistent = errors.New("routing state does not match reference shortest paths")
)

// TableReport is the connection table of a router.
type TableReport struct {
	Source int

	// Reachable is true if at least one other router can be reached.
	Reachable bool

	// NextHops[d-1] is the next hop towards router d, the source itself for
	// d == Source, or lsr.NoRouter if d is unreachable.
	NextHops []int
}

// PathReport is the shortest path between two routers.
type PathReport struct {
	Source int
	Dest   int
	Path   paths.Path
	Cost   int
}

// Reachable returns true if there is a path from the source to the
// destination.
func (r *PathReport) Reachable() bool {
	return !r.Path.Empty()
}

// FailReport is the state of the network after a router failure, as seen
// from the session's source router.
type FailReport struct {
	Router int

	// Table is nil if the session has no source router or if the source
	// router is down. Path is nil if the session has no source or no
	// destination router, and has no route if the source router is down.
	Table *TableReport
	Path  *PathReport
}

// BroadcastReport is the result of a broadcast router selection.
type BroadcastReport struct {
	Found  bool
	Router int
	Cost   int
	Table  *TableReport
}

// Session holds the state of a simulation. The zero value is not usable, use
// NewSession.
type Session struct {
	// Source and Dest are the routers used by the last operations, or
	// lsr.NoRouter if none was used yet. Fail reports the routing state of
	// these routers after the failure.
	Source int
	Dest   int

	// Verify enables the verification of every computed routing table
	// against an independent shortest-path implementation.
	Verify bool

	net    *lsr.Network
	matrix *lsr.CostMatrix
	log    *zap.Logger
}

// NewSession returns a session without topology. A nil logger disables
// logging.
func NewSession(logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		Source: lsr.NoRouter,
		Dest:   lsr.NoRouter,
		log:    logger,
	}
}

// Load replaces the session's network with the one described by m. Routers
// that were failed in a previous network are forgotten.
func (s *Session) Load(m *lsr.CostMatrix) error {
	net, err := lsr.Build(m)
	if err != nil {
		return err
	}
	s.net = net
	s.matrix = m
	s.Source = lsr.NoRouter
	s.Dest = lsr.NoRouter
	s.log.Info("topology loaded",
		zap.Int("routers", m.Size()),
		zap.Int("links", len(net.Topology().Edges)),
	)
	return nil
}

// LoadFile loads the topology stored in the file at path.
func (s *Session) LoadFile(path string) error {
	m, err := parser.ParseMatrix(path)
	if err != nil {
		return err
	}
	return s.Load(m)
}

// Loaded returns true if a topology was loaded.
func (s *Session) Loaded() bool {
	return s.net != nil
}

// Network returns the session's network, or nil if no topology was loaded.
func (s *Session) Network() *lsr.Network {
	return s.net
}

// Matrix returns the current cost matrix, or nil if no topology was loaded.
func (s *Session) Matrix() *lsr.CostMatrix {
	return s.matrix
}

// Table computes the connection table of router source and remembers source
// for the following operations.
func (s *Session) Table(source int) (*TableReport, error) {
	if !s.Loaded() {
		return nil, ErrNotLoaded
	}
	r, reachable, err := s.compute(source)
	if err != nil {
		return nil, err
	}
	s.Source = source
	return &TableReport{
		Source:    source,
		Reachable: reachable,
		NextHops:  r.ForwardingTable(),
	}, nil
}

// Path computes the shortest path from router source to router dest and
// remembers both routers for the following operations.
func (s *Session) Path(source int, dest int) (*PathReport, error) {
	if !s.Loaded() {
		return nil, ErrNotLoaded
	}
	if _, err := s.net.Router(dest); err != nil {
		return nil, err
	}
	r, _, err := s.compute(source)
	if err != nil {
		return nil, err
	}
	s.Source = source
	s.Dest = dest
	return &PathReport{
		Source: source,
		Dest:   dest,
		Path:   r.Path(dest),
		Cost:   r.PathCost(dest),
	}, nil
}

// Fail simulates the failure of router id, then reports the connection
// table of the session's source router and its path to the session's
// destination router.
func (s *Session) Fail(id int) (*FailReport, error) {
	if !s.Loaded() {
		return nil, ErrNotLoaded
	}
	if err := s.net.FailRouter(id); err != nil {
		return nil, err
	}
	s.log.Info("router failed",
		zap.Int("router", id),
		zap.Ints("down", s.net.DownRouters()),
	)

	report := &FailReport{Router: id}
	if s.Source == lsr.NoRouter {
		return report, nil
	}
	if s.net.IsDown(s.Source) {
		if s.Dest != lsr.NoRouter {
			report.Path = &PathReport{Source: s.Source, Dest: s.Dest, Cost: lsr.Infinity}
		}
		return report, nil
	}
	table, err := s.Table(s.Source)
	if err != nil {
		return nil, err
	}
	report.Table = table
	if s.Dest == lsr.NoRouter {
		return report, nil
	}
	path, err := s.Path(s.Source, s.Dest)
	if err != nil {
		return nil, err
	}
	report.Path = path
	return report, nil
}

// Broadcast selects the router with the smallest sum of path costs to every
// router that is not down.
func (s *Session) Broadcast() (*BroadcastReport, error) {
	if !s.Loaded() {
		return nil, ErrNotLoaded
	}
	id, found := s.net.FindBroadcastRouter()
	if !found {
		s.log.Info("no broadcast router", zap.Ints("down", s.net.DownRouters()))
		return &BroadcastReport{Router: lsr.NoRouter}, nil
	}

	r, err := s.net.Router(id)
	if err != nil {
		return nil, err
	}
	if err := s.check(id); err != nil {
		return nil, err
	}
	cost, _ := r.BroadcastCost()
	s.log.Info("broadcast router selected", zap.Int("router", id), zap.Int("cost", cost))
	return &BroadcastReport{
		Found:  true,
		Router: id,
		Cost:   cost,
		Table: &TableReport{
			Source:    id,
			Reachable: true,
			NextHops:  r.ForwardingTable(),
		},
	}, nil
}

// Links returns the links of the current topology.
func (s *Session) Links() ([]lsr.Edge, error) {
	if !s.Loaded() {
		return nil, ErrNotLoaded
	}
	return s.net.Topology().Edges, nil
}

func (s *Session) compute(source int) (*lsr.Router, bool, error) {
	reachable, err := s.net.ComputeShortestPaths(source)
	if err != nil {
		return nil, false, err
	}
	s.log.Debug("shortest paths computed",
		zap.Int("source", source),
		zap.Bool("reachable", reachable),
	)
	if err := s.check(source); err != nil {
		return nil, false, err
	}
	r, err := s.net.Router(source)
	if err != nil {
		return nil, false, err
	}
	return r, reachable, nil
}

func (s *Session) check(source int) error {
	if !s.Verify {
		return nil
	}
	mismatches, err := verify.CrossCheck(s.net, source)
	if err != nil {
		return err
	}
	for _, m := range mismatches {
		s.log.Warn("verification failed", zap.Int("source", source), zap.Stringer("mismatch", m))
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("router %d: %w: %s", source, ErrInconsistent, mismatches[0])
	}
	return nil
}
