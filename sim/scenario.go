package sim

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rhartert/lsrsim/lsr"
	"github.com/rhartert/lsrsim/parser"
	"gopkg.in/yaml.v3"
)

// Operations of a scenario step.
const (
	OpMatrix    = "matrix"
	OpTable     = "table"
	OpPath      = "path"
	OpFail      = "fail"
	OpBroadcast = "broadcast"
	OpLinks     = "links"
)

// Scenario is a topology and a sequence of operations to run on it.
//
// Example:
//
//	topology: square.txt
//	steps:
//	  - {op: table, source: 1}
//	  - {op: path, source: 1, dest: 4}
//	  - {op: fail, router: 2}
//	  - {op: broadcast}
type Scenario struct {
	// Topology is the path to a topology file, relative to the scenario file.
	Topology string `yaml:"topology"`

	// Matrix is the cost matrix of the topology if no topology file is given.
	Matrix [][]int `yaml:"matrix"`

	// Verify enables the verification of every computed routing table.
	Verify bool `yaml:"verify"`

	Steps []Step `yaml:"steps"`

	dir string
}

// Step is a single operation of a scenario.
type Step struct {
	Op     string `yaml:"op"`
	Source int    `yaml:"source"`
	Dest   int    `yaml:"dest"`
	Router int    `yaml:"router"`
}

func (st Step) String() string {
	switch st.Op {
	case OpTable:
		return fmt.Sprintf("%s %d", st.Op, st.Source)
	case OpPath:
		return fmt.Sprintf("%s %d %d", st.Op, st.Source, st.Dest)
	case OpFail:
		return fmt.Sprintf("%s %d", st.Op, st.Router)
	default:
		return st.Op
	}
}

// LoadScenario reads the scenario stored in the YAML file at path.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sc.dir = filepath.Dir(path)
	return sc, nil
}

// ParseScenario parses a YAML scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	sc := &Scenario{}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, err
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func (sc *Scenario) validate() error {
	if sc.Topology == "" && len(sc.Matrix) == 0 {
		return fmt.Errorf("scenario must have a topology or a matrix")
	}
	if sc.Topology != "" && len(sc.Matrix) != 0 {
		return fmt.Errorf("scenario cannot have both a topology and a matrix")
	}
	for i, st := range sc.Steps {
		var err error
		switch st.Op {
		case OpMatrix, OpBroadcast, OpLinks:
		case OpTable:
			if st.Source < 1 {
				err = fmt.Errorf("missing source")
			}
		case OpPath:
			if st.Source < 1 || st.Dest < 1 {
				err = fmt.Errorf("missing source or dest")
			}
		case OpFail:
			if st.Router < 1 {
				err = fmt.Errorf("missing router")
			}
		default:
			err = fmt.Errorf("unknown operation %q", st.Op)
		}
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// CostMatrix returns the cost matrix of the scenario's topology.
func (sc *Scenario) CostMatrix() (*lsr.CostMatrix, error) {
	if sc.Topology == "" {
		return lsr.CostMatrixFromRows(sc.Matrix)
	}
	path := sc.Topology
	if !filepath.IsAbs(path) {
		path = filepath.Join(sc.dir, path)
	}
	return parser.ParseMatrix(path)
}

// Run loads the scenario's topology in s and runs every step, printing their
// results with p. Steps that target a router that is down print an error and
// the scenario continues; any other error stops it.
func (sc *Scenario) Run(s *Session, p *Printer) error {
	m, err := sc.CostMatrix()
	if err != nil {
		return err
	}
	if err := s.Load(m); err != nil {
		return err
	}
	if sc.Verify {
		s.Verify = true
	}

	for i, st := range sc.Steps {
		err := sc.runStep(st, s, p)
		if errors.Is(err, lsr.ErrRouterDown) {
			p.Error(err)
			continue
		}
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st, err)
		}
	}
	return nil
}

func (sc *Scenario) runStep(st Step, s *Session, p *Printer) error {
	switch st.Op {
	case OpMatrix:
		return p.Matrix(s.Matrix())
	case OpTable:
		r, err := s.Table(st.Source)
		if err != nil {
			return err
		}
		p.Table(r)
	case OpPath:
		r, err := s.Path(st.Source, st.Dest)
		if err != nil {
			return err
		}
		p.Path(r)
	case OpFail:
		r, err := s.Fail(st.Router)
		if err != nil {
			return err
		}
		p.Fail(r)
	case OpBroadcast:
		r, err := s.Broadcast()
		if err != nil {
			return err
		}
		p.Broadcast(r)
	case OpLinks:
		edges, err := s.Links()
		if err != nil {
			return err
		}
		p.Links(edges)
	}
	return nil
}
