// Package parser reads network topologies from text files.
//
// A topology file holds one row of the cost matrix per line. Costs are
// integers separated by white space; a negative cost means that there is no
// link. Blank lines and lines starting with '#' are ignored.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rhartert/lsrsim/lsr"
)

// ParseMatrix reads the cost matrix stored in the file at filepath.
func ParseMatrix(filepath string) (*lsr.CostMatrix, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	m, err := ReadMatrix(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return m, nil
}

// ReadMatrix reads a cost matrix from r.
func ReadMatrix(r io.Reader) (*lsr.CostMatrix, error) {
	scanner := bufio.NewScanner(r)

	rows := [][]int{}
	for i := 1; scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		row := make([]int, len(parts))
		for j, p := range parts {
			c, err := strconv.Atoi(p)
			if err != nil {
				return nil, fmt.Errorf("invalid cost on line %d: %s", i, err)
			}
			row[j] = c
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no router found", lsr.ErrMatrixShape)
	}

	return lsr.CostMatrixFromRows(rows)
}

// WriteMatrix writes m to w in the format read by ReadMatrix, with costs
// separated by tabulations.
func WriteMatrix(w io.Writer, m *lsr.CostMatrix) error {
	bw := bufio.NewWriter(w)
	for _, row := range m.Rows() {
		for j, c := range row {
			if j > 0 {
				bw.WriteByte('\t')
			}
			bw.WriteString(strconv.Itoa(c))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
