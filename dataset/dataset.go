// Package dataset holds the typed matrices the learners consume: a
// discrete state-code matrix and a continuous real-valued matrix, both
// with a fixed, sorted variable order so two matrices built from the
// same variable names always agree on column order regardless of the
// order the caller supplied them in.
package dataset

import (
	"fmt"
	"sort"

	"github.com/martinvoss/pcdag/utils"
)

// DiscreteMatrix is an N x V matrix of small non-negative state codes,
// one column per variable, with a per-variable cardinality.
type DiscreteMatrix struct {
	names []string // sorted
	cards []int
	rows  [][]uint8
}

// NewDiscreteMatrix builds a DiscreteMatrix from column names (in any
// caller order), their cardinalities, and N rows of V state codes in
// that same caller order. Columns are reordered into sorted name order
// on construction so the variable index space is stable regardless of
// how the caller happened to list them.
func NewDiscreteMatrix(names []string, cards []int, rows [][]int) (*DiscreteMatrix, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("dataset: no variables")
	}
	if len(names) != len(cards) {
		return nil, fmt.Errorf("dataset: %d names but %d cardinalities", len(names), len(cards))
	}
	for i, c := range cards {
		if c <= 0 {
			return nil, fmt.Errorf("dataset: variable %q has non-positive cardinality %d", names[i], c)
		}
	}

	perm := sortedPermutation(names)
	sortedNames := make([]string, len(names))
	sortedCards := make([]int, len(cards))
	for newPos, oldPos := range perm {
		sortedNames[newPos] = names[oldPos]
		sortedCards[newPos] = cards[oldPos]
	}

	sortedRows := make([][]uint8, len(rows))
	for r, row := range rows {
		if len(row) != len(names) {
			return nil, fmt.Errorf("dataset: row %d has %d columns, expected %d", r, len(row), len(names))
		}
		out := make([]uint8, len(row))
		for newPos, oldPos := range perm {
			v := row[oldPos]
			if v < 0 || v >= sortedCards[newPos] {
				return nil, fmt.Errorf("dataset: row %d value %d out of range [0,%d) for variable %q", r, v, sortedCards[newPos], sortedNames[newPos])
			}
			out[newPos] = uint8(v)
		}
		sortedRows[r] = out
	}

	return &DiscreteMatrix{names: sortedNames, cards: sortedCards, rows: sortedRows}, nil
}

// FromDataFrame converts a loosely-typed utils.DataFrame of integer
// samples into a DiscreteMatrix, inferring each column's cardinality as
// one plus the maximum observed state code.
func FromDataFrame(df *utils.DataFrame) (*DiscreteMatrix, error) {
	cards := make([]int, len(df.Columns))
	for _, row := range df.Data {
		for i, col := range df.Columns {
			if v := row[col] + 1; v > cards[i] {
				cards[i] = v
			}
		}
	}
	rows := make([][]int, len(df.Data))
	for r, row := range df.Data {
		vals := make([]int, len(df.Columns))
		for i, col := range df.Columns {
			vals[i] = row[col]
		}
		rows[r] = vals
	}
	return NewDiscreteMatrix(df.Columns, cards, rows)
}

// Names returns the sorted variable names.
func (d *DiscreteMatrix) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// NumVars returns the number of variables (columns).
func (d *DiscreteMatrix) NumVars() int { return len(d.names) }

// N returns the number of samples (rows).
func (d *DiscreteMatrix) N() int { return len(d.rows) }

// Cardinality returns the cardinality of variable i.
func (d *DiscreteMatrix) Cardinality(i int) int { return d.cards[i] }

// Cards returns a copy of every variable's cardinality, in index order.
func (d *DiscreteMatrix) Cards() []int {
	out := make([]int, len(d.cards))
	copy(out, d.cards)
	return out
}

// IndexOf returns the index of a variable by name.
func (d *DiscreteMatrix) IndexOf(name string) (int, bool) {
	for i, n := range d.names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// Value returns the state code of variable col in sample row.
func (d *DiscreteMatrix) Value(row, col int) int {
	return int(d.rows[row][col])
}

// Column returns every sample's value for variable col.
func (d *DiscreteMatrix) Column(col int) []uint8 {
	out := make([]uint8, len(d.rows))
	for r, row := range d.rows {
		out[r] = row[col]
	}
	return out
}

// ContinuousMatrix is an N x V matrix of real values, one column per
// variable, with a fixed sorted variable order.
type ContinuousMatrix struct {
	names []string
	rows  [][]float64
}

// NewContinuousMatrix builds a ContinuousMatrix, reordering columns into
// sorted name order exactly as NewDiscreteMatrix does.
func NewContinuousMatrix(names []string, rows [][]float64) (*ContinuousMatrix, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("dataset: no variables")
	}

	perm := sortedPermutation(names)
	sortedNames := make([]string, len(names))
	for newPos, oldPos := range perm {
		sortedNames[newPos] = names[oldPos]
	}

	sortedRows := make([][]float64, len(rows))
	for r, row := range rows {
		if len(row) != len(names) {
			return nil, fmt.Errorf("dataset: row %d has %d columns, expected %d", r, len(row), len(names))
		}
		out := make([]float64, len(row))
		for newPos, oldPos := range perm {
			out[newPos] = row[oldPos]
		}
		sortedRows[r] = out
	}

	return &ContinuousMatrix{names: sortedNames, rows: sortedRows}, nil
}

// Names returns the sorted variable names.
func (c *ContinuousMatrix) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// NumVars returns the number of variables (columns).
func (c *ContinuousMatrix) NumVars() int { return len(c.names) }

// N returns the number of samples (rows).
func (c *ContinuousMatrix) N() int { return len(c.rows) }

// Value returns the value of variable col in sample row.
func (c *ContinuousMatrix) Value(row, col int) float64 { return c.rows[row][col] }

// Column returns every sample's value for variable col.
func (c *ContinuousMatrix) Column(col int) []float64 {
	out := make([]float64, len(c.rows))
	for r, row := range c.rows {
		out[r] = row[col]
	}
	return out
}

// Row returns a copy of sample row across all variables.
func (c *ContinuousMatrix) Row(row int) []float64 {
	out := make([]float64, len(c.rows[row]))
	copy(out, c.rows[row])
	return out
}

// sortedPermutation returns, for each position in the sorted order, the
// index into the original slice that should be placed there.
func sortedPermutation(names []string) []int {
	perm := make([]int, len(names))
	for i := range perm {
		perm[i] = i
	}
	sort.Slice(perm, func(a, b int) bool {
		return names[perm[a]] < names[perm[b]]
	})
	return perm
}
