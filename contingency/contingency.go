// Package contingency builds marginal, joint, conditional, and
// joint-conditional count tables from a discrete data matrix, optionally
// reducing over parallel row chunks.
package contingency

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/martinvoss/pcdag/dataset"
	"github.com/martinvoss/pcdag/ravel"
)

// pageSize bounds the row-chunk size used by the parallel builders: a
// chunk's private table is O(pageSize/ncols * cell-width), which keeps
// per-worker memory roughly constant regardless of how wide the dataset is.
const pageSize = 4096

// Table is a flattened count tensor. Shape lists the cardinality of each
// axis (see the per-operation doc comments for axis order); Counts is
// row-major with the last axis varying fastest, matching ravel.Index.
type Table struct {
	Shape  []int
	Counts []float64
}

// At returns the count at a given index tuple.
func (t *Table) At(idx ...int) float64 {
	ix, _ := ravel.New(t.Shape)
	return t.Counts[ix.Call(idx)]
}

// Sum returns the total of every cell.
func (t *Table) Sum() float64 {
	s := 0.0
	for _, c := range t.Counts {
		s += c
	}
	return s
}

func newTable(shape []int) *Table {
	size := 1
	for _, s := range shape {
		size *= s
	}
	return &Table{Shape: append([]int(nil), shape...), Counts: make([]float64, size)}
}

func addInto(dst, src *Table) {
	for i, v := range src.Counts {
		dst.Counts[i] += v
	}
}

// Marginal builds the 1-D table of shape (card[x]) counting occurrences
// of each state of variable x.
func Marginal(d *dataset.DiscreteMatrix, x int) (*Table, error) {
	if err := checkVar(d, x); err != nil {
		return nil, err
	}
	t := newTable([]int{d.Cardinality(x)})
	for r := 0; r < d.N(); r++ {
		t.Counts[d.Value(r, x)]++
	}
	return t, nil
}

// Joint builds the 2-D table of shape (card[x], card[y]).
func Joint(d *dataset.DiscreteMatrix, x, y int) (*Table, error) {
	if err := checkVar(d, x); err != nil {
		return nil, err
	}
	if err := checkVar(d, y); err != nil {
		return nil, err
	}
	cy := d.Cardinality(y)
	t := newTable([]int{d.Cardinality(x), cy})
	for r := 0; r < d.N(); r++ {
		t.Counts[d.Value(r, x)*cy+d.Value(r, y)]++
	}
	return t, nil
}

// Conditional builds the 2-D table of shape (prod(card[z]), card[x]),
// indexed on axis 0 by the ravel of the conditioning-variable values.
// When parallel is true, rows are partitioned into chunks of
// max(pageSize/ncols, ncols), each chunk builds a private table, and the
// results are reduced by elementwise addition — an exact match for the
// serial result since integer addition is associative and commutative.
func Conditional(d *dataset.DiscreteMatrix, x int, z []int, parallel bool) (*Table, error) {
	if err := checkVar(d, x); err != nil {
		return nil, err
	}
	zIndex, _, err := zRavel(d, z)
	if err != nil {
		return nil, err
	}
	shape := []int{zIndex.Size(), d.Cardinality(x)}

	build := func(lo, hi int) *Table {
		t := newTable(shape)
		cx := d.Cardinality(x)
		zt := make([]int, len(z))
		for r := lo; r < hi; r++ {
			for i, zv := range z {
				zt[i] = d.Value(r, zv)
			}
			k := zIndex.Call(zt)
			t.Counts[k*cx+d.Value(r, x)]++
		}
		return t
	}

	if !parallel || d.N() == 0 {
		return build(0, d.N()), nil
	}
	return reduceChunks(d, len(d.Cards()), shape, build)
}

// JointConditional builds the 3-D table of shape
// (prod(card[z]), card[x], card[y]).
func JointConditional(d *dataset.DiscreteMatrix, x, y int, z []int, parallel bool) (*Table, error) {
	if err := checkVar(d, x); err != nil {
		return nil, err
	}
	if err := checkVar(d, y); err != nil {
		return nil, err
	}
	zIndex, _, err := zRavel(d, z)
	if err != nil {
		return nil, err
	}
	cx, cy := d.Cardinality(x), d.Cardinality(y)
	shape := []int{zIndex.Size(), cx, cy}

	build := func(lo, hi int) *Table {
		t := newTable(shape)
		zt := make([]int, len(z))
		for r := lo; r < hi; r++ {
			for i, zv := range z {
				zt[i] = d.Value(r, zv)
			}
			k := zIndex.Call(zt)
			t.Counts[(k*cx+d.Value(r, x))*cy+d.Value(r, y)]++
		}
		return t
	}

	if !parallel || d.N() == 0 {
		return build(0, d.N()), nil
	}
	return reduceChunks(d, len(d.Cards()), shape, build)
}

// reduceChunks partitions [0, N) into row chunks and runs build on each
// chunk concurrently via a bounded worker pool, then folds the resulting
// private tables together with elementwise addition.
func reduceChunks(d *dataset.DiscreteMatrix, ncols int, shape []int, build func(lo, hi int) *Table) (*Table, error) {
	n := d.N()
	chunkSize := pageSize / ncols
	if chunkSize < ncols {
		chunkSize = ncols
	}
	if chunkSize < 1 {
		chunkSize = 1
	}

	var bounds [][2]int
	for lo := 0; lo < n; lo += chunkSize {
		hi := lo + chunkSize
		if hi > n {
			hi = n
		}
		bounds = append(bounds, [2]int{lo, hi})
	}

	partials := make([]*Table, len(bounds))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, b := range bounds {
		i, b := i, b
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			partials[i] = build(b[0], b[1])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := newTable(shape)
	for _, p := range partials {
		addInto(total, p)
	}
	return total, nil
}

func zRavel(d *dataset.DiscreteMatrix, z []int) (*ravel.Index, []int, error) {
	if len(z) == 0 {
		ix, err := ravel.New([]int{1})
		return ix, nil, err
	}
	cards := make([]int, len(z))
	for i, v := range z {
		if err := checkVar(d, v); err != nil {
			return nil, nil, err
		}
		cards[i] = d.Cardinality(v)
	}
	ix, err := ravel.New(cards)
	return ix, cards, err
}

func checkVar(d *dataset.DiscreteMatrix, v int) error {
	if v < 0 || v >= d.NumVars() {
		return fmt.Errorf("contingency: variable index %d out of range [0,%d)", v, d.NumVars())
	}
	return nil
}
