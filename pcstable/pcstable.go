// Package pcstable implements the PC-Stable constraint-based structure
// learner: a stable (order-independent) skeleton search followed by
// v-structure orientation and a Meek closure.
package pcstable

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/martinvoss/pcdag/graph"
	"github.com/martinvoss/pcdag/independence"
	"github.com/martinvoss/pcdag/meek"
	"github.com/martinvoss/pcdag/prior"
)

// Config controls the learner's phase-3 depth and concurrency.
type Config struct {
	// MeekUntil caps Meek rule application at R1..R{MeekUntil}; 0 or
	// out of [1,4] means run all four rules to fixpoint.
	MeekUntil int
	// Parallel dispatches each level's independence queries across a
	// bounded worker pool instead of running them serially.
	Parallel bool
}

// Result is the outcome of a PC-Stable run.
type Result struct {
	PDAG     *graph.PDAG
	SepSets  *meek.SepSets
	Warnings []string
}

// Run learns a CPDAG over labels using test for conditional-independence
// queries, honoring pk's forbidden/required edges (pk may be nil).
func Run(labels []string, test independence.Test, pk *prior.Knowledge, cfg Config) (*Result, error) {
	skel := graph.NewCompleteSkeleton(labels)
	n := skel.N()

	if pk != nil {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if pk.IsForbidden(i, j) && pk.IsForbidden(j, i) {
					skel.RemoveEdgeIdx(i, j)
				}
			}
		}
	}

	sep := meek.NewSepSets()
	var warnings []string

	for level := 0; ; level++ {
		maxAdj := 0
		for i := 0; i < n; i++ {
			if k := len(skel.NeighborsIdx(i)); k > maxAdj {
				maxAdj = k
			}
		}
		if maxAdj <= level {
			break
		}

		snapshot := skel.Snapshot()
		edges := snapshot.EdgesIdx()
		results := make([]edgeOutcome, len(edges))

		if cfg.Parallel {
			g := new(errgroup.Group)
			g.SetLimit(runtime.GOMAXPROCS(0))
			for idx, e := range edges {
				idx, e := idx, e
				g.Go(func() error {
					results[idx] = testEdge(snapshot, e[0], e[1], level, test, pk)
					return nil
				})
			}
			_ = g.Wait()
		} else {
			for idx, e := range edges {
				results[idx] = testEdge(snapshot, e[0], e[1], level, test, pk)
			}
		}

		for _, r := range results {
			warnings = append(warnings, r.warnings...)
			if r.remove {
				skel.RemoveEdgeIdx(r.x, r.y)
				sep.Set(r.x, r.y, r.z)
			}
		}
	}

	pdag, vWarnings := meek.VStructures(skel, sep, pk)
	warnings = append(warnings, vWarnings...)
	mWarnings := meek.ApplyMeek(pdag, cfg.MeekUntil, pk)
	warnings = append(warnings, mWarnings...)

	return &Result{PDAG: pdag, SepSets: sep, Warnings: warnings}, nil
}

type edgeOutcome struct {
	x, y     int
	remove   bool
	z        []int
	warnings []string
}

// testEdge evaluates edge (x,y) against every size-level subset of
// Adj(x)\{y}, then Adj(y)\{x}, stopping at the first conditioning set
// that renders x and y independent. A required edge is never tested.
// A test error (degenerate contingency/covariance) is treated as
// non-independent per the NaN failure policy and recorded as a warning.
func testEdge(snap *graph.Skeleton, x, y, level int, test independence.Test, pk *prior.Knowledge) edgeOutcome {
	out := edgeOutcome{x: x, y: y}
	if pk != nil && (pk.IsRequired(x, y) || pk.IsRequired(y, x)) {
		return out
	}

	xLabel, yLabel := snap.Label(x), snap.Label(y)

	adjX := without(snap.NeighborsIdx(x), y)
	if len(adjX) >= level {
		for _, z := range combinations(adjX, level) {
			indep, err := test.Call(x, y, z)
			if err != nil {
				out.warnings = append(out.warnings, fmt.Sprintf(
					"pcstable: CI test failed for %s,%s | %v: %v (treated as dependent)", xLabel, yLabel, z, err))
				continue
			}
			if indep {
				out.remove = true
				out.z = z
				return out
			}
		}
	}

	adjY := without(snap.NeighborsIdx(y), x)
	if len(adjY) >= level {
		for _, z := range combinations(adjY, level) {
			indep, err := test.Call(x, y, z)
			if err != nil {
				out.warnings = append(out.warnings, fmt.Sprintf(
					"pcstable: CI test failed for %s,%s | %v: %v (treated as dependent)", xLabel, yLabel, z, err))
				continue
			}
			if indep {
				out.remove = true
				out.z = z
				return out
			}
		}
	}

	return out
}

func without(xs []int, v int) []int {
	out := make([]int, 0, len(xs))
	for _, x := range xs {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// combinations returns every size-k subset of xs (xs assumed already
// sorted/ascending), preserving ascending order within each subset.
func combinations(xs []int, k int) [][]int {
	if k == 0 {
		return [][]int{{}}
	}
	if k > len(xs) {
		return nil
	}
	var out [][]int
	var pick func(start int, cur []int)
	pick = func(start int, cur []int) {
		if len(cur) == k {
			out = append(out, append([]int(nil), cur...))
			return
		}
		for i := start; i < len(xs); i++ {
			pick(i+1, append(cur, xs[i]))
		}
	}
	pick(0, nil)
	return out
}
