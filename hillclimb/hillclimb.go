// Package hillclimb implements greedy hill-climbing score-based
// structure search: at each step, apply the highest-scoring legal
// add/delete/reverse move until no positive-delta move remains.
package hillclimb

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/martinvoss/pcdag/graph"
	"github.com/martinvoss/pcdag/prior"
	"github.com/martinvoss/pcdag/scores"
)

// opKind orders move kinds for the lexicographic tie-break.
type opKind int

const (
	opAdd opKind = iota
	opDelete
	opReverse
)

// Config controls search termination and restart policy.
type Config struct {
	// MaxIter caps the number of accepted moves; 0 means unbounded
	// (stop only when no positive-delta move remains).
	MaxIter int
	// MaxInDegree caps |Pa(v)| for any vertex; 0 means unbounded
	// except for the scorer's own MaxInDegreeHint.
	MaxInDegree int
	// Restarts is the number of additional random-restart attempts
	// (0 means a single deterministic run from Initial).
	Restarts int
	// RestartPerturbations is the number of random edge flips applied
	// to seed each restart.
	RestartPerturbations int
	// Seed seeds the restart perturbation generator.
	Seed uint64
}

// Result is the outcome of a hill-climbing run.
type Result struct {
	DAG   *graph.DAG
	Score float64
}

// Run searches for a high-scoring DAG over labels, starting from
// initial (or an empty DAG if nil), honoring pk's forbidden/required
// edges (pk may be nil). Required edges missing from the start graph
// (initial or the empty default) are inserted up-front; an error is
// returned if one of them would close a cycle.
func Run(labels []string, score scores.Score, pk *prior.Knowledge, initial *graph.DAG, cfg Config) (*Result, error) {
	start := initial
	if start == nil {
		start = graph.NewDAG(labels)
	} else {
		start = start.Copy()
	}
	if pk != nil {
		for _, p := range pk.Required() {
			if !start.HasEdgeIdx(p.X, p.Y) {
				if err := start.AddEdgeIdx(p.X, p.Y); err != nil {
					return nil, fmt.Errorf("hillclimb: required edge %s -> %s conflicts with initial graph: %w",
						start.Label(p.X), start.Label(p.Y), err)
				}
			}
		}
	}

	best, bestScore, err := climb(start, score, pk, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Restarts > 0 {
		rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
		for r := 0; r < cfg.Restarts; r++ {
			perturbed := perturb(start, pk, cfg.RestartPerturbations, rng)
			candidate, candidateScore, err := climb(perturbed, score, pk, cfg)
			if err != nil {
				return nil, err
			}
			if candidateScore > bestScore {
				best, bestScore = candidate, candidateScore
			}
		}
	}

	return &Result{DAG: best, Score: bestScore}, nil
}

// climb runs one deterministic greedy ascent from start to a local
// optimum, caching family scores keyed by (child, sorted-parents).
func climb(start *graph.DAG, score scores.Score, pk *prior.Knowledge, cfg Config) (*graph.DAG, float64, error) {
	dag := start.Copy()
	cache := newScoreCache(score)

	total, err := totalScore(dag, cache)
	if err != nil {
		return nil, 0, err
	}

	maxInDegree := cfg.MaxInDegree
	if maxInDegree == 0 {
		maxInDegree = score.MaxInDegreeHint()
	}

	iter := 0
	for cfg.MaxIter == 0 || iter < cfg.MaxIter {
		move, delta, err := bestMove(dag, cache, pk, maxInDegree)
		if err != nil {
			return nil, 0, err
		}
		if move == nil || delta <= 0 {
			break
		}
		if err := apply(dag, *move); err != nil {
			return nil, 0, err
		}
		total += delta
		iter++
	}

	return dag, total, nil
}

func totalScore(dag *graph.DAG, cache *scoreCache) (float64, error) {
	total := 0.0
	for i := 0; i < dag.N(); i++ {
		s, err := cache.eval(i, dag.ParentsIdx(i))
		if err != nil {
			return 0, err
		}
		total += s
	}
	return total, nil
}

// move describes one candidate structural change.
type move struct {
	kind opKind
	x, y int
}

// bestMove enumerates every legal add/delete/reverse move and returns
// the one with maximum positive score delta, breaking ties
// lexicographically by (kind, x, y).
func bestMove(dag *graph.DAG, cache *scoreCache, pk *prior.Knowledge, maxInDegree int) (*move, float64, error) {
	n := dag.N()
	var best *move
	bestDelta := 0.0

	consider := func(m move, delta float64) {
		if delta <= 0 {
			return
		}
		if best == nil || delta > bestDelta ||
			(delta == bestDelta && lessMove(m, *best)) {
			mCopy := m
			best = &mCopy
			bestDelta = delta
		}
	}

	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			if x == y {
				continue
			}

			hasEdge := dag.HasEdgeIdx(x, y)
			hasReverse := dag.HasEdgeIdx(y, x)

			if !hasEdge && !hasReverse {
				if forbidden(pk, x, y) {
					continue
				}
				if dag.WouldCreateCycle(x, y) {
					continue
				}
				parents := dag.ParentsIdx(y)
				if maxInDegree > 0 && len(parents) >= maxInDegree {
					continue
				}
				delta, err := addDelta(cache, y, parents, x)
				if err != nil {
					return nil, 0, err
				}
				consider(move{opAdd, x, y}, delta)
			}

			if hasEdge {
				if required(pk, x, y) {
					continue
				}
				parents := dag.ParentsIdx(y)
				delta, err := deleteDelta(cache, y, parents, x)
				if err != nil {
					return nil, 0, err
				}
				consider(move{opDelete, x, y}, delta)

				if !forbidden(pk, y, x) {
					if reverseAcyclic(dag, x, y) {
						xParents := dag.ParentsIdx(x)
						if maxInDegree == 0 || len(xParents) < maxInDegree {
							delDelta, err := deleteDelta(cache, y, parents, x)
							if err != nil {
								return nil, 0, err
							}
							addD, err := addDelta(cache, x, xParents, y)
							if err != nil {
								return nil, 0, err
							}
							consider(move{opReverse, x, y}, delDelta+addD)
						}
					}
				}
			}
		}
	}

	return best, bestDelta, nil
}

func lessMove(a, b move) bool {
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	if a.x != b.x {
		return a.x < b.x
	}
	return a.y < b.y
}

func forbidden(pk *prior.Knowledge, x, y int) bool { return pk != nil && pk.IsForbidden(x, y) }
func required(pk *prior.Knowledge, x, y int) bool  { return pk != nil && pk.IsRequired(x, y) }

// reverseAcyclic reports whether reversing x->y to y->x would keep the
// graph acyclic: true unless some other directed path from x to y
// survives the removal of the direct edge.
func reverseAcyclic(dag *graph.DAG, x, y int) bool {
	cp := dag.CopyIdx()
	cp.RemoveEdgeIdx(x, y)
	return !cp.WouldCreateCycle(y, x)
}

func addDelta(cache *scoreCache, child int, parents []int, add int) (float64, error) {
	before, err := cache.eval(child, parents)
	if err != nil {
		return 0, err
	}
	after, err := cache.eval(child, withAdded(parents, add))
	if err != nil {
		return 0, err
	}
	return after - before, nil
}

func deleteDelta(cache *scoreCache, child int, parents []int, remove int) (float64, error) {
	before, err := cache.eval(child, parents)
	if err != nil {
		return 0, err
	}
	after, err := cache.eval(child, withRemoved(parents, remove))
	if err != nil {
		return 0, err
	}
	return after - before, nil
}

func withAdded(parents []int, v int) []int {
	out := append(append([]int(nil), parents...), v)
	sort.Ints(out)
	return out
}

func withRemoved(parents []int, v int) []int {
	out := make([]int, 0, len(parents))
	for _, p := range parents {
		if p != v {
			out = append(out, p)
		}
	}
	return out
}

// apply mutates dag in place for the chosen move.
func apply(dag *graph.DAG, m move) error {
	switch m.kind {
	case opAdd:
		return dag.AddEdgeIdx(m.x, m.y)
	case opDelete:
		dag.RemoveEdgeIdx(m.x, m.y)
		return nil
	case opReverse:
		dag.RemoveEdgeIdx(m.x, m.y)
		return dag.AddEdgeIdx(m.y, m.x)
	}
	return fmt.Errorf("hillclimb: unknown move kind %d", m.kind)
}

// perturb draws n random vertex pairs to seed a restart: an existing
// edge is deleted and an absent one added (no reversals). Draws with
// x == y, and moves prior knowledge or acyclicity blocks, change nothing.
func perturb(dag *graph.DAG, pk *prior.Knowledge, n int, rng *rand.Rand) *graph.DAG {
	cp := dag.Copy()
	if n <= 0 {
		return cp
	}
	size := cp.N()
	if size < 2 {
		return cp
	}
	for i := 0; i < n; i++ {
		x := rng.IntN(size)
		y := rng.IntN(size)
		if x == y {
			continue
		}
		switch {
		case cp.HasEdgeIdx(x, y):
			if !required(pk, x, y) {
				cp.RemoveEdgeIdx(x, y)
			}
		case !cp.HasEdgeIdx(y, x) && !forbidden(pk, x, y) && !cp.WouldCreateCycle(x, y):
			_ = cp.AddEdgeIdx(x, y)
		}
	}
	return cp
}

// scoreCache memoizes family scores keyed by (child, sorted parents).
type scoreCache struct {
	score scores.Score
	cache map[string]float64
}

func newScoreCache(score scores.Score) *scoreCache {
	return &scoreCache{score: score, cache: make(map[string]float64)}
}

func (c *scoreCache) eval(child int, parents []int) (float64, error) {
	sorted := append([]int(nil), parents...)
	sort.Ints(sorted)
	key := cacheKey(child, sorted)
	if v, ok := c.cache[key]; ok {
		return v, nil
	}
	v, err := c.score.Eval(child, sorted)
	if err != nil {
		return 0, err
	}
	c.cache[key] = v
	return v, nil
}

func cacheKey(child int, parents []int) string {
	key := fmt.Sprintf("%d|", child)
	for _, p := range parents {
		key += fmt.Sprintf("%d,", p)
	}
	return key
}
