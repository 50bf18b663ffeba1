// Package meek turns a PC-Stable skeleton into a CPDAG: v-structure
// detection followed by Meek's orientation rules R1-R4 applied to a
// fixpoint, both aware of prior-knowledge constraints.
package meek

import (
	"fmt"

	"github.com/martinvoss/pcdag/graph"
	"github.com/martinvoss/pcdag/prior"
)

// SepSets stores the separating set discovered for each removed edge
// during skeleton search, keyed symmetrically so sepSets.Get(x, y)
// equals sepSets.Get(y, x).
type SepSets struct {
	m map[[2]int][]int
}

// NewSepSets builds an empty separation-set table.
func NewSepSets() *SepSets { return &SepSets{m: make(map[[2]int][]int)} }

func sepKey(x, y int) [2]int {
	if x > y {
		x, y = y, x
	}
	return [2]int{x, y}
}

// Set records the conditioning set that rendered x and y independent.
func (s *SepSets) Set(x, y int, z []int) {
	s.m[sepKey(x, y)] = append([]int(nil), z...)
}

// Get returns the recorded separating set for x, y, if any.
func (s *SepSets) Get(x, y int) ([]int, bool) {
	z, ok := s.m[sepKey(x, y)]
	return z, ok
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// VStructures seeds a PDAG from the skeleton, then orients every
// unshielded triple x - z - y (x, y not adjacent) into x -> z <- y
// whenever z is absent from sepSets(x, y) — the collider signature the
// independence tests could not explain away. Orientations forbidden by
// prior knowledge are skipped and reported as warnings.
func VStructures(skel *graph.Skeleton, sep *SepSets, pk *prior.Knowledge) (*graph.PDAG, []string) {
	pdag := graph.NewPDAGFromSkeleton(skel)
	var warnings []string

	n := skel.N()
	for z := 0; z < n; z++ {
		neighbors := skel.NeighborsIdx(z)
		for i := 0; i < len(neighbors); i++ {
			for j := i + 1; j < len(neighbors); j++ {
				x, y := neighbors[i], neighbors[j]
				if skel.HasEdgeIdx(x, y) {
					continue
				}
				zInSep := false
				if s, ok := sep.Get(x, y); ok {
					zInSep = contains(s, z)
				}
				if zInSep {
					continue
				}
				orientGuarded(pdag, x, z, pk, &warnings)
				orientGuarded(pdag, y, z, pk, &warnings)
			}
		}
	}
	return pdag, warnings
}

// orientGuarded applies an edge orientation under prior-knowledge
// constraints: if from->to is forbidden, it tries the opposite
// direction to->from instead (when that is not itself forbidden and
// would not close a directed cycle); failing that, the edge is left
// undirected and a diagnostic is recorded.
func orientGuarded(p *graph.PDAG, from, to int, pk *prior.Knowledge, warnings *[]string) {
	if pk == nil || !pk.IsForbidden(from, to) {
		p.Orient(from, to)
		return
	}
	if !pk.IsForbidden(to, from) && !p.WouldCreateDirectedCycle(to, from) {
		p.Orient(to, from)
		*warnings = append(*warnings, fmt.Sprintf(
			"meek: %s -> %s forbidden, oriented %s -> %s instead", p.Label(from), p.Label(to), p.Label(to), p.Label(from)))
		return
	}
	*warnings = append(*warnings, fmt.Sprintf(
		"meek: left %s - %s undirected, both orientations blocked by prior knowledge or acyclicity", p.Label(from), p.Label(to)))
}

// ApplyMeek applies Meek's rules R1..R{until} to a fixpoint (until
// defaults to 4 when 0 or out of range). Returns diagnostic warnings
// for orientations prior knowledge blocked.
func ApplyMeek(p *graph.PDAG, until int, pk *prior.Knowledge) []string {
	if until <= 0 || until > 4 {
		until = 4
	}
	var warnings []string
	changed := true
	for changed {
		changed = false
		if until >= 1 {
			changed = applyRule1(p, pk, &warnings) || changed
		}
		if until >= 2 {
			changed = applyRule2(p, pk, &warnings) || changed
		}
		if until >= 3 {
			changed = applyRule3(p, pk, &warnings) || changed
		}
		if until >= 4 {
			changed = applyRule4(p, pk, &warnings) || changed
		}
	}
	return warnings
}

// orientIfAllowed wraps orientGuarded and reports whether it actually
// changed the PDAG (as opposed to leaving the edge undirected because
// both orientations were blocked).
func orientIfAllowed(p *graph.PDAG, i, j int, pk *prior.Knowledge, warnings *[]string) bool {
	before := p.IsUndirected(i, j)
	orientGuarded(p, i, j, pk, warnings)
	return before && !p.IsUndirected(i, j)
}

// applyRule1 orients i - j into i -> j whenever k -> i exists with k
// and j not adjacent (else j -> i would create a new collider
// k -> i <- j).
func applyRule1(p *graph.PDAG, pk *prior.Knowledge, warnings *[]string) bool {
	changed := false
	n := p.N()
	for i := 0; i < n; i++ {
		for _, j := range p.UndirectedNeighborsIdx(i) {
			if !p.IsUndirected(i, j) {
				continue
			}
			for k := 0; k < n; k++ {
				if k == j || k == i {
					continue
				}
				if p.HasArrow(k, i) && !p.IsUndirected(k, i) && !p.HasAnyEdge(k, j) {
					if orientIfAllowed(p, i, j, pk, warnings) {
						changed = true
					}
					break
				}
			}
		}
	}
	return changed
}

// applyRule2 orients i - j into i -> j whenever a directed chain
// i -> k -> j exists (else j -> i would close the cycle i -> k -> j -> i).
func applyRule2(p *graph.PDAG, pk *prior.Knowledge, warnings *[]string) bool {
	changed := false
	n := p.N()
	for i := 0; i < n; i++ {
		for _, j := range p.UndirectedNeighborsIdx(i) {
			if !p.IsUndirected(i, j) {
				continue
			}
			for k := 0; k < n; k++ {
				if k == i || k == j {
					continue
				}
				if p.HasArrow(i, k) && !p.IsUndirected(i, k) && p.HasArrow(k, j) && !p.IsUndirected(k, j) {
					if orientIfAllowed(p, i, j, pk, warnings) {
						changed = true
					}
					break
				}
			}
		}
	}
	return changed
}

// applyRule3 orients i - j into i -> j whenever two chains i - k -> j
// and i - l -> j exist with k and l not adjacent.
func applyRule3(p *graph.PDAG, pk *prior.Knowledge, warnings *[]string) bool {
	changed := false
	n := p.N()
	for i := 0; i < n; i++ {
		for _, j := range p.UndirectedNeighborsIdx(i) {
			if !p.IsUndirected(i, j) {
				continue
			}
			candidates := make([]int, 0)
			for _, k := range p.UndirectedNeighborsIdx(i) {
				if k != j && p.HasArrow(k, j) && !p.IsUndirected(k, j) {
					candidates = append(candidates, k)
				}
			}
			found := false
			for a := 0; a < len(candidates) && !found; a++ {
				for b := a + 1; b < len(candidates) && !found; b++ {
					if !p.HasAnyEdge(candidates[a], candidates[b]) {
						found = true
					}
				}
			}
			if found {
				if orientIfAllowed(p, i, j, pk, warnings) {
					changed = true
				}
			}
		}
	}
	return changed
}

// applyRule4 orients i - j into i -> j whenever a chain i - k, k -> l,
// l -> j exists with k and j not adjacent.
func applyRule4(p *graph.PDAG, pk *prior.Knowledge, warnings *[]string) bool {
	changed := false
	n := p.N()
	for i := 0; i < n; i++ {
		for _, j := range p.UndirectedNeighborsIdx(i) {
			if !p.IsUndirected(i, j) {
				continue
			}
			found := false
			for _, k := range p.UndirectedNeighborsIdx(i) {
				if k == j || p.HasAnyEdge(k, j) {
					continue
				}
				for l := 0; l < n; l++ {
					if l == j || l == k {
						continue
					}
					if p.HasArrow(k, l) && !p.IsUndirected(k, l) && p.HasArrow(l, j) && !p.IsUndirected(l, j) {
						found = true
						break
					}
				}
				if found {
					break
				}
			}
			if found {
				if orientIfAllowed(p, i, j, pk, warnings) {
					changed = true
				}
			}
		}
	}
	return changed
}
