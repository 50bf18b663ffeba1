package graph

import "sort"

// StructuralHammingDistance counts edges that differ between trueEdges
// and predEdges. Edges are compared as undirected pairs first, and a
// pair present in both but oriented differently counts as one mismatch,
// so a correctly-placed-but-reversed edge counts once, not twice.
func StructuralHammingDistance(trueEdges, predEdges [][2]int) int {
	t := symmetrize(trueEdges)
	p := symmetrize(predEdges)
	tDir := make(map[[2]int]bool, len(trueEdges))
	for _, e := range trueEdges {
		tDir[e] = true
	}
	pDir := make(map[[2]int]bool, len(predEdges))
	for _, e := range predEdges {
		pDir[e] = true
	}

	diff := 0
	for e := range t {
		rev := [2]int{e[1], e[0]}
		if !p[e] || tDir[e] != pDir[e] || tDir[rev] != pDir[rev] {
			diff++
		}
	}
	for e := range p {
		if !t[e] {
			diff++
		}
	}
	return diff
}

func symmetrize(edges [][2]int) map[[2]int]bool {
	set := make(map[[2]int]bool, len(edges))
	for _, e := range edges {
		a, b := e[0], e[1]
		if a > b {
			a, b = b, a
		}
		set[[2]int{a, b}] = true
	}
	return set
}

// ConnectedComponents partitions the skeleton's vertices into connected
// components via BFS, each component's indices in ascending order,
// components ordered by their smallest member.
func (s *Skeleton) ConnectedComponents() [][]int {
	n := s.N()
	visited := make([]bool, n)
	var components [][]int

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		queue := []int{start}
		visited[start] = true
		var component []int
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			component = append(component, v)
			for _, nb := range s.NeighborsIdx(v) {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		sort.Ints(component)
		components = append(components, component)
	}
	return components
}

// ConnectedComponentLabels is the label-based wrapper for
// ConnectedComponents.
func (s *Skeleton) ConnectedComponentLabels() [][]string {
	idxComponents := s.ConnectedComponents()
	out := make([][]string, len(idxComponents))
	for i, comp := range idxComponents {
		labels := make([]string, len(comp))
		for j, v := range comp {
			labels[j] = s.labels[v]
		}
		out[i] = labels
	}
	return out
}
