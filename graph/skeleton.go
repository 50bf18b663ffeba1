package graph

import "sort"

// Skeleton is an undirected graph over a fixed label set, backed by a
// symmetric dense boolean adjacency matrix. It is the PC-Stable
// learner's working structure during the adjacency-search phase, and
// the output of DAG.Moralize.
type Skeleton struct {
	labels []string
	index  map[string]int
	adj    [][]bool
}

// NewSkeleton builds an empty skeleton over the given label set.
func NewSkeleton(labels []string) *Skeleton {
	sorted := uniqueSorted(labels)
	n := len(sorted)
	index := make(map[string]int, n)
	adj := make([][]bool, n)
	for i, l := range sorted {
		index[l] = i
		adj[i] = make([]bool, n)
	}
	return &Skeleton{labels: sorted, index: index, adj: adj}
}

// NewCompleteSkeleton builds a skeleton over the given labels with
// every pair of distinct vertices connected, the PC algorithm's
// starting point.
func NewCompleteSkeleton(labels []string) *Skeleton {
	s := NewSkeleton(labels)
	n := len(s.labels)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s.AddEdgeIdx(i, j)
		}
	}
	return s
}

// N returns the number of vertices.
func (s *Skeleton) N() int { return len(s.labels) }

// Labels returns the sorted label set.
func (s *Skeleton) Labels() []string { return append([]string(nil), s.labels...) }

// IndexOf resolves a label to its vertex index.
func (s *Skeleton) IndexOf(label string) (int, bool) {
	i, ok := s.index[label]
	return i, ok
}

// Label resolves a vertex index back to its label.
func (s *Skeleton) Label(i int) string { return s.labels[i] }

// HasEdgeIdx reports whether an edge between a and b exists.
func (s *Skeleton) HasEdgeIdx(a, b int) bool { return s.adj[a][b] }

// AddEdgeIdx adds an undirected edge between a and b.
func (s *Skeleton) AddEdgeIdx(a, b int) {
	s.adj[a][b] = true
	s.adj[b][a] = true
}

// RemoveEdgeIdx removes the edge between a and b, if present.
func (s *Skeleton) RemoveEdgeIdx(a, b int) {
	s.adj[a][b] = false
	s.adj[b][a] = false
}

// NeighborsIdx returns the indices adjacent to node in ascending order.
func (s *Skeleton) NeighborsIdx(node int) []int {
	out := make([]int, 0)
	for j, has := range s.adj[node] {
		if has {
			out = append(out, j)
		}
	}
	return out
}

// EdgesIdx returns each undirected edge once, as ascending (a, b) pairs.
func (s *Skeleton) EdgesIdx() [][2]int {
	out := make([][2]int, 0)
	n := len(s.labels)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if s.adj[i][j] {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}

// Snapshot returns a frozen copy of the current adjacency, used by
// PC-Stable to test edges against a fixed per-level neighbor set
// rather than one mutating mid-level.
func (s *Skeleton) Snapshot() *Skeleton { return s.Copy() }

// Copy creates a deep copy of the skeleton.
func (s *Skeleton) Copy() *Skeleton {
	n := len(s.labels)
	cp := &Skeleton{
		labels: append([]string(nil), s.labels...),
		index:  make(map[string]int, n),
		adj:    make([][]bool, n),
	}
	for l, i := range s.index {
		cp.index[l] = i
	}
	for i := range s.adj {
		cp.adj[i] = append([]bool(nil), s.adj[i]...)
	}
	return cp
}

// SubgraphIdx constructs the generic subgraph on vertices with exactly
// edges; an edge touching a vertex outside the subset is dropped.
func (s *Skeleton) SubgraphIdx(vertices []int, edges [][2]int) *Skeleton {
	labels := make([]string, len(vertices))
	for i, v := range vertices {
		labels[i] = s.labels[v]
	}
	sub := NewSkeleton(labels)
	for _, e := range edges {
		aLabel, bLabel := s.labels[e[0]], s.labels[e[1]]
		ai, ok1 := sub.index[aLabel]
		bi, ok2 := sub.index[bLabel]
		if ok1 && ok2 {
			sub.AddEdgeIdx(ai, bi)
		}
	}
	return sub
}

// SubgraphByVerticesIdx constructs the vertex-induced subgraph: keep
// vertices and every edge of s whose endpoints both survive.
func (s *Skeleton) SubgraphByVerticesIdx(vertices []int) *Skeleton {
	present := make(map[int]bool, len(vertices))
	for _, v := range vertices {
		present[v] = true
	}
	var edges [][2]int
	for _, v := range vertices {
		for _, n := range s.NeighborsIdx(v) {
			if present[n] && v < n {
				edges = append(edges, [2]int{v, n})
			}
		}
	}
	return s.SubgraphIdx(vertices, edges)
}

// SubgraphByEdgesIdx constructs the edge-induced subgraph: the vertex
// set is the union of edges' endpoints, restricted to exactly edges.
func (s *Skeleton) SubgraphByEdgesIdx(edges [][2]int) *Skeleton {
	seen := make(map[int]bool)
	vertices := make([]int, 0)
	for _, e := range edges {
		for _, v := range e {
			if !seen[v] {
				seen[v] = true
				vertices = append(vertices, v)
			}
		}
	}
	return s.SubgraphIdx(vertices, edges)
}

// Subgraph is the label-based wrapper for SubgraphIdx.
func (s *Skeleton) Subgraph(vertices []string, edges [][2]string) *Skeleton {
	return s.SubgraphIdx(s.toIndices(vertices), s.toIndexEdges(edges))
}

// SubgraphByVertices is the label-based wrapper for SubgraphByVerticesIdx.
func (s *Skeleton) SubgraphByVertices(vertices []string) *Skeleton {
	return s.SubgraphByVerticesIdx(s.toIndices(vertices))
}

// SubgraphByEdges is the label-based wrapper for SubgraphByEdgesIdx.
func (s *Skeleton) SubgraphByEdges(edges [][2]string) *Skeleton {
	return s.SubgraphByEdgesIdx(s.toIndexEdges(edges))
}

func (s *Skeleton) toIndices(labels []string) []int {
	out := make([]int, 0, len(labels))
	for _, l := range labels {
		if i, ok := s.index[l]; ok {
			out = append(out, i)
		}
	}
	return out
}

func (s *Skeleton) toIndexEdges(edges [][2]string) [][2]int {
	out := make([][2]int, 0, len(edges))
	for _, e := range edges {
		ai, ok1 := s.index[e[0]]
		bi, ok2 := s.index[e[1]]
		if ok1 && ok2 {
			out = append(out, [2]int{ai, bi})
		}
	}
	return out
}

// ----------------------------------------------------------------------
// Label-based wrappers.
// ----------------------------------------------------------------------

// AddNode is a no-op if node already exists; present for callers
// migrating from the old map-backed undirected graph.
func (s *Skeleton) AddNode(node string) {
	if _, ok := s.index[node]; ok {
		return
	}
	i := len(s.labels)
	s.labels = append(s.labels, node)
	s.index[node] = i
	for r := range s.adj {
		s.adj[r] = append(s.adj[r], false)
	}
	s.adj = append(s.adj, make([]bool, len(s.labels)))
}

// AddEdge adds an undirected edge by label.
func (s *Skeleton) AddEdge(a, b string) {
	s.AddNode(a)
	s.AddNode(b)
	s.AddEdgeIdx(s.index[a], s.index[b])
}

// RemoveEdge removes an undirected edge by label.
func (s *Skeleton) RemoveEdge(a, b string) {
	ai, ok1 := s.index[a]
	bi, ok2 := s.index[b]
	if ok1 && ok2 {
		s.RemoveEdgeIdx(ai, bi)
	}
}

// HasEdge reports whether the labeled edge exists.
func (s *Skeleton) HasEdge(a, b string) bool {
	ai, ok1 := s.index[a]
	bi, ok2 := s.index[b]
	return ok1 && ok2 && s.adj[ai][bi]
}

// Nodes returns all labels in sorted order.
func (s *Skeleton) Nodes() []string { return s.Labels() }

// Neighbors returns the sorted labels adjacent to node.
func (s *Skeleton) Neighbors(node string) []string {
	i, ok := s.index[node]
	if !ok {
		return nil
	}
	idx := s.NeighborsIdx(i)
	out := make([]string, len(idx))
	for k, j := range idx {
		out[k] = s.labels[j]
	}
	sort.Strings(out)
	return out
}

// Edges returns each undirected edge once, as label pairs.
func (s *Skeleton) Edges() [][2]string {
	idx := s.EdgesIdx()
	out := make([][2]string, len(idx))
	for k, e := range idx {
		out[k] = [2]string{s.labels[e[0]], s.labels[e[1]]}
	}
	return out
}
