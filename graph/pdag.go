package graph

// PDAG is a partially directed acyclic graph: each vertex pair carries
// independent directed edges in each orientation, so an edge may be
// undirected (both directions present), directed (one direction), or
// absent (neither). Meek's rules and v-structure orientation operate
// on a PDAG to turn a Skeleton into a CPDAG.
type PDAG struct {
	labels []string
	index  map[string]int
	adj    [][]bool // adj[a][b] means a -> b (or a - b if adj[b][a] too)
}

// NewPDAG builds an empty PDAG (no arrows in either direction) over the
// given label set.
func NewPDAG(labels []string) *PDAG {
	sorted := uniqueSorted(labels)
	n := len(sorted)
	index := make(map[string]int, n)
	adj := make([][]bool, n)
	for i, l := range sorted {
		index[l] = i
		adj[i] = make([]bool, n)
	}
	return &PDAG{labels: sorted, index: index, adj: adj}
}

// NewPDAGFromSkeleton seeds a PDAG with every skeleton edge present in
// both directions (i.e. fully undirected).
func NewPDAGFromSkeleton(s *Skeleton) *PDAG {
	n := s.N()
	p := &PDAG{
		labels: append([]string(nil), s.labels...),
		index:  make(map[string]int, n),
		adj:    make([][]bool, n),
	}
	for l, i := range s.index {
		p.index[l] = i
	}
	for i := range p.adj {
		p.adj[i] = make([]bool, n)
	}
	for _, e := range s.EdgesIdx() {
		p.adj[e[0]][e[1]] = true
		p.adj[e[1]][e[0]] = true
	}
	return p
}

// N returns the number of vertices.
func (p *PDAG) N() int { return len(p.labels) }

// Labels returns the sorted label set.
func (p *PDAG) Labels() []string { return append([]string(nil), p.labels...) }

// IndexOf resolves a label to its vertex index.
func (p *PDAG) IndexOf(label string) (int, bool) {
	i, ok := p.index[label]
	return i, ok
}

// Label resolves a vertex index back to its label.
func (p *PDAG) Label(i int) string { return p.labels[i] }

// HasArrow reports whether a -> b is present (regardless of b -> a).
func (p *PDAG) HasArrow(a, b int) bool { return p.adj[a][b] }

// IsUndirected reports whether a - b is present as an undirected edge.
func (p *PDAG) IsUndirected(a, b int) bool { return p.adj[a][b] && p.adj[b][a] }

// IsDirected reports whether exactly one of a->b, b->a holds.
func (p *PDAG) IsDirected(a, b int) bool { return p.adj[a][b] != p.adj[b][a] }

// HasAnyEdge reports whether a and b are adjacent in either direction.
func (p *PDAG) HasAnyEdge(a, b int) bool { return p.adj[a][b] || p.adj[b][a] }

// Orient collapses an undirected edge a - b into the directed a -> b
// by removing the b -> a arrow.
func (p *PDAG) Orient(a, b int) { p.adj[b][a] = false }

// RemoveEdge removes both directions between a and b.
func (p *PDAG) RemoveEdge(a, b int) {
	p.adj[a][b] = false
	p.adj[b][a] = false
}

// SetUndirected restores both directions between a and b.
func (p *PDAG) SetUndirected(a, b int) {
	p.adj[a][b] = true
	p.adj[b][a] = true
}

// AdjacentIdx returns every vertex adjacent to node in either direction.
func (p *PDAG) AdjacentIdx(node int) []int {
	out := make([]int, 0)
	for j := 0; j < len(p.labels); j++ {
		if j != node && p.HasAnyEdge(node, j) {
			out = append(out, j)
		}
	}
	return out
}

// ParentsIdx returns vertices with a directed edge into node.
func (p *PDAG) ParentsIdx(node int) []int {
	out := make([]int, 0)
	for i := 0; i < len(p.labels); i++ {
		if p.adj[i][node] && !p.adj[node][i] {
			out = append(out, i)
		}
	}
	return out
}

// UndirectedNeighborsIdx returns vertices joined to node by an
// undirected edge.
func (p *PDAG) UndirectedNeighborsIdx(node int) []int {
	out := make([]int, 0)
	for j := 0; j < len(p.labels); j++ {
		if j != node && p.IsUndirected(node, j) {
			out = append(out, j)
		}
	}
	return out
}

// EdgesIdx returns every present edge as (from, to) pairs: a directed
// edge yields one pair, an undirected edge yields both orientations.
func (p *PDAG) EdgesIdx() [][2]int {
	out := make([][2]int, 0)
	for i := 0; i < len(p.labels); i++ {
		for j := 0; j < len(p.labels); j++ {
			if i != j && p.adj[i][j] {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}

// WouldCreateDirectedCycle reports whether orienting a -> b (on top of
// the PDAG's already-directed edges) would close a directed cycle,
// i.e. b can already reach a via directed-only edges.
func (p *PDAG) WouldCreateDirectedCycle(a, b int) bool {
	visited := make([]bool, len(p.labels))
	var dfs func(int) bool
	dfs = func(node int) bool {
		if node == a {
			return true
		}
		if visited[node] {
			return false
		}
		visited[node] = true
		for j := 0; j < len(p.labels); j++ {
			if p.adj[node][j] && !p.adj[j][node] {
				if dfs(j) {
					return true
				}
			}
		}
		return false
	}
	return dfs(b)
}

// ToDAG converts a fully-oriented PDAG (no remaining undirected edges)
// into a DAG. It is the caller's responsibility to ensure this: any
// leftover undirected edge is dropped silently, matching the
// convention that an unresolved CPDAG edge has no causal claim.
func (p *PDAG) ToDAG() *DAG {
	d := NewDAG(p.labels)
	for i := 0; i < len(p.labels); i++ {
		for j := 0; j < len(p.labels); j++ {
			if p.adj[i][j] && !p.adj[j][i] {
				_ = d.AddEdgeIdx(i, j)
			}
		}
	}
	return d
}

// SubgraphIdx constructs the generic subgraph on vertices with exactly
// the arrows in edges (interpreted as (from, to) pairs); an arrow
// touching a vertex outside the subset is dropped.
func (p *PDAG) SubgraphIdx(vertices []int, edges [][2]int) *PDAG {
	labels := make([]string, len(vertices))
	for i, v := range vertices {
		labels[i] = p.labels[v]
	}
	sub := NewPDAG(labels)
	for _, e := range edges {
		fromLabel, toLabel := p.labels[e[0]], p.labels[e[1]]
		fi, ok1 := sub.index[fromLabel]
		ti, ok2 := sub.index[toLabel]
		if ok1 && ok2 {
			sub.adj[fi][ti] = true
		}
	}
	return sub
}

// SubgraphByVerticesIdx constructs the vertex-induced subgraph: keep
// vertices and every arrow of p whose endpoints both survive.
func (p *PDAG) SubgraphByVerticesIdx(vertices []int) *PDAG {
	present := make(map[int]bool, len(vertices))
	for _, v := range vertices {
		present[v] = true
	}
	var edges [][2]int
	for _, v := range vertices {
		for j := 0; j < p.N(); j++ {
			if present[j] && p.adj[v][j] {
				edges = append(edges, [2]int{v, j})
			}
		}
	}
	return p.SubgraphIdx(vertices, edges)
}

// SubgraphByEdgesIdx constructs the edge-induced subgraph: the vertex
// set is the union of edges' endpoints, restricted to exactly edges.
func (p *PDAG) SubgraphByEdgesIdx(edges [][2]int) *PDAG {
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
	return p.SubgraphIdx(vertices, edges)
}

// Subgraph is the label-based wrapper for SubgraphIdx.
func (p *PDAG) Subgraph(vertices []string, edges [][2]string) *PDAG {
	return p.SubgraphIdx(p.toIndices(vertices), p.toIndexEdges(edges))
}

// SubgraphByVertices is the label-based wrapper for SubgraphByVerticesIdx.
func (p *PDAG) SubgraphByVertices(vertices []string) *PDAG {
	return p.SubgraphByVerticesIdx(p.toIndices(vertices))
}

// SubgraphByEdges is the label-based wrapper for SubgraphByEdgesIdx.
func (p *PDAG) SubgraphByEdges(edges [][2]string) *PDAG {
	return p.SubgraphByEdgesIdx(p.toIndexEdges(edges))
}

func (p *PDAG) toIndices(labels []string) []int {
	out := make([]int, 0, len(labels))
	for _, l := range labels {
		if i, ok := p.index[l]; ok {
			out = append(out, i)
		}
	}
	return out
}

func (p *PDAG) toIndexEdges(edges [][2]string) [][2]int {
	out := make([][2]int, 0, len(edges))
	for _, e := range edges {
		fi, ok1 := p.index[e[0]]
		ti, ok2 := p.index[e[1]]
		if ok1 && ok2 {
			out = append(out, [2]int{fi, ti})
		}
	}
	return out
}

// Copy creates a deep copy of the PDAG.
func (p *PDAG) Copy() *PDAG {
	n := len(p.labels)
	cp := &PDAG{
		labels: append([]string(nil), p.labels...),
		index:  make(map[string]int, n),
		adj:    make([][]bool, n),
	}
	for l, i := range p.index {
		cp.index[l] = i
	}
	for i := range p.adj {
		cp.adj[i] = append([]bool(nil), p.adj[i]...)
	}
	return cp
}
