package graph

import "testing"

func TestDAGCreation(t *testing.T) {
	dag := NewDAG([]string{"A", "B", "C"})
	if len(dag.Nodes()) != 3 {
		t.Errorf("Expected 3 nodes, got %d", len(dag.Nodes()))
	}
}

func TestDAGEdges(t *testing.T) {
	dag := NewDAG([]string{"A", "B"})
	if err := dag.AddEdge("A", "B"); err != nil {
		t.Errorf("Failed to add edge: %v", err)
	}
	if !dag.HasEdge("A", "B") {
		t.Error("Edge A->B should exist")
	}
	if dag.HasEdge("B", "A") {
		t.Error("Edge B->A should not exist")
	}
}

func TestDAGCycleDetection(t *testing.T) {
	dag := NewDAG([]string{"A", "B", "C"})
	dag.AddEdge("A", "B")
	dag.AddEdge("B", "C")

	if err := dag.AddEdge("C", "A"); err == nil {
		t.Error("Should have detected cycle")
	}
}

func TestDAGSelfLoopRejected(t *testing.T) {
	dag := NewDAG([]string{"A"})
	if err := dag.AddEdge("A", "A"); err == nil {
		t.Error("Should have rejected a self-loop")
	}
}

func TestDAGParentsChildren(t *testing.T) {
	dag := NewDAG([]string{"A", "B", "C"})
	dag.AddEdge("A", "C")
	dag.AddEdge("B", "C")

	parents := dag.Parents("C")
	if len(parents) != 2 {
		t.Errorf("Expected 2 parents, got %d", len(parents))
	}

	children := dag.Children("A")
	if len(children) != 1 || children[0] != "C" {
		t.Errorf("Expected child C, got %v", children)
	}
}

func TestDAGTopologicalSort(t *testing.T) {
	dag := NewDAG([]string{"A", "B", "C", "D"})
	dag.AddEdge("A", "C")
	dag.AddEdge("B", "C")
	dag.AddEdge("C", "D")

	order, err := dag.TopologicalSort()
	if err != nil {
		t.Errorf("Topological sort failed: %v", err)
	}

	pos := make(map[string]int)
	for i, node := range order {
		pos[node] = i
	}

	if pos["A"] >= pos["C"] {
		t.Error("A should come before C")
	}
	if pos["B"] >= pos["C"] {
		t.Error("B should come before C")
	}
	if pos["C"] >= pos["D"] {
		t.Error("C should come before D")
	}
}

func TestDAGAncestorsDescendants(t *testing.T) {
	dag := NewDAG([]string{"A", "B", "C", "D"})
	dag.AddEdge("A", "B")
	dag.AddEdge("B", "C")
	dag.AddEdge("C", "D")

	ancestors := dag.Ancestors("D")
	if len(ancestors) != 3 {
		t.Errorf("Expected 3 ancestors, got %d", len(ancestors))
	}

	descendants := dag.Descendants("A")
	if len(descendants) != 3 {
		t.Errorf("Expected 3 descendants, got %d", len(descendants))
	}
}

func TestDAGCopyIsIndependent(t *testing.T) {
	dag := NewDAG([]string{"A", "B"})
	dag.AddEdge("A", "B")
	cp := dag.Copy()
	cp.RemoveEdge("A", "B")
	if !dag.HasEdge("A", "B") {
		t.Error("original should be unaffected by mutating the copy")
	}
}

func buildSubgraphSource() *DAG {
	dag := NewDAG([]string{"A", "B", "C", "D", "E", "F"})
	dag.AddEdge("A", "C")
	dag.AddEdge("B", "C")
	dag.AddEdge("C", "D")
	dag.AddEdge("C", "E")
	return dag
}

func TestDAGSubgraphKeepsOnlyGivenVerticesAndEdges(t *testing.T) {
	dag := buildSubgraphSource()

	h := dag.Subgraph([]string{"A", "B", "C", "D"}, [][2]string{{"A", "C"}, {"B", "C"}})

	if len(h.Nodes()) != 4 {
		t.Errorf("expected 4 vertices, got %d: %v", len(h.Nodes()), h.Nodes())
	}
	if !h.HasEdge("A", "C") || !h.HasEdge("B", "C") {
		t.Error("expected the requested edges to survive")
	}
	if h.HasEdge("C", "D") {
		t.Error("C->D was not in the requested edge set and should be absent")
	}
}

func TestDAGSubgraphByVerticesKeepsInducedEdges(t *testing.T) {
	dag := buildSubgraphSource()

	h := dag.SubgraphByVertices([]string{"A", "B", "C", "D"})

	if !h.HasEdge("A", "C") || !h.HasEdge("B", "C") || !h.HasEdge("C", "D") {
		t.Error("expected every original edge between surviving vertices to be induced")
	}
	for _, n := range h.Nodes() {
		if n == "E" || n == "F" {
			t.Errorf("unexpected vertex %s outside the requested subset", n)
		}
	}
}

func TestDAGSubgraphByEdgesKeepsOnlyTouchedVertices(t *testing.T) {
	dag := buildSubgraphSource()

	h := dag.SubgraphByEdges([][2]string{{"A", "C"}, {"B", "C"}})

	if len(h.Nodes()) != 3 {
		t.Errorf("expected exactly the 3 vertices touched by the edges, got %v", h.Nodes())
	}
	if !h.HasEdge("A", "C") || !h.HasEdge("B", "C") {
		t.Error("expected both requested edges to be present")
	}
}

func TestDAGMoralGraphMarriesParents(t *testing.T) {
	dag := NewDAG([]string{"A", "B", "C"})
	dag.AddEdge("A", "C")
	dag.AddEdge("B", "C")

	moral := dag.MoralGraph()
	if !moral.HasEdge("A", "B") {
		t.Error("expected moral graph to marry co-parents A and B")
	}
	if !moral.HasEdge("A", "C") || !moral.HasEdge("B", "C") {
		t.Error("expected moral graph to retain original edges as undirected")
	}
}
