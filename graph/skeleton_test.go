package graph

import "testing"

func TestSkeletonAddEdgeIsSymmetric(t *testing.T) {
	s := NewSkeleton([]string{"A", "B"})
	s.AddEdge("A", "B")
	if !s.HasEdge("A", "B") || !s.HasEdge("B", "A") {
		t.Error("expected edge to be visible from both endpoints")
	}
}

func TestSkeletonEdgesListedOnce(t *testing.T) {
	s := NewSkeleton([]string{"A", "B", "C"})
	s.AddEdge("A", "B")
	s.AddEdge("B", "C")
	edges := s.Edges()
	if len(edges) != 2 {
		t.Errorf("expected 2 edges, got %d: %v", len(edges), edges)
	}
}

func TestNewCompleteSkeletonConnectsAllPairs(t *testing.T) {
	s := NewCompleteSkeleton([]string{"A", "B", "C"})
	if len(s.Edges()) != 3 {
		t.Errorf("expected 3 edges in K3, got %d", len(s.Edges()))
	}
	if !s.HasEdge("A", "C") {
		t.Error("expected A-C to be present in a complete skeleton")
	}
}

func TestSkeletonSnapshotIsIndependent(t *testing.T) {
	s := NewSkeleton([]string{"A", "B"})
	s.AddEdge("A", "B")
	snap := s.Snapshot()
	s.RemoveEdge("A", "B")
	if !snap.HasEdge("A", "B") {
		t.Error("snapshot should retain the edge after the live graph is mutated")
	}
}

func TestSkeletonSubgraphByVerticesKeepsInducedEdges(t *testing.T) {
	s := NewSkeleton([]string{"A", "B", "C", "D"})
	s.AddEdge("A", "B")
	s.AddEdge("B", "C")
	s.AddEdge("C", "D")

	h := s.SubgraphByVertices([]string{"A", "B", "C"})

	if !h.HasEdge("A", "B") || !h.HasEdge("B", "C") {
		t.Error("expected both induced edges to survive")
	}
	if h.HasEdge("C", "D") {
		t.Error("D was excluded from the vertex subset, C-D should not survive")
	}
}

func TestSkeletonSubgraphByEdgesKeepsOnlyTouchedVertices(t *testing.T) {
	s := NewSkeleton([]string{"A", "B", "C", "D"})
	s.AddEdge("A", "B")
	s.AddEdge("B", "C")
	s.AddEdge("C", "D")

	h := s.SubgraphByEdges([][2]string{{"A", "B"}})

	if len(h.Nodes()) != 2 {
		t.Errorf("expected exactly 2 vertices, got %v", h.Nodes())
	}
	if !h.HasEdge("A", "B") {
		t.Error("expected A-B to survive")
	}
}

func TestSkeletonNeighbors(t *testing.T) {
	s := NewSkeleton([]string{"A", "B", "C"})
	s.AddEdge("A", "B")
	s.AddEdge("A", "C")
	n := s.Neighbors("A")
	if len(n) != 2 || n[0] != "B" || n[1] != "C" {
		t.Errorf("expected neighbors [B C], got %v", n)
	}
}
