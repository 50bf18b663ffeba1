package graph

import "testing"

func TestStructuralHammingDistanceCountsReversedEdgeOnce(t *testing.T) {
	truth := [][2]int{{0, 1}, {1, 2}}
	pred := [][2]int{{1, 0}, {1, 2}}

	if got := StructuralHammingDistance(truth, pred); got != 1 {
		t.Errorf("expected SHD 1 for a single reversed edge, got %d", got)
	}
}

func TestStructuralHammingDistanceZeroForIdenticalGraphs(t *testing.T) {
	edges := [][2]int{{0, 1}, {1, 2}, {0, 2}}
	if got := StructuralHammingDistance(edges, edges); got != 0 {
		t.Errorf("expected SHD 0 for identical edge sets, got %d", got)
	}
}

func TestStructuralHammingDistanceCountsMissingAndExtra(t *testing.T) {
	truth := [][2]int{{0, 1}, {1, 2}}
	pred := [][2]int{{0, 1}, {2, 3}}

	if got := StructuralHammingDistance(truth, pred); got != 2 {
		t.Errorf("expected SHD 2 (one missing, one extra), got %d", got)
	}
}

func TestConnectedComponentsSplitsDisjointSubgraphs(t *testing.T) {
	s := NewSkeleton([]string{"A", "B", "C", "D", "E", "F"})
	s.AddEdge("A", "B")
	s.AddEdge("B", "C")
	s.AddEdge("D", "E")

	comps := s.ConnectedComponentLabels()
	if len(comps) != 3 {
		t.Fatalf("expected 3 connected components, got %d: %v", len(comps), comps)
	}

	sizes := make(map[int]int)
	for _, c := range comps {
		sizes[len(c)]++
	}
	if sizes[3] != 1 || sizes[2] != 1 || sizes[1] != 1 {
		t.Errorf("expected component sizes {3,2,1}, got sizes %v from %v", sizes, comps)
	}
}
