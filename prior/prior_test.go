package prior

import "testing"

func TestNewSortsLabelsAndResolvesPairs(t *testing.T) {
	k, err := New([]string{"C", "A", "B"}, [][2]string{{"A", "B"}}, [][2]string{{"C", "A"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := k.Labels(); got[0] != "A" || got[1] != "B" || got[2] != "C" {
		t.Fatalf("expected sorted labels, got %v", got)
	}
	ai, _ := k.IndexOf("A")
	bi, _ := k.IndexOf("B")
	ci, _ := k.IndexOf("C")
	if !k.IsForbidden(ai, bi) {
		t.Error("expected A->B forbidden")
	}
	if !k.IsRequired(ci, ai) {
		t.Error("expected C->A required")
	}
}

func TestNewRejectsUnknownLabel(t *testing.T) {
	if _, err := New([]string{"A", "B"}, [][2]string{{"A", "Z"}}, nil); err == nil {
		t.Error("expected error for unknown label Z")
	}
}

func TestNewRejectsOverlappingForbiddenRequired(t *testing.T) {
	if _, err := New([]string{"A", "B"}, [][2]string{{"A", "B"}}, [][2]string{{"A", "B"}}); err == nil {
		t.Error("expected error when A->B is both forbidden and required")
	}
}

func TestAddForbiddenRejectsAlreadyRequired(t *testing.T) {
	k, err := New([]string{"A", "B"}, nil, [][2]string{{"A", "B"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ai, _ := k.IndexOf("A")
	bi, _ := k.IndexOf("B")
	if err := k.AddForbidden(ai, bi); err == nil {
		t.Error("expected error forbidding an already-required edge")
	}
}

func TestAddRequiredRejectsAlreadyForbidden(t *testing.T) {
	k, err := New([]string{"A", "B"}, [][2]string{{"A", "B"}}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ai, _ := k.IndexOf("A")
	bi, _ := k.IndexOf("B")
	if err := k.AddRequired(ai, bi); err == nil {
		t.Error("expected error requiring an already-forbidden edge")
	}
}

func TestForbiddenRequiredPreserveInsertionOrder(t *testing.T) {
	k, err := New([]string{"A", "B", "C", "D"},
		[][2]string{{"A", "B"}, {"C", "D"}},
		nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f := k.Forbidden()
	if len(f) != 2 {
		t.Fatalf("expected 2 forbidden pairs, got %d", len(f))
	}
	ai, _ := k.IndexOf("A")
	bi, _ := k.IndexOf("B")
	if f[0] != (Pair{ai, bi}) {
		t.Errorf("expected first forbidden pair to be A->B, got %v", f[0])
	}
}
