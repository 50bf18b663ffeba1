package dataset

import "testing"

func TestNewDiscreteMatrixSortsColumns(t *testing.T) {
	// caller supplies columns out of order: B, A
	d, err := NewDiscreteMatrix([]string{"B", "A"}, []int{2, 3}, [][]int{
		{1, 2}, // B=1, A=2
		{0, 0}, // B=0, A=0
	})
	if err != nil {
		t.Fatalf("NewDiscreteMatrix failed: %v", err)
	}
	if got := d.Names(); got[0] != "A" || got[1] != "B" {
		t.Fatalf("expected sorted names [A B], got %v", got)
	}
	if d.Cardinality(0) != 3 || d.Cardinality(1) != 2 {
		t.Fatalf("cardinalities not permuted along with names: %v", d.Cards())
	}
	if d.Value(0, 0) != 2 || d.Value(0, 1) != 1 {
		t.Fatalf("row values not permuted: A=%d B=%d", d.Value(0, 0), d.Value(0, 1))
	}
}

func TestNewDiscreteMatrixRejectsOutOfRange(t *testing.T) {
	if _, err := NewDiscreteMatrix([]string{"A"}, []int{2}, [][]int{{5}}); err == nil {
		t.Error("expected error for out-of-range state code")
	}
}

func TestNewContinuousMatrixSortsColumns(t *testing.T) {
	c, err := NewContinuousMatrix([]string{"Y", "X"}, [][]float64{{1.0, 2.0}})
	if err != nil {
		t.Fatalf("NewContinuousMatrix failed: %v", err)
	}
	if got := c.Names(); got[0] != "X" || got[1] != "Y" {
		t.Fatalf("expected sorted names [X Y], got %v", got)
	}
	if c.Value(0, 0) != 2.0 || c.Value(0, 1) != 1.0 {
		t.Fatalf("row values not permuted: X=%v Y=%v", c.Value(0, 0), c.Value(0, 1))
	}
}
