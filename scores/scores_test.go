package scores

import (
	"math/rand"
	"testing"

	"github.com/martinvoss/pcdag/dataset"
)

func TestDiscreteBICDecomposesAdditively(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	rows := make([][]int, 2000)
	for i := range rows {
		a := rng.Intn(2)
		b := rng.Intn(2)
		c := a ^ b
		rows[i] = []int{a, b, c}
	}
	d, err := dataset.NewDiscreteMatrix([]string{"A", "B", "C"}, []int{2, 2, 2}, rows)
	if err != nil {
		t.Fatalf("NewDiscreteMatrix: %v", err)
	}

	bic := NewDiscreteBIC(d, false)

	sAEmpty, err := bic.Eval(0, nil)
	if err != nil {
		t.Fatalf("Eval A|empty: %v", err)
	}
	sCGivenAB, err := bic.Eval(2, []int{0, 1})
	if err != nil {
		t.Fatalf("Eval C|A,B: %v", err)
	}

	// Changing C's parents must not change A's score (decomposability).
	sAEmpty2, err := bic.Eval(0, nil)
	if err != nil {
		t.Fatalf("Eval A|empty (again): %v", err)
	}
	if sAEmpty != sAEmpty2 {
		t.Errorf("A's score changed across calls: %v vs %v", sAEmpty, sAEmpty2)
	}

	// C = A xor B should score much better with parents {A,B} than with none.
	sCEmpty, err := bic.Eval(2, nil)
	if err != nil {
		t.Fatalf("Eval C|empty: %v", err)
	}
	if sCGivenAB <= sCEmpty {
		t.Errorf("expected C|A,B score (%v) > C|empty score (%v)", sCGivenAB, sCEmpty)
	}
}

func TestMaxInDegreeHintGrowsWithN(t *testing.T) {
	small := maxInDegreeHint(50)
	large := maxInDegreeHint(50000)
	if large < small {
		t.Errorf("expected hint to grow with N: hint(50)=%d hint(50000)=%d", small, large)
	}
}

func TestGaussianBICPrefersTrueParent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	rows := make([][]float64, 3000)
	for i := range rows {
		x := rng.NormFloat64()
		y := 2*x + 0.1*rng.NormFloat64()
		rows[i] = []float64{x, y}
	}
	c, err := dataset.NewContinuousMatrix([]string{"X", "Y"}, rows)
	if err != nil {
		t.Fatalf("NewContinuousMatrix: %v", err)
	}
	bic := NewGaussianBIC(c)

	withParent, err := bic.Eval(1, []int{0})
	if err != nil {
		t.Fatalf("Eval Y|X: %v", err)
	}
	without, err := bic.Eval(1, nil)
	if err != nil {
		t.Fatalf("Eval Y|empty: %v", err)
	}
	if withParent <= without {
		t.Errorf("expected Y|X score (%v) > Y|empty score (%v)", withParent, without)
	}
}
