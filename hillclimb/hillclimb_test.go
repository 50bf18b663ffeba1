package hillclimb

import (
	"math/rand"
	"testing"

	"github.com/martinvoss/pcdag/dataset"
	"github.com/martinvoss/pcdag/prior"
	"github.com/martinvoss/pcdag/scores"
)

func TestRunRecoversSingleParent(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	rows := make([][]float64, 4000)
	for i := range rows {
		x := rng.NormFloat64()
		y := 3*x + 0.1*rng.NormFloat64()
		rows[i] = []float64{x, y}
	}
	data, err := dataset.NewContinuousMatrix([]string{"X", "Y"}, rows)
	if err != nil {
		t.Fatalf("NewContinuousMatrix: %v", err)
	}
	score := scores.NewGaussianBIC(data)

	res, err := Run(data.Names(), score, nil, nil, Config{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	xi, _ := res.DAG.IndexOf("X")
	yi, _ := res.DAG.IndexOf("Y")
	if !res.DAG.HasEdgeIdx(xi, yi) && !res.DAG.HasEdgeIdx(yi, xi) {
		t.Error("expected hill-climbing to discover an edge between X and Y")
	}
}

func TestRunHonorsRequiredEdge(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	rows := make([][]float64, 1000)
	for i := range rows {
		rows[i] = []float64{rng.NormFloat64(), rng.NormFloat64()}
	}
	data, err := dataset.NewContinuousMatrix([]string{"X", "Y"}, rows)
	if err != nil {
		t.Fatalf("NewContinuousMatrix: %v", err)
	}
	score := scores.NewGaussianBIC(data)

	pk, err := prior.New(data.Names(), nil, [][2]string{{"X", "Y"}})
	if err != nil {
		t.Fatalf("prior.New: %v", err)
	}

	res, err := Run(data.Names(), score, pk, nil, Config{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.DAG.HasEdge("X", "Y") {
		t.Error("expected required edge X->Y to survive hill-climbing")
	}
}

func TestRunHonorsForbiddenEdge(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	rows := make([][]float64, 3000)
	for i := range rows {
		x := rng.NormFloat64()
		y := 5*x + 0.01*rng.NormFloat64()
		rows[i] = []float64{x, y}
	}
	data, err := dataset.NewContinuousMatrix([]string{"X", "Y"}, rows)
	if err != nil {
		t.Fatalf("NewContinuousMatrix: %v", err)
	}
	score := scores.NewGaussianBIC(data)

	pk, err := prior.New(data.Names(), [][2]string{{"X", "Y"}}, nil)
	if err != nil {
		t.Fatalf("prior.New: %v", err)
	}

	res, err := Run(data.Names(), score, pk, nil, Config{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.DAG.HasEdge("X", "Y") {
		t.Error("expected forbidden edge X->Y to be excluded from the search")
	}
}

func TestRunRespectsMaxIter(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	rows := make([][]int, 2000)
	for i := range rows {
		a := rng.Intn(2)
		b := a
		c := b
		rows[i] = []int{a, b, c}
	}
	data, err := dataset.NewDiscreteMatrix([]string{"A", "B", "C"}, []int{2, 2, 2}, rows)
	if err != nil {
		t.Fatalf("NewDiscreteMatrix: %v", err)
	}
	score := scores.NewDiscreteBIC(data, false)

	res, err := Run(data.Names(), score, nil, nil, Config{MaxIter: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.DAG.Edges()) > 1 {
		t.Errorf("expected at most 1 edge after a single accepted move, got %d", len(res.DAG.Edges()))
	}
}
