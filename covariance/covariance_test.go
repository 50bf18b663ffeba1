package covariance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinvoss/pcdag/dataset"
)

func linearData(t *testing.T) *dataset.ContinuousMatrix {
	t.Helper()
	rows := make([][]float64, 0, 200)
	for i := 0; i < 200; i++ {
		x := float64(i) * 0.01
		y := 2*x + 0.0001*float64(i%3)
		z := -x + 0.0001*float64(i%5)
		rows = append(rows, []float64{x, y, z})
	}
	c, err := dataset.NewContinuousMatrix([]string{"X", "Y", "Z"}, rows)
	require.NoError(t, err)
	return c
}

func TestPartialCorrelationEmptyZMatchesPearson(t *testing.T) {
	c := linearData(t)
	sigma, err := Sample(c)
	require.NoError(t, err)
	r := Correlation(sigma)

	rho, err := PartialCorrelation(sigma, 0, 1, nil)
	require.NoError(t, err)

	assert.InDelta(t, r.At(0, 1), rho, 1e-10, "partial correlation with empty Z should equal Pearson correlation")
}

func TestCorrelationDiagonalIsOne(t *testing.T) {
	c := linearData(t)
	sigma, err := Sample(c)
	require.NoError(t, err)
	r := Correlation(sigma)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 1.0, r.At(i, i), "diagonal[%d]", i)
	}
}

func TestPrecisionSingularFails(t *testing.T) {
	rows := [][]float64{{1, 1}, {2, 2}, {3, 3}, {4, 4}}
	c, err := dataset.NewContinuousMatrix([]string{"A", "B"}, rows)
	require.NoError(t, err)
	sigma, err := Sample(c)
	require.NoError(t, err)

	_, err = Precision(sigma)
	assert.Error(t, err, "expected error inverting singular covariance (A and B are collinear)")
}
