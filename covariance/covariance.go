// Package covariance provides sample covariance, precision, correlation,
// and partial correlation over continuous data, backed by gonum's matrix
// and statistics routines.
package covariance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/martinvoss/pcdag/dataset"
)

// Sample computes the column-centred sample covariance matrix of c with
// the unbiased (N-1) denominator.
func Sample(c *dataset.ContinuousMatrix) (*mat.SymDense, error) {
	n, v := c.N(), c.NumVars()
	if n < 2 {
		return nil, fmt.Errorf("covariance: need at least 2 samples, got %d", n)
	}
	data := make([]float64, n*v)
	for r := 0; r < n; r++ {
		copy(data[r*v:(r+1)*v], c.Row(r))
	}
	mtx := mat.NewDense(n, v, data)

	var sigma mat.SymDense
	stat.CovarianceMatrix(&sigma, mtx, nil)
	return &sigma, nil
}

// Precision inverts a covariance matrix, returning an error if it is
// singular. It solves Sigma*Omega = I rather than computing a
// general-purpose inverse directly, which is gonum's recommended way to
// invert a matrix stably.
func Precision(sigma mat.Symmetric) (*mat.Dense, error) {
	n := sigma.SymmetricDim()
	var omega mat.Dense
	if err := omega.Solve(sigma, identity(n)); err != nil {
		return nil, fmt.Errorf("covariance: singular covariance matrix: %w", err)
	}
	return &omega, nil
}

// Correlation derives R = diag(Sigma)^(-1/2) Sigma diag(Sigma)^(-1/2),
// clamping off-diagonal entries to [-1,1] to absorb floating-point
// drift, and forcing the diagonal to exactly 1.
func Correlation(sigma mat.Symmetric) *mat.SymDense {
	n := sigma.SymmetricDim()
	inv := make([]float64, n)
	for i := 0; i < n; i++ {
		inv[i] = 1 / math.Sqrt(sigma.At(i, i))
	}

	r := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		r.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			v := sigma.At(i, j) * inv[i] * inv[j]
			if v > 1 {
				v = 1
			}
			if v < -1 {
				v = -1
			}
			r.SetSym(i, j, v)
		}
	}
	return r
}

// PartialCorrelation computes rho(X,Y|Z): extract the sub-covariance
// over [X,Y,Z] in that order, invert it, and read off
// -Omega'[0,1] / sqrt(Omega'[0,0] * Omega'[1,1]).
func PartialCorrelation(sigma mat.Symmetric, x, y int, z []int) (float64, error) {
	idx := append([]int{x, y}, z...)
	sub := extractSub(sigma, idx)

	omega, err := Precision(sub)
	if err != nil {
		return 0, err
	}

	denom := math.Sqrt(omega.At(0, 0) * omega.At(1, 1))
	if denom == 0 || math.IsNaN(denom) {
		return 0, fmt.Errorf("covariance: degenerate partial correlation denominator")
	}
	rho := -omega.At(0, 1) / denom
	if rho > 1 {
		rho = 1
	}
	if rho < -1 {
		rho = -1
	}
	return rho, nil
}

func extractSub(sigma mat.Symmetric, idx []int) *mat.SymDense {
	n := len(idx)
	sub := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sub.SetSym(i, j, sigma.At(idx[i], idx[j]))
		}
	}
	return sub
}

func identity(n int) *mat.Dense {
	id := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		id.Set(i, i, 1)
	}
	return id
}
