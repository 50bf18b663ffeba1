// Package scores provides decomposable graph-scoring criteria —
// log-likelihood, AIC, BIC — callable per family as f(child, parents),
// so the hill-climbing learner can cache and sum them additively.
package scores

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/martinvoss/pcdag/contingency"
	"github.com/martinvoss/pcdag/dataset"
)

// Score is the capability the hill-climbing learner consumes: the score
// contribution of one family, plus a soft in-degree bound it can use to
// cap search.
type Score interface {
	Eval(child int, parents []int) (float64, error)
	MaxInDegreeHint() int
}

// maxInDegreeHint implements the ceil(1 + log2 N - log2 ln N) bound
// shared by every score in this package.
func maxInDegreeHint(n int) int {
	if n < 3 {
		return 1
	}
	return int(math.Ceil(1 + math.Log2(float64(n)) - math.Log2(math.Log(float64(n)))))
}

// ----------------------------------------------------------------------
// Discrete log-likelihood, AIC, BIC.
// ----------------------------------------------------------------------

// DiscreteLL is the log-likelihood score over a discrete data matrix.
type DiscreteLL struct {
	Data     *dataset.DiscreteMatrix
	Parallel bool
}

func (s *DiscreteLL) MaxInDegreeHint() int { return maxInDegreeHint(s.Data.N()) }

// Eval computes Sum_i O_i ln(O_i/N) for an empty parent set, or
// Sum_{k,i} O_{k,i} ln(O_{k,i}/O_{k,.}) over Conditional(child|parents)
// otherwise, mapping 0*log(0) to 0 per the NaN-to-zero convention.
func (s *DiscreteLL) Eval(child int, parents []int) (float64, error) {
	if len(parents) == 0 {
		tbl, err := contingency.Marginal(s.Data, child)
		if err != nil {
			return 0, err
		}
		n := tbl.Sum()
		ll := 0.0
		for _, o := range tbl.Counts {
			ll += nanToZero(o * math.Log(o/n))
		}
		return ll, nil
	}

	tbl, err := contingency.Conditional(s.Data, child, parents, s.Parallel)
	if err != nil {
		return 0, err
	}
	zSize, cx := tbl.Shape[0], tbl.Shape[1]
	ll := 0.0
	for k := 0; k < zSize; k++ {
		total := 0.0
		for i := 0; i < cx; i++ {
			total += tbl.At(k, i)
		}
		if total == 0 {
			continue
		}
		for i := 0; i < cx; i++ {
			o := tbl.At(k, i)
			ll += nanToZero(o * math.Log(o/total))
		}
	}
	return ll, nil
}

// Theta returns the free-parameter count (card[child]-1) * prod(card[parents]).
func (s *DiscreteLL) Theta(child int, parents []int) float64 {
	theta := float64(s.Data.Cardinality(child) - 1)
	for _, p := range parents {
		theta *= float64(s.Data.Cardinality(p))
	}
	return theta
}

// ----------------------------------------------------------------------
// Gaussian (linear) log-likelihood, AIC, BIC.
// ----------------------------------------------------------------------

// GaussianLL is the log-likelihood score over a continuous data matrix,
// fitting child on parents by ordinary least squares.
type GaussianLL struct {
	Data *dataset.ContinuousMatrix
}

func (s *GaussianLL) MaxInDegreeHint() int { return maxInDegreeHint(s.Data.N()) }

// Eval fits child = b0 + sum(b_i * parent_i) + eps by OLS, then sums
// log N(resid; 0, sigmaHat) with sigmaHat = sqrt(RSS/(N-|Z|-1)).
func (s *GaussianLL) Eval(child int, parents []int) (float64, error) {
	n := s.Data.N()
	dof := n - len(parents) - 1
	if dof <= 0 {
		return 0, fmt.Errorf("scores: not enough samples to fit %d parents", len(parents))
	}

	design := mat.NewDense(n, len(parents)+1, nil)
	for r := 0; r < n; r++ {
		design.Set(r, 0, 1)
		for j, p := range parents {
			design.Set(r, j+1, s.Data.Value(r, p))
		}
	}
	y := mat.NewDense(n, 1, s.Data.Column(child))

	var beta mat.Dense
	if err := beta.Solve(design, y); err != nil {
		return 0, fmt.Errorf("scores: OLS fit failed: %w", err)
	}

	var fitted mat.Dense
	fitted.Mul(design, &beta)

	rss := 0.0
	for r := 0; r < n; r++ {
		resid := y.At(r, 0) - fitted.At(r, 0)
		rss += resid * resid
	}
	sigma2 := rss / float64(dof)
	if sigma2 <= 0 {
		sigma2 = 1e-12
	}

	ll := 0.0
	for r := 0; r < n; r++ {
		resid := y.At(r, 0) - fitted.At(r, 0)
		ll += -0.5*math.Log(2*math.Pi*sigma2) - (resid*resid)/(2*sigma2)
	}
	return ll, nil
}

// Theta returns the free-parameter count 2 + |parents| (intercept, one
// coefficient per parent, and the noise variance).
func (s *GaussianLL) Theta(parents []int) float64 {
	return float64(2 + len(parents))
}

func nanToZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// ----------------------------------------------------------------------
// AIC / BIC wrappers, generic over either LL implementation.
// ----------------------------------------------------------------------

// thetaFunc abstracts DiscreteLL.Theta/GaussianLL.Theta behind a single
// shape so AIC/BIC need not branch on data type.
type thetaFunc func(child int, parents []int) (float64, error)

// AIC is LL - theta.
type AIC struct {
	LL    Score
	Theta thetaFunc
}

func (a *AIC) MaxInDegreeHint() int { return a.LL.MaxInDegreeHint() }

func (a *AIC) Eval(child int, parents []int) (float64, error) {
	ll, err := a.LL.Eval(child, parents)
	if err != nil {
		return 0, err
	}
	theta, err := a.Theta(child, parents)
	if err != nil {
		return 0, err
	}
	return ll - theta, nil
}

// BIC is LL - 0.5*theta*ln(N).
type BIC struct {
	LL    Score
	Theta thetaFunc
	N     int
}

func (b *BIC) MaxInDegreeHint() int { return b.LL.MaxInDegreeHint() }

func (b *BIC) Eval(child int, parents []int) (float64, error) {
	ll, err := b.LL.Eval(child, parents)
	if err != nil {
		return 0, err
	}
	theta, err := b.Theta(child, parents)
	if err != nil {
		return 0, err
	}
	return ll - 0.5*theta*math.Log(float64(b.N)), nil
}

// NewDiscreteAIC/NewDiscreteBIC/NewGaussianAIC/NewGaussianBIC wire a
// concrete LL implementation's Theta method into the AIC/BIC wrappers.

func NewDiscreteAIC(data *dataset.DiscreteMatrix, parallel bool) *AIC {
	ll := &DiscreteLL{Data: data, Parallel: parallel}
	return &AIC{LL: ll, Theta: func(child int, parents []int) (float64, error) {
		return ll.Theta(child, parents), nil
	}}
}

func NewDiscreteBIC(data *dataset.DiscreteMatrix, parallel bool) *BIC {
	ll := &DiscreteLL{Data: data, Parallel: parallel}
	return &BIC{LL: ll, N: data.N(), Theta: func(child int, parents []int) (float64, error) {
		return ll.Theta(child, parents), nil
	}}
}

func NewGaussianAIC(data *dataset.ContinuousMatrix) *AIC {
	ll := &GaussianLL{Data: data}
	return &AIC{LL: ll, Theta: func(_ int, parents []int) (float64, error) {
		return ll.Theta(parents), nil
	}}
}

func NewGaussianBIC(data *dataset.ContinuousMatrix) *BIC {
	ll := &GaussianLL{Data: data}
	return &BIC{LL: ll, N: data.N(), Theta: func(_ int, parents []int) (float64, error) {
		return ll.Theta(parents), nil
	}}
}
