// Package independence provides conditional-independence tests shared
// by the PC-Stable learner: chi-square and G-squared for discrete data,
// Fisher's Z and Student's t for Gaussian data.
package independence

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/martinvoss/pcdag/contingency"
	"github.com/martinvoss/pcdag/covariance"
	"github.com/martinvoss/pcdag/dataset"
)

// Result is the outcome of one conditional-independence evaluation.
type Result struct {
	DoF       float64
	Statistic float64
	P         float64
}

// Test is the capability every CI test exposes to the PC-Stable
// learner: evaluate the test statistic, or just the independence
// verdict at the configured significance level.
type Test interface {
	Eval(x, y int, z []int) (Result, error)
	Call(x, y int, z []int) (bool, error)
	WithSignificanceLevel(alpha float64) (Test, error)
}

func checkAlpha(alpha float64) error {
	if alpha <= 0 || alpha >= 1 {
		return fmt.Errorf("independence: alpha must be in (0,1), got %v", alpha)
	}
	return nil
}

// ----------------------------------------------------------------------
// Discrete tests: ChiSquare and GSquare share a contingency-table and
// degrees-of-freedom computation, differing only in the statistic.
// ----------------------------------------------------------------------

// ChiSquare is Pearson's chi-square test of conditional independence.
type ChiSquare struct {
	Data     *dataset.DiscreteMatrix
	Alpha    float64
	Parallel bool
}

// NewChiSquare builds a ChiSquare test at the given significance level.
func NewChiSquare(data *dataset.DiscreteMatrix, alpha float64) (*ChiSquare, error) {
	if err := checkAlpha(alpha); err != nil {
		return nil, err
	}
	return &ChiSquare{Data: data, Alpha: alpha}, nil
}

func (c *ChiSquare) WithSignificanceLevel(alpha float64) (Test, error) {
	if err := checkAlpha(alpha); err != nil {
		return nil, err
	}
	cp := *c
	cp.Alpha = alpha
	return &cp, nil
}

func (c *ChiSquare) Eval(x, y int, z []int) (Result, error) {
	return discreteEval(c.Data, x, y, z, c.Parallel, false)
}

func (c *ChiSquare) Call(x, y int, z []int) (bool, error) {
	r, err := c.Eval(x, y, z)
	if err != nil {
		return false, err
	}
	return r.P > c.Alpha, nil
}

// GSquare is the likelihood-ratio G-test of conditional independence.
type GSquare struct {
	Data     *dataset.DiscreteMatrix
	Alpha    float64
	Parallel bool
}

// NewGSquare builds a GSquare test at the given significance level.
func NewGSquare(data *dataset.DiscreteMatrix, alpha float64) (*GSquare, error) {
	if err := checkAlpha(alpha); err != nil {
		return nil, err
	}
	return &GSquare{Data: data, Alpha: alpha}, nil
}

func (g *GSquare) WithSignificanceLevel(alpha float64) (Test, error) {
	if err := checkAlpha(alpha); err != nil {
		return nil, err
	}
	cp := *g
	cp.Alpha = alpha
	return &cp, nil
}

func (g *GSquare) Eval(x, y int, z []int) (Result, error) {
	return discreteEval(g.Data, x, y, z, g.Parallel, true)
}

func (g *GSquare) Call(x, y int, z []int) (bool, error) {
	r, err := g.Eval(x, y, z)
	if err != nil {
		return false, err
	}
	return r.P > g.Alpha, nil
}

// discreteEval builds JointConditional(x,y|z) and computes either the
// Pearson chi-square statistic or the G-squared likelihood-ratio
// statistic over it, summed across conditioning strata and pooling
// degrees of freedom only over strata with nonzero counts.
func discreteEval(d *dataset.DiscreteMatrix, x, y int, z []int, parallel, likelihoodRatio bool) (Result, error) {
	tbl, err := contingency.JointConditional(d, x, y, z, parallel)
	if err != nil {
		return Result{}, err
	}
	zSize, cx, cy := tbl.Shape[0], tbl.Shape[1], tbl.Shape[2]

	stat := 0.0
	nonEmptyStrata := 0
	for k := 0; k < zSize; k++ {
		total := 0.0
		xMarg := make([]float64, cx)
		yMarg := make([]float64, cy)
		for i := 0; i < cx; i++ {
			for j := 0; j < cy; j++ {
				o := tbl.At(k, i, j)
				xMarg[i] += o
				yMarg[j] += o
				total += o
			}
		}
		if total == 0 {
			continue
		}
		nonEmptyStrata++
		for i := 0; i < cx; i++ {
			for j := 0; j < cy; j++ {
				expected := xMarg[i] * yMarg[j] / total
				if expected == 0 {
					continue
				}
				observed := tbl.At(k, i, j)
				if likelihoodRatio {
					ratio := observed / expected
					term := 0.0
					if observed > 0 && ratio > 0 {
						term = observed * math.Log(ratio)
					}
					if !math.IsNaN(term) {
						stat += term
					}
				} else {
					diff := observed - expected
					stat += diff * diff / expected
				}
			}
		}
	}
	if likelihoodRatio {
		stat *= 2
	}

	dof := float64((cx - 1) * (cy - 1) * nonEmptyStrata)
	p := 1.0
	if dof > 0 {
		p = 1 - distuv.ChiSquared{K: dof}.CDF(stat)
	}
	return Result{DoF: dof, Statistic: stat, P: p}, nil
}

// ----------------------------------------------------------------------
// Gaussian tests: FisherZ and StudentT share the partial-correlation
// computation, differing only in how they turn it into a p-value.
// ----------------------------------------------------------------------

// FisherZ is Fisher's Z-transform test of (partial) correlation for
// linear-Gaussian data.
type FisherZ struct {
	Sigma mat.Symmetric
	N     int
	Alpha float64
}

// NewFisherZ builds a FisherZ test at the given significance level.
func NewFisherZ(sigma mat.Symmetric, n int, alpha float64) (*FisherZ, error) {
	if err := checkAlpha(alpha); err != nil {
		return nil, err
	}
	return &FisherZ{Sigma: sigma, N: n, Alpha: alpha}, nil
}

func (f *FisherZ) WithSignificanceLevel(alpha float64) (Test, error) {
	if err := checkAlpha(alpha); err != nil {
		return nil, err
	}
	cp := *f
	cp.Alpha = alpha
	return &cp, nil
}

func (f *FisherZ) Eval(x, y int, z []int) (Result, error) {
	rho, err := covariance.PartialCorrelation(f.Sigma, x, y, z)
	if err != nil {
		return Result{}, err
	}
	dof := float64(f.N - len(z) - 3)
	if dof <= 0 {
		return Result{}, fmt.Errorf("independence: fisher-z needs N-|Z|-3 > 0, got %v", dof)
	}
	zscore := math.Sqrt(dof) * math.Atanh(clampRho(rho))
	p := math.Erfc(math.Abs(zscore) / math.Sqrt2)
	return Result{DoF: dof, Statistic: zscore, P: p}, nil
}

func (f *FisherZ) Call(x, y int, z []int) (bool, error) {
	r, err := f.Eval(x, y, z)
	if err != nil {
		return false, err
	}
	return r.P > f.Alpha, nil
}

// StudentT is Student's t-test of (partial) correlation for
// linear-Gaussian data.
type StudentT struct {
	Sigma mat.Symmetric
	N     int
	Alpha float64
}

// NewStudentT builds a StudentT test at the given significance level.
func NewStudentT(sigma mat.Symmetric, n int, alpha float64) (*StudentT, error) {
	if err := checkAlpha(alpha); err != nil {
		return nil, err
	}
	return &StudentT{Sigma: sigma, N: n, Alpha: alpha}, nil
}

func (s *StudentT) WithSignificanceLevel(alpha float64) (Test, error) {
	if err := checkAlpha(alpha); err != nil {
		return nil, err
	}
	cp := *s
	cp.Alpha = alpha
	return &cp, nil
}

func (s *StudentT) Eval(x, y int, z []int) (Result, error) {
	rho, err := covariance.PartialCorrelation(s.Sigma, x, y, z)
	if err != nil {
		return Result{}, err
	}
	dof := float64(s.N - len(z) - 2)
	if dof <= 0 {
		return Result{}, fmt.Errorf("independence: student-t needs N-|Z|-2 > 0, got %v", dof)
	}
	rho = clampRho(rho)
	denom := 1 - rho*rho
	if denom <= 0 {
		return Result{}, fmt.Errorf("independence: student-t degenerate for |rho|=1")
	}
	tstat := math.Abs(math.Sqrt(dof/denom) * rho)

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}
	p := 2 * (1 - dist.CDF(tstat))
	return Result{DoF: dof, Statistic: tstat, P: p}, nil
}

func (s *StudentT) Call(x, y int, z []int) (bool, error) {
	r, err := s.Eval(x, y, z)
	if err != nil {
		return false, err
	}
	return r.P > s.Alpha, nil
}

func clampRho(rho float64) float64 {
	if rho >= 1 {
		return 0.9999999999
	}
	if rho <= -1 {
		return -0.9999999999
	}
	return rho
}
