package fit

import (
	"fmt"
	"math"

	"github.com/gocurve/curvskel/matrix"
)

// vandermonde builds the n×4 design matrix whose row k is
// (1, tₖ, tₖ², tₖ³), optionally scaled by sqrt(weight[k]) so that an
// unweighted least-squares fit of the scaled system is equivalent to a
// weighted fit of the original (standard weighted-least-squares
// rewriting: minimizing Σ w·r² = minimizing Σ (√w·r)²).
func vandermonde(t []float64, weights []float64) (matrix.Matrix, error) {
	n := len(t)
	A, err := matrix.NewDense(n, 4)
	if err != nil {
		return nil, err
	}
	for k := 0; k < n; k++ {
		scale := 1.0
		if weights != nil {
			scale = math.Sqrt(weights[k])
		}
		tk := t[k]
		powers := [4]float64{1, tk, tk * tk, tk * tk * tk}
		for c := 0; c < 4; c++ {
			if err := A.Set(k, c, powers[c]*scale); err != nil {
				return nil, err
			}
		}
	}

	return A, nil
}

// scaledData builds the n×2 data matrix scaled by sqrt(weight[k]) in
// lockstep with vandermonde's scaling of the design matrix.
func scaledData(R matrix.Matrix, weights []float64) (matrix.Matrix, error) {
	n := R.Rows()
	out, err := matrix.NewDense(n, 2)
	if err != nil {
		return nil, err
	}
	for k := 0; k < n; k++ {
		scale := 1.0
		if weights != nil {
			scale = math.Sqrt(weights[k])
		}
		for c := 0; c < 2; c++ {
			v, err := R.At(k, c)
			if err != nil {
				return nil, err
			}
			if err := out.Set(k, c, v*scale); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// evalCubicAt evaluates x(t), y(t), and their derivatives up to second
// order, from a 4×2 coefficient matrix, at parameter value t.
func evalCubicAt(coeffs matrix.Matrix, t float64) (x, y, dx, dy, ddx, ddy float64, err error) {
	get := func(r, c int) (float64, error) { return coeffs.At(r, c) }

	a0, err := get(0, 0)
	if err != nil {
		return
	}
	a1, err := get(1, 0)
	if err != nil {
		return
	}
	a2, err := get(2, 0)
	if err != nil {
		return
	}
	a3, err := get(3, 0)
	if err != nil {
		return
	}
	b0, err := get(0, 1)
	if err != nil {
		return
	}
	b1, err := get(1, 1)
	if err != nil {
		return
	}
	b2, err := get(2, 1)
	if err != nil {
		return
	}
	b3, err := get(3, 1)
	if err != nil {
		return
	}

	x = a0 + a1*t + a2*t*t + a3*t*t*t
	y = b0 + b1*t + b2*t*t + b3*t*t*t
	dx = a1 + 2*a2*t + 3*a3*t*t
	dy = b1 + 2*b2*t + 3*b3*t*t
	ddx = 2*a2 + 6*a3*t
	ddy = 2*b2 + 6*b3*t

	return
}

// residualSum computes Σ((x(tₖ)-xₖ)² + (y(tₖ)-yₖ)²) over the unweighted,
// original sample data.
func residualSum(coeffs matrix.Matrix, samples Samples) (float64, error) {
	var sum float64
	for k := 0; k < samples.n(); k++ {
		x, y, _, _, _, _, err := evalCubicAt(coeffs, samples.T[k])
		if err != nil {
			return 0, err
		}
		xk, err := samples.R.At(k, 0)
		if err != nil {
			return 0, err
		}
		yk, err := samples.R.At(k, 1)
		if err != nil {
			return 0, err
		}
		dx := x - xk
		dy := y - yk
		sum += dx*dx + dy*dy
	}

	return sum, nil
}

func validateSamples(samples Samples) error {
	n := samples.n()
	if n < 4 {
		return ErrTooFewSamples
	}
	if samples.R == nil || samples.R.Rows() != n || samples.R.Cols() != 2 {
		return ErrShapeMismatch
	}
	if samples.Weights != nil && len(samples.Weights) != n {
		return ErrShapeMismatch
	}

	return nil
}

// solveOnce performs a single weighted least-squares cubic fit, with no
// refit iteration. It is the inner step both Fit and refitParameters call.
func solveOnce(samples Samples) (matrix.Matrix, error) {
	A, err := vandermonde(samples.T, samples.Weights)
	if err != nil {
		return nil, fmt.Errorf("fit.solveOnce: %w", err)
	}
	Rw, err := scaledData(samples.R, samples.Weights)
	if err != nil {
		return nil, fmt.Errorf("fit.solveOnce: %w", err)
	}
	pinv, err := matrix.Pseudoinverse(A)
	if err != nil {
		return nil, fmt.Errorf("fit.solveOnce: %w: %w", ErrDegenerateSystem, err)
	}
	coeffs, err := matrix.Mul(pinv, Rw)
	if err != nil {
		return nil, fmt.Errorf("fit.solveOnce: %w", err)
	}

	return coeffs, nil
}

// Fit performs a weighted least-squares cubic fit of x(t), y(t) to samples.
// With WithRefit(), the fit is followed by exactly two knot-reparameterization
// iterations (refitParameters) before the final residual is computed.
//
// Returns ErrTooFewSamples if fewer than 4 samples are given, or
// ErrDegenerateSystem if the normal-equations matrix is singular (e.g. all
// tₖ coincide).
func Fit(samples Samples, opts ...Option) (*Result, error) {
	if err := validateSamples(samples); err != nil {
		return nil, fmt.Errorf("Fit: %w", err)
	}

	cfg := options{}
	for _, o := range opts {
		o(&cfg)
	}

	coeffs, err := solveOnce(samples)
	if err != nil {
		return nil, fmt.Errorf("Fit: %w", err)
	}

	if cfg.refit {
		for i := 0; i < refitIterations; i++ {
			newT, rerr := refitParameters(coeffs, samples)
			if rerr != nil {
				return nil, fmt.Errorf("Fit: %w", rerr)
			}
			samples.T = newT
			coeffs, err = solveOnce(samples)
			if err != nil {
				return nil, fmt.Errorf("Fit: %w", err)
			}
		}
	}

	sum, err := residualSum(coeffs, samples)
	if err != nil {
		return nil, fmt.Errorf("Fit: %w", err)
	}
	rms := math.Sqrt(2 / float64(samples.n()) * sum)

	return &Result{Coeffs: coeffs, RMSError: rms}, nil
}

// FitKnownTime fits samples without parameter refitting: a convenience
// entry point matching the original library's fit_parametric_cubic_known_time,
// which delegates to the general fit with refitting disabled.
func FitKnownTime(samples Samples) (*Result, error) {
	return Fit(samples)
}

// EvaluateResiduals computes the RMS error of an existing coefficient
// matrix against samples, without performing any fit. This is the
// "existing coefficient matrix C" calling convention spec.md §4.B
// describes: no fit is performed, only residuals are computed.
func EvaluateResiduals(coeffs matrix.Matrix, samples Samples) (float64, error) {
	if err := validateSamples(samples); err != nil {
		return 0, fmt.Errorf("EvaluateResiduals: %w", err)
	}
	if coeffs == nil || coeffs.Rows() != 4 || coeffs.Cols() != 2 {
		return 0, fmt.Errorf("EvaluateResiduals: %w", ErrShapeMismatch)
	}

	sum, err := residualSum(coeffs, samples)
	if err != nil {
		return 0, fmt.Errorf("EvaluateResiduals: %w", err)
	}

	return math.Sqrt(2 / float64(samples.n()) * sum), nil
}
