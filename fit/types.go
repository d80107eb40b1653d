package fit

import "github.com/gocurve/curvskel/matrix"

// Samples is the input to Fit: n parameter/data triples (tₖ, xₖ, yₖ) and
// optional per-sample weights (nil means all weights are 1).
type Samples struct {
	T       []float64     // sample parameters, length n
	R       matrix.Matrix // n×2 data matrix, column 0 = x, column 1 = y
	Weights []float64     // optional, length n when non-nil
}

// Result holds a fitted cubic pair and its quality.
type Result struct {
	// Coeffs is the 4×2 coefficient matrix: row r holds (a_r, b_r), the
	// coefficient of t^r in x(t) and y(t) respectively (r = 0..3).
	Coeffs matrix.Matrix
	// RMSError is e = sqrt(2/n * Σ residuals²) per spec.md §4.B.
	RMSError float64
}

// options holds Fit's behaviour flags, set via Option.
type options struct {
	refit bool
}

// Option configures a single call to Fit.
type Option func(*options)

// WithRefit enables the iterative knot-reparameterization refit pass
// (exactly two iterations, per spec.md §4.B and the original NUM_ITS
// constant).
func WithRefit() Option {
	return func(o *options) { o.refit = true }
}

// refitIterations is the fixed number of refit passes; the original
// C library hardcodes NUM_ITS=2 and spec.md confirms "exactly two
// iterations".
const refitIterations = 2

func (samples Samples) n() int {
	return len(samples.T)
}
