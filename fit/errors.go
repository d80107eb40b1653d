// Package fit implements the parametric cubic least-squares fitter:
// given samples (t, x, y), find cubics x(t), y(t) minimising weighted
// squared residuals, with an optional knot-reparameterization refit pass.
package fit

import "errors"

// Sentinel errors for the cubic fitter.
var (
	// ErrTooFewSamples indicates fewer than 4 samples were supplied; a
	// cubic has 4 degrees of freedom per coordinate and cannot be fit
	// with fewer points.
	ErrTooFewSamples = errors.New("fit: need at least 4 samples to fit a cubic")
	// ErrDegenerateSystem indicates the normal-equations matrix (AᵀA)
	// is singular, e.g. because all sample parameters coincide.
	ErrDegenerateSystem = errors.New("fit: degenerate linear system")
	// ErrShapeMismatch indicates t, R and weights disagree on sample count,
	// or R does not have exactly 2 columns.
	ErrShapeMismatch = errors.New("fit: sample/weight/data shape mismatch")
)
