// Package curvature estimates per-pixel curvature κ over a thinned
// skeleton grid by fitting a local parametric cubic to a symmetric window
// of samples walked along the curve.
package curvature

import "errors"

// Sentinel errors returned by estimateAt, matching the original
// Curve_res taxonomy (curv_type.h): NO_ERROR maps to a nil error,
// everything else becomes one of these.
var (
	// ErrWrongNeighborCount indicates the centre pixel does not have
	// exactly two on-neighbours, so it is not on a simple curve segment.
	ErrWrongNeighborCount = errors.New("curvature: pixel does not have exactly 2 neighbours")
	// ErrNotLongEnough indicates the outward/backward walk could not
	// collect enough samples to form a valid symmetric window.
	ErrNotLongEnough = errors.New("curvature: insufficient samples for a symmetric window")
	// ErrDegenerateSystem indicates the local cubic fit's linear system
	// was singular.
	ErrDegenerateSystem = errors.New("curvature: degenerate linear system")
)
