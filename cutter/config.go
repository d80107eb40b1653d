// Package cutter drives the full junction-cutting pipeline: thin a binary
// image's skeleton, estimate its curvature field, and mark junction
// pixels as cut, their chosen continuations as precious, and their
// severed branches' immediate neighbours as terminators.
package cutter

import "github.com/gocurve/curvskel/curvature"

// CutterConfig bundles the compile-time feature flags spec.md §9
// describes as "all on in the canonical configuration", plus the sizing
// constants spec.md §4.E names. Every flag defaults to true/its canonical
// value; callers wanting the original library's exact behaviour need
// change nothing.
type CutterConfig struct {
	// SymmetricFit names the original compile switch for a symmetric
	// per-pixel curvature window (4.C). The cutter does not read it: the
	// curvature estimator always trims its window to equal length on both
	// sides, whatever this field holds.
	SymmetricFit bool
	// BalanceWeight enables recording each winning candidate's bookkeeping
	// Weight (the mean arc-length-to-second-sample across its two paths).
	// The joint cubic fit itself is always unweighted, matching every
	// fit_parametric_cubic call site in the original, which always passes
	// weight_vp = NULL.
	BalanceWeight bool
	// AbsCurvature reports |κ| in the curvature field (always true here;
	// kept as a named flag for parity with the original compile switch).
	AbsCurvature bool
	// IterativeFit enables the knot-reparameterization refit pass on the
	// joint cut fits. Per-pixel curvature fits follow
	// Curvature.IterativeFit instead.
	IterativeFit bool
	// NoSelfTouchingPaths names the original no-self-touch switch. The
	// cutter does not read it: the path enumerator always applies the
	// no-self-touch admissibility rule.
	NoSelfTouchingPaths bool
	// CommitToEntirePath names the original commit switch. The cutter
	// does not read it: a commit always covers the full prefix up to
	// fsCommitSize.
	CommitToEntirePath bool
	// IterativeCutting repeats the inner commit loop (§4.E step 3) until
	// a full sweep makes no new cuts, rather than stopping after one pass.
	IterativeCutting bool

	// JunctionSize is the number of samples dropped from each side of a
	// jump-junction joint fit (original JUNCTION_SIZE).
	JunctionSize int
	// MinBufferLength is the path length both of a cut candidate's
	// continuations must exceed outside pass 2 (original MIN_BUFFER_LENGTH).
	MinBufferLength int
	// MaxCutPathLength bounds both the path enumerator's path length
	// during scoring and fsCommitSize's numerator (original
	// MAX_CUT_PATH_LENGTH).
	MaxCutPathLength int
	// MaxNumPaths bounds the path enumerator's global path budget during
	// scoring.
	MaxNumPaths int
	// RecursionDepth is the path enumerator's local-budget depth D.
	RecursionDepth int

	// Curvature controls the per-pixel curvature estimator (component C).
	Curvature curvature.Config
}

// Option configures a single DefaultConfig call.
type Option func(*CutterConfig)

// DefaultConfig returns the canonical configuration: every feature flag
// on, JunctionSize=2, MinBufferLength=8, MaxCutPathLength=16.
func DefaultConfig(opts ...Option) CutterConfig {
	cfg := CutterConfig{
		SymmetricFit:        true,
		BalanceWeight:       true,
		AbsCurvature:        true,
		IterativeFit:        true,
		NoSelfTouchingPaths: true,
		CommitToEntirePath:  true,
		IterativeCutting:    true,

		JunctionSize:     2,
		MinBufferLength:  8,
		MaxCutPathLength: 16,
		MaxNumPaths:      59049,
		RecursionDepth:   5,

		Curvature: curvature.DefaultConfig(),
	}
	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// WithMinBufferLength overrides the minimum continuation length.
func WithMinBufferLength(n int) Option {
	return func(c *CutterConfig) { c.MinBufferLength = n }
}

// WithMaxCutPathLength overrides the scoring path-length bound.
func WithMaxCutPathLength(n int) Option {
	return func(c *CutterConfig) { c.MaxCutPathLength = n }
}

// fsCommitSize returns min(MaxCutPathLength/2, pathLen-4), the size of the
// prefix marked precious on commit (spec.md §4.E step 3c).
func fsCommitSize(cfg CutterConfig, pathLen int) int {
	bound := cfg.MaxCutPathLength / 2
	alt := pathLen - 4
	if alt < bound {
		bound = alt
	}
	if bound < 0 {
		bound = 0
	}

	return bound
}
