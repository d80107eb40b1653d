package curvature

import (
	"errors"
	"fmt"
	"math"

	"github.com/gocurve/curvskel/fit"
	"github.com/gocurve/curvskel/grid"
	"github.com/gocurve/curvskel/matrix"
)

// searchOffsets is the fixed order in which candidate directions near the
// direction of travel are tried at each walk step: straight ahead first,
// then alternating left/right by increasing angle, skipping the exact
// reverse (offset ±4), per spec.md §4.C's description of the original
// search order {0,1,7,2,6,3,5,4} read as signed offsets {0,+1,-1,+2,-2,+3,-3}.
var searchOffsets = [7]int{0, 1, -1, 2, -2, 3, -3}

type walkPoint struct {
	i, j int
	dir  grid.Direction
}

// neighborDirections returns the two directions in which (i,j) has an
// on-neighbour. ok is false unless there are exactly two.
func neighborDirections(g *grid.Grid, i, j int) (d1, d2 grid.Direction, ok bool) {
	count := 0
	var dirs [2]grid.Direction
	for d := 0; d < grid.NumDirections; d++ {
		off := grid.Direction(d)
		di, dj := off.Offset()
		if g.On(i+di, j+dj) {
			if count < 2 {
				dirs[count] = off
			}
			count++
		}
	}
	if count != 2 {
		return 0, 0, false
	}

	return dirs[0], dirs[1], true
}

// nextStep picks the next pixel to walk to from (ci,cj), having just
// arrived travelling in direction curDir. It prefers directions close to
// curDir, skips already-visited pixels, and refuses to step onto a pixel
// that does not itself have at most 2 on-neighbours (stepping past a
// junction would no longer describe a simple curve segment).
func nextStep(g *grid.Grid, ci, cj int, curDir grid.Direction, visited map[[2]int]bool) (walkPoint, bool) {
	for _, offset := range searchOffsets {
		d := grid.Direction((int(curDir) + offset + grid.NumDirections) % grid.NumDirections)
		di, dj := d.Offset()
		ni, nj := ci+di, cj+dj
		if !g.On(ni, nj) {
			continue
		}
		if visited[[2]int{ni, nj}] {
			continue
		}
		if g.NeighborCount(ni, nj) > 2 {
			continue
		}
		return walkPoint{i: ni, j: nj, dir: d}, true
	}

	return walkPoint{}, false
}

// walk follows the skeleton from (i0,j0) starting in direction seedDir, for
// at most maxSteps pixels, returning the visited points in travel order.
func walk(g *grid.Grid, i0, j0 int, seedDir grid.Direction, maxSteps int) []walkPoint {
	visited := map[[2]int]bool{{i0, j0}: true}
	ci, cj := i0, j0
	curDir := seedDir
	var pts []walkPoint
	for step := 0; step < maxSteps; step++ {
		next, ok := nextStep(g, ci, cj, curDir, visited)
		if !ok {
			break
		}
		pts = append(pts, next)
		visited[[2]int{next.i, next.j}] = true
		ci, cj = next.i, next.j
		curDir = next.dir
	}

	return pts
}

// window holds the symmetric, arc-length-parameterized sample set built
// around a single pixel, ready to hand to fit.Fit.
type window struct {
	samples fit.Samples
}

// buildWindow walks outward through d1 and backward through d2, trims to a
// symmetric length, and assigns arc-length parameters (negative on the
// backward side, 0 at the centre, positive on the forward side). Samples
// are fit unweighted, matching every fit_parametric_cubic call site in the
// original, which always passes weight_vp = NULL.
func buildWindow(g *grid.Grid, i, j int, d1, d2 grid.Direction, cfg Config) (*window, error) {
	forward := walk(g, i, j, d1, cfg.LineLen)
	backward := walk(g, i, j, d2, cfg.LineLen)

	side := len(forward)
	if len(backward) < side {
		side = len(backward)
	}
	if side < cfg.MinSide {
		return nil, ErrNotLongEnough
	}
	forward = forward[:side]
	backward = backward[:side]

	n := 2*side + 1
	t := make([]float64, n)
	R, err := matrix.NewDense(n, 2)
	if err != nil {
		return nil, fmt.Errorf("buildWindow: %w", err)
	}

	// Backward samples, innermost first, occupy indices [0, side); centre
	// sits at index side; forward samples occupy (side, n).
	cum := 0.0
	for k := 0; k < side; k++ {
		p := backward[k]
		cum -= p.dir.StepCost()
		idx := side - 1 - k
		t[idx] = cum
		if err := R.Set(idx, 0, float64(p.j)); err != nil {
			return nil, err
		}
		if err := R.Set(idx, 1, float64(p.i)); err != nil {
			return nil, err
		}
	}

	t[side] = 0
	if err := R.Set(side, 0, float64(j)); err != nil {
		return nil, err
	}
	if err := R.Set(side, 1, float64(i)); err != nil {
		return nil, err
	}

	cum = 0.0
	for k := 0; k < side; k++ {
		p := forward[k]
		cum += p.dir.StepCost()
		idx := side + 1 + k
		t[idx] = cum
		if err := R.Set(idx, 0, float64(p.j)); err != nil {
			return nil, err
		}
		if err := R.Set(idx, 1, float64(p.i)); err != nil {
			return nil, err
		}
	}

	return &window{samples: fit.Samples{T: t, R: R}}, nil
}

// estimateAt estimates |κ| at a single on-pixel (i,j).
func estimateAt(g *grid.Grid, i, j int, cfg Config) (float64, error) {
	if g.NeighborCount(i, j) != 2 {
		return 0, ErrWrongNeighborCount
	}
	d1, d2, ok := neighborDirections(g, i, j)
	if !ok {
		return 0, ErrWrongNeighborCount
	}

	win, err := buildWindow(g, i, j, d1, d2, cfg)
	if err != nil {
		return 0, err
	}

	var opts []fit.Option
	if cfg.IterativeFit {
		opts = append(opts, fit.WithRefit())
	}
	result, err := fit.Fit(win.samples, opts...)
	if err != nil {
		return 0, fmt.Errorf("%w", ErrDegenerateSystem)
	}

	signed, err := SignedCurvature(result.Coeffs, 0)
	if err != nil {
		return 0, err
	}
	if signed < 0 {
		signed = -signed
	}

	return signed, nil
}

// SignedCurvature evaluates κ = 2·(x'y″-y'x″) / (x'²+y'²)^(3/2) at
// parameter t from a 4×2 cubic coefficient matrix, without discarding
// sign. estimateAt (and so every Field entry) reports |κ|; the cutter's
// joint-fit scorer (spec.md §4.E) needs the signed value on one side of a
// candidate cut, so this is exposed directly.
func SignedCurvature(coeffs matrix.Matrix, t float64) (float64, error) {
	a1, err := coeffs.At(1, 0)
	if err != nil {
		return 0, err
	}
	a2, err := coeffs.At(2, 0)
	if err != nil {
		return 0, err
	}
	a3, err := coeffs.At(3, 0)
	if err != nil {
		return 0, err
	}
	b1, err := coeffs.At(1, 1)
	if err != nil {
		return 0, err
	}
	b2, err := coeffs.At(2, 1)
	if err != nil {
		return 0, err
	}
	b3, err := coeffs.At(3, 1)
	if err != nil {
		return 0, err
	}

	dx := a1 + 2*a2*t + 3*a3*t*t
	dy := b1 + 2*b2*t + 3*b3*t*t
	ddx := 2*a2 + 6*a3*t
	ddy := 2*b2 + 6*b3*t
	speedSq := dx*dx + dy*dy
	if speedSq == 0 {
		return 0, ErrDegenerateSystem
	}

	return 2 * (dx*ddy - dy*ddx) / (speedSq * math.Sqrt(speedSq)), nil
}

// EstimateAt estimates |κ| at a single pixel, returning the appropriate
// Sentinel* value and a nil error for every recognised failure class
// instead of propagating the sentinel error, matching Field's convention.
// Use this when only one pixel's reading is needed; EstimateAll is the
// bulk entry point.
func EstimateAt(g *grid.Grid, i, j int, cfg Config) float64 {
	if !g.On(i, j) {
		return SentinelOff
	}
	kappa, err := estimateAt(g, i, j, cfg)
	switch {
	case err == nil:
		return kappa
	case errors.Is(err, ErrWrongNeighborCount):
		return SentinelWrongNeighborCount
	case errors.Is(err, ErrNotLongEnough):
		return SentinelNotLongEnough
	default:
		return SentinelDegenerateSystem
	}
}

// EstimateAll computes a curvature Field over every pixel of g. Pixels
// outside the "on" mask hold SentinelOff; on-pixels hold either |κ| or the
// sentinel of whichever failure class estimateAt hit.
func EstimateAll(g *grid.Grid, cfg Config) *Field {
	field := NewField(g.Height, g.Width)
	for i := 0; i < g.Height; i++ {
		for j := 0; j < g.Width; j++ {
			if !g.On(i, j) {
				continue
			}
			field.set(i, j, EstimateAt(g, i, j, cfg))
		}
	}

	return field
}
