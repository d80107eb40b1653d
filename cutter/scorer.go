package cutter

import (
	"math"

	"github.com/gocurve/curvskel/curvature"
	"github.com/gocurve/curvskel/fit"
	"github.com/gocurve/curvskel/grid"
	"github.com/gocurve/curvskel/matrix"
	"github.com/gocurve/curvskel/pathwalk"
)

// syntheticSeamGap is the synthetic half-distance inserted at the seam of
// a jump-junction joint fit once each side's nearest JunctionSize samples
// have been dropped (spec.md §4.E step 4c).
const syntheticSeamGap = 0.5

// candidateCut is one scored junction-cut hypothesis.
type candidateCut struct {
	I, J       int
	Dir1, Dir2 grid.Direction
	Path1      pathwalk.Path
	Path2      pathwalk.Path
	Quality    float64
	// Weight is bookkeeping only (mean arc-length-to-second-sample across
	// Path1 and Path2), recorded when cfg.BalanceWeight is set. It plays
	// no part in scoring or comparison.
	Weight float64
}

// chebyshev returns the Chebyshev distance between two path cells.
func chebyshev(a, b pathwalk.Cell) int {
	di := a.I - b.I
	if di < 0 {
		di = -di
	}
	dj := a.J - b.J
	if dj < 0 {
		dj = -dj
	}
	if di > dj {
		return di
	}

	return dj
}

// sharesNonSeedCell reports whether p1 and p2 have any cell in common
// other than their shared seed at index 0.
func sharesNonSeedCell(p1, p2 pathwalk.Path) bool {
	for _, c1 := range p1.Cells[1:] {
		for _, c2 := range p2.Cells[1:] {
			if c1 == c2 {
				return true
			}
		}
	}

	return false
}

// pairNoSelfTouch checks spec.md §4.E step 4c's interior no-self-touch
// rule: every interior cell pair (index >= 2 on both sides) must be at
// Chebyshev distance >= 2.
func pairNoSelfTouch(p1, p2 pathwalk.Path) bool {
	for k := 2; k < p1.Len(); k++ {
		for kk := 2; kk < p2.Len(); kk++ {
			if chebyshev(p1.Cells[k], p2.Cells[kk]) < 2 {
				return false
			}
		}
	}

	return true
}

// longestPerDirection picks the longest path seen in each of the 8 seed
// directions, used as the triples-check representative.
func longestPerDirection(paths [grid.NumDirections][]pathwalk.Path) [grid.NumDirections]*pathwalk.Path {
	var longest [grid.NumDirections]*pathwalk.Path
	for d := 0; d < grid.NumDirections; d++ {
		var best *pathwalk.Path
		for k := range paths[d] {
			p := &paths[d][k]
			if best == nil || p.Len() > best.Len() {
				best = p
			}
		}
		longest[d] = best
	}

	return longest
}

// hasAdmissibleTriple implements spec.md §4.E step 4b: true iff some 3
// distinct directions each have a representative path, pairwise disjoint
// outside the shared seed cell.
func hasAdmissibleTriple(longest [grid.NumDirections]*pathwalk.Path) bool {
	var dirs []int
	for d, p := range longest {
		if p != nil {
			dirs = append(dirs, d)
		}
	}
	for a := 0; a < len(dirs); a++ {
		for b := a + 1; b < len(dirs); b++ {
			if sharesNonSeedCell(*longest[dirs[a]], *longest[dirs[b]]) {
				continue
			}
			for c := b + 1; c < len(dirs); c++ {
				if sharesNonSeedCell(*longest[dirs[a]], *longest[dirs[c]]) {
					continue
				}
				if sharesNonSeedCell(*longest[dirs[b]], *longest[dirs[c]]) {
					continue
				}

				return true
			}
		}
	}

	return false
}

// jointSampleSet builds the stitched sample sequence for a joint cubic
// fit of p1 (positive side) and p2 (negative side), sharing the seed cell
// at t=0. When dropEach > 0, the nearest dropEach samples on each side are
// discarded and a synthetic half-distance gap is inserted at the seam,
// implementing the jump-junction variant of spec.md §4.E step 4c. Samples
// are fit unweighted, matching every fit_parametric_cubic call site in the
// original, which always passes weight_vp = NULL.
func jointSampleSet(p1, p2 pathwalk.Path, dropEach int) (fit.Samples, int, int, bool) {
	fwdStart := 1 + dropEach
	bwdStart := 1 + dropEach
	if fwdStart > p1.Len() || bwdStart > p2.Len() {
		return fit.Samples{}, 0, 0, false
	}
	fwdCells, fwdT := p1.Cells[fwdStart:], p1.T[fwdStart:]
	bwdCells, bwdT := p2.Cells[bwdStart:], p2.T[bwdStart:]
	if len(fwdCells) == 0 || len(bwdCells) == 0 {
		return fit.Samples{}, 0, 0, false
	}

	n := len(bwdCells) + 1 + len(fwdCells)
	t := make([]float64, n)
	cellsOrdered := make([]pathwalk.Cell, n)

	bwdGap := bwdT[0]
	fwdGap := fwdT[0]
	if dropEach > 0 {
		bwdGap, fwdGap = syntheticSeamGap, syntheticSeamGap
	}

	nb := len(bwdCells)
	for k := 0; k < nb; k++ {
		var tv float64
		if k == 0 {
			tv = -bwdGap
		} else {
			tv = t[nb-k] + (bwdT[k-1] - bwdT[k])
		}
		idx := nb - 1 - k
		t[idx] = tv
		cellsOrdered[idx] = bwdCells[k]
	}

	t[nb] = 0
	cellsOrdered[nb] = p1.Cells[0]

	for k := 0; k < len(fwdCells); k++ {
		var tv float64
		if k == 0 {
			tv = fwdGap
		} else {
			tv = t[nb+k] + (fwdT[k] - fwdT[k-1])
		}
		t[nb+1+k] = tv
		cellsOrdered[nb+1+k] = fwdCells[k]
	}

	R, err := matrix.NewDense(n, 2)
	if err != nil {
		return fit.Samples{}, 0, 0, false
	}
	for k := 0; k < n; k++ {
		_ = R.Set(k, 0, float64(cellsOrdered[k].J))
		_ = R.Set(k, 1, float64(cellsOrdered[k].I))
	}

	return fit.Samples{T: t, R: R}, len(fwdCells), len(bwdCells), true
}

// evaluateJointFit fits one joint sample set and returns its quality
// score, per spec.md §4.E step 4c's formula.
func evaluateJointFit(p1, p2 pathwalk.Path, cfg CutterConfig, dropEach int) (float64, bool) {
	samples, fitLen1, fitLen2, ok := jointSampleSet(p1, p2, dropEach)
	if !ok {
		return math.Inf(1), false
	}

	var opts []fit.Option
	if cfg.IterativeFit {
		opts = append(opts, fit.WithRefit())
	}
	result, err := fit.Fit(samples, opts...)
	if err != nil {
		return math.Inf(1), false
	}

	var sum, sumSq float64
	for k := 0; k < len(samples.T); k++ {
		signed, err := curvature.SignedCurvature(result.Coeffs, samples.T[k])
		if err != nil {
			return math.Inf(1), false
		}
		v := signed
		if samples.T[k] >= 0 && v < 0 {
			v = -v
		}
		sum += v
		sumSq += v * v
	}
	n := float64(len(samples.T))
	mean := sum / n
	variance := sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	stdev := math.Sqrt(variance)

	denom := float64(fitLen1 + fitLen2 - 5)
	if denom <= 0 {
		return math.Inf(1), false
	}

	return (5*stdev + result.RMSError) / denom, true
}

// jointQuality scores a candidate pair of paths, taking the smaller of
// the plain joint fit and the jump-junction variant (spec.md §4.E step
// 4c, final paragraph).
func jointQuality(p1, p2 pathwalk.Path, cfg CutterConfig) (float64, bool) {
	best := math.Inf(1)
	found := false
	if q, ok := evaluateJointFit(p1, p2, cfg, 0); ok && q < best {
		best, found = q, true
	}
	if q, ok := evaluateJointFit(p1, p2, cfg, cfg.JunctionSize); ok && q < best {
		best, found = q, true
	}

	return best, found
}

// scoreJunction implements spec.md §4.E step 4 end to end for a single
// candidate pixel (i,j): enumerate paths in all 8 directions, run the
// triples check, then score every admissible pair of paths from distinct
// directions and keep the best.
func scoreJunction(g *grid.Grid, field *curvature.Field, i, j int, cfg CutterConfig) (*candidateCut, bool) {
	budgets := pathwalk.Budgets{
		MaxNumPaths:                  cfg.MaxNumPaths,
		MaxPathLen:                   cfg.MaxCutPathLength,
		Depth:                        cfg.RecursionDepth,
		MinLenForStoppingAtJunctions: 1,
	}

	var paths [grid.NumDirections][]pathwalk.Path
	for d := 0; d < grid.NumDirections; d++ {
		table, err := pathwalk.Enumerate(g, field, i, j, grid.Direction(d), budgets)
		if err != nil {
			continue
		}
		paths[d] = table.Paths
	}

	if !hasAdmissibleTriple(longestPerDirection(paths)) {
		return nil, false
	}

	best := candidateCut{I: i, J: j, Quality: math.Inf(1)}
	found := false

	for d1 := 0; d1 < grid.NumDirections; d1++ {
		for d2 := d1 + 1; d2 < grid.NumDirections; d2++ {
			for _, p1 := range paths[d1] {
				for _, p2 := range paths[d2] {
					if p1.Len() < 2 || p2.Len() < 2 {
						continue
					}
					if sharesNonSeedCell(p1, p2) {
						continue
					}
					if !pairNoSelfTouch(p1, p2) {
						continue
					}
					if p1.Len() < cfg.MinBufferLength && p2.Len() < cfg.MinBufferLength {
						continue
					}

					quality, ok := jointQuality(p1, p2, cfg)
					if !ok || quality >= best.Quality {
						continue
					}
					var weight float64
					if cfg.BalanceWeight {
						weight = (p1.T[1] + p2.T[1]) / 2.0
					}
					best = candidateCut{
						I: i, J: j,
						Dir1: grid.Direction(d1), Dir2: grid.Direction(d2),
						Path1: p1, Path2: p2,
						Quality: quality,
						Weight:  weight,
					}
					found = true
				}
			}
		}
	}

	if !found {
		return nil, false
	}

	return &best, true
}
