package cutter

import (
	"sort"

	"github.com/gocurve/curvskel/curvature"
	"github.com/gocurve/curvskel/grid"
	"github.com/gocurve/curvskel/pathwalk"
)

// Cut runs the full pipeline of spec.md §4.E: build the "on" mask from
// src, thin it, estimate curvature, then run three passes of decreasing
// strictness marking junctions as cut/precious/terminator. Returns the
// annotated grid and the curvature field it was scored against.
func Cut(src grid.PixelSource, height, width int, cfg CutterConfig) (*grid.Grid, *curvature.Field, error) {
	if src == nil {
		return nil, nil, ErrNilSource
	}

	g, err := grid.NewFromSource(src, height, width)
	if err != nil {
		return nil, nil, err
	}
	g.ThinPreservingConnectivity()
	field := curvature.EstimateAll(g, cfg.Curvature)

	passes := []struct {
		predicate     func(g *grid.Grid, i, j int) bool
		relaxedMinLen bool
	}{
		{predicate: func(g *grid.Grid, i, j int) bool { return g.NeighborCountExcludingAligned(i, j) > 2 }},
		{predicate: func(g *grid.Grid, i, j int) bool { return g.NeighborCount(i, j) > 2 }},
		{predicate: func(g *grid.Grid, i, j int) bool { return g.NeighborCount(i, j) > 2 }, relaxedMinLen: true},
	}
	for _, pass := range passes {
		runPass(g, field, pass.predicate, pass.relaxedMinLen, cfg)
	}

	return g, field, nil
}

// runPass implements spec.md §4.E step 3: repeat the candidate-gather /
// sort / commit inner loop until a full sweep commits no new cuts.
func runPass(g *grid.Grid, field *curvature.Field, predicate func(*grid.Grid, int, int) bool, relaxedMinLen bool, cfg CutterConfig) {
	for {
		var candidates []candidateCut
		for i := 0; i < g.Height; i++ {
			for j := 0; j < g.Width; j++ {
				if !g.On(i, j) || g.Cut(i, j) || g.Term(i, j) || g.Precious(i, j) {
					continue
				}
				if !predicate(g, i, j) {
					continue
				}
				cand, ok := scoreJunction(g, field, i, j, cfg)
				if !ok {
					continue
				}
				if !relaxedMinLen && (cand.Path1.Len() <= cfg.MinBufferLength || cand.Path2.Len() <= cfg.MinBufferLength) {
					continue
				}
				candidates = append(candidates, *cand)
			}
		}
		if len(candidates) == 0 {
			return
		}

		sort.Slice(candidates, func(a, b int) bool { return candidates[a].Quality < candidates[b].Quality })

		committedAny := commitSorted(g, candidates, cfg)
		if !committedAny || !cfg.IterativeCutting {
			return
		}
	}
}

// commitSorted walks candidates in ascending quality order, committing
// each that is not already invalidated by an earlier commit's radius,
// per spec.md §4.E step 3c.
func commitSorted(g *grid.Grid, candidates []candidateCut, cfg CutterConfig) bool {
	invalidated := make(map[[2]int]bool)
	committedAny := false

	for _, cand := range candidates {
		if invalidated[[2]int{cand.I, cand.J}] {
			continue
		}
		if g.Cut(cand.I, cand.J) || g.Term(cand.I, cand.J) || g.Precious(cand.I, cand.J) {
			continue
		}

		commitCandidate(g, cand, cfg)
		committedAny = true

		shortest := cand.Path1.Len()
		if cand.Path2.Len() < shortest {
			shortest = cand.Path2.Len()
		}
		radius := fsCommitSize(cfg, shortest) + cfg.MaxCutPathLength
		invalidateNearby(invalidated, cand.I, cand.J, radius)
	}

	return committedAny
}

// commitCandidate marks a single accepted cut: the committed prefix of
// each path becomes precious, their outward neighbours become
// terminators, and the junction pixel itself becomes cut and precious.
func commitCandidate(g *grid.Grid, cand candidateCut, cfg CutterConfig) {
	paths := [2]pathwalk.Path{cand.Path1, cand.Path2}

	committed := make(map[[2]int]bool)
	for _, p := range paths {
		limit := commitLimit(cfg, p)
		for k := 0; k < limit; k++ {
			g.SetPrecious(p.Cells[k].I, p.Cells[k].J, true)
			committed[[2]int{p.Cells[k].I, p.Cells[k].J}] = true
		}
	}

	inEitherPath := func(i, j int) bool {
		for _, p := range paths {
			for _, c := range p.Cells {
				if c.I == i && c.J == j {
					return true
				}
			}
		}

		return false
	}

	for cell := range committed {
		i, j := cell[0], cell[1]
		for d := 0; d < grid.NumDirections; d++ {
			di, dj := grid.Direction(d).Offset()
			ni, nj := i+di, j+dj
			if !g.On(ni, nj) {
				continue
			}
			if committed[[2]int{ni, nj}] || inEitherPath(ni, nj) || g.Precious(ni, nj) {
				continue
			}
			g.SetTerm(ni, nj, true)
		}
	}

	g.SetCut(cand.I, cand.J, true)
	g.SetPrecious(cand.I, cand.J, true)
}

// commitLimit returns the number of leading path cells committed as
// precious: fsCommitSize(cfg, len(p)) pixels, minus the prefix's last
// step, per spec.md §4.E step 3c.
func commitLimit(cfg CutterConfig, p pathwalk.Path) int {
	limit := fsCommitSize(cfg, p.Len())
	if limit > p.Len()-1 {
		limit = p.Len() - 1
	}
	if limit < 0 {
		limit = 0
	}

	return limit
}

// invalidateNearby marks every grid cell within Chebyshev distance radius
// of (ci,cj) as invalidated, so a later candidate centred there is
// skipped in this sweep (spec.md §4.E step 3c).
func invalidateNearby(invalidated map[[2]int]bool, ci, cj, radius int) {
	for i := ci - radius; i <= ci+radius; i++ {
		for j := cj - radius; j <= cj+radius; j++ {
			invalidated[[2]int{i, j}] = true
		}
	}
}
