package grid

// NeighborCount returns the number of the 8 neighbours of (i, j) that are
// set in the "on" mask. Out-of-bounds neighbours read as cleared.
func (g *Grid) NeighborCount(i, j int) int {
	count := 0
	for d := 0; d < NumDirections; d++ {
		di, dj := Direction(d).Offset()
		if g.On(i+di, j+dj) {
			count++
		}
	}

	return count
}

// chebyshevDistance returns max(|i1-i2|, |j1-j2|).
func chebyshevDistance(i1, j1, i2, j2 int) int {
	di := i1 - i2
	if di < 0 {
		di = -di
	}
	dj := j1 - j2
	if dj < 0 {
		dj = -dj
	}
	if di > dj {
		return di
	}

	return dj
}

// axisParallelOnNeighborCount counts on-neighbours of (i,j) reachable by a
// single axis-aligned (even-direction) step, not counting the cell (xi,xj).
// Used by NeighborCountExcludingAligned to recognise "thin" branch
// candidates, with (xi,xj) the centre whose neighbours are being counted.
func (g *Grid) axisParallelOnNeighborCount(i, j, xi, xj int) int {
	count := 0
	for d := 0; d < NumDirections; d += 2 {
		di, dj := Direction(d).Offset()
		if i+di == xi && j+dj == xj {
			continue
		}
		if g.On(i+di, j+dj) {
			count++
		}
	}

	return count
}

// NeighborCountExcludingAligned counts the on-neighbours of (i, j) after a
// two-sweep acceptance pass intended to ignore thick 2-wide patches and
// focus on real topological branches:
//
//  1. First sweep: accept on-neighbours that themselves have at most one
//     axis-parallel on-neighbour (besides (i,j)) — i.e. neighbours that
//     look like the tip of a thin branch rather than part of a blob.
//  2. Second sweep: accept the remaining on-neighbours.
//
// In each sweep, a candidate is skipped if it lies within Chebyshev
// distance 1 of an already-accepted neighbour, so that a thick patch of
// neighbours only contributes one accepted direction.
func (g *Grid) NeighborCountExcludingAligned(i, j int) int {
	var accepted [NumDirections][2]int
	acceptedCount := 0

	tooClose := func(ni, nj int) bool {
		for k := 0; k < acceptedCount; k++ {
			if chebyshevDistance(ni, nj, accepted[k][0], accepted[k][1]) <= 1 {
				return true
			}
		}

		return false
	}

	// Sweep 1: thin-branch-tip neighbours.
	for d := 0; d < NumDirections; d++ {
		di, dj := Direction(d).Offset()
		ni, nj := i+di, j+dj
		if !g.On(ni, nj) {
			continue
		}
		if g.axisParallelOnNeighborCount(ni, nj, i, j) > 1 {
			continue
		}
		if tooClose(ni, nj) {
			continue
		}
		accepted[acceptedCount] = [2]int{ni, nj}
		acceptedCount++
	}

	// Sweep 2: everything else.
	for d := 0; d < NumDirections; d++ {
		di, dj := Direction(d).Offset()
		ni, nj := i+di, j+dj
		if !g.On(ni, nj) {
			continue
		}
		if g.axisParallelOnNeighborCount(ni, nj, i, j) <= 1 {
			continue // already considered in sweep 1
		}
		if tooClose(ni, nj) {
			continue
		}
		accepted[acceptedCount] = [2]int{ni, nj}
		acceptedCount++
	}

	return acceptedCount
}
