package grid

import (
	"math"

	"github.com/gocurve/curvskel/matrix"
)

// blockOffsets enumerates the 3×3 neighbourhood in row-major order; index 4
// is the centre itself. This mirrors curv_lib.c's pixel_index = 3*(di+1)+dj+1.
var blockOffsets = [9][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 0}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

const blockCentre = 4

// connectivityMatrix computes, for every on-pixel k of the 3×3 block
// centred at (i, j), the set of block positions reachable from k by a path
// of on-pixels confined to the block, under 8-adjacency. reach[k][l] is set
// iff k and l are both on and lie in the same connected component of the
// block. This mirrors curv_lib.c's get_connectivity/update_connectivity
// pair, replacing its malloc'd 9×9 Int_matrix with matrix.FloydWarshall's
// all-pairs-shortest-paths closure over a 9-node distance matrix built from
// the block's adjacency.
func (g *Grid) connectivityMatrix(i, j int) [9][9]bool {
	var on [9]bool
	for k, off := range blockOffsets {
		on[k] = g.On(i+off[0], j+off[1])
	}

	dist, err := matrix.NewDistanceDense(9)
	if err != nil {
		panic(err)
	}
	for k := 0; k < 9; k++ {
		for l := 0; l < 9; l++ {
			if k == l {
				_ = dist.Set(k, l, 0)
				continue
			}
			_ = dist.Set(k, l, math.Inf(1))
		}
	}
	for k := 0; k < 9; k++ {
		if !on[k] {
			continue
		}
		for l := 0; l < 9; l++ {
			if k == l || !on[l] {
				continue
			}
			di := blockOffsets[k][0] - blockOffsets[l][0]
			dj := blockOffsets[k][1] - blockOffsets[l][1]
			if chebyshevDistance(0, 0, di, dj) <= 1 {
				_ = dist.Set(k, l, 1)
			}
		}
	}

	if err := matrix.FloydWarshall(dist); err != nil {
		panic(err)
	}

	var reach [9][9]bool
	for k := 0; k < 9; k++ {
		if !on[k] {
			continue
		}
		for l := 0; l < 9; l++ {
			if !on[l] {
				continue
			}
			d, _ := dist.At(k, l)
			if !math.IsInf(d, 1) {
				reach[k][l] = true
			}
		}
	}

	return reach
}

// ThinPreservingConnectivity thins the "on" mask in strict outside-in
// order: for each target degree k = 2..8, repeatedly sweep the grid and
// tentatively clear every on-pixel whose neighbour count equals k. The
// removal is committed only if clearing the centre leaves the reachability
// relation among its 3×3 neighbours unchanged; otherwise it is reverted.
// The "before" fingerprint is computed with the centre still on (so it
// still bridges otherwise-disconnected neighbours), then has the centre's
// own row and column zeroed for comparison, matching
// thin_pixels_not_needed_for_contiguity_2's explicit zeroing of row/column 4
// after computing connectivity but before clearing the pixel. Each k-sweep
// repeats until a full pass removes nothing, then k is incremented.
// The whole k = 2..8 pass is repeated until a complete pass removes
// nothing, so a second call removes nothing.
func (g *Grid) ThinPreservingConnectivity() {
	for g.thinPass() {
	}
}

// thinPass runs one outside-in pass over k = 2..8 and reports whether it
// removed any pixel.
func (g *Grid) thinPass() bool {
	removed := false
	for k := 2; k <= NumDirections; k++ {
		for {
			removedAny := false
			for i := 0; i < g.Height; i++ {
				for j := 0; j < g.Width; j++ {
					if !g.On(i, j) {
						continue
					}
					if g.NeighborCount(i, j) != k {
						continue
					}

					before := g.connectivityMatrix(i, j)
					for c := 0; c < 9; c++ {
						before[blockCentre][c] = false
						before[c][blockCentre] = false
					}

					g.SetOn(i, j, false)
					after := g.connectivityMatrix(i, j)

					if before == after {
						removedAny = true
					} else {
						g.SetOn(i, j, true)
					}
				}
			}
			if !removedAny {
				break
			}
			removed = true
		}
	}

	return removed
}
