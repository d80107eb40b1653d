package pathwalk

import (
	"math"
	"sort"

	"github.com/gocurve/curvskel/curvature"
	"github.com/gocurve/curvskel/grid"
)

// junctionKappaThreshold is the κ(ci,cj) > 0.10 check spec.md §4.D step 5
// requires at k=1 junction-stop decisions.
const junctionKappaThreshold = 0.10

// walkContext carries the per-invocation recursion state (depth, path
// counters, the local budget ceiling) that the original C implementation
// kept in file-static globals. Passing it by pointer through the
// recursion, rather than reaching for package state, is what spec.md §5
// and §9 ask for: a context struct, safe for concurrent independent calls.
type walkContext struct {
	g       *grid.Grid
	field   *curvature.Field
	budgets Budgets
	table   *Table

	numPaths        int
	localCeiling    int
	localCeilingSet bool
}

// Enumerate runs the depth-first path enumerator from spec.md §4.D,
// seeded at (i,j) stepping first toward dir, and returns every path and
// snapshotted prefix collected within budgets.
func Enumerate(g *grid.Grid, field *curvature.Field, i, j int, dir grid.Direction, budgets Budgets) (*Table, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if !g.InBounds(i, j) {
		return nil, ErrSeedOutOfBounds
	}

	table := &Table{}
	di, dj := dir.Offset()
	ni, nj := i+di, j+dj
	if !g.On(i, j) || !g.On(ni, nj) {
		return table, nil
	}

	ctx := &walkContext{g: g, field: field, budgets: budgets, table: table, numPaths: 1}
	initial := Path{
		Cells: []Cell{{I: i, J: j}, {I: ni, J: nj}},
		T:     []float64{0, dir.StepCost()},
	}
	ctx.walk(initial, dir, 0)

	return table, nil
}

func (ctx *walkContext) commit(p Path) {
	cells := make([]Cell, len(p.Cells))
	copy(cells, p.Cells)
	t := make([]float64, len(p.T))
	copy(t, p.T)
	ctx.table.Paths = append(ctx.table.Paths, Path{Cells: cells, T: t})
}

type candidate struct {
	dir   grid.Direction
	score float64
}

// admissibleDirections returns the directions d, from (ci,cj) having just
// arrived via prev, that satisfy spec.md §4.D step 2: in-bounds, on,
// unvisited, turn angle < 3, and no-self-touch.
func admissibleDirections(g *grid.Grid, path Path, ci, cj int, prev grid.Direction) []candidate {
	var out []candidate
	for d := 0; d < grid.NumDirections; d++ {
		dd := grid.Direction(d)
		if grid.AngularDistance(prev, dd) >= 3 {
			continue
		}
		di, dj := dd.Offset()
		ti, tj := ci+di, cj+dj
		if !g.InBounds(ti, tj) || !g.On(ti, tj) {
			continue
		}
		if containsCell(path.Cells, ti, tj) {
			continue
		}
		if !noSelfTouch(path.Cells, ci, cj, ti, tj) {
			continue
		}
		out = append(out, candidate{dir: dd, score: lookBackScore(path, ci, cj, dd)})
	}

	return out
}

func containsCell(cells []Cell, i, j int) bool {
	for _, c := range cells {
		if c.I == i && c.J == j {
			return true
		}
	}

	return false
}

// noSelfTouch reports whether stepping from (ci,cj) to (ti,tj) would bring
// the target within Chebyshev distance 1 of any earlier path cell other
// than (ci,cj) and the target itself (spec.md §4.D step 2, no-self-touch).
func noSelfTouch(cells []Cell, ci, cj, ti, tj int) bool {
	for _, c := range cells {
		if c.I == ci && c.J == cj {
			continue
		}
		if c.I == ti && c.J == tj {
			continue
		}
		di := c.I - ti
		if di < 0 {
			di = -di
		}
		dj := c.J - tj
		if dj < 0 {
			dj = -dj
		}
		dist := di
		if dj > dist {
			dist = dj
		}
		if dist <= 1 {
			return false
		}
	}

	return true
}

// lookBackScore computes the look-back dot product spec.md §4.D step 3
// describes: the reference cell is LookBack steps earlier on the path
// (clamped at the start), the dot product is against offset(d), and
// diagonal directions are normalised by √2.
func lookBackScore(path Path, ci, cj int, d grid.Direction) float64 {
	idx := len(path.Cells) - 1 - LookBack
	if idx < 0 {
		idx = 0
	}
	ref := path.Cells[idx]
	di, dj := d.Offset()
	dot := float64((ci-ref.I)*di + (cj-ref.J)*dj)
	if int(d)%2 == 1 {
		dot /= math.Sqrt2
	}

	return dot
}

// walk implements spec.md §4.D steps 2-7 for one pixel of the recursion.
func (ctx *walkContext) walk(path Path, prev grid.Direction, depth int) {
	last := path.Cells[len(path.Cells)-1]
	ci, cj := last.I, last.J

	// Step 6: termination on terminator.
	if ctx.g.Term(ci, cj) {
		ctx.commit(path)
		return
	}

	admissible := admissibleDirections(ctx.g, path, ci, cj, prev)
	k := len(admissible)

	// Step 4, k=0 case.
	if k == 0 {
		ctx.commit(path)
		return
	}

	// Step 5: junction-stop condition.
	if ctx.budgets.MinLenForStoppingAtJunctions > 0 {
		junction := k >= 2
		if k == 1 {
			junction = ctx.field != nil && ctx.field.At(ci, cj) > junctionKappaThreshold
		}
		if junction {
			ctx.commit(path)
		}
	}

	// Step 7: budget enforcement.
	if len(path.Cells) >= ctx.budgets.MaxPathLen {
		ctx.commit(path)
		return
	}
	if ctx.numPaths >= ctx.budgets.MaxNumPaths {
		ctx.commit(path)
		return
	}
	if depth >= ctx.budgets.Depth {
		if !ctx.localCeilingSet {
			ctx.localCeiling = ctx.numPaths + ctx.budgets.MaxNumPaths/pow9(ctx.budgets.Depth)
			ctx.localCeilingSet = true
		}
		if ctx.numPaths >= ctx.localCeiling {
			ctx.commit(path)
			return
		}
	}

	// Step 3/4: rank by decreasing look-back score and recurse, branching
	// on every candidate beyond the first.
	sort.SliceStable(admissible, func(a, b int) bool {
		return admissible[a].score > admissible[b].score
	})

	origCells, origT := path.Cells, path.T
	for idx, cand := range admissible {
		di, dj := cand.dir.Offset()
		ti, tj := ci+di, cj+dj
		stepCost := origT[len(origT)-1] + cand.dir.StepCost()

		cells := make([]Cell, len(origCells)+1)
		copy(cells, origCells)
		cells[len(origCells)] = Cell{I: ti, J: tj}
		t := make([]float64, len(origT)+1)
		copy(t, origT)
		t[len(origT)] = stepCost

		if idx > 0 {
			ctx.numPaths++
		}
		ctx.walk(Path{Cells: cells, T: t}, cand.dir, depth+1)
	}
}

func pow9(d int) int {
	result := 1
	for i := 0; i < d; i++ {
		result *= 9
	}

	return result
}
