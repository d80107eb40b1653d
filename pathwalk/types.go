package pathwalk

// LookBack is the number of steps back along the current path the branch
// ranking heuristic compares against (original LOOK_BACK).
const LookBack = 7

// Cell is a single grid coordinate on a path.
type Cell struct {
	I, J int
}

// Path is one row of a Table: a sequence of cells plus the cumulative
// arc-length step cost at each cell (T[0] is always 0).
type Path struct {
	Cells []Cell
	T     []float64
}

// Len returns the number of valid cells in the path.
func (p Path) Len() int {
	return len(p.Cells)
}

// Table holds every path produced by a single Enumerate call.
type Table struct {
	Paths []Path
}

// Budgets bounds a single Enumerate call, per spec.md §4.D step 7.
type Budgets struct {
	// MaxNumPaths is the global ceiling on rows across the whole table.
	MaxNumPaths int
	// MaxPathLen is the maximum number of cells any single path may hold.
	MaxPathLen int
	// Depth is the recursion depth D (one level per pixel advanced, not
	// per branch point) at which the local ceiling
	// max_num_paths_2 = num_paths + max_num_paths/9^D takes over.
	Depth int
	// MinLenForStoppingAtJunctions enables junction-stop snapshotting
	// when positive; 0 disables it entirely.
	MinLenForStoppingAtJunctions int
}

// DefaultBudgets returns the canonical configuration: D=5, K=1, L≈64, as
// described in spec.md §5's memory-footprint estimate, so MaxNumPaths is
// 9^D·K = 59049.
func DefaultBudgets() Budgets {
	return Budgets{
		MaxNumPaths:                  59049,
		MaxPathLen:                   64,
		Depth:                        5,
		MinLenForStoppingAtJunctions: 1,
	}
}
