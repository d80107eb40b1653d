// Package pathwalk enumerates depth-first walks over a skeleton grid,
// branching at admissible directions and snapshotting prefixes at
// junction candidates, within a global and a depth-local path budget.
package pathwalk

import "errors"

// ErrNilGrid is returned when Enumerate is called with a nil grid: a
// programmer error per spec.md §7, not a structural refusal.
var ErrNilGrid = errors.New("pathwalk: nil grid")

// ErrSeedOutOfBounds is returned when the seed pixel lies outside the grid.
var ErrSeedOutOfBounds = errors.New("pathwalk: seed out of bounds")
