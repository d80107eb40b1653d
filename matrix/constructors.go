package matrix

import "math"

// DefaultValidateNaNInf is the NaN/Inf ingestion policy new Dense matrices are
// built with: Set rejects non-finite values unless a caller opts out.
const DefaultValidateNaNInf = true

const opAllClose = "AllClose"

// NewZeros allocates an r×c Dense matrix of zeros. Equivalent to NewDense,
// named for parity with NewIdentity at call sites that build a fixture pair.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewDistanceDense allocates an n×n Dense suitable as a FloydWarshall input:
// it relaxes Set's default finite-value policy so +Inf ("no path") can be
// written, and zero-initializes every cell, which callers must then
// overwrite: 0 on the diagonal, edge weights or +Inf elsewhere.
func NewDistanceDense(n int) (*Dense, error) {
	return newDenseWithPolicy(n, n, false)
}

// NewIdentity builds the n×n identity matrix.
// Complexity: O(n^2).
func NewIdentity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err := m.Set(i, i, 1); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// AllClose reports whether a and b are elementwise close within the given
// relative/absolute tolerance: |a-b| <= atol + rtol*|b|.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	if rtol < 0 {
		rtol = -rtol
	}
	if atol < 0 {
		atol = -atol
	}

	if err := ValidateNotNil(a); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	rows, cols := a.Rows(), a.Cols()
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			n := rows * cols
			for idx := 0; idx < n; idx++ {
				diff := da.data[idx] - db.data[idx]
				if diff < 0 {
					diff = -diff
				}
				absb := db.data[idx]
				if absb < 0 {
					absb = -absb
				}
				if diff > (atol + rtol*absb) {
					return false, nil
				}
			}

			return true, nil
		}
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			av, _ := a.At(i, j)
			bv, _ := b.At(i, j)
			diff := av - bv
			if diff < 0 {
				diff = -diff
			}
			absb := bv
			if absb < 0 {
				absb = -absb
			}
			if diff > (atol + rtol*absb) {
				return false, nil
			}
		}
	}

	return true, nil
}
