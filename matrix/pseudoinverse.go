package matrix

// Pseudoinverse computes the Moore-Penrose pseudoinverse of A (n×4, n≥4,
// full column rank) via the normal-equations identity A⁺ = (AᵀA)⁻¹Aᵀ.
//
// This is the numerically-stable-equivalent spec.md's Non-goals explicitly
// permit in place of an SVD-based construction: the curve fitter only ever
// calls this on a tall, full-column-rank design matrix (a cubic Vandermonde
// built from n≥4 distinct sample parameters), for which the normal
// equations are well conditioned and the closed-form inverse already kept
// in this package (Inverse) applies directly.
//
// Stage 1 (Validate): A must be non-nil with rows >= cols.
// Stage 2 (Execute): compute Aᵀ, AᵀA, (AᵀA)⁻¹, then (AᵀA)⁻¹·Aᵀ.
// Complexity: O(n·c²) for AᵀA, O(c³) for the inverse, O(c²·n) for the
// final product, where c = A.Cols().
func Pseudoinverse(A Matrix) (Matrix, error) {
	if err := ValidateNotNil(A); err != nil {
		return nil, validatorErrorf("Pseudoinverse", err)
	}
	if A.Rows() < A.Cols() {
		return nil, validatorErrorf("Pseudoinverse", ErrBadShape)
	}

	At, err := Transpose(A)
	if err != nil {
		return nil, validatorErrorf("Pseudoinverse", err)
	}
	AtA, err := Mul(At, A)
	if err != nil {
		return nil, validatorErrorf("Pseudoinverse", err)
	}
	AtAInv, err := Inverse(AtA)
	if err != nil {
		return nil, validatorErrorf("Pseudoinverse", err)
	}
	pinv, err := Mul(AtAInv, At)
	if err != nil {
		return nil, validatorErrorf("Pseudoinverse", err)
	}

	return pinv, nil
}
