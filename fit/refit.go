package fit

import (
	"fmt"
	"math"

	"github.com/gocurve/curvskel/matrix"
)

// rootFindingTolerance is a small multiple of machine epsilon, roughly
// 1e5·ε. refitParameters does not consult it: a coordinate with no real
// root is skipped whatever its residual.
const rootFindingTolerance = 1e5 * 2.220446049250313e-16

// refitParameters runs one knot-reparameterization iteration: for every
// sample k, find the real roots of x(t)-xₖ=0 and y(t)-yₖ=0, form every
// candidate r = α·r2+(1-α)·r1, and keep the one minimizing
// |r1-r2|·|r-tₖ|·(residual at r)², per the original
// refit_parametric_cubic_parameter (curv_lib.c). Returns the updated
// parameter vector; samples.T itself is left untouched.
func refitParameters(coeffs matrix.Matrix, samples Samples) ([]float64, error) {
	n := samples.n()
	newT := make([]float64, n)
	copy(newT, samples.T)

	a0, err := coeffs.At(0, 0)
	if err != nil {
		return nil, fmt.Errorf("refitParameters: %w", err)
	}
	a1, _ := coeffs.At(1, 0)
	a2, _ := coeffs.At(2, 0)
	a3, _ := coeffs.At(3, 0)
	b0, err := coeffs.At(0, 1)
	if err != nil {
		return nil, fmt.Errorf("refitParameters: %w", err)
	}
	b1, _ := coeffs.At(1, 1)
	b2, _ := coeffs.At(2, 1)
	b3, _ := coeffs.At(3, 1)

	for k := 0; k < n; k++ {
		tk := samples.T[k]
		xk, err := samples.R.At(k, 0)
		if err != nil {
			return nil, fmt.Errorf("refitParameters: %w", err)
		}
		yk, err := samples.R.At(k, 1)
		if err != nil {
			return nil, fmt.Errorf("refitParameters: %w", err)
		}

		countX, rootsX := matrix.RealCubicRoots([4]float64{a0 - xk, a1, a2, a3})
		countY, rootsY := matrix.RealCubicRoots([4]float64{b0 - yk, b1, b2, b3})

		// Root-finding failure: silently ignored, leaving the sample
		// parameter unchanged. Every failure is ignored; no residual is
		// compared against rootFindingTolerance.
		if countX == 0 || countY == 0 {
			continue
		}

		bestScore := math.Inf(1)
		bestR := tk
		found := false

		for i := 0; i < countX; i++ {
			r1 := rootsX[i]
			x1, y1, _, _, _, _, err := evalCubicAt(coeffs, r1)
			if err != nil {
				return nil, fmt.Errorf("refitParameters: %w", err)
			}
			for j := 0; j < countY; j++ {
				r2 := rootsY[j]
				x2, y2, _, _, _, _, err := evalCubicAt(coeffs, r2)
				if err != nil {
					return nil, fmt.Errorf("refitParameters: %w", err)
				}

				dx12 := x2 - x1
				dy12 := y2 - y1
				denom := dx12*dx12 + dy12*dy12
				alpha := 0.5
				if denom > 0 {
					alpha = (dy12 * dy12) / denom
				}
				r := alpha*r2 + (1-alpha)*r1

				xr, yr, _, _, _, _, err := evalCubicAt(coeffs, r)
				if err != nil {
					return nil, fmt.Errorf("refitParameters: %w", err)
				}
				dxr := xr - xk
				dyr := yr - yk
				residual := dxr*dxr + dyr*dyr

				rDiff := r1 - r2
				if rDiff < 0 {
					rDiff = -rDiff
				}
				tDiff := r - tk
				if tDiff < 0 {
					tDiff = -tDiff
				}
				score := rDiff * tDiff * residual

				if score < bestScore {
					bestScore = score
					bestR = r
					found = true
				}
			}
		}

		if found {
			newT[k] = bestR
		}
	}

	return newT, nil
}
