package spectral

import (
	"github.com/samber/lo"

	"github.com/tropicalmat/palma/algebra"
	"github.com/tropicalmat/palma/densemat"
	"github.com/tropicalmat/palma/internal/telemetry"
	"github.com/tropicalmat/palma/palmaerr"
	"github.com/tropicalmat/palma/semiring"
)

const opEigenvector = "spectral.Eigenvector"

// DefaultMaxIter is the default bound on power-iteration steps.
const DefaultMaxIter = 1000

// Eigenvector runs power iteration for the tropical eigenvector of a
// under semiring s, given its eigenvalue lambda (from Eigenvalue). x is
// initialised to the all-e vector; each step computes y ← A⊗x and, for
// additive-tropical semirings, subtracts lambda from every non-ε
// component of y (normalisation) before comparing y to x for
// convergence. maxIter<=0 is replaced by DefaultMaxIter.
//
// If lambda is NegInf (acyclic graph, no cycle mean), the eigenvector is
// filled with ε and (nil-error, converged=false) is returned, per spec.md
// §4.6. Otherwise returns the last iterate and converged=false if
// maxIter is exhausted without reaching a fixed point — a non-fatal
// condition per spec.md §7.
// Complexity: O(maxIter * n²).
func Eigenvector(a *densemat.Dense, s semiring.Tag, lambda semiring.Scalar, maxIter int) (x []semiring.Scalar, converged bool, err error) {
	if a == nil {
		return nil, false, palmaerr.New(opEigenvector, palmaerr.NullInput, "matrix is nil")
	}
	n := a.Rows()
	if n != a.Cols() {
		return nil, false, palmaerr.New(opEigenvector, palmaerr.NotSquare, "")
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}

	if lambda == semiring.NegInf {
		z := semiring.Zero(s)
		out := make([]semiring.Scalar, n)
		for i := range out {
			out[i] = z
		}
		telemetry.NotConverged(opEigenvector, maxIter)
		return out, false, nil
	}

	one := semiring.One(s)
	x = make([]semiring.Scalar, n)
	for i := range x {
		x[i] = one
	}
	y := make([]semiring.Scalar, n)

	additive := semiring.IsAdditiveTropical(s)
	z := semiring.Zero(s)

	for iter := 0; iter < maxIter; iter++ {
		telemetry.IterationTrace(opEigenvector, iter, maxIter)
		if err := algebra.MatVecInPlace(y, a, x); err != nil {
			return nil, false, err
		}
		if additive {
			for i := range y {
				if y[i] != z {
					y[i] = saturatingSub(y[i], lambda)
				}
			}
		}
		if vectorsEqual(x, y) {
			copy(x, y)
			palmaerr.ClearLastError()
			return x, true, nil
		}
		copy(x, y)
	}
	telemetry.NotConverged(opEigenvector, maxIter)
	return x, false, nil
}

func vectorsEqual(a, b []semiring.Scalar) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// saturatingSub computes a-b clamped to [NegInf, PosInf], mirroring the
// saturation discipline of semiring.Mul for additive-tropical semirings.
func saturatingSub(a, b semiring.Scalar) semiring.Scalar {
	diff := int64(a) - int64(b)
	if diff > int64(semiring.PosInf) {
		return semiring.PosInf
	}
	if diff < int64(semiring.NegInf) {
		return semiring.NegInf
	}
	return semiring.Scalar(diff)
}

// nonZeroIndices returns the indices of v whose value is not ε(s), using
// samber/lo's FilterMap to express the filter+project in one pass (the
// corpus carries samber/lo as an indirect dependency of
// janpfeifer/go-highway; this module imports it directly for exactly
// this kind of slice-to-index projection).
func nonZeroIndices(v []semiring.Scalar, s semiring.Tag) []int {
	return lo.FilterMap(v, func(val semiring.Scalar, idx int) (int, bool) {
		return idx, val != semiring.Zero(s)
	})
}
