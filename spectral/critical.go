package spectral

import (
	"github.com/tropicalmat/palma/densemat"
	"github.com/tropicalmat/palma/palmaerr"
	"github.com/tropicalmat/palma/semiring"
)

const (
	opCriticalNodes = "spectral.CriticalNodes"
	opCriticalArcs  = "spectral.CriticalArcs"

	// DefaultTolerance is the slack allowed, in the semiring's own
	// units, when deciding whether a self-loop or 2-cycle mean is "close
	// enough" to lambda to count as critical.
	DefaultTolerance = 1
)

// CriticalNodes returns, in ascending index order, every vertex i of the
// n×n matrix a whose self-loop weight is within tol of lambda (the
// tropical eigenvalue from Eigenvalue), or that participates in some
// 2-cycle i↔j whose mean weight is within tol of lambda. tol is taken
// literally — tol=0 means an exact match, not "use the default"; callers
// that want slack pass DefaultTolerance (or their own value) explicitly.
// The 2-cycle check compares the undivided arc-weight sum against 2·λ
// rather than dividing by 2 first, so tol only has to absorb Karp's own
// integer-division truncation of lambda, not an extra unit of slack from
// truncating the cycle's own mean. Only defined for additive-tropical
// semirings, matching Eigenvalue's own restriction.
// Complexity: O(n²).
func CriticalNodes(a *densemat.Dense, s semiring.Tag, lambda semiring.Scalar, tol semiring.Scalar) ([]int, error) {
	if a == nil {
		return nil, palmaerr.New(opCriticalNodes, palmaerr.NullInput, "matrix is nil")
	}
	n := a.Rows()
	if n != a.Cols() {
		return nil, palmaerr.New(opCriticalNodes, palmaerr.NotSquare, "")
	}
	if !semiring.IsAdditiveTropical(s) {
		return nil, errf(opCriticalNodes, palmaerr.Unsupported, "no critical nodes for %s", semiring.Name(s))
	}
	if tol < 0 {
		return nil, errf(opCriticalNodes, palmaerr.InvalidArgument, "tol=%d must be >= 0", tol)
	}
	if lambda == semiring.NegInf {
		return nil, nil
	}

	z := semiring.Zero(s)
	twoLambda := int64(lambda) * 2
	critical := make(map[int]bool, n)
	for i := 0; i < n; i++ {
		loop := a.Get(i, i)
		if loop != z && loop >= lambda-tol {
			critical[i] = true
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			ij := a.Get(i, j)
			ji := a.Get(j, i)
			if ij == z || ji == z {
				continue
			}
			sum := int64(ij) + int64(ji)
			if sum >= twoLambda-int64(tol) {
				critical[i] = true
				critical[j] = true
			}
		}
	}

	out := make([]int, 0, len(critical))
	for i := 0; i < n; i++ {
		if critical[i] {
			out = append(out, i)
		}
	}
	palmaerr.ClearLastError()
	return out, nil
}

// CriticalArcs returns the arcs (i,j) lying on some maximum-cycle-mean
// cycle, identified via the eigenvector v as every edge satisfying
// A[i,j]⊗v[j] = lambda⊗v[i] (the tropical eigenvector equation tight at
// that arc). This is the optional extension noted in SPEC_FULL.md beyond
// spec.md's node-only CriticalNodes; v must come from a converged call to
// Eigenvector for the same a, s and lambda.
// Complexity: O(n²).
func CriticalArcs(a *densemat.Dense, s semiring.Tag, lambda semiring.Scalar, v []semiring.Scalar) ([][2]int, error) {
	if a == nil {
		return nil, palmaerr.New(opCriticalArcs, palmaerr.NullInput, "matrix is nil")
	}
	n := a.Rows()
	if n != a.Cols() {
		return nil, palmaerr.New(opCriticalArcs, palmaerr.NotSquare, "")
	}
	if len(v) != n {
		return nil, errf(opCriticalArcs, palmaerr.InvalidDimensions, "len(v)=%d n=%d", len(v), n)
	}
	if !semiring.IsAdditiveTropical(s) {
		return nil, errf(opCriticalArcs, palmaerr.Unsupported, "no critical arcs for %s", semiring.Name(s))
	}

	z := semiring.Zero(s)
	idx := nonZeroIndices(v, s)
	var arcs [][2]int
	for _, i := range idx {
		for _, j := range idx {
			w := a.Get(i, j)
			if w == z {
				continue
			}
			lhs := semiring.Mul(w, v[j], s)
			rhs := semiring.Mul(lambda, v[i], s)
			if lhs == rhs {
				arcs = append(arcs, [2]int{i, j})
			}
		}
	}
	palmaerr.ClearLastError()
	return arcs, nil
}
