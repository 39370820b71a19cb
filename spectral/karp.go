// Package spectral implements the tropical eigenvalue/eigenvector engine
// (spec component C6): Karp's maximum-cycle-mean algorithm, a
// power-iteration eigenvector solver, and critical-node identification.
//
// Grounded on the teacher library's matrix/ops/eigen.go (same "validate
// square, iterate with a convergence check, report ErrEigenFailed on
// exhaustion" shape, ported from Jacobi rotations over float64 to the
// genuinely different but structurally analogous Karp/power-iteration
// recurrences over semiring.Scalar).
package spectral

import (
	"fmt"

	"github.com/tropicalmat/palma/densemat"
	"github.com/tropicalmat/palma/internal/telemetry"
	"github.com/tropicalmat/palma/palmaerr"
	"github.com/tropicalmat/palma/semiring"
)

const opEigenvalue = "spectral.Eigenvalue"

func errf(op string, kind palmaerr.Kind, format string, args ...interface{}) error {
	return palmaerr.New(op, kind, fmt.Sprintf(format, args...))
}

// Eigenvalue computes the tropical eigenvalue (maximum cycle mean) of the
// square matrix a under semiring s via Karp's algorithm. Only MaxPlus and
// MinPlus define a meaningful cycle mean (the subtraction in Karp's
// formula requires an additive-tropical semiring); any other tag returns
// palmaerr.ErrUnsupported, per spec.md's Open Question guidance to refuse
// rather than report a degenerate value.
//
// Builds D of size (n+1)×n with D[0][v]=e and D[k][v] = ⊕ᵤ(D[k-1][u]⊗A[u,v])
// for 1≤k≤n, then returns
//
//	λ = maxᵥ{ minₖ∈[0,n) (D[n][v] - D[k][v]) / (n-k) }
//
// with ε(s) entries skipped in both the outer max and inner min, and
// integer division truncating toward zero (Go's native int division
// semantics, matching the C contract spec.md requires). If every D[n][v]
// is ε, the graph is acyclic and the eigenvalue is NegInf.
// Complexity: O(n³).
func Eigenvalue(a *densemat.Dense, s semiring.Tag) (semiring.Scalar, error) {
	if a == nil {
		return semiring.NegInf, palmaerr.New(opEigenvalue, palmaerr.NullInput, "matrix is nil")
	}
	n := a.Rows()
	if n != a.Cols() {
		return semiring.NegInf, palmaerr.New(opEigenvalue, palmaerr.NotSquare, "")
	}
	if !semiring.IsAdditiveTropical(s) {
		return semiring.NegInf, errf(opEigenvalue, palmaerr.Unsupported, "no cycle mean for %s", semiring.Name(s))
	}

	one := semiring.One(s)
	z := semiring.Zero(s)

	// D[k][v], k=0..n
	d := make([][]semiring.Scalar, n+1)
	d[0] = make([]semiring.Scalar, n)
	for v := 0; v < n; v++ {
		d[0][v] = one
	}
	for k := 1; k <= n; k++ {
		d[k] = make([]semiring.Scalar, n)
		for v := 0; v < n; v++ {
			acc := z
			for u := 0; u < n; u++ {
				acc = semiring.Add(acc, semiring.Mul(d[k-1][u], a.Get(u, v), s), s)
			}
			d[k][v] = acc
		}
	}

	allZero := true
	best := semiring.NegInf
	haveBest := false
	for v := 0; v < n; v++ {
		dnv := d[n][v]
		if dnv == z {
			continue
		}
		allZero = false
		var (
			worst     int
			haveWorst bool
		)
		for k := 0; k < n; k++ {
			dkv := d[k][v]
			if dkv == z {
				continue
			}
			num := int(dnv) - int(dkv)
			den := n - k
			mean := num / den // truncates toward zero, matching C semantics
			if !haveWorst || mean < worst {
				worst = mean
				haveWorst = true
			}
		}
		if !haveWorst {
			continue
		}
		if !haveBest || semiring.Scalar(worst) > best {
			best = semiring.Scalar(worst)
			haveBest = true
		}
	}
	if allZero || !haveBest {
		return semiring.NegInf, nil
	}
	palmaerr.ClearLastError()
	telemetry.IterationTrace(opEigenvalue, n, n)
	return best, nil
}
