// Package closure implements the Kleene-star / transitive-closure engine
// (spec component C5): A* = I ⊕ A ⊕ A² ⊕ …, computed in a single
// Floyd–Warshall-style triple loop since idempotent semirings satisfy
// A* = A*² (no fixed-point iteration needed), plus the specialisations
// reachability, bottleneck_paths, all_pairs_paths and
// single_source_paths.
//
// Grounded on the teacher library's matrix/ops/floyd_warshal.go (same
// i/j/k triple-loop shape, same "validate square, then loop" structure)
// generalised from float64 min-plus shortest paths to an arbitrary
// semiring.Tag.
package closure

import (
	"fmt"

	"github.com/tropicalmat/palma/algebra"
	"github.com/tropicalmat/palma/densemat"
	"github.com/tropicalmat/palma/palmaerr"
	"github.com/tropicalmat/palma/semiring"
)

const (
	opClosure    = "closure.Closure"
	opTransitive = "closure.TransitiveClosure"
	opReach      = "closure.Reachability"
	opBottleneck = "closure.BottleneckPaths"
	opSSSP       = "closure.SingleSourcePaths"
)

func errf(op string, kind palmaerr.Kind, format string, args ...interface{}) error {
	return palmaerr.New(op, kind, fmt.Sprintf(format, args...))
}

// Closure computes A* under semiring s: start from D = A with e
// ⊕-added to every diagonal entry, then for each intermediate k, relax
// D[i,j] ← D[i,j] ⊕ (D[i,k]⊗D[k,j]) for all i,j. Converges in one pass
// because the semiring is idempotent.
// Complexity: O(n³).
func Closure(a *densemat.Dense, s semiring.Tag) (*densemat.Dense, error) {
	if a == nil {
		return nil, palmaerr.New(opClosure, palmaerr.NullInput, "matrix is nil")
	}
	n := a.Rows()
	if n != a.Cols() {
		return nil, palmaerr.New(opClosure, palmaerr.NotSquare, "")
	}
	d := a.Clone()
	one := semiring.One(s)
	for i := 0; i < n; i++ {
		d.Set(i, i, semiring.Add(d.Get(i, i), one, s))
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			dik := d.Get(i, k)
			if dik == semiring.Zero(s) {
				continue
			}
			for j := 0; j < n; j++ {
				cur := d.Get(i, j)
				d.Set(i, j, semiring.Add(cur, semiring.Mul(dik, d.Get(k, j), s), s))
			}
		}
	}
	palmaerr.ClearLastError()
	return d, nil
}

// TransitiveClosure computes A⁺ = A⊗A*, representing paths of length ≥ 1.
func TransitiveClosure(a *densemat.Dense, s semiring.Tag) (*densemat.Dense, error) {
	star, err := Closure(a, s)
	if err != nil {
		kind, _ := palmaerr.KindOf(err)
		return nil, palmaerr.Wrap(err, opTransitive, kind)
	}
	out, err := algebra.MatMul(a, star)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AllPairsPaths is an alias for Closure, named for readability at call
// sites that think in terms of all-pairs shortest/longest/bottleneck
// paths rather than Kleene stars.
func AllPairsPaths(a *densemat.Dense, s semiring.Tag) (*densemat.Dense, error) {
	return Closure(a, s)
}

// Reachability reinterprets a as Boolean (any non-ε, non-+∞ value, and
// every diagonal entry, becomes 1; everything else becomes 0) and
// computes the Boolean closure.
func Reachability(a *densemat.Dense) (*densemat.Dense, error) {
	if a == nil {
		return nil, palmaerr.New(opReach, palmaerr.NullInput, "matrix is nil")
	}
	n := a.Rows()
	if n != a.Cols() {
		return nil, palmaerr.New(opReach, palmaerr.NotSquare, "")
	}
	b, err := densemat.CreateZero(n, n, semiring.Boolean)
	if err != nil {
		return nil, err
	}
	srcTag := a.Tag()
	eps := semiring.Zero(srcTag)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := a.Get(i, j)
			if i == j || (v != eps && v != semiring.PosInf) {
				b.Set(i, j, 1)
			}
		}
	}
	return Closure(b, semiring.Boolean)
}

// BottleneckPaths computes the closure of a under (max,min), i.e. the
// widest-bottleneck path weight between every pair of vertices. a is
// expected to already carry semiring.MaxMin-interpreted weights.
func BottleneckPaths(a *densemat.Dense) (*densemat.Dense, error) {
	if a == nil {
		return nil, palmaerr.New(opBottleneck, palmaerr.NullInput, "matrix is nil")
	}
	return Closure(a, semiring.MaxMin)
}

// SingleSourcePaths sets dist to ε(s) with dist[src] = e(s), then
// iterates x ← A⊗x exactly n times — sufficient because n bounds the
// length of the longest acyclic path. out must have length n.
func SingleSourcePaths(a *densemat.Dense, src int, s semiring.Tag, out []semiring.Scalar) error {
	if a == nil {
		return palmaerr.New(opSSSP, palmaerr.NullInput, "matrix is nil")
	}
	n := a.Rows()
	if n != a.Cols() {
		return palmaerr.New(opSSSP, palmaerr.NotSquare, "")
	}
	if len(out) != n {
		return errf(opSSSP, palmaerr.InvalidDimensions, "len(out)=%d n=%d", len(out), n)
	}
	if src < 0 || src >= n {
		return errf(opSSSP, palmaerr.IndexOutOfBounds, "src=%d n=%d", src, n)
	}
	z := semiring.Zero(s)
	for i := range out {
		out[i] = z
	}
	out[src] = semiring.One(s)
	if err := algebra.Iterate(a, out, n); err != nil {
		return err
	}
	palmaerr.ClearLastError()
	return nil
}
