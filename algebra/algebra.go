// Package algebra provides the core tropical linear-algebra kernels
// (spec component C4): element-wise add, matrix-vector and
// matrix-matrix multiply (dense and sparse), binary-exponentiation
// power, bounded fixed-point iteration, and dot product.
//
// Grounded on the teacher library's matrix/impl_linear_algebra.go: the
// same "validate, allocate result, fast-path on concrete types, fallback
// on the generic interface" shape, the same opXxx tag constants for
// error wrapping, and the same fixed-loop-order determinism discipline —
// retargeted from float64 Add/Sub/Mul to semiring.Add/Mul dispatch, and
// extended with the sparse row-wise expand-accumulate product spec.md
// §4.4 requires.
package algebra

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tropicalmat/palma/densemat"
	"github.com/tropicalmat/palma/palmaerr"
	"github.com/tropicalmat/palma/semiring"
	"github.com/tropicalmat/palma/sparsemat"
)

const (
	opAdd         = "algebra.Add"
	opMatVec      = "algebra.MatVec"
	opMatMul      = "algebra.MatMul"
	opMatMulSp    = "algebra.MatMulSparse"
	opPower       = "algebra.Power"
	opIterate     = "algebra.Iterate"
	opDot         = "algebra.Dot"
	opMatVecPar   = "algebra.MatVecParallel"
	opMatMulPar   = "algebra.MatMulParallel"
)

func errf(op string, kind palmaerr.Kind, format string, args ...interface{}) error {
	return palmaerr.New(op, kind, fmt.Sprintf(format, args...))
}

// Add returns C = A⊕B, element-wise, over two matrices of matching shape
// and semiring.
// Complexity: O(rows*cols).
func Add(a, b *densemat.Dense) (*densemat.Dense, error) {
	if a == nil || b == nil {
		return nil, errf(opAdd, palmaerr.NullInput, "operand is nil")
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return nil, errf(opAdd, palmaerr.InvalidDimensions, "%dx%d vs %dx%d", a.Rows(), a.Cols(), b.Rows(), b.Cols())
	}
	s := a.Tag()
	out, err := densemat.Create(a.Rows(), a.Cols(), s)
	if err != nil {
		return nil, err
	}
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			out.Set(i, j, semiring.Add(a.Get(i, j), b.Get(i, j), s))
		}
	}
	palmaerr.ClearLastError()
	return out, nil
}

// AddInPlace writes A⊕B into the pre-allocated out, which must already
// have A's dimensions. Returns InvalidDimensions otherwise.
func AddInPlace(out, a, b *densemat.Dense) error {
	if out == nil || a == nil || b == nil {
		return errf(opAdd, palmaerr.NullInput, "nil operand")
	}
	if out.Rows() != a.Rows() || out.Cols() != a.Cols() || a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return errf(opAdd, palmaerr.InvalidDimensions, "shape mismatch")
	}
	s := a.Tag()
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			out.Set(i, j, semiring.Add(a.Get(i, j), b.Get(i, j), s))
		}
	}
	palmaerr.ClearLastError()
	return nil
}

// MatVec computes y = A⊗x: y[i] = ⊕ⱼ (A[i,j] ⊗ x[j]).
// Complexity: O(rows*cols).
func MatVec(a *densemat.Dense, x []semiring.Scalar) ([]semiring.Scalar, error) {
	if a == nil {
		return nil, errf(opMatVec, palmaerr.NullInput, "matrix is nil")
	}
	if len(x) != a.Cols() {
		return nil, errf(opMatVec, palmaerr.InvalidDimensions, "len(x)=%d cols=%d", len(x), a.Cols())
	}
	y := make([]semiring.Scalar, a.Rows())
	if err := MatVecInPlace(y, a, x); err != nil {
		return nil, err
	}
	return y, nil
}

// MatVecInPlace writes y = A⊗x into the pre-allocated y (len(y)==A.Rows()).
func MatVecInPlace(y []semiring.Scalar, a *densemat.Dense, x []semiring.Scalar) error {
	if a == nil {
		return errf(opMatVec, palmaerr.NullInput, "matrix is nil")
	}
	if len(x) != a.Cols() || len(y) != a.Rows() {
		return errf(opMatVec, palmaerr.InvalidDimensions, "len(x)=%d len(y)=%d shape=%dx%d", len(x), len(y), a.Rows(), a.Cols())
	}
	s := a.Tag()
	for i := 0; i < a.Rows(); i++ {
		acc := semiring.Zero(s)
		for j := 0; j < a.Cols(); j++ {
			acc = semiring.Add(acc, semiring.Mul(a.Get(i, j), x[j], s), s)
		}
		y[i] = acc
	}
	palmaerr.ClearLastError()
	return nil
}

// MatVecParallel is MatVec accelerated by fanning independent output rows
// across goroutines via golang.org/x/sync/errgroup. Because ⊕ is
// associative/commutative/idempotent and each goroutine owns disjoint
// rows of y, results are bit-identical to MatVec (spec.md §5).
func MatVecParallel(a *densemat.Dense, x []semiring.Scalar) ([]semiring.Scalar, error) {
	if a == nil {
		return nil, errf(opMatVecPar, palmaerr.NullInput, "matrix is nil")
	}
	if len(x) != a.Cols() {
		return nil, errf(opMatVecPar, palmaerr.InvalidDimensions, "len(x)=%d cols=%d", len(x), a.Cols())
	}
	s := a.Tag()
	y := make([]semiring.Scalar, a.Rows())
	var g errgroup.Group
	for i := 0; i < a.Rows(); i++ {
		i := i
		g.Go(func() error {
			acc := semiring.Zero(s)
			for j := 0; j < a.Cols(); j++ {
				acc = semiring.Add(acc, semiring.Mul(a.Get(i, j), x[j], s), s)
			}
			y[i] = acc
			return nil
		})
	}
	_ = g.Wait() // workers never return an error
	palmaerr.ClearLastError()
	return y, nil
}

// MatMul computes C = A⊗B for dense A (m×n) and B (n×p), producing an
// m×p result. Loop order is fixed (i→k→j) for determinism.
// Complexity: O(m*n*p).
func MatMul(a, b *densemat.Dense) (*densemat.Dense, error) {
	if a == nil || b == nil {
		return nil, errf(opMatMul, palmaerr.NullInput, "nil operand")
	}
	if a.Cols() != b.Rows() {
		return nil, errf(opMatMul, palmaerr.InvalidDimensions, "a.cols=%d b.rows=%d", a.Cols(), b.Rows())
	}
	s := a.Tag()
	out, err := densemat.CreateZero(a.Rows(), b.Cols(), s)
	if err != nil {
		return nil, err
	}
	if err := matMulRows(out, a, b, 0, a.Rows()); err != nil {
		return nil, err
	}
	palmaerr.ClearLastError()
	return out, nil
}

func matMulRows(out, a, b *densemat.Dense, rowLo, rowHi int) error {
	s := a.Tag()
	n, p := a.Cols(), b.Cols()
	for i := rowLo; i < rowHi; i++ {
		for k := 0; k < n; k++ {
			aik := a.Get(i, k)
			if aik == semiring.Zero(s) {
				continue // ⊗ with ε is ε; ⊕ with ε is a no-op, skip the row
			}
			for j := 0; j < p; j++ {
				cur := out.Get(i, j)
				out.Set(i, j, semiring.Add(cur, semiring.Mul(aik, b.Get(k, j), s), s))
			}
		}
	}
	return nil
}

// MatMulParallel is MatMul accelerated by fanning independent output rows
// of C across goroutines, via golang.org/x/sync/errgroup. Deterministic
// and bit-identical to MatMul for the same reason MatVecParallel is.
func MatMulParallel(a, b *densemat.Dense) (*densemat.Dense, error) {
	if a == nil || b == nil {
		return nil, errf(opMatMulPar, palmaerr.NullInput, "nil operand")
	}
	if a.Cols() != b.Rows() {
		return nil, errf(opMatMulPar, palmaerr.InvalidDimensions, "a.cols=%d b.rows=%d", a.Cols(), b.Rows())
	}
	out, err := densemat.CreateZero(a.Rows(), b.Cols(), a.Tag())
	if err != nil {
		return nil, err
	}
	workers := a.Rows()
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error { return matMulRows(out, a, b, i, i+1) })
	}
	_ = g.Wait()
	palmaerr.ClearLastError()
	return out, nil
}

// MatMulSparse computes C = A⊗B for sparse A, B via row-wise
// expand-accumulate: for each row i of A, a dense length-p accumulator is
// initialised to ε; for each stored (k,a_ik), for each stored (j,b_kj),
// accumulator[j] ← accumulator[j] ⊕ (a_ik⊗b_kj); non-ε entries are then
// emitted into C.
// Complexity: O(rows_A * avg_nnz_A * avg_nnz_B) in the worst case.
func MatMulSparse(a, b *sparsemat.CSR) (*sparsemat.CSR, error) {
	if a == nil || b == nil {
		return nil, errf(opMatMulSp, palmaerr.NullInput, "nil operand")
	}
	if a.Cols() != b.Rows() {
		return nil, errf(opMatMulSp, palmaerr.InvalidDimensions, "a.cols=%d b.rows=%d", a.Cols(), b.Rows())
	}
	s := a.Tag()
	p := b.Cols()
	out, err := sparsemat.Create(a.Rows(), p, a.Rows(), s)
	if err != nil {
		return nil, err
	}
	z := semiring.Zero(s)
	accumulator := make([]semiring.Scalar, p)
	for i := 0; i < a.Rows(); i++ {
		for j := range accumulator {
			accumulator[j] = z
		}
		aCols, aVals := a.RowEntries(i)
		for idx, k := range aCols {
			aik := aVals[idx]
			bCols, bVals := b.RowEntries(int(k))
			for bi, j := range bCols {
				accumulator[j] = semiring.Add(accumulator[j], semiring.Mul(aik, bVals[bi], s), s)
			}
		}
		for j, v := range accumulator {
			if v != z {
				if err := out.Set(i, j, v); err != nil {
					return nil, err
				}
			}
		}
	}
	palmaerr.ClearLastError()
	return out, nil
}

// Power computes A^n by binary (square-and-multiply) exponentiation. A^0
// is the identity. Requires a square A.
// Complexity: O(log n) matrix multiplies.
func Power(a *densemat.Dense, n int) (*densemat.Dense, error) {
	if a == nil {
		return nil, errf(opPower, palmaerr.NullInput, "matrix is nil")
	}
	if a.Rows() != a.Cols() {
		return nil, errf(opPower, palmaerr.NotSquare, "%dx%d", a.Rows(), a.Cols())
	}
	if n < 0 {
		return nil, errf(opPower, palmaerr.InvalidArgument, "negative exponent %d", n)
	}
	result, err := densemat.CreateIdentity(a.Rows(), a.Tag())
	if err != nil {
		return nil, err
	}
	base := a.Clone()
	for n > 0 {
		if n&1 == 1 {
			result, err = MatMul(result, base)
			if err != nil {
				return nil, err
			}
		}
		n >>= 1
		if n > 0 {
			base, err = MatMul(base, base)
			if err != nil {
				return nil, err
			}
		}
	}
	palmaerr.ClearLastError()
	return result, nil
}

// Iterate overwrites x with the result of k repetitions of x ← A⊗x.
// Complexity: O(k * rows * cols).
func Iterate(a *densemat.Dense, x []semiring.Scalar, k int) error {
	if a == nil {
		return errf(opIterate, palmaerr.NullInput, "matrix is nil")
	}
	if len(x) != a.Cols() || a.Rows() != a.Cols() {
		return errf(opIterate, palmaerr.InvalidDimensions, "len(x)=%d shape=%dx%d", len(x), a.Rows(), a.Cols())
	}
	tmp := make([]semiring.Scalar, len(x))
	for step := 0; step < k; step++ {
		if err := MatVecInPlace(tmp, a, x); err != nil {
			return err
		}
		copy(x, tmp)
	}
	palmaerr.ClearLastError()
	return nil
}

// Dot computes ⊕ᵢ(x[i]⊗y[i]) under semiring s.
// Complexity: O(len(x)).
func Dot(x, y []semiring.Scalar, s semiring.Tag) (semiring.Scalar, error) {
	if len(x) != len(y) {
		return 0, errf(opDot, palmaerr.InvalidDimensions, "len(x)=%d len(y)=%d", len(x), len(y))
	}
	acc := semiring.Zero(s)
	for i := range x {
		acc = semiring.Add(acc, semiring.Mul(x[i], y[i], s), s)
	}
	palmaerr.ClearLastError()
	return acc, nil
}
