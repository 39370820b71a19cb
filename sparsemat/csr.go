// Package sparsemat implements the Compressed-Sparse-Row matrix engine
// (spec component C3). There is no CSR implementation in the teacher
// corpus to adapt line-for-line — katalvlaran/lvlath represents graphs
// densely — so this package is grounded on the teacher's validation and
// error-wrapping conventions (matrix/validators.go, matrix/errors.go:
// fail-fast sentinel errors, "Op(args): %w" wrapping) and on spec.md
// §4.3/§9's explicit algorithm: binary-search point access, shift-insert
// Set with capacity doubling, and a sweep-and-rebuild Compress.
package sparsemat

import (
	"fmt"
	"sort"

	"github.com/tropicalmat/palma/densemat"
	"github.com/tropicalmat/palma/internal/telemetry"
	"github.com/tropicalmat/palma/palmaerr"
	"github.com/tropicalmat/palma/semiring"
)

// defaultCapacity is substituted whenever Create is asked for capacity 0.
const defaultCapacity = 8

// CSR is a Compressed-Sparse-Row matrix of semiring.Scalar values.
//
// Invariants (maintained by every exported mutator): rowPtr[0] == 0;
// rowPtr[rows] == nnz; within each row, colIdx is strictly ascending.
// Between a raw Set-driven edit and Compress, stored entries equal to
// ε(tag) may transiently exist; Get still reports them as ε (spec.md
// §4.3), so the invariant "no stored ε after compression" is a
// post-Compress guarantee, not a continuous one.
type CSR struct {
	rows, cols int
	tag        semiring.Tag
	values     []semiring.Scalar
	colIdx     []int32
	rowPtr     []int32
}

func opErrf(op string, kind palmaerr.Kind, format string, args ...interface{}) error {
	return palmaerr.New(op, kind, fmt.Sprintf(format, args...))
}

// Create allocates an empty rows×cols CSR matrix under semiring s.
// initialCapacity 0 is coerced to a small default.
// Complexity: O(rows) for rowPtr, O(capacity) for value/index storage.
func Create(rows, cols, initialCapacity int, s semiring.Tag) (*CSR, error) {
	if rows <= 0 || cols <= 0 {
		return nil, opErrf("sparsemat.Create", palmaerr.InvalidDimensions, "rows=%d cols=%d", rows, cols)
	}
	if initialCapacity <= 0 {
		initialCapacity = defaultCapacity
	}
	palmaerr.ClearLastError()
	return &CSR{
		rows: rows, cols: cols, tag: s,
		values: make([]semiring.Scalar, 0, initialCapacity),
		colIdx: make([]int32, 0, initialCapacity),
		rowPtr: make([]int32, rows+1),
	}, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *CSR) Rows() int { return m.rows }

// Cols returns the column count. Complexity: O(1).
func (m *CSR) Cols() int { return m.cols }

// Tag returns the semiring this matrix is interpreted under.
func (m *CSR) Tag() semiring.Tag { return m.tag }

// NNZ returns the number of stored entries (may include transient ε
// entries prior to Compress).
func (m *CSR) NNZ() int { return len(m.values) }

// RowNNZ returns the number of stored entries in row r.
// Complexity: O(1).
func (m *CSR) RowNNZ(r int) int { return int(m.rowPtr[r+1] - m.rowPtr[r]) }

// Sparsity returns 1 - nnz/(rows*cols).
// Complexity: O(1).
func (m *CSR) Sparsity() float64 {
	total := float64(m.rows) * float64(m.cols)
	if total == 0 {
		return 1
	}
	return 1 - float64(m.NNZ())/total
}

// rowBounds returns [lo,hi) into colIdx/values for row r.
func (m *CSR) rowBounds(r int) (int, int) { return int(m.rowPtr[r]), int(m.rowPtr[r+1]) }

// search performs a binary search for col within row r's stored column
// indices, returning (position, found). position is the insertion point
// when not found.
func (m *CSR) search(r, col int) (int, bool) {
	lo, hi := m.rowBounds(r)
	idx := sort.Search(hi-lo, func(i int) bool { return m.colIdx[lo+i] >= int32(col) })
	pos := lo + idx
	if pos < hi && m.colIdx[pos] == int32(col) {
		return pos, true
	}
	return pos, false
}

// Get returns the value stored at (i,j), or ε(tag) if absent.
// Complexity: O(log(row_nnz)).
func (m *CSR) Get(i, j int) semiring.Scalar {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return semiring.Zero(m.tag)
	}
	pos, found := m.search(i, j)
	if !found {
		return semiring.Zero(m.tag)
	}
	return m.values[pos]
}

// GetSafe is Get with bounds checking, returning IndexOutOfBounds for an
// out-of-range index.
func (m *CSR) GetSafe(i, j int) (semiring.Scalar, error) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return 0, opErrf("sparsemat.GetSafe", palmaerr.IndexOutOfBounds, "(%d,%d) out of %dx%d", i, j, m.rows, m.cols)
	}
	palmaerr.ClearLastError()
	return m.Get(i, j), nil
}

// Set writes v at (i,j): overwrites if present, else inserts at the
// correct sorted position, shifting the row's tail and, if capacity is
// exhausted, doubling it. Setting to ε does not remove the stored entry
// (that is Compress's job). Updates rowPtr[i+1:] on insert.
// Complexity: O(row_nnz + shift) per call.
func (m *CSR) Set(i, j int, v semiring.Scalar) error {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return opErrf("sparsemat.Set", palmaerr.IndexOutOfBounds, "(%d,%d) out of %dx%d", i, j, m.rows, m.cols)
	}
	pos, found := m.search(i, j)
	if found {
		m.values[pos] = v
		palmaerr.ClearLastError()
		return nil
	}

	m.growIfNeeded(1)
	m.values = append(m.values, 0)
	copy(m.values[pos+1:], m.values[pos:len(m.values)-1])
	m.values[pos] = v

	m.colIdx = append(m.colIdx, 0)
	copy(m.colIdx[pos+1:], m.colIdx[pos:len(m.colIdx)-1])
	m.colIdx[pos] = int32(j)

	for r := i + 1; r <= m.rows; r++ {
		m.rowPtr[r]++
	}
	palmaerr.ClearLastError()
	return nil
}

// growIfNeeded reallocates values and colIdx at twice the current
// capacity plus additional when the next insert(s) would exceed it, and
// does nothing otherwise.
func (m *CSR) growIfNeeded(additional int) {
	if cap(m.values)-len(m.values) >= additional {
		return
	}
	newCap := cap(m.values)*2 + additional
	nv := make([]semiring.Scalar, len(m.values), newCap)
	copy(nv, m.values)
	m.values = nv
	ni := make([]int32, len(m.colIdx), newCap)
	copy(ni, m.colIdx)
	m.colIdx = ni
}

// Compress sweeps stored entries, drops those equal to ε(tag), and
// rebuilds rowPtr, preserving per-row ascending column order.
// Complexity: O(nnz).
func (m *CSR) Compress() {
	z := semiring.Zero(m.tag)
	newValues := make([]semiring.Scalar, 0, len(m.values))
	newColIdx := make([]int32, 0, len(m.colIdx))
	newRowPtr := make([]int32, m.rows+1)

	for r := 0; r < m.rows; r++ {
		lo, hi := m.rowBounds(r)
		for p := lo; p < hi; p++ {
			if m.values[p] == z {
				continue
			}
			newValues = append(newValues, m.values[p])
			newColIdx = append(newColIdx, m.colIdx[p])
		}
		newRowPtr[r+1] = int32(len(newValues))
	}
	m.values, m.colIdx, m.rowPtr = newValues, newColIdx, newRowPtr
	telemetry.SparseBuild(m.rows, m.cols, len(m.values))
}

// FromDense builds a CSR with exactly one stored entry per position whose
// dense value is not ε(s), in row-major ascending-column order.
// Complexity: O(rows*cols).
func FromDense(d *densemat.Dense, s semiring.Tag) (*CSR, error) {
	if d == nil {
		return nil, opErrf("sparsemat.FromDense", palmaerr.NullInput, "dense matrix is nil")
	}
	rows, cols := d.Rows(), d.Cols()
	out, err := Create(rows, cols, rows, s)
	if err != nil {
		return nil, err
	}
	z := semiring.Zero(s)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := d.Get(i, j)
			if v == z {
				continue
			}
			out.values = append(out.values, v)
			out.colIdx = append(out.colIdx, int32(j))
		}
		out.rowPtr[i+1] = int32(len(out.values))
	}
	palmaerr.ClearLastError()
	telemetry.SparseBuild(rows, cols, len(out.values))
	return out, nil
}

// ToDense fills a dense ε(s) matrix with this CSR's stored values.
// Complexity: O(rows*cols) for allocation, O(nnz) for population.
func (m *CSR) ToDense() (*densemat.Dense, error) {
	out, err := densemat.CreateZero(m.rows, m.cols, m.tag)
	if err != nil {
		return nil, err
	}
	for r := 0; r < m.rows; r++ {
		lo, hi := m.rowBounds(r)
		for p := lo; p < hi; p++ {
			out.Set(r, int(m.colIdx[p]), m.values[p])
		}
	}
	return out, nil
}

// Clone returns a deep copy sharing no storage with the receiver.
func (m *CSR) Clone() *CSR {
	out := &CSR{rows: m.rows, cols: m.cols, tag: m.tag}
	out.values = append([]semiring.Scalar(nil), m.values...)
	out.colIdx = append([]int32(nil), m.colIdx...)
	out.rowPtr = append([]int32(nil), m.rowPtr...)
	return out
}

// RowEntries returns the stored (col, value) pairs of row r in ascending
// column order, without allocating beyond the returned slices' length.
func (m *CSR) RowEntries(r int) (cols []int32, values []semiring.Scalar) {
	lo, hi := m.rowBounds(r)
	return m.colIdx[lo:hi], m.values[lo:hi]
}
