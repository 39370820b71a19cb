// Package densemat implements the dense matrix engine (spec component
// C2): row-major storage over semiring.Scalar, with owned and
// non-owning-view buffers, grounded on the teacher library's
// matrix/impl_dense.go (flat-slice row-major Dense, bounds-checked
// At/Set, View/Induced windows) but retargeted from float64 to
// semiring.Scalar and parameterised by a semiring.Tag.
package densemat

import (
	"fmt"

	"github.com/tropicalmat/palma/palmaerr"
	"github.com/tropicalmat/palma/semiring"
)

// Dense is a row-major matrix of semiring.Scalar values.
//
// stride is the row pitch (>= cols); data has len >= rows*stride. owner
// is false for matrices produced by Wrap: destroying such a matrix must
// not release the caller's buffer. Since Go is garbage collected, Destroy
// only drops this handle's reference to its buffer and zeroes its shape;
// it is retained so the create→mutate→destroy lifecycle from spec.md §3
// has a directly testable Go analogue (see DESIGN.md).
type Dense struct {
	rows, cols int
	stride     int
	data       []semiring.Scalar
	tag        semiring.Tag
	owner      bool
}

func opErrf(op string, kind palmaerr.Kind, format string, args ...interface{}) error {
	return palmaerr.New(op, kind, fmt.Sprintf(format, args...))
}

// Create allocates a rows×cols dense matrix under semiring s with
// unspecified (zero-valued) contents. Fails with InvalidDimensions on a
// non-positive dimension.
// Complexity: O(rows*cols).
func Create(rows, cols int, s semiring.Tag) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, opErrf("densemat.Create", palmaerr.InvalidDimensions, "rows=%d cols=%d", rows, cols)
	}
	palmaerr.ClearLastError()
	return &Dense{
		rows: rows, cols: cols, stride: cols,
		data:  make([]semiring.Scalar, rows*cols),
		tag:   s,
		owner: true,
	}, nil
}

// CreateZero allocates a rows×cols matrix filled with ε(s).
// Complexity: O(rows*cols).
func CreateZero(rows, cols int, s semiring.Tag) (*Dense, error) {
	m, err := Create(rows, cols, s)
	if err != nil {
		return nil, err
	}
	z := semiring.Zero(s)
	for i := range m.data {
		m.data[i] = z
	}
	return m, nil
}

// CreateIdentity allocates an n×n matrix with ε(s) everywhere except the
// diagonal, which holds e(s).
// Complexity: O(n²).
func CreateIdentity(n int, s semiring.Tag) (*Dense, error) {
	m, err := CreateZero(n, n, s)
	if err != nil {
		return nil, err
	}
	one := semiring.One(s)
	for i := 0; i < n; i++ {
		m.data[i*m.stride+i] = one
	}
	return m, nil
}

// Wrap builds a non-owning view over an existing buffer. stride must be
// >= cols and buffer must have at least rows*stride elements. Destroying
// a wrapped matrix never releases buffer.
// Complexity: O(1).
func Wrap(buffer []semiring.Scalar, rows, cols, stride int, s semiring.Tag) (*Dense, error) {
	if rows <= 0 || cols <= 0 || stride < cols {
		return nil, opErrf("densemat.Wrap", palmaerr.InvalidDimensions, "rows=%d cols=%d stride=%d", rows, cols, stride)
	}
	if len(buffer) < rows*stride {
		return nil, opErrf("densemat.Wrap", palmaerr.InvalidDimensions, "buffer too small: have %d need %d", len(buffer), rows*stride)
	}
	palmaerr.ClearLastError()
	return &Dense{rows: rows, cols: cols, stride: stride, data: buffer, tag: s, owner: false}, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *Dense) Rows() int { return m.rows }

// Cols returns the column count. Complexity: O(1).
func (m *Dense) Cols() int { return m.cols }

// Tag returns the semiring this matrix is interpreted under.
func (m *Dense) Tag() semiring.Tag { return m.tag }

// Stride returns the row pitch of the backing buffer.
func (m *Dense) Stride() int { return m.stride }

// IsView reports whether this matrix is a non-owning view (built by Wrap).
func (m *Dense) IsView() bool { return !m.owner }

// Destroy releases this matrix's reference to its buffer and resets its
// shape to 0×0, for API parity with the spec's handle lifecycle; Go's
// garbage collector reclaims owned buffers, and the contents of a view's
// buffer are never modified. Idempotent: safe to call on a matrix (or a
// nil pointer) any number of times.
func (m *Dense) Destroy() {
	if m == nil {
		return
	}
	m.data = nil
	m.rows, m.cols, m.stride = 0, 0, 0
}

func (m *Dense) offset(i, j int) int { return i*m.stride + j }

func (m *Dense) inRange(i, j int) bool {
	return i >= 0 && i < m.rows && j >= 0 && j < m.cols
}

// Get returns element (i,j). Precondition: indices in range (unchecked —
// use GetSafe for a bounds-checked variant).
// Complexity: O(1).
func (m *Dense) Get(i, j int) semiring.Scalar { return m.data[m.offset(i, j)] }

// Set writes v at (i,j). Precondition: indices in range (unchecked).
// Complexity: O(1).
func (m *Dense) Set(i, j int, v semiring.Scalar) { m.data[m.offset(i, j)] = v }

// GetSafe returns element (i,j), or an IndexOutOfBounds error.
// Complexity: O(1).
func (m *Dense) GetSafe(i, j int) (semiring.Scalar, error) {
	if !m.inRange(i, j) {
		return 0, opErrf("densemat.GetSafe", palmaerr.IndexOutOfBounds, "(%d,%d) out of %dx%d", i, j, m.rows, m.cols)
	}
	palmaerr.ClearLastError()
	return m.Get(i, j), nil
}

// SetSafe writes v at (i,j), or returns an IndexOutOfBounds error.
// Complexity: O(1).
func (m *Dense) SetSafe(i, j int, v semiring.Scalar) error {
	if !m.inRange(i, j) {
		return opErrf("densemat.SetSafe", palmaerr.IndexOutOfBounds, "(%d,%d) out of %dx%d", i, j, m.rows, m.cols)
	}
	m.Set(i, j, v)
	palmaerr.ClearLastError()
	return nil
}

// Clone returns a deep copy: independent backing storage, never a view
// regardless of whether the receiver was one.
// Complexity: O(rows*cols).
func (m *Dense) Clone() *Dense {
	out := &Dense{rows: m.rows, cols: m.cols, stride: m.cols, tag: m.tag, owner: true}
	out.data = make([]semiring.Scalar, m.rows*m.cols)
	for i := 0; i < m.rows; i++ {
		copy(out.data[i*out.stride:(i+1)*out.stride], m.data[i*m.stride:i*m.stride+m.cols])
	}
	return out
}

// Equal reports whether m and other have identical shape, tag and
// element values (ignoring padding introduced by stride).
func (m *Dense) Equal(other *Dense) bool {
	if other == nil || m.rows != other.rows || m.cols != other.cols || m.tag != other.tag {
		return false
	}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if m.Get(i, j) != other.Get(i, j) {
				return false
			}
		}
	}
	return true
}

// ForEach calls fn(i, j, value) for every cell in row-major order.
func (m *Dense) ForEach(fn func(i, j int, v semiring.Scalar)) {
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			fn(i, j, m.Get(i, j))
		}
	}
}

// Row returns a copy of row i as a fresh slice.
func (m *Dense) Row(i int) []semiring.Scalar {
	out := make([]semiring.Scalar, m.cols)
	copy(out, m.data[m.offset(i, 0):m.offset(i, 0)+m.cols])
	return out
}
