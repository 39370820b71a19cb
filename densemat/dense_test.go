package densemat_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/tropicalmat/palma/densemat"
	"github.com/tropicalmat/palma/palmaerr"
	"github.com/tropicalmat/palma/semiring"
)

// grid materialises m as a [][]Scalar for go-cmp's richer diff output,
// used where a plain require.Equal(t, a, b) failure wouldn't show which
// cell diverged.
func grid(m *densemat.Dense) [][]semiring.Scalar {
	out := make([][]semiring.Scalar, m.Rows())
	for i := range out {
		out[i] = append([]semiring.Scalar(nil), m.Row(i)...)
	}
	return out
}

func TestCreateRejectsNonPositive(t *testing.T) {
	_, err := densemat.Create(0, 3, semiring.MaxPlus)
	require.ErrorIs(t, err, palmaerr.ErrInvalidDimensions)

	_, err = densemat.Create(3, -1, semiring.MaxPlus)
	require.ErrorIs(t, err, palmaerr.ErrInvalidDimensions)
}

func TestCreateZeroFillsEpsilon(t *testing.T) {
	m, err := densemat.CreateZero(2, 2, semiring.MaxPlus)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			require.Equal(t, semiring.NegInf, m.Get(i, j))
		}
	}
}

func TestCreateIdentity(t *testing.T) {
	m, err := densemat.CreateIdentity(3, semiring.Boolean)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				require.Equal(t, semiring.Scalar(1), m.Get(i, j))
			} else {
				require.Equal(t, semiring.Scalar(0), m.Get(i, j))
			}
		}
	}
}

func TestGetSetSafeBounds(t *testing.T) {
	m, err := densemat.CreateZero(2, 2, semiring.MinPlus)
	require.NoError(t, err)

	require.NoError(t, m.SetSafe(1, 1, 7))
	v, err := m.GetSafe(1, 1)
	require.NoError(t, err)
	require.Equal(t, semiring.Scalar(7), v)

	_, err = m.GetSafe(2, 0)
	require.ErrorIs(t, err, palmaerr.ErrIndexOutOfBounds)

	err = m.SetSafe(-1, 0, 1)
	require.ErrorIs(t, err, palmaerr.ErrIndexOutOfBounds)
}

func TestCloneIsDeepAndIndependent(t *testing.T) {
	m, err := densemat.CreateZero(2, 2, semiring.MaxPlus)
	require.NoError(t, err)
	m.Set(0, 0, 5)

	clone := m.Clone()
	require.True(t, m.Equal(clone))

	clone.Set(0, 0, 9)
	require.NotEqual(t, m.Get(0, 0), clone.Get(0, 0))
	require.Equal(t, semiring.Scalar(5), m.Get(0, 0))
}

func TestWrapIsNonOwningView(t *testing.T) {
	buf := make([]semiring.Scalar, 6)
	m, err := densemat.Wrap(buf, 2, 3, 3, semiring.MaxPlus)
	require.NoError(t, err)
	require.True(t, m.IsView())

	m.Set(0, 0, 42)
	require.Equal(t, semiring.Scalar(42), buf[0])

	m.Destroy()
	require.Equal(t, semiring.Scalar(42), buf[0], "destroying a view must not touch the backing buffer")
}

func TestWrapRejectsUndersizedBuffer(t *testing.T) {
	buf := make([]semiring.Scalar, 3)
	_, err := densemat.Wrap(buf, 2, 3, 3, semiring.MaxPlus)
	require.ErrorIs(t, err, palmaerr.ErrInvalidDimensions)
}

func TestDestroyIdempotentOnNil(t *testing.T) {
	var m *densemat.Dense
	require.NotPanics(t, func() { m.Destroy() })
}

func TestDestroyIdempotent(t *testing.T) {
	m, err := densemat.CreateZero(1, 1, semiring.MaxPlus)
	require.NoError(t, err)
	m.Destroy()
	require.NotPanics(t, func() { m.Destroy() })
}

func TestCloneGridMatchesOriginal(t *testing.T) {
	m, err := densemat.CreateZero(2, 3, semiring.MinPlus)
	require.NoError(t, err)
	m.Set(0, 1, 4)
	m.Set(1, 2, 9)

	clone := m.Clone()
	if diff := cmp.Diff(grid(m), grid(clone)); diff != "" {
		t.Fatalf("clone grid mismatch (-want +got):\n%s", diff)
	}

	clone.Set(0, 1, 100)
	if diff := cmp.Diff(grid(m), grid(clone)); diff == "" {
		t.Fatal("expected divergence after mutating clone independently")
	}
}

func TestStrideAllowsPadding(t *testing.T) {
	buf := make([]semiring.Scalar, 2*5)
	m, err := densemat.Wrap(buf, 2, 3, 5, semiring.MaxPlus)
	require.NoError(t, err)
	m.Set(1, 2, 11)
	require.Equal(t, semiring.Scalar(11), buf[1*5+2])
}
