package closure_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tropicalmat/palma/closure"
	"github.com/tropicalmat/palma/densemat"
	"github.com/tropicalmat/palma/palmaerr"
	"github.com/tropicalmat/palma/semiring"
)

func buildDense(t *testing.T, s semiring.Tag, n int, fill semiring.Scalar, set func(m *densemat.Dense)) *densemat.Dense {
	t.Helper()
	m, err := densemat.Create(n, n, s)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.Set(i, j, fill)
		}
	}
	set(m)
	return m
}

// Scenario A: shortest paths (MinPlus), spec.md §8.A.
func TestScenarioA_ShortestPaths(t *testing.T) {
	const n = 4
	a := buildDense(t, semiring.MinPlus, n, semiring.PosInf, func(m *densemat.Dense) {
		for i := 0; i < n; i++ {
			m.Set(i, i, 0)
		}
		m.Set(0, 1, 5)
		m.Set(1, 2, 3)
		m.Set(2, 3, 2)
	})

	star, err := closure.Closure(a, semiring.MinPlus)
	require.NoError(t, err)
	require.Equal(t, semiring.Scalar(10), star.Get(0, 3))
	require.Equal(t, semiring.PosInf, star.Get(3, 0))
}

// Scenario E: bottleneck paths (MaxMin), spec.md §8.E.
func TestScenarioE_BottleneckPaths(t *testing.T) {
	const n = 3
	a := buildDense(t, semiring.MaxMin, n, semiring.NegInf, func(m *densemat.Dense) {
		for i := 0; i < n; i++ {
			m.Set(i, i, semiring.PosInf)
		}
		m.Set(0, 1, 100)
		m.Set(1, 0, 100)
		m.Set(1, 2, 20)
		m.Set(2, 1, 20)
	})
	star, err := closure.BottleneckPaths(a)
	require.NoError(t, err)
	require.Equal(t, semiring.Scalar(20), star.Get(0, 2))
}

// Scenario F: reachability over an acyclic chain 0→1→2→3.
func TestScenarioF_Reachability(t *testing.T) {
	const n = 4
	a := buildDense(t, semiring.MaxPlus, n, semiring.NegInf, func(m *densemat.Dense) {
		m.Set(0, 1, 1)
		m.Set(1, 2, 1)
		m.Set(2, 3, 1)
	})
	reach, err := closure.Reachability(a)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := semiring.Scalar(0)
			if i == j || j > i {
				want = 1
			}
			require.Equal(t, want, reach.Get(i, j), "i=%d j=%d", i, j)
		}
	}
}

// Invariant 10: closure is idempotent.
func TestClosureIsIdempotent(t *testing.T) {
	const n = 3
	a := buildDense(t, semiring.MaxPlus, n, semiring.NegInf, func(m *densemat.Dense) {
		m.Set(0, 1, 2)
		m.Set(1, 2, 3)
	})
	once, err := closure.Closure(a, semiring.MaxPlus)
	require.NoError(t, err)
	twice, err := closure.Closure(once, semiring.MaxPlus)
	require.NoError(t, err)
	require.True(t, once.Equal(twice))
}

func TestClosureRejectsNonSquare(t *testing.T) {
	m, err := densemat.CreateZero(2, 3, semiring.MaxPlus)
	require.NoError(t, err)
	_, err = closure.Closure(m, semiring.MaxPlus)
	require.Error(t, err)
}

func TestTransitiveClosurePropagatesNullInputKind(t *testing.T) {
	_, err := closure.TransitiveClosure(nil, semiring.MaxPlus)
	require.ErrorIs(t, err, palmaerr.ErrNullInput)
}

func TestSingleSourcePaths(t *testing.T) {
	const n = 4
	// x ← A⊗x propagates along A[to,from], so the chain 0→1→2→3 is
	// stored in that layout here.
	a := buildDense(t, semiring.MinPlus, n, semiring.PosInf, func(m *densemat.Dense) {
		for i := 0; i < n; i++ {
			m.Set(i, i, 0)
		}
		m.Set(1, 0, 5)
		m.Set(2, 1, 3)
		m.Set(3, 2, 2)
	})
	out := make([]semiring.Scalar, n)
	require.NoError(t, closure.SingleSourcePaths(a, 0, semiring.MinPlus, out))
	require.Equal(t, semiring.Scalar(0), out[0])
	require.Equal(t, semiring.Scalar(5), out[1])
	require.Equal(t, semiring.Scalar(8), out[2])
	require.Equal(t, semiring.Scalar(10), out[3])
}

func TestTransitiveClosureExcludesZeroLengthPaths(t *testing.T) {
	const n = 2
	a := buildDense(t, semiring.MaxPlus, n, semiring.NegInf, func(m *densemat.Dense) {
		m.Set(0, 1, 5)
	})
	plus, err := closure.TransitiveClosure(a, semiring.MaxPlus)
	require.NoError(t, err)
	require.Equal(t, semiring.NegInf, plus.Get(0, 0))
	require.Equal(t, semiring.Scalar(5), plus.Get(0, 1))
}
