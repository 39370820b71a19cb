package graphpath_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tropicalmat/palma/densemat"
	"github.com/tropicalmat/palma/graphpath"
	"github.com/tropicalmat/palma/semiring"
)

func buildChain(t *testing.T) *densemat.Dense {
	t.Helper()
	m, err := densemat.CreateZero(4, 4, semiring.MinPlus)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		m.Set(i, i, 0)
	}
	m.Set(0, 1, 5)
	m.Set(1, 2, 3)
	m.Set(2, 3, 2)
	return m
}

func TestAllPairsPaths(t *testing.T) {
	a := buildChain(t)
	star, err := graphpath.AllPairsPaths(a, semiring.MinPlus)
	require.NoError(t, err)
	require.Equal(t, semiring.Scalar(10), star.Get(0, 3))
}

func TestSingleSourcePaths(t *testing.T) {
	// SingleSourcePaths propagates along A[to,from]: transpose the chain.
	chain := buildChain(t)
	a := chain.Clone()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			a.Set(i, j, chain.Get(j, i))
		}
	}
	dist, err := graphpath.SingleSourcePaths(a, 0, semiring.MinPlus)
	require.NoError(t, err)
	require.Equal(t, []semiring.Scalar{0, 5, 8, 10}, dist)
}

func TestReachability(t *testing.T) {
	a, err := densemat.CreateZero(3, 3, semiring.MaxPlus)
	require.NoError(t, err)
	a.Set(0, 1, 1)
	a.Set(1, 2, 1)
	reach, err := graphpath.Reachability(a)
	require.NoError(t, err)
	require.Equal(t, semiring.Scalar(1), reach.Get(0, 2))
	require.Equal(t, semiring.Scalar(0), reach.Get(2, 0))
}

func TestBottleneckPaths(t *testing.T) {
	a, err := densemat.CreateZero(3, 3, semiring.MaxMin)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		a.Set(i, i, semiring.PosInf)
	}
	a.Set(0, 1, 100)
	a.Set(1, 0, 100)
	a.Set(1, 2, 20)
	a.Set(2, 1, 20)
	star, err := graphpath.BottleneckPaths(a)
	require.NoError(t, err)
	require.Equal(t, semiring.Scalar(20), star.Get(0, 2))
}
