package spectral_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tropicalmat/palma/densemat"
	"github.com/tropicalmat/palma/palmaerr"
	"github.com/tropicalmat/palma/semiring"
	"github.com/tropicalmat/palma/spectral"
)

func buildDense(t *testing.T, s semiring.Tag, n int, set func(m *densemat.Dense)) *densemat.Dense {
	t.Helper()
	m, err := densemat.CreateZero(n, n, s)
	require.NoError(t, err)
	set(m)
	return m
}

// Scenario C: simple 3-cycle (MaxPlus), spec.md §8.C.
func TestScenarioC_SimpleCycle(t *testing.T) {
	a := buildDense(t, semiring.MaxPlus, 3, func(m *densemat.Dense) {
		m.Set(1, 0, 5)
		m.Set(2, 1, 3)
		m.Set(0, 2, 4)
	})
	lambda, err := spectral.Eigenvalue(a, semiring.MaxPlus)
	require.NoError(t, err)
	require.Equal(t, semiring.Scalar(4), lambda)
}

// Scenario D: two cycles (MaxPlus), spec.md §8.D.
func TestScenarioD_TwoCycles(t *testing.T) {
	a := buildDense(t, semiring.MaxPlus, 3, func(m *densemat.Dense) {
		m.Set(1, 0, 3)
		m.Set(0, 1, 5)
		m.Set(2, 0, 2)
		m.Set(0, 2, 4)
	})
	lambda, err := spectral.Eigenvalue(a, semiring.MaxPlus)
	require.NoError(t, err)
	require.Equal(t, semiring.Scalar(4), lambda)

	nodes, err := spectral.CriticalNodes(a, semiring.MaxPlus, lambda, 0)
	require.NoError(t, err)
	require.ElementsMatch(t, []int{0, 1}, nodes)
	require.NotContains(t, nodes, 2)
}

func TestEigenvalueAcyclicIsNegInf(t *testing.T) {
	a := buildDense(t, semiring.MaxPlus, 3, func(m *densemat.Dense) {
		m.Set(0, 1, 1)
		m.Set(1, 2, 1)
	})
	lambda, err := spectral.Eigenvalue(a, semiring.MaxPlus)
	require.NoError(t, err)
	require.Equal(t, semiring.NegInf, lambda)
}

func TestEigenvalueRefusesNonAdditiveSemiring(t *testing.T) {
	a := buildDense(t, semiring.MaxMin, 2, func(m *densemat.Dense) {})
	_, err := spectral.Eigenvalue(a, semiring.MaxMin)
	require.ErrorIs(t, err, palmaerr.ErrUnsupported)
}

func TestEigenvalueRejectsNonSquare(t *testing.T) {
	m, err := densemat.CreateZero(2, 3, semiring.MaxPlus)
	require.NoError(t, err)
	_, err = spectral.Eigenvalue(m, semiring.MaxPlus)
	require.ErrorIs(t, err, palmaerr.ErrNotSquare)
}

func TestEigenvectorDoesNotConvergeOnPeriodicCycle(t *testing.T) {
	// A lone 3-cycle is periodic: from the all-e start the normalised
	// iterates repeat with period 3 and never reach a fixed point.
	a := buildDense(t, semiring.MaxPlus, 3, func(m *densemat.Dense) {
		m.Set(1, 0, 5)
		m.Set(2, 1, 3)
		m.Set(0, 2, 4)
	})
	lambda, err := spectral.Eigenvalue(a, semiring.MaxPlus)
	require.NoError(t, err)

	v, converged, err := spectral.Eigenvector(a, semiring.MaxPlus, lambda, 0)
	require.NoError(t, err)
	require.False(t, converged)
	require.Len(t, v, 3)
}

func TestEigenvectorAcyclicReturnsZeroFilled(t *testing.T) {
	a := buildDense(t, semiring.MaxPlus, 2, func(m *densemat.Dense) {
		m.Set(0, 1, 1)
	})
	v, converged, err := spectral.Eigenvector(a, semiring.MaxPlus, semiring.NegInf, 10)
	require.NoError(t, err)
	require.False(t, converged)
	for _, x := range v {
		require.Equal(t, semiring.NegInf, x)
	}
}

func TestCriticalNodesRefusesNonAdditiveSemiring(t *testing.T) {
	a := buildDense(t, semiring.Boolean, 2, func(m *densemat.Dense) {})
	_, err := spectral.CriticalNodes(a, semiring.Boolean, 0, 0)
	require.ErrorIs(t, err, palmaerr.ErrUnsupported)
}

func TestCriticalNodesRejectsNegativeTolerance(t *testing.T) {
	a := buildDense(t, semiring.MaxPlus, 2, func(m *densemat.Dense) {})
	_, err := spectral.CriticalNodes(a, semiring.MaxPlus, 4, -1)
	require.ErrorIs(t, err, palmaerr.ErrInvalidArgument)
}

func TestCriticalNodesExactToleranceExcludesSubCriticalCycle(t *testing.T) {
	// Scenario D's 0↔2 cycle has mean 3 against lambda=4: strictly
	// sub-critical, and must stay excluded even with zero slack.
	a := buildDense(t, semiring.MaxPlus, 3, func(m *densemat.Dense) {
		m.Set(1, 0, 3)
		m.Set(0, 1, 5)
		m.Set(2, 0, 2)
		m.Set(0, 2, 4)
	})
	nodes, err := spectral.CriticalNodes(a, semiring.MaxPlus, 4, 0)
	require.NoError(t, err)
	require.ElementsMatch(t, []int{0, 1}, nodes)
}

func TestCriticalArcsMatchesEigenvectorEquation(t *testing.T) {
	// The self-loop (mean 4, same as the 3-cycle) makes the critical graph
	// aperiodic, so power iteration reaches a fixed point.
	a := buildDense(t, semiring.MaxPlus, 3, func(m *densemat.Dense) {
		m.Set(0, 0, 4)
		m.Set(1, 0, 5)
		m.Set(2, 1, 3)
		m.Set(0, 2, 4)
	})
	lambda, err := spectral.Eigenvalue(a, semiring.MaxPlus)
	require.NoError(t, err)
	v, converged, err := spectral.Eigenvector(a, semiring.MaxPlus, lambda, 0)
	require.NoError(t, err)
	require.True(t, converged)

	arcs, err := spectral.CriticalArcs(a, semiring.MaxPlus, lambda, v)
	require.NoError(t, err)
	require.NotEmpty(t, arcs)
}
