package scheduler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tropicalmat/palma/palmaerr"
	"github.com/tropicalmat/palma/scheduler"
	"github.com/tropicalmat/palma/semiring"
)

// Scenario B: boot schedule (MaxPlus), spec.md §8.B.
func TestScenarioB_BootSchedule(t *testing.T) {
	sch, err := scheduler.New(6, semiring.MaxPlus, nil)
	require.NoError(t, err)
	require.NotEmpty(t, sch.RunID)

	require.NoError(t, sch.AddConstraint(0, 1, 10))
	require.NoError(t, sch.AddConstraint(1, 2, 20))
	require.NoError(t, sch.AddConstraint(1, 3, 20))
	require.NoError(t, sch.AddConstraint(1, 4, 20))
	require.NoError(t, sch.AddConstraint(2, 5, 15))
	require.NoError(t, sch.AddConstraint(3, 5, 25))
	require.NoError(t, sch.AddConstraint(4, 5, 30))
	require.NoError(t, sch.SetReadyTime(0, 0))

	iters, err := sch.Solve(0)
	require.NoError(t, err)
	require.LessOrEqual(t, iters, 6)

	want := []semiring.Scalar{0, 10, 30, 30, 30, 60}
	for task, w := range want {
		got, err := sch.GetCompletion(task)
		require.NoError(t, err)
		require.Equal(t, w, got, "task %d", task)
	}

	// Task 5's own duration (10) is applied externally: makespan = x[5]+10 = 70.
	x5, err := sch.GetCompletion(5)
	require.NoError(t, err)
	require.Equal(t, semiring.Scalar(70), x5+10)
}

func TestAddConstraintCombinesMonotonically(t *testing.T) {
	sch, err := scheduler.New(2, semiring.MaxPlus, nil)
	require.NoError(t, err)
	require.NoError(t, sch.AddConstraint(0, 1, 5))
	require.NoError(t, sch.AddConstraint(0, 1, 9))
	require.NoError(t, sch.SetReadyTime(0, 0))
	_, err = sch.Solve(0)
	require.NoError(t, err)
	got, err := sch.GetCompletion(1)
	require.NoError(t, err)
	require.Equal(t, semiring.Scalar(9), got)
}

func TestAddConstraintRejectsOutOfRange(t *testing.T) {
	sch, err := scheduler.New(2, semiring.MaxPlus, nil)
	require.NoError(t, err)
	err = sch.AddConstraint(0, 5, 1)
	require.ErrorIs(t, err, palmaerr.ErrIndexOutOfBounds)
}

func TestNewRejectsNonAdditiveSemiring(t *testing.T) {
	_, err := scheduler.New(2, semiring.MaxMin, nil)
	require.ErrorIs(t, err, palmaerr.ErrUnsupported)
}

func TestCriticalPathBacktracks(t *testing.T) {
	sch, err := scheduler.New(3, semiring.MaxPlus, []string{"start", "build", "deploy"})
	require.NoError(t, err)
	require.NoError(t, sch.AddConstraint(0, 1, 10))
	require.NoError(t, sch.AddConstraint(1, 2, 5))
	require.NoError(t, sch.SetReadyTime(0, 0))
	_, err = sch.Solve(0)
	require.NoError(t, err)

	out := make([]int, 3)
	n, err := sch.CriticalPath(out, 0)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, out[:n])
	require.Equal(t, "deploy", sch.TaskName(2))
}

func TestThroughputIsInverseCycleTime(t *testing.T) {
	sch, err := scheduler.New(3, semiring.MaxPlus, nil)
	require.NoError(t, err)
	require.NoError(t, sch.AddConstraint(1, 0, 5))
	require.NoError(t, sch.AddConstraint(2, 1, 3))
	require.NoError(t, sch.AddConstraint(0, 2, 4))

	ct, err := sch.CycleTime()
	require.NoError(t, err)
	require.Equal(t, semiring.Scalar(4), ct)

	thr, err := sch.Throughput()
	require.NoError(t, err)
	require.InDelta(t, 0.25, thr, 1e-9)
}

func TestThroughputZeroWhenAcyclic(t *testing.T) {
	sch, err := scheduler.New(2, semiring.MaxPlus, nil)
	require.NoError(t, err)
	require.NoError(t, sch.AddConstraint(0, 1, 1))
	thr, err := sch.Throughput()
	require.NoError(t, err)
	require.Equal(t, 0.0, thr)
}
