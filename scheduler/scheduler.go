// Package scheduler implements the discrete-event scheduler (spec
// component C8): a system matrix A built incrementally by constraint
// insertion, state/input vectors x and b, a fixed-point solve, and
// derived cycle-time/throughput/critical-path queries built on top of
// package spectral and package algebra.
//
// Grounded on the teacher library's graph/adjacency_list.go for the
// "incrementally built" handle shape (tasks here are indices with optional
// names, and the Scheduler holds no mutex), with the actual recurrence taken from spec.md §4.8 rather than any teacher
// algorithm (the teacher has no fixed-point scheduler).
package scheduler

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/tropicalmat/palma/algebra"
	"github.com/tropicalmat/palma/densemat"
	"github.com/tropicalmat/palma/internal/telemetry"
	"github.com/tropicalmat/palma/palmaerr"
	"github.com/tropicalmat/palma/semiring"
	"github.com/tropicalmat/palma/spectral"
)

const (
	opNew           = "scheduler.New"
	opAddConstraint = "scheduler.AddConstraint"
	opSetReady      = "scheduler.SetReadyTime"
	opSolve         = "scheduler.Solve"
	opCompletion    = "scheduler.GetCompletion"
	opCriticalPath  = "scheduler.CriticalPath"
)

func errf(op string, kind palmaerr.Kind, format string, args ...interface{}) error {
	return palmaerr.New(op, kind, fmt.Sprintf(format, args...))
}

// Scheduler holds the system matrix A, state x, input b and task names
// for a discrete-event schedule of nTasks tasks over an additive-tropical
// semiring (MaxPlus for as-soon-as-possible / makespan scheduling,
// MinPlus for as-late-as-possible variants).
//
// RunID is a synthetic identifier assigned at construction (via
// google/uuid) purely for external log correlation; it has no bearing on
// solve semantics.
type Scheduler struct {
	RunID string

	nTasks int
	tag    semiring.Tag
	a      *densemat.Dense
	x      []semiring.Scalar
	b      []semiring.Scalar
	names  []string
}

// New allocates a scheduler for nTasks tasks under semiring s. names may
// be nil; if provided it must have length nTasks and supplies the
// human-readable labels TaskName returns.
func New(nTasks int, s semiring.Tag, names []string) (*Scheduler, error) {
	if nTasks <= 0 {
		return nil, errf(opNew, palmaerr.InvalidDimensions, "nTasks=%d", nTasks)
	}
	if !semiring.IsAdditiveTropical(s) {
		return nil, errf(opNew, palmaerr.Unsupported, "scheduler requires an additive-tropical semiring, got %s", semiring.Name(s))
	}
	if names != nil && len(names) != nTasks {
		return nil, errf(opNew, palmaerr.InvalidDimensions, "len(names)=%d nTasks=%d", len(names), nTasks)
	}
	a, err := densemat.CreateZero(nTasks, nTasks, s)
	if err != nil {
		return nil, err
	}
	z := semiring.Zero(s)
	x := make([]semiring.Scalar, nTasks)
	b := make([]semiring.Scalar, nTasks)
	for i := range x {
		x[i] = z
		b[i] = z
	}
	palmaerr.ClearLastError()
	return &Scheduler{
		RunID:  uuid.NewString(),
		nTasks: nTasks,
		tag:    s,
		a:      a,
		x:      x,
		b:      b,
		names:  names,
	}, nil
}

// NTasks returns the number of tasks.
func (s *Scheduler) NTasks() int { return s.nTasks }

// AddConstraint records that task `to` cannot start until `duration` time
// units after task `from` starts, by folding A[to,from] ← A[to,from] ⊕
// duration. Calling this repeatedly for the same (from,to) pair combines
// the constraints monotonically rather than overwriting.
func (s *Scheduler) AddConstraint(from, to int, duration semiring.Scalar) error {
	if from < 0 || from >= s.nTasks || to < 0 || to >= s.nTasks {
		return errf(opAddConstraint, palmaerr.IndexOutOfBounds, "from=%d to=%d nTasks=%d", from, to, s.nTasks)
	}
	cur := s.a.Get(to, from)
	s.a.Set(to, from, semiring.Add(cur, duration, s.tag))
	palmaerr.ClearLastError()
	return nil
}

// SetReadyTime folds r into both the input vector (b[task] ← b[task] ⊕
// r) and the current state (x[task] ← x[task] ⊕ r), seeding the solve
// monotonically.
func (s *Scheduler) SetReadyTime(task int, r semiring.Scalar) error {
	if task < 0 || task >= s.nTasks {
		return errf(opSetReady, palmaerr.IndexOutOfBounds, "task=%d nTasks=%d", task, s.nTasks)
	}
	s.b[task] = semiring.Add(s.b[task], r, s.tag)
	s.x[task] = semiring.Add(s.x[task], r, s.tag)
	palmaerr.ClearLastError()
	return nil
}

// Solve iterates the fixed point x ← A⊗x ⊕ b ⊕ x for at most maxIter
// steps (maxIter<=0 defaults to NTasks), returning the number of
// iterations actually performed. A result below maxIter means a fixed
// point was reached. A result of exactly maxIter means either that the
// fixed point was first confirmed on the last permitted iteration or that
// the system did not converge (e.g. a positive-mean cycle under MaxPlus);
// callers should consult CycleTime to interpret this.
func (s *Scheduler) Solve(maxIter int) (int, error) {
	if maxIter <= 0 {
		maxIter = s.nTasks
	}
	prev := make([]semiring.Scalar, s.nTasks)
	tmp := make([]semiring.Scalar, s.nTasks)
	for iter := 0; iter < maxIter; iter++ {
		telemetry.IterationTrace(opSolve, iter, maxIter)
		copy(prev, s.x)
		if err := algebra.MatVecInPlace(tmp, s.a, prev); err != nil {
			return iter, err
		}
		for i := 0; i < s.nTasks; i++ {
			v := semiring.Add(tmp[i], s.b[i], s.tag)
			v = semiring.Add(v, prev[i], s.tag)
			s.x[i] = v
		}
		if vectorsEqual(s.x, prev) {
			palmaerr.ClearLastError()
			return iter + 1, nil
		}
	}
	telemetry.NotConverged(opSolve, maxIter)
	return maxIter, nil
}

func vectorsEqual(a, b []semiring.Scalar) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// GetCompletion returns x[task], the solved completion/start time.
func (s *Scheduler) GetCompletion(task int) (semiring.Scalar, error) {
	if task < 0 || task >= s.nTasks {
		return semiring.Zero(s.tag), errf(opCompletion, palmaerr.IndexOutOfBounds, "task=%d nTasks=%d", task, s.nTasks)
	}
	return s.x[task], nil
}

// CycleTime returns the tropical eigenvalue of A, the long-run mean time
// per unit of throughput.
func (s *Scheduler) CycleTime() (semiring.Scalar, error) {
	return spectral.Eigenvalue(s.a, s.tag)
}

// Throughput returns 1/CycleTime as a float64, or 0 if CycleTime is ε,
// ±∞, or exactly zero.
func (s *Scheduler) Throughput() (float64, error) {
	ct, err := s.CycleTime()
	if err != nil {
		return 0, err
	}
	if ct == semiring.Zero(s.tag) || ct == semiring.PosInf || ct == semiring.NegInf || ct == 0 {
		return 0, nil
	}
	return 1.0 / float64(ct), nil
}

// CriticalPath finds the task with maximal x, then backtracks by
// repeatedly choosing the smallest-index predecessor j satisfying
// x[current] = x[j]⊗A[current,j], writing the root-to-end path into out
// (root-to-end order) and returning the count written. Stops early if
// out is shorter than the discovered path or maxLen is reached.
func (s *Scheduler) CriticalPath(out []int, maxLen int) (int, error) {
	if maxLen <= 0 || maxLen > len(out) {
		maxLen = len(out)
	}
	end := argMax(s.x)
	path := []int{end}
	current := end
	for len(path) < maxLen {
		pred, found := bestPredecessor(s, current)
		if !found {
			break
		}
		path = append(path, pred)
		current = pred
	}
	reversed := lo.Reverse(append([]int(nil), path...))
	n := copy(out, reversed)
	palmaerr.ClearLastError()
	return n, nil
}

func argMax(x []semiring.Scalar) int {
	best := 0
	for i := 1; i < len(x); i++ {
		if x[i] > x[best] {
			best = i
		}
	}
	return best
}

// bestPredecessor finds the smallest-index j such that x[current] =
// x[j]⊗A[current,j] under the scheduler's semiring.
func bestPredecessor(s *Scheduler, current int) (int, bool) {
	for j := 0; j < s.nTasks; j++ {
		w := s.a.Get(current, j)
		if w == semiring.Zero(s.tag) {
			continue
		}
		if semiring.Mul(s.x[j], w, s.tag) == s.x[current] {
			return j, true
		}
	}
	return 0, false
}

// TaskName returns the human-readable label for task, or "task<N>" (N
// being its index) if no names were supplied at construction.
func (s *Scheduler) TaskName(task int) string {
	if s.names != nil && task >= 0 && task < len(s.names) {
		return s.names[task]
	}
	return fmt.Sprintf("task%d", task)
}
