// Package telemetry centralizes the leveled logging this module emits
// from its two bounded iterative routines (scheduler.Solve and
// spectral.Eigenvector): per-iteration traces at verbosity 1, and a
// warning whenever a routine exhausts max_iter without converging. The
// teacher library (katalvlaran/lvlath) does no logging of its own —
// it is a pure, zero-runtime-dependency algorithms library — so this
// package's choice of github.com/golang/glog follows the leveled logger
// actually present in the wider retrieval pack (jyane/jnes).
package telemetry

import (
	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
)

// IterationTrace logs a single iteration of a fixed-point/power-iteration
// routine at verbosity 1. Counts are rendered with humanize.Comma so
// large iteration/row counts stay readable in logs — this is log-field
// formatting, not the human-readable matrix pretty-printer spec.md scopes
// out.
func IterationTrace(routine string, iter, maxIter int) {
	if glog.V(1) {
		glog.Infof("%s: iteration %s/%s", routine, humanize.Comma(int64(iter)), humanize.Comma(int64(maxIter)))
	}
}

// NotConverged warns that routine exhausted maxIter without reaching a
// fixed point; this is non-fatal per spec.md §7 ("convergence failure is
// non-fatal") but worth surfacing since it usually indicates a positive
// mean cycle (MaxPlus) or a mis-sized max_iter.
func NotConverged(routine string, maxIter int) {
	glog.Warningf("%s: did not converge within %s iterations", routine, humanize.Comma(int64(maxIter)))
}

// SparseBuild logs the shape of a freshly compressed CSR matrix; useful
// when diagnosing unexpectedly dense/sparse conversions.
func SparseBuild(rows, cols, nnz int) {
	if glog.V(2) {
		glog.Infof("sparsemat: built %dx%d, nnz=%s", rows, cols, humanize.Comma(int64(nnz)))
	}
}
