// Package graphpath is the path-query facade (spec component C7): a thin,
// semiring-agnostic surface over package closure's Kleene-star engine,
// named the way callers think about the domain (all-pairs paths, single
// source, reachability, bottlenecks) rather than in terms of matrix
// closures.
//
// Grounded on the teacher library's graph/conversions.go, which plays the
// same "small facade translating graph-shaped requests onto the matrix
// layer" role that this package plays over closure and densemat.
package graphpath

import (
	"github.com/tropicalmat/palma/closure"
	"github.com/tropicalmat/palma/densemat"
	"github.com/tropicalmat/palma/palmaerr"
	"github.com/tropicalmat/palma/semiring"
)

const opSSSP = "graphpath.SingleSourcePaths"

// AllPairsPaths returns the all-pairs closure of a under s (shortest
// paths for MinPlus, longest for MaxPlus, widest bottleneck for MaxMin,
// and so on depending on which semiring a's weights were built for).
func AllPairsPaths(a *densemat.Dense, s semiring.Tag) (*densemat.Dense, error) {
	return closure.AllPairsPaths(a, s)
}

// SingleSourcePaths returns the length-n vector of path weights from src
// to every vertex under s, reading A[i,j] as the weight of the edge j→i
// (the A[to,from] layout scheduler.AddConstraint builds): the result is
// x ← A⊗x iterated n times from the unit vector at src.
func SingleSourcePaths(a *densemat.Dense, src int, s semiring.Tag) ([]semiring.Scalar, error) {
	if a == nil {
		return nil, palmaerr.New(opSSSP, palmaerr.NullInput, "matrix is nil")
	}
	out := make([]semiring.Scalar, a.Rows())
	if err := closure.SingleSourcePaths(a, src, s, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Reachability returns the Boolean reachability closure of a: entry (i,j)
// is 1 iff j is reachable from i (including i itself).
func Reachability(a *densemat.Dense) (*densemat.Dense, error) {
	return closure.Reachability(a)
}

// BottleneckPaths returns the widest-bottleneck-path closure of a, which
// must already carry semiring.MaxMin-interpreted weights.
func BottleneckPaths(a *densemat.Dense) (*densemat.Dense, error) {
	return closure.BottleneckPaths(a)
}
