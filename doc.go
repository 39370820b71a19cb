// Package palma (tropicalmat/palma) is a tropical linear-algebra engine.
//
// What is palma?
//
//	A numeric kernel that re-interprets matrix arithmetic over five
//	idempotent semirings — (max,+), (min,+), (max,min), (min,max) and
//	Boolean (OR,AND) — so that one set of routines expresses:
//
//	  • shortest / longest paths          (MinPlus / MaxPlus closure)
//	  • bottleneck / bandwidth paths      (MaxMin closure)
//	  • reachability                      (Boolean closure)
//	  • maximum cycle mean                (Karp, the tropical eigenvalue)
//	  • eigenvectors                      (power iteration)
//	  • discrete-event scheduling         (fixed-point iteration)
//
// Under the hood, everything is organized into small packages:
//
//	semiring/   — ε, e, ⊕, ⊗ and saturation for each tag
//	densemat/   — row-major dense matrices (owned buffers and views)
//	sparsemat/  — CSR matrices
//	algebra/    — matvec, matmul (dense + sparse + parallel), power, iterate
//	closure/    — Kleene star / transitive closure
//	spectral/   — Karp maximum-cycle-mean, eigenvector power iteration
//	graphpath/  — thin graph-shaped facade over closure/algebra
//	scheduler/  — system matrix, state/input vectors, fixed-point solve
//	digraph/    — named-vertex graph ingestion into dense/sparse matrices
//	palmaerr/   — error taxonomy and the thread-local last-error slot
//
// See SPEC_FULL.md and DESIGN.md in the repository root for the full
// design rationale and the grounding ledger.
package palma
