// Package palmaerr defines the error taxonomy shared by every palma
// package (spec component C9) plus the thread-local "last error" slot
// that allocation-returning constructors set on failure.
//
// Every sentinel is declared once here and returned (directly, or wrapped
// with github.com/pkg/errors at a package boundary) by every operation
// that can fail; callers match kinds with errors.Is/errors.As exactly as
// in the teacher library's matrix/errors.go. Arithmetic itself is total —
// semiring.Add/Mul never fail — so these sentinels only ever originate
// from shape/index/convergence/IO checks above the semiring kernel.
package palmaerr

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind enumerates the closed set of failure categories from spec.md §4.9.
type Kind uint8

const (
	// Success is the zero value: "no error", the last-error slot's initial state.
	Success Kind = iota
	// NullInput marks a nil pointer/handle where one was required.
	NullInput
	// InvalidDimensions marks a non-positive or otherwise malformed shape.
	InvalidDimensions
	// OutOfMemory marks an internal allocation failure.
	OutOfMemory
	// InvalidArgument marks any other malformed argument.
	InvalidArgument
	// NotSquare marks a square-matrix precondition violation.
	NotSquare
	// NotConverged marks a bounded iterative routine exhausting max_iter.
	NotConverged
	// FileOpen marks a failure to open a file (collaborator surface, §6).
	FileOpen
	// FileRead marks a failure reading from an opened file.
	FileRead
	// FileWrite marks a failure writing to a file.
	FileWrite
	// FileFormat marks malformed file contents (e.g. bad magic, bad CSV).
	FileFormat
	// IndexOutOfBounds marks an out-of-range row/column/vector index.
	IndexOutOfBounds
	// InvalidSparseFormat marks a CSR invariant violation.
	InvalidSparseFormat
	// Unsupported marks an operation that is well-formed but not defined
	// for the given semiring (e.g. eigenvalue on MaxMin).
	Unsupported
)

// String renders the kind's name for logging and error messages.
func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case NullInput:
		return "null input"
	case InvalidDimensions:
		return "invalid dimensions"
	case OutOfMemory:
		return "out of memory"
	case InvalidArgument:
		return "invalid argument"
	case NotSquare:
		return "not square"
	case NotConverged:
		return "not converged"
	case FileOpen:
		return "file open error"
	case FileRead:
		return "file read error"
	case FileWrite:
		return "file write error"
	case FileFormat:
		return "file format error"
	case IndexOutOfBounds:
		return "index out of bounds"
	case InvalidSparseFormat:
		return "invalid sparse format"
	case Unsupported:
		return "unsupported operation"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Error is the concrete error type returned across package boundaries.
// It carries a Kind so callers can branch on failure category via
// errors.As, while also satisfying errors.Is against the package-level
// sentinels below (Unwrap exposes the matching sentinel).
type Error struct {
	Kind Kind
	Op   string // operation tag, e.g. "densemat.Create"
	Msg  string // human-readable detail
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("palma: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("palma: %s: %s: %s", e.Op, e.Kind, e.Msg)
}

// Unwrap exposes the sentinel matching e.Kind so errors.Is(err, ErrNotSquare)
// succeeds regardless of which operation produced e.
func (e *Error) Unwrap() error { return sentinelFor(e.Kind) }

// Sentinel errors, one per Kind, for direct errors.Is comparisons.
var (
	ErrNullInput           = errors.New("palma: null input")
	ErrInvalidDimensions   = errors.New("palma: invalid dimensions")
	ErrOutOfMemory         = errors.New("palma: out of memory")
	ErrInvalidArgument     = errors.New("palma: invalid argument")
	ErrNotSquare           = errors.New("palma: not square")
	ErrNotConverged        = errors.New("palma: not converged")
	ErrFileOpen            = errors.New("palma: file open error")
	ErrFileRead            = errors.New("palma: file read error")
	ErrFileWrite           = errors.New("palma: file write error")
	ErrFileFormat          = errors.New("palma: file format error")
	ErrIndexOutOfBounds    = errors.New("palma: index out of bounds")
	ErrInvalidSparseFormat = errors.New("palma: invalid sparse format")
	ErrUnsupported         = errors.New("palma: unsupported operation")
)

func sentinelFor(k Kind) error {
	switch k {
	case NullInput:
		return ErrNullInput
	case InvalidDimensions:
		return ErrInvalidDimensions
	case OutOfMemory:
		return ErrOutOfMemory
	case InvalidArgument:
		return ErrInvalidArgument
	case NotSquare:
		return ErrNotSquare
	case NotConverged:
		return ErrNotConverged
	case FileOpen:
		return ErrFileOpen
	case FileRead:
		return ErrFileRead
	case FileWrite:
		return ErrFileWrite
	case FileFormat:
		return ErrFileFormat
	case IndexOutOfBounds:
		return ErrIndexOutOfBounds
	case InvalidSparseFormat:
		return ErrInvalidSparseFormat
	case Unsupported:
		return ErrUnsupported
	default:
		return nil
	}
}

// New builds an *Error for the given kind, operation tag and detail, and
// records it in the calling goroutine's last-error slot.
func New(op string, k Kind, msg string) error {
	err := &Error{Kind: k, Op: op, Msg: msg}
	SetLastError(k)
	return err
}

// Wrap attaches a stack trace (via github.com/pkg/errors) to cause while
// reclassifying it under op/k, for boundary crossings where the caller
// needs both the Kind and a trace to the original failure site.
func Wrap(cause error, op string, k Kind) error {
	if cause == nil {
		return nil
	}
	SetLastError(k)
	return pkgerrors.Wrapf(&Error{Kind: k, Op: op, Msg: cause.Error()}, "%s", op)
}

// KindOf extracts the Kind from err if it (or something it wraps) is an
// *Error; otherwise it returns Success, false.
func KindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return Success, false
}
