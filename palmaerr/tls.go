package palmaerr

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// lastErrors backs the per-goroutine "last error" slot required by
// spec.md §5/§9: it is the only ambient state in this module. Go has no
// public goroutine-local-storage primitive, so the slot is keyed by the
// goroutine id parsed out of runtime.Stack — the same trick a handful of
// GLS shims in the wider Go ecosystem use to emulate C-style
// thread-locals; nothing in the retrieved corpus provides this
// (DESIGN.md: it is an unavoidable stdlib-only exception).
var lastErrors sync.Map // goroutine id (uint64) -> Kind

func goroutineID() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = buf[:n]
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	if i := bytes.IndexByte(buf, ' '); i >= 0 {
		buf = buf[:i]
	}
	id, _ := strconv.ParseUint(string(buf), 10, 64)
	return id
}

// SetLastError records k as the calling goroutine's last error kind.
func SetLastError(k Kind) { lastErrors.Store(goroutineID(), k) }

// LastError returns the calling goroutine's last recorded error kind, or
// Success if none was ever set (or ClearLastError was called).
func LastError() Kind {
	v, ok := lastErrors.Load(goroutineID())
	if !ok {
		return Success
	}
	return v.(Kind)
}

// ClearLastError resets the calling goroutine's last-error slot to
// Success; every operation that completes without error should call it.
func ClearLastError() { SetLastError(Success) }
