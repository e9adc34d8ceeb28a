package syncer

import "errors"

// DisposedError reports a call on an engine after Dispose.
// It is always returned to the caller, never routed through the progress
// callback.
type DisposedError struct {
	// Op is the name of the attempted operation.
	Op string
}

func (e *DisposedError) Error() string {
	return "syncer: " + e.Op + " called on disposed engine"
}

// IsDisposed reports whether err indicates use of a disposed engine.
func IsDisposed(err error) bool {
	var de *DisposedError
	return errors.As(err, &de)
}

// errPassCancelled flows a cancellation request out of the pass internals so
// the pass can terminate with SyncCancelled instead of SyncError.
var errPassCancelled = errors.New("syncer: pass cancelled")
