package syncer

// State is a progress notification emitted during a sync pass.
//
// The set of states is closed: every implementation lives in this package and
// callers are expected to type-switch exhaustively. States are transient
// values; the engine emits each one once and never retains it.
type State interface {
	// isState seals the interface to this package.
	isState()
}

// ProgressFunc receives every State transition of a pass. It is invoked
// synchronously within the pass, so callers must not block excessively.
type ProgressFunc func(State)

// InProgress is emitted, instead of starting a new pass, when a sync is
// already running. The rejected call returns immediately afterwards.
type InProgress struct{}

// FetchingLocalMetadata is emitted before the local metadata list is fetched.
type FetchingLocalMetadata struct{}

// FetchingCloudMetadata is emitted before the cloud metadata list is fetched.
type FetchingCloudMetadata struct{}

// ScanningCloud is emitted before the upload direction begins, i.e. before
// the cloud is scanned for missing or outdated items.
type ScanningCloud struct{}

// ScanningLocal is emitted before the download direction begins.
type ScanningLocal struct{}

// SavingToCloud is emitted immediately before one item is uploaded.
type SavingToCloud[M any] struct {
	// Metadata identifies the item being uploaded.
	Metadata M
}

// SavedToCloud is emitted immediately after one item's upload succeeds.
type SavedToCloud[M any] struct {
	Metadata M
}

// SavingToLocal is emitted immediately before one item is downloaded.
type SavingToLocal[M any] struct {
	Metadata M
}

// SavedToLocal is emitted immediately after one item's download succeeds.
type SavedToLocal[M any] struct {
	Metadata M
}

// SyncError is emitted when an adapter call fails. For per-item failures
// (detail fetch, save, recency check) the pass continues with the next item;
// for a metadata list fetch failure the pass aborts.
type SyncError struct {
	// Err is the adapter error, opaque to the engine.
	Err error

	// Stack is the stack trace captured where the error was observed.
	Stack string
}

// SyncCompleted is emitted exactly once at the end of a pass that was neither
// cancelled nor aborted by a fatal error.
type SyncCompleted struct{}

// SyncCancelled is emitted when a pass is aborted via cancellation.
type SyncCancelled struct{}

func (InProgress) isState()            {}
func (FetchingLocalMetadata) isState() {}
func (FetchingCloudMetadata) isState() {}
func (ScanningCloud) isState()         {}
func (ScanningLocal) isState()         {}
func (SavingToCloud[M]) isState()      {}
func (SavedToCloud[M]) isState()       {}
func (SavingToLocal[M]) isState()      {}
func (SavedToLocal[M]) isState()       {}
func (SyncError) isState()             {}
func (SyncCompleted) isState()         {}
func (SyncCancelled) isState()         {}
