package syncer

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Spec defines the configuration for a sync engine.
// It bundles the two adapters with the behavioral settings fixed at
// construction.
type Spec[M, D any] struct {
	// Local is the adapter for the local store.
	Local Adapter[M, D]

	// Cloud is the adapter for the cloud store.
	Cloud Adapter[M, D]

	// Strategy selects the diff directions and their order.
	// Defaults to UploadFirst.
	Strategy Strategy

	// PropagateErrors makes Sync return pass-level fatal errors to the
	// caller even when a progress callback is supplied. Pass-level errors
	// are always returned when no callback was supplied, since there is
	// then no other way to observe them.
	PropagateErrors bool

	// Logger receives engine diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
}

// CloudSync is the reconciliation engine. At most one pass is active per
// instance at any time; concurrent Sync calls are rejected (reported as
// InProgress), never queued.
type CloudSync[M, D any] struct {
	local           Adapter[M, D]
	cloud           Adapter[M, D]
	strategy        Strategy
	propagateErrors bool
	log             *zap.Logger

	mu         sync.Mutex
	syncing    bool
	cancelPass context.CancelFunc
	passDone   chan struct{}
	stopTimer  func()
	disposed   bool
}

// New creates a sync engine from the given spec.
func New[M, D any](spec Spec[M, D]) *CloudSync[M, D] {
	strategy := spec.Strategy
	if strategy == "" {
		strategy = UploadFirst
	}
	log := spec.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &CloudSync[M, D]{
		local:           spec.Local,
		cloud:           spec.Cloud,
		strategy:        strategy,
		propagateErrors: spec.PropagateErrors,
		log:             log,
	}
}

// Sync runs one reconciliation pass, processing the strategy's directions
// sequentially. If a pass is already running it emits InProgress and returns
// immediately without queueing.
//
// With a progress callback and PropagateErrors false, Sync returns nil even
// when the pass failed; errors are then visible only through SyncError
// states. Without a callback, or with PropagateErrors set, pass-level
// failures are returned.
func (c *CloudSync[M, D]) Sync(ctx context.Context, progress ProgressFunc) error {
	return c.syncPass(ctx, progress, false)
}

// SyncConcurrent runs one reconciliation pass with the two diff directions
// on concurrently scheduled goroutines, joined before SyncCompleted.
// Everything else behaves as Sync.
func (c *CloudSync[M, D]) SyncConcurrent(ctx context.Context, progress ProgressFunc) error {
	return c.syncPass(ctx, progress, true)
}

func (c *CloudSync[M, D]) syncPass(ctx context.Context, progress ProgressFunc, concurrent bool) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return &DisposedError{Op: "Sync"}
	}
	if c.syncing {
		c.mu.Unlock()
		if progress != nil {
			progress(InProgress{})
		}
		return nil
	}
	passCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.syncing = true
	c.cancelPass = cancel
	c.passDone = done
	c.mu.Unlock()

	defer func() {
		cancel()
		c.mu.Lock()
		c.syncing = false
		c.cancelPass = nil
		c.passDone = nil
		c.mu.Unlock()
		close(done)
	}()

	r := &reporter{fn: progress}
	log := c.log.With(zap.String("pass_id", uuid.NewString()))
	log.Debug("sync pass started",
		zap.String("strategy", string(c.strategy)),
		zap.Bool("concurrent", concurrent))

	err := c.runPass(passCtx, r, log, concurrent)
	switch {
	case errors.Is(err, errPassCancelled):
		r.emit(SyncCancelled{})
		log.Info("sync pass cancelled")
		return nil
	case err != nil:
		// Fatal metadata fetch failure, already reported as SyncError.
		log.Error("sync pass failed", zap.Error(err))
		if c.propagateErrors || progress == nil {
			return err
		}
		return nil
	default:
		r.emit(SyncCompleted{})
		log.Info("sync pass completed")
		return nil
	}
}

// direction bundles everything needed to diff and transfer one way.
type direction[M, D any] struct {
	src     Adapter[M, D]
	dst     Adapter[M, D]
	srcList []M
	dstByID map[string]M

	scanning State
	saving   func(M) State
	saved    func(M) State
}

func (c *CloudSync[M, D]) runPass(ctx context.Context, r *reporter, log *zap.Logger, concurrent bool) error {
	localList, err := c.fetchList(ctx, r, c.local, FetchingLocalMetadata{})
	if err != nil {
		return err
	}
	cloudList, err := c.fetchList(ctx, r, c.cloud, FetchingCloudMetadata{})
	if err != nil {
		return err
	}

	upload := direction[M, D]{
		src:      c.local,
		dst:      c.cloud,
		srcList:  localList,
		dstByID:  indexByID(c.cloud, cloudList),
		scanning: ScanningCloud{},
		saving:   func(m M) State { return SavingToCloud[M]{Metadata: m} },
		saved:    func(m M) State { return SavedToCloud[M]{Metadata: m} },
	}
	download := direction[M, D]{
		src:      c.cloud,
		dst:      c.local,
		srcList:  cloudList,
		dstByID:  indexByID(c.local, localList),
		scanning: ScanningLocal{},
		saving:   func(m M) State { return SavingToLocal[M]{Metadata: m} },
		saved:    func(m M) State { return SavedToLocal[M]{Metadata: m} },
	}

	switch {
	case !c.strategy.downloads():
		return c.runDirection(ctx, r, log, upload)
	case !c.strategy.uploads():
		return c.runDirection(ctx, r, log, download)
	case concurrent || c.strategy == Simultaneously:
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return c.runDirection(gctx, r, log, upload) })
		g.Go(func() error { return c.runDirection(gctx, r, log, download) })
		return g.Wait()
	case c.strategy == DownloadFirst:
		if err := c.runDirection(ctx, r, log, download); err != nil {
			return err
		}
		return c.runDirection(ctx, r, log, upload)
	default: // UploadFirst
		if err := c.runDirection(ctx, r, log, upload); err != nil {
			return err
		}
		return c.runDirection(ctx, r, log, download)
	}
}

// fetchList retrieves one side's metadata list, emitting the fetching state
// beforehand. A failure here is fatal for the pass.
func (c *CloudSync[M, D]) fetchList(ctx context.Context, r *reporter, store Adapter[M, D], fetching State) ([]M, error) {
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	r.emit(fetching)
	list, err := store.FetchMetadataList(ctx)
	if cerr := checkCancel(ctx); cerr != nil {
		return nil, cerr
	}
	if err != nil {
		r.emit(SyncError{Err: err, Stack: string(debug.Stack())})
		return nil, err
	}
	return list, nil
}

// runDirection diffs one direction and transfers every missing or outdated
// item. Per-item failures are reported and skipped; only cancellation stops
// the loop early.
func (c *CloudSync[M, D]) runDirection(ctx context.Context, r *reporter, log *zap.Logger, d direction[M, D]) error {
	r.emit(d.scanning)
	for _, src := range d.srcList {
		if err := checkCancel(ctx); err != nil {
			return err
		}

		id := d.src.MetadataID(src)
		transfer := true
		if dst, ok := d.dstByID[id]; ok {
			// The destination holds a record; transfer only when it is
			// strictly older. Equal timestamps never transfer.
			before, err := d.dst.IsBefore(ctx, dst, src)
			if cerr := checkCancel(ctx); cerr != nil {
				return cerr
			}
			if err != nil {
				c.reportItemError(r, log, id, err)
				continue
			}
			transfer = before
		}
		if !transfer {
			continue
		}

		r.emit(d.saving(src))
		detail, err := d.src.FetchDetail(ctx, src)
		if cerr := checkCancel(ctx); cerr != nil {
			return cerr
		}
		if err != nil {
			c.reportItemError(r, log, id, err)
			continue
		}

		if err := d.dst.Save(ctx, src, detail); err != nil {
			if cerr := checkCancel(ctx); cerr != nil {
				return cerr
			}
			c.reportItemError(r, log, id, err)
			continue
		}
		r.emit(d.saved(src))
	}
	return nil
}

func (c *CloudSync[M, D]) reportItemError(r *reporter, log *zap.Logger, id string, err error) {
	log.Warn("sync item failed", zap.String("item_id", id), zap.Error(err))
	r.emit(SyncError{Err: err, Stack: string(debug.Stack())})
}

// indexByID builds an id lookup for one side's list. Last seen wins if an
// adapter violates the no-duplicate-id contract.
func indexByID[M, D any](store Adapter[M, D], list []M) map[string]M {
	byID := make(map[string]M, len(list))
	for _, m := range list {
		byID[store.MetadataID(m)] = m
	}
	return byID
}

// checkCancel polls for cancellation. It is called immediately before and
// after every adapter call so a request is honored promptly rather than only
// at pass boundaries.
func checkCancel(ctx context.Context) error {
	if ctx.Err() != nil {
		return errPassCancelled
	}
	return nil
}

// reporter serializes progress emissions so concurrently running directions
// never interleave a Saving/Saved pair out of causal order.
type reporter struct {
	mu sync.Mutex
	fn ProgressFunc
}

func (r *reporter) emit(s State) {
	if r.fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fn(s)
}
