package syncer

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// AutoSync starts a recurring timer that runs a sync pass every interval.
// The timer fires on a fixed wall-clock schedule regardless of pass
// duration; a tick that lands while the previous pass is still running is
// observed as InProgress and skipped, never queued. Calling AutoSync again
// replaces the previous timer.
func (c *CloudSync[M, D]) AutoSync(interval time.Duration, progress ProgressFunc) error {
	ticker := time.NewTicker(interval)
	stopCh := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			ticker.Stop()
			close(stopCh)
		})
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		stop()
		return &DisposedError{Op: "AutoSync"}
	}
	prev := c.stopTimer
	c.stopTimer = stop
	c.mu.Unlock()

	if prev != nil {
		prev()
	}

	go func() {
		for {
			select {
			case <-ticker.C:
				// Pass errors surface through the progress callback;
				// without one they are only logged here.
				if err := c.syncPass(context.Background(), progress, false); err != nil {
					c.log.Warn("auto sync pass failed", zap.Error(err))
				}
			case <-stopCh:
				return
			}
		}
	}()

	c.log.Debug("auto sync started", zap.Duration("interval", interval))
	return nil
}

// StopAutoSync cancels the recurring timer and any in-flight pass. It
// returns once the in-flight pass, if any, has actually stopped. Safe to
// call when auto-sync was never started; idempotent.
func (c *CloudSync[M, D]) StopAutoSync(ctx context.Context) error {
	c.mu.Lock()
	stop := c.stopTimer
	c.stopTimer = nil
	c.mu.Unlock()

	if stop != nil {
		stop()
	}
	return c.CancelSync(ctx)
}

// CancelSync requests cancellation of the currently running pass and waits
// until the pass has observed the request and exited (emitting
// SyncCancelled). A no-op when no pass is running. Cancellation is
// cooperative: an in-flight adapter call is not aborted, but no further
// adapter call starts.
func (c *CloudSync[M, D]) CancelSync(ctx context.Context) error {
	c.mu.Lock()
	cancel := c.cancelPass
	done := c.passDone
	c.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dispose stops auto-sync, cancels any running pass and marks the engine
// unusable. Subsequent Sync and AutoSync calls fail with a DisposedError.
// Idempotent.
func (c *CloudSync[M, D]) Dispose(ctx context.Context) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil
	}
	c.disposed = true
	c.mu.Unlock()

	err := c.StopAutoSync(ctx)
	c.log.Debug("engine disposed")
	return err
}
