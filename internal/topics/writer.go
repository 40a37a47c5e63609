// This file implements snapshot persistence and the sync strategies that
// decide when a pending snapshot reaches the KV backend.
package topics

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/topics/pkg/types"
)

// writer holds at most one pending snapshot. Newer snapshots replace older
// ones, so a burst of mutations costs one write.
type writer struct {
	kv       types.KV
	logger   *zap.Logger
	strategy string

	mu      sync.Mutex // protects pending, dirty, closed
	pending string
	dirty   bool
	closed  bool

	writeMu sync.Mutex // serializes Set calls so a stale snapshot never lands last

	wake chan struct{} // async only
	done chan struct{} // async only
}

func newWriter(kv types.KV, logger *zap.Logger, strategy string) *writer {
	w := &writer{
		kv:       kv,
		logger:   logger,
		strategy: strategy,
	}
	if strategy == types.SyncAsync {
		w.wake = make(chan struct{}, 1)
		w.done = make(chan struct{})
		go w.loop()
	}
	return w
}

// schedule records snapshot as the latest state and writes it according to
// the strategy. It never returns an error: failures are logged.
func (w *writer) schedule(snapshot string) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.pending = snapshot
	w.dirty = true
	if w.strategy == types.SyncAsync {
		// Sent under mu so close cannot close wake in between.
		select {
		case w.wake <- struct{}{}:
		default:
			// A wake-up is already queued; it will pick up this snapshot.
		}
	}
	w.mu.Unlock()

	if w.strategy == types.SyncImmediate {
		_ = w.flush()
	}
}

// loop runs the async strategy until close.
func (w *writer) loop() {
	defer close(w.done)
	for range w.wake {
		_ = w.flush()
	}
}

// flush writes the pending snapshot, if any.
func (w *writer) flush() error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	w.mu.Lock()
	if !w.dirty {
		w.mu.Unlock()
		return nil
	}
	snapshot := w.pending
	w.dirty = false
	w.mu.Unlock()

	if err := w.kv.Set(types.TopicsKey, snapshot); err != nil {
		w.logger.Error("saving topics snapshot failed",
			zap.String("key", types.TopicsKey),
			zap.String("sync_strategy", w.strategy),
			zap.Error(err))
		return fmt.Errorf("save %s: %w", types.TopicsKey, err)
	}
	w.logger.Debug("saved topics snapshot",
		zap.String("key", types.TopicsKey),
		zap.Int("bytes", len(snapshot)))
	return nil
}

// close stops the async loop and writes whatever is still pending.
// Idempotent.
func (w *writer) close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	if w.wake != nil {
		close(w.wake)
		<-w.done
	}
	return w.flush()
}
