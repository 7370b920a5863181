// Package worker runs the background side of chain reconciliation: a
// queue consumer that reacts to freshly committed entries and a cron
// sweep that picks up anything the queue missed.
package worker

import (
	"context"
	"sync"
	"time"

	"tokenvine/internal/core/ports"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const dequeueTimeout = 5 * time.Second

// SyncWorker drives the chain reconciler outside the request path.
type SyncWorker struct {
	reconciler ports.ReconcilerService
	queue      ports.SyncQueue
	schedule   string
	log        zerolog.Logger

	cron   *cron.Cron
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncWorker creates a worker. An empty schedule disables the cron
// sweep; a nil queue disables the consumer.
func NewSyncWorker(reconciler ports.ReconcilerService, queue ports.SyncQueue, schedule string, log zerolog.Logger) *SyncWorker {
	return &SyncWorker{
		reconciler: reconciler,
		queue:      queue,
		schedule:   schedule,
		log:        log,
	}
}

// Start launches the queue consumer goroutine and the cron sweep.
func (w *SyncWorker) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	if w.queue != nil {
		w.wg.Add(1)
		go w.consumeLoop(ctx)
	}

	if w.schedule != "" {
		w.cron = cron.New()
		if _, err := w.cron.AddFunc(w.schedule, func() { w.runBatch(ctx) }); err != nil {
			cancel()
			return err
		}
		w.cron.Start()
		w.log.Info().Str("schedule", w.schedule).Msg("chain sync sweep scheduled")
	}

	return nil
}

// Stop shuts the worker down and waits for in-flight work to finish.
func (w *SyncWorker) Stop() {
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *SyncWorker) consumeLoop(ctx context.Context) {
	defer w.wg.Done()
	w.log.Info().Msg("chain sync queue consumer started")

	for {
		entryID, ok, err := w.queue.Dequeue(ctx, dequeueTimeout)
		if ctx.Err() != nil {
			w.log.Info().Msg("chain sync queue consumer stopped")
			return
		}
		if err != nil {
			w.log.Warn().Err(err).Msg("sync queue dequeue failed")
			// Back off so a dead Redis does not spin this loop.
			select {
			case <-time.After(dequeueTimeout):
			case <-ctx.Done():
				return
			}
			continue
		}
		if !ok {
			continue
		}

		if err := w.reconciler.SyncEntry(ctx, entryID); err != nil {
			w.log.Error().Err(err).Str("entry_id", entryID.String()).Msg("queued entry sync failed")
		}
	}
}

func (w *SyncWorker) runBatch(ctx context.Context) {
	report, err := w.reconciler.ProcessPendingBatch(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("scheduled chain sync sweep failed")
		return
	}
	if report.Synced > 0 || report.Failed > 0 || report.Skipped > 0 {
		w.log.Info().
			Int("synced", report.Synced).
			Int("failed", report.Failed).
			Int("skipped", report.Skipped).
			Msg("scheduled chain sync sweep completed")
	}
}
