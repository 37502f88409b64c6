package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"balangay/pkg/platform/audit/store/postgres"
)

// Producer is the kafka side of the relay.
type Producer interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// Worker relays unpublished audit outbox rows to kafka. The outbox table is
// the durability boundary: a crash between publish and mark re-publishes the
// entry, so consumers must tolerate duplicates.
type Worker struct {
	store    *postgres.Store
	producer Producer
	logger   *slog.Logger
	interval time.Duration
	batch    int
}

// New creates a relay worker polling at the given interval.
func New(store *postgres.Store, producer Producer, logger *slog.Logger, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Worker{
		store:    store,
		producer: producer,
		logger:   logger,
		interval: interval,
		batch:    100,
	}
}

// Run polls until the context ends. Relay errors are logged and retried on
// the next tick; the worker itself only stops on context cancellation.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.relayOnce(ctx); err != nil {
				w.logger.Error("audit outbox relay failed", "error", err)
			}
		}
	}
}

func (w *Worker) relayOnce(ctx context.Context) error {
	entries, err := w.store.FetchUnpublished(ctx, w.batch)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	published := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		if err := w.producer.Publish(ctx, entry.ID.String(), entry.Payload); err != nil {
			// Stop at the first failure to preserve ordering; the rest stay
			// unpublished for the next tick.
			break
		}
		published = append(published, entry.ID)
	}
	return w.store.MarkPublished(ctx, published)
}
