package usecase

import (
	"context"

	"bulkmailer/internal/core/domain"
	"bulkmailer/internal/core/port"
)

// DeliveryLogWriter appends outcome entries in bounded batches. There is no
// multi-batch transaction: a failure on one batch surfaces as a
// LogWriteError but does not undo batches already written.
type DeliveryLogWriter struct {
	store     port.DeliveryLogStore
	batchSize int
}

func NewDeliveryLogWriter(store port.DeliveryLogStore, batchSize int) *DeliveryLogWriter {
	if batchSize <= 0 {
		batchSize = 25
	}
	return &DeliveryLogWriter{store: store, batchSize: batchSize}
}

// Append writes the entries in batches of the configured size. An empty
// input performs no writes.
func (w *DeliveryLogWriter) Append(ctx context.Context, entries []domain.DeliveryLogEntry) error {
	for start := 0; start < len(entries); start += w.batchSize {
		end := start + w.batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := w.store.AppendBatch(ctx, entries[start:end]); err != nil {
			return &port.LogWriteError{Written: start, Err: err}
		}
	}
	return nil
}
