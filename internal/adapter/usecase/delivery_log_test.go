package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bulkmailer/internal/core/domain"
	"bulkmailer/internal/core/port"
)

func logEntries(n int) []domain.DeliveryLogEntry {
	entries := make([]domain.DeliveryLogEntry, n)
	for i := range entries {
		entries[i] = domain.DeliveryLogEntry{
			ID:          fmt.Sprintf("entry-%03d", i),
			CampaignID:  "camp-1",
			Affirmation: domain.AffirmationDelivered,
		}
	}
	return entries
}

func TestAppendSplitsIntoBatches(t *testing.T) {
	store := &mockDeliveryLogStore{}
	store.On("AppendBatch", mock.Anything, mock.Anything).Return(nil)
	w := NewDeliveryLogWriter(store, 25)

	require.NoError(t, w.Append(context.Background(), logEntries(60)))
	assert.Equal(t, []int{25, 25, 10}, store.batches)
	assert.Len(t, store.entries, 60)
}

func TestAppendEmptyIsNoop(t *testing.T) {
	store := &mockDeliveryLogStore{}
	w := NewDeliveryLogWriter(store, 25)
	require.NoError(t, w.Append(context.Background(), nil))
	store.AssertNotCalled(t, "AppendBatch", mock.Anything, mock.Anything)
}

func TestAppendFailureReportsWritten(t *testing.T) {
	store := &mockDeliveryLogStore{}
	store.On("AppendBatch", mock.Anything, mock.Anything).Return(nil).Times(2)
	store.On("AppendBatch", mock.Anything, mock.Anything).Return(errors.New("copy failed"))
	w := NewDeliveryLogWriter(store, 25)

	err := w.Append(context.Background(), logEntries(60))
	var logErr *port.LogWriteError
	require.ErrorAs(t, err, &logErr)
	// the first two batches stand
	assert.Equal(t, 50, logErr.Written)
	assert.Len(t, store.entries, 50)
}

func TestNewDeliveryLogWriterDefaultBatchSize(t *testing.T) {
	store := &mockDeliveryLogStore{}
	store.On("AppendBatch", mock.Anything, mock.Anything).Return(nil)
	w := NewDeliveryLogWriter(store, 0)

	require.NoError(t, w.Append(context.Background(), logEntries(30)))
	assert.Equal(t, []int{25, 5}, store.batches)
}
