package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bulkmailer/internal/core/domain"
)

// DeliveryLogRepository implements port.DeliveryLogStore. Rows are
// append-only; the only mutation is the idempotent delivered -> opened
// transition driven by the open-tracking endpoint.
type DeliveryLogRepository struct {
	pool *pgxpool.Pool
}

func NewDeliveryLogRepository(pool *pgxpool.Pool) *DeliveryLogRepository {
	return &DeliveryLogRepository{pool: pool}
}

func (r *DeliveryLogRepository) AppendBatch(ctx context.Context, entries []domain.DeliveryLogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	_, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{"delivery_logs"},
		[]string{"id", "campaign_id", "tenant_id", "recipient", "affirmation", "created_at", "updated_at"},
		pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
			e := entries[i]
			return []any{e.ID, e.CampaignID, e.TenantID, e.Recipient, string(e.Affirmation), e.CreatedAt, e.UpdatedAt}, nil
		}),
	)
	return err
}

func (r *DeliveryLogRepository) MarkOpened(ctx context.Context, entryID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE delivery_logs
SET affirmation = $2, updated_at = now()
WHERE id = $1 AND affirmation = $3`,
		entryID, domain.AffirmationOpened, domain.AffirmationDelivered)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
