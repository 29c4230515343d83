package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bulkmailer/internal/core/domain"
	"bulkmailer/internal/core/port"
)

// QuotaRepository implements port.QuotaStore. The debit is a single
// conditional UPDATE so concurrent campaigns for one tenant converge to a
// correct total even when their pre-check reads raced.
type QuotaRepository struct {
	pool *pgxpool.Pool
}

func NewQuotaRepository(pool *pgxpool.Pool) *QuotaRepository {
	return &QuotaRepository{pool: pool}
}

func (r *QuotaRepository) Get(ctx context.Context, tenantID, messageType string) (*domain.QuotaAccount, error) {
	var q domain.QuotaAccount
	err := r.pool.QueryRow(ctx, `SELECT tenant_id, message_type, send_limit, used, updated_at
FROM quota_accounts WHERE tenant_id = $1 AND message_type = $2`, tenantID, messageType).
		Scan(&q.TenantID, &q.MessageType, &q.Limit, &q.Used, &q.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuotaRepository) Debit(ctx context.Context, tenantID, messageType string, n int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE quota_accounts
SET used = used + $3, updated_at = now()
WHERE tenant_id = $1 AND message_type = $2 AND used + $3 <= send_limit`,
		tenantID, messageType, n)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	// Distinguish a missing account from an exhausted one.
	account, err := r.Get(ctx, tenantID, messageType)
	if err != nil {
		return err
	}
	if account == nil {
		return port.ErrQuotaNotConfigured
	}
	return port.ErrQuotaExceeded
}

func (r *QuotaRepository) Upsert(ctx context.Context, account *domain.QuotaAccount) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO quota_accounts (tenant_id, message_type, send_limit, used, updated_at)
VALUES ($1,$2,$3,$4,now())
ON CONFLICT (tenant_id, message_type)
DO UPDATE SET send_limit = EXCLUDED.send_limit, updated_at = now()`,
		account.TenantID, account.MessageType, account.Limit, account.Used)
	return err
}
