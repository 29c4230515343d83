package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bulkmailer/internal/core/domain"
)

// TenantRepository implements port.TenantStore.
type TenantRepository struct {
	pool *pgxpool.Pool
}

func NewTenantRepository(pool *pgxpool.Pool) *TenantRepository {
	return &TenantRepository{pool: pool}
}

func (r *TenantRepository) Settings(ctx context.Context, tenantID string) (*domain.TenantSettings, error) {
	var s domain.TenantSettings
	err := r.pool.QueryRow(ctx, `SELECT tenant_id, provider, from_address,
	smtp_host, smtp_port, smtp_user, smtp_password, sendgrid_key,
	consent_check_enabled, iys_code, brand_code, recipient_type,
	created_at, updated_at
FROM tenant_settings WHERE tenant_id = $1`, tenantID).
		Scan(&s.TenantID, &s.Provider, &s.FromAddress,
			&s.SMTPHost, &s.SMTPPort, &s.SMTPUser, &s.SMTPPassword, &s.SendGridKey,
			&s.ConsentCheckEnabled, &s.IYSCode, &s.BrandCode, &s.RecipientType,
			&s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *TenantRepository) Upsert(ctx context.Context, s *domain.TenantSettings) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO tenant_settings
	(tenant_id, provider, from_address, smtp_host, smtp_port, smtp_user,
	 smtp_password, sendgrid_key, consent_check_enabled, iys_code, brand_code,
	 recipient_type, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,now(),now())
ON CONFLICT (tenant_id) DO UPDATE SET
	provider = EXCLUDED.provider,
	from_address = EXCLUDED.from_address,
	smtp_host = EXCLUDED.smtp_host,
	smtp_port = EXCLUDED.smtp_port,
	smtp_user = EXCLUDED.smtp_user,
	smtp_password = EXCLUDED.smtp_password,
	sendgrid_key = EXCLUDED.sendgrid_key,
	consent_check_enabled = EXCLUDED.consent_check_enabled,
	iys_code = EXCLUDED.iys_code,
	brand_code = EXCLUDED.brand_code,
	recipient_type = EXCLUDED.recipient_type,
	updated_at = now()`,
		s.TenantID, s.Provider, s.FromAddress, s.SMTPHost, s.SMTPPort, s.SMTPUser,
		s.SMTPPassword, s.SendGridKey, s.ConsentCheckEnabled, s.IYSCode, s.BrandCode,
		s.RecipientType)
	return err
}
