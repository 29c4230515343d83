package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bulkmailer/internal/core/domain"
)

// CampaignRepository implements port.CampaignStore using pgxpool.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `id, tenant_id, subject, body_html, from_address, addressing_mode,
	recipients, segment_name, is_scheduled, scheduled_at, status,
	total_recipients, total_delivered, created_at, updated_at`

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(
		&c.ID,
		&c.TenantID,
		&c.Subject,
		&c.BodyHTML,
		&c.FromAddress,
		&c.AddressingMode,
		&c.Recipients,
		&c.SegmentName,
		&c.IsScheduled,
		&c.ScheduledAt,
		&c.Status,
		&c.TotalRecipients,
		&c.TotalDelivered,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO campaigns
	(id, tenant_id, subject, body_html, from_address, addressing_mode, recipients,
	 segment_name, is_scheduled, scheduled_at, status, total_recipients,
	 total_delivered, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		c.ID, c.TenantID, c.Subject, c.BodyHTML, c.FromAddress, c.AddressingMode,
		c.Recipients, c.SegmentName, c.IsScheduled, c.ScheduledAt, c.Status,
		c.TotalRecipients, c.TotalDelivered, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *CampaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CampaignRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]domain.Campaign, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM campaigns WHERE tenant_id = $1`, tenantID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+`
FROM campaigns WHERE tenant_id = $1
ORDER BY created_at DESC LIMIT $2 OFFSET $3`, tenantID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	campaigns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		c, err := scanCampaign(row)
		if err != nil {
			return domain.Campaign{}, err
		}
		return *c, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

func (r *CampaignRepository) Update(ctx context.Context, c *domain.Campaign) error {
	c.UpdatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, `UPDATE campaigns SET
	subject = $2, body_html = $3, from_address = $4, addressing_mode = $5,
	recipients = $6, segment_name = $7, is_scheduled = $8, scheduled_at = $9,
	status = $10, total_recipients = $11, total_delivered = $12, updated_at = $13
WHERE id = $1`,
		c.ID, c.Subject, c.BodyHTML, c.FromAddress, c.AddressingMode,
		c.Recipients, c.SegmentName, c.IsScheduled, c.ScheduledAt,
		c.Status, c.TotalRecipients, c.TotalDelivered, c.UpdatedAt)
	return err
}

func (r *CampaignRepository) SetStatus(ctx context.Context, id string, status domain.CampaignStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	return err
}

func (r *CampaignRepository) DueScheduled(ctx context.Context, until time.Time) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+`
FROM campaigns
WHERE is_scheduled AND status = 'scheduled' AND scheduled_at <= $1
ORDER BY scheduled_at`, until)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		c, err := scanCampaign(row)
		if err != nil {
			return domain.Campaign{}, err
		}
		return *c, nil
	})
}
