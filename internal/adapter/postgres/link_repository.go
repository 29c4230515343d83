package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bulkmailer/internal/core/domain"
	"bulkmailer/internal/core/port"
)

// LinkRepository implements port.LinkStore.
type LinkRepository struct {
	pool *pgxpool.Pool
}

func NewLinkRepository(pool *pgxpool.Pool) *LinkRepository {
	return &LinkRepository{pool: pool}
}

func (r *LinkRepository) CreateBatch(ctx context.Context, links []domain.TrackedLink) error {
	if len(links) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, l := range links {
		batch.Queue(`INSERT INTO tracked_links (id, campaign_id, original_href, click_count, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6)`,
			l.ID, l.CampaignID, l.OriginalHref, l.ClickCount, l.CreatedAt, l.UpdatedAt)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

func (r *LinkRepository) GetByID(ctx context.Context, id string) (*domain.TrackedLink, error) {
	var l domain.TrackedLink
	err := r.pool.QueryRow(ctx, `SELECT id, campaign_id, original_href, click_count, created_at, updated_at
FROM tracked_links WHERE id = $1`, id).
		Scan(&l.ID, &l.CampaignID, &l.OriginalHref, &l.ClickCount, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LinkRepository) IncrementClick(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tracked_links SET click_count = click_count + 1, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrLinkNotFound
	}
	return nil
}
