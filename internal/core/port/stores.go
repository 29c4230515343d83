package port

import (
	"context"
	"time"

	"bulkmailer/internal/core/domain"
)

// CampaignStore is the persistence port for campaigns. Implementations
// return (nil, nil) when a campaign does not exist.
type CampaignStore interface {
	Create(ctx context.Context, c *domain.Campaign) error
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	// List returns a tenant's campaigns ordered by creation time descending,
	// along with the total count for pagination.
	List(ctx context.Context, tenantID string, limit, offset int) ([]domain.Campaign, int, error)
	Update(ctx context.Context, c *domain.Campaign) error
	SetStatus(ctx context.Context, id string, status domain.CampaignStatus) error
	// DueScheduled returns scheduled campaigns whose scheduled_at falls at or
	// before the given instant.
	DueScheduled(ctx context.Context, until time.Time) ([]domain.Campaign, error)
}

// QuotaStore is the persistence port for quota accounts.
type QuotaStore interface {
	Get(ctx context.Context, tenantID, messageType string) (*domain.QuotaAccount, error)
	// Debit increments used by n only when used + n <= limit, as a single
	// conditional update. It returns ErrQuotaExceeded when the condition
	// fails and ErrQuotaNotConfigured when no account exists.
	Debit(ctx context.Context, tenantID, messageType string, n int64) error
	Upsert(ctx context.Context, account *domain.QuotaAccount) error
}

// DeliveryLogStore persists delivery outcome rows. AppendBatch writes one
// bounded batch; splitting into batches is the caller's concern.
type DeliveryLogStore interface {
	AppendBatch(ctx context.Context, entries []domain.DeliveryLogEntry) error
	// MarkOpened transitions a delivered entry to opened. It reports whether
	// the row changed; repeated opens are no-ops.
	MarkOpened(ctx context.Context, entryID string) (bool, error)
}

// LinkStore persists tracked links created at rewrite time.
type LinkStore interface {
	CreateBatch(ctx context.Context, links []domain.TrackedLink) error
	GetByID(ctx context.Context, id string) (*domain.TrackedLink, error)
	IncrementClick(ctx context.Context, id string) error
}

// TenantStore persists per-tenant delivery and consent configuration.
type TenantStore interface {
	Settings(ctx context.Context, tenantID string) (*domain.TenantSettings, error)
	Upsert(ctx context.Context, settings *domain.TenantSettings) error
}
