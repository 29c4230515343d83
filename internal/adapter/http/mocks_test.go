package httpadapter

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"bulkmailer/internal/core/domain"
	"bulkmailer/internal/core/port"
)

type mockDispatcher struct{ mock.Mock }

func (m *mockDispatcher) Dispatch(ctx context.Context, campaignID string) (*port.DispatchResult, error) {
	args := m.Called(ctx, campaignID)
	r, _ := args.Get(0).(*port.DispatchResult)
	return r, args.Error(1)
}

type mockCampaignStore struct{ mock.Mock }

func (m *mockCampaignStore) Create(ctx context.Context, c *domain.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCampaignStore) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Campaign)
	return c, args.Error(1)
}

func (m *mockCampaignStore) List(ctx context.Context, tenantID string, limit, offset int) ([]domain.Campaign, int, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	cs, _ := args.Get(0).([]domain.Campaign)
	return cs, args.Int(1), args.Error(2)
}

func (m *mockCampaignStore) Update(ctx context.Context, c *domain.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCampaignStore) SetStatus(ctx context.Context, id string, status domain.CampaignStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockCampaignStore) DueScheduled(ctx context.Context, until time.Time) ([]domain.Campaign, error) {
	args := m.Called(ctx, until)
	cs, _ := args.Get(0).([]domain.Campaign)
	return cs, args.Error(1)
}

type mockLinkStore struct{ mock.Mock }

func (m *mockLinkStore) CreateBatch(ctx context.Context, links []domain.TrackedLink) error {
	return m.Called(ctx, links).Error(0)
}

func (m *mockLinkStore) GetByID(ctx context.Context, id string) (*domain.TrackedLink, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*domain.TrackedLink)
	return l, args.Error(1)
}

func (m *mockLinkStore) IncrementClick(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockDeliveryLogStore struct{ mock.Mock }

func (m *mockDeliveryLogStore) AppendBatch(ctx context.Context, entries []domain.DeliveryLogEntry) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *mockDeliveryLogStore) MarkOpened(ctx context.Context, entryID string) (bool, error) {
	args := m.Called(ctx, entryID)
	return args.Bool(0), args.Error(1)
}

type mockQuotaStore struct{ mock.Mock }

func (m *mockQuotaStore) Get(ctx context.Context, tenantID, messageType string) (*domain.QuotaAccount, error) {
	args := m.Called(ctx, tenantID, messageType)
	q, _ := args.Get(0).(*domain.QuotaAccount)
	return q, args.Error(1)
}

func (m *mockQuotaStore) Debit(ctx context.Context, tenantID, messageType string, n int64) error {
	return m.Called(ctx, tenantID, messageType, n).Error(0)
}

func (m *mockQuotaStore) Upsert(ctx context.Context, account *domain.QuotaAccount) error {
	return m.Called(ctx, account).Error(0)
}

type mockTenantStore struct{ mock.Mock }

func (m *mockTenantStore) Settings(ctx context.Context, tenantID string) (*domain.TenantSettings, error) {
	args := m.Called(ctx, tenantID)
	s, _ := args.Get(0).(*domain.TenantSettings)
	return s, args.Error(1)
}

func (m *mockTenantStore) Upsert(ctx context.Context, settings *domain.TenantSettings) error {
	return m.Called(ctx, settings).Error(0)
}
