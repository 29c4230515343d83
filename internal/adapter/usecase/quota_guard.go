package usecase

import (
	"context"
	"fmt"

	"bulkmailer/internal/core/port"
)

// Reservation is the outcome of a quota pre-check. It carries the current
// remaining allowance so a rejection can be reported to the tenant.
type Reservation struct {
	OK        bool
	Remaining int64
	Limit     int64
}

// QuotaGuard checks and debits a tenant's send allowance. The read in
// TryReserve and the increment in Commit may race across concurrent
// campaigns; correctness comes from the store performing the increment as a
// single conditional update, never a blind overwrite.
type QuotaGuard struct {
	store port.QuotaStore
}

func NewQuotaGuard(store port.QuotaStore) *QuotaGuard {
	return &QuotaGuard{store: store}
}

// TryReserve reports whether count sends fit in the tenant's remaining
// allowance. It never mutates the account.
func (g *QuotaGuard) TryReserve(ctx context.Context, tenantID, messageType string, count int64) (Reservation, error) {
	account, err := g.store.Get(ctx, tenantID, messageType)
	if err != nil {
		return Reservation{}, fmt.Errorf("reading quota account: %w", err)
	}
	if account == nil {
		return Reservation{}, port.ErrQuotaNotConfigured
	}
	r := Reservation{Remaining: account.Remaining(), Limit: account.Limit}
	r.OK = r.Remaining >= count
	return r, nil
}

// Commit charges the quota for sends actually attempted. Quota tracks
// attempts, not confirmed deliveries; delivery confirmation is asynchronous
// upstream.
func (g *QuotaGuard) Commit(ctx context.Context, tenantID, messageType string, count int64) error {
	if count == 0 {
		return nil
	}
	return g.store.Debit(ctx, tenantID, messageType, count)
}
