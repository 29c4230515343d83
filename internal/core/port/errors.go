package port

import (
	"errors"
	"fmt"
)

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrTenantNotFound   = errors.New("tenant settings not found")
	ErrLinkNotFound     = errors.New("tracked link not found")

	// ErrQuotaExceeded is returned by QuotaStore.Debit when the conditional
	// increment would push Used past Limit.
	ErrQuotaExceeded = errors.New("quota exceeded")
	// ErrQuotaNotConfigured is returned when no quota account exists for the
	// tenant and message type. Absence denies sending rather than allowing it.
	ErrQuotaNotConfigured = errors.New("quota account not configured")
	// ErrConsentConfigUnavailable is returned when the tenant's consent
	// configuration is missing while the consent check is enabled. The caller
	// must not treat this as "all consented".
	ErrConsentConfigUnavailable = errors.New("consent configuration unavailable")
)

// ResolutionError reports that a campaign's recipient source was unreachable
// or returned malformed data. The run aborts before any send.
type ResolutionError struct {
	SegmentName string
	Err         error
}

func (e *ResolutionError) Error() string {
	if e.SegmentName != "" {
		return fmt.Sprintf("resolving segment %q: %v", e.SegmentName, e.Err)
	}
	return fmt.Sprintf("resolving recipients: %v", e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ConsentCheckError reports a consent registry failure. It is not retried by
// the filter; retry policy belongs to the caller of the dispatch run.
type ConsentCheckError struct {
	Err error
}

func (e *ConsentCheckError) Error() string {
	return fmt.Sprintf("consent check failed: %v", e.Err)
}

func (e *ConsentCheckError) Unwrap() error { return e.Err }

// QuotaExceededError is the business-visible rejection of a dispatch run.
// The campaign remains in its prior state and can be retried once quota
// frees up. Remaining lets the caller inform the tenant.
type QuotaExceededError struct {
	TenantID  string
	Requested int64
	Remaining int64
	Limit     int64
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded for tenant %s: requested %d, remaining %d of %d",
		e.TenantID, e.Requested, e.Remaining, e.Limit)
}

func (e *QuotaExceededError) Is(target error) bool { return target == ErrQuotaExceeded }

// LogWriteError reports a delivery-log batch failure. Batches written before
// the failure stand; Written counts the entries already persisted.
type LogWriteError struct {
	Written int
	Err     error
}

func (e *LogWriteError) Error() string {
	return fmt.Sprintf("delivery log write failed after %d entries: %v", e.Written, e.Err)
}

func (e *LogWriteError) Unwrap() error { return e.Err }
