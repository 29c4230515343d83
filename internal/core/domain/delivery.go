package domain

import "time"

// Affirmation records the outcome for one recipient of one dispatch run.
type Affirmation string

const (
	// AffirmationDelivered means the transport accepted the message.
	AffirmationDelivered Affirmation = "delivered"
	// AffirmationConsentBlocked means the recipient was withheld because the
	// consent registry reported no opt-in.
	AffirmationConsentBlocked Affirmation = "iys_failed"
	// AffirmationFailed means the transport call covering the recipient failed.
	AffirmationFailed Affirmation = "failed"
	// AffirmationOpened is set by the open-tracking endpoint on a delivered
	// entry the first time an open signal arrives.
	AffirmationOpened Affirmation = "opened"
)

// DeliveryLogEntry is one append-only outcome row per (campaign, recipient)
// per dispatch attempt. IDs are freshly generated per run, so re-running a
// failed campaign writes new rows alongside the prior attempt's.
type DeliveryLogEntry struct {
	ID          string
	CampaignID  string
	TenantID    string
	Recipient   string
	Affirmation Affirmation
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
