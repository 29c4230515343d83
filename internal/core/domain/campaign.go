package domain

import "time"

// AddressingMode selects how a campaign's recipient set is resolved.
type AddressingMode string

const (
	// AddressingExplicit means the campaign carries its recipient list inline.
	AddressingExplicit AddressingMode = "explicit_list"
	// AddressingSegment means recipients are resolved from a named segment
	// in the external segment directory.
	AddressingSegment AddressingMode = "segment"
)

// CampaignStatus tracks a campaign through its lifecycle.
type CampaignStatus string

const (
	StatusDraft     CampaignStatus = "draft"
	StatusScheduled CampaignStatus = "scheduled"
	StatusQueued    CampaignStatus = "queued"
	StatusSending   CampaignStatus = "sending"
	StatusCompleted CampaignStatus = "completed"
	StatusFailed    CampaignStatus = "failed"
	StatusArchived  CampaignStatus = "archived"
)

// Campaign represents one email-sending request, immediate or scheduled.
// The recipient set is immutable once dispatch begins.
type Campaign struct {
	ID              string
	TenantID        string
	Subject         string
	BodyHTML        string
	FromAddress     string
	AddressingMode  AddressingMode
	Recipients      []string // only for AddressingExplicit
	SegmentName     string   // only for AddressingSegment
	IsScheduled     bool
	ScheduledAt     *time.Time
	Status          CampaignStatus
	TotalRecipients int
	TotalDelivered  int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Dispatchable reports whether a dispatch run may start for the campaign's
// current status. Completed and archived campaigns are final; a failed
// campaign may be re-run.
func (c *Campaign) Dispatchable() bool {
	switch c.Status {
	case StatusDraft, StatusScheduled, StatusQueued, StatusFailed:
		return true
	default:
		return false
	}
}
