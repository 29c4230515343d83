package domain

import "time"

// TrackedLink is an outbound link rewritten to route through the click
// redirect endpoint. ClickCount is incremented only by that endpoint.
type TrackedLink struct {
	ID           string
	CampaignID   string
	OriginalHref string
	ClickCount   int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
