package port

import "context"

// DispatchResult is the completion summary of a dispatch run. It is
// returned even when some chunks failed; only pre-send errors (resolution,
// consent, quota) abort the run without a result.
type DispatchResult struct {
	CampaignID string
	Resolved   int
	Delivered  int
	Blocked    int
	Failed     int
	Links      int
	// LogIncomplete is set when a delivery-log batch write failed after
	// sending. Batches written before the failure stand.
	LogIncomplete bool
}

// Dispatcher runs the campaign dispatch pipeline end to end. This is the
// primary inbound port; it is invoked by the HTTP layer for on-demand sends
// and by the worker for scheduled ones.
type Dispatcher interface {
	Dispatch(ctx context.Context, campaignID string) (*DispatchResult, error)
}
