package port

import (
	"context"

	"bulkmailer/internal/core/domain"
)

// SegmentDirectory resolves a named segment to its member addresses. It is
// an external collaborator; transport errors propagate to the caller, which
// wraps them in a ResolutionError.
type SegmentDirectory interface {
	Members(ctx context.Context, tenantID, segmentName string) ([]string, error)
}

// ConsentQuery carries the tenant's registry configuration for one
// multi-recipient status call.
type ConsentQuery struct {
	IYSCode       int
	BrandCode     int
	RecipientType string
}

// ConsentRegistry answers whether addresses have opted in to commercial
// email. ConsentedSubset returns the consented subset of the given
// recipients in a single call.
type ConsentRegistry interface {
	ConsentedSubset(ctx context.Context, q ConsentQuery, recipients []string) ([]string, error)
}

// OutboundMessage is one transport call covering a chunk of recipients.
type OutboundMessage struct {
	From       string
	Subject    string
	HTML       string
	Recipients []string
}

// Transport is the pluggable "send a message to N recipients" capability.
// Exactly one implementation is selected per tenant at configuration time.
type Transport interface {
	Send(ctx context.Context, msg OutboundMessage) (receiptID string, err error)
}

// TransportSelector builds the Transport configured for a tenant.
type TransportSelector interface {
	ForTenant(settings *domain.TenantSettings) (Transport, error)
}

// RewriteResult is the outcome of one link-rewriting pass. Links carry
// freshly generated ids; CampaignID is assigned by the dispatcher before
// persisting.
type RewriteResult struct {
	HTML  string
	Links []domain.TrackedLink
}

// MarkupRewriter replaces trackable links in message markup with
// indirection targets. Implementations must be permissive: unparsable
// fragments pass through unmodified rather than aborting the send.
type MarkupRewriter interface {
	Rewrite(markup string) (RewriteResult, error)
}

// JobPublisher hands a campaign to the dispatch worker.
type JobPublisher interface {
	PublishDispatch(ctx context.Context, campaignID string) error
}
