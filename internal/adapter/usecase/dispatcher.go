package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bulkmailer/internal/core/domain"
	"bulkmailer/internal/core/port"
)

// Dispatcher orchestrates one campaign dispatch run: resolve recipients,
// consent-check, quota-check, rewrite links, send in bounded chunks and
// record per-recipient outcomes. It is the only component with
// cross-cutting failure handling: pre-send failures abort the run with no
// side effects, while chunk failures after sending begins are isolated so
// one bad recipient or transient provider error never discards work done
// for the others.
type Dispatcher struct {
	campaigns  port.CampaignStore
	tenants    port.TenantStore
	resolver   *RecipientResolver
	consent    *ConsentFilter
	quota      *QuotaGuard
	rewriter   port.MarkupRewriter
	links      port.LinkStore
	deliveries *DeliveryLogWriter
	transports port.TransportSelector
	logger     *slog.Logger

	chunkSize    int
	chunkTimeout time.Duration
}

// DispatcherParams collects the collaborators of a Dispatcher. All fields
// are required except ChunkSize and ChunkTimeout, which fall back to the
// defaults of 100 recipients and 30 seconds per transport call.
type DispatcherParams struct {
	Campaigns    port.CampaignStore
	Tenants      port.TenantStore
	Resolver     *RecipientResolver
	Consent      *ConsentFilter
	Quota        *QuotaGuard
	Rewriter     port.MarkupRewriter
	Links        port.LinkStore
	Deliveries   *DeliveryLogWriter
	Transports   port.TransportSelector
	Logger       *slog.Logger
	ChunkSize    int
	ChunkTimeout time.Duration
}

func NewDispatcher(p DispatcherParams) *Dispatcher {
	if p.ChunkSize <= 0 {
		p.ChunkSize = 100
	}
	if p.ChunkTimeout <= 0 {
		p.ChunkTimeout = 30 * time.Second
	}
	return &Dispatcher{
		campaigns:    p.Campaigns,
		tenants:      p.Tenants,
		resolver:     p.Resolver,
		consent:      p.Consent,
		quota:        p.Quota,
		rewriter:     p.Rewriter,
		links:        p.Links,
		deliveries:   p.Deliveries,
		transports:   p.Transports,
		logger:       p.Logger,
		chunkSize:    p.ChunkSize,
		chunkTimeout: p.ChunkTimeout,
	}
}

// Dispatch runs the pipeline for one campaign. It returns a completion
// summary once sending has been attempted, even when chunks failed. Errors
// before any send (resolution, consent, quota) abort the run and leave the
// campaign untouched so it can be retried. Post-send bookkeeping failures
// are joined into the returned error alongside a non-nil result.
func (d *Dispatcher) Dispatch(ctx context.Context, campaignID string) (*port.DispatchResult, error) {
	campaign, err := d.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("loading campaign: %w", err)
	}
	if campaign == nil {
		return nil, port.ErrCampaignNotFound
	}
	if !campaign.Dispatchable() {
		return nil, fmt.Errorf("campaign %s is %s and cannot be dispatched", campaignID, campaign.Status)
	}

	settings, err := d.tenants.Settings(ctx, campaign.TenantID)
	if err != nil {
		return nil, fmt.Errorf("loading tenant settings: %w", err)
	}
	if settings == nil {
		return nil, port.ErrTenantNotFound
	}

	recipients, err := d.resolver.Resolve(ctx, campaign)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		// An empty recipient set completes immediately; it is not a failure.
		if err = d.finishCampaign(ctx, campaign, 0, 0); err != nil {
			return nil, err
		}
		return &port.DispatchResult{CampaignID: campaignID}, nil
	}

	consented, blocked, err := d.consent.Filter(ctx, settings, recipients)
	if err != nil {
		return nil, err
	}

	reservation, err := d.quota.TryReserve(ctx, campaign.TenantID, domain.MessageTypeEmail, int64(len(consented)))
	if err != nil {
		return nil, err
	}
	if !reservation.OK {
		return nil, &port.QuotaExceededError{
			TenantID:  campaign.TenantID,
			Requested: int64(len(consented)),
			Remaining: reservation.Remaining,
			Limit:     reservation.Limit,
		}
	}

	body, trackedLinks, err := d.rewriteLinks(ctx, campaign)
	if err != nil {
		return nil, err
	}

	transport, err := d.transports.ForTenant(settings)
	if err != nil {
		return nil, fmt.Errorf("selecting transport for tenant %s: %w", campaign.TenantID, err)
	}

	if err = d.campaigns.SetStatus(ctx, campaign.ID, domain.StatusSending); err != nil {
		return nil, fmt.Errorf("marking campaign sending: %w", err)
	}

	from := campaign.FromAddress
	if from == "" {
		from = settings.FromAddress
	}

	result := &port.DispatchResult{
		CampaignID: campaignID,
		Resolved:   len(recipients),
		Blocked:    len(blocked),
		Links:      len(trackedLinks),
	}
	entries := make([]domain.DeliveryLogEntry, 0, len(recipients))
	now := time.Now().UTC()

	for _, chunk := range chunkRecipients(consented, d.chunkSize) {
		affirmation := domain.AffirmationDelivered
		if err := d.sendChunk(ctx, transport, port.OutboundMessage{
			From:       from,
			Subject:    campaign.Subject,
			HTML:       body,
			Recipients: chunk,
		}); err != nil {
			d.logger.Warn("chunk send failed",
				slog.String("campaign_id", campaignID),
				slog.Int("chunk_size", len(chunk)),
				slog.Any("error", err))
			affirmation = domain.AffirmationFailed
			result.Failed += len(chunk)
		} else {
			result.Delivered += len(chunk)
		}
		for _, rcpt := range chunk {
			entries = append(entries, newLogEntry(campaign, rcpt, affirmation, now))
		}
	}
	for _, rcpt := range blocked {
		entries = append(entries, newLogEntry(campaign, rcpt, domain.AffirmationConsentBlocked, now))
	}

	var postErrs []error
	if err = d.deliveries.Append(ctx, entries); err != nil {
		// Batches already written stand; the run still completes.
		d.logger.Error("delivery log write incomplete",
			slog.String("campaign_id", campaignID),
			slog.Any("error", err))
		result.LogIncomplete = true
		postErrs = append(postErrs, err)
	}

	if err = d.finishCampaign(ctx, campaign, len(recipients), result.Delivered); err != nil {
		postErrs = append(postErrs, err)
	}

	// Quota is charged for attempted sends regardless of per-chunk outcome.
	if err = d.quota.Commit(ctx, campaign.TenantID, domain.MessageTypeEmail, int64(len(consented))); err != nil {
		d.logger.Error("quota commit failed",
			slog.String("tenant_id", campaign.TenantID),
			slog.Any("error", err))
		postErrs = append(postErrs, fmt.Errorf("committing quota: %w", err))
	}

	return result, errors.Join(postErrs...)
}

// rewriteLinks rewrites the campaign body once and persists the tracked
// links. Rewriter errors are tolerated (the original markup is sent); a
// link-store failure before sending aborts the run, otherwise tracked hrefs
// in delivered mail would dangle.
func (d *Dispatcher) rewriteLinks(ctx context.Context, campaign *domain.Campaign) (string, []domain.TrackedLink, error) {
	rewritten, err := d.rewriter.Rewrite(campaign.BodyHTML)
	if err != nil {
		d.logger.Warn("link rewrite failed, sending original markup",
			slog.String("campaign_id", campaign.ID),
			slog.Any("error", err))
		return campaign.BodyHTML, nil, nil
	}
	if len(rewritten.Links) == 0 {
		return rewritten.HTML, nil, nil
	}
	now := time.Now().UTC()
	for i := range rewritten.Links {
		rewritten.Links[i].CampaignID = campaign.ID
		rewritten.Links[i].CreatedAt = now
		rewritten.Links[i].UpdatedAt = now
	}
	if err = d.links.CreateBatch(ctx, rewritten.Links); err != nil {
		return "", nil, fmt.Errorf("persisting tracked links: %w", err)
	}
	return rewritten.HTML, rewritten.Links, nil
}

// sendChunk performs one transport call under the chunk timeout. A timeout
// is a chunk failure, not a run-level abort.
func (d *Dispatcher) sendChunk(ctx context.Context, transport port.Transport, msg port.OutboundMessage) error {
	sendCtx, cancel := context.WithTimeout(ctx, d.chunkTimeout)
	defer cancel()
	receipt, err := transport.Send(sendCtx, msg)
	if err != nil {
		return err
	}
	d.logger.Debug("chunk sent",
		slog.Int("recipients", len(msg.Recipients)),
		slog.String("receipt_id", receipt))
	return nil
}

func (d *Dispatcher) finishCampaign(ctx context.Context, campaign *domain.Campaign, total, delivered int) error {
	campaign.Status = domain.StatusCompleted
	campaign.IsScheduled = false
	campaign.TotalRecipients = total
	campaign.TotalDelivered = delivered
	if err := d.campaigns.Update(ctx, campaign); err != nil {
		return fmt.Errorf("persisting campaign outcome: %w", err)
	}
	return nil
}

func newLogEntry(campaign *domain.Campaign, recipient string, affirmation domain.Affirmation, now time.Time) domain.DeliveryLogEntry {
	return domain.DeliveryLogEntry{
		ID:          uuid.NewString(),
		CampaignID:  campaign.ID,
		TenantID:    campaign.TenantID,
		Recipient:   recipient,
		Affirmation: affirmation,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// chunkRecipients splits recipients into fixed-size chunks, preserving order.
func chunkRecipients(recipients []string, size int) [][]string {
	if len(recipients) == 0 {
		return nil
	}
	chunks := make([][]string, 0, (len(recipients)+size-1)/size)
	for start := 0; start < len(recipients); start += size {
		end := start + size
		if end > len(recipients) {
			end = len(recipients)
		}
		chunks = append(chunks, recipients[start:end])
	}
	return chunks
}
