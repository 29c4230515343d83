package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bulkmailer/internal/core/domain"
	"bulkmailer/internal/core/port"
)

// CampaignInput carries the fields a caller may set when creating or
// updating a campaign.
type CampaignInput struct {
	TenantID       string
	Subject        string
	BodyHTML       string
	FromAddress    string
	AddressingMode domain.AddressingMode
	Recipients     []string
	SegmentName    string
	ScheduledAt    *time.Time
}

// CampaignService provides the thin CRUD surface around campaigns. Dispatch
// itself belongs to the Dispatcher; this service only manages records.
type CampaignService struct {
	campaigns port.CampaignStore
}

func NewCampaignService(campaigns port.CampaignStore) *CampaignService {
	return &CampaignService{campaigns: campaigns}
}

// Create validates the input and stores a new campaign. A future
// ScheduledAt puts the campaign into the scheduler's purview; otherwise it
// is a draft awaiting an on-demand dispatch.
func (s *CampaignService) Create(ctx context.Context, in CampaignInput) (*domain.Campaign, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &domain.Campaign{
		ID:             uuid.NewString(),
		TenantID:       in.TenantID,
		Subject:        in.Subject,
		BodyHTML:       in.BodyHTML,
		FromAddress:    in.FromAddress,
		AddressingMode: in.AddressingMode,
		Recipients:     in.Recipients,
		SegmentName:    in.SegmentName,
		Status:         domain.StatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.ScheduledAt != nil {
		c.IsScheduled = true
		c.ScheduledAt = in.ScheduledAt
		c.Status = domain.StatusScheduled
	}
	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CampaignService) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	c, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, port.ErrCampaignNotFound
	}
	return c, nil
}

func (s *CampaignService) List(ctx context.Context, tenantID string, limit, offset int) ([]domain.Campaign, int, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.campaigns.List(ctx, tenantID, limit, offset)
}

// Update replaces a campaign's mutable fields. The recipient set is
// immutable once dispatch begins, so only pre-dispatch statuses accept
// updates.
func (s *CampaignService) Update(ctx context.Context, id string, in CampaignInput) (*domain.Campaign, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.Dispatchable() {
		return nil, fmt.Errorf("campaign %s is %s and can no longer be updated", id, c.Status)
	}
	if err = validateInput(in); err != nil {
		return nil, err
	}
	c.Subject = in.Subject
	c.BodyHTML = in.BodyHTML
	c.FromAddress = in.FromAddress
	c.AddressingMode = in.AddressingMode
	c.Recipients = in.Recipients
	c.SegmentName = in.SegmentName
	if in.ScheduledAt != nil {
		c.IsScheduled = true
		c.ScheduledAt = in.ScheduledAt
		c.Status = domain.StatusScheduled
	} else {
		c.IsScheduled = false
		c.ScheduledAt = nil
		c.Status = domain.StatusDraft
	}
	if err = s.campaigns.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Archive soft-deletes a campaign; its delivery logs and links remain.
func (s *CampaignService) Archive(ctx context.Context, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.campaigns.SetStatus(ctx, c.ID, domain.StatusArchived)
}

func validateInput(in CampaignInput) error {
	if in.TenantID == "" {
		return errors.New("tenant id is required")
	}
	if in.Subject == "" {
		return errors.New("subject is required")
	}
	if in.BodyHTML == "" {
		return errors.New("body is required")
	}
	switch in.AddressingMode {
	case domain.AddressingExplicit:
		if len(in.Recipients) == 0 {
			return errors.New("explicit campaigns need at least one recipient")
		}
	case domain.AddressingSegment:
		if in.SegmentName == "" {
			return errors.New("segment campaigns need a segment name")
		}
	default:
		return fmt.Errorf("unknown addressing mode %q", in.AddressingMode)
	}
	return nil
}
