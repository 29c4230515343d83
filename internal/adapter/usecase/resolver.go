package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"bulkmailer/internal/core/domain"
	"bulkmailer/internal/core/port"
)

// RecipientResolver turns a campaign's addressing mode into a concrete
// ordered set of unique addresses. It has no side effects beyond one
// external read for segment campaigns.
type RecipientResolver struct {
	segments port.SegmentDirectory
}

func NewRecipientResolver(segments port.SegmentDirectory) *RecipientResolver {
	return &RecipientResolver{segments: segments}
}

// Resolve returns the campaign's recipient set, deduplicated and
// order-preserving. Segment lookups that fail or return malformed addresses
// produce a ResolutionError.
func (r *RecipientResolver) Resolve(ctx context.Context, c *domain.Campaign) ([]string, error) {
	switch c.AddressingMode {
	case domain.AddressingExplicit:
		return dedupe(c.Recipients), nil
	case domain.AddressingSegment:
		members, err := r.segments.Members(ctx, c.TenantID, c.SegmentName)
		if err != nil {
			return nil, &port.ResolutionError{SegmentName: c.SegmentName, Err: err}
		}
		for _, m := range members {
			if _, err = mail.ParseAddress(strings.TrimSpace(m)); err != nil {
				return nil, &port.ResolutionError{
					SegmentName: c.SegmentName,
					Err:         fmt.Errorf("malformed address %q: %w", m, err),
				}
			}
		}
		return dedupe(members), nil
	default:
		return nil, &port.ResolutionError{Err: fmt.Errorf("unknown addressing mode %q", c.AddressingMode)}
	}
}

// dedupe removes duplicates while preserving first-seen order. Addresses are
// compared case-insensitively after trimming whitespace.
func dedupe(addresses []string) []string {
	seen := make(map[string]struct{}, len(addresses))
	out := make([]string, 0, len(addresses))
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		key := strings.ToLower(a)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}
