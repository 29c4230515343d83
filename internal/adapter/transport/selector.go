// Package transport provides the pluggable "send a message to N
// recipients" capability. Exactly one implementation is selected per
// tenant at configuration time; the dispatcher is transport-agnostic
// beyond the port contract.
package transport

import (
	"fmt"

	"bulkmailer/internal/core/domain"
	"bulkmailer/internal/core/port"
)

// Selector builds the Transport a tenant's settings call for.
type Selector struct{}

func NewSelector() *Selector { return &Selector{} }

func (s *Selector) ForTenant(settings *domain.TenantSettings) (port.Transport, error) {
	switch settings.Provider {
	case domain.TransportSMTP:
		if settings.SMTPHost == "" {
			return nil, fmt.Errorf("tenant %s has no SMTP host configured", settings.TenantID)
		}
		return NewSMTPTransport(settings), nil
	case domain.TransportSendGrid:
		if settings.SendGridKey == "" {
			return nil, fmt.Errorf("tenant %s has no SendGrid key configured", settings.TenantID)
		}
		return NewSendGridTransport(settings.SendGridKey), nil
	default:
		return nil, fmt.Errorf("unknown transport provider %q for tenant %s",
			settings.Provider, settings.TenantID)
	}
}
