package usecase

import (
	"context"
	"log/slog"
	"strings"

	"bulkmailer/internal/core/domain"
	"bulkmailer/internal/core/port"
)

// ConsentFilter partitions a recipient set into consented and blocked using
// the external consent registry. The partition reproduces the registry's
// verdict exactly; no recipient appears in both halves.
type ConsentFilter struct {
	registry port.ConsentRegistry
	logger   *slog.Logger
}

func NewConsentFilter(registry port.ConsentRegistry, logger *slog.Logger) *ConsentFilter {
	return &ConsentFilter{registry: registry, logger: logger}
}

// Filter checks the full recipient batch against the registry in one call.
// When the tenant has disabled the consent check, every recipient passes;
// the bypass is an explicit configuration decision and is logged. Missing
// registry configuration fails with ErrConsentConfigUnavailable rather than
// silently treating everyone as consented.
func (f *ConsentFilter) Filter(ctx context.Context, settings *domain.TenantSettings, recipients []string) (consented, blocked []string, err error) {
	if settings == nil {
		return nil, nil, port.ErrConsentConfigUnavailable
	}
	if !settings.ConsentCheckEnabled {
		f.logger.Info("consent check disabled by tenant configuration, all recipients pass",
			slog.String("tenant_id", settings.TenantID),
			slog.Int("recipients", len(recipients)))
		return recipients, nil, nil
	}
	if settings.IYSCode == 0 || settings.BrandCode == 0 {
		return nil, nil, port.ErrConsentConfigUnavailable
	}

	q := port.ConsentQuery{
		IYSCode:       settings.IYSCode,
		BrandCode:     settings.BrandCode,
		RecipientType: settings.RecipientType,
	}
	subset, err := f.registry.ConsentedSubset(ctx, q, recipients)
	if err != nil {
		return nil, nil, &port.ConsentCheckError{Err: err}
	}

	allowed := make(map[string]struct{}, len(subset))
	for _, a := range subset {
		allowed[strings.ToLower(a)] = struct{}{}
	}
	consented = make([]string, 0, len(subset))
	blocked = make([]string, 0, len(recipients)-len(subset))
	for _, rcpt := range recipients {
		if _, ok := allowed[strings.ToLower(rcpt)]; ok {
			consented = append(consented, rcpt)
		} else {
			blocked = append(blocked, rcpt)
		}
	}
	return consented, blocked, nil
}
