package domain

import "time"

// TransportKind names a configured delivery provider.
type TransportKind string

const (
	TransportSMTP     TransportKind = "smtp"
	TransportSendGrid TransportKind = "sendgrid"
)

// TenantSettings holds a tenant's delivery and consent configuration.
// Exactly one transport is selected per tenant via Provider.
type TenantSettings struct {
	TenantID    string
	Provider    TransportKind
	FromAddress string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string

	SendGridKey string

	// ConsentCheckEnabled makes the consent-registry bypass an explicit,
	// auditable configuration decision instead of an implicit code path.
	ConsentCheckEnabled bool
	IYSCode             int
	BrandCode           int
	RecipientType       string

	CreatedAt time.Time
	UpdatedAt time.Time
}
