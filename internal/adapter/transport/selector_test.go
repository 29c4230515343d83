package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bulkmailer/internal/core/domain"
)

func TestSelectorForTenant(t *testing.T) {
	s := NewSelector()

	t.Run("smtp", func(t *testing.T) {
		tr, err := s.ForTenant(&domain.TenantSettings{
			TenantID: "tenant-1",
			Provider: domain.TransportSMTP,
			SMTPHost: "mail.example.com",
			SMTPPort: 587,
		})
		require.NoError(t, err)
		assert.IsType(t, &SMTPTransport{}, tr)
	})

	t.Run("smtp without host", func(t *testing.T) {
		_, err := s.ForTenant(&domain.TenantSettings{
			TenantID: "tenant-1",
			Provider: domain.TransportSMTP,
		})
		assert.Error(t, err)
	})

	t.Run("sendgrid", func(t *testing.T) {
		tr, err := s.ForTenant(&domain.TenantSettings{
			TenantID:    "tenant-1",
			Provider:    domain.TransportSendGrid,
			SendGridKey: "SG.key",
		})
		require.NoError(t, err)
		assert.IsType(t, &SendGridTransport{}, tr)
	})

	t.Run("sendgrid without key", func(t *testing.T) {
		_, err := s.ForTenant(&domain.TenantSettings{
			TenantID: "tenant-1",
			Provider: domain.TransportSendGrid,
		})
		assert.Error(t, err)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := s.ForTenant(&domain.TenantSettings{
			TenantID: "tenant-1",
			Provider: "carrier_pigeon",
		})
		assert.Error(t, err)
	})
}
