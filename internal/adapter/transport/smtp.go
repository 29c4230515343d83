package transport

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/google/uuid"

	"bulkmailer/internal/core/domain"
	"bulkmailer/internal/core/port"
)

// SMTPTransport relays one chunk per SMTP transaction. Recipients travel as
// envelope addresses only (BCC semantics); the To header names the sender
// so member addresses never leak to each other.
type SMTPTransport struct {
	host     string
	port     int
	username string
	password string
}

func NewSMTPTransport(settings *domain.TenantSettings) *SMTPTransport {
	return &SMTPTransport{
		host:     settings.SMTPHost,
		port:     settings.SMTPPort,
		username: settings.SMTPUser,
		password: settings.SMTPPassword,
	}
}

func (t *SMTPTransport) Send(ctx context.Context, msg port.OutboundMessage) (string, error) {
	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), t.host)

	var b strings.Builder
	b.WriteString("From: " + msg.From + "\r\n")
	b.WriteString("To: " + msg.From + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("Message-ID: " + messageID + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)

	var auth smtp.Auth
	if t.username != "" {
		auth = smtp.PlainAuth("", t.username, t.password, t.host)
	}
	addr := fmt.Sprintf("%s:%d", t.host, t.port)

	// net/smtp has no context support; run the transaction in a goroutine so
	// the chunk timeout still applies.
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, msg.From, msg.Recipients, []byte(b.String()))
	}()
	select {
	case err := <-done:
		if err != nil {
			return "", fmt.Errorf("smtp send: %w", err)
		}
		return messageID, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
