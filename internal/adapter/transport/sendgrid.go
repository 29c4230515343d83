package transport

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"bulkmailer/internal/core/port"
)

// SendGridTransport sends one chunk per v3 mail/send call. Recipients are
// placed in a single personalization as BCCs so one API call covers the
// whole chunk.
type SendGridTransport struct {
	client *sendgrid.Client
}

func NewSendGridTransport(apiKey string) *SendGridTransport {
	return &SendGridTransport{client: sendgrid.NewSendClient(apiKey)}
}

func (t *SendGridTransport) Send(ctx context.Context, msg port.OutboundMessage) (string, error) {
	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail("", msg.From))
	message.Subject = msg.Subject
	message.AddContent(mail.NewContent("text/html", msg.HTML))

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", msg.From))
	for _, rcpt := range msg.Recipients {
		p.AddBCCs(mail.NewEmail("", rcpt))
	}
	message.AddPersonalizations(p)

	resp, err := t.client.SendWithContext(ctx, message)
	if err != nil {
		return "", fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("sendgrid API error: %d %s", resp.StatusCode, resp.Body)
	}
	receipt := ""
	if ids := resp.Headers["X-Message-Id"]; len(ids) > 0 {
		receipt = ids[0]
	}
	return receipt, nil
}
