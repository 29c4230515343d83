package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts a demo tenant, its quota account and a couple of campaigns.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	const tenantID = "demo-tenant"

	_, err := pool.Exec(ctx, `INSERT INTO tenant_settings
	(tenant_id, provider, from_address, smtp_host, smtp_port, smtp_user, smtp_password,
	 sendgrid_key, consent_check_enabled, iys_code, brand_code, recipient_type)
VALUES ($1,'smtp','news@demo.example','localhost',1025,'','','',FALSE,0,0,'BIREYSEL')
ON CONFLICT (tenant_id) DO NOTHING`, tenantID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `INSERT INTO quota_accounts (tenant_id, message_type, send_limit, used)
VALUES ($1,'EMAIL',10000,0)
ON CONFLICT (tenant_id, message_type) DO NOTHING`, tenantID)
	if err != nil {
		return err
	}

	recipients := make([]string, 0, 250)
	for i := 0; i < 250; i++ {
		recipients = append(recipients, fmt.Sprintf("member%03d@demo.example", i))
	}
	scheduledAt := time.Now().Add(10 * time.Minute).UTC()

	campaigns := []struct {
		subject     string
		mode        string
		segment     string
		isScheduled bool
		scheduledAt *time.Time
	}{
		{subject: "Spring newsletter", mode: "explicit_list"},
		{subject: "Weekly digest", mode: "segment", segment: "weekly-digest", isScheduled: true, scheduledAt: &scheduledAt},
	}
	for _, c := range campaigns {
		status := "draft"
		if c.isScheduled {
			status = "scheduled"
		}
		var campaignRecipients []string
		if c.mode == "explicit_list" {
			campaignRecipients = recipients
		}
		_, err = pool.Exec(ctx, `INSERT INTO campaigns
	(id, tenant_id, subject, body_html, from_address, addressing_mode, recipients,
	 segment_name, is_scheduled, scheduled_at, status)
VALUES ($1,$2,$3,$4,'news@demo.example',$5,$6,$7,$8,$9,$10)
ON CONFLICT DO NOTHING`,
			uuid.NewString(), tenantID, c.subject,
			`<html><body><p>Hello!</p><a href="https://shop.example/catalog">See what is new</a></body></html>`,
			c.mode, campaignRecipients, c.segment, c.isScheduled, c.scheduledAt, status)
		if err != nil {
			return err
		}
	}
	return nil
}
