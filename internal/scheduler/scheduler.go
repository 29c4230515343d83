// Package scheduler polls for scheduled campaigns coming due and hands
// them to the dispatch worker through the job queue.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"bulkmailer/internal/core/domain"
	"bulkmailer/internal/core/port"
)

// Scheduler runs a periodic poll. Campaigns it publishes are moved to the
// queued status so the next tick does not publish them again; the
// dispatcher accepts queued campaigns.
type Scheduler struct {
	campaigns port.CampaignStore
	jobs      port.JobPublisher
	logger    *slog.Logger
	interval  time.Duration
	window    time.Duration
}

func New(campaigns port.CampaignStore, jobs port.JobPublisher, logger *slog.Logger, interval, window time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	if window < 0 {
		window = 0
	}
	return &Scheduler{
		campaigns: campaigns,
		jobs:      jobs,
		logger:    logger,
		interval:  interval,
		window:    window,
	}
}

// Run polls until the context is cancelled. One failing campaign does not
// block the rest of a tick.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick publishes every scheduled campaign due within the poll window.
func (s *Scheduler) Tick(ctx context.Context) {
	due, err := s.campaigns.DueScheduled(ctx, time.Now().Add(s.window))
	if err != nil {
		s.logger.Error("scheduled campaign poll failed", slog.Any("error", err))
		return
	}
	for _, c := range due {
		if err = s.jobs.PublishDispatch(ctx, c.ID); err != nil {
			s.logger.Error("publishing dispatch job failed",
				slog.String("campaign_id", c.ID),
				slog.Any("error", err))
			continue
		}
		if err = s.campaigns.SetStatus(ctx, c.ID, domain.StatusQueued); err != nil {
			s.logger.Error("marking campaign queued failed",
				slog.String("campaign_id", c.ID),
				slog.Any("error", err))
			continue
		}
		s.logger.Info("scheduled campaign queued for dispatch",
			slog.String("campaign_id", c.ID),
			slog.String("tenant_id", c.TenantID))
	}
}
