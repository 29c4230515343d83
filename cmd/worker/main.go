package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"bulkmailer/internal/adapter/iys"
	"bulkmailer/internal/adapter/postgres"
	"bulkmailer/internal/adapter/rewrite"
	"bulkmailer/internal/adapter/segments"
	"bulkmailer/internal/adapter/transport"
	"bulkmailer/internal/adapter/usecase"
	"bulkmailer/internal/config"
	"bulkmailer/internal/db"
	"bulkmailer/internal/queue"
	"bulkmailer/internal/scheduler"
)

// main runs the dispatch worker: a scheduler goroutine polls for due
// scheduled campaigns and publishes them to the broker, while the consumer
// loop runs the dispatch pipeline for each queued campaign.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	broker, err := queue.Dial(cfg.Amqp.Addr, cfg.Amqp.Queue)
	if err != nil {
		logger.Error("broker connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer broker.Close()

	campaignRepo := postgres.NewCampaignRepository(pool)

	dispatcher := usecase.NewDispatcher(usecase.DispatcherParams{
		Campaigns:    campaignRepo,
		Tenants:      postgres.NewTenantRepository(pool),
		Resolver:     usecase.NewRecipientResolver(segments.NewClient(cfg.Segments)),
		Consent:      usecase.NewConsentFilter(iys.NewClient(cfg.IYS), logger),
		Quota:        usecase.NewQuotaGuard(postgres.NewQuotaRepository(pool)),
		Rewriter:     rewrite.NewHTMLRewriter(cfg.Track.ClickBaseURL),
		Links:        postgres.NewLinkRepository(pool),
		Deliveries:   usecase.NewDeliveryLogWriter(postgres.NewDeliveryLogRepository(pool), cfg.Dispatch.LogBatchSize),
		Transports:   transport.NewSelector(),
		Logger:       logger,
		ChunkSize:    cfg.Dispatch.ChunkSize,
		ChunkTimeout: cfg.Dispatch.ChunkTimeout,
	})

	sched := scheduler.New(campaignRepo, broker, logger,
		cfg.Dispatch.SchedulerInterval, cfg.Dispatch.SchedulerWindow)
	go sched.Run(ctx)

	logger.Info("worker running, waiting for dispatch jobs",
		slog.String("queue", cfg.Amqp.Queue))

	err = broker.Consume(ctx, logger, func(ctx context.Context, campaignID string) error {
		result, err := dispatcher.Dispatch(ctx, campaignID)
		if err != nil && result == nil {
			return err
		}
		if err != nil {
			logger.Error("dispatch completed with bookkeeping errors",
				slog.String("campaign_id", campaignID), slog.Any("error", err))
		}
		logger.Info("campaign dispatched",
			slog.String("campaign_id", campaignID),
			slog.Int("resolved", result.Resolved),
			slog.Int("delivered", result.Delivered),
			slog.Int("blocked", result.Blocked),
			slog.Int("failed", result.Failed))
		return nil
	})
	if err != nil && ctx.Err() == nil {
		logger.Error("consumer stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker gracefully stopped")
}

func newLogger(cfg config.Config) *slog.Logger {
	var handler slog.Handler
	level := cfg.Log.SlogLevel()
	switch cfg.Log.SlogFormat() {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}
