package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpadapter "bulkmailer/internal/adapter/http"
	"bulkmailer/internal/adapter/iys"
	"bulkmailer/internal/adapter/postgres"
	"bulkmailer/internal/adapter/rewrite"
	"bulkmailer/internal/adapter/segments"
	"bulkmailer/internal/adapter/transport"
	"bulkmailer/internal/adapter/usecase"
	"bulkmailer/internal/config"
	"bulkmailer/internal/db"
)

// main is the entry point of the API process. It loads configuration,
// optionally runs database migrations, initializes the database pool and
// repositories, then starts the HTTP server. On receiving a termination
// signal it gracefully shuts down the server.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(cfg)

	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
		} else {
			logger.Info("migrations applied successfully")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	campaignRepo := postgres.NewCampaignRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)
	quotaRepo := postgres.NewQuotaRepository(pool)
	linkRepo := postgres.NewLinkRepository(pool)
	deliveryRepo := postgres.NewDeliveryLogRepository(pool)

	dispatcher := usecase.NewDispatcher(usecase.DispatcherParams{
		Campaigns:    campaignRepo,
		Tenants:      tenantRepo,
		Resolver:     usecase.NewRecipientResolver(segments.NewClient(cfg.Segments)),
		Consent:      usecase.NewConsentFilter(iys.NewClient(cfg.IYS), logger),
		Quota:        usecase.NewQuotaGuard(quotaRepo),
		Rewriter:     rewrite.NewHTMLRewriter(cfg.Track.ClickBaseURL),
		Links:        linkRepo,
		Deliveries:   usecase.NewDeliveryLogWriter(deliveryRepo, cfg.Dispatch.LogBatchSize),
		Transports:   transport.NewSelector(),
		Logger:       logger,
		ChunkSize:    cfg.Dispatch.ChunkSize,
		ChunkTimeout: cfg.Dispatch.ChunkTimeout,
	})

	handler := httpadapter.NewHandler(
		usecase.NewCampaignService(campaignRepo),
		dispatcher,
		linkRepo,
		deliveryRepo,
		quotaRepo,
		tenantRepo,
		logger,
	)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
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
