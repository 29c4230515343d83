package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"bulkmailer/internal/config"
	"bulkmailer/internal/db"
)

// main seeds the database with demo data: a tenant, its quota account and
// a couple of campaigns. Migrations run first so the seeder works against
// an empty database.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
		slog.Error("migration error", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		slog.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err = db.Seed(ctx, pool); err != nil {
		slog.Error("seed error", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("seed data inserted")
}
