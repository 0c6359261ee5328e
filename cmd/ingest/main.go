package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"portfolio_backend/internal/app/di"
	pricesadapters "portfolio_backend/internal/feature/prices/adapters"
	pricesusecase "portfolio_backend/internal/feature/prices/usecase"
	"portfolio_backend/internal/platform/cache"
	"portfolio_backend/internal/platform/db"
	platformredis "portfolio_backend/internal/platform/redis"
	"portfolio_backend/internal/shared/ratelimiter"
)

// Twelve Data's free tier allows 8 requests per minute.
const (
	apiCallsPerInterval = 8
	apiCallInterval     = time.Minute
)

func main() {
	markersOnly := flag.Bool("markers-only", false, "generate markers for newly traded symbols and exit")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	gormDB := db.OpenDB()
	quotes := di.NewQuotes()
	priceRepo := pricesadapters.NewPriceRepository(gormDB)
	markerRepo := pricesadapters.NewMarkerRepository(gormDB)
	limiter := ratelimiter.NewRateLimiter(apiCallsPerInterval, apiCallInterval)
	uc := pricesusecase.NewIngestUsecase(quotes, priceRepo, markerRepo, limiter)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if *markersOnly {
		created, err := uc.GenerateMarkers(ctx)
		if err != nil {
			slog.Error("marker generation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("marker generation ok", "created", created)
		return
	}

	if err := uc.IngestAll(ctx); err != nil {
		slog.Error("ingest failed", "error", err)
		os.Exit(1)
	}

	// Valuations cache the previous closes; drop them so the fresh
	// prices are visible immediately.
	if rdb, err := platformredis.NewRedisClient(); err == nil {
		cached := cache.NewCachingPriceRepository(rdb, 0, priceRepo, "prices")
		if err := cached.Invalidate(ctx); err != nil {
			slog.Warn("failed to invalidate price cache", "error", err)
		}
		if err := rdb.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err)
		}
	}

	slog.Info("ingest ok")
}
