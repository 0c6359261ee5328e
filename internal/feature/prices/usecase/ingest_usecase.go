// Package usecase implements the price ingest pipeline: discovering
// traded symbols, fetching their latest end-of-day closes from the
// external quote API and persisting them for valuation.
package usecase

import (
	"context"
	"errors"
	"log/slog"

	"portfolio_backend/internal/feature/prices/domain/entity"
	"portfolio_backend/internal/shared/ratelimiter"
)

// ErrSymbolUnknown is returned by the quote provider when it has no
// data for a symbol. The symbol's marker is flagged so later runs skip
// it instead of burning an API call.
var ErrSymbolUnknown = errors.New("symbol unknown to quote provider")

// PriceRepository abstracts the persistence layer for closing prices.
// Following Go convention, interfaces are defined by the consumer
// (usecase), not the provider (adapters).
type PriceRepository interface {
	// UpsertBatch inserts price observations, replacing rows with the
	// same (symbol, price_date).
	UpsertBatch(ctx context.Context, prices []entity.StockPrice) error
}

// MarkerRepository abstracts the persistence layer for stock markers.
type MarkerRepository interface {
	// CreateMissing inserts a blank marker for every distinct traded
	// symbol that has none yet, and returns how many were created.
	CreateMissing(ctx context.Context) (int, error)

	// List returns all markers.
	List(ctx context.Context) ([]entity.StockMarker, error)

	// SetExists records whether the quote provider knows the symbol.
	SetExists(ctx context.Context, symbol string, exists bool) error
}

// QuoteRepository abstracts the external end-of-day quote API.
type QuoteRepository interface {
	// LatestClose fetches the most recent end-of-day close for a
	// symbol. Returns ErrSymbolUnknown when the provider has no data
	// for it.
	LatestClose(ctx context.Context, symbol string) (entity.StockPrice, error)
}

// IngestUsecase drives one ingest run over all marked symbols.
type IngestUsecase struct {
	quotes      QuoteRepository
	prices      PriceRepository
	markers     MarkerRepository
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewIngestUsecase creates a new IngestUsecase.
func NewIngestUsecase(quotes QuoteRepository, prices PriceRepository, markers MarkerRepository, rateLimiter ratelimiter.RateLimiterInterface) *IngestUsecase {
	return &IngestUsecase{quotes: quotes, prices: prices, markers: markers, rateLimiter: rateLimiter}
}

// GenerateMarkers inserts a blank marker for every traded symbol that
// has none yet and returns how many were created.
func (iu *IngestUsecase) GenerateMarkers(ctx context.Context) (int, error) {
	created, err := iu.markers.CreateMissing(ctx)
	if err != nil {
		return 0, err
	}
	if created > 0 {
		slog.Info("created markers for newly traded symbols", "count", created)
	}
	return created, nil
}

// IngestAll refreshes the latest close for every symbol worth asking
// about: first markers are generated for newly traded symbols, then
// each marker not known-missing is fetched. Failures on one symbol are
// logged and do not stop the run.
func (iu *IngestUsecase) IngestAll(ctx context.Context) error {
	if _, err := iu.GenerateMarkers(ctx); err != nil {
		return err
	}

	markers, err := iu.markers.List(ctx)
	if err != nil {
		return err
	}

	for _, marker := range markers {
		// Known-missing symbols are skipped until someone resets the
		// marker.
		if marker.Exists != nil && !*marker.Exists {
			continue
		}

		iu.rateLimiter.WaitIfNeeded()
		price, err := iu.quotes.LatestClose(ctx, marker.Symbol)
		if errors.Is(err, ErrSymbolUnknown) {
			slog.Warn("quote provider does not know symbol", "symbol", marker.Symbol)
			if err := iu.markers.SetExists(ctx, marker.Symbol, false); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			slog.Error("failed to fetch close", "symbol", marker.Symbol, "error", err)
			continue
		}

		if err := iu.prices.UpsertBatch(ctx, []entity.StockPrice{price}); err != nil {
			slog.Error("failed to store close", "symbol", marker.Symbol, "error", err)
			continue
		}
		if marker.Exists == nil {
			if err := iu.markers.SetExists(ctx, marker.Symbol, true); err != nil {
				return err
			}
		}
	}
	return nil
}
