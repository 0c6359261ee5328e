package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"portfolio_backend/internal/feature/prices/domain/entity"
	"portfolio_backend/internal/feature/prices/usecase"
	"portfolio_backend/internal/platform/externalapi/twelvedata/dto"
)

// TwelveDataQuotes fetches end-of-day closes from the Twelve Data API.
type TwelveDataQuotes struct {
	cfg    Config
	client *http.Client
}

var _ usecase.QuoteRepository = (*TwelveDataQuotes)(nil)

// NewTwelveDataQuotes creates a quote client with the given config and HTTP client.
func NewTwelveDataQuotes(cfg Config, client *http.Client) *TwelveDataQuotes {
	return &TwelveDataQuotes{cfg: cfg, client: client}
}

// LatestClose fetches the most recent end-of-day close for a symbol.
// Returns usecase.ErrSymbolUnknown when the provider reports an error for
// the symbol, so the caller can mark it and stop asking.
func (t *TwelveDataQuotes) LatestClose(ctx context.Context, symbol string) (entity.StockPrice, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("apikey", t.cfg.TwelveDataAPIKey)

	u := fmt.Sprintf("%s/eod?%s", t.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.StockPrice{}, err
	}

	res, err := t.client.Do(req)
	if err != nil {
		return entity.StockPrice{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return entity.StockPrice{}, fmt.Errorf("twelvedata http %d", res.StatusCode)
	}

	var body dto.EODResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.StockPrice{}, err
	}
	if body.Status == "error" {
		// The API reports unknown symbols as errors rather than 404s.
		return entity.StockPrice{}, fmt.Errorf("%w: %s", usecase.ErrSymbolUnknown, body.Message)
	}

	day, err := time.Parse("2006-01-02", body.Datetime)
	if err != nil {
		return entity.StockPrice{}, fmt.Errorf("parse datetime %q: %w", body.Datetime, err)
	}
	close, err := strconv.ParseFloat(body.Close, 64)
	if err != nil {
		return entity.StockPrice{}, fmt.Errorf("parse close %q: %w", body.Close, err)
	}

	return entity.StockPrice{
		Symbol:     symbol,
		PriceDate:  day,
		ClosePrice: int64(math.Round(close * 100)),
	}, nil
}
