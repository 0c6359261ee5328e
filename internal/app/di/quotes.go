// Package di provides dependency injection factories for creating application components.
package di

import (
	"portfolio_backend/internal/platform/externalapi/twelvedata"
	platformhttp "portfolio_backend/internal/platform/http"
)

// NewQuotes creates a fully configured Twelve Data quote client with
// its tuned HTTP client.
func NewQuotes() *twelvedata.TwelveDataQuotes {
	cfg := twelvedata.LoadConfig()
	httpClient := platformhttp.NewHTTPClient(cfg.Timeout)
	return twelvedata.NewTwelveDataQuotes(cfg, httpClient)
}
