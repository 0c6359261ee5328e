package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	portfoliousecase "portfolio_backend/internal/feature/portfolio/usecase"
	pricesadapters "portfolio_backend/internal/feature/prices/adapters"
	"portfolio_backend/internal/platform/cache"
)

// NewPriceReader builds the close-price read layer for valuations:
// the MySQL repository wrapped in a Redis cache that expires at the
// next refresh window. With rdb nil the cache layer passes through, so
// the server keeps working without Redis.
func NewPriceReader(rdb *redis.Client, db *gorm.DB) portfoliousecase.PriceRepository {
	inner := pricesadapters.NewPriceRepository(db)
	return cache.NewCachingPriceRepository(rdb, cache.TimeUntilNext8AM(), inner, "prices")
}
