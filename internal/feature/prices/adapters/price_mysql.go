// Package adapters provides the repository implementations for the
// prices feature.
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pfusecase "portfolio_backend/internal/feature/portfolio/usecase"
	"portfolio_backend/internal/feature/prices/domain/entity"
	"portfolio_backend/internal/feature/prices/usecase"
)

// priceMySQL is the MySQL implementation of the price repositories,
// backed by GORM.
type priceMySQL struct {
	db *gorm.DB
}

// Compile-time checks: the adapter serves both the ingest pipeline and
// the portfolio valuation core.
var (
	_ usecase.PriceRepository   = (*priceMySQL)(nil)
	_ pfusecase.PriceRepository = (*priceMySQL)(nil)
)

// NewPriceRepository creates a new priceMySQL instance with the given
// gorm.DB connection.
func NewPriceRepository(db *gorm.DB) *priceMySQL {
	return &priceMySQL{db: db}
}

// StockPriceModel is the GORM model for the stock_prices table.
type StockPriceModel struct {
	ID         uint      `gorm:"primaryKey"`
	Symbol     string    `gorm:"column:stock_symbol;size:32;not null;uniqueIndex:price_sym_date,priority:1"`
	PriceDate  time.Time `gorm:"not null;uniqueIndex:price_sym_date,priority:2"`
	ClosePrice int64     `gorm:"not null"`
}

func (StockPriceModel) TableName() string {
	return "stock_prices"
}

// UpsertBatch inserts price observations, replacing the close of rows
// with the same (symbol, price_date).
func (r *priceMySQL) UpsertBatch(ctx context.Context, prices []entity.StockPrice) error {
	if len(prices) == 0 {
		return nil
	}
	ms := make([]StockPriceModel, 0, len(prices))
	for _, p := range prices {
		ms = append(ms, StockPriceModel{
			Symbol:     p.Symbol,
			PriceDate:  p.PriceDate,
			ClosePrice: p.ClosePrice,
		})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stock_symbol"}, {Name: "price_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"close_price"}),
	}).Create(&ms).Error
}

// LatestCloses returns, for every symbol with at least one observation,
// the close price of its most recent price date. Should duplicate rows
// share that date, the lowest close wins, keeping the result
// deterministic.
func (r *priceMySQL) LatestCloses(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Symbol     string
		ClosePrice int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.stock_symbol AS symbol, MIN(p.close_price) AS close_price
		FROM stock_prices p
		JOIN (
			SELECT stock_symbol, MAX(price_date) AS latest_price_date
			FROM stock_prices
			GROUP BY stock_symbol
		) latest
		ON p.stock_symbol = latest.stock_symbol
		AND p.price_date = latest.latest_price_date
		GROUP BY p.stock_symbol`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	closes := make(map[string]int64, len(rows))
	for _, row := range rows {
		closes[row.Symbol] = row.ClosePrice
	}
	return closes, nil
}
