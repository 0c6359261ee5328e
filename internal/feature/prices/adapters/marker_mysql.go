package adapters

import (
	"context"

	"gorm.io/gorm"

	"portfolio_backend/internal/feature/prices/domain/entity"
	"portfolio_backend/internal/feature/prices/usecase"
	txadapters "portfolio_backend/internal/feature/transactions/adapters"
)

// markerMySQL is the MySQL implementation of MarkerRepository.
type markerMySQL struct {
	db *gorm.DB
}

var _ usecase.MarkerRepository = (*markerMySQL)(nil)

// NewMarkerRepository creates a new markerMySQL instance with the given
// gorm.DB connection.
func NewMarkerRepository(db *gorm.DB) *markerMySQL {
	return &markerMySQL{db: db}
}

// StockMarkerModel is the GORM model for the stock_markers table.
type StockMarkerModel struct {
	Symbol string `gorm:"column:stock_symbol;primaryKey;size:32"`
	Exists *bool  `gorm:"column:symbol_exists"`
}

func (StockMarkerModel) TableName() string {
	return "stock_markers"
}

// CreateMissing inserts a blank marker for every distinct traded symbol
// that has no marker row yet.
func (r *markerMySQL) CreateMissing(ctx context.Context) (int, error) {
	var symbols []string
	err := r.db.WithContext(ctx).
		Model(&txadapters.TransactionModel{}).
		Distinct("stock_symbol").
		Where("stock_symbol NOT IN (?)",
			r.db.Model(&StockMarkerModel{}).Select("stock_symbol")).
		Pluck("stock_symbol", &symbols).Error
	if err != nil {
		return 0, err
	}
	if len(symbols) == 0 {
		return 0, nil
	}

	ms := make([]StockMarkerModel, 0, len(symbols))
	for _, s := range symbols {
		ms = append(ms, StockMarkerModel{Symbol: s})
	}
	if err := r.db.WithContext(ctx).Create(&ms).Error; err != nil {
		return 0, err
	}
	return len(ms), nil
}

// List returns all markers.
func (r *markerMySQL) List(ctx context.Context) ([]entity.StockMarker, error) {
	var rows []StockMarkerModel
	if err := r.db.WithContext(ctx).Order("stock_symbol ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.StockMarker, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.StockMarker{Symbol: m.Symbol, Exists: m.Exists})
	}
	return out, nil
}

// SetExists records whether the quote provider knows the symbol.
func (r *markerMySQL) SetExists(ctx context.Context, symbol string, exists bool) error {
	return r.db.WithContext(ctx).
		Model(&StockMarkerModel{}).
		Where("stock_symbol = ?", symbol).
		Update("symbol_exists", exists).Error
}
