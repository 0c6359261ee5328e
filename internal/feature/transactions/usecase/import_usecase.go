package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"portfolio_backend/internal/feature/transactions/domain/entity"
	"portfolio_backend/internal/shared/money"
)

// csvColumns is the expected header of a transaction import file.
// Monetary columns are decimal dollars ("27.18"), dates are YYYY-MM-DD.
var csvColumns = []string{"transaction_type", "stock_symbol", "cost_per_unit", "quantity", "trade_fee", "trade_date"}

// ImportCSV parses a transaction CSV and stores every row for the owner,
// optionally pre-assigned to one account. The import is all-or-nothing:
// a single malformed row rejects the whole file and nothing is written.
// Returns the number of imported rows.
func (u *transactionsUsecase) ImportCSV(ctx context.Context, ownerID uint, accountID *uint, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvColumns)

	// Header row is required but its content is not validated, matching
	// the exporting client which always writes one.
	if _, err := reader.Read(); err != nil {
		return 0, fmt.Errorf("%w: missing header row", ErrInvalidTransaction)
	}

	var txs []entity.Transaction
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w: line %d: %v", ErrInvalidTransaction, line, err)
		}
		tx, err := parseCSVRow(record)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", line, err)
		}
		tx.UserID = ownerID
		tx.AccountID = accountID
		if err := normalize(&tx); err != nil {
			return 0, fmt.Errorf("line %d: %w", line, err)
		}
		txs = append(txs, tx)
	}

	if len(txs) == 0 {
		return 0, nil
	}
	if err := u.transactions.CreateBatch(ctx, txs); err != nil {
		return 0, err
	}
	return len(txs), nil
}

func parseCSVRow(record []string) (entity.Transaction, error) {
	txType, err := entity.ParseTransactionType(record[0])
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
	}
	costPerUnit, err := money.ParseDecimal(record[2])
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("%w: cost_per_unit: %v", ErrInvalidTransaction, err)
	}
	quantity, err := strconv.ParseInt(record[3], 10, 64)
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("%w: quantity %q", ErrInvalidTransaction, record[3])
	}
	tradeFee, err := money.ParseDecimal(record[4])
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("%w: trade_fee: %v", ErrInvalidTransaction, err)
	}
	tradeDate, err := time.Parse("2006-01-02", record[5])
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("%w: trade_date %q", ErrInvalidTransaction, record[5])
	}

	return entity.Transaction{
		Type:        txType,
		Symbol:      record[1],
		CostPerUnit: costPerUnit,
		Quantity:    quantity,
		TradeFee:    tradeFee,
		TradeDate:   tradeDate,
	}, nil
}
