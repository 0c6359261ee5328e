package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"portfolio_backend/internal/feature/portfolio/usecase"
	"portfolio_backend/internal/feature/transactions/domain/entity"
	txusecase "portfolio_backend/internal/feature/transactions/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&TransactionModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seed(t *testing.T, repo *transactionMySQL, txs ...entity.Transaction) []entity.Transaction {
	t.Helper()
	out := make([]entity.Transaction, 0, len(txs))
	for _, tx := range txs {
		require.NoError(t, repo.Create(context.Background(), &tx))
		out = append(out, tx)
	}
	return out
}

func buy(userID uint, accountID *uint, symbol string, date time.Time) entity.Transaction {
	return entity.Transaction{
		Type:        entity.TransactionTypeBuy,
		Symbol:      symbol,
		CostPerUnit: 3141,
		Quantity:    100,
		TradeFee:    999,
		TradeDate:   date,
		AccountID:   accountID,
		UserID:      userID,
	}
}

func TestTransactionMySQL_CreateAndFind(t *testing.T) {
	repo := NewTransactionRepository(setupTestDB(t))

	tx := buy(1, nil, "VCN.TO", day(2016, time.April, 23))
	require.NoError(t, repo.Create(context.Background(), &tx))
	assert.NotZero(t, tx.ID, "generated id is written back")

	found, err := repo.FindForOwner(context.Background(), tx.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, found.ID)
	assert.Equal(t, tx.Type, found.Type)
	assert.Equal(t, tx.Symbol, found.Symbol)
	assert.Equal(t, tx.CostPerUnit, found.CostPerUnit)
	assert.Equal(t, tx.Quantity, found.Quantity)
	assert.Equal(t, tx.TradeFee, found.TradeFee)
	assert.True(t, tx.TradeDate.Equal(found.TradeDate), "trade date round-trips")
	assert.Equal(t, tx.UserID, found.UserID)

	t.Run("other owner's lookup misses", func(t *testing.T) {
		_, err := repo.FindForOwner(context.Background(), tx.ID, 2)
		assert.ErrorIs(t, err, txusecase.ErrTransactionNotFound)
	})

	t.Run("unknown id misses", func(t *testing.T) {
		_, err := repo.FindForOwner(context.Background(), 9999, 1)
		assert.ErrorIs(t, err, txusecase.ErrTransactionNotFound)
	})
}

func TestTransactionMySQL_ListForScope(t *testing.T) {
	repo := NewTransactionRepository(setupTestDB(t))
	acct1 := uint(1)

	// Insert out of date order, plus a same-day pair, plus noise from
	// another user and another account.
	seed(t, repo,
		buy(1, &acct1, "VAB.TO", day(2016, time.August, 23)),
		buy(1, &acct1, "VCN.TO", day(2016, time.April, 23)),
		buy(1, &acct1, "ZPR.TO", day(2016, time.August, 23)),
		buy(1, nil, "XAW.TO", day(2016, time.May, 1)),
		buy(2, &acct1, "VCN.TO", day(2016, time.April, 23)),
	)

	t.Run("owner-wide scope", func(t *testing.T) {
		got, err := repo.ListForScope(context.Background(), usecase.Scope{OwnerID: 1})
		require.NoError(t, err)
		require.Len(t, got, 4)
		for _, tx := range got {
			assert.Equal(t, uint(1), tx.UserID)
		}
	})

	t.Run("account scope ordered by trade date then id", func(t *testing.T) {
		got, err := repo.ListForScope(context.Background(), usecase.AccountScope(1, acct1))
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "VCN.TO", got[0].Symbol)
		// Same trade date: insertion (id) order breaks the tie.
		assert.Equal(t, "VAB.TO", got[1].Symbol)
		assert.Equal(t, "ZPR.TO", got[2].Symbol)
		assert.Less(t, got[1].ID, got[2].ID)
	})

	t.Run("empty scope", func(t *testing.T) {
		got, err := repo.ListForScope(context.Background(), usecase.Scope{OwnerID: 42})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestTransactionMySQL_ListForAccount(t *testing.T) {
	repo := NewTransactionRepository(setupTestDB(t))
	acct1 := uint(1)

	seed(t, repo,
		buy(1, &acct1, "VCN.TO", day(2016, time.April, 23)),
		buy(1, nil, "XAW.TO", day(2016, time.May, 1)),
	)

	t.Run("account bucket", func(t *testing.T) {
		got, err := repo.ListForAccount(context.Background(), 1, &acct1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "VCN.TO", got[0].Symbol)
	})

	t.Run("unassigned bucket", func(t *testing.T) {
		got, err := repo.ListForAccount(context.Background(), 1, nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "XAW.TO", got[0].Symbol)
	})
}

func TestTransactionMySQL_CreateBatch(t *testing.T) {
	repo := NewTransactionRepository(setupTestDB(t))

	txs := []entity.Transaction{
		buy(1, nil, "VCN.TO", day(2016, time.April, 23)),
		buy(1, nil, "VAB.TO", day(2016, time.August, 23)),
	}
	require.NoError(t, repo.CreateBatch(context.Background(), txs))

	got, err := repo.ListForScope(context.Background(), usecase.Scope{OwnerID: 1})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	t.Run("empty batch is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.CreateBatch(context.Background(), nil))
	})
}

func TestTransactionMySQL_Update(t *testing.T) {
	repo := NewTransactionRepository(setupTestDB(t))

	created := seed(t, repo, buy(1, nil, "VCN.TO", day(2016, time.April, 23)))
	tx := created[0]

	tx.Quantity = 250
	tx.Type = entity.TransactionTypeSell
	require.NoError(t, repo.Update(context.Background(), &tx))

	found, err := repo.FindForOwner(context.Background(), tx.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(250), found.Quantity)
	assert.Equal(t, entity.TransactionTypeSell, found.Type)

	t.Run("unchanged update succeeds", func(t *testing.T) {
		assert.NoError(t, repo.Update(context.Background(), &tx))
	})

	t.Run("foreign row is not updated", func(t *testing.T) {
		foreign := tx
		foreign.UserID = 2
		err := repo.Update(context.Background(), &foreign)
		assert.ErrorIs(t, err, txusecase.ErrTransactionNotFound)
	})
}

func TestTransactionMySQL_Delete(t *testing.T) {
	repo := NewTransactionRepository(setupTestDB(t))

	created := seed(t, repo, buy(1, nil, "VCN.TO", day(2016, time.April, 23)))
	id := created[0].ID

	t.Run("foreign delete misses", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(context.Background(), id, 2), txusecase.ErrTransactionNotFound)
	})

	require.NoError(t, repo.Delete(context.Background(), id, 1))

	_, err := repo.FindForOwner(context.Background(), id, 1)
	assert.ErrorIs(t, err, txusecase.ErrTransactionNotFound)
}

func TestTransactionMySQL_AssignAccount(t *testing.T) {
	repo := NewTransactionRepository(setupTestDB(t))
	target := uint(3)

	created := seed(t, repo,
		buy(1, nil, "VCN.TO", day(2016, time.April, 23)),
		buy(1, nil, "VAB.TO", day(2016, time.August, 23)),
		buy(2, nil, "ZPR.TO", day(2016, time.December, 9)),
	)

	ids := []uint{created[0].ID, created[1].ID, created[2].ID}
	require.NoError(t, repo.AssignAccount(context.Background(), ids, &target, 1))

	for _, tx := range created[:2] {
		found, err := repo.FindForOwner(context.Background(), tx.ID, 1)
		require.NoError(t, err)
		require.NotNil(t, found.AccountID)
		assert.Equal(t, target, *found.AccountID)
	}

	// The other user's transaction is untouched even though its id was
	// in the list.
	other, err := repo.FindForOwner(context.Background(), created[2].ID, 2)
	require.NoError(t, err)
	assert.Nil(t, other.AccountID)

	t.Run("nil account clears the assignment", func(t *testing.T) {
		require.NoError(t, repo.AssignAccount(context.Background(), ids[:1], nil, 1))
		found, err := repo.FindForOwner(context.Background(), created[0].ID, 1)
		require.NoError(t, err)
		assert.Nil(t, found.AccountID)
	})
}

func TestTransactionMySQL_ListForOwner(t *testing.T) {
	repo := NewTransactionRepository(setupTestDB(t))
	acct1 := uint(1)

	seed(t, repo,
		buy(1, &acct1, "VCN.TO", day(2016, time.April, 23)),
		buy(1, nil, "XAW.TO", day(2016, time.May, 1)),
		buy(2, nil, "ZPR.TO", day(2016, time.December, 9)),
	)

	got, err := repo.ListForOwner(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 2, "assigned and unassigned rows of the owner")
	assert.Equal(t, "VCN.TO", got[0].Symbol)
	assert.Equal(t, "XAW.TO", got[1].Symbol)
}

func TestTransactionMySQL_DeleteBatch(t *testing.T) {
	repo := NewTransactionRepository(setupTestDB(t))

	created := seed(t, repo,
		buy(1, nil, "VCN.TO", day(2016, time.April, 23)),
		buy(1, nil, "VAB.TO", day(2016, time.August, 23)),
		buy(1, nil, "XAW.TO", day(2016, time.September, 1)),
		buy(2, nil, "ZPR.TO", day(2016, time.December, 9)),
	)

	ids := []uint{created[0].ID, created[1].ID, created[3].ID}
	require.NoError(t, repo.DeleteBatch(context.Background(), ids, 1))

	// Owner 1 keeps only the row left out of the list.
	remaining, err := repo.ListForOwner(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "XAW.TO", remaining[0].Symbol)

	// The other user's row survives even though its id was listed.
	other, err := repo.FindForOwner(context.Background(), created[3].ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "ZPR.TO", other.Symbol)

	// Empty list is a no-op.
	require.NoError(t, repo.DeleteBatch(context.Background(), nil, 1))
}
