package ledger_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstrand/papertrader/internal/db"
	"github.com/jstrand/papertrader/internal/ledger"
)

// setupPostgres connects to the database named by TEST_DATABASE_DSN and
// applies migrations. Tests are skipped when the variable is unset.
func setupPostgres(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	conn, err := db.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.RunMigrations(context.Background(), conn))
	return conn
}

func createTestUser(t *testing.T, conn *sql.DB, balance decimal.Decimal) int64 {
	t.Helper()

	username := fmt.Sprintf("testuser_%d", time.Now().UnixNano())
	var userID int64
	err := conn.QueryRow(
		"INSERT INTO users (username, password_hash, cash_balance) VALUES ($1, $2, $3) RETURNING id",
		username, "x", balance,
	).Scan(&userID)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Exec("DELETE FROM transactions WHERE user_id = $1", userID)
		conn.Exec("DELETE FROM users WHERE id = $1", userID)
	})
	return userID
}

func TestPostgresStore_AppendAndAdjustBalance(t *testing.T) {
	conn := setupPostgres(t)
	store := ledger.NewPostgresStore(conn)
	ctx := context.Background()

	userID := createTestUser(t, conn, decimal.NewFromInt(10000))

	rec, err := store.AppendAndAdjustBalance(ctx, userID, ledger.Record{
		Symbol:   "AAPL",
		Quantity: 10,
		Price:    decimal.NewFromFloat(150.25),
		Kind:     ledger.KindBuy,
	}, decimal.NewFromFloat(8497.50))
	require.NoError(t, err)
	assert.NotZero(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	balance, err := store.Balance(ctx, userID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromFloat(8497.50)), "balance = %s", balance)

	records, err := store.Records(ctx, userID, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "AAPL", records[0].Symbol)
	assert.True(t, records[0].Price.Equal(decimal.NewFromFloat(150.25)))
}

func TestPostgresStore_UnknownUser(t *testing.T) {
	conn := setupPostgres(t)
	store := ledger.NewPostgresStore(conn)
	ctx := context.Background()

	_, err := store.Balance(ctx, -1)
	assert.ErrorIs(t, err, ledger.ErrUserNotFound)

	_, err = store.AppendAndAdjustBalance(ctx, -1, ledger.Record{Kind: ledger.KindDeposit}, decimal.Zero)
	assert.ErrorIs(t, err, ledger.ErrUserNotFound)
}

func TestPostgresStore_RecordsNewestFirst(t *testing.T) {
	conn := setupPostgres(t)
	store := ledger.NewPostgresStore(conn)
	ctx := context.Background()

	userID := createTestUser(t, conn, decimal.NewFromInt(10000))

	for i := 1; i <= 3; i++ {
		_, err := store.AppendAndAdjustBalance(ctx, userID, ledger.Record{
			Symbol:   "MSFT",
			Quantity: int64(i),
			Price:    decimal.NewFromInt(100),
			Kind:     ledger.KindBuy,
		}, decimal.NewFromInt(10000))
		require.NoError(t, err)
	}

	records, err := store.Records(ctx, userID, "MSFT")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, int64(3), records[0].Quantity)
	assert.Equal(t, int64(1), records[2].Quantity)
}
