package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// PostgresStore persists the ledger in the users and transactions tables.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) AppendAndAdjustBalance(ctx context.Context, userID int64, rec Record, newBalance decimal.Decimal) (Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Row lock backing the engine's per-user critical section across
	// multiple processes.
	var current decimal.Decimal
	err = tx.QueryRowContext(ctx,
		"SELECT cash_balance FROM users WHERE id = $1 FOR UPDATE",
		userID,
	).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrUserNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("lock balance: %w", err)
	}

	rec.UserID = userID
	err = tx.QueryRowContext(ctx, `
        INSERT INTO transactions (user_id, symbol, quantity, price, kind)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `, rec.UserID, rec.Symbol, rec.Quantity, rec.Price, rec.Kind).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("insert record: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE users SET cash_balance = $1 WHERE id = $2",
		newBalance, userID,
	)
	if err != nil {
		return Record{}, fmt.Errorf("update balance: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("commit: %w", err)
	}

	return rec, nil
}

func (s *PostgresStore) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.db.QueryRowContext(ctx,
		"SELECT cash_balance FROM users WHERE id = $1",
		userID,
	).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Decimal{}, ErrUserNotFound
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("read balance: %w", err)
	}
	return balance, nil
}

func (s *PostgresStore) Records(ctx context.Context, userID int64, symbol string) ([]Record, error) {
	query := `
        SELECT id, user_id, symbol, quantity, price, kind, created_at
        FROM transactions
        WHERE user_id = $1
        ORDER BY created_at DESC, id DESC
    `
	args := []any{userID}
	if symbol != "" {
		query = `
        SELECT id, user_id, symbol, quantity, price, kind, created_at
        FROM transactions
        WHERE user_id = $1 AND symbol = $2
        ORDER BY created_at DESC, id DESC
    `
		args = append(args, symbol)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.UserID, &r.Symbol, &r.Quantity, &r.Price, &r.Kind, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	return records, nil
}
