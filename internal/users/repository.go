package users

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("users: not found")
	ErrUsernameTaken = errors.New("users: username taken")
)

type Repository interface {
	// Create inserts a user and initializes their cash balance in the same
	// step.
	Create(ctx context.Context, username, passwordHash string, startingCash decimal.Decimal) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}
