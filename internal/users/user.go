package users

import "time"

// User is an account identity. Cash and positions live in the ledger; the
// credential hash never leaves this package's repositories.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
