// Package interfaces defines service contracts for the finance server
package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Jayashbyhedger/Finance-Website/internal/models"
)

// UserStore persists user accounts.
type UserStore interface {
	// GetUser retrieves a user by id. Returns models.ErrUserNotFound if absent.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetUserByUsername retrieves a user by unique username.
	// Returns models.ErrUserNotFound if absent.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// CreateUser stores a new user. Returns models.ErrUsernameTaken when the
	// username is already registered.
	CreateUser(ctx context.Context, user *models.User) error
}

// LedgerStore persists the append-only transaction log and applies trades.
type LedgerStore interface {
	// ListTransactions returns all transactions for a user, oldest first.
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)

	// RecordTrade atomically sets the user's cash balance and appends one
	// transaction row. Either both mutations apply or neither does.
	RecordTrade(ctx context.Context, userID string, newCash decimal.Decimal, txn *models.Transaction) error
}

// StorageManager provides access to all storage areas.
type StorageManager interface {
	Users() UserStore
	Ledger() LedgerStore
	Close() error
}
