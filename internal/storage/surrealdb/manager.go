// Package surrealdb implements the ledger store on SurrealDB.
package surrealdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"

	"github.com/Jayashbyhedger/Finance-Website/internal/common"
	"github.com/Jayashbyhedger/Finance-Website/internal/interfaces"
)

// Manager implements interfaces.StorageManager using SurrealDB.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	userStore   *UserStore
	ledgerStore *LedgerStore
}

// NewManager creates a new StorageManager connected to SurrealDB.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	m, err := newManager(ctx, db, logger)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

// newManager defines the schema and wires the stores on an open connection.
// Split out so tests can reuse it against their own database.
func newManager(ctx context.Context, db *surrealdb.DB, logger *common.Logger) (*Manager, error) {
	// Define tables to ensure they exist (SurrealDB v3 errors on querying
	// non-existent tables). The unique index on username backs the
	// registration conflict check.
	statements := []string{
		"DEFINE TABLE IF NOT EXISTS user SCHEMALESS",
		"DEFINE TABLE IF NOT EXISTS transactions SCHEMALESS",
		"DEFINE INDEX IF NOT EXISTS user_username_idx ON user FIELDS username UNIQUE",
	}
	for _, sql := range statements {
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return nil, fmt.Errorf("failed to define schema (%s): %w", sql, err)
		}
	}

	m := &Manager{
		db:     db,
		logger: logger,
	}
	m.userStore = NewUserStore(db, logger)
	m.ledgerStore = NewLedgerStore(db, logger)
	return m, nil
}

func (m *Manager) Users() interfaces.UserStore {
	return m.userStore
}

func (m *Manager) Ledger() interfaces.LedgerStore {
	return m.ledgerStore
}

func (m *Manager) Close() error {
	m.db.Close(context.Background())
	return nil
}

// isNotFoundError reports whether a SurrealDB error signals a missing record.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}

// isUniqueIndexError reports whether a SurrealDB error signals a unique
// index violation.
func isUniqueIndexError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already contains") || strings.Contains(msg, "unique")
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
