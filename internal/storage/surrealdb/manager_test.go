package surrealdb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealdb.go"

	"github.com/Jayashbyhedger/Finance-Website/internal/common"
	"github.com/Jayashbyhedger/Finance-Website/internal/models"
)

// newTestManager connects to the SurrealDB instance named by
// FINANCE_TEST_SURREALDB_ADDR and provisions a fresh database for the test.
// Tests are skipped when the variable is unset so the suite runs without a
// live database.
func newTestManager(t *testing.T) *Manager {
	t.Helper()

	addr := os.Getenv("FINANCE_TEST_SURREALDB_ADDR")
	if addr == "" {
		t.Skip("FINANCE_TEST_SURREALDB_ADDR not set; skipping SurrealDB integration test")
	}

	ctx := context.Background()
	db, err := surrealdb.New(addr)
	require.NoError(t, err)

	_, err = db.SignIn(ctx, map[string]interface{}{
		"user": "root",
		"pass": "root",
	})
	require.NoError(t, err)

	// Isolated database per test run
	dbName := fmt.Sprintf("finance_test_%s", uuid.New().String()[:8])
	require.NoError(t, db.Use(ctx, "finance_test", dbName))

	m, err := newManager(ctx, db, common.NewSilentLogger())
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func newStoredUser(cash string) *models.User {
	return &models.User{
		ID:           uuid.NewString(),
		Username:     "user-" + uuid.New().String()[:8],
		PasswordHash: "$2a$10$fakehashfakehashfakehash",
		Cash:         decimal.RequireFromString(cash),
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestUserStore_RoundTrip(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	user := newStoredUser("10000")
	require.NoError(t, m.Users().CreateUser(ctx, user))

	got, err := m.Users().GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Username, got.Username)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)
	assert.True(t, got.Cash.Equal(user.Cash), "cash = %s", got.Cash)

	byName, err := m.Users().GetUserByUsername(ctx, user.Username)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
}

func TestUserStore_NotFound(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.Users().GetUser(ctx, uuid.NewString())
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	_, err = m.Users().GetUserByUsername(ctx, "nobody-here")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestUserStore_DuplicateUsername(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	user := newStoredUser("10000")
	require.NoError(t, m.Users().CreateUser(ctx, user))

	dup := newStoredUser("10000")
	dup.Username = user.Username
	err := m.Users().CreateUser(ctx, dup)
	assert.ErrorIs(t, err, models.ErrUsernameTaken)

	// original row untouched
	got, err := m.Users().GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)
}

func TestLedgerStore_RecordTradeAndList(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	user := newStoredUser("10000")
	require.NoError(t, m.Users().CreateUser(ctx, user))

	buy := &models.Transaction{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Symbol:    "AAPL",
		Price:     decimal.RequireFromString("50.00"),
		Quantity:  10,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, m.Ledger().RecordTrade(ctx, user.ID, decimal.RequireFromString("9500"), buy))

	sell := &models.Transaction{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Symbol:    "AAPL",
		Price:     decimal.RequireFromString("60.00"),
		Quantity:  -4,
		CreatedAt: time.Now().UTC().Add(time.Second),
	}
	require.NoError(t, m.Ledger().RecordTrade(ctx, user.ID, decimal.RequireFromString("9740"), sell))

	// cash reflects the last committed trade
	got, err := m.Users().GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.Cash.Equal(decimal.RequireFromString("9740")), "cash = %s", got.Cash)

	// log is complete and oldest first
	txns, err := m.Ledger().ListTransactions(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, int64(10), txns[0].Quantity)
	assert.True(t, txns[0].Price.Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, int64(-4), txns[1].Quantity)

	holdings := models.HoldingsFromTransactions(txns)
	require.Len(t, holdings, 1)
	assert.Equal(t, int64(6), holdings[0].Quantity)
}

func TestLedgerStore_ListIsPerUser(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	alice := newStoredUser("10000")
	bob := newStoredUser("10000")
	require.NoError(t, m.Users().CreateUser(ctx, alice))
	require.NoError(t, m.Users().CreateUser(ctx, bob))

	txn := &models.Transaction{
		ID:        uuid.NewString(),
		UserID:    alice.ID,
		Symbol:    "AAPL",
		Price:     decimal.RequireFromString("50.00"),
		Quantity:  1,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, m.Ledger().RecordTrade(ctx, alice.ID, decimal.RequireFromString("9950"), txn))

	txns, err := m.Ledger().ListTransactions(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, txns)
}
