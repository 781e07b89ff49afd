package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/surrealdb/surrealdb.go"

	"github.com/Jayashbyhedger/Finance-Website/internal/common"
	"github.com/Jayashbyhedger/Finance-Website/internal/models"
)

// transactionRecord is the storage shape of one trade-log row. Price crosses
// the boundary as a decimal string, quantity stays a signed integer.
type transactionRecord struct {
	TxnID     string    `json:"txn_id"`
	UserID    string    `json:"user_id"`
	Symbol    string    `json:"symbol"`
	Price     string    `json:"price"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

func toTransactionRecord(t *models.Transaction) *transactionRecord {
	return &transactionRecord{
		TxnID:     t.ID,
		UserID:    t.UserID,
		Symbol:    t.Symbol,
		Price:     t.Price.String(),
		Quantity:  t.Quantity,
		CreatedAt: t.CreatedAt,
	}
}

func fromTransactionRecord(r *transactionRecord) (models.Transaction, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid stored price %q for transaction %s: %w", r.Price, r.TxnID, err)
	}
	return models.Transaction{
		ID:        r.TxnID,
		UserID:    r.UserID,
		Symbol:    r.Symbol,
		Price:     price,
		Quantity:  r.Quantity,
		CreatedAt: r.CreatedAt,
	}, nil
}

type LedgerStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewLedgerStore(db *surrealdb.DB, logger *common.Logger) *LedgerStore {
	return &LedgerStore{
		db:     db,
		logger: logger,
	}
}

func (s *LedgerStore) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	sql := "SELECT * FROM transactions WHERE user_id = $user_id ORDER BY created_at ASC"
	vars := map[string]any{"user_id": userID}

	results, err := surrealdb.Query[[]transactionRecord](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	var txns []models.Transaction
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			txn, err := fromTransactionRecord(&(*results)[0].Result[i])
			if err != nil {
				return nil, err
			}
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

// RecordTrade applies one trade as a single SurrealDB transaction: the cash
// update and the log append commit together or not at all.
func (s *LedgerStore) RecordTrade(ctx context.Context, userID string, newCash decimal.Decimal, txn *models.Transaction) error {
	sql := `BEGIN TRANSACTION;
UPDATE type::record('user', $user_id) SET cash = $cash;
CREATE type::record('transactions', $txn_id) CONTENT $txn;
COMMIT TRANSACTION;`
	vars := map[string]any{
		"user_id": userID,
		"cash":    newCash.String(),
		"txn_id":  txn.ID,
		"txn":     toTransactionRecord(txn),
	}

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to record trade: %w", err)
	}

	s.logger.Debug().
		Str("user_id", userID).
		Str("symbol", txn.Symbol).
		Int64("quantity", txn.Quantity).
		Str("price", txn.Price.String()).
		Msg("Trade recorded")
	return nil
}

func (s *LedgerStore) Close() error {
	return nil
}
