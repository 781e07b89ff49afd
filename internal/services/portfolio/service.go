// Package portfolio implements the portfolio engine: it derives holdings and
// valuation from the append-only transaction log and enforces trade legality.
package portfolio

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Jayashbyhedger/Finance-Website/internal/common"
	"github.com/Jayashbyhedger/Finance-Website/internal/interfaces"
	"github.com/Jayashbyhedger/Finance-Website/internal/models"
)

// Service implements interfaces.PortfolioService.
//
// Trade execution for one user is serialized with a per-user mutex held
// across the read-validate-write sequence, so two concurrent orders cannot
// both be validated against the same cash balance.
type Service struct {
	storage interfaces.StorageManager
	quotes  interfaces.QuoteClient
	logger  *common.Logger
	now     func() time.Time // injectable clock for testing

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

// NewService creates a new portfolio service.
func NewService(storage interfaces.StorageManager, quotes interfaces.QuoteClient, logger *common.Logger) *Service {
	return &Service{
		storage:   storage,
		quotes:    quotes,
		logger:    logger,
		now:       time.Now,
		userLocks: make(map[string]*sync.Mutex),
	}
}

// lockUser acquires the mutation lock for one user and returns the unlock.
func (s *Service) lockUser(userID string) func() {
	s.mu.Lock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// ComputePortfolio values all held positions at live prices. One price lookup
// per distinct held symbol per call; results are never cached.
func (s *Service) ComputePortfolio(ctx context.Context, userID string) (*models.Portfolio, error) {
	user, err := s.storage.Users().GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	txns, err := s.storage.Ledger().ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	grandTotal := user.Cash
	var rows []models.PortfolioRow
	for _, holding := range models.HoldingsFromTransactions(txns) {
		if holding.Quantity <= 0 {
			continue
		}

		quote, err := s.quotes.GetQuote(ctx, holding.Symbol)
		if err != nil {
			return nil, fmt.Errorf("price lookup for held symbol %s: %w", holding.Symbol, err)
		}

		total := quote.Price.Mul(decimal.NewFromInt(holding.Quantity))
		grandTotal = grandTotal.Add(total)
		rows = append(rows, models.PortfolioRow{
			Symbol:       holding.Symbol,
			Name:         quote.Name,
			Quantity:     holding.Quantity,
			Price:        quote.Price,
			Total:        total,
			PriceDisplay: models.USD(quote.Price),
			TotalDisplay: models.USD(total),
		})
	}

	return &models.Portfolio{
		Username:          user.Username,
		Rows:              rows,
		Cash:              user.Cash,
		CashDisplay:       models.USD(user.Cash),
		GrandTotal:        grandTotal,
		GrandTotalDisplay: models.USD(grandTotal),
	}, nil
}

// ExecuteBuy purchases shares at the current looked-up price. The price is
// fetched once and reused for both validation and the recorded transaction.
func (s *Service) ExecuteBuy(ctx context.Context, userID, symbol string, shares int64) (*models.Transaction, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, fmt.Errorf("%w: symbol is required", models.ErrInvalidInput)
	}
	if shares < 1 {
		return nil, fmt.Errorf("%w: shares must be a positive number", models.ErrInvalidInput)
	}

	unlock := s.lockUser(userID)
	defer unlock()

	quote, err := s.quotes.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	user, err := s.storage.Users().GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cost := quote.Price.Mul(decimal.NewFromInt(shares))
	if cost.GreaterThan(user.Cash) {
		return nil, fmt.Errorf("%w: need %s, have %s", models.ErrInsufficientFunds, models.USD(cost), models.USD(user.Cash))
	}

	txn := &models.Transaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		Symbol:    quote.Symbol,
		Price:     quote.Price,
		Quantity:  shares,
		CreatedAt: s.now(),
	}
	if err := s.storage.Ledger().RecordTrade(ctx, userID, user.Cash.Sub(cost), txn); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("symbol", quote.Symbol).
		Int64("shares", shares).
		Str("price", quote.Price.String()).
		Msg("Buy executed")
	return txn, nil
}

// ExecuteSell sells shares at the current looked-up price. The net holding,
// recomputed from the transaction log, must cover the requested amount.
func (s *Service) ExecuteSell(ctx context.Context, userID, symbol string, shares int64) (*models.Transaction, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, fmt.Errorf("%w: symbol is required", models.ErrInvalidInput)
	}
	if shares < 1 {
		return nil, fmt.Errorf("%w: shares must be a positive number", models.ErrInvalidInput)
	}

	unlock := s.lockUser(userID)
	defer unlock()

	quote, err := s.quotes.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	txns, err := s.storage.Ledger().ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	var held int64
	for _, holding := range models.HoldingsFromTransactions(txns) {
		if holding.Symbol == quote.Symbol {
			held = holding.Quantity
			break
		}
	}
	if held < shares {
		return nil, fmt.Errorf("%w: holding %d of %s, requested %d", models.ErrInsufficientShares, held, quote.Symbol, shares)
	}

	user, err := s.storage.Users().GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	proceeds := quote.Price.Mul(decimal.NewFromInt(shares))
	txn := &models.Transaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		Symbol:    quote.Symbol,
		Price:     quote.Price,
		Quantity:  -shares,
		CreatedAt: s.now(),
	}
	if err := s.storage.Ledger().RecordTrade(ctx, userID, user.Cash.Add(proceeds), txn); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("symbol", quote.Symbol).
		Int64("shares", shares).
		Str("price", quote.Price.String()).
		Msg("Sell executed")
	return txn, nil
}

// SellableSymbols lists symbols with a strictly positive net holding, sorted.
func (s *Service) SellableSymbols(ctx context.Context, userID string) ([]string, error) {
	txns, err := s.storage.Ledger().ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	var symbols []string
	for _, holding := range models.HoldingsFromTransactions(txns) {
		if holding.Quantity > 0 {
			symbols = append(symbols, holding.Symbol)
		}
	}
	return symbols, nil
}

// History returns the user's full transaction log, oldest first.
func (s *Service) History(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.storage.Ledger().ListTransactions(ctx, userID)
}

// GetQuote validates and performs a single price lookup.
func (s *Service) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, fmt.Errorf("%w: symbol is required", models.ErrInvalidInput)
	}
	return s.quotes.GetQuote(ctx, symbol)
}

// Ensure Service implements PortfolioService
var _ interfaces.PortfolioService = (*Service)(nil)
