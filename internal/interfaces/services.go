package interfaces

import (
	"context"

	"github.com/Jayashbyhedger/Finance-Website/internal/models"
)

// PortfolioService is the portfolio engine: it derives holdings and valuation
// from the transaction log and enforces trade legality.
type PortfolioService interface {
	// ComputePortfolio values all held positions at live prices.
	// One price lookup per distinct held symbol, no caching.
	ComputePortfolio(ctx context.Context, userID string) (*models.Portfolio, error)

	// ExecuteBuy purchases shares at the current looked-up price.
	ExecuteBuy(ctx context.Context, userID, symbol string, shares int64) (*models.Transaction, error)

	// ExecuteSell sells shares at the current looked-up price. The user's net
	// holding must cover the requested amount.
	ExecuteSell(ctx context.Context, userID, symbol string, shares int64) (*models.Transaction, error)

	// SellableSymbols lists symbols with a strictly positive net holding.
	SellableSymbols(ctx context.Context, userID string) ([]string, error)

	// History returns the user's full transaction log, oldest first.
	History(ctx context.Context, userID string) ([]models.Transaction, error)

	// GetQuote validates and performs a single price lookup.
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)
}

// AccountService handles registration and credential verification.
type AccountService interface {
	// Register creates a new account with the configured starting cash.
	Register(ctx context.Context, username, password, confirmation string) (*models.User, error)

	// Authenticate verifies credentials and returns the matching user.
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}
