package interfaces

import (
	"context"

	"github.com/Jayashbyhedger/Finance-Website/internal/models"
)

// QuoteClient provides access to the external price-lookup service.
type QuoteClient interface {
	// GetQuote retrieves the current quote for a ticker symbol.
	// Returns models.ErrSymbolNotFound when the symbol does not resolve.
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)
}
