package eodhd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Jayashbyhedger/Finance-Website/internal/interfaces"
	"github.com/Jayashbyhedger/Finance-Website/internal/models"
)

// realTimeResponse mirrors the /real-time/{ticker} payload. EODHD omits the
// name field on this endpoint for most exchanges; it is parsed when present.
type realTimeResponse struct {
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Timestamp int64       `json:"timestamp"`
	Open      flexFloat64 `json:"open"`
	High      flexFloat64 `json:"high"`
	Low       flexFloat64 `json:"low"`
	Close     flexFloat64 `json:"close"`
	Volume    flexFloat64 `json:"volume"`
}

// GetQuote retrieves the current quote for a ticker symbol.
// An unresolvable symbol maps to models.ErrSymbolNotFound; transport and
// provider failures map to models.ErrQuoteUnavailable.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, models.ErrSymbolNotFound
	}

	var resp realTimeResponse
	err := c.get(ctx, "/real-time/"+escapeTicker(symbol), nil, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusNotFound || apiErr.StatusCode == http.StatusUnprocessableEntity) {
			return nil, models.ErrSymbolNotFound
		}
		return nil, fmt.Errorf("%w: real-time quote for %s: %v", models.ErrQuoteUnavailable, symbol, err)
	}

	// EODHD answers 200 with zeroed fields for tickers it does not know.
	if resp.Code == "" || resp.Close == 0 {
		return nil, models.ErrSymbolNotFound
	}

	name := resp.Name
	if name == "" {
		name = resp.Code
	}

	return &models.Quote{
		Symbol: resp.Code,
		Name:   name,
		Price:  decimal.NewFromFloat(float64(resp.Close)),
	}, nil
}

// escapeTicker strips characters that would break the request path.
func escapeTicker(symbol string) string {
	return strings.ReplaceAll(symbol, "/", "")
}

// Ensure Client implements QuoteClient
var _ interfaces.QuoteClient = (*Client)(nil)
