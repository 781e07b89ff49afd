package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one immutable row of the append-only trade log.
// Quantity is signed: positive for a buy, negative for a sell.
type Transaction struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
}

// CashFlow returns the signed cash movement of the transaction from the
// user's perspective: negative for a buy, positive for a sell.
func (t *Transaction) CashFlow() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(-t.Quantity))
}

// Holding is the derived net position of a user in one symbol.
type Holding struct {
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
}

// Quote is a momentary price lookup result. Never persisted.
type Quote struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// PortfolioRow is one displayed position: a held symbol with its live price.
type PortfolioRow struct {
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Quantity     int64           `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Total        decimal.Decimal `json:"total"`
	PriceDisplay string          `json:"price_display"`
	TotalDisplay string          `json:"total_display"`
}

// Portfolio is the full valuation view for one user: held positions at live
// prices plus cash, summed into a grand total.
type Portfolio struct {
	Username          string          `json:"username"`
	Rows              []PortfolioRow  `json:"rows"`
	Cash              decimal.Decimal `json:"cash"`
	CashDisplay       string          `json:"cash_display"`
	GrandTotal        decimal.Decimal `json:"grand_total"`
	GrandTotalDisplay string          `json:"grand_total_display"`
}

// HoldingsFromTransactions derives net positions by summing signed quantities
// per symbol, sorted by symbol. Symbols that net to zero are dropped: they
// are neither displayable positions nor sellable.
func HoldingsFromTransactions(txns []Transaction) []Holding {
	sums := make(map[string]int64)
	for i := range txns {
		sums[txns[i].Symbol] += txns[i].Quantity
	}

	holdings := make([]Holding, 0, len(sums))
	for symbol, qty := range sums {
		if qty == 0 {
			continue
		}
		holdings = append(holdings, Holding{Symbol: symbol, Quantity: qty})
	}
	sort.Slice(holdings, func(i, j int) bool {
		return holdings[i].Symbol < holdings[j].Symbol
	})
	return holdings
}
