package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func txn(symbol string, quantity int64, price string) Transaction {
	return Transaction{
		Symbol:   symbol,
		Quantity: quantity,
		Price:    decimal.RequireFromString(price),
	}
}

func TestHoldingsFromTransactions(t *testing.T) {
	t.Run("sums signed quantities per symbol", func(t *testing.T) {
		holdings := HoldingsFromTransactions([]Transaction{
			txn("AAPL", 10, "50"),
			txn("NFLX", 3, "10"),
			txn("AAPL", -4, "60"),
		})

		assert.Equal(t, []Holding{
			{Symbol: "AAPL", Quantity: 6},
			{Symbol: "NFLX", Quantity: 3},
		}, holdings)
	})

	t.Run("drops zero net positions", func(t *testing.T) {
		holdings := HoldingsFromTransactions([]Transaction{
			txn("AAPL", 5, "50"),
			txn("AAPL", -5, "55"),
			txn("NFLX", 1, "10"),
		})

		assert.Equal(t, []Holding{{Symbol: "NFLX", Quantity: 1}}, holdings)
	})

	t.Run("empty log yields no holdings", func(t *testing.T) {
		assert.Empty(t, HoldingsFromTransactions(nil))
	})

	t.Run("sorted by symbol", func(t *testing.T) {
		holdings := HoldingsFromTransactions([]Transaction{
			txn("NFLX", 1, "10"),
			txn("GOOG", 2, "20"),
			txn("AAPL", 3, "30"),
		})

		symbols := make([]string, len(holdings))
		for i, h := range holdings {
			symbols[i] = h.Symbol
		}
		assert.Equal(t, []string{"AAPL", "GOOG", "NFLX"}, symbols)
	})
}

func TestTransactionCashFlow(t *testing.T) {
	buy := txn("AAPL", 10, "50")
	assert.True(t, buy.CashFlow().Equal(decimal.RequireFromString("-500")))

	sell := txn("AAPL", -4, "60")
	assert.True(t, sell.CashFlow().Equal(decimal.RequireFromString("240")))
}

func TestUSD(t *testing.T) {
	for _, tt := range []struct {
		amount string
		want   string
	}{
		{"10000", "$10,000.00"},
		{"9740", "$9,740.00"},
		{"0", "$0.00"},
		{"150.25", "$150.25"},
		{"0.5", "$0.50"},
		{"1234567.89", "$1,234,567.89"},
	} {
		got := USD(decimal.RequireFromString(tt.amount))
		assert.Equal(t, tt.want, got, "USD(%s)", tt.amount)
	}
}
