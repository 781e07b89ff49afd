package models

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// USD formats a decimal amount as a US dollar display string ("$9,740.00").
func USD(amount decimal.Decimal) string {
	cents := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}
