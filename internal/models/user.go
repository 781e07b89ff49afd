// Package models defines the domain types for the finance server
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered account. Cash is the only mutable field;
// it is adjusted exclusively through trade execution.
type User struct {
	ID           string          `json:"id"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"-"`
	Cash         decimal.Decimal `json:"cash"`
	CreatedAt    time.Time       `json:"created_at"`
}
