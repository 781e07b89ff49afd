package models

import "errors"

// Domain errors surfaced to the HTTP layer. Handlers map these to status
// codes; everything else is treated as a server fault.
var (
	// ErrInvalidInput marks a missing or malformed request field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSymbolNotFound marks a ticker the price lookup could not resolve.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrQuoteUnavailable marks a price lookup that failed for reasons other
	// than an unknown symbol, such as a provider outage or network fault.
	ErrQuoteUnavailable = errors.New("quote service unavailable")

	// ErrInsufficientFunds marks a buy whose cost exceeds the cash balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientShares marks a sell larger than the net holding.
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrInvalidCredentials marks a failed username/password check.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUsernameTaken marks a registration against an existing username.
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrUserNotFound marks a lookup of a user id that does not exist.
	ErrUserNotFound = errors.New("user not found")
)
