package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Jayashbyhedger/Finance-Website/internal/models"
)

// ErrorResponse is the standard error format for REST API responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteDomainError maps a domain error to its status code and writes it.
// Client mistakes are 403 (409 for username conflicts), quote provider
// faults are 502, anything unrecognized is a 500.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrSymbolNotFound),
		errors.Is(err, models.ErrInsufficientFunds),
		errors.Is(err, models.ErrInsufficientShares),
		errors.Is(err, models.ErrInvalidCredentials):
		WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrUsernameTaken):
		WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrQuoteUnavailable):
		WriteError(w, http.StatusBadGateway, models.ErrQuoteUnavailable.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// RequireMethod validates the HTTP method and returns true if it matches.
// If it doesn't match, it writes a 405 response and returns false.
func RequireMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	return false
}

// ParseShares converts a form field to a positive share count.
func ParseShares(value string) (int64, error) {
	shares, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || shares < 1 {
		return 0, fmt.Errorf("%w: shares must be a positive whole number", models.ErrInvalidInput)
	}
	return shares, nil
}
