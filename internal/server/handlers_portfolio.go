package server

import (
	"net/http"

	"github.com/Jayashbyhedger/Finance-Website/internal/common"
	"github.com/Jayashbyhedger/Finance-Website/internal/models"
)

// requireUser returns the authenticated user id, or writes a 401 and returns
// false when the request carries no valid session.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := common.ResolveUserID(r.Context())
	if userID == "" {
		WriteError(w, http.StatusUnauthorized, "Must be logged in")
		return "", false
	}
	return userID, true
}

// handleIndex handles GET /: the portfolio view.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	portfolio, err := s.app.PortfolioService.ComputePortfolio(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Portfolio computation failed")
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, portfolio)
}

// handleBuy handles GET/POST /buy.
func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		user, err := s.app.Storage.Users().GetUser(r.Context(), userID)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"cash":         user.Cash,
			"cash_display": models.USD(user.Cash),
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	shares, err := ParseShares(r.PostFormValue("shares"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	if _, err := s.app.PortfolioService.ExecuteBuy(r.Context(), userID, r.PostFormValue("symbol"), shares); err != nil {
		WriteDomainError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleSell handles GET/POST /sell.
func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		symbols, err := s.app.PortfolioService.SellableSymbols(r.Context(), userID)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		if symbols == nil {
			symbols = []string{}
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"symbols": symbols})
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	shares, err := ParseShares(r.PostFormValue("shares"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	if _, err := s.app.PortfolioService.ExecuteSell(r.Context(), userID, r.PostFormValue("symbol"), shares); err != nil {
		WriteDomainError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleQuote handles GET/POST /quote.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	if _, ok := requireUser(w, r); !ok {
		return
	}

	if r.Method == http.MethodGet {
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"fields": []string{"symbol"},
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	quote, err := s.app.PortfolioService.GetQuote(r.Context(), r.PostFormValue("symbol"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":        quote.Symbol,
		"name":          quote.Name,
		"price":         quote.Price,
		"price_display": models.USD(quote.Price),
	})
}

// handleHistory handles GET /history.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	txns, err := s.app.PortfolioService.History(r.Context(), userID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if txns == nil {
		txns = []models.Transaction{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"transactions": txns})
}
