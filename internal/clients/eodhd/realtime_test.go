package eodhd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Jayashbyhedger/Finance-Website/internal/models"
)

func TestGetQuote_ParsesResponse(t *testing.T) {
	mockResp := map[string]interface{}{
		"code":      "AAPL",
		"timestamp": int64(1711670340),
		"open":      149.10,
		"high":      151.50,
		"low":       148.80,
		"close":     150.25,
		"volume":    float64(5000000),
	}

	var capturedPath string
	var capturedToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedToken = r.URL.Query().Get("api_token")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(mockResp)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	quote, err := client.GetQuote(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("GetQuote failed: %v", err)
	}

	if capturedPath != "/real-time/AAPL" {
		t.Errorf("expected path /real-time/AAPL, got %s", capturedPath)
	}
	if capturedToken != "test-key" {
		t.Errorf("expected api_token test-key, got %s", capturedToken)
	}
	if quote.Symbol != "AAPL" {
		t.Errorf("expected symbol AAPL, got %s", quote.Symbol)
	}
	if quote.Name != "AAPL" {
		t.Errorf("expected name fallback to code, got %s", quote.Name)
	}
	if !quote.Price.Equal(decimal.NewFromFloat(150.25)) {
		t.Errorf("expected price 150.25, got %s", quote.Price)
	}
}

func TestGetQuote_NamePresent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code":  "AAPL",
			"name":  "Apple Inc",
			"close": 150.25,
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	quote, err := client.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetQuote failed: %v", err)
	}
	if quote.Name != "Apple Inc" {
		t.Errorf("expected name 'Apple Inc', got %s", quote.Name)
	}
}

func TestGetQuote_UnknownSymbol(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload map[string]interface{}
	}{
		{"404 response", http.StatusNotFound, nil},
		{"422 response", http.StatusUnprocessableEntity, nil},
		{"200 with empty code", http.StatusOK, map[string]interface{}{"code": "", "close": 0.0}},
		{"200 with NA close", http.StatusOK, map[string]interface{}{"code": "NOPE", "close": "NA"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				if tt.payload != nil {
					json.NewEncoder(w).Encode(tt.payload)
				}
			}))
			defer srv.Close()

			client := NewClient("test-key", WithBaseURL(srv.URL))
			_, err := client.GetQuote(context.Background(), "NOPE")
			if !errors.Is(err, models.ErrSymbolNotFound) {
				t.Errorf("expected ErrSymbolNotFound, got %v", err)
			}
		})
	}
}

func TestGetQuote_EmptySymbol(t *testing.T) {
	client := NewClient("test-key")
	_, err := client.GetQuote(context.Background(), "   ")
	if !errors.Is(err, models.ErrSymbolNotFound) {
		t.Errorf("expected ErrSymbolNotFound, got %v", err)
	}
}

func TestGetQuote_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream broke"))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.GetQuote(context.Background(), "AAPL")
	if !errors.Is(err, models.ErrQuoteUnavailable) {
		t.Errorf("expected ErrQuoteUnavailable, got %v", err)
	}
}

func TestGetQuote_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.GetQuote(context.Background(), "AAPL")
	if !errors.Is(err, models.ErrQuoteUnavailable) {
		t.Errorf("expected ErrQuoteUnavailable, got %v", err)
	}
}

func TestFlexFloat64(t *testing.T) {
	var payload struct {
		Close flexFloat64 `json:"close"`
	}

	for _, tt := range []struct {
		raw  string
		want float64
	}{
		{`{"close": 43.25}`, 43.25},
		{`{"close": "43.25"}`, 43.25},
		{`{"close": "NA"}`, 0},
		{`{"close": "N/A"}`, 0},
		{`{"close": ""}`, 0},
	} {
		payload.Close = 0
		if err := json.Unmarshal([]byte(tt.raw), &payload); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.raw, err)
		}
		if float64(payload.Close) != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.raw, tt.want, float64(payload.Close))
		}
	}
}
