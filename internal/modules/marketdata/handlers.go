package marketdata

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers provides HTTP handlers for market data endpoints
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new market data handlers instance
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("module", "marketdata_handlers").Logger(),
	}
}

// RegisterRoutes registers all market data routes
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/market", func(r chi.Router) {
		r.Get("/quote/{symbol}", h.GetQuote)
		r.Post("/refresh", h.Refresh)
	})
}

// GetQuote returns a cached or fresh quote for one symbol
func (h *Handlers) GetQuote(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	quote, err := h.service.Quote(symbol)
	if err != nil {
		h.log.Error().Err(err).Str("symbol", symbol).Msg("Quote failed")
		http.Error(w, "Failed to fetch quote", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quote)
}

// RefreshResponse reports how many symbols were re-priced
type RefreshResponse struct {
	Refreshed int `json:"refreshed"`
}

// Refresh re-quotes every held symbol immediately
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshed, err := h.service.RefreshAll()
	if err != nil {
		h.log.Error().Err(err).Msg("Refresh failed")
		http.Error(w, "Failed to refresh prices", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RefreshResponse{Refreshed: refreshed})
}
