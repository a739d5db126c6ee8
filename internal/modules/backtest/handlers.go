package backtest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers provides HTTP handlers for backtest endpoints
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new backtest handlers instance
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("module", "backtest_handlers").Logger(),
	}
}

// RegisterRoutes registers all backtest routes
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Post("/backtest/accounts/{accountID}", h.Run)
}

// Run simulates an account's targets and returns the result
func (h *Handlers) Run(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	result, err := h.service.Run(accountID)
	if err != nil {
		h.log.Error().Err(err).Str("account_id", accountID).Msg("Backtest failed")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode backtest result")
	}
}
