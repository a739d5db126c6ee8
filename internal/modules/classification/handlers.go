package classification

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers provides HTTP handlers for classification endpoints
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new classification handlers instance
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("module", "classification_handlers").Logger(),
	}
}

// RegisterRoutes registers all classification routes
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/classification", func(r chi.Router) {
		r.Post("/scan/{clientID}", h.ScanClient)
	})
}

// ScanClientResponse is the response for a classification scan
type ScanClientResponse struct {
	Updated int `json:"updated"`
}

// ScanClient classifies every position held by a client
func (h *Handlers) ScanClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	updated, err := h.service.ScanClient(r.Context(), clientID)
	if err != nil {
		h.log.Error().Err(err).Str("client_id", clientID).Msg("Classification scan failed")
		http.Error(w, "Failed to scan client", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ScanClientResponse{Updated: updated})
}
