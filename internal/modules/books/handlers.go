package books

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/advisordash/rebalancer/internal/domain"
)

// Handlers provides HTTP handlers for the advisor book
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new books handlers instance
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("module", "books_handlers").Logger(),
	}
}

// RegisterRoutes registers all book routes
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/clients", func(r chi.Router) {
		r.Get("/", h.ListClients)
		r.Post("/", h.CreateClient)
		r.Route("/{clientID}", func(r chi.Router) {
			r.Get("/", h.GetClient)
			r.Put("/", h.RenameClient)
			r.Delete("/", h.DeleteClient)
			r.Post("/accounts", h.CreateAccount)
		})
	})

	r.Route("/accounts/{accountID}", func(r chi.Router) {
		r.Put("/cash", h.UpdateCash)
		r.Delete("/", h.DeleteAccount)
		r.Post("/positions", h.AddPosition)
	})

	r.Route("/positions/{positionID}", func(r chi.Router) {
		r.Put("/", h.UpdatePosition)
		r.Delete("/", h.RemovePosition)
	})
}

// ListClients returns every client with its aggregate value
func (h *Handlers) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.Clients()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list clients")
		http.Error(w, "Failed to list clients", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, clients)
}

// CreateClientRequest carries a new client name
type CreateClientRequest struct {
	Name string `json:"name"`
}

// CreateClient adds a client
func (h *Handlers) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	client, err := h.service.CreateClient(req.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusCreated, client)
}

// GetClient returns the full client tree
func (h *Handlers) GetClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	client, err := h.service.GetClient(clientID)
	if err != nil {
		h.log.Error().Err(err).Str("client_id", clientID).Msg("Failed to load client")
		http.Error(w, "Failed to load client", http.StatusInternalServerError)
		return
	}
	if client == nil {
		http.Error(w, "Client not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, client)
}

// RenameClient renames a client
func (h *Handlers) RenameClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := h.service.RenameClient(clientID, req.Name); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteClient removes a client
func (h *Handlers) DeleteClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	if err := h.service.DeleteClient(clientID); err != nil {
		h.log.Error().Err(err).Str("client_id", clientID).Msg("Failed to delete client")
		http.Error(w, "Failed to delete client", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateAccountRequest carries a new account
type CreateAccountRequest struct {
	Name string  `json:"name"`
	Type string  `json:"type"`
	Cash float64 `json:"cash"`
}

// CreateAccount adds an account under a client
func (h *Handlers) CreateAccount(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	account, err := h.service.CreateAccount(clientID, req.Name, req.Type, req.Cash)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusCreated, account)
}

// UpdateCashRequest carries a cash balance edit
type UpdateCashRequest struct {
	Cash float64 `json:"cash"`
}

// UpdateCash sets an account's sweep balance
func (h *Handlers) UpdateCash(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	var req UpdateCashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateAccountCash(accountID, req.Cash); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAccount removes an account
func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	if err := h.service.DeleteAccount(accountID); err != nil {
		h.log.Error().Err(err).Str("account_id", accountID).Msg("Failed to delete account")
		http.Error(w, "Failed to delete account", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddPositionRequest carries a ticker the advisor typed in
type AddPositionRequest struct {
	Symbol string `json:"symbol"`
}

// AddPosition creates a position from a symbol
func (h *Handlers) AddPosition(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	var req AddPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Symbol == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	position, err := h.service.AddPosition(accountID, req.Symbol)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusCreated, position)
}

// UpdatePosition applies a position edit
func (h *Handlers) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "positionID")

	var pos domain.Position
	if err := json.NewDecoder(r.Body).Decode(&pos); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	pos.ID = positionID

	if err := h.service.UpdatePosition(pos); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemovePosition deletes a position
func (h *Handlers) RemovePosition(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "positionID")

	if err := h.service.RemovePosition(positionID); err != nil {
		h.log.Error().Err(err).Str("position_id", positionID).Msg("Failed to remove position")
		http.Error(w, "Failed to remove position", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
