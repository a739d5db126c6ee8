package rebalance

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/advisordash/rebalancer/internal/domain"
)

// Handlers provides HTTP handlers for rebalancing endpoints
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new rebalance handlers instance
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("module", "rebalance_handlers").Logger(),
	}
}

// RegisterRoutes registers all rebalancing routes
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/rebalance", func(r chi.Router) {
		r.Get("/accounts/{accountID}/plan", h.GetAccountPlan)
		r.Put("/positions/{positionID}/target-pct", h.SetTargetPct)
		r.Put("/positions/{positionID}/goal-value", h.SetGoalValue)
		r.Put("/positions/{positionID}/rounding-mode", h.SetRoundingMode)
	})
}

// GetAccountPlan returns the full rebalancing table for an account
func (h *Handlers) GetAccountPlan(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	plan, err := h.service.AccountPlan(accountID)
	if err != nil {
		h.log.Error().Err(err).Str("account_id", accountID).Msg("Failed to build account plan")
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	h.writePlan(w, plan)
}

// SetTargetPctRequest carries a direct goal-percent edit
type SetTargetPctRequest struct {
	TargetPct float64 `json:"target_pct"`
}

// SetTargetPct stores a goal-percent edit and returns the new plan
func (h *Handlers) SetTargetPct(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "positionID")

	var req SetTargetPctRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	plan, err := h.service.SetTargetPct(positionID, req.TargetPct)
	if err != nil {
		h.log.Error().Err(err).Str("position_id", positionID).Msg("Failed to set target pct")
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	h.writePlan(w, plan)
}

// SetGoalValueRequest carries a goal-dollar edit
type SetGoalValueRequest struct {
	GoalValue float64 `json:"goal_value"`
}

// SetGoalValue back-solves a dollar edit and returns the new plan
func (h *Handlers) SetGoalValue(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "positionID")

	var req SetGoalValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	plan, err := h.service.SetGoalValue(positionID, req.GoalValue)
	if err != nil {
		h.log.Error().Err(err).Str("position_id", positionID).Msg("Failed to set goal value")
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	h.writePlan(w, plan)
}

// SetRoundingModeRequest carries a rounding mode change
type SetRoundingModeRequest struct {
	RoundingMode string `json:"rounding_mode"`
}

// SetRoundingMode changes a position's rounding policy and returns the new plan
func (h *Handlers) SetRoundingMode(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "positionID")

	var req SetRoundingModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	plan, err := h.service.SetRoundingMode(positionID, domain.ParseRoundingMode(req.RoundingMode))
	if err != nil {
		h.log.Error().Err(err).Str("position_id", positionID).Msg("Failed to set rounding mode")
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	h.writePlan(w, plan)
}

func (h *Handlers) writePlan(w http.ResponseWriter, plan *AccountPlan) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(plan); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode plan")
	}
}
