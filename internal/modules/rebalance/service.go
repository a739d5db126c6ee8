package rebalance

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/advisordash/rebalancer/internal/domain"
	"github.com/advisordash/rebalancer/internal/modules/books"
)

// Service turns stored book state into account plans and routes target
// edits back into the book. All arithmetic lives in the pure engine
// functions; the service only loads snapshots and persists the
// canonical target percentage.
type Service struct {
	books     *books.Service
	accounts  *books.AccountRepository
	positions *books.PositionRepository
	log       zerolog.Logger
}

// NewService creates a new rebalance service
func NewService(
	booksService *books.Service,
	accounts *books.AccountRepository,
	positions *books.PositionRepository,
	log zerolog.Logger,
) *Service {
	return &Service{
		books:     booksService,
		accounts:  accounts,
		positions: positions,
		log:       log.With().Str("service", "rebalance").Logger(),
	}
}

// AccountPlan computes the rebalancing view for one account against
// the client-wide portfolio value.
func (s *Service) AccountPlan(accountID string) (*AccountPlan, error) {
	account, err := s.accounts.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account %s not found", accountID)
	}

	positions, err := s.positions.GetByAccount(accountID)
	if err != nil {
		return nil, err
	}
	account.Positions = positions

	totalValue, err := s.books.ClientValue(account.ClientID)
	if err != nil {
		return nil, err
	}

	plan := PlanAccount(*account, totalValue)
	return &plan, nil
}

// SetTargetPct stores a direct goal-percent edit and returns the
// recomputed plan for the position's account.
func (s *Service) SetTargetPct(positionID string, pct float64) (*AccountPlan, error) {
	pos, err := s.positions.GetByID(positionID)
	if err != nil {
		return nil, err
	}
	if pos == nil {
		return nil, fmt.Errorf("position %s not found", positionID)
	}

	if err := s.positions.SetTargetPct(positionID, pct); err != nil {
		return nil, err
	}

	return s.AccountPlan(pos.AccountID)
}

// SetGoalValue back-solves a goal-dollar edit into the canonical target
// percentage, stores it, and returns the recomputed plan. The dollar
// figure itself is never persisted.
func (s *Service) SetGoalValue(positionID string, goalValue float64) (*AccountPlan, error) {
	pos, err := s.positions.GetByID(positionID)
	if err != nil {
		return nil, err
	}
	if pos == nil {
		return nil, fmt.Errorf("position %s not found", positionID)
	}

	account, err := s.accounts.GetByID(pos.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account %s not found", pos.AccountID)
	}

	totalValue, err := s.books.ClientValue(account.ClientID)
	if err != nil {
		return nil, err
	}

	pct := TargetPctForGoalValue(goalValue, totalValue)
	if err := s.positions.SetTargetPct(positionID, pct); err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("position_id", positionID).
		Float64("goal_value", goalValue).
		Float64("target_pct", pct).
		Msg("Goal value back-solved to target pct")

	return s.AccountPlan(pos.AccountID)
}

// SetRoundingMode changes how a position's fractional trade quantity
// is resolved.
func (s *Service) SetRoundingMode(positionID string, mode domain.RoundingMode) (*AccountPlan, error) {
	pos, err := s.positions.GetByID(positionID)
	if err != nil {
		return nil, err
	}
	if pos == nil {
		return nil, fmt.Errorf("position %s not found", positionID)
	}

	pos.RoundingMode = mode
	if err := s.positions.Update(*pos); err != nil {
		return nil, err
	}

	return s.AccountPlan(pos.AccountID)
}
