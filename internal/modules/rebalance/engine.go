package rebalance

import (
	"math"

	"github.com/advisordash/rebalancer/internal/domain"
)

// The engine is pure: every function recomputes from the snapshot it is
// given, holds no state, and never returns an error. Degenerate inputs
// (zero price, zero portfolio value, over-allocated targets) degenerate
// to zero-valued or sign-carrying outputs so the dashboard can keep
// rendering mid-edit.

// PriceFactor returns the per-unit price used for trade-quantity math.
// Bond prices are quoted as percent of par, so a bond trading at 98.25
// costs 0.9825 per unit of face value.
func PriceFactor(kind domain.Kind, price float64) float64 {
	switch kind {
	case domain.KindBond:
		return price / 100
	case domain.KindCash:
		return 1.0
	default:
		return price
	}
}

// MarketValue computes the current dollar value of a position.
// A zero price yields zero, not an error.
func MarketValue(pos domain.Position) float64 {
	return pos.Quantity * PriceFactor(pos.Kind, pos.Price)
}

// Weight computes a market value's percentage of the total portfolio
// value. Defined as 0 when the total is 0 so no NaN/Inf ever reaches
// callers.
func Weight(marketValue, totalValue float64) float64 {
	if totalValue == 0 {
		return 0
	}
	return marketValue / totalValue * 100
}

// GoalValue derives the target dollar amount from the canonical target
// percentage.
func GoalValue(targetPct, totalValue float64) float64 {
	return totalValue * targetPct / 100
}

// TargetPctForGoalValue back-solves a dollar goal edit into the stored
// target percentage. TargetPct is the single source of truth; goal
// dollars are always re-derived from it.
func TargetPctForGoalValue(goalValue, totalValue float64) float64 {
	if totalValue == 0 {
		return 0
	}
	return goalValue / totalValue * 100
}

func applyRounding(qty float64, mode domain.RoundingMode) float64 {
	switch mode {
	case domain.RoundDown:
		return math.Floor(qty)
	case domain.RoundUp:
		return math.Ceil(qty)
	case domain.RoundExact:
		return qty
	default:
		return math.Round(qty)
	}
}

// TradeSize computes the signed trade quantity and dollar value needed
// to move a position to its target percentage. A non-positive price
// factor yields a zero trade rather than dividing by zero.
func TradeSize(pos domain.Position, totalValue float64) (qty, value float64) {
	factor := PriceFactor(pos.Kind, pos.Price)
	if factor <= 0 {
		return 0, 0
	}

	diff := GoalValue(pos.TargetPct, totalValue) - MarketValue(pos)
	qty = applyRounding(diff/factor, pos.RoundingMode)
	return qty, qty * factor
}

// PlanPosition computes every derived figure for a single position.
func PlanPosition(pos domain.Position, totalValue float64) PlanRow {
	mv := MarketValue(pos)
	qty, value := TradeSize(pos, totalValue)

	return PlanRow{
		PositionID:  pos.ID,
		Symbol:      pos.Symbol,
		Description: pos.Description,
		Quantity:    pos.Quantity,
		Price:       pos.Price,
		MarketValue: mv,
		Weight:      Weight(mv, totalValue),
		TargetPct:   pos.TargetPct,
		GoalValue:   GoalValue(pos.TargetPct, totalValue),
		TradeValue:  value,
		TradeQty:    qty,
	}
}

// PlanAccount computes the full rebalancing view for an account against
// a client-wide total portfolio value. The cash row is a first-class
// member: its implied target is 100 minus the sum of position targets
// and goes negative, unclamped, when positions are over-allocated so
// the caller can surface the condition.
func PlanAccount(account domain.Account, totalValue float64) AccountPlan {
	plan := AccountPlan{
		AccountID:   account.ID,
		AccountName: account.Name,
		AccountType: account.Type,
		TotalValue:  totalValue,
		Rows:        make([]PlanRow, 0, len(account.Positions)),
	}

	for _, pos := range account.Positions {
		plan.Rows = append(plan.Rows, PlanPosition(pos, totalValue))
		plan.TotalTargetPct += pos.TargetPct
	}

	impliedCashPct := 100 - plan.TotalTargetPct
	cashGoal := GoalValue(impliedCashPct, totalValue)

	plan.CashRow = PlanRow{
		Symbol:      "CASH",
		Description: "Sweep Vehicle",
		Quantity:    account.Cash,
		Price:       1.0,
		MarketValue: account.Cash,
		Weight:      Weight(account.Cash, totalValue),
		TargetPct:   impliedCashPct,
		GoalValue:   cashGoal,
		TradeValue:  cashGoal - account.Cash,
		TradeQty:    cashGoal - account.Cash,
		Cash:        true,
	}
	plan.OverAllocated = plan.TotalTargetPct > 100

	return plan
}
