package rebalance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisordash/rebalancer/internal/domain"
)

func equity(symbol string, qty, price, targetPct float64, mode domain.RoundingMode) domain.Position {
	return domain.Position{
		ID:           "pos-" + symbol,
		Symbol:       symbol,
		Kind:         domain.KindForSymbol(symbol),
		Quantity:     qty,
		Price:        price,
		TargetPct:    targetPct,
		RoundingMode: mode,
	}
}

func TestMarketValue(t *testing.T) {
	tests := []struct {
		name     string
		symbol   string
		quantity float64
		price    float64
		want     float64
	}{
		{
			name:     "bond priced as percent of par",
			symbol:   "912828YK0", // 9 chars, CUSIP-like
			quantity: 10000,
			price:    98.5,
			want:     9850.00,
		},
		{
			name:     "equity priced per share",
			symbol:   "AAPL",
			quantity: 150,
			price:    185.50,
			want:     27825.00,
		},
		{
			name:     "zero price yields zero value",
			symbol:   "AAPL",
			quantity: 100,
			price:    0,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := equity(tt.symbol, tt.quantity, tt.price, 0, domain.RoundNearest)
			assert.InDelta(t, tt.want, MarketValue(pos), 1e-9)
		})
	}
}

func TestWeight_ZeroTotalValue(t *testing.T) {
	w := Weight(27825, 0)
	assert.Equal(t, 0.0, w)
	assert.False(t, math.IsNaN(w))
	assert.False(t, math.IsInf(w, 0))
}

func TestRoundingModes(t *testing.T) {
	// rawTradeQty of 12.7: price 10, goal-value diff of 127.
	tests := []struct {
		mode domain.RoundingMode
		want float64
	}{
		{domain.RoundDown, 12},
		{domain.RoundUp, 13},
		{domain.RoundNearest, 13},
		{domain.RoundExact, 12.7},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			pos := equity("XYZ", 0, 10, 12.7, tt.mode)
			qty, value := TradeSize(pos, 1000)
			assert.InDelta(t, tt.want, qty, 1e-9)
			assert.InDelta(t, tt.want*10, value, 1e-9)
		})
	}
}

func TestTradeSize_ZeroPriceGuard(t *testing.T) {
	pos := equity("ZERO", 100, 0, 50, domain.RoundNearest)
	qty, value := TradeSize(pos, 100000)

	assert.Equal(t, 0.0, qty)
	assert.Equal(t, 0.0, value)
	assert.False(t, math.IsNaN(qty))
	assert.False(t, math.IsInf(qty, 0))
}

func TestPlanAccount_CashReconciliation(t *testing.T) {
	account := domain.Account{
		ID:   "acc-1",
		Cash: 5000,
		Positions: []domain.Position{
			equity("AAA", 10, 100, 25, domain.RoundNearest),
			equity("BBB", 10, 100, 75, domain.RoundNearest),
		},
	}

	plan := PlanAccount(account, 132905)

	assert.InDelta(t, 0.0, plan.CashRow.TargetPct, 1e-9)
	assert.InDelta(t, 0.0, plan.CashRow.GoalValue, 1e-9)
	assert.False(t, plan.OverAllocated)
	// Cash goal of 0 with 5000 on hand means 5000 of excess cash to deploy.
	assert.InDelta(t, -5000, plan.CashRow.TradeValue, 1e-9)
}

func TestPlanAccount_OverAllocationNotClamped(t *testing.T) {
	account := domain.Account{
		ID: "acc-1",
		Positions: []domain.Position{
			equity("AAA", 10, 100, 60, domain.RoundNearest),
			equity("BBB", 10, 100, 50, domain.RoundNearest),
		},
	}

	plan := PlanAccount(account, 100000)

	assert.InDelta(t, -10, plan.CashRow.TargetPct, 1e-9)
	assert.True(t, plan.OverAllocated)
}

func TestPlanAccount_Scenario(t *testing.T) {
	// Demo account from the dashboard: AAPL 25%, VTI 75%, $5000 cash,
	// against a client-wide value of 128905.
	account := domain.Account{
		ID:   "acc-1",
		Name: "Schwab IRA",
		Cash: 5000,
		Positions: []domain.Position{
			equity("AAPL", 150, 185.50, 25, domain.RoundNearest),
			equity("VTI", 400, 240.20, 75, domain.RoundNearest),
		},
	}

	plan := PlanAccount(account, 128905)
	require.Len(t, plan.Rows, 2)

	aapl := plan.Rows[0]
	assert.InDelta(t, 27825.00, aapl.MarketValue, 1e-9)
	assert.InDelta(t, 21.59, aapl.Weight, 0.01)
	assert.InDelta(t, 32226.25, aapl.GoalValue, 1e-9)
	// Raw diff is 4401.25, or 23.73 shares; nearest rounds to 24.
	assert.InDelta(t, 24, aapl.TradeQty, 1e-9)
	assert.InDelta(t, 24*185.50, aapl.TradeValue, 1e-9)
}

func TestPlanAccount_ExactModeKeepsFractionalShares(t *testing.T) {
	account := domain.Account{
		ID: "acc-1",
		Positions: []domain.Position{
			equity("AAPL", 150, 185.50, 25, domain.RoundExact),
		},
	}

	plan := PlanAccount(account, 128905)
	assert.InDelta(t, 4401.25, plan.Rows[0].TradeValue, 1e-9)
	assert.InDelta(t, 4401.25/185.50, plan.Rows[0].TradeQty, 1e-9)
}

func TestPlanAccount_Idempotent(t *testing.T) {
	account := domain.Account{
		ID:   "acc-1",
		Cash: 1234.56,
		Positions: []domain.Position{
			equity("AAPL", 150, 185.50, 25, domain.RoundNearest),
			equity("912828YK0", 10000, 98.5, 40, domain.RoundDown),
		},
	}

	first := PlanAccount(account, 128905)
	second := PlanAccount(account, 128905)
	assert.Equal(t, first, second)
}

func TestPlanAccount_EmptyAndZeroTotal(t *testing.T) {
	plan := PlanAccount(domain.Account{ID: "acc-1"}, 0)

	assert.Empty(t, plan.Rows)
	assert.Equal(t, 0.0, plan.CashRow.Weight)
	assert.InDelta(t, 100, plan.CashRow.TargetPct, 1e-9)
	assert.Equal(t, 0.0, plan.CashRow.GoalValue)
}

func TestTargetPctForGoalValue_RoundTrip(t *testing.T) {
	const totalValue = 128905.0

	for _, goal := range []float64{0, 100, 32226.25, 96678.75, 128905} {
		pct := TargetPctForGoalValue(goal, totalValue)
		assert.InDelta(t, goal, GoalValue(pct, totalValue), 1e-6)
	}

	// Zero portfolio value back-solves to zero, not Inf.
	assert.Equal(t, 0.0, TargetPctForGoalValue(5000, 0))
}

func TestPriceFactor(t *testing.T) {
	assert.InDelta(t, 0.9825, PriceFactor(domain.KindBond, 98.25), 1e-9)
	assert.InDelta(t, 185.50, PriceFactor(domain.KindEquity, 185.50), 1e-9)
	assert.InDelta(t, 1.0, PriceFactor(domain.KindCash, 42), 1e-9)
}
