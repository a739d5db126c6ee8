package rebalance

// PlanRow holds the derived figures for one position (or the synthetic
// cash row) within an account plan. All dollar fields are signed:
// positive trade values are buys, negative are sells.
type PlanRow struct {
	PositionID  string  `json:"position_id,omitempty"`
	Symbol      string  `json:"symbol"`
	Description string  `json:"description,omitempty"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	MarketValue float64 `json:"market_value"`
	Weight      float64 `json:"weight"`     // percent of total portfolio value
	TargetPct   float64 `json:"target_pct"` // goal percent
	GoalValue   float64 `json:"goal_value"` // goal dollars, derived from TargetPct
	TradeValue  float64 `json:"trade_value"`
	TradeQty    float64 `json:"trade_qty"`
	Cash        bool    `json:"cash,omitempty"`
}

// AccountPlan is the full rebalancing view for one account: one row per
// position plus a cash row absorbing the unallocated percentage.
type AccountPlan struct {
	AccountID      string    `json:"account_id"`
	AccountName    string    `json:"account_name"`
	AccountType    string    `json:"account_type"`
	TotalValue     float64   `json:"total_value"` // client-wide portfolio value used as denominator
	Rows           []PlanRow `json:"rows"`
	CashRow        PlanRow   `json:"cash_row"`
	TotalTargetPct float64   `json:"total_target_pct"`
	OverAllocated  bool      `json:"over_allocated"` // sum of position targets exceeds 100
}
