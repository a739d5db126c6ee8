package domain

// Kind classifies an instrument for pricing purposes. It is determined
// once when a position is created and stored on the position, never
// re-derived inside the calculation paths.
type Kind string

const (
	KindEquity Kind = "equity" // priced per share
	KindBond   Kind = "bond"   // priced as percent of par, quantity is face value
	KindCash   Kind = "cash"   // sweep vehicle, always 1.00 per unit
)

// KindForSymbol derives the instrument kind from a symbol at data-entry
// time. Length-9 identifiers are CUSIP-like bond identifiers; everything
// else is treated as an equity/ETF ticker.
func KindForSymbol(symbol string) Kind {
	if len(symbol) == 9 {
		return KindBond
	}
	return KindEquity
}

// RoundingMode governs how a fractional trade quantity is resolved into
// an order size.
type RoundingMode string

const (
	RoundNearest RoundingMode = "nearest"
	RoundDown    RoundingMode = "down"
	RoundUp      RoundingMode = "up"
	RoundExact   RoundingMode = "exact" // fractional units allowed (mutual funds, fractional brokerages)
)

// ParseRoundingMode normalizes a stored or user-supplied rounding mode,
// defaulting to nearest for anything unrecognized.
func ParseRoundingMode(s string) RoundingMode {
	switch RoundingMode(s) {
	case RoundDown, RoundUp, RoundExact:
		return RoundingMode(s)
	default:
		return RoundNearest
	}
}

// Position is one holding within an account.
type Position struct {
	ID           string       `json:"id"`
	AccountID    string       `json:"account_id"`
	Symbol       string       `json:"symbol"`
	Description  string       `json:"description"`
	Kind         Kind         `json:"kind"`
	Quantity     float64      `json:"quantity"`
	Price        float64      `json:"price"`
	CurrentValue float64      `json:"current_value"`
	Yield        float64      `json:"yield"`
	TargetPct    float64      `json:"target_pct"`
	RoundingMode RoundingMode `json:"rounding_mode"`

	// Classification fields, populated by the classification module.
	AssetClass string `json:"asset_class,omitempty"`
	Sector     string `json:"sector,omitempty"`
	StateCode  string `json:"state_code,omitempty"`  // munis only
	LogoTicker string `json:"logo_ticker,omitempty"` // corporate bond parent issuer
}

// Account is a named collection of positions plus a cash balance.
type Account struct {
	ID        string     `json:"id"`
	ClientID  string     `json:"client_id"`
	Name      string     `json:"name"`
	Type      string     `json:"type"` // Taxable, IRA, Roth, ...
	Cash      float64    `json:"cash"`
	Positions []Position `json:"positions,omitempty"`
}

// Client is a named collection of accounts.
type Client struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	LastUpdated string    `json:"last_updated"` // ISO datetime
	Accounts    []Account `json:"accounts,omitempty"`
}

// Asset class values produced by the classifiers.
const (
	AssetClassUSEquity    = "US_EQUITY"
	AssetClassNonUSEquity = "NON_US_EQUITY"
	AssetClassFixedIncome = "FIXED_INCOME"
	AssetClassMuniBond    = "MUNI_BOND"
	AssetClassOther       = "OTHER"
	AssetClassCash        = "CASH"
)
