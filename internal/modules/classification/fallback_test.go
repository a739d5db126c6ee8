package classification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/advisordash/rebalancer/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		symbol      string
		description string
		wantClass   string
		wantSector  string
		wantState   string
	}{
		{
			name:        "cash sweep",
			symbol:      "CASH",
			description: "Sweep Vehicle",
			wantClass:   domain.AssetClassCash,
			wantSector:  "Cash & Equivalents",
		},
		{
			name:        "muni bond with state code",
			symbol:      "64966QCA9",
			description: "NY ST DORM AUTH MUNI REV 4.0% 2035",
			wantClass:   domain.AssetClassMuniBond,
			wantSector:  "Municipal",
			wantState:   "NY",
		},
		{
			name:        "treasury note",
			symbol:      "912828YK0",
			description: "US TREASURY NOTE 1.375% 2030",
			wantClass:   domain.AssetClassFixedIncome,
			wantSector:  "Corporate/Govt",
		},
		{
			name:        "international equity fund",
			symbol:      "VXUS",
			description: "Vanguard Total Intl Stock ETF",
			wantClass:   domain.AssetClassNonUSEquity,
			wantSector:  "International Equity",
		},
		{
			name:        "tech stock",
			symbol:      "MSFT",
			description: "Microsoft Corp Software",
			wantClass:   domain.AssetClassUSEquity,
			wantSector:  "Technology",
		},
		{
			name:        "plain US equity",
			symbol:      "VTI",
			description: "Vanguard Total Stock Market",
			wantClass:   domain.AssetClassUSEquity,
			wantSector:  "US Equity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.symbol, tt.description)
			assert.Equal(t, tt.wantClass, got.AssetClass)
			assert.Equal(t, tt.wantSector, got.Sector)
			assert.Equal(t, tt.wantState, got.StateCode)
		})
	}
}

func TestClassify_CorpBondLogoTicker(t *testing.T) {
	got := Classify("037833DX5", "APPLE INC 3.5% BOND 2030")
	assert.Equal(t, domain.AssetClassFixedIncome, got.AssetClass)
	assert.Equal(t, "APPL", got.LogoTicker)
}

func TestClassify_TreasuryHasNoLogoTicker(t *testing.T) {
	got := Classify("912828YK0", "US TREASURY NOTE 1.375% 2030")
	assert.Empty(t, got.LogoTicker)
}
