package classification

import (
	"regexp"
	"strings"

	"github.com/advisordash/rebalancer/internal/domain"
)

// Result is one classification outcome for a position.
type Result struct {
	AssetClass string `json:"asset_class"`
	Sector     string `json:"sector"`
	StateCode  string `json:"state_code,omitempty"`
	LogoTicker string `json:"logo_ticker,omitempty"`
}

var stateCodeRe = regexp.MustCompile(`\b(AL|AK|AZ|AR|CA|CO|CT|DE|FL|GA|HI|ID|IL|IN|IA|KS|KY|LA|ME|MD|MA|MI|MN|MS|MO|MT|NE|NV|NH|NJ|NM|NY|NC|ND|OH|OK|OR|PA|RI|SC|SD|TN|TX|UT|VT|VA|WA|WV|WI|WY)\b`)

// Classify is the keyword-heuristic classifier used when no AI key is
// configured or the AI call fails. Low stakes: it feeds the analytics
// cards, never the trade math.
func Classify(symbol, description string) Result {
	desc := strings.ToUpper(description)
	sym := strings.ToUpper(symbol)

	switch {
	case sym == "CASH" || sym == "USD" || strings.Contains(desc, "CASH") || strings.Contains(desc, "SWEEP"):
		return Result{AssetClass: domain.AssetClassCash, Sector: "Cash & Equivalents"}

	case len(sym) == 9 || strings.Contains(desc, "BOND") || strings.Contains(desc, "NOTE") || strings.Contains(desc, "TREASURY"):
		if strings.Contains(desc, "MUNI") || strings.Contains(desc, "GO ") || strings.Contains(desc, "REV ") {
			res := Result{AssetClass: domain.AssetClassMuniBond, Sector: "Municipal"}
			if m := stateCodeRe.FindStringSubmatch(desc); m != nil {
				res.StateCode = m[1]
			}
			return res
		}

		res := Result{AssetClass: domain.AssetClassFixedIncome, Sector: "Corporate/Govt"}
		if !strings.Contains(desc, "TREASURY") {
			// Rough parent-issuer guess for corporate bond logos.
			first := strings.SplitN(desc, " ", 2)[0]
			if len(first) > 4 {
				first = first[:4]
			}
			res.LogoTicker = first
		}
		return res

	case strings.Contains(desc, "INTL") || strings.Contains(desc, "EMERGING") ||
		strings.Contains(desc, "EUROPE") || strings.Contains(desc, "ASIA"):
		return Result{AssetClass: domain.AssetClassNonUSEquity, Sector: "International Equity"}

	default:
		return Result{AssetClass: domain.AssetClassUSEquity, Sector: equitySector(desc)}
	}
}

func equitySector(desc string) string {
	switch {
	case containsAny(desc, "TECH", "SOFTWARE", "SEMICONDUCTOR"):
		return "Technology"
	case containsAny(desc, "HEALTH", "PHARMA", "BIO"):
		return "Healthcare"
	case containsAny(desc, "BANK", "FINANCE", "INSURANCE"):
		return "Financials"
	case containsAny(desc, "ENERGY", "OIL", "GAS"):
		return "Energy"
	case containsAny(desc, "REIT", "REAL ESTATE"):
		return "Real Estate"
	default:
		return "US Equity"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
