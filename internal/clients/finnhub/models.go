package finnhub

// MarketData is the merged view of a symbol's quote and profile.
type MarketData struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Yield  float64 `json:"yield"`
}

type profileResponse struct {
	Name string `json:"name"`
}

type quoteResponse struct {
	Current float64 `json:"c"`
}

type metricResponse struct {
	Metric struct {
		CurrentDividendYieldTTM      float64 `json:"currentDividendYieldTTM"`
		DividendYieldIndicatedAnnual float64 `json:"dividendYieldIndicatedAnnual"`
	} `json:"metric"`
}

type searchResponse struct {
	Result []struct {
		Symbol      string `json:"symbol"`
		Description string `json:"description"`
	} `json:"result"`
}
