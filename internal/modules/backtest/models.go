package backtest

import "time"

// benchmarkSymbol is the index every model is measured against.
const benchmarkSymbol = "SPY"

// lookbackYears is how far back the simulation starts.
const lookbackYears = 5

// Point is one trading day of the simulated curves, both expressed as
// cumulative percent return since the start date.
type Point struct {
	Date      string  `json:"date"`
	Model     float64 `json:"model"`
	Benchmark float64 `json:"benchmark"`
}

// Result is a completed buy-and-hold simulation of an account's
// current targets against the benchmark.
type Result struct {
	AccountID       string    `json:"account_id"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Symbols         []string  `json:"symbols"`
	Series          []Point   `json:"series"`
	ModelReturn     float64   `json:"model_return"`
	BenchmarkReturn float64   `json:"benchmark_return"`
	Alpha           float64   `json:"alpha"`
	Volatility      float64   `json:"volatility"`
	Sharpe          float64   `json:"sharpe"`
	MaxDrawdown     float64   `json:"max_drawdown"`
}
