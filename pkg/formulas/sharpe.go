package formulas

import "math"

// SharpeRatio computes the annualized Sharpe ratio of a daily return
// series against an annual risk-free rate. Returns 0 when the series is
// too short or has no dispersion.
func SharpeRatio(dailyReturns []float64, riskFreeRate float64) float64 {
	if len(dailyReturns) < 2 {
		return 0
	}

	stdDev := StdDev(dailyReturns)
	if stdDev == 0 {
		return 0
	}

	excess := Mean(dailyReturns) - riskFreeRate/tradingDaysPerYear
	return excess / stdDev * math.Sqrt(tradingDaysPerYear)
}
