package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// tradingDaysPerYear is the conventional annualization factor for
// daily return series.
const tradingDaysPerYear = 252

// Mean returns the arithmetic mean, or 0 for an empty series.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev returns the sample standard deviation, or 0 for series
// shorter than two points.
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Returns converts a price series to period-over-period returns.
// Returns[i] = (Price[i+1] - Price[i]) / Price[i]. Zero prices
// contribute a zero return rather than a division blowup.
func Returns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}

	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] != 0 {
			returns[i-1] = (prices[i] - prices[i-1]) / prices[i-1]
		}
	}
	return returns
}

// CumulativeReturns normalizes a price series to percent return from
// the first point: 100 means the series doubled.
func CumulativeReturns(prices []float64) []float64 {
	if len(prices) == 0 || prices[0] == 0 {
		return nil
	}

	out := make([]float64, len(prices))
	for i, p := range prices {
		out[i] = (p/prices[0] - 1) * 100
	}
	return out
}

// Diffs returns the first differences of a series, one element shorter
// than the input. Used to turn a cumulative return curve back into
// daily increments.
func Diffs(series []float64) []float64 {
	if len(series) < 2 {
		return nil
	}

	out := make([]float64, len(series)-1)
	for i := 1; i < len(series); i++ {
		out[i-1] = series[i] - series[i-1]
	}
	return out
}

// AnnualizedVolatility scales the standard deviation of daily values
// by the square root of the trading year.
func AnnualizedVolatility(daily []float64) float64 {
	return StdDev(daily) * math.Sqrt(tradingDaysPerYear)
}
