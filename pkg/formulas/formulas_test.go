package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReturns(t *testing.T) {
	assert.Nil(t, Returns([]float64{100}))

	returns := Returns([]float64{100, 110, 99})
	assert.InDelta(t, 0.10, returns[0], 1e-9)
	assert.InDelta(t, -0.10, returns[1], 1e-9)

	// Zero price yields a zero return, not NaN.
	returns = Returns([]float64{0, 50})
	assert.Zero(t, returns[0])
}

func TestCumulativeReturns(t *testing.T) {
	curve := CumulativeReturns([]float64{100, 110, 120})
	assert.InDelta(t, 0, curve[0], 1e-9)
	assert.InDelta(t, 10, curve[1], 1e-9)
	assert.InDelta(t, 20, curve[2], 1e-9)

	assert.Nil(t, CumulativeReturns(nil))
	assert.Nil(t, CumulativeReturns([]float64{0, 50}))
}

func TestDiffs(t *testing.T) {
	diffs := Diffs([]float64{0, 10, 5})
	assert.Equal(t, []float64{10, -5}, diffs)
	assert.Nil(t, Diffs([]float64{1}))
}

func TestMaxDrawdown(t *testing.T) {
	// Peak 120, trough 90: 25% drawdown.
	assert.InDelta(t, 0.25, MaxDrawdown([]float64{100, 120, 90, 110}), 1e-9)

	// Monotonic rise never draws down.
	assert.Zero(t, MaxDrawdown([]float64{100, 110, 120}))
	assert.Zero(t, MaxDrawdown([]float64{100}))
}

func TestSharpeRatio(t *testing.T) {
	assert.Zero(t, SharpeRatio([]float64{0.01}, 0.02))
	assert.Zero(t, SharpeRatio([]float64{0.01, 0.01, 0.01}, 0.02))

	// Positive mean excess return over positive dispersion is positive.
	sharpe := SharpeRatio([]float64{0.01, 0.02, 0.015, 0.005}, 0)
	assert.Greater(t, sharpe, 0.0)
}

func TestAnnualizedVolatility(t *testing.T) {
	assert.Zero(t, AnnualizedVolatility(nil))

	daily := []float64{0.01, -0.01, 0.02, -0.02}
	vol := AnnualizedVolatility(daily)
	assert.Greater(t, vol, StdDev(daily))
}
