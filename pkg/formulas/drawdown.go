package formulas

// MaxDrawdown returns the largest peak-to-trough loss in a price or
// value series as a positive fraction: 0.25 means a 25% drop from the
// running peak. Returns 0 for series shorter than two points.
func MaxDrawdown(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}

	maxDrawdown := 0.0
	peak := series[0]

	for _, v := range series {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak; dd > maxDrawdown {
				maxDrawdown = dd
			}
		}
	}

	return maxDrawdown
}
