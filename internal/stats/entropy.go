package stats

import "math"

// ShannonEntropyNats calculates the Shannon entropy of a distribution in
// nats (natural log). values are frequency counts or probabilities and
// are normalized before the computation. Zero-valued entries are skipped.
func ShannonEntropyNats(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := Sum(values)
	if sum == 0 {
		return 0
	}

	var entropy float64
	for _, v := range values {
		if v > 0 {
			p := v / sum
			entropy -= p * math.Log(p)
		}
	}

	return entropy
}

// NormalizedEntropyNats scales ShannonEntropyNats into [0, 1] by dividing
// by ln(n), where n is the number of categories. Returns NaN for fewer
// than two categories, where the denominator is zero.
func NormalizedEntropyNats(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}

	maxEntropy := math.Log(float64(len(values)))
	if maxEntropy == 0 {
		return math.NaN()
	}

	return ShannonEntropyNats(values) / maxEntropy
}
