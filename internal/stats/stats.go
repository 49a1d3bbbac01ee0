package stats

import "gonum.org/v1/gonum/stat"

// Sum calculates the sum of a slice of float64 values
func Sum(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

// PopVariance calculates the biased population variance, the convention
// used by the mobility feature definitions
func PopVariance(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	return stat.Variance(values, nil) * float64(n-1) / float64(n)
}
