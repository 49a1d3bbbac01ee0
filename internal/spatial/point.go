package spatial

import "math"

// Point is a geographic coordinate in degrees
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// IsValid reports whether both coordinates are finite numbers
func (p Point) IsValid() bool {
	return !math.IsNaN(p.Lat) && !math.IsNaN(p.Lon) &&
		!math.IsInf(p.Lat, 0) && !math.IsInf(p.Lon, 0)
}

// Centroid computes the arithmetic center of mass of a set of points.
// Coordinates are averaged in degrees, which matches the geographic center
// used by the stay-region stage for cluster-scale extents.
// Returns false when the input is empty.
func Centroid(points []Point) (Point, bool) {
	return WeightedCentroid(points, nil)
}

// WeightedCentroid computes the weighted center of mass of a set of points.
// A nil weights slice means uniform weights; missing trailing weights
// default to 1. Returns false when the input is empty or the total weight
// is zero.
func WeightedCentroid(points []Point, weights []float64) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}

	var sumLat, sumLon, sumW float64
	for i, p := range points {
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		sumLat += p.Lat * w
		sumLon += p.Lon * w
		sumW += w
	}

	if sumW == 0 {
		return Point{}, false
	}

	return Point{Lat: sumLat / sumW, Lon: sumLon / sumW}, true
}
