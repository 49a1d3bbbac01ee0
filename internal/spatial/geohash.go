package spatial

import "strings"

// Base32 alphabet used by the geohash encoding
const geohashBase32 = "0123456789bcdefghjkmnpqrstuvwxyz"

const maxGeohashPrecision = 12

// EncodeGeohash encodes latitude and longitude into a geohash string.
// precision is the number of characters in the result (clamped to 1-12).
func EncodeGeohash(lat, lon float64, precision int) string {
	if precision < 1 {
		precision = 1
	}
	if precision > maxGeohashPrecision {
		precision = maxGeohashPrecision
	}

	latRange := [2]float64{-90.0, 90.0}
	lonRange := [2]float64{-180.0, 180.0}

	hash := make([]byte, 0, precision)
	bits := 0
	ch := 0
	isLon := true

	for len(hash) < precision {
		if isLon {
			mid := (lonRange[0] + lonRange[1]) / 2
			if lon > mid {
				ch |= 1 << (4 - bits)
				lonRange[0] = mid
			} else {
				lonRange[1] = mid
			}
		} else {
			mid := (latRange[0] + latRange[1]) / 2
			if lat > mid {
				ch |= 1 << (4 - bits)
				latRange[0] = mid
			} else {
				latRange[1] = mid
			}
		}
		isLon = !isLon

		bits++
		if bits == 5 {
			hash = append(hash, geohashBase32[ch])
			bits = 0
			ch = 0
		}
	}

	return string(hash)
}

// DecodeGeohash decodes a geohash string into the center point of its cell.
// ok is false when the string is empty or contains characters outside the
// geohash alphabet, so callers can fall back to another coordinate source.
func DecodeGeohash(hash string) (p Point, ok bool) {
	if hash == "" {
		return Point{}, false
	}

	latRange := [2]float64{-90.0, 90.0}
	lonRange := [2]float64{-180.0, 180.0}

	isLon := true
	for i := 0; i < len(hash); i++ {
		idx := strings.IndexByte(geohashBase32, hash[i])
		if idx == -1 {
			return Point{}, false
		}

		for mask := 16; mask > 0; mask >>= 1 {
			if isLon {
				mid := (lonRange[0] + lonRange[1]) / 2
				if idx&mask != 0 {
					lonRange[0] = mid
				} else {
					lonRange[1] = mid
				}
			} else {
				mid := (latRange[0] + latRange[1]) / 2
				if idx&mask != 0 {
					latRange[0] = mid
				} else {
					latRange[1] = mid
				}
			}
			isLon = !isLon
		}
	}

	return Point{
		Lat: (latRange[0] + latRange[1]) / 2,
		Lon: (lonRange[0] + lonRange[1]) / 2,
	}, true
}

// IsGeohash reports whether the string is a plausible geohash cluster id
func IsGeohash(s string) bool {
	if s == "" || len(s) > maxGeohashPrecision {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(geohashBase32, s[i]) == -1 {
			return false
		}
	}
	return true
}
