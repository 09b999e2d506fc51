package service

import "math"

// Round2 rounds a monetary amount to 2 decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
