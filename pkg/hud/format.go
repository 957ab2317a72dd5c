// pkg/hud/format.go
package hud

import (
	"math"
	"strconv"
)

// Round rounds n to the given number of decimal places
func Round(n float64, precision int) float64 {
	p := math.Pow(10, float64(precision))
	return math.Round(n*p) / p
}

// FormatNumber renders n rounded to precision without trailing zeros
func FormatNumber(n float64, precision int) string {
	return strconv.FormatFloat(Round(n, precision), 'f', -1, 64)
}

// FormatDistance renders a distance the way the cockpit labels show it:
// whole billions or millions for large values, otherwise the rounded number.
func FormatDistance(n float64, precision int) string {
	switch {
	case n > 1e9:
		return FormatNumber(n/1e9, precision) + " Billions"
	case n > 1e6:
		return FormatNumber(n/1e6, precision) + " Millions"
	}
	return FormatNumber(n, precision)
}
