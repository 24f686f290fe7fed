// Package duct holds the standard size catalogs and the SMACNA
// equal-friction formulas shared by the round, worst-case and rectangular
// calculators. Units: inches, CFM, FPM, in.wg/100ft, sq ft.
package duct

import "math"

// Standard round duct diameters, inches.
var roundSizes = [...]float64{
	4, 5, 6, 7, 8, 9, 10, 12, 14, 16, 18, 20, 22, 24,
	26, 28, 30, 32, 34, 36, 38, 40, 42, 44, 46, 48,
}

// Standard rectangular duct sides, inches.
var rectSizes = [...]float64{
	4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30,
	32, 34, 36, 38, 40, 42, 44, 46, 48, 52, 56, 60,
}

// RoundSizes returns a copy of the round catalog in ascending order.
func RoundSizes() []float64 {
	out := make([]float64, len(roundSizes))
	copy(out, roundSizes[:])
	return out
}

// RectSizes returns a copy of the rectangular catalog in ascending order.
func RectSizes() []float64 {
	out := make([]float64, len(rectSizes))
	copy(out, rectSizes[:])
	return out
}

// MaxRoundSize is the largest catalog diameter.
func MaxRoundSize() float64 {
	return roundSizes[len(roundSizes)-1]
}

// NextRoundSize returns the smallest catalog diameter >= d. Past the end of
// the catalog it returns ceil(d) and standard=false.
func NextRoundSize(d float64) (size float64, standard bool) {
	for _, s := range roundSizes {
		if s >= d {
			return s, true
		}
	}
	return math.Ceil(d), false
}
