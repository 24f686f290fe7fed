package duct

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	frictionCoeff  = 0.109
	frictionExp    = 0.225
	equivCoeff     = 1.30
	sqInPerSqFt    = 144.0
	inchesPerFoot2 = 24.0 // diameter in inches -> radius in feet
)

// FrictionDiameter is the raw round diameter for a target friction rate:
// D = 0.109 * CFM^0.5 * f^-0.225.
func FrictionDiameter(cfm, friction float64) float64 {
	return frictionCoeff * math.Sqrt(cfm) * math.Pow(friction, -frictionExp)
}

// VelocityDiameter is the raw round diameter for a target velocity:
// D = 24 * sqrt(CFM / (v * pi)).
func VelocityDiameter(cfm, velocity float64) float64 {
	return inchesPerFoot2 * math.Sqrt(cfm/(velocity*math.Pi))
}

// FrictionRate inverts FrictionDiameter for an actual diameter d.
func FrictionRate(cfm, d float64) float64 {
	return math.Pow(frictionCoeff*math.Sqrt(cfm)/d, 1/frictionExp)
}

// RoundArea is the cross-section in sq ft of a round duct of diameter d inches.
func RoundArea(d float64) float64 {
	r := d / inchesPerFoot2
	return math.Pi * r * r
}

// RectArea is the cross-section in sq ft of a w x h inch duct.
func RectArea(w, h float64) float64 {
	return w * h / sqInPerSqFt
}

// EquivalentDiameter is the round diameter with the same friction and
// capacity as a w x h rectangular duct: 1.30 (ab)^0.625 / (a+b)^0.25.
func EquivalentDiameter(w, h float64) float64 {
	return equivCoeff * math.Pow(w*h, 0.625) / math.Pow(w+h, 0.25)
}

// AspectRatio formats w/h to one decimal place, e.g. "2.5:1".
// Halves round away from zero.
func AspectRatio(w, h float64) string {
	return decimal.NewFromFloat(w).Div(decimal.NewFromFloat(h)).StringFixed(1) + ":1"
}
