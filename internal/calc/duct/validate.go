package duct

import (
	"fmt"
	"math"

	apperr "Airduct/internal/errors"
)

// Standard insulation liner thicknesses, inches per side.
var standardInsulation = [...]float64{0, 0.75, 1.0}

// StandardInsulation returns the accepted liner thicknesses.
func StandardInsulation() []float64 {
	out := make([]float64, len(standardInsulation))
	copy(out, standardInsulation[:])
	return out
}

// CheckInsulation accepts only the standard liner thicknesses.
func CheckInsulation(t float64) error {
	for _, s := range standardInsulation {
		if t == s {
			return nil
		}
	}
	return apperr.Input("insulation must be one of 0, 0.75 or 1.0 in, got %v", t)
}

// Positive rejects zero, negative and non-finite values.
func Positive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return apperr.Input("%s must be positive, got %v", name, v)
	}
	return nil
}

// NonNegative rejects negative and non-finite values.
func NonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return apperr.Input("%s must not be negative, got %v", name, v)
	}
	return nil
}

// InteriorDimension subtracts the liner from both sides of a nominal
// dimension. A non-positive interior is an input error.
func InteriorDimension(nominal, insulation float64) (float64, error) {
	interior := nominal - 2*insulation
	if interior <= 0 {
		return 0, apperr.Input("insulation %v in leaves no interior in a %v in duct", insulation, nominal)
	}
	return interior, nil
}

// Practical design bounds. Values outside them are accepted with a warning.
const (
	MinPracticalCFM      = 100.0
	MaxPracticalCFM      = 100000.0
	MinPracticalFriction = 0.01
	MaxPracticalFriction = 0.5
	MinPracticalVelocity = 500.0
	MaxPracticalVelocity = 5000.0
)

// Warnings lists inputs outside the practical design bounds. Zero friction
// or velocity means "not used" and is skipped.
func Warnings(cfm, friction, velocity float64) []string {
	var out []string
	if cfm < MinPracticalCFM || cfm > MaxPracticalCFM {
		out = append(out, fmt.Sprintf("airflow %g CFM is outside the practical range %g-%g", cfm, MinPracticalCFM, MaxPracticalCFM))
	}
	if friction != 0 && (friction < MinPracticalFriction || friction > MaxPracticalFriction) {
		out = append(out, fmt.Sprintf("friction rate %g in.wg/100ft is outside the practical range %g-%g", friction, MinPracticalFriction, MaxPracticalFriction))
	}
	if velocity != 0 && (velocity < MinPracticalVelocity || velocity > MaxPracticalVelocity) {
		out = append(out, fmt.Sprintf("velocity %g FPM is outside the practical range %g-%g", velocity, MinPracticalVelocity, MaxPracticalVelocity))
	}
	return out
}
