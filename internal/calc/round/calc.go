package round

import (
	"Airduct/internal/calc/duct"
	apperr "Airduct/internal/errors"
)

type Mode string

const (
	ModeFriction Mode = "friction"
	ModeVelocity Mode = "velocity"
)

type Input struct {
	CFM          float64 `json:"cfm"`
	Mode         Mode    `json:"mode"`
	Target       float64 `json:"target"` // in.wg/100ft for friction, FPM for velocity
	InsulationIn float64 `json:"insulation_in"`
}

type Result struct {
	NominalSizeIn      float64 `json:"nominal_size_in"`
	InteriorDiameterIn float64 `json:"interior_diameter_in"`
	AreaSqFt           float64 `json:"area_sq_ft"`
	VelocityFPM        float64 `json:"velocity_fpm"`
	FrictionRate       float64 `json:"friction_rate"`
	RawDiameterIn      float64 `json:"raw_diameter_in"`
	NonStandard        bool    `json:"non_standard"`
	Notes              string  `json:"notes"`
}

func (in Input) Validate() error {
	if err := duct.Positive("cfm", in.CFM); err != nil {
		return err
	}
	switch in.Mode {
	case ModeFriction:
		if err := duct.Positive("friction rate", in.Target); err != nil {
			return err
		}
	case ModeVelocity:
		if err := duct.Positive("velocity", in.Target); err != nil {
			return err
		}
	default:
		return apperr.Input("unknown sizing mode %q", in.Mode)
	}
	return duct.NonNegative("insulation", in.InsulationIn)
}

// Calculate sizes a round duct for one constraint. The nominal size is the
// smallest catalog diameter covering the raw diameter plus both liner
// thicknesses; friction is always recomputed from the interior diameter.
func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	var raw float64
	if in.Mode == ModeFriction {
		raw = duct.FrictionDiameter(in.CFM, in.Target)
	} else {
		raw = duct.VelocityDiameter(in.CFM, in.Target)
	}

	nominal, standard := duct.NextRoundSize(raw + 2*in.InsulationIn)
	interior, err := duct.InteriorDimension(nominal, in.InsulationIn)
	if err != nil {
		return Result{}, err
	}
	area := duct.RoundArea(interior)

	notes := "Round duct sized by equal-friction method."
	if in.Mode == ModeVelocity {
		notes = "Round duct sized by velocity limit."
	}
	if !standard {
		notes = "Non-standard size: exceeds the largest catalog diameter, rounded up to the next inch."
	}

	return Result{
		NominalSizeIn:      nominal,
		InteriorDiameterIn: interior,
		AreaSqFt:           area,
		VelocityFPM:        in.CFM / area,
		FrictionRate:       duct.FrictionRate(in.CFM, interior),
		RawDiameterIn:      raw,
		NonStandard:        !standard,
		Notes:              notes,
	}, nil
}
