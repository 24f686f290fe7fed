package worstcase

import (
	"Airduct/internal/calc/duct"
	"Airduct/internal/calc/round"
	apperr "Airduct/internal/errors"
)

type PresetID string

const (
	PresetLow    PresetID = "low"
	PresetMedium PresetID = "medium"
	PresetCustom PresetID = "custom"
)

type Preset struct {
	ID           PresetID `json:"id"`
	Name         string   `json:"name"`
	FrictionRate float64  `json:"friction_rate"`
	VelocityFPM  float64  `json:"velocity_fpm"`
}

var presets = [...]Preset{
	{ID: PresetLow, Name: "Low pressure", FrictionRate: 0.08, VelocityFPM: 800},
	{ID: PresetMedium, Name: "Medium pressure", FrictionRate: 0.15, VelocityFPM: 1500},
}

// Presets returns the named constraint pairs.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets[:])
	return out
}

// LookupPreset finds a named pair. Custom has no values of its own.
func LookupPreset(id PresetID) (Preset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

type Governor string

const (
	GovernedByFriction Governor = "friction"
	GovernedByVelocity Governor = "velocity"
	GovernedByEqual    Governor = "equal"
)

type Input struct {
	CFM          float64  `json:"cfm"`
	Preset       PresetID `json:"preset,omitempty"`
	FrictionRate float64  `json:"friction_rate"`
	VelocityFPM  float64  `json:"velocity_fpm"`
	InsulationIn float64  `json:"insulation_in"`
}

type Result struct {
	Recommended  round.Result `json:"recommended"`
	ByFriction   round.Result `json:"by_friction"`
	ByVelocity   round.Result `json:"by_velocity"`
	GovernedBy   Governor     `json:"governed_by"`
	FrictionRate float64      `json:"friction_rate"`
	VelocityFPM  float64      `json:"velocity_fpm"`
	Notes        string       `json:"notes"`
}

// Resolve fills the friction and velocity targets from a named preset.
// An empty or custom preset keeps the explicit values.
func (in Input) Resolve() (Input, error) {
	switch in.Preset {
	case "", PresetCustom:
		return in, nil
	}
	p, ok := LookupPreset(in.Preset)
	if !ok {
		return in, apperr.Input("unknown preset %q", in.Preset)
	}
	in.FrictionRate = p.FrictionRate
	in.VelocityFPM = p.VelocityFPM
	return in, nil
}

// Calculate sizes for both constraints and keeps the larger duct, which
// satisfies both limits at once.
func Calculate(in Input) (Result, error) {
	in, err := in.Resolve()
	if err != nil {
		return Result{}, err
	}

	byFriction, err := round.Calculate(round.Input{
		CFM:          in.CFM,
		Mode:         round.ModeFriction,
		Target:       in.FrictionRate,
		InsulationIn: in.InsulationIn,
	})
	if err != nil {
		return Result{}, err
	}
	byVelocity, err := round.Calculate(round.Input{
		CFM:          in.CFM,
		Mode:         round.ModeVelocity,
		Target:       in.VelocityFPM,
		InsulationIn: in.InsulationIn,
	})
	if err != nil {
		return Result{}, err
	}

	res := Result{
		ByFriction:   byFriction,
		ByVelocity:   byVelocity,
		FrictionRate: in.FrictionRate,
		VelocityFPM:  in.VelocityFPM,
	}
	switch {
	case byFriction.NominalSizeIn > byVelocity.NominalSizeIn:
		res.Recommended, res.GovernedBy = byFriction, GovernedByFriction
		res.Notes = "Friction limit governs."
	case byVelocity.NominalSizeIn > byFriction.NominalSizeIn:
		res.Recommended, res.GovernedBy = byVelocity, GovernedByVelocity
		res.Notes = "Velocity limit governs."
	default:
		res.Recommended, res.GovernedBy = byFriction, GovernedByEqual
		res.Notes = "Both limits give the same size."
	}
	return res, nil
}

// Warnings reports targets outside the practical design ranges.
func (in Input) Warnings() []string {
	return duct.Warnings(in.CFM, in.FrictionRate, in.VelocityFPM)
}
