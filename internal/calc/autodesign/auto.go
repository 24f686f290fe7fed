// Package autodesign runs the full sizing pipeline for one duct segment:
// round size by the chosen mode, then rectangular alternatives of the same
// capacity.
package autodesign

import (
	"Airduct/internal/calc/duct"
	"Airduct/internal/calc/rect"
	"Airduct/internal/calc/round"
	"Airduct/internal/calc/worstcase"
	apperr "Airduct/internal/errors"
)

type Mode string

const (
	ModeFriction  Mode = "friction"
	ModeVelocity  Mode = "velocity"
	ModeWorstCase Mode = "worst-case"
)

type Input struct {
	CFM          float64            `json:"cfm"`
	Mode         Mode               `json:"mode"`
	FrictionRate float64            `json:"friction_rate,omitempty"`
	VelocityFPM  float64            `json:"velocity_fpm,omitempty"`
	Preset       worstcase.PresetID `json:"preset,omitempty"`
	InsulationIn float64            `json:"insulation_in"`
	Policy       rect.Policy        `json:"policy,omitempty"`
}

type Result struct {
	Mode            Mode              `json:"mode"`
	Round           round.Result      `json:"round"`
	WorstCase       *worstcase.Result `json:"worst_case,omitempty"`
	Policy          rect.Policy       `json:"policy"`
	Alternatives    []rect.Candidate  `json:"alternatives"`
	HasAlternatives bool              `json:"has_alternatives"`
	Warnings        []string          `json:"warnings,omitempty"`
	Notes           string            `json:"notes"`
}

// Duct sizes one segment. The round result governs the target area of the
// rectangular search; in worst-case mode that is the recommended size.
func Duct(in Input) (Result, error) {
	if err := duct.CheckInsulation(in.InsulationIn); err != nil {
		return Result{}, err
	}
	if in.Policy == "" {
		in.Policy = rect.PolicyNarrow
	}

	res := Result{Mode: in.Mode, Policy: in.Policy}
	switch in.Mode {
	case ModeFriction, ModeVelocity:
		target := in.FrictionRate
		if in.Mode == ModeVelocity {
			target = in.VelocityFPM
		}
		r, err := round.Calculate(round.Input{
			CFM:          in.CFM,
			Mode:         round.Mode(in.Mode),
			Target:       target,
			InsulationIn: in.InsulationIn,
		})
		if err != nil {
			return Result{}, err
		}
		res.Round = r
		if in.Mode == ModeFriction {
			res.Warnings = duct.Warnings(in.CFM, target, 0)
		} else {
			res.Warnings = duct.Warnings(in.CFM, 0, target)
		}
	case ModeWorstCase:
		wcIn, err := worstcase.Input{
			CFM:          in.CFM,
			Preset:       in.Preset,
			FrictionRate: in.FrictionRate,
			VelocityFPM:  in.VelocityFPM,
			InsulationIn: in.InsulationIn,
		}.Resolve()
		if err != nil {
			return Result{}, err
		}
		wc, err := worstcase.Calculate(wcIn)
		if err != nil {
			return Result{}, err
		}
		res.Round = wc.Recommended
		res.WorstCase = &wc
		res.Warnings = wcIn.Warnings()
	default:
		return Result{}, apperr.Input("unknown sizing mode %q", in.Mode)
	}

	alts, err := rect.Search(rect.Input{
		TargetAreaSqFt: res.Round.AreaSqFt,
		CFM:            in.CFM,
		InsulationIn:   in.InsulationIn,
		Policy:         in.Policy,
	})
	if err != nil {
		return Result{}, err
	}
	res.Alternatives = alts
	res.HasAlternatives = len(alts) > 0

	res.Notes = res.Round.Notes
	if !res.HasAlternatives {
		res.Notes += " " + rect.NoAlternative
	}
	return res, nil
}
