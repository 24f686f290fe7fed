package rect

import (
	"math"
	"slices"

	"Airduct/internal/calc/duct"
	apperr "Airduct/internal/errors"
)

type Policy string

const (
	// PolicyNarrow keeps close matches only, best first.
	PolicyNarrow Policy = "narrow"
	// PolicySpread returns a browsable run of smaller and larger sizes.
	PolicySpread Policy = "spread"
)

// MaxCandidates caps the returned list for both policies.
const MaxCandidates = 12

// spreadBelow is how many smaller sizes the spread window keeps before the
// closest match.
const spreadBelow = 6

// Band is the accepted range of candidate area / target area.
type Band struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (b Band) Contains(ratio float64) bool {
	return ratio >= b.Min && ratio <= b.Max
}

// BandFor returns the tolerance band of a policy.
func BandFor(p Policy) (Band, error) {
	switch p {
	case PolicyNarrow:
		return Band{Min: 0.70, Max: 1.30}, nil
	case PolicySpread:
		return Band{Min: 0.50, Max: 1.50}, nil
	}
	return Band{}, apperr.Input("unknown selection policy %q", p)
}

type Input struct {
	TargetAreaSqFt float64 `json:"target_area_sq_ft"`
	CFM            float64 `json:"cfm"`
	InsulationIn   float64 `json:"insulation_in"`
	Policy         Policy  `json:"policy"`
}

type Candidate struct {
	WidthIn              float64 `json:"width_in"`
	HeightIn             float64 `json:"height_in"`
	InteriorWidthIn      float64 `json:"interior_width_in"`
	InteriorHeightIn     float64 `json:"interior_height_in"`
	AreaSqFt             float64 `json:"area_sq_ft"`
	EquivalentDiameterIn float64 `json:"equivalent_diameter_in"`
	VelocityFPM          float64 `json:"velocity_fpm"`
	FrictionRate         float64 `json:"friction_rate"`
	AspectRatio          string  `json:"aspect_ratio"`
}

func (in Input) Validate() error {
	if err := duct.Positive("target area", in.TargetAreaSqFt); err != nil {
		return err
	}
	if err := duct.Positive("cfm", in.CFM); err != nil {
		return err
	}
	if err := duct.NonNegative("insulation", in.InsulationIn); err != nil {
		return err
	}
	_, err := BandFor(in.Policy)
	return err
}

// Search lists standard rectangular ducts whose clear area is close to the
// target. An empty result is valid and means no catalog pair fits the band.
func Search(in Input) ([]Candidate, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	band, _ := BandFor(in.Policy)

	var found []Candidate
	for _, c := range enumerate(in.InsulationIn) {
		if band.Contains(c.AreaSqFt / in.TargetAreaSqFt) {
			found = append(found, c)
		}
	}

	var picked []Candidate
	if in.Policy == PolicyNarrow {
		picked = closest(found, in.TargetAreaSqFt)
	} else {
		picked = spread(found, in.TargetAreaSqFt)
	}

	out := make([]Candidate, len(picked))
	for i, c := range picked {
		out[i] = performance(c, in.CFM)
	}
	return out, nil
}

// enumerate walks every width >= height pair of the catalog with a
// positive clear section.
func enumerate(insulation float64) []Candidate {
	sizes := duct.RectSizes()
	var out []Candidate
	for _, w := range sizes {
		iw := w - 2*insulation
		if iw <= 0 {
			continue
		}
		for _, h := range sizes {
			if h > w {
				break
			}
			ih := h - 2*insulation
			if ih <= 0 {
				continue
			}
			out = append(out, Candidate{
				WidthIn:          w,
				HeightIn:         h,
				InteriorWidthIn:  iw,
				InteriorHeightIn: ih,
				AreaSqFt:         duct.RectArea(iw, ih),
			})
		}
	}
	return out
}

func closest(found []Candidate, target float64) []Candidate {
	slices.SortStableFunc(found, func(a, b Candidate) int {
		da, db := math.Abs(a.AreaSqFt-target), math.Abs(b.AreaSqFt-target)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
	return found[:min(len(found), MaxCandidates)]
}

// spread sorts by area and takes up to spreadBelow smaller sizes, the
// closest match, and fills the rest of the window with larger sizes.
func spread(found []Candidate, target float64) []Candidate {
	if len(found) == 0 {
		return nil
	}
	slices.SortStableFunc(found, func(a, b Candidate) int {
		switch {
		case a.AreaSqFt < b.AreaSqFt:
			return -1
		case a.AreaSqFt > b.AreaSqFt:
			return 1
		}
		return 0
	})

	best := 0
	for i, c := range found {
		if math.Abs(c.AreaSqFt-target) < math.Abs(found[best].AreaSqFt-target) {
			best = i
		}
	}
	start := max(0, best-spreadBelow)
	end := min(len(found), start+MaxCandidates)
	return found[start:end]
}

func performance(c Candidate, cfm float64) Candidate {
	de := duct.EquivalentDiameter(c.InteriorWidthIn, c.InteriorHeightIn)
	c.EquivalentDiameterIn = de
	c.VelocityFPM = cfm / c.AreaSqFt
	c.FrictionRate = duct.FrictionRate(cfm, de)
	c.AspectRatio = duct.AspectRatio(c.WidthIn, c.HeightIn)
	return c
}
