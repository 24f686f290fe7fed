package worstcase

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperr "Airduct/internal/errors"
)

func TestCalculateLowPressurePreset(t *testing.T) {
	res, err := Calculate(Input{CFM: 1000, Preset: PresetLow})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	if res.ByFriction.NominalSizeIn != 7 {
		t.Errorf("friction size = %v, want 7", res.ByFriction.NominalSizeIn)
	}
	if res.ByVelocity.NominalSizeIn != 16 {
		t.Errorf("velocity size = %v, want 16", res.ByVelocity.NominalSizeIn)
	}
	if res.Recommended.NominalSizeIn != 16 {
		t.Errorf("recommended = %v, want 16", res.Recommended.NominalSizeIn)
	}
	if res.GovernedBy != GovernedByVelocity {
		t.Errorf("governed by %q, want velocity", res.GovernedBy)
	}
	if res.FrictionRate != 0.08 || res.VelocityFPM != 800 {
		t.Errorf("preset values not applied: %v %v", res.FrictionRate, res.VelocityFPM)
	}
}

func TestCalculateGovernor(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want Governor
	}{
		// tight friction, loose velocity
		{"friction", Input{CFM: 1000, FrictionRate: 0.02, VelocityFPM: 3000}, GovernedByFriction},
		{"velocity", Input{CFM: 1000, FrictionRate: 0.08, VelocityFPM: 800}, GovernedByVelocity},
		// 6.08 in and 6.86 in both round to 7
		{"equal", Input{CFM: 1000, FrictionRate: 0.08, VelocityFPM: 3900}, GovernedByEqual},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(tt.in)
			if err != nil {
				t.Fatalf("Calculate() error: %v", err)
			}
			if res.GovernedBy != tt.want {
				t.Errorf("governed by %q (friction %v, velocity %v), want %q",
					res.GovernedBy, res.ByFriction.NominalSizeIn, res.ByVelocity.NominalSizeIn, tt.want)
			}
		})
	}
}

func TestCalculateDominance(t *testing.T) {
	for _, cfm := range []float64{150, 600, 1000, 4000, 25000, 90000} {
		for _, id := range []PresetID{PresetLow, PresetMedium} {
			for _, ins := range []float64{0, 0.75, 1} {
				res, err := Calculate(Input{CFM: cfm, Preset: id, InsulationIn: ins})
				if err != nil {
					t.Fatalf("cfm %v preset %s: %v", cfm, id, err)
				}
				rec := res.Recommended.NominalSizeIn
				if rec < res.ByFriction.NominalSizeIn || rec < res.ByVelocity.NominalSizeIn {
					t.Errorf("cfm %v %s: recommended %v below a constraint size", cfm, id, rec)
				}
				switch res.GovernedBy {
				case GovernedByFriction:
					if rec != res.ByFriction.NominalSizeIn || rec == res.ByVelocity.NominalSizeIn {
						t.Errorf("cfm %v %s: friction tag inconsistent", cfm, id)
					}
				case GovernedByVelocity:
					if rec != res.ByVelocity.NominalSizeIn || rec == res.ByFriction.NominalSizeIn {
						t.Errorf("cfm %v %s: velocity tag inconsistent", cfm, id)
					}
				case GovernedByEqual:
					if res.ByFriction.NominalSizeIn != res.ByVelocity.NominalSizeIn {
						t.Errorf("cfm %v %s: equal tag with different sizes", cfm, id)
					}
				}
			}
		}
	}
}

func TestCalculateCustomAndErrors(t *testing.T) {
	res, err := Calculate(Input{CFM: 1000, Preset: PresetCustom, FrictionRate: 0.15, VelocityFPM: 1500})
	if err != nil {
		t.Fatalf("custom: %v", err)
	}
	medium, _ := Calculate(Input{CFM: 1000, Preset: PresetMedium})
	if res.Recommended != medium.Recommended {
		t.Error("custom pair equal to the medium preset should give the same result")
	}

	for name, in := range map[string]Input{
		"unknown preset":   {CFM: 1000, Preset: "high"},
		"missing velocity": {CFM: 1000, FrictionRate: 0.1},
		"missing friction": {CFM: 1000, VelocityFPM: 900},
		"zero cfm":         {CFM: 0, Preset: PresetLow},
	} {
		if _, err := Calculate(in); !apperr.IsType(err, apperr.TypeInput) {
			t.Errorf("%s: expected input error, got %v", name, err)
		}
	}
}

func TestPresetsAreCopied(t *testing.T) {
	p := Presets()
	p[0].FrictionRate = 9
	if q, _ := LookupPreset(PresetLow); q.FrictionRate != 0.08 {
		t.Error("preset table was mutated through the returned slice")
	}
	if _, ok := LookupPreset(PresetCustom); ok {
		t.Error("custom should not resolve to fixed values")
	}
}

func TestHandlerCalc(t *testing.T) {
	h := &Handler{}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"cfm":1000,"preset":"low"}`))
	rec := httptest.NewRecorder()
	h.Calc(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var res Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.GovernedBy != GovernedByVelocity || res.Recommended.NominalSizeIn != 16 {
		t.Errorf("unexpected result: %+v", res)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"cfm":1000,"preset":"ultra"}`))
	rec = httptest.NewRecorder()
	h.Calc(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown preset status = %d", rec.Code)
	}
}
