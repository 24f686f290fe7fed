package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Airduct/internal/calc/autodesign"
	"Airduct/internal/calc/rect"
	apperr "Airduct/internal/errors"
)

func schedule(n int) Input {
	in := Input{}
	for i := 0; i < n; i++ {
		in.Items = append(in.Items, Item{
			Tag: fmt.Sprintf("S-%02d", i+1),
			Input: autodesign.Input{
				CFM:          float64(200 * (i + 1)),
				Mode:         autodesign.ModeFriction,
				FrictionRate: 0.08,
			},
		})
	}
	return in
}

func TestCalculateKeepsOrder(t *testing.T) {
	in := schedule(25)
	res, err := Calculate(context.Background(), in, 4)
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	if res.Count != 25 || res.Failed != 0 {
		t.Fatalf("count %d failed %d", res.Count, res.Failed)
	}
	prev := 0.0
	for i, r := range res.Results {
		if r.Tag != in.Items[i].Tag {
			t.Errorf("row %d tag %q, want %q", i, r.Tag, in.Items[i].Tag)
		}
		want, _ := autodesign.Duct(in.Items[i].Input)
		if r.Result.Round != want.Round {
			t.Errorf("row %d differs from a direct call", i)
		}
		if r.Result.Round.NominalSizeIn < prev {
			t.Errorf("row %d: size decreased with rising airflow", i)
		}
		prev = r.Result.Round.NominalSizeIn
	}
}

func TestCalculateRecordsItemErrors(t *testing.T) {
	in := schedule(3)
	in.Items[1].Input.CFM = -5

	res, err := Calculate(context.Background(), in, 2)
	if err != nil {
		t.Fatalf("item errors must not fail the batch: %v", err)
	}
	if res.Failed != 1 {
		t.Errorf("failed = %d, want 1", res.Failed)
	}
	if res.Results[1].OK() || res.Results[1].Result != nil {
		t.Errorf("row 1 should carry an error: %+v", res.Results[1])
	}
	if !res.Results[0].OK() || !res.Results[2].OK() {
		t.Error("valid rows should still be sized")
	}
}

func TestCalculateEmpty(t *testing.T) {
	_, err := Calculate(context.Background(), Input{}, 4)
	if !apperr.IsType(err, apperr.TypeInput) {
		t.Errorf("expected input error, got %v", err)
	}
}

func TestCalculateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Calculate(ctx, schedule(10), 2)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestApplyDefaultPolicy(t *testing.T) {
	items := schedule(2).Items
	items[1].Input.Policy = rect.PolicyNarrow
	ApplyDefaultPolicy(items, rect.PolicySpread)
	if items[0].Input.Policy != rect.PolicySpread {
		t.Errorf("item 0 policy = %q", items[0].Input.Policy)
	}
	if items[1].Input.Policy != rect.PolicyNarrow {
		t.Error("explicit policy was overwritten")
	}
}

func TestHandlerCalc(t *testing.T) {
	h := &Handler{Workers: 3, DefaultPolicy: rect.PolicyNarrow}
	body := `{"items":[
		{"tag":"A","input":{"cfm":1000,"mode":"friction","friction_rate":0.08,"insulation_in":0}},
		{"tag":"B","input":{"cfm":1000,"mode":"worst-case","preset":"low","insulation_in":1}},
		{"tag":"C","input":{"cfm":0,"mode":"velocity","velocity_fpm":900,"insulation_in":0}}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Calc(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var res Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Count != 3 || res.Failed != 1 {
		t.Errorf("count %d failed %d", res.Count, res.Failed)
	}
	if res.Results[1].Result.Round.NominalSizeIn != 18 {
		t.Errorf("lined low-pressure size = %v, want 18", res.Results[1].Result.Round.NominalSizeIn)
	}
}
