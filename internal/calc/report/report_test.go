package report

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"Airduct/internal/calc/autodesign"
	"Airduct/internal/calc/batch"
	"Airduct/internal/calc/rect"
	"Airduct/internal/calc/worstcase"
	"Airduct/internal/logging"
)

func sample(t *testing.T) Report {
	t.Helper()
	sized, err := batch.Calculate(context.Background(), batch.Input{Items: []batch.Item{
		{Tag: "SA-1", Input: autodesign.Input{CFM: 1000, Mode: autodesign.ModeFriction, FrictionRate: 0.08}},
		{Tag: "SA-2", Input: autodesign.Input{CFM: 1000, Mode: autodesign.ModeWorstCase, Preset: worstcase.PresetLow, Policy: rect.PolicySpread}},
		{Tag: "SA-3", Input: autodesign.Input{CFM: 250000, Mode: autodesign.ModeFriction, FrictionRate: 0.08}},
		{Tag: "SA-4", Input: autodesign.Input{CFM: -1, Mode: autodesign.ModeFriction, FrictionRate: 0.08}},
	}}, 2)
	if err != nil {
		t.Fatalf("batch.Calculate() error: %v", err)
	}
	return Report{
		Project:  "Level 2 supply",
		Author:   "M. Ortiz",
		Date:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Segments: sized.Results,
	}
}

func TestRound3(t *testing.T) {
	for in, want := range map[float64]float64{
		0.26725:  0.267,
		0.0005:   0.001,
		-0.0005:  -0.001,
		3742.123: 3742.123,
	} {
		if got := round3(in); got != want {
			t.Errorf("round3(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, sample(t)); err != nil {
		t.Fatalf("WritePDF() error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header")
	}
}

func TestWriteXLSX(t *testing.T) {
	rep := sample(t)
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rep); err != nil {
		t.Fatalf("WriteXLSX() error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetRound)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1+len(rep.Segments) {
		t.Fatalf("round sheet has %d rows, want %d", len(rows), 1+len(rep.Segments))
	}
	if rows[1][0] != "SA-1" || rows[1][4] != "7" {
		t.Errorf("SA-1 row = %v", rows[1])
	}
	if last := rows[4]; last[len(last)-1] == "" {
		t.Errorf("failed segment should carry its error: %v", last)
	}

	alts := 0
	for _, seg := range rep.Segments {
		if seg.Result != nil {
			alts += len(seg.Result.Alternatives)
		}
	}
	cands, err := f.GetRows(SheetRectangular)
	if err != nil {
		t.Fatal(err)
	}
	if len(cands) != 1+alts {
		t.Errorf("rectangular sheet has %d rows, want %d", len(cands), 1+alts)
	}
	if cands[1][0] != "SA-1" || cands[1][2] != "10" || cands[1][3] != "4" {
		t.Errorf("first candidate row = %v", cands[1])
	}
}

func TestHandlerGenerate(t *testing.T) {
	h := &Handler{Workers: 2, DefaultPolicy: rect.PolicyNarrow}
	body := `{"project":"Annex","items":[{"tag":"A","input":{"cfm":1000,"mode":"friction","friction_rate":0.08,"insulation_in":0}}]}`

	for name, serve := range map[string]http.HandlerFunc{"pdf": h.Generate, "xlsx": h.Workbook} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		rec := httptest.NewRecorder()
		serve(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d: %s", name, rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Header().Get("Content-Disposition"), "duct-report."+name) {
			t.Errorf("%s: disposition = %q", name, rec.Header().Get("Content-Disposition"))
		}
		if rec.Body.Len() == 0 {
			t.Errorf("%s: empty body", name)
		}
	}
}

func TestHandlerRejectsEmpty(t *testing.T) {
	h := &Handler{}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"items":[]}`))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

type brokenConn struct {
	*httptest.ResponseRecorder
}

func (brokenConn) Write([]byte) (int, error) {
	return 0, errors.New("connection reset by peer")
}

func TestHandlerLogsFailedWrite(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	prev := logging.Logger
	logging.Logger = zap.New(core)
	t.Cleanup(func() { logging.Logger = prev })

	h := &Handler{Workers: 1}
	body := `{"items":[{"tag":"A","input":{"cfm":1000,"mode":"friction","friction_rate":0.08,"insulation_in":0}}]}`
	h.Generate(brokenConn{httptest.NewRecorder()}, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	entries := logs.FilterMessage("write report").All()
	if len(entries) != 1 {
		t.Fatalf("got %d write warnings, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["tool"]; got != "report_pdf" {
		t.Errorf("tool field = %v", got)
	}
}
