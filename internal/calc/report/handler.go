package report

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"Airduct/internal/calc/batch"
	"Airduct/internal/calc/rect"
	"Airduct/internal/httpio"
	"Airduct/internal/logging"
	"Airduct/internal/metrics"
)

// Input describes the segments to size and the report header.
type Input struct {
	Title   string       `json:"title"`
	Project string       `json:"project"`
	Author  string       `json:"author"`
	Notes   string       `json:"notes"`
	Items   []batch.Item `json:"items"`
}

type Handler struct {
	Workers       int
	DefaultPolicy rect.Policy
}

// Generate sizes the items and returns a PDF report.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "report_pdf", "application/pdf", "duct-report.pdf", WritePDF)
}

// Workbook sizes the items and returns an Excel report.
func (h *Handler) Workbook(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "report_xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"duct-report.xlsx", WriteXLSX)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, tool, contentType, filename string,
	write func(io.Writer, Report) error) {
	var input Input
	if err := httpio.Decode(w, r, &input); err != nil {
		httpio.Error(w, err)
		return
	}
	batch.ApplyDefaultPolicy(input.Items, h.DefaultPolicy)

	start := time.Now()
	sized, err := batch.Calculate(r.Context(), batch.Input{Items: input.Items}, h.Workers)
	if err != nil {
		metrics.ObserveCalculation(tool, start, err)
		httpio.Error(w, err)
		return
	}
	batch.Record(sized)

	rep := Report{
		Title:    input.Title,
		Project:  input.Project,
		Author:   input.Author,
		Notes:    input.Notes,
		Date:     time.Now(),
		Segments: sized.Results,
	}
	var buf bytes.Buffer
	err = write(&buf, rep)
	metrics.ObserveCalculation(tool, start, err)
	if err != nil {
		httpio.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Warn("write report", zap.String("tool", tool), zap.Error(err))
	}
}
