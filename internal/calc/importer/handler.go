package importer

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"Airduct/internal/calc/batch"
	"Airduct/internal/calc/rect"
	apperr "Airduct/internal/errors"
	"Airduct/internal/httpio"
	"Airduct/internal/logging"
	"Airduct/internal/metrics"
)

type Handler struct {
	MaxUploadSize int64
	Workers       int
	DefaultPolicy rect.Policy
}

type Result struct {
	Sheet    string             `json:"sheet"`
	Count    int                `json:"count"`
	Failed   int                `json:"failed"`
	Rejected []RowError         `json:"rejected"`
	Results  []batch.ItemResult `json:"results"`
}

// Schedule sizes every row of an uploaded workbook.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	if h.MaxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadSize)
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		httpio.Error(w, apperr.Parsing("file required", err))
		return
	}
	defer file.Close()

	start := time.Now()
	s, err := Parse(file)
	if err != nil {
		metrics.ObserveCalculation("import", start, err)
		httpio.Error(w, err)
		return
	}

	res := Result{Sheet: s.Sheet, Rejected: s.Rejected, Results: []batch.ItemResult{}}
	if len(s.Items) > 0 {
		batch.ApplyDefaultPolicy(s.Items, h.DefaultPolicy)
		sized, err := batch.Calculate(r.Context(), batch.Input{Items: s.Items}, h.Workers)
		if err != nil {
			metrics.ObserveCalculation("import", start, err)
			httpio.Error(w, err)
			return
		}
		batch.Record(sized)
		res.Count, res.Failed, res.Results = sized.Count, sized.Failed, sized.Results
	}
	metrics.ObserveCalculation("import", start, nil)

	if len(s.Rejected) > 0 {
		logging.Info("schedule rows rejected",
			zap.String("sheet", s.Sheet), zap.Int("rejected", len(s.Rejected)))
	}
	httpio.JSON(w, http.StatusOK, res)
}
