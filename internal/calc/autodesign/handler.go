package autodesign

import (
	"net/http"
	"time"

	"Airduct/internal/calc/rect"
	"Airduct/internal/httpio"
	"Airduct/internal/metrics"
)

type Handler struct {
	DefaultPolicy rect.Policy
}

func (h *Handler) Duct(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := httpio.Decode(w, r, &input); err != nil {
		httpio.Error(w, err)
		return
	}
	if input.Policy == "" {
		input.Policy = h.DefaultPolicy
	}

	start := time.Now()
	res, err := Duct(input)
	metrics.ObserveCalculation("size", start, err)
	if err != nil {
		httpio.Error(w, err)
		return
	}
	Record(res)
	httpio.JSON(w, http.StatusOK, res)
}

// Record counts the non-standard and empty-alternative outcomes of a result.
func Record(res Result) {
	if res.Round.NonStandard {
		metrics.NonStandardSizes.Inc()
	}
	if !res.HasAlternatives {
		metrics.RectEmptyResults.WithLabelValues(string(res.Policy)).Inc()
	}
}
