package worstcase

import (
	"net/http"
	"time"

	"Airduct/internal/calc/duct"
	"Airduct/internal/httpio"
	"Airduct/internal/metrics"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := httpio.Decode(w, r, &input); err != nil {
		httpio.Error(w, err)
		return
	}
	if err := duct.CheckInsulation(input.InsulationIn); err != nil {
		httpio.Error(w, err)
		return
	}

	start := time.Now()
	res, err := Calculate(input)
	metrics.ObserveCalculation("worstcase", start, err)
	if err != nil {
		httpio.Error(w, err)
		return
	}
	if res.Recommended.NonStandard {
		metrics.NonStandardSizes.Inc()
	}
	httpio.JSON(w, http.StatusOK, res)
}

func (h *Handler) Presets(w http.ResponseWriter, r *http.Request) {
	httpio.JSON(w, http.StatusOK, Presets())
}
