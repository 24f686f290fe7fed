package round

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
	metrics.ObserveCalculation("round", start, err)
	if err != nil {
		httpio.Error(w, err)
		return
	}
	if res.NonStandard {
		metrics.NonStandardSizes.Inc()
	}
	httpio.JSON(w, http.StatusOK, res)
}
