package batch

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"Airduct/internal/calc/autodesign"
	"Airduct/internal/calc/rect"
	"Airduct/internal/httpio"
	"Airduct/internal/logging"
	"Airduct/internal/metrics"
)

type Handler struct {
	Workers       int
	DefaultPolicy rect.Policy
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := httpio.Decode(w, r, &input); err != nil {
		httpio.Error(w, err)
		return
	}
	ApplyDefaultPolicy(input.Items, h.DefaultPolicy)

	start := time.Now()
	res, err := Calculate(r.Context(), input, h.Workers)
	metrics.ObserveCalculation("batch", start, err)
	if err != nil {
		httpio.Error(w, err)
		return
	}
	Record(res)
	if res.Failed > 0 {
		logging.Info("batch finished with failed segments",
			zap.Int("count", res.Count), zap.Int("failed", res.Failed))
	}
	httpio.JSON(w, http.StatusOK, res)
}

// ApplyDefaultPolicy sets p on items that do not name a policy.
func ApplyDefaultPolicy(items []Item, p rect.Policy) {
	if p == "" {
		return
	}
	for i := range items {
		if items[i].Input.Policy == "" {
			items[i].Input.Policy = p
		}
	}
}

// Record feeds the per-segment outcomes into the sizing metrics.
func Record(res Result) {
	for _, r := range res.Results {
		if r.Result != nil {
			autodesign.Record(*r.Result)
		}
	}
}
