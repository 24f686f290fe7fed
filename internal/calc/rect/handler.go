package rect

import (
	"net/http"
	"time"

	"Airduct/internal/calc/duct"
	"Airduct/internal/httpio"
	"Airduct/internal/metrics"
)

// NoAlternative is reported when the tolerance band is empty.
const NoAlternative = "No suitable rectangular alternative."

type Response struct {
	Policy     Policy      `json:"policy"`
	Band       Band        `json:"band"`
	Count      int         `json:"count"`
	Found      bool        `json:"found"`
	Candidates []Candidate `json:"candidates"`
	Notes      string      `json:"notes,omitempty"`
}

// NewResponse wraps a candidate list with the explicit empty-result signal.
func NewResponse(p Policy, candidates []Candidate) Response {
	band, _ := BandFor(p)
	res := Response{
		Policy:     p,
		Band:       band,
		Count:      len(candidates),
		Found:      len(candidates) > 0,
		Candidates: candidates,
	}
	if !res.Found {
		res.Candidates = []Candidate{}
		res.Notes = NoAlternative
	}
	return res
}

type Handler struct {
	// DefaultPolicy applies when the request omits one.
	DefaultPolicy Policy
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := httpio.Decode(w, r, &input); err != nil {
		httpio.Error(w, err)
		return
	}
	if input.Policy == "" {
		input.Policy = h.DefaultPolicy
	}
	if err := duct.CheckInsulation(input.InsulationIn); err != nil {
		httpio.Error(w, err)
		return
	}

	start := time.Now()
	candidates, err := Search(input)
	metrics.ObserveCalculation("rect", start, err)
	if err != nil {
		httpio.Error(w, err)
		return
	}
	if len(candidates) == 0 {
		metrics.RectEmptyResults.WithLabelValues(string(input.Policy)).Inc()
	}
	httpio.JSON(w, http.StatusOK, NewResponse(input.Policy, candidates))
}
