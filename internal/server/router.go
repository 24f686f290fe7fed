// Package server wires the sizing handlers into an HTTP service.
package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"Airduct/internal/calc/autodesign"
	"Airduct/internal/calc/batch"
	"Airduct/internal/calc/duct"
	"Airduct/internal/calc/importer"
	"Airduct/internal/calc/rect"
	"Airduct/internal/calc/report"
	"Airduct/internal/calc/round"
	"Airduct/internal/calc/worstcase"
	"Airduct/internal/config"
	"Airduct/internal/httpio"
)

type Catalog struct {
	RoundIn      []float64 `json:"round_in"`
	RectIn       []float64 `json:"rect_in"`
	InsulationIn []float64 `json:"insulation_in"`
}

// APIPrefix is the path prefix of the sizing endpoints.
const APIPrefix = "/api/tools/duct"

// NewRouter registers every route. The returned handler carries the
// request id, access log and CORS middleware around the router, so
// unmatched paths and wrong methods are logged and counted too.
func NewRouter(cfg *config.Config) http.Handler {
	policy := rect.Policy(cfg.Sizing.DefaultPolicy)
	workers := cfg.Sizing.Workers

	router := mux.NewRouter()
	router.Use(tagRoute)

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpio.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	// root router, not a PathPrefix subrouter: wrong methods must get 405
	limiter := NewIPRateLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst)
	api := func(path string, h http.HandlerFunc, method string) {
		router.Handle(APIPrefix+path, limiter.LimitMiddleware(h)).Methods(method)
	}

	roundH := &round.Handler{}
	worstH := &worstcase.Handler{}
	rectH := &rect.Handler{DefaultPolicy: policy}
	sizeH := &autodesign.Handler{DefaultPolicy: policy}
	batchH := &batch.Handler{Workers: workers, DefaultPolicy: policy}
	importH := &importer.Handler{MaxUploadSize: cfg.MaxUploadBytes(), Workers: workers, DefaultPolicy: policy}
	reportH := &report.Handler{Workers: workers, DefaultPolicy: policy}

	api("/round/calc", roundH.Calc, "POST")
	api("/worstcase/calc", worstH.Calc, "POST")
	api("/rect/calc", rectH.Calc, "POST")
	api("/size/calc", sizeH.Duct, "POST")
	api("/batch/calc", batchH.Calc, "POST")
	api("/import/xlsx", importH.Schedule, "POST")
	api("/report/pdf", reportH.Generate, "POST")
	api("/report/xlsx", reportH.Workbook, "POST")
	api("/presets", worstH.Presets, "GET")
	api("/catalog", catalog, "GET")

	return WithRequestID(AccessLog(CORS(router)))
}

func catalog(w http.ResponseWriter, r *http.Request) {
	httpio.JSON(w, http.StatusOK, Catalog{
		RoundIn:      duct.RoundSizes(),
		RectIn:       duct.RectSizes(),
		InsulationIn: duct.StandardInsulation(),
	})
}
