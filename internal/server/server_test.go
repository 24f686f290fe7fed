package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"Airduct/internal/config"
	"Airduct/internal/metrics"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.RateLimit = 1000
	cfg.Server.RateBurst = 1000
	return cfg
}

func TestRoutes(t *testing.T) {
	srv := httptest.NewServer(NewRouter(testConfig()))
	defer srv.Close()

	cases := []struct {
		method, path, body string
		want               int
	}{
		{"POST", "/api/tools/duct/round/calc", `{"cfm":1000,"mode":"friction","target":0.08,"insulation_in":0}`, 200},
		{"POST", "/api/tools/duct/worstcase/calc", `{"cfm":1000,"preset":"low","insulation_in":0}`, 200},
		{"POST", "/api/tools/duct/rect/calc", `{"target_area_sq_ft":0.267,"cfm":1000,"insulation_in":0}`, 200},
		{"POST", "/api/tools/duct/size/calc", `{"cfm":1000,"mode":"velocity","velocity_fpm":900,"insulation_in":0}`, 200},
		{"POST", "/api/tools/duct/batch/calc", `{"items":[{"tag":"A","input":{"cfm":500,"mode":"friction","friction_rate":0.1,"insulation_in":0}}]}`, 200},
		{"POST", "/api/tools/duct/round/calc", `{"cfm":-1,"mode":"friction","target":0.08,"insulation_in":0}`, 400},
		{"POST", "/api/tools/duct/round/calc", `{"cfm":1000,"mode":"friction","target":0.08,"insulation_in":2}`, 400},
		{"GET", "/api/tools/duct/presets", "", 200},
		{"GET", "/api/tools/duct/catalog", "", 200},
		{"GET", "/api/tools/duct/round/calc", "", 405},
		{"GET", "/healthz", "", 200},
		{"GET", "/metrics", "", 200},
	}
	for _, tc := range cases {
		req, err := http.NewRequest(tc.method, srv.URL+tc.path, strings.NewReader(tc.body))
		if err != nil {
			t.Fatal(err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != tc.want {
			t.Errorf("%s %s: status = %d, want %d", tc.method, tc.path, resp.StatusCode, tc.want)
		}
		if resp.Header.Get(RequestIDHeader) == "" {
			t.Errorf("%s %s: missing request id", tc.method, tc.path)
		}
	}
}

func TestRequestsCountedByRoute(t *testing.T) {
	h := NewRouter(testConfig())
	count := func(route, code string) float64 {
		return testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(route, code))
	}
	notFound := count(unmatchedRoute, "404")
	wrongMethod := count(unmatchedRoute, "405")
	health := count("/healthz", "200")

	for _, tc := range []struct {
		method, path string
		want         int
	}{
		{"GET", "/nope", http.StatusNotFound},
		{"GET", APIPrefix + "/round/calc", http.StatusMethodNotAllowed},
		{"GET", "/healthz", http.StatusOK},
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != tc.want {
			t.Errorf("%s %s: status = %d, want %d", tc.method, tc.path, rec.Code, tc.want)
		}
	}

	if d := count(unmatchedRoute, "404") - notFound; d != 1 {
		t.Errorf("unmatched 404 counted %v times, want 1", d)
	}
	if d := count(unmatchedRoute, "405") - wrongMethod; d != 1 {
		t.Errorf("unmatched 405 counted %v times, want 1", d)
	}
	if d := count("/healthz", "200") - health; d != 1 {
		t.Errorf("/healthz counted %v times, want 1", d)
	}
}

func TestCatalog(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRouter(testConfig()).ServeHTTP(rec, httptest.NewRequest("GET", "/api/tools/duct/catalog", nil))

	var c Catalog
	if err := json.NewDecoder(rec.Body).Decode(&c); err != nil {
		t.Fatal(err)
	}
	if c.RoundIn[0] != 4 || c.RoundIn[len(c.RoundIn)-1] != 48 {
		t.Errorf("round catalog = %v", c.RoundIn)
	}
	if c.RectIn[len(c.RectIn)-1] != 60 || len(c.InsulationIn) != 3 {
		t.Errorf("rect %v insulation %v", c.RectIn, c.InsulationIn)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	h := NewRouter(testConfig())
	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRouter(testConfig()).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/tools/duct/round/calc", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(0, 2)
	h := limiter.LimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	before := testutil.ToFloat64(metrics.RateLimitHits)

	codes := []int{}
	for _, addr := range []string{"10.0.0.1:1000", "10.0.0.1:1001", "10.0.0.1:1002", "10.0.0.2:1000"} {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	want := []int{200, 200, 429, 200}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("request %d: status = %d, want %d", i, codes[i], want[i])
		}
	}
	if got := testutil.ToFloat64(metrics.RateLimitHits) - before; got != 1 {
		t.Errorf("rate limit hits = %v, want 1", got)
	}
}

func TestRunShutsDown(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
