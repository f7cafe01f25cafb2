// Package site serves the generated dashboard together with health and
// Prometheus endpoints.
package site

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/medailles/pkg/metrics"
)

// StatusSource reports the latest rebuild; *Refresher implements it.
type StatusSource interface {
	Status() Status
}

// Server wires the site routes.
type Server struct {
	dir    string
	status StatusSource
}

// NewServer serves files from dir. status may be nil when the site is not
// rebuilt while serving.
func NewServer(dir string, status StatusSource) *Server {
	return &Server{dir: dir, status: status}
}

// Register attaches the site routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/healthz", MetricsMiddleware(http.HandlerFunc(s.HandleHealth), "healthz"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.Handle("/", MetricsMiddleware(http.FileServer(http.Dir(s.dir)), "site"))
}

type healthResponse struct {
	Status    string `json:"status"`
	LastBuild string `json:"last_build,omitempty"`
	Builds    int    `json:"builds"`
	Error     string `json:"error,omitempty"`
}

// HandleHealth answers GET /healthz. The site is unhealthy while its
// latest rebuild has failed.
func (s *Server) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{Status: "ok"}
	code := http.StatusOK
	if s.status != nil {
		st := s.status.Status()
		resp.Builds = st.Runs
		if !st.LastRun.IsZero() {
			resp.LastBuild = st.LastRun.UTC().Format(time.RFC3339)
		}
		if st.LastError != nil {
			resp.Status = "degraded"
			resp.Error = st.LastError.Error()
			code = http.StatusServiceUnavailable
		}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
