// Package http exposes the ranked-view and chart query endpoints consumed
// by the dashboard front end, plus health, readiness, and metrics routes.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oakmere/air-traffic-api/internal/domain"
	"github.com/oakmere/air-traffic-api/internal/observability"
)

// DataProvider is the store surface the server queries.
type DataProvider interface {
	Snapshot() *domain.Dataset
	Reload(ctx context.Context) error
	CheckReadiness(ctx context.Context) error
}

// Options carry query defaults from configuration.
type Options struct {
	AnchorCities []string
	DefaultFare  float64
}

// Server exposes the dashboard data API over HTTP.
type Server struct {
	httpServer *http.Server
	data       DataProvider
	opts       Options
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with the API, health, readiness, and
// metrics routes.
func NewServer(addr string, data DataProvider, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		data:    data,
		opts:    opts,
		logger:  logger,
		metrics: metrics,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/cities", s.timed("cities", s.handleCities))
	mux.HandleFunc("GET /api/years", s.timed("years", s.handleYears))
	mux.HandleFunc("GET /api/states", s.timed("states", s.handleStates))
	mux.HandleFunc("GET /api/fares", s.timed("fares", s.handleFares))
	mux.HandleFunc("POST /api/reload", s.handleReload)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// timed wraps a handler with a per-endpoint duration observation.
func (s *Server) timed(endpoint string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h(w, r)
		s.metrics.QueryDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.data.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// cityRow is one ranked city plus its pre-composed hover label.
type cityRow struct {
	domain.RankedRow
	Label string `json:"label"`
}

// handleCities serves the ranked bubble-map view.
// Query parameters: year (4-digit or "all"), top (positive int or "all"),
// state, city. Absent parameters are unconstrained. An empty result is a
// valid empty list, not an error.
func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.snapshot(w)
	if !ok {
		return
	}

	q := domain.Query{
		State:       r.URL.Query().Get("state"),
		City:        r.URL.Query().Get("city"),
		Anchors:     s.opts.AnchorCities,
		DefaultFare: s.opts.DefaultFare,
	}

	year, err := parseYearParam(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q.Year = year

	topN, err := parseTopParam(r.URL.Query().Get("top"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q.TopN = topN

	ranked := domain.Rank(ds.Annual, q)
	rows := make([]cityRow, len(ranked))
	for i, rr := range ranked {
		rows[i] = cityRow{RankedRow: rr, Label: domain.HoverText(rr)}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleYears(w http.ResponseWriter, _ *http.Request) {
	ds, ok := s.snapshot(w)
	if !ok {
		return
	}
	years := ds.Years
	if years == nil {
		years = []int{}
	}
	writeJSON(w, http.StatusOK, years)
}

func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.snapshot(w)
	if !ok {
		return
	}

	year, err := parseYearParam(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	totals := domain.StateTotals(ds.Annual, year)
	if totals == nil {
		totals = []domain.StateTotal{}
	}
	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleFares(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.snapshot(w)
	if !ok {
		return
	}

	var cities []string
	if raw := r.URL.Query().Get("cities"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				cities = append(cities, c)
			}
		}
	}
	if len(cities) == 0 {
		writeError(w, http.StatusBadRequest, "cities parameter is required")
		return
	}

	points := domain.FareTrend(ds.Annual, cities)
	if points == nil {
		points = []domain.FareTrendPoint{}
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.data.Reload(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	ds := s.data.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "reloaded",
		"aggregate_rows": len(ds.Annual),
		"loaded_at":      ds.LoadedAt.Format(time.RFC3339),
	})
}

// snapshot fetches the current dataset, answering 503 before the first load.
func (s *Server) snapshot(w http.ResponseWriter) (*domain.Dataset, bool) {
	ds := s.data.Snapshot()
	if ds == nil {
		writeError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return nil, false
	}
	return ds, true
}

// parseYearParam interprets the year selector: "" and "all" mean no year
// constraint.
func parseYearParam(v string) (*int, error) {
	if v == "" || v == "all" {
		return nil, nil
	}
	year, err := strconv.Atoi(v)
	if err != nil || year < 1000 || year > 9999 {
		return nil, errInvalidParam("year", v)
	}
	return &year, nil
}

// parseTopParam interprets the top-N selector: "" and "all" mean no
// truncation.
func parseTopParam(v string) (int, error) {
	if v == "" || v == "all" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, errInvalidParam("top", v)
	}
	return n, nil
}

type paramError struct {
	name, value string
}

func (e paramError) Error() string {
	return "invalid " + e.name + " parameter: " + strconv.Quote(e.value)
}

func errInvalidParam(name, value string) error {
	return paramError{name: name, value: value}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}
