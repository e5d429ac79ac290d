package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "github.com/oakmere/air-traffic-api/internal/adapter/http"
	"github.com/oakmere/air-traffic-api/internal/domain"
	"github.com/oakmere/air-traffic-api/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProvider struct {
	ds        *domain.Dataset
	reloadErr error
	reloads   int
}

func (m *mockProvider) Snapshot() *domain.Dataset { return m.ds }

func (m *mockProvider) Reload(_ context.Context) error {
	m.reloads++
	return m.reloadErr
}

func (m *mockProvider) CheckReadiness(_ context.Context) error {
	if m.ds == nil {
		return errors.New("dataset has not been loaded yet")
	}
	return nil
}

func fare(v float64) *float64 { return &v }

func testDataset() *domain.Dataset {
	return &domain.Dataset{
		Annual: []domain.AggregateRow{
			{Year: 2019, City: "Atlanta", State: "GA", Lat: 33.6, Lon: -84.4, Total: 1000, Domestic: 900, International: 100, AvgFare: fare(250)},
			{Year: 2019, City: "Denver", State: "CO", Lat: 39.9, Lon: -104.7, Total: 800, Domestic: 750, International: 50},
			{Year: 2020, City: "Atlanta", State: "GA", Lat: 33.6, Lon: -84.4, Total: 400, Domestic: 380, International: 20, AvgFare: fare(210)},
		},
		Years: []int{2019, 2020},
	}
}

func newTestServer(p *mockProvider) *httpadapter.Server {
	return httpadapter.NewServer(":0", p,
		httpadapter.Options{AnchorCities: nil, DefaultFare: 100},
		slog.Default(), observability.NewMetricsForTesting())
}

func do(t *testing.T, srv *httpadapter.Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestServer(&mockProvider{}), http.MethodGet, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyz(t *testing.T) {
	t.Run("ready after load", func(t *testing.T) {
		rec := do(t, newTestServer(&mockProvider{ds: testDataset()}), http.MethodGet, "/readyz")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("503 before load", func(t *testing.T) {
		rec := do(t, newTestServer(&mockProvider{}), http.MethodGet, "/readyz")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not ready", body["status"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	rec := do(t, newTestServer(&mockProvider{}), http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

type cityRow struct {
	domain.RankedRow
	Label string `json:"label"`
}

func TestCities(t *testing.T) {
	srv := newTestServer(&mockProvider{ds: testDataset()})

	t.Run("single year", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/cities?year=2019")

		require.Equal(t, http.StatusOK, rec.Code)
		var rows []cityRow
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, "Atlanta", rows[0].City)
		assert.Equal(t, 1, rows[0].Rank)
		assert.Equal(t, 250.0, rows[0].AvgFare)
		assert.Contains(t, rows[0].Label, "#1 Atlanta, GA")
		// Denver has no fare for 2019; the default shows through.
		assert.Equal(t, 100.0, rows[1].AvgFare)
	})

	t.Run("all years collapses", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/cities?year=all")

		require.Equal(t, http.StatusOK, rec.Code)
		var rows []cityRow
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, "Atlanta", rows[0].City)
		assert.Equal(t, 1400.0, rows[0].Total)
	})

	t.Run("top n", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/cities?year=2019&top=1")

		var rows []cityRow
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
		require.Len(t, rows, 1)
		assert.Equal(t, "Atlanta", rows[0].City)
	})

	t.Run("city filter", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/cities?year=2019&city=Denver&top=1")

		var rows []cityRow
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
		require.Len(t, rows, 1)
		assert.Equal(t, "Denver", rows[0].City)
	})

	t.Run("no matches is an empty list", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/cities?year=2019&state=ZZ")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("bad year", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/cities?year=nineteen")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad top", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/cities?top=-3")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("503 before load", func(t *testing.T) {
		rec := do(t, newTestServer(&mockProvider{}), http.MethodGet, "/api/cities")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestCities_AnchorsFromOptions(t *testing.T) {
	ds := &domain.Dataset{
		Annual: []domain.AggregateRow{
			{Year: 2019, City: "Alpha", State: "AA", Lat: 1, Lon: 1, Total: 900},
			{Year: 2019, City: "Bravo", State: "BB", Lat: 2, Lon: 2, Total: 800},
			{Year: 2019, City: "Atlanta", State: "GA", Lat: 3, Lon: 3, Total: 100},
		},
		Years: []int{2019},
	}
	srv := httpadapter.NewServer(":0", &mockProvider{ds: ds},
		httpadapter.Options{AnchorCities: []string{"Atlanta"}, DefaultFare: 100},
		slog.Default(), observability.NewMetricsForTesting())

	rec := do(t, srv, http.MethodGet, "/api/cities?year=2019&top=1")

	var rows []cityRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2) // top 1 plus the anchored city
	assert.Equal(t, "Alpha", rows[0].City)
	assert.Equal(t, "Atlanta", rows[1].City)
	assert.Equal(t, 3, rows[1].Rank)
}

func TestYears(t *testing.T) {
	rec := do(t, newTestServer(&mockProvider{ds: testDataset()}), http.MethodGet, "/api/years")

	require.Equal(t, http.StatusOK, rec.Code)
	var years []int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &years))
	assert.Equal(t, []int{2019, 2020}, years)
}

func TestStates(t *testing.T) {
	srv := newTestServer(&mockProvider{ds: testDataset()})

	rec := do(t, srv, http.MethodGet, "/api/states?year=2019")

	require.Equal(t, http.StatusOK, rec.Code)
	var totals []domain.StateTotal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &totals))
	require.Len(t, totals, 2)
	assert.Equal(t, domain.StateTotal{State: "GA", Total: 1000}, totals[0])
}

func TestFares(t *testing.T) {
	srv := newTestServer(&mockProvider{ds: testDataset()})

	t.Run("trend for selected cities", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/fares?cities=Atlanta")

		require.Equal(t, http.StatusOK, rec.Code)
		var points []domain.FareTrendPoint
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
		require.Len(t, points, 2)
		assert.Equal(t, domain.FareTrendPoint{City: "Atlanta", Year: 2019, AvgFare: 250}, points[0])
		assert.Equal(t, domain.FareTrendPoint{City: "Atlanta", Year: 2020, AvgFare: 210}, points[1])
	})

	t.Run("missing cities parameter", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/fares")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown city is an empty list", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/fares?cities=Nowhere")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestReload(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		p := &mockProvider{ds: testDataset()}
		rec := do(t, newTestServer(p), http.MethodPost, "/api/reload")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, p.reloads)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "reloaded", body["status"])
		assert.Equal(t, float64(3), body["aggregate_rows"])
	})

	t.Run("failure", func(t *testing.T) {
		p := &mockProvider{ds: testDataset(), reloadErr: errors.New("read fares: no header row")}
		rec := do(t, newTestServer(p), http.MethodPost, "/api/reload")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		rec := do(t, newTestServer(&mockProvider{}), http.MethodGet, "/api/reload")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
