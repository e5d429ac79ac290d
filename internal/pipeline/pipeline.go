// Package pipeline runs the load-clean-aggregate pass over the three input
// sources and produces the session's immutable Dataset.
package pipeline

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/oakmere/air-traffic-api/internal/domain"
	"github.com/oakmere/air-traffic-api/internal/observability"
)

// TrafficSource reads raw per-airport passenger summary rows.
type TrafficSource interface {
	ReadTraffic(ctx context.Context) ([]domain.RawTrafficRow, error)
}

// LocationSource reads raw airport coordinate rows.
type LocationSource interface {
	ReadLocations(ctx context.Context) ([]domain.RawLocationRow, error)
}

// FareSource reads raw average fare rows.
type FareSource interface {
	ReadFares(ctx context.Context) ([]domain.RawFareRow, error)
}

// Loader wires the three sources into one load-clean-aggregate pass.
type Loader struct {
	traffic   TrafficSource
	locations LocationSource
	fares     FareSource
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Loader with the given sources and observability.
func New(t TrafficSource, l LocationSource, f FareSource, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{
		traffic:   t,
		locations: l,
		fares:     f,
		logger:    logger,
		metrics:   metrics,
	}
}

// Load runs one full pass: read all three sources, clean and type-coerce,
// join locations (mandatory) and fares (optional), and aggregate to
// city/year granularity. Source read or schema errors abort the pass; value
// errors degrade per row as nil measurements or dropped rows.
func (l *Loader) Load(ctx context.Context) (*domain.Dataset, error) {
	start := time.Now()

	rawTraffic, err := l.traffic.ReadTraffic(ctx)
	if err != nil {
		return nil, err
	}
	rawLocations, err := l.locations.ReadLocations(ctx)
	if err != nil {
		return nil, err
	}
	rawFares, err := l.fares.ReadFares(ctx)
	if err != nil {
		return nil, err
	}

	l.metrics.RowsRead.WithLabelValues("traffic").Add(float64(len(rawTraffic)))
	l.metrics.RowsRead.WithLabelValues("locations").Add(float64(len(rawLocations)))
	l.metrics.RowsRead.WithLabelValues("fares").Add(float64(len(rawFares)))

	locations := l.cleanLocations(rawLocations)
	fares := l.cleanFares(rawFares)
	observations := l.cleanTraffic(rawTraffic, locations, fares)

	ds := domain.BuildDataset(observations)

	l.metrics.RowsKept.Add(float64(len(observations)))
	l.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	l.logger.Info("dataset loaded",
		"traffic_rows", len(rawTraffic),
		"observations", len(observations),
		"aggregate_rows", len(ds.Annual),
		"years", len(ds.Years),
		"duration", time.Since(start),
	)
	return ds, nil
}

// cleanLocations parses coordinates and indexes them by airport code. Rows
// whose latitude or longitude does not parse are dropped, never defaulted:
// a made-up coordinate would silently misplace a city on the map.
func (l *Loader) cleanLocations(rows []domain.RawLocationRow) map[string]domain.Location {
	out := make(map[string]domain.Location, len(rows))
	for _, r := range rows {
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(r.Lat), 64)
		lon, errLon := strconv.ParseFloat(strings.TrimSpace(r.Lon), 64)
		if errLat != nil || errLon != nil {
			l.metrics.RowsDropped.WithLabelValues("missing_coordinates").Inc()
			continue
		}
		out[strings.TrimSpace(r.Code)] = domain.Location{
			Lat:   lat,
			Lon:   lon,
			State: strings.TrimSpace(r.State),
		}
	}
	return out
}

// cleanFares coerces currency values and indexes fares by (code, year).
// An unparseable fare stays in the index as nil — the join succeeds and the
// measurement is simply unknown. Rows whose year does not parse cannot be
// joined and are dropped; on duplicate keys the first row wins.
func (l *Loader) cleanFares(rows []domain.RawFareRow) map[domain.FareKey]*float64 {
	out := make(map[domain.FareKey]*float64, len(rows))
	for _, r := range rows {
		year, err := strconv.Atoi(strings.TrimSpace(r.Year))
		if err != nil {
			l.metrics.RowsDropped.WithLabelValues("bad_fare_year").Inc()
			continue
		}
		key := domain.FareKey{AirportCode: strings.TrimSpace(r.AirportCode), Year: year}
		if _, exists := out[key]; exists {
			l.metrics.RowsDropped.WithLabelValues("duplicate_fare").Inc()
			continue
		}
		out[key] = domain.ParseMoney(r.AvgFare)
	}
	return out
}

// cleanTraffic coerces each observation row and performs both joins in the
// required order: year extraction first, then the mandatory location join,
// then the optional fare join.
func (l *Loader) cleanTraffic(rows []domain.RawTrafficRow, locations map[string]domain.Location, fares map[domain.FareKey]*float64) []domain.Observation {
	out := make([]domain.Observation, 0, len(rows))
	for _, r := range rows {
		year, ok := domain.ExtractYear(r.Year)
		if !ok {
			l.metrics.RowsDropped.WithLabelValues("missing_year").Inc()
			continue
		}

		code := strings.TrimSpace(r.AirportCode)
		loc, ok := locations[code]
		if !ok {
			l.metrics.RowsDropped.WithLabelValues("missing_location").Inc()
			continue
		}

		out = append(out, domain.Observation{
			AirportCode:   code,
			City:          strings.TrimSpace(r.City),
			State:         loc.State,
			Year:          year,
			Lat:           loc.Lat,
			Lon:           loc.Lon,
			Total:         domain.ParseCount(r.Total),
			Domestic:      domain.ParseCount(r.Domestic),
			International: domain.ParseCount(r.International),
			AvgFare:       fares[domain.FareKey{AirportCode: code, Year: year}],
		})
	}
	return out
}
