package ingest

import (
	"context"

	"github.com/oakmere/air-traffic-api/internal/domain"
)

// Column names as they appear in the source files. Fare headers are matched
// after whitespace stripping; the canonical fare names below are the
// post-rename identities the rest of the system uses.
const (
	colAirportCode   = "Origin Airport Code"
	colCityName      = "Origin City Name"
	colYear          = "Year"
	colTotal         = "Total Passengers"
	colDomestic      = "Domestic Passengers"
	colInternational = "Outbound International Passengers"

	colLocCode  = "code"
	colLocLat   = "latitude"
	colLocLon   = "longitude"
	colLocState = "state"

	colFareCode = "Airport Code"
	colFareAvg  = "Average Fare ($)"
	colFareAdj  = "Inflation Adjusted Average Fare ($)"
)

// TrafficCSV reads the per-airport passenger summary file.
type TrafficCSV struct {
	Path string
}

func (s *TrafficCSV) ReadTraffic(_ context.Context) ([]domain.RawTrafficRow, error) {
	t, err := readTable(s.Path)
	if err != nil {
		return nil, err
	}
	if err := t.requireColumns("traffic", colAirportCode, colCityName, colYear, colTotal, colDomestic, colInternational); err != nil {
		return nil, err
	}

	rows := make([]domain.RawTrafficRow, len(t.rows))
	for i, r := range t.rows {
		rows[i] = domain.RawTrafficRow{
			AirportCode:   r[colAirportCode],
			City:          r[colCityName],
			Year:          r[colYear],
			Total:         r[colTotal],
			Domestic:      r[colDomestic],
			International: r[colInternational],
		}
	}
	return rows, nil
}

// LocationsCSV reads the airport coordinates file. The state column is
// optional; when absent every location carries an empty state.
type LocationsCSV struct {
	Path string
}

func (s *LocationsCSV) ReadLocations(_ context.Context) ([]domain.RawLocationRow, error) {
	t, err := readTable(s.Path)
	if err != nil {
		return nil, err
	}
	if err := t.requireColumns("locations", colLocCode, colLocLat, colLocLon); err != nil {
		return nil, err
	}

	rows := make([]domain.RawLocationRow, len(t.rows))
	for i, r := range t.rows {
		rows[i] = domain.RawLocationRow{
			Code:  r[colLocCode],
			Lat:   r[colLocLat],
			Lon:   r[colLocLon],
			State: r[colLocState],
		}
	}
	return rows, nil
}

// FaresCSV reads the average fare file. Its headers are unreliable — padded
// with whitespace upstream — so readTable's header stripping is what makes
// the required-column match work, and the source names are renamed to the
// canonical fare fields here.
type FaresCSV struct {
	Path string
}

func (s *FaresCSV) ReadFares(_ context.Context) ([]domain.RawFareRow, error) {
	t, err := readTable(s.Path)
	if err != nil {
		return nil, err
	}
	if err := t.requireColumns("fares", colFareCode, colYear, colFareAvg, colFareAdj); err != nil {
		return nil, err
	}

	rows := make([]domain.RawFareRow, len(t.rows))
	for i, r := range t.rows {
		rows[i] = domain.RawFareRow{
			AirportCode: r[colFareCode],
			Year:        r[colYear],
			AvgFare:     r[colFareAvg],
			AdjAvgFare:  r[colFareAdj],
		}
	}
	return rows, nil
}
