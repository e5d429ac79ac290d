package domain

import "time"

// RawTrafficRow is one observation row as read from the traffic summary CSV,
// all fields still in their source text form.
type RawTrafficRow struct {
	AirportCode   string
	City          string
	Year          string // free text containing a 4-digit year
	Total         string
	Domestic      string
	International string
}

// RawLocationRow is one row from the airport locations CSV.
type RawLocationRow struct {
	Code  string
	Lat   string
	Lon   string
	State string
}

// RawFareRow is one row from the average fares CSV after header
// normalization, with currency-formatted fare values.
type RawFareRow struct {
	AirportCode string
	Year        string
	AvgFare     string
	AdjAvgFare  string
}

// Location is a cleaned airport position. State may be empty when the
// locations source has no state column.
type Location struct {
	Lat   float64
	Lon   float64
	State string
}

// FareKey joins fare records to observations.
type FareKey struct {
	AirportCode string
	Year        int
}

// Observation is a cleaned per-airport/year row after both joins. Location
// is mandatory (rows without one are dropped upstream); fare and the
// passenger counts are optional measurements.
type Observation struct {
	AirportCode   string
	City          string
	State         string
	Year          int
	Lat           float64
	Lon           float64
	Total         *float64
	Domestic      *float64
	International *float64
	AvgFare       *float64
}

// AggregateRow is one (year, city, state, latitude, longitude) group with
// summed passenger measures and the mean of matched fares. AvgFare is nil
// when no fare observation exists for the group.
type AggregateRow struct {
	Year          int      `json:"year"`
	City          string   `json:"city"`
	State         string   `json:"state,omitempty"`
	Lat           float64  `json:"lat"`
	Lon           float64  `json:"lon"`
	Total         float64  `json:"total_passengers"`
	Domestic      float64  `json:"domestic_passengers"`
	International float64  `json:"international_passengers"`
	AvgFare       *float64 `json:"avg_fare,omitempty"`
}

// GroupKey identifies an aggregate group without the year dimension.
type GroupKey struct {
	City  string
	State string
	Lat   float64
	Lon   float64
}

// Key returns the row's group identity, used for anchor deduplication and
// all-years collapsing.
func (r AggregateRow) Key() GroupKey {
	return GroupKey{City: r.City, State: r.State, Lat: r.Lat, Lon: r.Lon}
}

// Dataset is the immutable result of one load-clean-aggregate pass. Callers
// receive it behind a read-only handle and never mutate it.
type Dataset struct {
	Observations []Observation
	Annual       []AggregateRow
	Years        []int // distinct observation years, ascending
	LoadedAt     time.Time
}
