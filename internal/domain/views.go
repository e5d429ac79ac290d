package domain

import "sort"

// StateTotal is one bar of the by-state traffic chart.
type StateTotal struct {
	State string  `json:"state"`
	Total float64 `json:"total_passengers"`
}

// StateTotals sums total passengers per state, optionally filtered to one
// year, ordered by total descending then state ascending. Rows with an
// empty state (locations source without a state column) are skipped.
func StateTotals(annual []AggregateRow, year *int) []StateTotal {
	sums := make(map[string]float64)
	for _, r := range annual {
		if r.State == "" {
			continue
		}
		if year != nil && r.Year != *year {
			continue
		}
		sums[r.State] += r.Total
	}

	out := make([]StateTotal, 0, len(sums))
	for state, total := range sums {
		out = append(out, StateTotal{State: state, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].State < out[j].State
	})
	return out
}

// FareTrendPoint is one point of the fare-over-years line chart.
type FareTrendPoint struct {
	City    string  `json:"city"`
	Year    int     `json:"year"`
	AvgFare float64 `json:"avg_fare"`
}

// FareTrend returns the mean fare per (city, year) for the given city set,
// ordered by city then year. Groups with no fare observation are omitted
// rather than defaulted: a trend line interpolates gaps, while a synthetic
// fare would draw a false data point.
func FareTrend(annual []AggregateRow, cities []string) []FareTrendPoint {
	wanted := make(map[string]struct{}, len(cities))
	for _, c := range cities {
		wanted[c] = struct{}{}
	}

	type cityYear struct {
		city string
		year int
	}
	sums := make(map[cityYear]*accumulator)
	for _, r := range annual {
		if _, ok := wanted[r.City]; !ok {
			continue
		}
		if r.AvgFare == nil {
			continue
		}
		key := cityYear{city: r.City, year: r.Year}
		acc, ok := sums[key]
		if !ok {
			acc = &accumulator{}
			sums[key] = acc
		}
		acc.fareSum += *r.AvgFare
		acc.fareN++
	}

	out := make([]FareTrendPoint, 0, len(sums))
	for key, acc := range sums {
		out = append(out, FareTrendPoint{
			City:    key.city,
			Year:    key.year,
			AvgFare: acc.fareSum / float64(acc.fareN),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		return out[i].Year < out[j].Year
	})
	return out
}
