package domain

import "sort"

// annualKey identifies one aggregate group within a year.
type annualKey struct {
	Year int
	GroupKey
}

// accumulator collects group measures before finalization. Fare keeps a
// separate observation count so the mean skips nil fares instead of
// treating them as zero.
type accumulator struct {
	total         float64
	domestic      float64
	international float64
	fareSum       float64
	fareN         int
}

func (a *accumulator) add(total, domestic, international, fare *float64) {
	a.total += deref(total)
	a.domestic += deref(domestic)
	a.international += deref(international)
	if fare != nil {
		a.fareSum += *fare
		a.fareN++
	}
}

func (a *accumulator) row(year int, key GroupKey) AggregateRow {
	r := AggregateRow{
		Year:          year,
		City:          key.City,
		State:         key.State,
		Lat:           key.Lat,
		Lon:           key.Lon,
		Total:         a.total,
		Domestic:      a.domestic,
		International: a.international,
	}
	if a.fareN > 0 {
		mean := a.fareSum / float64(a.fareN)
		r.AvgFare = &mean
	}
	return r
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// BuildDataset aggregates cleaned observations to (year, city, state, lat,
// lon) granularity. Output order is a total ordering on the group key, so
// the result is identical regardless of input row order.
func BuildDataset(observations []Observation) *Dataset {
	groups := make(map[annualKey]*accumulator)
	yearSet := make(map[int]struct{})

	for _, o := range observations {
		key := annualKey{
			Year:     o.Year,
			GroupKey: GroupKey{City: o.City, State: o.State, Lat: o.Lat, Lon: o.Lon},
		}
		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{}
			groups[key] = acc
		}
		acc.add(o.Total, o.Domestic, o.International, o.AvgFare)
		yearSet[o.Year] = struct{}{}
	}

	annual := make([]AggregateRow, 0, len(groups))
	for key, acc := range groups {
		annual = append(annual, acc.row(key.Year, key.GroupKey))
	}
	sortRowsByKey(annual)

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	return &Dataset{
		Observations: observations,
		Annual:       annual,
		Years:        years,
		LoadedAt:     clock.Now(),
	}
}

// CollapseYears re-aggregates annual rows across the year dimension: the
// passenger measures sum and the fare measure averages over each group's
// per-year means, skipping years with no fare. Collapsed rows carry Year 0.
func CollapseYears(rows []AggregateRow) []AggregateRow {
	groups := make(map[GroupKey]*accumulator)
	for _, r := range rows {
		key := r.Key()
		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{}
			groups[key] = acc
		}
		acc.add(&r.Total, &r.Domestic, &r.International, r.AvgFare)
	}

	out := make([]AggregateRow, 0, len(groups))
	for key, acc := range groups {
		out = append(out, acc.row(0, key))
	}
	sortRowsByKey(out)
	return out
}

// sortRowsByKey orders rows by (year, city, state, lat, lon). Aggregation
// reads from a map, so a deterministic output order has to be imposed here.
func sortRowsByKey(rows []AggregateRow) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.City != b.City {
			return a.City < b.City
		}
		if a.State != b.State {
			return a.State < b.State
		}
		if a.Lat != b.Lat {
			return a.Lat < b.Lat
		}
		return a.Lon < b.Lon
	})
}
