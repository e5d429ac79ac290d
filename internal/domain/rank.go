package domain

import "sort"

// DefaultFare substitutes for a nil average fare in ranked rows. An unknown
// fare is presented as a typical one, not as an error signal.
const DefaultFare = 100

// Query selects and shapes a ranked view over the annual aggregate.
type Query struct {
	// Year filters to a single year; nil re-aggregates across all years.
	Year *int
	// TopN truncates to the first N rows after ranking; 0 means all rows.
	TopN int
	// State filters to an exact state match when non-empty.
	State string
	// City filters to an exact city match when non-empty. A single-city
	// view is exhaustive by definition, so it disables TopN.
	City string
	// Anchors are re-included after TopN truncation even when ranked
	// outside it, so the result may exceed TopN rows.
	Anchors []string
	// DefaultFare replaces nil fares in the output; 0 means DefaultFare.
	DefaultFare float64
}

// RankedRow is one row of a ranked view. AvgFare is always populated: nil
// aggregate fares are replaced by the query's presentation default.
type RankedRow struct {
	Rank          int     `json:"rank"`
	Year          int     `json:"year,omitempty"`
	City          string  `json:"city"`
	State         string  `json:"state,omitempty"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	Total         float64 `json:"total_passengers"`
	Domestic      float64 `json:"domestic_passengers"`
	International float64 `json:"international_passengers"`
	AvgFare       float64 `json:"avg_fare"`
}

// Rank derives a ranked view from the annual aggregate. It is a pure
// function of its inputs: the aggregate is never mutated, and repeated
// calls with the same arguments return the same rows.
//
// Ranking is dense "min" style over total passengers descending: tied
// totals share a rank and the next distinct total's rank is the count of
// strictly greater rows plus one. Ties keep their input order (stable sort).
func Rank(annual []AggregateRow, q Query) []RankedRow {
	rows := selectRows(annual, q)

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})

	ranked := assignRanks(rows)

	if q.TopN > 0 && q.City == "" {
		ranked = truncateWithAnchors(ranked, q.TopN, q.Anchors)
	}

	defaultFare := q.DefaultFare
	if defaultFare == 0 {
		defaultFare = DefaultFare
	}

	out := make([]RankedRow, len(ranked))
	for i, r := range ranked {
		out[i] = RankedRow{
			Rank:          r.rank,
			Year:          r.row.Year,
			City:          r.row.City,
			State:         r.row.State,
			Lat:           r.row.Lat,
			Lon:           r.row.Lon,
			Total:         r.row.Total,
			Domestic:      r.row.Domestic,
			International: r.row.International,
			AvgFare:       defaultFare,
		}
		if r.row.AvgFare != nil {
			out[i].AvgFare = *r.row.AvgFare
		}
	}
	return out
}

// selectRows applies the year/state/city selection, copying so the caller's
// aggregate stays untouched by the sort.
func selectRows(annual []AggregateRow, q Query) []AggregateRow {
	var base []AggregateRow
	if q.Year != nil {
		base = filterRows(annual, func(r AggregateRow) bool { return r.Year == *q.Year })
	} else {
		base = CollapseYears(annual)
	}

	if q.State != "" {
		base = filterRows(base, func(r AggregateRow) bool { return r.State == q.State })
	}
	if q.City != "" {
		base = filterRows(base, func(r AggregateRow) bool { return r.City == q.City })
	}

	out := make([]AggregateRow, len(base))
	copy(out, base)
	return out
}

func filterRows(rows []AggregateRow, keep func(AggregateRow) bool) []AggregateRow {
	var out []AggregateRow
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

type rankedAggregate struct {
	rank int
	row  AggregateRow
}

// assignRanks walks rows already sorted by total descending and gives tied
// totals the same rank; the next distinct total's rank reflects its
// position, leaving gaps after ties.
func assignRanks(rows []AggregateRow) []rankedAggregate {
	out := make([]rankedAggregate, len(rows))
	for i, r := range rows {
		rank := i + 1
		if i > 0 && r.Total == rows[i-1].Total {
			rank = out[i-1].rank
		}
		out[i] = rankedAggregate{rank: rank, row: r}
	}
	return out
}

// truncateWithAnchors keeps the first topN ranked rows, then re-unions any
// anchor city's rows that fell outside the cut. Deduplication is by group
// key, so an anchor already inside the top N is not appended again. Anchor
// rows keep their unfiltered rank and follow the truncated rows in rank
// order, which can push the result past topN rows.
func truncateWithAnchors(ranked []rankedAggregate, topN int, anchors []string) []rankedAggregate {
	if topN >= len(ranked) {
		return ranked
	}

	anchorSet := make(map[string]struct{}, len(anchors))
	for _, a := range anchors {
		anchorSet[a] = struct{}{}
	}

	out := make([]rankedAggregate, topN, topN+len(anchors))
	copy(out, ranked[:topN])
	kept := make(map[GroupKey]struct{}, topN)
	for _, r := range out {
		kept[r.row.Key()] = struct{}{}
	}

	for _, r := range ranked[topN:] {
		if _, isAnchor := anchorSet[r.row.City]; !isAnchor {
			continue
		}
		if _, seen := kept[r.row.Key()]; seen {
			continue
		}
		kept[r.row.Key()] = struct{}{}
		out = append(out, r)
	}
	return out
}
