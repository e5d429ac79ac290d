// Package domain models U.S. air-passenger traffic data aggregated to
// city/year granularity.
//
// # Data Sources
//
// Three flat CSV files, in the shape published by the Bureau of
// Transportation Statistics (BTS) origin-airport summaries:
//
//	Summary_By_Origin_Airport.csv  — one row per origin airport and year
//	airports_location.csv          — airport code → latitude/longitude/state
//	AverageFare_USA.csv            — average fare per airport and year
//
// # Source Data Conventions
//
// Numeric columns arrive as display-formatted text and must be coerced:
//
//	Passenger counts: thousands separators and stray quote characters,
//	  e.g. `"1,234,567"` → 1234567. Unparseable values become nil
//	  (unmeasured), never zero and never an error.
//	Fares: currency formatting, e.g. "$1,234.50" → 1234.50. The NOAA-style
//	  "N/A" sentinel and any other unparseable text become nil.
//
// Year fields are free text that embeds a 4-digit year ("Year 2019",
// "2019.0", "FY2019"). The first run of exactly four digits is taken as the
// year; rows with no such run are dropped because year is a mandatory
// grouping key.
//
// # Join Semantics
//
// Observations left-join airport locations on airport code; rows without a
// location are dropped — the aggregate exists to be plotted, and a row
// without coordinates cannot be. Observations then left-join fares on
// (airport code, year); rows without a fare keep a nil fare.
//
// # Aggregation
//
// AggregateRow groups observations by (year, city, state, latitude,
// longitude). Passenger measures are summed with nil counts contributing
// zero; the fare measure is the mean of non-nil fares, or nil when no fare
// matched any airport in the group. Output order is deterministic and
// independent of input row order.
//
// # Ranking
//
// Rank produces a dense "min" rank over total passengers, descending:
// tied totals share a rank, and the next distinct total's rank equals the
// count of strictly greater rows plus one, so totals [500, 500, 300] rank
// [1, 1, 3]. Nil fares are replaced by a presentation default (100 by
// convention) in ranked rows only; the stored aggregate keeps nil.
package domain
