// Command validate performs data integrity checks across the three input
// CSVs: schema presence, year extraction coverage, location and fare join
// coverage, and internal consistency of the produced aggregate. It runs the
// same ingest and pipeline code as the API, so a passing report means the
// service will accept the files.
//
// Usage:
//
//	go run ./cmd/validate -data-dir data
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/oakmere/air-traffic-api/internal/domain"
	"github.com/oakmere/air-traffic-api/internal/ingest"
	"github.com/oakmere/air-traffic-api/internal/observability"
	"github.com/oakmere/air-traffic-api/internal/pipeline"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataDir := flag.String("data-dir", "data", "directory containing the three input CSV files")
	flag.Parse()

	if code := run(*dataDir); code != 0 {
		os.Exit(code)
	}
}

func run(dataDir string) int {
	fmt.Println("=== Air Traffic Data Integrity Validation ===")
	fmt.Println()

	ctx := context.Background()
	traffic := &ingest.TrafficCSV{Path: filepath.Join(dataDir, "Summary_By_Origin_Airport.csv")}
	locations := &ingest.LocationsCSV{Path: filepath.Join(dataDir, "airports_location.csv")}
	fares := &ingest.FaresCSV{Path: filepath.Join(dataDir, "AverageFare_USA.csv")}

	trafficRows, err := traffic.ReadTraffic(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read traffic CSV: %v\n", err)
		return 1
	}
	locationRows, err := locations.ReadLocations(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read locations CSV: %v\n", err)
		return 1
	}
	fareRows, err := fares.ReadFares(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read fares CSV: %v\n", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	loader := pipeline.New(traffic, locations, fares, logger, observability.NewMetricsForTesting())

	ds, err := loader.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load pipeline: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateYearCoverage(trafficRows),
		validateLocationJoin(trafficRows, locationRows),
		validateFareJoin(ds),
		validateAggregateConsistency(ds),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d traffic, %d locations, %d fares, %d aggregated across years %v\n",
		len(trafficRows), len(locationRows), len(fareRows), len(ds.Annual), ds.Years)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// validateYearCoverage checks that nearly every traffic row carries an
// extractable 4-digit year. A few decorated stragglers are tolerated; a
// large share suggests the wrong file or a format change.
func validateYearCoverage(rows []domain.RawTrafficRow) *phase {
	p := &phase{name: "Traffic year extraction coverage"}
	if len(rows) == 0 {
		p.errorf("traffic file has no data rows")
		return p
	}

	missing := 0
	for i := range rows {
		if _, ok := domain.ExtractYear(rows[i].Year); !ok {
			missing++
		}
	}
	if frac := float64(missing) / float64(len(rows)); frac > 0.10 {
		p.errorf("%d of %d traffic rows (%.1f%%) have no extractable year", missing, len(rows), frac*100)
	}
	return p
}

// validateLocationJoin checks how much traffic the mandatory location join
// would drop.
func validateLocationJoin(rows []domain.RawTrafficRow, locs []domain.RawLocationRow) *phase {
	p := &phase{name: "Location join coverage"}
	if len(locs) == 0 {
		p.errorf("locations file has no data rows")
		return p
	}

	known := make(map[string]struct{}, len(locs))
	for i := range locs {
		known[locs[i].Code] = struct{}{}
	}

	unmatched := map[string]int{}
	for i := range rows {
		if _, ok := known[rows[i].AirportCode]; !ok {
			unmatched[rows[i].AirportCode]++
		}
	}

	total := 0
	for _, n := range unmatched {
		total += n
	}
	if len(rows) > 0 && float64(total)/float64(len(rows)) > 0.10 {
		p.errorf("%d of %d traffic rows reference airports missing from the location table", total, len(rows))
		for code, n := range unmatched {
			p.errorf("airport %q: %d rows without coordinates", code, n)
		}
	}
	return p
}

// validateFareJoin checks that the optional fare join matched at least some
// aggregate rows. Fares are allowed to be sparse, but a zero match rate
// means the airport codes in the two files do not line up at all.
func validateFareJoin(ds *domain.Dataset) *phase {
	p := &phase{name: "Fare join coverage"}
	if len(ds.Annual) == 0 {
		p.errorf("aggregate is empty")
		return p
	}

	withFare := 0
	for i := range ds.Annual {
		if ds.Annual[i].AvgFare != nil {
			withFare++
		}
	}
	if withFare == 0 {
		p.errorf("no aggregate row carries fare data; fare airport codes likely do not match")
	}
	return p
}

// validateAggregateConsistency re-aggregates the observations in a shuffled
// order and checks the result is identical, then checks that the collapsed
// all-years totals equal the sum of the per-year totals.
func validateAggregateConsistency(ds *domain.Dataset) *phase {
	p := &phase{name: "Aggregate internal consistency"}

	shuffled := make([]domain.Observation, len(ds.Observations))
	copy(shuffled, ds.Observations)
	rand.New(rand.NewSource(42)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	redone := domain.BuildDataset(shuffled)
	if len(redone.Annual) != len(ds.Annual) {
		p.errorf("re-aggregation changed row count: %d vs %d", len(redone.Annual), len(ds.Annual))
		return p
	}
	for i := range ds.Annual {
		if redone.Annual[i].Key() != ds.Annual[i].Key() || redone.Annual[i].Year != ds.Annual[i].Year {
			p.errorf("re-aggregation changed row order at index %d", i)
			return p
		}
		if redone.Annual[i].Total != ds.Annual[i].Total {
			p.errorf("re-aggregation changed totals for %s, %s year %d",
				ds.Annual[i].City, ds.Annual[i].State, ds.Annual[i].Year)
		}
	}

	perCity := map[domain.GroupKey]float64{}
	for i := range ds.Annual {
		perCity[ds.Annual[i].Key()] += ds.Annual[i].Total
	}
	for _, row := range domain.CollapseYears(ds.Annual) {
		want := perCity[row.Key()]
		if math.Abs(row.Total-want) > 1e-6 {
			p.errorf("all-years total for %s, %s is %.0f, expected %.0f",
				row.City, row.State, row.Total, want)
		}
	}
	return p
}
