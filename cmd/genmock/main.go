// Command genmock generates mock input CSV fixtures for the traffic API.
// The generated files exercise every cleaning rule in the pipeline: currency
// decorations on fares, quoted thousands separators on passenger counts,
// decorated year strings, airports missing from the location table, and
// fare gaps. After writing the files it runs them through the actual load
// pipeline and prints the resulting aggregate so the fixtures can be checked
// against expected drop counts.
//
// Usage:
//
//	go run ./cmd/genmock -out-dir data/mock -airports 40 -years 5 -seed 1
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/oakmere/air-traffic-api/internal/ingest"
	"github.com/oakmere/air-traffic-api/internal/observability"
	"github.com/oakmere/air-traffic-api/internal/pipeline"
)

type mockAirport struct {
	code  string
	city  string
	state string
	lat   float64
	lon   float64
}

// seedAirports anchors the generated data to recognizable cities so the
// fixtures are readable. Additional airports are synthesized beyond these.
var seedAirports = []mockAirport{
	{"ATL", "Atlanta", "GA", 33.6407, -84.4277},
	{"LAX", "Los Angeles", "CA", 33.9416, -118.4085},
	{"ORD", "Chicago", "IL", 41.9742, -87.9073},
	{"DFW", "Dallas", "TX", 32.8998, -97.0403},
	{"DEN", "Denver", "CO", 39.8561, -104.6737},
	{"JFK", "New York", "NY", 40.6413, -73.7781},
	{"SEA", "Seattle", "WA", 47.4502, -122.3088},
	{"BOS", "Boston", "MA", 42.3656, -71.0096},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "data/mock", "output directory for mock CSV files")
	airports := flag.Int("airports", 40, "number of airports to generate")
	years := flag.Int("years", 5, "number of consecutive years ending 2023")
	seed := flag.Int64("seed", 1, "random seed for reproducible fixtures")
	flag.Parse()

	if *airports < len(seedAirports) {
		return fmt.Errorf("-airports must be at least %d", len(seedAirports))
	}
	if *years < 1 {
		return fmt.Errorf("-years must be at least 1")
	}

	rng := rand.New(rand.NewSource(*seed))
	ports := buildAirports(rng, *airports)

	firstYear := 2023 - *years + 1
	trafficPath := filepath.Join(*outDir, "Summary_By_Origin_Airport.csv")
	locationsPath := filepath.Join(*outDir, "airports_location.csv")
	faresPath := filepath.Join(*outDir, "AverageFare_USA.csv")

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	if err := writeTraffic(trafficPath, rng, ports, firstYear, 2023); err != nil {
		return fmt.Errorf("writing traffic fixture: %w", err)
	}
	log.Printf("wrote traffic fixture: %s", trafficPath)

	if err := writeLocations(locationsPath, ports); err != nil {
		return fmt.Errorf("writing locations fixture: %w", err)
	}
	log.Printf("wrote locations fixture: %s", locationsPath)

	if err := writeFares(faresPath, rng, ports, firstYear, 2023); err != nil {
		return fmt.Errorf("writing fares fixture: %w", err)
	}
	log.Printf("wrote fares fixture: %s", faresPath)

	return report(trafficPath, locationsPath, faresPath)
}

func buildAirports(rng *rand.Rand, n int) []mockAirport {
	ports := make([]mockAirport, 0, n)
	ports = append(ports, seedAirports...)
	for i := len(seedAirports); i < n; i++ {
		code := fmt.Sprintf("Z%c%c", 'A'+rng.Intn(26), 'A'+rng.Intn(26))
		ports = append(ports, mockAirport{
			code:  code,
			city:  fmt.Sprintf("Mocktown %d", i),
			state: []string{"OH", "PA", "FL", "AZ", "NC", "MI"}[rng.Intn(6)],
			lat:   25 + rng.Float64()*20,
			lon:   -120 + rng.Float64()*40,
		})
	}
	return ports
}

func writeTraffic(path string, rng *rand.Rand, ports []mockAirport, firstYear, lastYear int) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write([]string{
			"Origin Airport Code", "Origin City Name", "Year",
			"Total Passengers", "Domestic Passengers", "Outbound International Passengers",
		}); err != nil {
			return err
		}
		for _, p := range ports {
			for y := firstYear; y <= lastYear; y++ {
				domestic := 100_000 + rng.Intn(40_000_000)
				intl := rng.Intn(domestic / 4)
				row := []string{
					p.code,
					p.city,
					decorateYear(rng, y),
					groupedCount(domestic + intl),
					groupedCount(domestic),
					groupedCount(intl),
				}
				// A sprinkling of malformed values the cleaner must survive.
				switch rng.Intn(20) {
				case 0:
					row[2] = "unknown" // no 4-digit year: row is dropped
				case 1:
					row[5] = "N/A" // unparseable count: field becomes null
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
		// One airport with no location row, to exercise the mandatory join.
		return w.Write([]string{"XNL", "Nowhere", fmt.Sprint(lastYear), "12,345", "12,345", "0"})
	})
}

func writeLocations(path string, ports []mockAirport) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write([]string{"code", "latitude", "longitude", "state"}); err != nil {
			return err
		}
		for _, p := range ports {
			err := w.Write([]string{
				p.code,
				fmt.Sprintf("%.4f", p.lat),
				fmt.Sprintf("%.4f", p.lon),
				p.state,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func writeFares(path string, rng *rand.Rand, ports []mockAirport, firstYear, lastYear int) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write([]string{
			"Airport Code", "Year", "Average Fare ($)", "Inflation Adjusted Average Fare ($)",
		}); err != nil {
			return err
		}
		for _, p := range ports {
			for y := firstYear; y <= lastYear; y++ {
				// Leave fare gaps so the optional join produces nulls.
				if rng.Intn(10) == 0 {
					continue
				}
				fare := 150 + rng.Float64()*400
				row := []string{
					p.code,
					fmt.Sprint(y),
					fmt.Sprintf("$%.2f", fare),
					fmt.Sprintf("$%.2f", fare*1.08),
				}
				if rng.Intn(25) == 0 {
					row[2] = "N/A"
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// decorateYear wraps some year values in the kind of noise the source data
// carries, which the year extractor must see through.
func decorateYear(rng *rand.Rand, y int) string {
	switch rng.Intn(4) {
	case 0:
		return fmt.Sprintf("FY %d", y)
	case 1:
		return fmt.Sprintf("%d (preliminary)", y)
	default:
		return fmt.Sprint(y)
	}
}

// groupedCount formats a count with thousands separators, matching the
// quoted style of the source exports.
func groupedCount(n int) string {
	s := fmt.Sprint(n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}

func writeCSV(path string, fn func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := fn(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// report runs the generated fixtures through the real pipeline and prints
// the resulting aggregate shape.
func report(trafficPath, locationsPath, faresPath string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	metrics := observability.NewMetricsForTesting()

	loader := pipeline.New(
		&ingest.TrafficCSV{Path: trafficPath},
		&ingest.LocationsCSV{Path: locationsPath},
		&ingest.FaresCSV{Path: faresPath},
		logger, metrics,
	)

	ds, err := loader.Load(context.Background())
	if err != nil {
		return fmt.Errorf("loading generated fixtures: %w", err)
	}

	withFare := 0
	for i := range ds.Annual {
		if ds.Annual[i].AvgFare != nil {
			withFare++
		}
	}
	log.Printf("aggregate: %d rows across years %v, %d with fare data",
		len(ds.Annual), ds.Years, withFare)
	return nil
}
