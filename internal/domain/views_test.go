package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateTotals(t *testing.T) {
	annual := []AggregateRow{
		row("Atlanta", "GA", 2019, 1000, nil),
		row("Savannah", "GA", 2019, 200, nil),
		row("Denver", "CO", 2019, 800, nil),
		row("Atlanta", "GA", 2020, 400, nil),
		{Year: 2019, City: "Nowhere", Total: 999}, // no state, skipped
	}

	t.Run("all years", func(t *testing.T) {
		totals := StateTotals(annual, nil)

		require.Len(t, totals, 2)
		assert.Equal(t, StateTotal{State: "GA", Total: 1600}, totals[0])
		assert.Equal(t, StateTotal{State: "CO", Total: 800}, totals[1])
	})

	t.Run("single year", func(t *testing.T) {
		totals := StateTotals(annual, yr(2020))

		require.Len(t, totals, 1)
		assert.Equal(t, StateTotal{State: "GA", Total: 400}, totals[0])
	})

	t.Run("tied totals order by state", func(t *testing.T) {
		tied := []AggregateRow{
			row("X", "TX", 2019, 100, nil),
			row("Y", "AZ", 2019, 100, nil),
		}
		totals := StateTotals(tied, nil)

		require.Len(t, totals, 2)
		assert.Equal(t, "AZ", totals[0].State)
		assert.Equal(t, "TX", totals[1].State)
	})
}

func TestFareTrend(t *testing.T) {
	annual := []AggregateRow{
		row("Atlanta", "GA", 2019, 1000, f(250)),
		row("Atlanta", "GA", 2020, 400, f(210)),
		row("Denver", "CO", 2019, 800, f(190)),
		row("Denver", "CO", 2020, 700, nil), // gap year, omitted
		row("Boston", "MA", 2019, 600, f(170)),
	}

	points := FareTrend(annual, []string{"Atlanta", "Denver"})

	require.Len(t, points, 3)
	assert.Equal(t, FareTrendPoint{City: "Atlanta", Year: 2019, AvgFare: 250}, points[0])
	assert.Equal(t, FareTrendPoint{City: "Atlanta", Year: 2020, AvgFare: 210}, points[1])
	assert.Equal(t, FareTrendPoint{City: "Denver", Year: 2019, AvgFare: 190}, points[2])
}

func TestFareTrend_AveragesMultipleLocations(t *testing.T) {
	// Two airports map to distinct locations within one city.
	annual := []AggregateRow{
		{Year: 2019, City: "Houston", State: "TX", Lat: 29.9, Lon: -95.3, Total: 500, AvgFare: f(200)},
		{Year: 2019, City: "Houston", State: "TX", Lat: 29.6, Lon: -95.2, Total: 300, AvgFare: f(100)},
	}

	points := FareTrend(annual, []string{"Houston"})

	require.Len(t, points, 1)
	assert.InDelta(t, 150.0, points[0].AvgFare, 1e-9)
}

func TestFareTrend_NoMatches(t *testing.T) {
	annual := []AggregateRow{row("Atlanta", "GA", 2019, 1000, f(250))}

	assert.Empty(t, FareTrend(annual, []string{"Reno"}))
	assert.Empty(t, FareTrend(annual, nil))
}
