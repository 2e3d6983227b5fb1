package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioMetadata(t *testing.T) {
	sc := NewScenario("Morning Push")
	assert.Equal(t, "Morning Push", sc.Name())
	assert.Empty(t, sc.Datetime())
	assert.Empty(t, sc.Author())

	sc.SetDatetime("2024-06-01T06:00:00Z")
	sc.SetAuthor("ops")
	assert.Equal(t, "2024-06-01T06:00:00Z", sc.Datetime())
	assert.Equal(t, "ops", sc.Author())
}

func TestScenarioAppendOrder(t *testing.T) {
	sc := NewScenario("Ordering")

	f1, err := NewFlight("ACA117", "", "", WakeHeavy, 0)
	require.NoError(t, err)
	f2, err := NewFlight("WJA543", "", "", WakeMedium, 0)
	require.NoError(t, err)

	sc.AddFlight(f1)
	sc.AddFlight(f2)
	sc.AddFlight(f1) // duplicates permitted

	flights := sc.Flights()
	require.Len(t, flights, 3)
	assert.Same(t, f1, flights[0])
	assert.Same(t, f2, flights[1])
	assert.Same(t, f1, flights[2])

	s1, err := NewSector("CZYZ", squareBoundary(), nil, nil, nil, nil)
	require.NoError(t, err)
	s2, err := NewSector("CZUL", squareBoundary(), nil, nil, nil, nil)
	require.NoError(t, err)

	sc.AddSector(s1)
	sc.AddSector(s2)

	sectors := sc.Sectors()
	require.Len(t, sectors, 2)
	assert.Same(t, s1, sectors[0])
	assert.Same(t, s2, sectors[1])
}

func TestScenarioAccessorCopies(t *testing.T) {
	sc := NewScenario("Copies")

	f, err := NewFlight("ACA117", "", "", WakeHeavy, 0)
	require.NoError(t, err)
	sc.AddFlight(f)

	flights := sc.Flights()
	flights = append(flights, f)
	flights[0] = nil

	got := sc.Flights()
	require.Len(t, got, 1)
	assert.Same(t, f, got[0])

	s, err := NewSector("CZYZ", squareBoundary(), nil, nil, nil, nil)
	require.NoError(t, err)
	sc.AddSector(s)

	sectors := sc.Sectors()
	sectors[0] = nil
	require.Len(t, sc.Sectors(), 1)
	assert.Same(t, s, sc.Sectors()[0])

	// Entities stay shared references: mutating a flight through the copy is
	// visible in the scenario.
	plan, err := NewFlightPlan([][]float64{{-79.63, 43.68}}, []int{240}, []float64{280}, "", 0, 1)
	require.NoError(t, err)
	sc.Flights()[0].AddFlightPlan(plan)
	assert.Len(t, sc.Flights()[0].FiledPlans(), 1)
}

func TestScenarioString(t *testing.T) {
	sc := NewScenario("Summary")
	f, err := NewFlight("ACA117", "", "", WakeHeavy, 0)
	require.NoError(t, err)
	sc.AddFlight(f)

	assert.Contains(t, sc.String(), "Summary")
	assert.Contains(t, sc.String(), "1 flights")
}
