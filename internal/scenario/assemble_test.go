package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yegors/airscen/pkg/logger"
)

func sampleDocument() *Document {
	return &Document{
		Name:     "YYZ Morning Push",
		Datetime: "2024-06-01T06:00:00Z",
		Author:   "ops",
		Flights: []FlightRecord{
			{
				Callsign:          "ACA117",
				Airline:           "Air Canada",
				Aircraft:          "B77W",
				WakeTurbulenceCat: "Heavy",
				CostIndex:         35,
				FiledPlans: []PlanRecord{
					{
						Waypoints:        [][]float64{{-79.63, 43.68}, {-75.67, 45.32}},
						Altitudes:        []int{320, 340},
						Speeds:           []float64{450, 460},
						AircraftCategory: "HEAVY",
						DelayAllowance:   600,
						PreferenceRank:   1,
					},
					{
						Waypoints:        [][]float64{{-79.63, 43.68}, {-73.74, 45.47}},
						Altitudes:        []int{300, 320},
						Speeds:           []float64{440, 450},
						AircraftCategory: "HEAVY",
						PreferenceRank:   2,
					},
				},
			},
		},
	}
}

func TestAssembleDocument(t *testing.T) {
	asm := NewAssembler(logger.NewNop())

	sc, err := asm.Assemble(sampleDocument())
	require.NoError(t, err)

	assert.Equal(t, "YYZ Morning Push", sc.Name())
	assert.Equal(t, "2024-06-01T06:00:00Z", sc.Datetime())
	assert.Equal(t, "ops", sc.Author())

	flights := sc.Flights()
	require.Len(t, flights, 1)
	assert.Equal(t, "ACA117", flights[0].Callsign())
	assert.Equal(t, WakeHeavy, flights[0].WakeCategory())

	// Plans come out in document order, which is the preference order.
	plans := flights[0].FiledPlans()
	require.Len(t, plans, 2)
	assert.Equal(t, 1, plans[0].PreferenceRank())
	assert.Equal(t, 2, plans[1].PreferenceRank())
	assert.Equal(t, 600.0, plans[0].DelayAllowance())
	assert.Zero(t, plans[1].DelayAllowance())
}

func TestAssembleDefaultName(t *testing.T) {
	asm := NewAssembler(logger.NewNop())

	sc, err := asm.Assemble(&Document{})
	require.NoError(t, err)
	assert.Equal(t, DefaultName, sc.Name())
	assert.Empty(t, sc.Flights())
}

func TestAssembleRecordDefaults(t *testing.T) {
	asm := NewAssembler(logger.NewNop())

	doc := &Document{
		Flights: []FlightRecord{{
			Callsign:          "JZA8921",
			WakeTurbulenceCat: "Medium",
			FiledPlans: []PlanRecord{{
				Waypoints: [][]float64{{-79.63, 43.68}},
				Altitudes: []int{240},
				Speeds:    []float64{280},
				// DelayAllowance and PreferenceRank left unset.
			}},
		}},
	}

	sc, err := asm.Assemble(doc)
	require.NoError(t, err)

	plan := sc.Flights()[0].FiledPlans()[0]
	assert.Zero(t, plan.DelayAllowance())
	assert.Equal(t, 1, plan.PreferenceRank())
}

func TestAssembleRejectsBadWake(t *testing.T) {
	asm := NewAssembler(logger.NewNop())

	doc := sampleDocument()
	doc.Flights[0].WakeTurbulenceCat = "XL"

	sc, err := asm.Assemble(doc)
	require.Error(t, err)
	assert.Nil(t, sc)
	requireCategory(t, err, CategoryMembership)
}

func TestAssembleRejectsBadPlan(t *testing.T) {
	asm := NewAssembler(logger.NewNop())

	doc := sampleDocument()
	doc.Flights[0].FiledPlans[1].Waypoints = [][]float64{{200, 43.68}}

	sc, err := asm.Assemble(doc)
	require.Error(t, err)
	assert.Nil(t, sc)
	requireCategory(t, err, CategoryRange)
}

func TestBuildSector(t *testing.T) {
	asm := NewAssembler(logger.NewNop())

	lower, upper := 245.0, 460.0
	rec := &SectorRecord{
		Name:          "LFFF",
		Polygon:       [][]float64{{48, 1}, {48, 4}, {50, 4}, {50, 1}},
		Centroid:      []float64{49, 2.5},
		LowerAltitude: &lower,
		UpperAltitude: &upper,
	}

	sector, err := asm.BuildSector(rec)
	require.NoError(t, err)
	assert.Equal(t, "LFFF", sector.Name())

	c, ok := sector.Centroid()
	require.True(t, ok)
	assert.Equal(t, Point{Lat: 49, Lon: 2.5}, c)

	lo, _ := sector.LowerAltitude()
	hi, _ := sector.UpperAltitude()
	assert.Equal(t, 245.0, lo)
	assert.Equal(t, 460.0, hi)
}

func TestBuildSectorRejections(t *testing.T) {
	asm := NewAssembler(logger.NewNop())

	_, err := asm.BuildSector(&SectorRecord{
		Name:    "BAD",
		Polygon: [][]float64{{48, 1}},
		Capacity: make([]int, 12),
	})
	requireCategory(t, err, CategoryDimension)

	_, err = asm.BuildSector(&SectorRecord{
		Name:     "BAD",
		Polygon:  [][]float64{{48, 1}},
		Centroid: []float64{49},
	})
	requireCategory(t, err, CategoryDimension)
}
