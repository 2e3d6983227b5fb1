package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yegors/airscen/pkg/logger"
)

const scenarioYAML = `name: "YYZ Morning Push"
datetime: "2024-06-01T06:00:00Z"
author: "ops"
flights:
  - callsign: "ACA117"
    airline: "Air Canada"
    aircraft: "B77W"
    wake_turbulence_cat: "Heavy"
    cost_index: 35
    filed_plans:
      - waypoints: [[-79.63, 43.68], [-75.67, 45.32]]
        altitudes: [320, 340]
        speeds: [450, 460]
        aircraft_category: "HEAVY"
        delay_allowance: 600
        preference_rank: 1
      - waypoints: [[-79.63, 43.68], [-73.74, 45.47]]
        altitudes: [300, 320]
        speeds: [440, 450]
        aircraft_category: "HEAVY"
        preference_rank: 2
`

const sectorsYAML = `sectors:
  - name: "LFFF"
    polygon: [[48.0, 1.0], [48.0, 4.0], [50.0, 4.0], [50.0, 1.0]]
    centroid: [49.0, 2.5]
    lower_altitude: 245
    upper_altitude: 460
  - name: "EGTT"
    polygon: [[50.0, -1.0], [50.0, 1.0], [52.0, 1.0], [52.0, -1.0]]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadDocument(t *testing.T) {
	l := New(logger.NewNop())

	doc, err := l.ReadDocument(writeFile(t, "scenario.yaml", scenarioYAML))
	require.NoError(t, err)

	assert.Equal(t, "YYZ Morning Push", doc.Name)
	assert.Equal(t, "2024-06-01T06:00:00Z", doc.Datetime)
	assert.Equal(t, "ops", doc.Author)

	require.Len(t, doc.Flights, 1)
	rec := doc.Flights[0]
	assert.Equal(t, "ACA117", rec.Callsign)
	assert.Equal(t, "Heavy", rec.WakeTurbulenceCat)
	assert.Equal(t, 35.0, rec.CostIndex)

	require.Len(t, rec.FiledPlans, 2)
	assert.Equal(t, [][]float64{{-79.63, 43.68}, {-75.67, 45.32}}, rec.FiledPlans[0].Waypoints)
	assert.Equal(t, []int{320, 340}, rec.FiledPlans[0].Altitudes)
	assert.Equal(t, 600.0, rec.FiledPlans[0].DelayAllowance)
	// Unset optionals decode to zero values.
	assert.Zero(t, rec.FiledPlans[1].DelayAllowance)
	assert.Equal(t, 2, rec.FiledPlans[1].PreferenceRank)
}

func TestReadSectorRecords(t *testing.T) {
	l := New(logger.NewNop())

	records, err := l.ReadSectorRecords(writeFile(t, "sectors.yaml", sectorsYAML))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "LFFF", records[0].Name)
	assert.Len(t, records[0].Polygon, 4)
	assert.Equal(t, []float64{49.0, 2.5}, records[0].Centroid)
	require.NotNil(t, records[0].LowerAltitude)
	assert.Equal(t, 245.0, *records[0].LowerAltitude)

	assert.Equal(t, "EGTT", records[1].Name)
	assert.Nil(t, records[1].Capacity)
	assert.Nil(t, records[1].LowerAltitude)
}

func TestReadDocumentMissingFile(t *testing.T) {
	l := New(logger.NewNop())

	_, err := l.ReadDocument(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestReadDocumentMalformed(t *testing.T) {
	l := New(logger.NewNop())

	_, err := l.ReadDocument(writeFile(t, "bad.yaml", "flights: [unclosed"))
	assert.Error(t, err)
}
