package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yegors/airscen/internal/scenario"
	"github.com/yegors/airscen/pkg/logger"
)

func newTestStorage(t *testing.T) *ScenarioStorage {
	t.Helper()
	store, err := NewScenarioStorage(filepath.Join(t.TempDir(), "archive.db"), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func buildScenario(t *testing.T, name string) *scenario.Scenario {
	t.Helper()

	sc := scenario.NewScenario(name)
	sc.SetAuthor("ops")

	flight, err := scenario.NewFlight("BAW212", "British Airways", "B772", scenario.WakeHeavy, 40)
	require.NoError(t, err)
	plan, err := scenario.NewFlightPlan(
		[][]float64{{-0.46, 51.47}, {-6.27, 53.43}},
		[]int{280, 300},
		[]float64{430, 440},
		"HEAVY", 0, 1)
	require.NoError(t, err)
	flight.AddFlightPlan(plan)
	sc.AddFlight(flight)

	lower := 195.0
	sector, err := scenario.NewSector("EGTT",
		[][]float64{{50, -1}, {50, 1}, {52, 1}, {52, -1}},
		nil, &scenario.Point{Lat: 51, Lon: 0}, &lower, nil)
	require.NoError(t, err)
	sc.AddSector(sector)

	return sc
}

func TestSaveAndListScenarios(t *testing.T) {
	store := newTestStorage(t)

	id1, err := store.SaveScenario(buildScenario(t, "first"), "file")
	require.NoError(t, err)
	assert.Greater(t, id1, int64(0))

	id2, err := store.SaveScenario(buildScenario(t, "second"), "api")
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	list, err := store.ListScenarios()
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Newest first
	assert.Equal(t, "second", list[0].Name)
	assert.Equal(t, "api", list[0].Source)
	assert.Equal(t, "first", list[1].Name)
	assert.Equal(t, 1, list[0].Flights)
	assert.Equal(t, 1, list[0].Sectors)
	assert.Equal(t, "ops", list[0].Author)
	assert.NotEmpty(t, list[0].SavedAt)
}

func TestSaveScenarioPersistsRows(t *testing.T) {
	store := newTestStorage(t)

	id, err := store.SaveScenario(buildScenario(t, "rows"), "file")
	require.NoError(t, err)

	var planCount int
	err = store.GetDB().QueryRow(`
		SELECT COUNT(*) FROM flight_plans fp
		JOIN flights f ON f.id = fp.flight_id
		WHERE f.scenario_id = ?
	`, id).Scan(&planCount)
	require.NoError(t, err)
	assert.Equal(t, 1, planCount)

	var wake string
	err = store.GetDB().QueryRow(`SELECT wake_turbulence_cat FROM flights WHERE scenario_id = ?`, id).Scan(&wake)
	require.NoError(t, err)
	assert.Equal(t, "Heavy", wake)
}

func TestListScenariosEmpty(t *testing.T) {
	store := newTestStorage(t)

	list, err := store.ListScenarios()
	require.NoError(t, err)
	assert.Empty(t, list)
}
