package geo

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDistanceNM(t *testing.T) {
	// One degree of latitude is roughly 60 NM.
	d := DistanceNM(0, 0, 1, 0)
	assert.InDelta(t, 60.0, d, 0.2)

	assert.Zero(t, DistanceNM(43.5, -79.6, 43.5, -79.6))

	// Crossing the antimeridian should measure the short way around.
	short := DistanceNM(0, 179.5, 0, -179.5)
	assert.InDelta(t, 60.0, short, 0.2)
}

func TestInitialBearing(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"due north", 0, 0, 1, 0, 0},
		{"due east", 0, 0, 0, 1, 90},
		{"due south", 1, 0, 0, 0, 180},
		{"due west", 0, 1, 0, 0, 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InitialBearing(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.want, got, 0.01)
		})
	}
}

func TestTrueToMagnetic(t *testing.T) {
	assert.InDelta(t, 10.0, TrueToMagnetic(350, -20), 0.001)
	assert.InDelta(t, 350.0, TrueToMagnetic(10, 20), 0.001)
	assert.InDelta(t, 0.0, TrueToMagnetic(360, 0), 0.001)
}

func TestMagneticDeclination(t *testing.T) {
	// Southern Ontario sits around 10 degrees west declination.
	date := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	d := MagneticDeclination(43.68, -79.63, 1500, date)
	assert.Less(t, math.Abs(d-(-10.4)), 3.0)
}

func TestPointInPolygon(t *testing.T) {
	square := [][2]float64{{0, 0}, {0, 10}, {10, 10}, {10, 0}}

	assert.True(t, PointInPolygon(5, 5, square))
	assert.False(t, PointInPolygon(15, 5, square))
	assert.False(t, PointInPolygon(5, 15, square))
	assert.False(t, PointInPolygon(5, 5, square[:2]))
}

func TestPointInPolygonAntimeridian(t *testing.T) {
	// A box straddling the 180 meridian, from 170E to 170W.
	box := [][2]float64{{-5, 170}, {-5, -170}, {5, -170}, {5, 170}}

	assert.True(t, PointInPolygon(0, 179, box))
	assert.True(t, PointInPolygon(0, -179, box))
	assert.False(t, PointInPolygon(0, 160, box))
}

func TestRoughArea(t *testing.T) {
	square := [][2]float64{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	small := [][2]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

	assert.InDelta(t, 100.0, RoughArea(square), 0.001)
	assert.InDelta(t, 1.0, RoughArea(small), 0.001)
	assert.Greater(t, RoughArea(square), RoughArea(small))
	assert.Zero(t, RoughArea(square[:2]))
}
