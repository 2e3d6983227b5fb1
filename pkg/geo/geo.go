// Package geo provides great-circle and polygon helpers for positions given
// in decimal degrees, plus WMM magnetic declination lookup.
package geo

import (
	"math"
	"time"

	"github.com/westphae/geomag/pkg/egm96"
	"github.com/westphae/geomag/pkg/wmm"
)

// EarthRadiusNM is the mean Earth radius in nautical miles.
const EarthRadiusNM = 3440.065

// DistanceNM returns the great-circle distance in nautical miles between two
// points. Longitude deltas are unwrapped so antimeridian crossings measure the
// short way around.
func DistanceNM(lat1, lon1, lat2, lon2 float64) float64 {
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	for dLon > math.Pi {
		dLon -= 2 * math.Pi
	}
	for dLon < -math.Pi {
		dLon += 2 * math.Pi
	}

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return EarthRadiusNM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// InitialBearing returns the initial great-circle course from the first point
// toward the second, in degrees true within [0, 360).
func InitialBearing(lat1, lon1, lat2, lon2 float64) float64 {
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(dLon) * math.Cos(rLat2)
	x := math.Cos(rLat1)*math.Sin(rLat2) - math.Sin(rLat1)*math.Cos(rLat2)*math.Cos(dLon)

	return math.Mod(math.Atan2(y, x)*180/math.Pi+360, 360)
}

// MagneticDeclination returns the WMM declination in degrees (east positive)
// at the given position, altitude in feet, and date. Returns 0 if the model
// cannot produce a value for the inputs.
func MagneticDeclination(lat, lon, altFt float64, date time.Time) float64 {
	altM := altFt * 0.3048

	loc := egm96.NewLocationGeodetic(lat, lon, altM)

	mag, err := wmm.CalculateWMMMagneticField(loc, date)
	if err != nil {
		return 0.0
	}

	return mag.D()
}

// TrueToMagnetic converts a true course to a magnetic course for the given
// declination, normalized to [0, 360).
func TrueToMagnetic(trueDeg, declination float64) float64 {
	return math.Mod(trueDeg-declination+360, 360)
}

// PointInPolygon reports whether the point lies inside the polygon given as
// (lat, lon) vertices. Segments spanning the antimeridian are unwrapped
// relative to the query point before the ray cast.
func PointInPolygon(lat, lon float64, polygon [][2]float64) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	for i, j := 0, len(polygon)-1; i < len(polygon); j, i = i, i+1 {
		latI, lonI := polygon[i][0], unwrapLon(polygon[i][1], lon)
		latJ, lonJ := polygon[j][0], unwrapLon(polygon[j][1], lon)

		if (lonI > lon) != (lonJ > lon) &&
			lat < (latJ-latI)*(lon-lonI)/(lonJ-lonI)+latI {
			inside = !inside
		}
	}

	return inside
}

func unwrapLon(lon, ref float64) float64 {
	switch {
	case lon-ref > 180:
		return lon - 360
	case lon-ref < -180:
		return lon + 360
	}
	return lon
}

// RoughArea returns a planar shoelace area for the polygon in squared degrees.
// The value is only meaningful for comparing polygons against each other,
// e.g. picking the smallest of several regions containing a point.
func RoughArea(polygon [][2]float64) float64 {
	if len(polygon) < 3 {
		return 0
	}

	var area float64
	for i, j := 0, len(polygon)-1; i < len(polygon); j, i = i, i+1 {
		latI, lonI := polygon[i][0], polygon[i][1]
		latJ, lonJ := polygon[j][0], polygon[j][1]

		dLon := lonJ - lonI
		if dLon > 180 {
			lonJ -= 360
		} else if dLon < -180 {
			lonJ += 360
		}

		area += latI*lonJ - latJ*lonI
	}

	return math.Abs(area / 2.0)
}
