package scenario

import "fmt"

// Waypoint is a route fix in decimal degrees.
type Waypoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// FlightPlan is one candidate route for a flight: an ordered waypoint
// sequence with one altitude (flight level) and one speed (knots) per
// waypoint. Plans are immutable once constructed.
type FlightPlan struct {
	waypoints        []Waypoint
	altitudes        []int
	speeds           []float64
	aircraftCategory string
	delayAllowance   float64
	preferenceRank   int
}

// NewFlightPlan validates and builds a flight plan. Waypoints are supplied as
// [lon, lat] rows, longitude within [-180, 180] and latitude within
// [-90, 90], both inclusive. Altitude and speed counts must match the
// waypoint count. A negative delayAllowance clamps to 0 and a preferenceRank
// below 1 clamps to 1; clamping is silent normalization, not an error.
func NewFlightPlan(waypoints [][]float64, altitudes []int, speeds []float64, aircraftCategory string, delayAllowance float64, preferenceRank int) (*FlightPlan, error) {
	if len(waypoints) == 0 {
		return nil, newValidationError(CategoryDimension, "waypoints", "at least one [lon, lat] pair is required")
	}
	for _, wp := range waypoints {
		if len(wp) != 2 {
			return nil, newValidationError(CategoryDimension, "waypoints", "each waypoint must be a [lon, lat] pair, got %d values", len(wp))
		}
	}
	for _, wp := range waypoints {
		if wp[0] < -180 || wp[0] > 180 {
			return nil, newValidationError(CategoryRange, "waypoints", "longitude %v out of range [-180, 180]", wp[0])
		}
	}
	for _, wp := range waypoints {
		if wp[1] < -90 || wp[1] > 90 {
			return nil, newValidationError(CategoryRange, "waypoints", "latitude %v out of range [-90, 90]", wp[1])
		}
	}
	if len(altitudes) != len(waypoints) {
		return nil, newValidationError(CategoryDimension, "altitudes", "got %d altitudes for %d waypoints", len(altitudes), len(waypoints))
	}
	if len(speeds) != len(waypoints) {
		return nil, newValidationError(CategoryDimension, "speeds", "got %d speeds for %d waypoints", len(speeds), len(waypoints))
	}

	if delayAllowance < 0 {
		delayAllowance = 0
	}
	if preferenceRank < 1 {
		preferenceRank = 1
	}

	wps := make([]Waypoint, len(waypoints))
	for i, wp := range waypoints {
		wps[i] = Waypoint{Lon: wp[0], Lat: wp[1]}
	}

	return &FlightPlan{
		waypoints:        wps,
		altitudes:        append([]int(nil), altitudes...),
		speeds:           append([]float64(nil), speeds...),
		aircraftCategory: aircraftCategory,
		delayAllowance:   delayAllowance,
		preferenceRank:   preferenceRank,
	}, nil
}

// Waypoints returns a copy of the route fixes in order.
func (fp *FlightPlan) Waypoints() []Waypoint {
	return append([]Waypoint(nil), fp.waypoints...)
}

// Altitudes returns a copy of the flight levels, one per waypoint.
func (fp *FlightPlan) Altitudes() []int {
	return append([]int(nil), fp.altitudes...)
}

// Speeds returns a copy of the speeds in knots, one per waypoint.
func (fp *FlightPlan) Speeds() []float64 {
	return append([]float64(nil), fp.speeds...)
}

func (fp *FlightPlan) AircraftCategory() string {
	return fp.aircraftCategory
}

// DelayAllowance is the acceptable ground delay in seconds, never negative.
func (fp *FlightPlan) DelayAllowance() float64 {
	return fp.delayAllowance
}

// PreferenceRank is the filed ordinal for this plan, 1 or greater; lower
// means more preferred.
func (fp *FlightPlan) PreferenceRank() int {
	return fp.preferenceRank
}

// Len returns the waypoint count.
func (fp *FlightPlan) Len() int {
	return len(fp.waypoints)
}

func (fp *FlightPlan) String() string {
	return fmt.Sprintf("FlightPlan(%d waypoints, category=%q, rank=%d)", len(fp.waypoints), fp.aircraftCategory, fp.preferenceRank)
}
