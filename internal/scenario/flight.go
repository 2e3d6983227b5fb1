package scenario

import "fmt"

// WakeCategory is the closed set of wake turbulence classes.
type WakeCategory uint8

const (
	WakeLight WakeCategory = iota
	WakeMedium
	WakeHeavy
	WakeSuper
)

var wakeNames = [...]string{"Light", "Medium", "Heavy", "Super"}

// String returns the canonical name, e.g. "Heavy".
func (w WakeCategory) String() string {
	if int(w) < len(wakeNames) {
		return wakeNames[w]
	}
	return fmt.Sprintf("WakeCategory(%d)", uint8(w))
}

// ParseWakeCategory maps a record value onto the closed set. The match is
// exact; anything else fails with a membership error naming the valid set.
func ParseWakeCategory(s string) (WakeCategory, error) {
	for i, name := range wakeNames {
		if s == name {
			return WakeCategory(i), nil
		}
	}
	return 0, newValidationError(CategoryMembership, "wake_turbulence_cat", "invalid category %q, must be one of %v", s, wakeNames)
}

// Flight is an aircraft identity plus the candidate plans filed for it, in
// filing order. Filing order is the preference order; each plan's own rank
// is advisory and never re-sorts the list.
type Flight struct {
	callsign   string
	airline    string
	aircraft   string
	wake       WakeCategory
	costIndex  float64
	filedPlans []*FlightPlan
}

// NewFlight builds a flight with no filed plans. Identity fields are free
// strings; only the wake category is validated.
func NewFlight(callsign, airline, aircraft string, wake WakeCategory, costIndex float64) (*Flight, error) {
	if int(wake) >= len(wakeNames) {
		return nil, newValidationError(CategoryMembership, "wake_turbulence_cat", "invalid category, must be one of %v", wakeNames)
	}
	return &Flight{
		callsign:  callsign,
		airline:   airline,
		aircraft:  aircraft,
		wake:      wake,
		costIndex: costIndex,
	}, nil
}

// AddFlightPlan appends a plan to the end of the filed list. No
// deduplication, no re-sorting, no bound on count.
func (f *Flight) AddFlightPlan(plan *FlightPlan) {
	f.filedPlans = append(f.filedPlans, plan)
}

// FiledPlans returns a copy of the filed list in filing order. The plans
// themselves are shared references.
func (f *Flight) FiledPlans() []*FlightPlan {
	return append([]*FlightPlan(nil), f.filedPlans...)
}

func (f *Flight) Callsign() string {
	return f.callsign
}

func (f *Flight) Airline() string {
	return f.airline
}

func (f *Flight) Aircraft() string {
	return f.aircraft
}

func (f *Flight) WakeCategory() WakeCategory {
	return f.wake
}

// CostIndex is the filed fuel-versus-time preference scalar, unrestricted.
func (f *Flight) CostIndex() float64 {
	return f.costIndex
}

func (f *Flight) String() string {
	return fmt.Sprintf("Flight %s (%s %s, wake=%s, %d plans)", f.callsign, f.airline, f.aircraft, f.wake, len(f.filedPlans))
}
