package scenario

import (
	"github.com/yegors/airscen/pkg/logger"
)

// Document is the parsed scenario input: optional metadata plus flight
// records. Sector boundaries travel separately as SectorRecord values
// because they are extracted from airspace data rather than filed.
type Document struct {
	Name     string         `yaml:"name" json:"name"`
	Datetime string         `yaml:"datetime" json:"datetime"`
	Author   string         `yaml:"author" json:"author"`
	Flights  []FlightRecord `yaml:"flights" json:"flights"`
}

// FlightRecord is one filed flight in a scenario document.
type FlightRecord struct {
	Callsign          string       `yaml:"callsign" json:"callsign"`
	Airline           string       `yaml:"airline" json:"airline"`
	Aircraft          string       `yaml:"aircraft" json:"aircraft"`
	WakeTurbulenceCat string       `yaml:"wake_turbulence_cat" json:"wake_turbulence_cat"`
	CostIndex         float64      `yaml:"cost_index" json:"cost_index"`
	FiledPlans        []PlanRecord `yaml:"filed_plans" json:"filed_plans"`
}

// PlanRecord is one candidate route in a flight record. Absent optional
// fields decode to zero values, which normalize to the documented defaults
// (no delay allowance, rank 1).
type PlanRecord struct {
	Waypoints        [][]float64 `yaml:"waypoints" json:"waypoints"`
	Altitudes        []int       `yaml:"altitudes" json:"altitudes"`
	Speeds           []float64   `yaml:"speeds" json:"speeds"`
	AircraftCategory string      `yaml:"aircraft_category" json:"aircraft_category"`
	DelayAllowance   float64     `yaml:"delay_allowance" json:"delay_allowance"`
	PreferenceRank   int         `yaml:"preference_rank" json:"preference_rank"`
}

// SectorRecord is one pre-extracted airspace boundary with optional capacity
// profile, centroid, and vertical bounds.
type SectorRecord struct {
	Name          string      `yaml:"name" json:"name"`
	Polygon       [][]float64 `yaml:"polygon" json:"polygon"`
	Capacity      []int       `yaml:"capacity" json:"capacity"`
	Centroid      []float64   `yaml:"centroid" json:"centroid"`
	LowerAltitude *float64    `yaml:"lower_altitude" json:"lower_altitude"`
	UpperAltitude *float64    `yaml:"upper_altitude" json:"upper_altitude"`
}

// Assembler turns parsed documents into wired scenarios. Diagnostics go to
// the injected logger.
type Assembler struct {
	log *logger.Logger
}

func NewAssembler(log *logger.Logger) *Assembler {
	return &Assembler{log: log.Named("assembler")}
}

// Assemble builds a scenario from a parsed document. Each flight is built
// first, then its plans in record order, so document order becomes the
// flight's preference order. The first validation failure aborts the whole
// assembly and is returned unmodified; no partial scenario escapes.
func (a *Assembler) Assemble(doc *Document) (*Scenario, error) {
	name := doc.Name
	if name == "" {
		name = DefaultName
	}

	sc := NewScenario(name)
	sc.SetDatetime(doc.Datetime)
	sc.SetAuthor(doc.Author)

	for i, rec := range doc.Flights {
		flight, err := a.buildFlight(i, &rec)
		if err != nil {
			return nil, err
		}
		sc.AddFlight(flight)
	}

	a.log.Info("Assembled scenario",
		logger.String("name", sc.Name()),
		logger.Int("flights", len(doc.Flights)))

	return sc, nil
}

func (a *Assembler) buildFlight(index int, rec *FlightRecord) (*Flight, error) {
	wake, err := ParseWakeCategory(rec.WakeTurbulenceCat)
	if err != nil {
		a.log.Error("Rejected flight record",
			logger.Int("flight_index", index),
			logger.String("callsign", rec.Callsign),
			logger.Error(err))
		return nil, err
	}

	flight, err := NewFlight(rec.Callsign, rec.Airline, rec.Aircraft, wake, rec.CostIndex)
	if err != nil {
		return nil, err
	}

	for i, planRec := range rec.FiledPlans {
		plan, err := NewFlightPlan(planRec.Waypoints, planRec.Altitudes, planRec.Speeds,
			planRec.AircraftCategory, planRec.DelayAllowance, planRec.PreferenceRank)
		if err != nil {
			a.log.Error("Rejected plan record",
				logger.String("callsign", rec.Callsign),
				logger.Int("plan_index", i),
				logger.Error(err))
			return nil, err
		}
		flight.AddFlightPlan(plan)

		a.log.Debug("Filed plan",
			logger.String("callsign", rec.Callsign),
			logger.Int("plan_index", i),
			logger.Int("waypoints", plan.Len()))
	}

	return flight, nil
}

// BuildSector turns one boundary record into a sector.
func (a *Assembler) BuildSector(rec *SectorRecord) (*Sector, error) {
	var centroid *Point
	if len(rec.Centroid) > 0 {
		if len(rec.Centroid) != 2 {
			return nil, newValidationError(CategoryDimension, "centroid", "expected a [lat, lon] pair, got %d values", len(rec.Centroid))
		}
		centroid = &Point{Lat: rec.Centroid[0], Lon: rec.Centroid[1]}
	}

	sector, err := NewSector(rec.Name, rec.Polygon, rec.Capacity, centroid, rec.LowerAltitude, rec.UpperAltitude)
	if err != nil {
		a.log.Error("Rejected sector record",
			logger.String("name", rec.Name),
			logger.Error(err))
		return nil, err
	}

	return sector, nil
}
