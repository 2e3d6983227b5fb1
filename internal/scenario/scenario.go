package scenario

import "fmt"

// DefaultName labels scenarios assembled from documents carrying no name.
const DefaultName = "Unnamed Scenario"

// Scenario aggregates the flights and sectors of one traffic situation.
// Both collections are append-only and keep insertion order.
type Scenario struct {
	name     string
	datetime string
	author   string
	flights  []*Flight
	sectors  []*Sector
}

// NewScenario creates an empty scenario with the given name.
func NewScenario(name string) *Scenario {
	return &Scenario{name: name}
}

func (sc *Scenario) Name() string {
	return sc.name
}

func (sc *Scenario) Datetime() string {
	return sc.datetime
}

func (sc *Scenario) Author() string {
	return sc.author
}

// SetDatetime records descriptive timestamp metadata, unvalidated.
func (sc *Scenario) SetDatetime(datetime string) {
	sc.datetime = datetime
}

// SetAuthor records authorship metadata, unvalidated.
func (sc *Scenario) SetAuthor(author string) {
	sc.author = author
}

// AddFlight appends a flight. Duplicates are permitted; nothing is removed
// for the lifetime of the scenario.
func (sc *Scenario) AddFlight(f *Flight) {
	sc.flights = append(sc.flights, f)
}

// AddSector appends a sector. Duplicates are permitted.
func (sc *Scenario) AddSector(s *Sector) {
	sc.sectors = append(sc.sectors, s)
}

// Flights returns a copy of the flight list in insertion order. The flights
// themselves are shared references, not deep copies.
func (sc *Scenario) Flights() []*Flight {
	return append([]*Flight(nil), sc.flights...)
}

// Sectors returns a copy of the sector list in insertion order. The sectors
// themselves are shared references.
func (sc *Scenario) Sectors() []*Sector {
	return append([]*Sector(nil), sc.sectors...)
}

func (sc *Scenario) String() string {
	return fmt.Sprintf("Scenario %q (%d flights, %d sectors)", sc.name, len(sc.flights), len(sc.sectors))
}
