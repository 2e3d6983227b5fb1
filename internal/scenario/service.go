package scenario

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mohae/deepcopy"

	"github.com/yegors/airscen/pkg/geo"
	"github.com/yegors/airscen/pkg/logger"
)

// Event types broadcast to connected clients.
const (
	EventScenarioLoaded = "scenario_loaded"
	EventCapacityUpdate = "capacity_updated"
)

var (
	// ErrNoScenario is returned by operations that require a loaded scenario.
	ErrNoScenario = errors.New("no scenario loaded")
	// ErrNotFound wraps lookups for flights, sectors, and plans that do not
	// exist in the current scenario.
	ErrNotFound = errors.New("not found")
)

// Storage archives assembled scenarios. Implemented by storage/sqlite.
type Storage interface {
	SaveScenario(sc *Scenario, source string) (int64, error)
	ListScenarios() ([]*ScenarioSummary, error)
}

// EventSink receives scenario lifecycle events. Implemented by the
// websocket server.
type EventSink interface {
	BroadcastEvent(eventType string, data any)
}

// ScenarioSummary is one row of the scenario archive.
type ScenarioSummary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Source  string `json:"source"`
	Author  string `json:"author,omitempty"`
	Flights int    `json:"flights"`
	Sectors int    `json:"sectors"`
	SavedAt string `json:"saved_at"`
}

// Summary describes the currently loaded scenario.
type Summary struct {
	Name     string `json:"name"`
	Datetime string `json:"datetime,omitempty"`
	Author   string `json:"author,omitempty"`
	Flights  int    `json:"flights"`
	Plans    int    `json:"plans"`
	Sectors  int    `json:"sectors"`
}

// PlanLeg is one segment of a filed plan with computed courses.
type PlanLeg struct {
	From        Waypoint `json:"from"`
	To          Waypoint `json:"to"`
	DistanceNM  float64  `json:"distance_nm"`
	TrueCourse  float64  `json:"true_course"`
	MagCourse   float64  `json:"mag_course"`
	FlightLevel int      `json:"flight_level"`
	SpeedKts    float64  `json:"speed_kts"`
}

// Service holds the currently loaded scenario and is the single
// synchronization point for concurrent access. The model itself stays
// lock-free; every mutation and read goes through here.
type Service struct {
	mu        sync.RWMutex
	current   *Scenario
	doc       *Document
	assembler *Assembler
	store     Storage
	events    EventSink
	log       *logger.Logger
}

// NewService creates a scenario service. Storage and events may be nil, in
// which case archiving and broadcasting are skipped.
func NewService(assembler *Assembler, store Storage, events EventSink, log *logger.Logger) *Service {
	return &Service{
		assembler: assembler,
		store:     store,
		events:    events,
		log:       log.Named("scenario"),
	}
}

// LoadDocument assembles the document, archives the result, and swaps it in
// as the current scenario. On any assembly failure the previous scenario
// stays in place untouched.
func (s *Service) LoadDocument(doc *Document, source string) (*Scenario, error) {
	sc, err := s.assembler.Assemble(doc)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = sc
	s.doc = doc
	s.mu.Unlock()

	if s.store != nil {
		id, err := s.store.SaveScenario(sc, source)
		if err != nil {
			s.log.Error("Failed to archive scenario",
				logger.String("name", sc.Name()),
				logger.Error(err))
		} else {
			s.log.Info("Archived scenario",
				logger.String("name", sc.Name()),
				logger.Int64("archive_id", id))
		}
	}

	s.broadcast(EventScenarioLoaded, s.summarize(sc))
	return sc, nil
}

// AddSectors builds each boundary record and appends the sectors to the
// current scenario. The first invalid record aborts the batch; sectors
// already appended stay (the scenario is append-only).
func (s *Service) AddSectors(records []SectorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNoScenario
	}

	for i := range records {
		sector, err := s.assembler.BuildSector(&records[i])
		if err != nil {
			return err
		}
		s.current.AddSector(sector)
	}

	s.log.Info("Added sectors",
		logger.String("scenario", s.current.Name()),
		logger.Int("count", len(records)))
	return nil
}

// Current returns the loaded scenario, or nil.
func (s *Service) Current() *Scenario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Summary describes the loaded scenario.
func (s *Service) Summary() (*Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ErrNoScenario
	}
	return s.summarize(s.current), nil
}

// DocumentSnapshot returns a deep copy of the raw document the current
// scenario was assembled from, so callers can inspect or re-file it without
// touching the retained original.
func (s *Service) DocumentSnapshot() (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc == nil {
		return nil, ErrNoScenario
	}
	return deepcopy.Copy(s.doc).(*Document), nil
}

// Flight finds a flight by callsign in the current scenario.
func (s *Service) Flight(callsign string) (*Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ErrNoScenario
	}
	for _, f := range s.current.Flights() {
		if f.Callsign() == callsign {
			return f, nil
		}
	}
	return nil, fmt.Errorf("flight %q: %w", callsign, ErrNotFound)
}

// Sector finds a sector by name in the current scenario.
func (s *Service) Sector(name string) (*Sector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ErrNoScenario
	}
	return s.findSector(name)
}

// SetCapacity assigns one capacity slot of the named sector and broadcasts
// the change. Index validation stays in the model.
func (s *Service) SetCapacity(sectorName string, index, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNoScenario
	}
	sector, err := s.findSector(sectorName)
	if err != nil {
		return err
	}
	if err := sector.SetCapacity(index, value); err != nil {
		return err
	}

	s.log.Info("Updated sector capacity",
		logger.String("sector", sectorName),
		logger.Int("slot", index),
		logger.Int("value", value))

	s.broadcast(EventCapacityUpdate, map[string]any{
		"sector": sectorName,
		"slot":   index,
		"value":  value,
	})
	return nil
}

// LocateSector returns the smallest sector containing the position. With an
// altitude given, sectors whose vertical band excludes it are skipped.
func (s *Service) LocateSector(lat, lon float64, alt *float64) (*Sector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ErrNoScenario
	}

	var best *Sector
	for _, sector := range s.current.Sectors() {
		if alt != nil && !sector.ContainsAltitude(*alt) {
			continue
		}
		if !sector.Contains(lat, lon) {
			continue
		}
		if best == nil || sector.RoughArea() < best.RoughArea() {
			best = sector
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no sector at (%v, %v): %w", lat, lon, ErrNotFound)
	}
	return best, nil
}

// PlanLegs computes per-leg distance and true/magnetic course for one filed
// plan of a flight. Declination uses the WMM at the leg origin and the leg's
// flight level.
func (s *Service) PlanLegs(callsign string, planIndex int) ([]PlanLeg, error) {
	flight, err := s.Flight(callsign)
	if err != nil {
		return nil, err
	}

	plans := flight.FiledPlans()
	if planIndex < 0 || planIndex >= len(plans) {
		return nil, fmt.Errorf("flight %q plan %d: %w", callsign, planIndex, ErrNotFound)
	}
	plan := plans[planIndex]

	wps := plan.Waypoints()
	alts := plan.Altitudes()
	speeds := plan.Speeds()
	now := time.Now().UTC()

	legs := make([]PlanLeg, 0, len(wps)-1)
	for i := 0; i+1 < len(wps); i++ {
		from, to := wps[i], wps[i+1]
		tc := geo.InitialBearing(from.Lat, from.Lon, to.Lat, to.Lon)
		decl := geo.MagneticDeclination(from.Lat, from.Lon, float64(alts[i])*100, now)
		legs = append(legs, PlanLeg{
			From:        from,
			To:          to,
			DistanceNM:  geo.DistanceNM(from.Lat, from.Lon, to.Lat, to.Lon),
			TrueCourse:  tc,
			MagCourse:   geo.TrueToMagnetic(tc, decl),
			FlightLevel: alts[i],
			SpeedKts:    speeds[i],
		})
	}
	return legs, nil
}

// Archive lists previously saved scenarios, newest first.
func (s *Service) Archive() ([]*ScenarioSummary, error) {
	if s.store == nil {
		return nil, errors.New("no archive storage configured")
	}
	return s.store.ListScenarios()
}

func (s *Service) findSector(name string) (*Sector, error) {
	for _, sector := range s.current.Sectors() {
		if sector.Name() == name {
			return sector, nil
		}
	}
	return nil, fmt.Errorf("sector %q: %w", name, ErrNotFound)
}

func (s *Service) summarize(sc *Scenario) *Summary {
	plans := 0
	flights := sc.Flights()
	for _, f := range flights {
		plans += len(f.FiledPlans())
	}
	return &Summary{
		Name:     sc.Name(),
		Datetime: sc.Datetime(),
		Author:   sc.Author(),
		Flights:  len(flights),
		Plans:    plans,
		Sectors:  len(sc.Sectors()),
	}
}

func (s *Service) broadcast(eventType string, data any) {
	if s.events == nil {
		return
	}
	s.events.BroadcastEvent(eventType, data)
}
