package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yegors/airscen/internal/briefing"
	"github.com/yegors/airscen/internal/config"
	"github.com/yegors/airscen/internal/scenario"
	"github.com/yegors/airscen/internal/websocket"
	"github.com/yegors/airscen/pkg/logger"
)

// Handler contains the API handlers
type Handler struct {
	scenarioService *scenario.Service
	briefingService *briefing.Service
	config          *config.Config
	logger          *logger.Logger
	wsServer        *websocket.Server
}

// NewHandler creates a new API handler. briefingService may be nil when the
// feature is disabled.
func NewHandler(scenarioService *scenario.Service, briefingService *briefing.Service, cfg *config.Config, log *logger.Logger, wsServer *websocket.Server) *Handler {
	return &Handler{
		scenarioService: scenarioService,
		briefingService: briefingService,
		config:          cfg,
		logger:          log.Named("api-handler"),
		wsServer:        wsServer,
	}
}

// flightResponse is the wire shape of a flight.
type flightResponse struct {
	Callsign          string         `json:"callsign"`
	Airline           string         `json:"airline"`
	Aircraft          string         `json:"aircraft"`
	WakeTurbulenceCat string         `json:"wake_turbulence_cat"`
	CostIndex         float64        `json:"cost_index"`
	FiledPlans        []planResponse `json:"filed_plans"`
}

// planResponse is the wire shape of a filed plan.
type planResponse struct {
	Waypoints        []scenario.Waypoint `json:"waypoints"`
	Altitudes        []int               `json:"altitudes"`
	Speeds           []float64           `json:"speeds"`
	AircraftCategory string              `json:"aircraft_category"`
	DelayAllowance   float64             `json:"delay_allowance"`
	PreferenceRank   int                 `json:"preference_rank"`
}

// sectorResponse is the wire shape of a sector.
type sectorResponse struct {
	Name          string           `json:"name"`
	Polygon       []scenario.Point `json:"polygon"`
	Centroid      *scenario.Point  `json:"centroid,omitempty"`
	LowerAltitude *float64         `json:"lower_altitude,omitempty"`
	UpperAltitude *float64         `json:"upper_altitude,omitempty"`
}

func toFlightResponse(f *scenario.Flight) *flightResponse {
	resp := &flightResponse{
		Callsign:          f.Callsign(),
		Airline:           f.Airline(),
		Aircraft:          f.Aircraft(),
		WakeTurbulenceCat: f.WakeCategory().String(),
		CostIndex:         f.CostIndex(),
		FiledPlans:        make([]planResponse, 0),
	}
	for _, p := range f.FiledPlans() {
		resp.FiledPlans = append(resp.FiledPlans, planResponse{
			Waypoints:        p.Waypoints(),
			Altitudes:        p.Altitudes(),
			Speeds:           p.Speeds(),
			AircraftCategory: p.AircraftCategory(),
			DelayAllowance:   p.DelayAllowance(),
			PreferenceRank:   p.PreferenceRank(),
		})
	}
	return resp
}

func toSectorResponse(s *scenario.Sector) *sectorResponse {
	resp := &sectorResponse{
		Name:    s.Name(),
		Polygon: s.Polygon(),
	}
	if c, ok := s.Centroid(); ok {
		resp.Centroid = &c
	}
	if v, ok := s.LowerAltitude(); ok {
		resp.LowerAltitude = &v
	}
	if v, ok := s.UpperAltitude(); ok {
		resp.UpperAltitude = &v
	}
	return resp
}

// writeError maps domain errors onto HTTP status codes.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verr *scenario.ValidationError
	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, scenario.ErrNotFound), errors.Is(err, scenario.ErrNoScenario):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		h.logger.Error("Request failed", logger.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// GetScenario returns a summary of the loaded scenario
func (h *Handler) GetScenario(w http.ResponseWriter, r *http.Request) {
	summary, err := h.scenarioService.Summary()
	if err != nil {
		h.writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// GetScenarioDocument returns a snapshot of the raw document the scenario
// was assembled from
func (h *Handler) GetScenarioDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.scenarioService.DocumentSnapshot()
	if err != nil {
		h.writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, doc)
}

// LoadScenario assembles the document in the request body and makes it the
// current scenario
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var doc scenario.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	sc, err := h.scenarioService.LoadDocument(&doc, "api")
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.logger.Info("Loaded scenario via API", logger.String("name", sc.Name()))
	summary, err := h.scenarioService.Summary()
	if err != nil {
		h.writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, summary)
}

// GetAllFlights returns all flights of the loaded scenario
func (h *Handler) GetAllFlights(w http.ResponseWriter, r *http.Request) {
	sc := h.scenarioService.Current()
	if sc == nil {
		h.writeError(w, scenario.ErrNoScenario)
		return
	}

	flights := sc.Flights()
	response := make([]*flightResponse, 0, len(flights))
	for _, f := range flights {
		response = append(response, toFlightResponse(f))
	}
	WriteJSON(w, http.StatusOK, response)
}

// GetFlight returns one flight by callsign
func (h *Handler) GetFlight(w http.ResponseWriter, r *http.Request) {
	callsign := chi.URLParam(r, "callsign")

	flight, err := h.scenarioService.Flight(callsign)
	if err != nil {
		h.writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toFlightResponse(flight))
}

// GetFlightPlans returns the filed plans of one flight in filing order
func (h *Handler) GetFlightPlans(w http.ResponseWriter, r *http.Request) {
	callsign := chi.URLParam(r, "callsign")

	flight, err := h.scenarioService.Flight(callsign)
	if err != nil {
		h.writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toFlightResponse(flight).FiledPlans)
}

// GetPlanLegs returns computed legs for one filed plan
func (h *Handler) GetPlanLegs(w http.ResponseWriter, r *http.Request) {
	callsign := chi.URLParam(r, "callsign")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "Invalid plan index", http.StatusBadRequest)
		return
	}

	legs, err := h.scenarioService.PlanLegs(callsign, index)
	if err != nil {
		h.writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, legs)
}

// GetAllSectors returns all sectors of the loaded scenario
func (h *Handler) GetAllSectors(w http.ResponseWriter, r *http.Request) {
	sc := h.scenarioService.Current()
	if sc == nil {
		h.writeError(w, scenario.ErrNoScenario)
		return
	}

	sectors := sc.Sectors()
	response := make([]*sectorResponse, 0, len(sectors))
	for _, s := range sectors {
		response = append(response, toSectorResponse(s))
	}
	WriteJSON(w, http.StatusOK, response)
}

// GetSector returns one sector by name
func (h *Handler) GetSector(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	sector, err := h.scenarioService.Sector(name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toSectorResponse(sector))
}

// GetSectorCapacity returns the full 96-slot capacity profile of a sector
func (h *Handler) GetSectorCapacity(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	sector, err := h.scenarioService.Sector(name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"sector":   sector.Name(),
		"capacity": sector.Capacity(),
	})
}

// SetSectorCapacity assigns one capacity slot of a sector
func (h *Handler) SetSectorCapacity(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "Invalid slot index", http.StatusBadRequest)
		return
	}

	var body struct {
		Value int `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.scenarioService.SetCapacity(name, index, body.Value); err != nil {
		h.writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"sector": name,
		"slot":   index,
		"value":  body.Value,
	})
}

// LocateSector returns the smallest sector containing the query position
func (h *Handler) LocateSector(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		http.Error(w, "Missing or invalid lat parameter", http.StatusBadRequest)
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		http.Error(w, "Missing or invalid lon parameter", http.StatusBadRequest)
		return
	}

	var alt *float64
	if raw := r.URL.Query().Get("alt"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, "Invalid alt parameter", http.StatusBadRequest)
			return
		}
		alt = &v
	}

	sector, err := h.scenarioService.LocateSector(lat, lon, alt)
	if err != nil {
		h.writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toSectorResponse(sector))
}

// GetArchive lists previously saved scenarios, newest first
func (h *Handler) GetArchive(w http.ResponseWriter, r *http.Request) {
	list, err := h.scenarioService.Archive()
	if err != nil {
		h.writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

// GetBriefing returns the AI-generated scenario briefing
func (h *Handler) GetBriefing(w http.ResponseWriter, r *http.Request) {
	if h.briefingService == nil {
		http.Error(w, "Briefing is not enabled", http.StatusServiceUnavailable)
		return
	}

	sc := h.scenarioService.Current()
	if sc == nil {
		h.writeError(w, scenario.ErrNoScenario)
		return
	}

	text, err := h.briefingService.Briefing(r.Context(), sc)
	if err != nil {
		h.logger.Error("Failed to generate briefing", logger.Error(err))
		http.Error(w, "Failed to generate briefing", http.StatusBadGateway)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"scenario": sc.Name(),
		"briefing": text,
	})
}

// GetHealth returns the server health status
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}
	if summary, err := h.scenarioService.Summary(); err == nil {
		response["scenario"] = summary.Name
	}
	WriteJSON(w, http.StatusOK, response)
}

// HandleWebSocket upgrades the connection and attaches it to the event hub
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	h.wsServer.HandleConnection(w, r)
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
