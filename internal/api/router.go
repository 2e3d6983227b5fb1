package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yegors/airscen/internal/briefing"
	"github.com/yegors/airscen/internal/config"
	"github.com/yegors/airscen/internal/scenario"
	"github.com/yegors/airscen/internal/websocket"
	"github.com/yegors/airscen/pkg/logger"
)

// Router wires the API handlers into a chi mux
type Router struct {
	handler *Handler
	config  *config.Config
	logger  *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(scenarioService *scenario.Service, briefingService *briefing.Service, cfg *config.Config, log *logger.Logger, wsServer *websocket.Server) *Router {
	return &Router{
		handler: NewHandler(scenarioService, briefingService, cfg, log, wsServer),
		config:  cfg,
		logger:  log.Named("api-router"),
	}
}

// Routes returns the HTTP handler for the whole API surface
func (rt *Router) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(rt.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(rt.cors)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", rt.handler.GetHealth)

		r.Get("/scenario", rt.handler.GetScenario)
		r.Get("/scenario/document", rt.handler.GetScenarioDocument)
		r.Post("/scenario/load", rt.handler.LoadScenario)

		r.Get("/flights", rt.handler.GetAllFlights)
		r.Get("/flights/{callsign}", rt.handler.GetFlight)
		r.Get("/flights/{callsign}/plans", rt.handler.GetFlightPlans)
		r.Get("/flights/{callsign}/plans/{index}/legs", rt.handler.GetPlanLegs)

		r.Get("/sectors", rt.handler.GetAllSectors)
		r.Get("/sectors/locate", rt.handler.LocateSector)
		r.Get("/sectors/{name}", rt.handler.GetSector)
		r.Get("/sectors/{name}/capacity", rt.handler.GetSectorCapacity)
		r.Put("/sectors/{name}/capacity/{index}", rt.handler.SetSectorCapacity)

		r.Get("/archive", rt.handler.GetArchive)
		r.Get("/briefing", rt.handler.GetBriefing)
	})

	r.Get("/ws", rt.handler.HandleWebSocket)

	if rt.config.Server.StaticFilesDir != "" {
		static := NewStaticFileHandler(rt.config.Server.StaticFilesDir, rt.logger)
		r.NotFound(static.ServeHTTP)
	}

	return r
}

// requestLogger logs each request with its status and duration
func (rt *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		rt.logger.Debug("Request",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", ww.Status()),
			logger.Duration("took", time.Since(start)))
	})
}

// cors applies the configured allowed origins
func (rt *Router) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && rt.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rt *Router) originAllowed(origin string) bool {
	for _, allowed := range rt.config.Server.CORSAllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
