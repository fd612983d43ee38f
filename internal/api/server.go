// Package api exposes the calculators, sweeps and scenario comparison over
// HTTP for UI clients.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/calc"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/compare"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/config"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/store"
)

// Options configures a Server. Zero values select defaults.
type Options struct {
	Engine             *calc.Engine
	Store              store.Store // nil disables /v1/scenarios and /v1/preferences
	Server             config.ServerConfig
	ExportFormat       string
	CompareConcurrency int
	Registry           *prometheus.Registry
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	engine      *calc.Engine
	funcs       map[string]calc.Func
	store       store.Store
	cfg         config.ServerConfig
	format      string
	concurrency int
	registry    *prometheus.Registry
	metrics     *Metrics
	validate    *validator.Validate
}

// New builds a Server from opts.
func New(opts Options) *Server {
	engine := opts.Engine
	if engine == nil {
		engine = calc.Default
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	format := opts.ExportFormat
	if format == "" {
		format = compare.FormatCSV
	}
	return &Server{
		engine:      engine,
		funcs:       engine.Funcs(),
		store:       opts.Store,
		cfg:         opts.Server,
		format:      format,
		concurrency: opts.CompareConcurrency,
		registry:    reg,
		metrics:     NewMetrics(reg),
		validate:    validator.New(),
	}
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(instrument(s.metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Use(rateLimit(s.limiter(), s.metrics))
		r.Use(middleware.Timeout(30 * time.Second))

		r.Get("/designs", s.handleListDesigns)
		r.Get("/designs/{key}", s.handleGetDesign)
		r.Post("/calculate/{key}", s.handleCalculate)
		r.Post("/sensitivity", s.handleSensitivity)
		r.Post("/compare", s.handleCompare)
		r.Post("/effect-size/convert", s.handleEffectConvert)
		r.Post("/effect-size/interpret", s.handleEffectInterpret)

		if s.store != nil {
			r.Get("/scenarios", s.handleListScenarios)
			r.Post("/scenarios", s.handleCreateScenario)
			r.Get("/scenarios/{id}", s.handleGetScenario)
			r.Put("/scenarios/{id}", s.handlePutScenario)
			r.Delete("/scenarios/{id}", s.handleDeleteScenario)
			r.Get("/scenarios/{id}/result", s.handleScenarioResult)
			r.Get("/preferences/{key}", s.handleGetPreference)
			r.Put("/preferences/{key}", s.handlePutPreference)
		}
	})
	return r
}

func (s *Server) corsOrigins() []string {
	if len(s.cfg.CORSOrigins) == 0 {
		return []string{"*"}
	}
	return s.cfg.CORSOrigins
}

func (s *Server) limiter() *rate.Limiter {
	if s.cfg.RateLimitRPS <= 0 {
		return nil
	}
	burst := s.cfg.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(s.cfg.RateLimitRPS), burst)
}
