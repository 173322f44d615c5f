package http

import (
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"scholarship-workers/internal/catalog"
	"scholarship-workers/internal/common/config"
	"scholarship-workers/internal/common/database"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/common/observability"
	"scholarship-workers/internal/compare"
	"scholarship-workers/internal/finder"
	"scholarship-workers/internal/lead"
)

const defaultRequestTimeout = 30 * time.Second

// Deps are the services behind the public API. Compare and Leads may be nil,
// in which case their routes are not mounted.
type Deps struct {
	Catalog *catalog.Store
	Search  catalog.Searcher
	Engine  *finder.Engine
	Compare *compare.Service
	Leads   *lead.Service

	Health  map[string]database.Pinger
	Metrics nethttp.Handler
	Obs     *observability.Observability
	Logger  logger.Logger

	HTTP   config.HTTPConfig
	Finder config.FinderConfig
}

func NewRouter(d Deps) chi.Router {
	if d.Logger == nil {
		d.Logger = logger.NewNoOpLogger()
	}
	if d.Search == nil && d.Catalog != nil {
		d.Search = &catalog.LocalSearch{Store: d.Catalog}
	}
	timeout := defaultRequestTimeout
	if d.HTTP.RequestTimeout > 0 {
		timeout = config.GetDuration(d.HTTP.RequestTimeout)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(requestLog(d.Logger, d.Obs))
	r.Use(middleware.Timeout(timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(d.HTTP.AllowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler)
	r.Get("/ready", readyHandler(d.Health))
	if d.Metrics != nil {
		r.Method(nethttp.MethodGet, "/metrics", d.Metrics)
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/scholarships", listScholarshipsHandler(d.Catalog, d.Search))
		api.Get("/scholarships/{slug}", getScholarshipHandler(d.Catalog))

		limits := finder.BonusLimits{TN: d.Finder.MaxBonusTN, DGNL: d.Finder.MaxBonusDGNL}
		api.Get("/finder", findHandler(d.Engine, d.Finder.ShareBaseURL))
		api.Post("/finder/what-if", whatIfHandler(d.Engine, limits))

		if d.Compare != nil {
			api.Route("/compare/{session}", func(c chi.Router) {
				c.Get("/", listCompareHandler(d.Compare))
				c.Delete("/", clearCompareHandler(d.Compare))
				c.Post("/items", addCompareHandler(d.Compare))
				c.Delete("/items/{slug}", removeCompareHandler(d.Compare))
			})
		}
		if d.Leads != nil {
			api.Post("/leads", captureLeadHandler(d.Leads))
		}
	})

	return r
}

func allowedOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
