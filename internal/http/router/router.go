// Package router assembles the HTTP handler tree: the route table plus
// the logging, metrics, and CORS middleware.
package router

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aanand-mishra/campus-api/internal/config"
	"github.com/aanand-mishra/campus-api/internal/http/handlers/address"
	"github.com/aanand-mishra/campus-api/internal/http/handlers/assignment"
	"github.com/aanand-mishra/campus-api/internal/http/handlers/course"
	"github.com/aanand-mishra/campus-api/internal/http/handlers/health"
	"github.com/aanand-mishra/campus-api/internal/http/handlers/person"
	"github.com/aanand-mishra/campus-api/internal/http/handlers/root"
	"github.com/aanand-mishra/campus-api/internal/http/middleware"
	"github.com/aanand-mishra/campus-api/internal/storage"
)

// Options carries the optional collaborators of New.
type Options struct {
	// Registry receives the HTTP metrics. New creates one (with Go runtime
	// and process collectors) when nil.
	Registry *prometheus.Registry

	// Health overrides the clock and IP lookup of the health endpoints.
	Health health.Checker

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// ─────────────────────────────────────────────────────────────────────────────
// New builds the application handler.
//
// Route table:
//
//	GET    /                       welcome message
//	GET    /health                 health check
//	GET    /health/{path_echo}     health check echoing a path segment
//	POST   /{collection}           create
//	GET    /{collection}           list (query-string filters)
//	GET    /{collection}/{id}      read
//	PATCH  /{collection}/{id}      partial update
//	DELETE /{collection}/{id}      delete
//	GET    <cfg.Metrics.Path>      Prometheus metrics, unless disabled
//
// for collection in addresses, persons, courses, assignments.
// ─────────────────────────────────────────────────────────────────────────────
func New(cfg *config.Config, store storage.Storage, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	mux := http.NewServeMux()

	// {$} anchors the pattern so "/" does not act as a catch-all.
	mux.HandleFunc("GET /{$}", root.New())
	mux.HandleFunc("GET /health", opts.Health.New())
	mux.HandleFunc("GET /health/{path_echo}", opts.Health.New())

	mux.HandleFunc("POST /addresses", address.New(store))
	mux.HandleFunc("GET /addresses", address.GetList(store))
	mux.HandleFunc("GET /addresses/{id}", address.GetByID(store))
	mux.HandleFunc("PATCH /addresses/{id}", address.Update(store))
	mux.HandleFunc("DELETE /addresses/{id}", address.Delete(store))

	mux.HandleFunc("POST /persons", person.New(store))
	mux.HandleFunc("GET /persons", person.GetList(store))
	mux.HandleFunc("GET /persons/{id}", person.GetByID(store))
	mux.HandleFunc("PATCH /persons/{id}", person.Update(store))
	mux.HandleFunc("DELETE /persons/{id}", person.Delete(store))

	mux.HandleFunc("POST /courses", course.New(store))
	mux.HandleFunc("GET /courses", course.GetList(store))
	mux.HandleFunc("GET /courses/{id}", course.GetByID(store))
	mux.HandleFunc("PATCH /courses/{id}", course.Update(store))
	mux.HandleFunc("DELETE /courses/{id}", course.Delete(store))

	mux.HandleFunc("POST /assignments", assignment.New(store))
	mux.HandleFunc("GET /assignments", assignment.GetList(store))
	mux.HandleFunc("GET /assignments/{id}", assignment.GetByID(store))
	mux.HandleFunc("PATCH /assignments/{id}", assignment.Update(store))
	mux.HandleFunc("DELETE /assignments/{id}", assignment.Delete(store))

	mws := []middleware.Middleware{
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Logger(log),
	}

	if !cfg.Metrics.Disabled {
		reg := opts.Registry
		if reg == nil {
			reg = prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}
		metrics := middleware.NewMetrics(reg)
		mux.Handle("GET "+cfg.Metrics.Path, metrics.Handler())
		mws = append(mws, metrics.Middleware)
	}

	return middleware.Chain(mux, mws...)
}
