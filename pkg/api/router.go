package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/reqguard/pkg/binder"
	"github.com/dmitrymomot/reqguard/pkg/engine"
	"github.com/dmitrymomot/reqguard/pkg/httpserver"
	"github.com/dmitrymomot/reqguard/pkg/logger"
	"github.com/dmitrymomot/reqguard/pkg/schema"
)

// Option configures the router.
type Option func(*config)

type config struct {
	logger      *slog.Logger
	engineOpts  []engine.Option
	maxBodySize int64
	checks      []httpserver.Check
}

// WithLogger sets the logger for request and validation logs.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithEngineOptions sets the validation options applied to every request.
// Query parameters can additionally enable strip mode and nested paths.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(c *config) { c.engineOpts = append(c.engineOpts, opts...) }
}

// WithMaxBodySize limits validation request bodies. Values below 1 keep
// binder.DefaultMaxJSONSize.
func WithMaxBodySize(n int64) Option {
	return func(c *config) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// WithReadinessChecks adds checks run by GET /health/ready.
func WithReadinessChecks(checks ...httpserver.Check) Option {
	return func(c *config) { c.checks = append(c.checks, checks...) }
}

// NewRouter builds the HTTP API serving the schemas of reg.
//
//	POST /v1/validate/{schema}   validate a JSON body
//	GET  /v1/schemas             list schema names
//	GET  /v1/schemas/{schema}    show one schema
//	GET  /health/live            liveness probe
//	GET  /health/ready           readiness probe
func NewRouter(reg *schema.Registry, opts ...Option) chi.Router {
	cfg := &config{logger: logger.Nop(), maxBodySize: binder.DefaultMaxJSONSize}
	for _, opt := range opts {
		opt(cfg)
	}
	h := &handlers{reg: reg, cfg: cfg}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(requestLogger(cfg.logger))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, HTTPError{Status: http.StatusNotFound, Code: "not_found", Err: ErrRouteNotFound})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, HTTPError{Status: http.StatusMethodNotAllowed, Code: "method_not_allowed", Err: ErrMethodNotAllowed})
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", httpserver.Liveness())
		r.Get("/ready", httpserver.Readiness(cfg.logger, cfg.checks...))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/validate/{schema}", h.validate)
		r.Get("/schemas", h.listSchemas)
		r.Get("/schemas/{schema}", h.getSchema)
	})

	return r
}

// requestLogger logs one record per request once the response is written.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.Log(r.Context(), level, "request",
				logger.HTTP(r.Method, r.URL.Path, status),
				logger.ClientIP(ClientIP(r)),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
