package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/reqguard/pkg/api"
	"github.com/dmitrymomot/reqguard/pkg/binder"
	"github.com/dmitrymomot/reqguard/pkg/engine"
	"github.com/dmitrymomot/reqguard/pkg/logger"
	"github.com/dmitrymomot/reqguard/pkg/schema"
)

// Option configures Middleware.
type Option func(*config)

type config struct {
	logger      *slog.Logger
	engineOpts  []engine.Option
	maxBodySize int64
	forward     func(engine.Result) map[string]any
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithEngineOptions sets the validation options.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(c *config) { c.engineOpts = append(c.engineOpts, opts...) }
}

// WithMaxBodySize limits request bodies. Values below 1 keep binder.DefaultMaxJSONSize.
func WithMaxBodySize(n int64) Option {
	return func(c *config) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// WithStripUnknown forwards the input restricted to declared keys instead of
// the validated record. Invalid bodies are still rejected.
func WithStripUnknown() Option {
	return func(c *config) {
		c.engineOpts = append(c.engineOpts, engine.WithStripUnknown())
		c.forward = func(res engine.Result) map[string]any { return res.Stripped }
	}
}

type resultKey struct{}

// ResultFromContext returns the validation result stored by Middleware.
func ResultFromContext(ctx context.Context) (engine.Result, bool) {
	res, ok := ctx.Value(resultKey{}).(engine.Result)
	return res, ok
}

// Middleware validates JSON request bodies against the schema registered as
// name. Invalid bodies are answered with 422 and the result JSON; valid ones
// reach next with the body replaced by the validated record. It panics when
// the schema is not registered.
func Middleware(reg *schema.Registry, name string, opts ...Option) func(http.Handler) http.Handler {
	s := reg.MustGet(name)

	cfg := &config{
		logger:      logger.Nop(),
		maxBodySize: binder.DefaultMaxJSONSize,
		forward:     func(res engine.Result) map[string]any { return res.Record },
	}
	for _, opt := range opts {
		opt(cfg)
	}
	v := engine.New(cfg.engineOpts...)
	log := cfg.logger.With(logger.Component("gateway"), logger.Schema(name))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			record, err := binder.Record(r, binder.WithMaxSize(cfg.maxBodySize))
			if err != nil {
				log.DebugContext(r.Context(), "rejected request body", logger.Error(err))
				api.WriteError(w, api.BodyError(err))
				return
			}

			res := v.Validate(record, s)
			if !res.Valid() {
				log.WarnContext(r.Context(), "validation failed",
					logger.ErrorCount(len(res.Errors)),
					logger.Fields(res.Errors.Fields()),
					logger.Error(res.Err()),
				)
				api.WriteJSON(w, http.StatusUnprocessableEntity, res)
				return
			}

			body, err := json.Marshal(cfg.forward(res))
			if err != nil {
				log.ErrorContext(r.Context(), "failed to encode validated record", logger.Error(err))
				api.WriteError(w, err)
				return
			}

			r = r.WithContext(context.WithValue(r.Context(), resultKey{}, res))
			r.Body = io.NopCloser(bytes.NewReader(body))
			r.ContentLength = int64(len(body))
			r.Header.Set("Content-Length", strconv.Itoa(len(body)))
			r.Header.Set("Content-Type", "application/json")
			next.ServeHTTP(w, r)
		})
	}
}
