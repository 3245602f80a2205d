package schema

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dmitrymomot/reqguard/pkg/logger"
)

// Registry serves named schemas. It is read-only after construction and safe
// for concurrent use.
type Registry struct {
	schemas map[string]*Schema
	names   []string
}

// NewRegistry creates a registry holding copies of the given schemas.
func NewRegistry(schemas map[string]*Schema) *Registry {
	r := &Registry{
		schemas: make(map[string]*Schema, len(schemas)),
		names:   make([]string, 0, len(schemas)),
	}
	for name, s := range schemas {
		if s == nil {
			continue
		}
		r.schemas[name] = s.Clone()
		r.names = append(r.names, name)
	}
	slices.Sort(r.names)
	return r
}

// RegistryOption configures LoadRegistry.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to report load results.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(c *registryConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// LoadRegistry loads all schemas from src. Schemas declaring unsupported field
// types are kept (those fields fail at validation time) and logged as warnings.
func LoadRegistry(ctx context.Context, src Source, opts ...RegistryOption) (*Registry, error) {
	cfg := &registryConfig{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(cfg)
	}

	schemas, err := src.Load(ctx)
	if err != nil {
		cfg.logger.ErrorContext(ctx, "failed to load schemas", logger.Error(err))
		return nil, err
	}

	r := NewRegistry(schemas)
	for _, name := range r.names {
		if paths := r.schemas[name].Unsupported(); len(paths) > 0 {
			cfg.logger.WarnContext(ctx, "schema declares unsupported field types",
				logger.Schema(name),
				slog.String("fields", strings.Join(paths, ", ")),
			)
		}
		if paths := r.schemas[name].UnknownDateFormats(); len(paths) > 0 {
			cfg.logger.WarnContext(ctx, "schema declares unknown date formats",
				logger.Schema(name),
				slog.String("fields", strings.Join(paths, ", ")),
			)
		}
	}
	cfg.logger.InfoContext(ctx, "schemas loaded", slog.Int("count", r.Len()))
	return r, nil
}

// Get returns the schema registered under name.
func (r *Registry) Get(name string) (*Schema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// MustGet returns the schema registered under name or panics.
func (r *Registry) MustGet(name string) *Schema {
	s, ok := r.Get(name)
	if !ok {
		panic(fmt.Sprintf("%v: %s", ErrSchemaNotFound, name))
	}
	return s
}

// Names returns registered schema names in sorted order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

func (r *Registry) Len() int {
	return len(r.schemas)
}
