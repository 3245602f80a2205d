package config

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/reqguard/pkg/engine"
	"github.com/dmitrymomot/reqguard/pkg/httpserver"
	"github.com/dmitrymomot/reqguard/pkg/logger"
	"github.com/dmitrymomot/reqguard/pkg/schema"
)

// Schema source kinds.
const (
	SourceLocal = "local"
	SourceS3    = "s3"
)

// Config is the reqguard service configuration.
type Config struct {
	App      AppConfig
	Log      LogConfig
	Schema   SchemaConfig
	Validate ValidateConfig
	HTTP     httpserver.Config
}

type AppConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"reqguard"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// SchemaConfig selects where schema documents are loaded from.
type SchemaConfig struct {
	Source string `env:"SCHEMA_SOURCE" envDefault:"local"`
	Dir    string `env:"SCHEMA_DIR" envDefault:"./schemas"`
	S3     schema.S3Config
}

// ValidateConfig holds the default validation options of the service.
// Requests may still enable strip mode or nested paths per call.
type ValidateConfig struct {
	StripUnknown bool `env:"VALIDATE_STRIP_UNKNOWN" envDefault:"false"`
	NestedPaths  bool `env:"VALIDATE_NESTED_PATHS" envDefault:"false"`
	MaxDepth     int  `env:"VALIDATE_MAX_DEPTH" envDefault:"32"`
}

// validate reports inconsistent settings.
func (c Config) validate() error {
	if _, ok := logger.ParseLevel(c.Log.Level); !ok {
		return fmt.Errorf("%w: unknown LOG_LEVEL %q", ErrInvalidConfig, c.Log.Level)
	}
	switch c.Schema.Source {
	case SourceLocal:
		if c.Schema.Dir == "" {
			return fmt.Errorf("%w: SCHEMA_DIR is required for the local source", ErrInvalidConfig)
		}
	case SourceS3:
		if c.Schema.S3.Bucket == "" {
			return fmt.Errorf("%w: SCHEMA_S3_BUCKET is required for the s3 source", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown SCHEMA_SOURCE %q", ErrInvalidConfig, c.Schema.Source)
	}
	if c.Validate.MaxDepth < 1 {
		return fmt.Errorf("%w: VALIDATE_MAX_DEPTH must be positive", ErrInvalidConfig)
	}
	if c.HTTP.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: HTTP_MAX_BODY_BYTES must not be negative", ErrInvalidConfig)
	}
	return nil
}

// NewSource builds the configured schema source.
func (c SchemaConfig) NewSource(ctx context.Context, opts ...schema.S3Option) (schema.Source, error) {
	if c.Source == SourceS3 {
		return schema.NewS3Source(ctx, c.S3, opts...)
	}
	return schema.NewLocalSource(c.Dir), nil
}

// EngineOptions converts the settings into engine options.
func (c ValidateConfig) EngineOptions() []engine.Option {
	opts := []engine.Option{engine.WithMaxDepth(c.MaxDepth)}
	if c.StripUnknown {
		opts = append(opts, engine.WithStripUnknown())
	}
	if c.NestedPaths {
		opts = append(opts, engine.WithNestedPaths())
	}
	return opts
}
