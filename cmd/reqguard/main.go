// Command reqguard serves schema validation over HTTP.
//
// Configuration is read from the environment (see package config). Schemas
// are loaded once at startup from SCHEMA_DIR or an S3 bucket.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/reqguard/pkg/api"
	"github.com/dmitrymomot/reqguard/pkg/config"
	"github.com/dmitrymomot/reqguard/pkg/httpserver"
	"github.com/dmitrymomot/reqguard/pkg/logger"
	"github.com/dmitrymomot/reqguard/pkg/schema"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		slog.Error("reqguard stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.App.Env, cfg.App.Name),
		logger.WithLevelName(cfg.Log.Level),
		logger.WithContextExtractors(api.RequestIDExtractor()),
	)
	slog.SetDefault(log)

	srv, reg, err := setup(ctx, cfg, log)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "starting reqguard",
		slog.String("schema_source", cfg.Schema.Source),
		slog.Int("schemas", reg.Len()),
	)
	return srv.Run(ctx, api.NewRouter(reg, routerOptions(cfg, log, reg)...))
}

// setup loads the schema registry and prepares the HTTP server.
func setup(ctx context.Context, cfg config.Config, log *slog.Logger) (*httpserver.Server, *schema.Registry, error) {
	src, err := cfg.Schema.NewSource(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("schema source: %w", err)
	}
	reg, err := schema.LoadRegistry(ctx, src, schema.WithLogger(log.With(logger.Component("schema"))))
	if err != nil {
		return nil, nil, fmt.Errorf("load schemas: %w", err)
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log.With(logger.Component("http"))))
	return srv, reg, nil
}

func routerOptions(cfg config.Config, log *slog.Logger, reg *schema.Registry) []api.Option {
	return []api.Option{
		api.WithLogger(log.With(logger.Component("api"))),
		api.WithEngineOptions(cfg.Validate.EngineOptions()...),
		api.WithMaxBodySize(cfg.HTTP.MaxBodyBytes),
		api.WithReadinessChecks(func(context.Context) error {
			if reg.Len() == 0 {
				return errors.New("no schemas loaded")
			}
			return nil
		}),
	}
}
