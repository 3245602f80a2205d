// Package logger builds *slog.Logger instances for reqguard binaries.
//
// New takes functional options selecting the format (text or JSON), the
// minimum level and static attributes. WithEnvironment picks defaults for
// development, staging and production. Context extractors registered with
// WithContextExtractors run on every record, which is how request ids end up
// in handler logs:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.App.Env, cfg.App.Name),
//	    logger.WithLevelName(cfg.Log.Level),
//	    logger.WithContextExtractors(api.RequestIDExtractor()),
//	)
//	log.WarnContext(ctx, "validation failed",
//	    logger.Schema("signup"),
//	    logger.ErrorCount(len(res.Errors)),
//	)
//
// The attribute helpers (Error, RequestID, Schema, ErrorCount, ...) keep key
// names consistent across packages. Helpers given a zero value return an
// empty Attr, so they can be passed unconditionally.
package logger
