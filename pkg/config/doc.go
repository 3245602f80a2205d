// Package config loads reqguard settings from environment variables.
//
// Values come from the process environment, optionally seeded from .env files
// with github.com/joho/godotenv, and are parsed into tagged structs with
// github.com/caarlos0/env/v11:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	src, err := cfg.Schema.NewSource(ctx)
//
// Recognised variables:
//
//	APP_ENV, APP_NAME                  service identity, logger defaults
//	LOG_LEVEL                          debug | info | warn | error
//	SCHEMA_SOURCE                      local | s3
//	SCHEMA_DIR                         directory for the local source
//	SCHEMA_S3_BUCKET, SCHEMA_S3_PREFIX, SCHEMA_S3_REGION,
//	SCHEMA_S3_ACCESS_KEY_ID, SCHEMA_S3_SECRET_KEY,
//	SCHEMA_S3_ENDPOINT, SCHEMA_S3_FORCE_PATH_STYLE
//	VALIDATE_STRIP_UNKNOWN, VALIDATE_NESTED_PATHS, VALIDATE_MAX_DEPTH
//	HTTP_ADDR, HTTP_*_TIMEOUT, HTTP_MAX_BODY_BYTES
//
// Parse is the generic building block for other tagged structs.
package config
