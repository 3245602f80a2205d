package schema

import "errors"

var (
	// Document errors
	ErrInvalidSchema     = errors.New("invalid schema")
	ErrFailedToParseJSON = errors.New("failed to parse JSON schema")
	ErrFailedToParseYAML = errors.New("failed to parse YAML schema")
	ErrParsingCancelled  = errors.New("schema parsing cancelled")

	// Source errors
	ErrUnsupportedFile     = errors.New("unsupported schema file extension")
	ErrDuplicateSchema     = errors.New("duplicate schema name")
	ErrFailedToReadSource  = errors.New("failed to read schema source")
	ErrLoadingCancelled    = errors.New("loading schemas cancelled")
	ErrSchemaNotFound      = errors.New("schema not found")
	ErrBucketNotFound      = errors.New("schema bucket not found")
	ErrAccessDenied        = errors.New("access denied to schema bucket")
	ErrInvalidSourceConfig = errors.New("invalid schema source configuration")
	ErrFailedToLoadConfig  = errors.New("failed to load AWS config")
)
