// Package api exposes schema validation over HTTP.
//
// NewRouter returns a chi router serving the schemas of a schema.Registry.
// Validation responses carry the engine result as is:
//
//	POST /v1/validate/signup?strip=true
//	200 {"errors":null,"validatedRecord":{...},"strippedRecord":{...}}
//	422 {"errors":["Field name is required."],"validatedRecord":{}}
//
// Every other response uses the Envelope shape ({"data", "meta", "error"}).
// Malformed bodies answer 400, oversized ones 413 and non-JSON content types
// 415. All responses carry an X-Request-ID header; the id is also attached to
// logs through RequestIDExtractor. Request logs include the address returned
// by ClientIP.
package api
