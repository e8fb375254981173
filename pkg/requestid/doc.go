// Package requestid attaches a correlation id to every HTTP request.
//
// Middleware accepts a client supplied X-Request-ID made of letters, digits,
// '-' and '_' (at most 128 bytes) and otherwise generates a UUID. The id is
// stored in the request context and written back in the response header.
// LoggerExtractor plugs it into pkg/logger so every request log line carries
// request_id.
package requestid
