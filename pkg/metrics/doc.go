// Package metrics exports Prometheus metrics for subscription transitions and
// the HTTP API.
package metrics
