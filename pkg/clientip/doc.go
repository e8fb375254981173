// Package clientip resolves the caller's IP address behind reverse proxies
// and carries it in the request context for logging and rate limiting.
package clientip
