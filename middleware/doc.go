// Package middleware provides the HTTP middleware wired by the default
// runner: CORS, per-IP rate limiting and gzip compression.
package middleware
