// Package middleware holds the HTTP middleware chain: request IDs, panic
// recovery, request logging, metrics, and per-request language detection.
package middleware
