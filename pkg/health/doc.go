// Package health provides liveness and readiness HTTP handlers.
//
// LivenessHandler always answers OK while the process runs. ReadinessHandler
// executes a set of named checks in parallel and answers 503 when any fails.
// Responses are plain text by default; JSON on Accept: application/json or
// ?format=json.
package health
