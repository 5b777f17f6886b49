// Package server implements the REST API for snapshot management,
// background analysis, comparison, model discovery, and settings.
//
// Endpoints live under /v1 and share a middleware chain of metrics,
// request IDs, panic recovery, rate limiting, and request logging; CORS
// wraps the whole mux. System endpoints (/health, /ready, /metrics)
// bypass rate limiting.
//
// Analysis is asynchronous: POST /v1/snapshots/{id}/analysis returns
// 202 with a job that can be polled under /v1/jobs, and jobs can be
// globally paused and resumed.
package server
