// Package llm wraps a locally hosted OpenAI-compatible inference server.
//
// It provides three things: a Completer client for single prompt/response
// exchanges, a TTL-cached model listing, and ExtractObject, a tolerant
// JSON-from-free-text parser for model output. The client applies no retry
// or backoff; callers treat a failed call as "this section contributes
// nothing" and move on.
package llm
