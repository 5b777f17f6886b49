// Package analyzer turns collected snapshot categories into LLM-backed
// analysis results.
//
// Each category maps to an Analyzer via a registry with a generic
// fallback, so every collected category can be analyzed. Most analyzers
// make a single completion call over computed metrics plus a truncated
// data excerpt. Large categories (installed programs, network) are
// chunked: items are partitioned into fixed named buckets, each bucket
// is analyzed with its own call, findings are concatenated in bucket
// order, and a final call synthesizes the per-bucket summaries. A failed
// bucket or category is logged and skipped, never aborting the run.
//
// The Runner orchestrates a full snapshot: categories are processed
// sequentially, results and prompt/response audit records are persisted
// through the store as they happen, and the run ends with one combined
// summary.
package analyzer
