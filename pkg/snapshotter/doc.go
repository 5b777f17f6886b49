// Package snapshotter orchestrates machine configuration capture: it
// fans category collectors out across a bounded worker group, downgrades
// per-category failures to unavailable documents, and persists the
// resulting snapshot with its metadata.
package snapshotter
