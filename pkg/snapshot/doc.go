// Package snapshot defines the core data model for winspect captures.
//
// A Snapshot is a named, timestamped set of category Documents. On disk a
// snapshot is a directory named SystemState_<date>_<time>[_<description>]
// holding one <Category>.json file per collected category, an optional
// metadata.json, and (after analysis) per-category analysis results and a
// summary.txt. Snapshots are immutable once collected and are referenced by
// their directory name.
//
// Category data is deliberately schema-free: each Document wraps whatever
// JSON the PowerShell collector produced, and the helpers (Items, Object,
// Excerpt) let analyzers work with it without committing to a shape.
package snapshot
