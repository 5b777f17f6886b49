// Package compare produces structural diffs between two snapshots.
// Values are flattened to dotted leaf paths and compared leaf by leaf,
// so the diff pinpoints individual fields rather than whole documents.
package compare
