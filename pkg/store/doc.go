// Package store implements the snapshot directory layout on the local
// filesystem.
//
// Layout per snapshot:
//
//	SystemState_<date>_<time>[_<description>]/
//	  <Category>.json             collected data, one file per category
//	  <Category>Analysis.json     analysis result (after an analysis run)
//	  llm/<name>_llm_interaction.json  prompt/response audit log
//	  metadata.json               snapshot header (optional)
//	  summary.txt                 cross-category summary (optional)
//
// There are no transactional guarantees: a snapshot is a plain directory and
// files appear as they are written. Snapshot IDs are validated before being
// joined onto the root path.
package store
