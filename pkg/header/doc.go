// Package header provides common header types for winspect data structures.
//
// The Header type is inlined into snapshots, analysis reports, and comparison
// results to provide consistent apiVersion/kind/metadata envelopes:
//
//	{
//	  "apiVersion": "v1",
//	  "kind": "Snapshot",
//	  "metadata": {
//	    "timestamp": "2026-08-30T10:30:00Z",
//	    "version": "v0.3.1"
//	  }
//	}
//
// Consumers should check APIVersion before parsing resource payloads.
package header
