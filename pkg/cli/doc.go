// Package cli implements the command-line interface for the winspect tool.
//
// # Overview
//
// The winspect CLI captures Windows machine configuration snapshots,
// analyzes them with a locally hosted LLM, and compares snapshots over
// time. It is designed for administrators reviewing machine health and
// configuration drift without sending system data off the machine.
//
// # Commands
//
// snapshot - Capture machine configuration:
//
//	winspect snapshot [--output-dir DIR] [--description TEXT]
//
// Captures installed programs, services, drivers, network settings,
// disk space, performance counters, and more into a new
// SystemState_<date>_<time> directory, one JSON file per category.
// Requires Windows (collection shells out to PowerShell).
//
// analyze - Review a snapshot with a local LLM:
//
//	winspect analyze <snapshot> [--focus CATEGORY...] [--model NAME]
//
// Sends each category to a locally hosted OpenAI-compatible inference
// server and writes issues, optimizations, and a summary back into the
// snapshot directory. Large categories are analyzed in named groups.
// Also carries utility modes: --list-analyzers, --list-models,
// --create-env, --input-dir (batch), and --compare-with-latest.
//
// compare - Diff two snapshots:
//
//	winspect compare <base> <target>
//
// Flattens each category to dotted leaf keys and reports added,
// removed, and changed values per category.
//
// serve - Run the REST API server:
//
//	winspect serve [--port PORT] [--snapshots-dir DIR]
//
// models - List inference server models:
//
//	winspect models [--server-url URL]
//
// # Global Flags
//
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: json, yaml, table (default: json)
//	--debug        Enable debug logging
//
// # Environment Variables
//
//	WINSPECT_SERVER_URL     Inference server base URL
//	WINSPECT_MODEL          Model identifier
//	WINSPECT_SNAPSHOTS_DIR  Snapshot root directory
//	LOG_LEVEL               Logging verbosity (debug, info, warn, error)
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, execution failure)
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized
// packages:
//   - pkg/snapshotter - machine snapshot collection
//   - pkg/analyzer - LLM-backed category analysis
//   - pkg/compare - structural snapshot diffing
//   - pkg/serializer - output formatting
//   - pkg/logging - structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/mchmarny/winspect/pkg/version.version=1.0.0'"
package cli
