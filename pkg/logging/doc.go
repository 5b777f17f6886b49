// Package logging provides structured logging setup for winspect components.
//
// It wraps the standard library slog package with project defaults: JSON
// output to stderr, environment-based level configuration (LOG_LEVEL), and
// module/version context attributes on every record.
//
// Usage:
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("winspect", version.Version())
//	    slog.Info("starting", "snapshots", dir)
//	}
package logging
