// Package settings manages runtime configuration for the CLI and the
// daemon: defaults, YAML file, and WINSPECT_* environment overrides,
// with validated concurrent-safe updates.
package settings
