// Package api provides the winspectd entry point. It assembles the
// snapshot store, settings manager, and (on Windows) the machine
// snapshotter, then runs the REST server until shutdown.
//
// The daemon is configured through the settings file and WINSPECT_*
// environment variables; see pkg/settings. The listen port follows the
// PORT environment variable per pkg/server.DefaultConfig.
package api
