/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package api

import (
	"log/slog"
	"runtime"

	"github.com/mchmarny/winspect/pkg/collector"
	"github.com/mchmarny/winspect/pkg/logging"
	"github.com/mchmarny/winspect/pkg/server"
	"github.com/mchmarny/winspect/pkg/settings"
	"github.com/mchmarny/winspect/pkg/snapshotter"
	"github.com/mchmarny/winspect/pkg/store"
	"github.com/mchmarny/winspect/pkg/version"
)

const name = "winspectd"

// Options tune the daemon. The zero value serves the default settings
// file and snapshot directory.
type Options struct {
	// SettingsPath is the settings file location. Empty means defaults
	// plus WINSPECT_* environment overrides, without persistence.
	SettingsPath string

	// SnapshotsDir overrides the snapshot root from settings.
	SnapshotsDir string

	// Port overrides the listen port from config (0 keeps the default).
	Port int
}

// Serve starts the API server and blocks until shutdown.
// It configures logging, wires the store and settings manager, and
// handles graceful shutdown. Returns an error if the server fails to
// start or encounters a fatal error.
func Serve(opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}

	logging.SetDefaultStructuredLogger(name, version.Version())
	slog.Info("starting",
		"name", name,
		"version", version.Version(),
		"commit", version.Commit(),
		"date", version.Date(),
	)

	mgr, err := settings.NewManager(opts.SettingsPath)
	if err != nil {
		return err
	}

	cfg := mgr.Get()
	root := cfg.SnapshotsDir
	if opts.SnapshotsDir != "" {
		root = opts.SnapshotsDir
	}

	st, err := store.New(root)
	if err != nil {
		return err
	}

	deps := &server.Dependencies{
		Store:    st,
		Settings: mgr,
	}

	// Snapshot capture shells out to PowerShell, so the endpoint is
	// only offered on Windows hosts. Elsewhere the daemon serves an
	// existing snapshot archive.
	if runtime.GOOS == "windows" {
		deps.Snapshotter = &snapshotter.MachineSnapshotter{
			Store:   st,
			Factory: collector.NewDefaultFactory(),
			Version: version.Version(),
		}
	} else {
		slog.Warn("snapshot capture disabled on this platform", "os", runtime.GOOS)
	}

	serverCfg := server.DefaultConfig()
	serverCfg.Name = name
	serverCfg.Version = version.Version()
	if opts.Port > 0 {
		serverCfg.Port = opts.Port
	}

	if err := server.Run(serverCfg, deps); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
