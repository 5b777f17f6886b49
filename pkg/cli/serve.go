/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/winspect/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Run the REST API server",
		Description: `Run the REST API server, serving snapshot capture, analysis,
comparison, and settings endpoints until interrupted.

This is the same server the winspectd binary runs. Snapshot capture is
only offered on Windows; on other platforms the server serves an
existing snapshot archive.

# Examples

Serve the default snapshots directory on port 8080:
  winspect serve

Serve a specific archive on a different port:
  winspect serve --snapshots-dir D:\snapshots --port 9090

Use a persisted settings file:
  winspect serve --settings ./winspect.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "settings",
				Usage:   "Settings file path (created on first settings update)",
				Sources: cli.EnvVars("WINSPECT_SETTINGS"),
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (overrides PORT environment variable)",
			},
			snapshotsDirFlag,
			debugFlag,
		},
		Action: runServe,
	}
}

func runServe(_ context.Context, cmd *cli.Command) error {
	// api.Serve configures the logger itself from LOG_LEVEL.
	if cmd.Bool("debug") {
		_ = os.Setenv("LOG_LEVEL", "debug")
	}

	return api.Serve(&api.Options{
		SettingsPath: cmd.String("settings"),
		SnapshotsDir: cmd.String("snapshots-dir"),
		Port:         int(cmd.Int("port")),
	})
}
