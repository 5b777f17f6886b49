/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/winspect/pkg/collector"
	"github.com/mchmarny/winspect/pkg/snapshotter"
	"github.com/mchmarny/winspect/pkg/store"
	"github.com/mchmarny/winspect/pkg/version"
)

// snapshotOutput is the snapshot command result.
type snapshotOutput struct {
	ID         string `json:"id" yaml:"id"`
	Path       string `json:"path" yaml:"path"`
	Categories int    `json:"categories" yaml:"categories"`
}

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Capture a machine configuration snapshot",
		Description: `Capture a snapshot of the current Windows machine configuration
including:
  - Installed programs and startup entries
  - Services, drivers, and scheduled tasks
  - Network adapters, IP configuration, and DNS settings
  - Disk space, hardware, and performance counters
  - Windows Update history and recent event log entries

Collection shells out to PowerShell, so this command requires Windows.
Each category is written as its own JSON file under a new
SystemState_<date>_<time> directory. Values matching common secret
patterns (passwords, tokens, API keys) are redacted before anything is
written to disk.

# Examples

Capture into the default snapshots directory:
  winspect snapshot

Capture with a description:
  winspect snapshot --description pre-upgrade

Capture into a specific directory:
  winspect snapshot --output-dir D:\snapshots`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output-dir",
				Usage:   "Directory to create the snapshot in",
				Sources: cli.EnvVars("WINSPECT_SNAPSHOTS_DIR"),
				Value:   "snapshots",
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Short description appended to the snapshot name",
			},
			debugFlag,
			outputFlag,
			formatFlag,
		},
		Action: runSnapshot,
	}
}

func runSnapshot(ctx context.Context, cmd *cli.Command) error {
	initLogging(cmd)

	if runtime.GOOS != "windows" {
		return fmt.Errorf("snapshot capture requires Windows (PowerShell), current OS: %s", runtime.GOOS)
	}

	st, err := store.New(cmd.String("output-dir"))
	if err != nil {
		return err
	}

	snap := &snapshotter.MachineSnapshotter{
		Store:   st,
		Factory: collector.NewDefaultFactory(),
		Version: version.Version(),
	}

	id, err := snap.Run(ctx, cmd.String("description"))
	if err != nil {
		return err
	}

	path, err := st.Path(id)
	if err != nil {
		return err
	}

	out := &snapshotOutput{ID: id, Path: path}
	if infos, err := st.List(); err == nil {
		for _, info := range infos {
			if info.ID == id {
				out.Categories = info.Categories
				break
			}
		}
	}

	return write(ctx, cmd, out)
}
