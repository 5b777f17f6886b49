/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/winspect/pkg/compare"
	"github.com/mchmarny/winspect/pkg/version"
)

func compareCmd() *cli.Command {
	return &cli.Command{
		Name:                  "compare",
		EnableShellCompletion: true,
		Usage:                 "Compare two snapshots",
		ArgsUsage:             "<base> <target>",
		Description: `Produce a structural diff between two snapshots.

Each category present in either snapshot is flattened to dotted leaf
keys and compared value by value. The result lists added, removed, and
changed keys per category, plus categories present in only one of the
two snapshots.

Arguments are snapshot directory paths or bare snapshot IDs resolved
under --snapshots-dir.

# Examples

Compare two snapshots by ID:
  winspect compare SystemState_20250601_120000 SystemState_20250608_090000

Compare snapshot directories across stores:
  winspect compare ./old/SystemState_20250601_120000 ./new/SystemState_20250608_090000

Write the diff to a YAML file:
  winspect compare SystemState_20250601_120000 SystemState_20250608_090000 -t yaml -o diff.yaml`,
		Flags: []cli.Flag{
			snapshotsDirFlag,
			debugFlag,
			outputFlag,
			formatFlag,
		},
		Action: runCompare,
	}
}

func runCompare(ctx context.Context, cmd *cli.Command) error {
	initLogging(cmd)

	if cmd.Args().Len() != 2 {
		return fmt.Errorf("compare requires exactly two snapshot arguments, got %d", cmd.Args().Len())
	}

	dir := cmd.String("snapshots-dir")

	baseStore, baseID, err := resolveSnapshot(cmd.Args().Get(0), dir)
	if err != nil {
		return err
	}
	targetStore, targetID, err := resolveSnapshot(cmd.Args().Get(1), dir)
	if err != nil {
		return err
	}

	base, err := baseStore.Load(baseID)
	if err != nil {
		return err
	}
	target, err := targetStore.Load(targetID)
	if err != nil {
		return err
	}

	return write(ctx, cmd, compare.Snapshots(base, target, version.Version()))
}
