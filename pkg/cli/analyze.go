/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/winspect/pkg/analyzer"
	"github.com/mchmarny/winspect/pkg/compare"
	"github.com/mchmarny/winspect/pkg/settings"
	"github.com/mchmarny/winspect/pkg/store"
	"github.com/mchmarny/winspect/pkg/version"
)

const envTemplatePath = ".env"

// analyzeOutput is the analyze command result for a single snapshot.
type analyzeOutput struct {
	Report     *analyzer.Report `json:"report" yaml:"report"`
	Comparison *compare.Result  `json:"comparison,omitempty" yaml:"comparison,omitempty"`
}

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "analyze",
		EnableShellCompletion: true,
		Usage:                 "Analyze a snapshot with a locally hosted LLM",
		ArgsUsage:             "[snapshot path or ID]",
		Description: `Review a captured snapshot with a locally hosted OpenAI-compatible
inference server (LM Studio, Ollama, llama.cpp server, etc.).

Each category is analyzed in turn; large categories such as installed
programs and network settings are split into named groups and analyzed
group by group. Results and the raw LLM exchanges are written back into
the snapshot directory.

The snapshot argument is either a path to a snapshot directory or a
bare snapshot ID resolved under --snapshots-dir. With --input-dir every
snapshot in the directory is analyzed in turn.

# Examples

Analyze a snapshot directory:
  winspect analyze ./snapshots/SystemState_20250601_120000

Analyze only selected categories:
  winspect analyze SystemState_20250601_120000 --focus Services --focus Drivers

Analyze and diff against the previous snapshot:
  winspect analyze SystemState_20250601_120000 --compare-with-latest

Analyze every snapshot under a directory:
  winspect analyze --input-dir ./snapshots

List available analyzers or server models:
  winspect analyze --list-analyzers
  winspect analyze --list-models --server-url http://localhost:1234/v1

Write a starter .env configuration file:
  winspect analyze --create-env`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "input-dir",
				Usage: "Analyze every snapshot in this directory",
			},
			&cli.StringSliceFlag{
				Name:  "focus",
				Usage: "Restrict analysis to these categories (can be repeated)",
			},
			&cli.BoolFlag{
				Name:  "list-analyzers",
				Usage: "List available category analyzers and exit",
			},
			&cli.BoolFlag{
				Name:  "list-models",
				Usage: "List models available on the inference server and exit",
			},
			&cli.BoolFlag{
				Name:  "create-env",
				Usage: "Write a starter " + envTemplatePath + " configuration file and exit",
			},
			&cli.BoolFlag{
				Name:  "compare-with-latest",
				Usage: "Also diff the snapshot against the most recent other snapshot",
			},
			snapshotsDirFlag,
			serverURLFlag,
			modelFlag,
			debugFlag,
			outputFlag,
			formatFlag,
		},
		Action: runAnalyze,
	}
}

func runAnalyze(ctx context.Context, cmd *cli.Command) error {
	initLogging(cmd)

	if cmd.Bool("create-env") {
		if err := settings.WriteEnvTemplate(envTemplatePath); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", envTemplatePath)
		return nil
	}

	if cmd.Bool("list-analyzers") {
		return write(ctx, cmd, map[string]any{"analyzers": analyzer.Names()})
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("list-models") {
		client, err := newClient(cfg)
		if err != nil {
			return err
		}
		models, err := client.ListModels(ctx)
		if err != nil {
			return err
		}
		return write(ctx, cmd, map[string]any{
			"serverUrl": cfg.ServerURL,
			"models":    models,
		})
	}

	focus, err := parseFocus(cmd.StringSlice("focus"))
	if err != nil {
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	if dir := cmd.String("input-dir"); dir != "" {
		st, err := store.New(dir)
		if err != nil {
			return err
		}
		infos, err := st.List()
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			return fmt.Errorf("no snapshots found in %s", dir)
		}
		reports := make([]*analyzer.Report, 0, len(infos))
		for _, info := range infos {
			runner := &analyzer.Runner{
				Store:   st,
				Client:  client,
				Model:   cfg.Model,
				Focus:   focus,
				Version: version.Version(),
			}
			report, err := runner.Run(ctx, info.ID)
			if err != nil {
				slog.Error("analysis failed", "snapshot", info.ID, "error", err)
				continue
			}
			reports = append(reports, report)
		}
		if len(reports) == 0 {
			return fmt.Errorf("analysis failed for every snapshot in %s", dir)
		}
		return write(ctx, cmd, reports)
	}

	st, id, err := resolveSnapshot(cmd.Args().First(), cmd.String("snapshots-dir"))
	if err != nil {
		return err
	}

	runner := &analyzer.Runner{
		Store:   st,
		Client:  client,
		Model:   cfg.Model,
		Focus:   focus,
		Version: version.Version(),
	}
	report, err := runner.Run(ctx, id)
	if err != nil {
		return err
	}

	out := &analyzeOutput{Report: report}
	if cmd.Bool("compare-with-latest") {
		diff, err := compareWithLatest(st, id)
		if err != nil {
			slog.Warn("comparison skipped", "error", err)
		} else {
			out.Comparison = diff
		}
	}

	return write(ctx, cmd, out)
}

// compareWithLatest diffs the snapshot against the most recent other
// snapshot in the same store.
func compareWithLatest(st *store.Store, id string) (*compare.Result, error) {
	infos, err := st.List()
	if err != nil {
		return nil, err
	}

	var baseID string
	for _, info := range infos {
		if info.ID != id {
			baseID = info.ID
			break
		}
	}
	if baseID == "" {
		return nil, fmt.Errorf("no other snapshot to compare against")
	}

	base, err := st.Load(baseID)
	if err != nil {
		return nil, err
	}
	target, err := st.Load(id)
	if err != nil {
		return nil, err
	}
	return compare.Snapshots(base, target, version.Version()), nil
}
