/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

func modelsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "models",
		EnableShellCompletion: true,
		Usage:                 "List models available on the inference server",
		Description: `List the models the configured OpenAI-compatible inference server
reports as available.

# Examples

List models from the default server:
  winspect models

List models from a specific server:
  winspect models --server-url http://localhost:11434/v1`,
		Flags: []cli.Flag{
			serverURLFlag,
			debugFlag,
			outputFlag,
			formatFlag,
		},
		Action: runModels,
	}
}

func runModels(ctx context.Context, cmd *cli.Command) error {
	initLogging(cmd)

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

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
		"count":     len(models),
	})
}
