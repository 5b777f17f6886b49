/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/winspect/pkg/version"
)

const name = "winspect"

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               version.Version(),
		EnableShellCompletion: true,
		Usage:                 "Windows machine configuration snapshot and analysis",
		Description: fmt.Sprintf(`winspect - Windows configuration snapshot CLI

Version: %s
Commit:  %s
Built:   %s

Tooling to capture, analyze, and compare Windows machine configuration:

snapshot - captures system configuration including installed programs,
           services, drivers, network settings, and performance counters.
analyze  - reviews a captured snapshot with a locally hosted LLM.
compare  - produces a structural diff between two snapshots.
serve    - runs the REST API server.
models   - lists models available on the inference server.`,
			version.Version(), version.Commit(), version.Date()),
		Commands: []*cli.Command{
			snapshotCmd(),
			analyzeCmd(),
			compareCmd(),
			serveCmd(),
			modelsCmd(),
		},
	}
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
