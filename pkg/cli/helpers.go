/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/winspect/pkg/category"
	"github.com/mchmarny/winspect/pkg/llm"
	"github.com/mchmarny/winspect/pkg/logging"
	"github.com/mchmarny/winspect/pkg/serializer"
	"github.com/mchmarny/winspect/pkg/settings"
	"github.com/mchmarny/winspect/pkg/snapshot"
	"github.com/mchmarny/winspect/pkg/store"
	"github.com/mchmarny/winspect/pkg/version"
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("Output format: %s", strings.Join(serializer.SupportedFormats(), ", ")),
		Value:   string(serializer.FormatJSON),
	}

	snapshotsDirFlag = &cli.StringFlag{
		Name:    "snapshots-dir",
		Usage:   "Directory holding snapshot directories",
		Sources: cli.EnvVars("WINSPECT_SNAPSHOTS_DIR"),
		Value:   "snapshots",
	}

	serverURLFlag = &cli.StringFlag{
		Name:    "server-url",
		Usage:   "Base URL of the OpenAI-compatible inference server",
		Sources: cli.EnvVars("WINSPECT_SERVER_URL"),
	}

	modelFlag = &cli.StringFlag{
		Name:    "model",
		Usage:   "Model identifier to request from the inference server",
		Sources: cli.EnvVars("WINSPECT_MODEL"),
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}
)

func initLogging(cmd *cli.Command) {
	level := "info"
	if cmd.Bool("debug") {
		level = "debug"
	}
	logging.SetDefaultStructuredLoggerWithLevel(name, version.Version(), level)
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported: %s)",
			f, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return f, nil
}

// write serializes data to the destination selected by --output and
// --format.
func write(ctx context.Context, cmd *cli.Command, data any) error {
	f, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}
	s := serializer.NewFileWriterOrStdout(f, cmd.String("output"))
	defer func() {
		if c, ok := s.(serializer.Closer); ok {
			_ = c.Close()
		}
	}()
	return s.Serialize(ctx, data)
}

// loadSettings merges the persisted settings, WINSPECT_* environment
// variables, and command-line overrides, in that order.
func loadSettings(cmd *cli.Command) (*settings.Settings, error) {
	mgr, err := settings.NewManager("")
	if err != nil {
		return nil, err
	}
	cfg := mgr.Get()
	if v := cmd.String("server-url"); v != "" {
		cfg.ServerURL = v
	}
	if v := cmd.String("model"); v != "" {
		cfg.Model = v
	}
	return cfg, nil
}

func newClient(cfg *settings.Settings) (*llm.Client, error) {
	return llm.New(llm.Config{
		ServerURL:   cfg.ServerURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	})
}

// resolveSnapshot maps a positional argument to a store and snapshot
// ID. The argument is either a path to a snapshot directory or a bare
// snapshot ID under dir.
func resolveSnapshot(arg, dir string) (*store.Store, string, error) {
	if arg == "" {
		return nil, "", fmt.Errorf("snapshot path or ID required")
	}

	if snapshot.ValidID(arg) && !strings.ContainsAny(arg, `/\`) {
		if fi, err := os.Stat(filepath.Join(dir, arg)); err == nil && fi.IsDir() {
			st, err := store.New(dir)
			if err != nil {
				return nil, "", err
			}
			return st, arg, nil
		}
	}

	abs, err := filepath.Abs(arg)
	if err != nil {
		return nil, "", fmt.Errorf("invalid snapshot path %q: %w", arg, err)
	}
	id := filepath.Base(abs)
	if !snapshot.ValidID(id) {
		return nil, "", fmt.Errorf("%q is not a snapshot directory (expected SystemState_<date>_<time>)", arg)
	}
	if fi, err := os.Stat(abs); err != nil || !fi.IsDir() {
		return nil, "", fmt.Errorf("snapshot directory not found: %s", arg)
	}
	st, err := store.New(filepath.Dir(abs))
	if err != nil {
		return nil, "", err
	}
	return st, id, nil
}

func parseFocus(names []string) ([]category.Category, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]category.Category, 0, len(names))
	for _, n := range names {
		c, ok := category.Parse(n)
		if !ok {
			return nil, fmt.Errorf("unknown category %q (valid: %s)",
				n, strings.Join(categoryNames(), ", "))
		}
		out = append(out, c)
	}
	return out, nil
}

func categoryNames() []string {
	names := make([]string, 0, len(category.All))
	for _, c := range category.All {
		names = append(names, string(c))
	}
	return names
}
