// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"log/slog"
	"os"
	"strings"
)

const levelEnvVar = "LOG_LEVEL"

// ParseLevel converts a level string into a slog.Level.
// Unrecognized values default to Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetDefaultStructuredLogger configures the process-wide slog default to emit
// structured JSON to stderr with module and version attributes. The level is
// taken from the LOG_LEVEL environment variable (defaults to info).
func SetDefaultStructuredLogger(module, version string) {
	SetDefaultStructuredLoggerWithLevel(module, version, os.Getenv(levelEnvVar))
}

// SetDefaultStructuredLoggerWithLevel is like SetDefaultStructuredLogger but
// takes an explicit level string, allowing CLI flags to override the
// environment.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	lvl := ParseLevel(level)

	opts := &slog.HandlerOptions{
		Level: lvl,
		// Source location only pays for itself when debugging.
		AddSource: lvl == slog.LevelDebug,
	}

	handler := slog.NewJSONHandler(os.Stderr, opts)
	logger := slog.New(handler).With(
		slog.String("module", module),
		slog.String("version", version),
	)
	slog.SetDefault(logger)
}
