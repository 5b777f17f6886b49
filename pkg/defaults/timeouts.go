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

package defaults

import "time"

// Collector timeouts for data collection operations.
const (
	// CollectorTimeout is the default timeout for a single PowerShell
	// collection command. Collectors should respect parent context
	// deadlines when shorter.
	CollectorTimeout = 60 * time.Second

	// SnapshotTimeout bounds a full snapshot capture across all collectors.
	SnapshotTimeout = 5 * time.Minute
)

// LLM timeouts and limits for analysis operations.
const (
	// LLMRequestTimeout is the timeout for a single completion request.
	// Local inference servers can be slow on large prompts.
	LLMRequestTimeout = 120 * time.Second

	// LLMMaxTokens is the default completion token budget.
	LLMMaxTokens = 2048

	// LLMTemperature is the default sampling temperature.
	LLMTemperature = 0.2

	// ModelCacheTTL is how long the model list from the inference server
	// is cached before being refreshed.
	ModelCacheTTL = 5 * time.Minute

	// AnalysisTimeout bounds a full analysis run across all categories.
	AnalysisTimeout = 30 * time.Minute
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)
