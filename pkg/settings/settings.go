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

package settings

import (
	stderrors "errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/mchmarny/winspect/pkg/defaults"
	"github.com/mchmarny/winspect/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Settings is the runtime configuration shared by the CLI and the
// daemon. Values merge in order: defaults, then the YAML file, then
// environment variables.
type Settings struct {
	// ServerURL is the OpenAI-compatible inference server base URL.
	ServerURL string `json:"serverUrl" yaml:"serverUrl" validate:"required,url"`

	// APIKey is sent as a bearer token; local servers usually ignore it.
	APIKey string `json:"-" yaml:"apiKey,omitempty"`

	// Model is the default model identifier for analysis runs.
	Model string `json:"model" yaml:"model" validate:"required"`

	MaxTokens   int     `json:"maxTokens" yaml:"maxTokens" validate:"gt=0"`
	Temperature float32 `json:"temperature" yaml:"temperature" validate:"gte=0,lte=2"`

	// SnapshotsDir is the root directory holding snapshot directories.
	SnapshotsDir string `json:"snapshotsDir" yaml:"snapshotsDir" validate:"required"`

	// CORSOrigins lists origins allowed to call the REST API.
	CORSOrigins []string `json:"corsOrigins" yaml:"corsOrigins"`

	LogLevel string `json:"logLevel" yaml:"logLevel" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the settings used when no file or environment
// overrides are present.
func Default() *Settings {
	return &Settings{
		ServerURL:    "http://localhost:1234/v1",
		Model:        "local-model",
		MaxTokens:    defaults.LLMMaxTokens,
		Temperature:  defaults.LLMTemperature,
		SnapshotsDir: "snapshots",
		CORSOrigins:  []string{"*"},
		LogLevel:     "info",
	}
}

// applyEnv overlays WINSPECT_* environment variables.
func (s *Settings) applyEnv() {
	if v := os.Getenv("WINSPECT_SERVER_URL"); v != "" {
		s.ServerURL = v
	}
	if v := os.Getenv("WINSPECT_API_KEY"); v != "" {
		s.APIKey = v
	}
	if v := os.Getenv("WINSPECT_MODEL"); v != "" {
		s.Model = v
	}
	if v := os.Getenv("WINSPECT_SNAPSHOTS_DIR"); v != "" {
		s.SnapshotsDir = v
	}
	if v := os.Getenv("WINSPECT_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv("WINSPECT_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.MaxTokens = n
		}
	}
	if v := os.Getenv("WINSPECT_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			s.Temperature = float32(f)
		}
	}
}

// Validate checks field constraints, returning an INVALID_REQUEST error
// naming the first offending field.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			return errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid setting %s: failed %s constraint", verrs[0].Field(), verrs[0].Tag()))
		}
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid settings", err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// clone returns a deep copy so callers can't mutate shared state.
func (s *Settings) clone() *Settings {
	c := *s
	c.CORSOrigins = append([]string(nil), s.CORSOrigins...)
	return &c
}

func (s *Settings) marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
