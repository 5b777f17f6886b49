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

package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/mchmarny/winspect/pkg/defaults"
	"github.com/mchmarny/winspect/pkg/errors"
)

const systemPrompt = `You are a Windows system administration expert reviewing ` +
	`configuration data collected from a single machine. Respond with a single ` +
	`JSON object and no other text.`

// Completer is the interface analyzers depend on. The production Client
// implements it; tests substitute fakes.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds the inference server connection settings.
type Config struct {
	// ServerURL is the base URL of the OpenAI-compatible endpoint
	// (e.g. http://localhost:1234/v1).
	ServerURL string

	// APIKey is optional; local inference servers usually ignore it.
	APIKey string

	// Model is the model identifier to request.
	Model string

	// MaxTokens is the completion token budget (0 uses the default).
	MaxTokens int

	// Temperature is the sampling temperature.
	Temperature float32
}

// Client talks to a locally hosted OpenAI-compatible inference server.
type Client struct {
	api         *openai.Client
	model       string
	maxTokens   int
	temperature float32
	models      *modelCache
}

// New creates a Client for the given configuration.
func New(cfg Config) (*Client, error) {
	if cfg.ServerURL == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "llm server URL cannot be empty")
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = strings.TrimSuffix(cfg.ServerURL, "/")

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaults.LLMMaxTokens
	}

	c := &Client{
		api:         openai.NewClientWithConfig(oc),
		model:       cfg.Model,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
	}
	c.models = newModelCache(defaults.ModelCacheTTL, c.fetchModels)
	return c, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// SetModel switches the model used for subsequent completions.
func (c *Client) SetModel(model string) {
	c.model = model
}

// Complete sends a single prompt to the inference server and returns the raw
// completion text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.LLMRequestTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	slog.Debug("sending completion request", "model", c.model, "promptChars", len(prompt))

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeLLM, "completion request failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New(errors.ErrCodeLLM, "inference server returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// ListModels returns the model identifiers available on the inference
// server, served from a TTL cache.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	return c.models.get(ctx)
}

// InvalidateModels drops the cached model list so the next ListModels call
// fetches fresh data.
func (c *Client) InvalidateModels() {
	c.models.invalidate()
}

func (c *Client) fetchModels(ctx context.Context) ([]string, error) {
	list, err := c.api.ListModels(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLLM, "failed to list models", err)
	}
	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	if len(ids) == 0 {
		return nil, errors.New(errors.ErrCodeLLM, "inference server reports no models")
	}
	return ids, nil
}

// String implements fmt.Stringer without leaking credentials.
func (c *Client) String() string {
	return fmt.Sprintf("llm.Client{model: %s, maxTokens: %d}", c.model, c.maxTokens)
}
