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

package collector

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mchmarny/winspect/pkg/category"
	"github.com/mchmarny/winspect/pkg/defaults"
	"github.com/mchmarny/winspect/pkg/errors"
	"github.com/mchmarny/winspect/pkg/snapshot"
)

// CommandCollector gathers a category by running PowerShell pipelines in
// order until one yields parseable JSON. Secret-bearing keys are dropped
// from the result before it leaves the collector.
type CommandCollector struct {
	Cat      category.Category
	Runner   Runner
	Commands []string
	Filter   []string
}

func (c *CommandCollector) Category() category.Category {
	return c.Cat
}

func (c *CommandCollector) Collect(ctx context.Context) (*snapshot.Document, error) {
	if c.Runner == nil {
		return nil, errors.New(errors.ErrCodeInternal, "collector has no runner")
	}
	if len(c.Commands) == 0 {
		return nil, errors.New(errors.ErrCodeInternal,
			fmt.Sprintf("no commands configured for %s", c.Cat))
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.CollectorTimeout)
	defer cancel()

	var lastErr error
	for i, command := range c.Commands {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout,
				fmt.Sprintf("collecting %s interrupted", c.Cat), err)
		}

		output, err := c.Runner.Run(ctx, command)
		if err != nil {
			lastErr = err
			slog.Debug("collector command failed, trying fallback",
				"category", c.Cat, "attempt", i+1, "error", err)
			continue
		}
		if len(output) == 0 {
			lastErr = fmt.Errorf("command produced no output")
			continue
		}

		doc, err := snapshot.NewDocument(c.Cat, output)
		if err != nil {
			lastErr = err
			slog.Debug("collector output not parseable, trying fallback",
				"category", c.Cat, "attempt", i+1, "error", err)
			continue
		}

		return c.filtered(doc), nil
	}

	return nil, errors.Wrap(errors.ErrCodeCollection,
		fmt.Sprintf("all commands failed for %s", c.Cat), lastErr)
}

// filtered drops secret-bearing keys from object-shaped values. Lists of
// objects are filtered per element.
func (c *CommandCollector) filtered(doc *snapshot.Document) *snapshot.Document {
	if len(c.Filter) == 0 {
		return doc
	}

	switch v := doc.Value.(type) {
	case map[string]any:
		doc.Value = snapshot.FilterOut(v, c.Filter)
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok {
				if name, ok := obj["Name"].(string); ok && matchesAny(name, c.Filter) {
					continue
				}
				out = append(out, snapshot.FilterOut(obj, c.Filter))
				continue
			}
			out = append(out, item)
		}
		doc.Value = out
	}
	return doc
}

func matchesAny(key string, patterns []string) bool {
	return len(snapshot.FilterOut(map[string]any{key: true}, patterns)) == 0
}
