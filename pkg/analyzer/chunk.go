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

package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// Bucket is one named group of items within a chunked analysis. Buckets
// are processed strictly in slice order; an empty bucket is skipped.
type Bucket struct {
	Name  string
	Items []any
}

// runChunked executes the bucketed analysis protocol: one LLM call per
// non-empty bucket in declaration order, each response parsed and its
// findings tagged with the bucket name, followed by one synthesis call
// over the collected per-bucket summaries. A failed bucket is logged and
// skipped; results from the remaining buckets still aggregate. When no
// bucket yields a summary, the result carries the fixed fallback summary
// for the noun (e.g. "software").
func runChunked(ctx context.Context, req *Request, noun string, buckets []Bucket, metrics []string) *Result {
	cat := req.Doc.Category
	result := NewResult(cat)
	result.Model = req.Model
	display := cat.DisplayName()

	var summaries []string
	for _, b := range buckets {
		if len(b.Items) == 0 {
			continue
		}

		sample, err := sampleJSON(b.Items, maxPromptItems)
		if err != nil {
			slog.Warn("skipping bucket, items not serializable",
				"category", cat, "bucket", b.Name, "error", err)
			continue
		}

		prompt := buildBucketPrompt(display, b.Name, len(b.Items), sample)
		raw, err := completeObject(ctx, req, b.Name, prompt)
		if err != nil {
			slog.Warn("bucket analysis failed, continuing",
				"category", cat, "bucket", b.Name, "error", err)
			continue
		}

		partial := parseResult(cat, raw)
		for i := range partial.Issues {
			partial.Issues[i].Component = b.Name
		}
		for i := range partial.Optimizations {
			partial.Optimizations[i].Component = b.Name
		}
		result.Issues = append(result.Issues, partial.Issues...)
		result.Optimizations = append(result.Optimizations, partial.Optimizations...)

		if s := strings.TrimSpace(partial.Summary); s != "" {
			summaries = append(summaries, b.Name+": "+s)
		}
	}

	if len(summaries) == 0 {
		result.Summary = fmt.Sprintf("No analysis could be generated for any %s categories.", noun)
		return result
	}

	result.Summary = synthesize(ctx, req, display, summaries, metrics)
	return result
}

// synthesize produces the combined summary from per-bucket summaries. If
// the synthesis call fails, the joined per-bucket summaries stand in.
func synthesize(ctx context.Context, req *Request, display string, summaries, metrics []string) string {
	prompt := buildSynthesisPrompt(display, summaries, metrics)
	response, err := complete(ctx, req, "summary", prompt)
	if err != nil {
		slog.Warn("summary synthesis failed, joining bucket summaries",
			"category", req.Doc.Category, "error", err)
		return strings.Join(summaries, " ")
	}
	if s := strings.TrimSpace(response); s != "" {
		return s
	}
	return strings.Join(summaries, " ")
}

// sampleJSON renders at most limit items as indented JSON, noting how
// many were omitted.
func sampleJSON(items []any, limit int) (string, error) {
	total := len(items)
	shown := items
	if total > limit {
		shown = items[:limit]
	}
	data, err := json.MarshalIndent(shown, "", "  ")
	if err != nil {
		return "", err
	}
	if total > len(shown) {
		return fmt.Sprintf("%s\n... (%d of %d items shown)", data, len(shown), total), nil
	}
	return string(data), nil
}
