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
	"time"

	"github.com/mchmarny/winspect/pkg/category"
	"github.com/mchmarny/winspect/pkg/llm"
	"github.com/mchmarny/winspect/pkg/snapshot"
)

// Issue is one problem the model identified in a category.
type Issue struct {
	Severity       string `json:"severity"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`

	// Component tags the originating bucket under chunked analysis.
	Component string `json:"component,omitempty"`
}

// Optimization is one improvement opportunity the model identified.
type Optimization struct {
	Impact         string `json:"impact"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`

	// Component tags the originating bucket under chunked analysis.
	Component string `json:"component,omitempty"`
}

// Result is the analysis output for one category. The shape is advisory:
// the model is asked to produce it but drift is tolerated, so parsing is
// best-effort and missing fields degrade to empty values.
type Result struct {
	Category      string         `json:"category"`
	Model         string         `json:"model,omitempty"`
	GeneratedAt   time.Time      `json:"generatedAt"`
	Issues        []Issue        `json:"issues"`
	Optimizations []Optimization `json:"optimizations"`
	Summary       string         `json:"summary"`

	// Error marks a failed section; the run continues past it.
	Error string `json:"error,omitempty"`
}

// NewResult creates an empty Result for a category with initialized slices
// so serialized output always carries issues/optimizations arrays.
func NewResult(c category.Category) *Result {
	return &Result{
		Category:      c.String(),
		GeneratedAt:   time.Now().UTC(),
		Issues:        make([]Issue, 0),
		Optimizations: make([]Optimization, 0),
	}
}

// FailedResult records a section whose analysis could not be completed.
func FailedResult(c category.Category, err error) *Result {
	r := NewResult(c)
	r.Summary = "Analysis failed for " + c.DisplayName() + "."
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// parseResult decodes a model-produced JSON object into a Result,
// tolerating schema drift: unknown fields are ignored and absent fields
// stay empty.
func parseResult(c category.Category, raw json.RawMessage) *Result {
	r := NewResult(c)

	var loose struct {
		Issues        []Issue        `json:"issues"`
		Optimizations []Optimization `json:"optimizations"`
		Summary       string         `json:"summary"`
	}
	// Raw has already been validated as a JSON object by the extractor;
	// a mismatch here means drift (e.g. issues as a string), which we
	// deliberately swallow and keep whatever did decode.
	_ = json.Unmarshal(raw, &loose)

	if loose.Issues != nil {
		r.Issues = loose.Issues
	}
	if loose.Optimizations != nil {
		r.Optimizations = loose.Optimizations
	}
	r.Summary = loose.Summary
	return r
}

// Recorder receives prompt/response audit records as analysis progresses.
type Recorder interface {
	Record(interaction *llm.Interaction)
}

// Request carries everything an Analyzer needs for one category.
type Request struct {
	// Doc is the category's collected data.
	Doc *snapshot.Document

	// Client performs LLM completions.
	Client llm.Completer

	// Model is recorded on results and interactions for auditability.
	Model string

	// Recorder receives interaction audit records; may be nil.
	Recorder Recorder
}

// Analyzer produces an analysis Result for one category of snapshot data.
type Analyzer interface {
	Category() category.Category
	Analyze(ctx context.Context, req *Request) (*Result, error)
}

// complete sends a prompt, recording the interaction (including failures)
// when a Recorder is present.
func complete(ctx context.Context, req *Request, bucket, prompt string) (string, error) {
	start := time.Now()
	response, err := req.Client.Complete(ctx, prompt)

	if req.Recorder != nil {
		in := &llm.Interaction{
			Category:  req.Doc.Category.String(),
			Bucket:    bucket,
			Model:     req.Model,
			Prompt:    prompt,
			Response:  response,
			Timestamp: start.UTC(),
			Duration:  time.Since(start).String(),
		}
		if err != nil {
			in.Error = err.Error()
		}
		req.Recorder.Record(in)
	}

	llmCalls.WithLabelValues(req.Doc.Category.String(), status(err)).Inc()
	return response, err
}

// completeObject sends a prompt and extracts the JSON object from the
// response.
func completeObject(ctx context.Context, req *Request, bucket, prompt string) (json.RawMessage, error) {
	response, err := complete(ctx, req, bucket, prompt)
	if err != nil {
		return nil, err
	}
	return llm.ExtractObject(response)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
