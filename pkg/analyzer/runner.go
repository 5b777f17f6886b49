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
	"log/slog"
	"strings"
	"time"

	"github.com/mchmarny/winspect/pkg/category"
	"github.com/mchmarny/winspect/pkg/defaults"
	"github.com/mchmarny/winspect/pkg/errors"
	"github.com/mchmarny/winspect/pkg/header"
	"github.com/mchmarny/winspect/pkg/llm"
	"github.com/mchmarny/winspect/pkg/snapshot"
	"github.com/mchmarny/winspect/pkg/store"
)

// Report is the complete output of one analysis run.
type Report struct {
	header.Header `json:",inline"`

	SnapshotID string    `json:"snapshotId"`
	Model      string    `json:"model,omitempty"`
	Results    []*Result `json:"results"`
	Summary    string    `json:"summary"`
}

// Runner analyzes a stored snapshot one category at a time. Categories
// are processed strictly in collection order; a failed category is
// recorded and the run continues.
type Runner struct {
	// Store persists results, interactions, and the run summary.
	Store *store.Store

	// Client performs LLM completions.
	Client llm.Completer

	// Model is recorded on results for auditability.
	Model string

	// Focus restricts the run to the listed categories. Empty means
	// every collected category.
	Focus []category.Category

	// Version stamps the report header.
	Version string
}

// Run analyzes the identified snapshot and persists the per-category
// results, LLM interaction records, and the final summary.
func (r *Runner) Run(ctx context.Context, id string) (*Report, error) {
	if r.Store == nil || r.Client == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "runner requires a store and an LLM client")
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.AnalysisTimeout)
	defer cancel()

	snap, err := r.Store.Load(id)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	report := &Report{
		SnapshotID: id,
		Model:      r.Model,
		Results:    make([]*Result, 0, len(snap.Documents)),
	}
	report.Init(header.KindAnalysis, snapshot.APIVersion, r.Version)

	for _, doc := range snap.Documents {
		if !r.focused(doc.Category) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "analysis run interrupted", err)
		}

		result := r.analyzeCategory(ctx, id, doc)
		report.Results = append(report.Results, result)

		if err := r.Store.WriteAnalysis(id, doc.Category, result); err != nil {
			slog.Error("persisting analysis result", "category", doc.Category, "error", err)
		}
	}

	report.Summary = r.summarize(ctx, id, report)
	if err := r.Store.WriteSummary(id, report.Summary); err != nil {
		slog.Error("persisting analysis summary", "snapshot", id, "error", err)
	}

	analysisRunDuration.Observe(time.Since(start).Seconds())
	slog.Info("analysis run complete",
		"snapshot", id,
		"categories", len(report.Results),
		"duration", time.Since(start).Round(time.Millisecond))
	return report, nil
}

func (r *Runner) analyzeCategory(ctx context.Context, id string, doc *snapshot.Document) *Result {
	cat := doc.Category
	start := time.Now()

	if doc.IsUnavailable() {
		res := FailedResult(cat, errors.New(errors.ErrCodeCollection, "no data collected"))
		res.Summary = "No data was collected for " + cat.DisplayName() + "."
		analysisCategoryTotal.WithLabelValues(cat.String(), "error").Inc()
		return res
	}

	req := &Request{
		Doc:      doc,
		Client:   r.Client,
		Model:    r.Model,
		Recorder: &storeRecorder{store: r.Store, id: id},
	}

	res, err := Lookup(cat).Analyze(ctx, req)
	analysisCategoryDuration.WithLabelValues(cat.String()).Observe(time.Since(start).Seconds())
	if err != nil {
		slog.Warn("category analysis failed, continuing", "category", cat, "error", err)
		analysisCategoryTotal.WithLabelValues(cat.String(), "error").Inc()
		return FailedResult(cat, err)
	}

	analysisCategoryTotal.WithLabelValues(cat.String(), "success").Inc()
	return res
}

// summarize issues one final call over the per-category summaries. When
// no category produced a summary, or the call fails, a deterministic
// fallback stands in.
func (r *Runner) summarize(ctx context.Context, id string, report *Report) string {
	var lines []string
	for _, res := range report.Results {
		if res.Error != "" {
			continue
		}
		if s := strings.TrimSpace(res.Summary); s != "" {
			lines = append(lines, res.Category+": "+s)
		}
	}
	if len(lines) == 0 {
		return "No analysis could be generated for this snapshot."
	}

	prompt := buildSynthesisPrompt("system configuration", lines, nil)
	start := time.Now()
	response, err := r.Client.Complete(ctx, prompt)
	if r.Store != nil {
		in := &llm.Interaction{
			Category:  "Summary",
			Model:     r.Model,
			Prompt:    prompt,
			Response:  response,
			Timestamp: start.UTC(),
			Duration:  time.Since(start).String(),
		}
		if err != nil {
			in.Error = err.Error()
		}
		if werr := r.Store.WriteInteraction(id, in.Name(), in); werr != nil {
			slog.Error("persisting summary interaction", "snapshot", id, "error", werr)
		}
	}
	if err != nil {
		slog.Warn("snapshot summary synthesis failed, joining category summaries",
			"snapshot", id, "error", err)
		return strings.Join(lines, "\n")
	}
	if s := strings.TrimSpace(response); s != "" {
		return s
	}
	return strings.Join(lines, "\n")
}

func (r *Runner) focused(c category.Category) bool {
	if len(r.Focus) == 0 {
		return true
	}
	for _, f := range r.Focus {
		if f == c {
			return true
		}
	}
	return false
}

// storeRecorder persists interaction records as they happen so a crashed
// run still leaves an audit trail.
type storeRecorder struct {
	store *store.Store
	id    string
}

func (r *storeRecorder) Record(in *llm.Interaction) {
	if err := r.store.WriteInteraction(r.id, in.Name(), in); err != nil {
		slog.Error("persisting llm interaction", "snapshot", r.id, "name", in.Name(), "error", err)
	}
}
