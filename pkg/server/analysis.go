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

package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mchmarny/winspect/pkg/analyzer"
	"github.com/mchmarny/winspect/pkg/category"
	"github.com/mchmarny/winspect/pkg/errors"
	"github.com/mchmarny/winspect/pkg/llm"
	"github.com/mchmarny/winspect/pkg/serializer"
)

// handleStartAnalysis handles POST /v1/snapshots/{id}/analysis.
// Analysis runs in the background; the response is the tracking job.
func (s *Server) handleStartAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.jobs.isPaused() {
		s.writeError(w, r, http.StatusServiceUnavailable, errCodeJobsPaused,
			"analysis jobs are paused", true, nil)
		return
	}

	id := r.PathValue("id")
	if !s.deps.Store.Exists(id) {
		s.writeError(w, r, http.StatusNotFound, "NOT_FOUND",
			"snapshot not found: "+id, false, nil)
		return
	}

	var req struct {
		Model string   `json:"model"`
		Focus []string `json:"focus"`
	}
	if err := decodeOptionalJSON(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), false, nil)
		return
	}

	focus := make([]category.Category, 0, len(req.Focus))
	for _, f := range req.Focus {
		c, ok := category.Parse(f)
		if !ok {
			s.writeError(w, r, http.StatusBadRequest, "INVALID_REQUEST",
				"unknown category: "+f, false, map[string]any{"valid": category.Names()})
			return
		}
		focus = append(focus, c)
	}

	cfg := s.deps.Settings.Get()
	model := req.Model
	if model == "" {
		model = cfg.Model
	}

	// A per-request model override gets its own client so it cannot
	// switch the shared client's model under a concurrent run.
	var client Client
	var err error
	if model == cfg.Model {
		client, err = s.llmClient()
	} else {
		client, err = s.deps.NewClient(llm.Config{
			ServerURL:   cfg.ServerURL,
			APIKey:      cfg.APIKey,
			Model:       model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		})
	}
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	job, ok := s.jobs.start(id)
	if !ok {
		s.writeError(w, r, http.StatusConflict, errCodeConflict,
			"analysis already running for snapshot "+id, true,
			map[string]any{"jobId": job.ID})
		return
	}

	runner := &analyzer.Runner{
		Store:   s.deps.Store,
		Client:  client,
		Model:   model,
		Focus:   focus,
		Version: s.config.Version,
	}

	// Detach from the request context; the job outlives the request.
	go func() {
		_, err := runner.Run(context.Background(), id)
		s.jobs.finish(job.ID, err)
	}()

	serializer.RespondJSON(w, http.StatusAccepted, job)
}

// handleGetAnalysis handles GET /v1/snapshots/{id}/analysis
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	cats, err := s.deps.Store.AnalyzedCategories(id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if len(cats) == 0 {
		s.writeError(w, r, http.StatusNotFound, "NOT_FOUND",
			"no analysis found for snapshot "+id, false, nil)
		return
	}

	results := make(map[string]json.RawMessage, len(cats))
	for _, c := range cats {
		raw, err := s.deps.Store.ReadAnalysis(id, c)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		results[c.String()] = raw
	}

	summary, err := s.deps.Store.ReadSummary(id)
	if err != nil && !errors.IsNotFound(err) {
		s.writeDomainError(w, r, err)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, struct {
		SnapshotID string                     `json:"snapshotId"`
		Results    map[string]json.RawMessage `json:"results"`
		Summary    string                     `json:"summary,omitempty"`
	}{SnapshotID: id, Results: results, Summary: summary})
}
