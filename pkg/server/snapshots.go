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
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mchmarny/winspect/pkg/category"
	"github.com/mchmarny/winspect/pkg/defaults"
	"github.com/mchmarny/winspect/pkg/serializer"
	"github.com/mchmarny/winspect/pkg/store"
)

// handleListSnapshots handles GET /v1/snapshots
func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.Store.List()
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, struct {
		Snapshots []store.Info `json:"snapshots"`
		Count     int          `json:"count"`
	}{Snapshots: list, Count: len(list)})
}

// handleCreateSnapshot handles POST /v1/snapshots
func (s *Server) handleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.deps.Snapshotter == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE",
			"snapshot capture is not available on this host", false, nil)
		return
	}

	var req struct {
		Description string `json:"description"`
	}
	if err := decodeOptionalJSON(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), false, nil)
		return
	}

	// Capture can take up to defaults.SnapshotTimeout, well past the
	// server's write timeout; extend the connection deadline so the
	// response still reaches the client.
	if err := http.NewResponseController(w).SetWriteDeadline(
		time.Now().Add(defaults.SnapshotTimeout + s.config.WriteTimeout)); err != nil {
		slog.Debug("unable to extend write deadline", "error", err)
	}

	id, err := s.deps.Snapshotter.Run(r.Context(), req.Description)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusCreated, struct {
		ID string `json:"id"`
	}{ID: id})
}

// handleLatestSnapshot handles GET /v1/snapshots/latest
func (s *Server) handleLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	info, err := s.deps.Store.Latest()
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, info)
}

// handleGetSnapshot handles GET /v1/snapshots/{id}
func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.deps.Store.Load(r.PathValue("id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, snap)
}

// handleDeleteSnapshot handles DELETE /v1/snapshots/{id}
func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Store.Delete(r.PathValue("id")); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListFiles handles GET /v1/snapshots/{id}/files
func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.deps.Store.Files(r.PathValue("id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, struct {
		Files []store.FileInfo `json:"files"`
		Count int              `json:"count"`
	}{Files: files, Count: len(files)})
}

// handleGetFile handles GET /v1/snapshots/{id}/files/{name...}
func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	raw, err := s.deps.Store.ReadFile(r.PathValue("id"), name)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	contentType := "text/plain; charset=utf-8"
	if strings.HasSuffix(name, ".json") {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// handleGetCategory handles GET /v1/snapshots/{id}/categories/{category}
func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	c, ok := category.Parse(r.PathValue("category"))
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "INVALID_REQUEST",
			"unknown category: "+r.PathValue("category"), false,
			map[string]any{"valid": category.Names()})
		return
	}

	doc, err := s.deps.Store.ReadDocument(r.PathValue("id"), c)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, doc)
}

// decodeOptionalJSON decodes the request body into v; an empty body is
// fine.
func decodeOptionalJSON(r *http.Request, v any) error {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}
