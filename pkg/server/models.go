package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"

	"github.com/mchmarny/winspect/pkg/errors"
	"github.com/mchmarny/winspect/pkg/serializer"
)

// handleListModels handles GET /v1/models, querying the configured
// inference server.
func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	cfg := s.deps.Settings.Get()

	client, err := s.llmClient()
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	models, err := client.ListModels(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, struct {
		ServerURL string   `json:"serverUrl"`
		Models    []string `json:"models"`
		Count     int      `json:"count"`
	}{ServerURL: cfg.ServerURL, Models: models, Count: len(models)})
}

// handleSelectModel handles PUT /v1/models, switching the model used
// for subsequent analysis runs. The choice is checked against the
// inference server's model list when that list is reachable.
func (s *Server) handleSelectModel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Model string `json:"model"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeDomainError(w, r, errors.New(errors.ErrCodeInvalidRequest, "invalid request body"))
		return
	}
	if req.Model == "" {
		s.writeDomainError(w, r, errors.New(errors.ErrCodeInvalidRequest, "model is required"))
		return
	}

	cfg := s.deps.Settings.Get()

	client, err := s.llmClient()
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	// An unreachable server should not block switching models; the
	// choice only matters once analysis runs.
	if models, err := client.ListModels(r.Context()); err == nil {
		if !slices.Contains(models, req.Model) {
			s.writeDomainError(w, r, errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("model %q not available on the inference server", req.Model)))
			return
		}
	}

	cfg.Model = req.Model
	if err := s.deps.Settings.Update(cfg); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	// Force a fresh model list on the next read.
	client.InvalidateModels()

	serializer.RespondJSON(w, http.StatusOK, struct {
		Model string `json:"model"`
	}{Model: req.Model})
}
