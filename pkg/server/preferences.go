package server

import (
	"encoding/json"
	"net/http"

	"github.com/mchmarny/winspect/pkg/serializer"
)

// handleGetSettings handles GET /v1/settings
func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	serializer.RespondJSON(w, http.StatusOK, s.deps.Settings.Get())
}

// handleUpdateSettings handles PUT /v1/settings. The body is a partial
// update: absent fields keep their current values. The API key is
// deliberately excluded from the JSON surface in both directions
// (json:"-" on settings.Settings) — it can only be set through the
// settings file or WINSPECT_API_KEY, and GET never returns it.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	current := s.deps.Settings.Get()

	if err := json.NewDecoder(r.Body).Decode(current); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "INVALID_REQUEST",
			"malformed settings body: "+err.Error(), false, nil)
		return
	}

	if err := s.deps.Settings.Update(current); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, s.deps.Settings.Get())
}

// handleListJobs handles GET /v1/jobs
func (s *Server) handleListJobs(w http.ResponseWriter, _ *http.Request) {
	jobs := s.jobs.list()
	serializer.RespondJSON(w, http.StatusOK, struct {
		Jobs   []*Job `json:"jobs"`
		Count  int    `json:"count"`
		Paused bool   `json:"paused"`
	}{Jobs: jobs, Count: len(jobs), Paused: s.jobs.isPaused()})
}

// handleGetJob handles GET /v1/jobs/{id}
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.jobs.get(r.PathValue("id"))
	if !ok {
		s.writeError(w, r, http.StatusNotFound, "NOT_FOUND",
			"job not found: "+r.PathValue("id"), false, nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, job)
}

// handlePauseJobs handles POST /v1/jobs/pause
func (s *Server) handlePauseJobs(w http.ResponseWriter, _ *http.Request) {
	s.jobs.setPaused(true)
	serializer.RespondJSON(w, http.StatusOK, struct {
		Paused bool `json:"paused"`
	}{Paused: true})
}

// handleResumeJobs handles POST /v1/jobs/resume
func (s *Server) handleResumeJobs(w http.ResponseWriter, _ *http.Request) {
	s.jobs.setPaused(false)
	serializer.RespondJSON(w, http.StatusOK, struct {
		Paused bool `json:"paused"`
	}{Paused: false})
}
