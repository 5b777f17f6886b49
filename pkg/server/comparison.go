package server

import (
	"net/http"

	"github.com/mchmarny/winspect/pkg/compare"
	"github.com/mchmarny/winspect/pkg/serializer"
)

// handleCompare handles GET /v1/snapshots/{id}/compare/{other}.
// The path snapshot is the base; {other} is the target.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	base, err := s.deps.Store.Load(r.PathValue("id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	target, err := s.deps.Store.Load(r.PathValue("other"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, compare.Snapshots(base, target, s.config.Version))
}
