package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dd0wney/talentgraph/pkg/logging"
	"github.com/dd0wney/talentgraph/pkg/torre"
	"github.com/dd0wney/talentgraph/pkg/validation"
)

// ProxySearchLimit is the page size of a proxied search without a limit.
const ProxySearchLimit = 20

// handleTorreSearch forwards a people search and returns the upstream body
// unchanged. Failures answer 500 with useFallback set so a client can switch
// to demo data.
func (s *Server) handleTorreSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondJSON(w, http.StatusInternalServerError, ProxyErrorResponse{
			Error:       "Failed to search Torre API",
			Details:     "invalid request body: " + err.Error(),
			UseFallback: true,
		})
		return
	}
	if req.Limit <= 0 {
		req.Limit = ProxySearchLimit
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	body, err := s.upstream.SearchRaw(r.Context(), torre.SearchRequest{
		Query:  req.Query,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		s.logger.Warn("torre search failed", logging.Query(req.Query), logging.Error(err))
		s.respondJSON(w, http.StatusInternalServerError, ProxyErrorResponse{
			Error:       "Failed to search Torre API",
			Details:     err.Error(),
			UseFallback: true,
		})
		return
	}
	s.respondRaw(w, http.StatusOK, body)
}

// handleTorreGenome forwards a genome lookup and returns the upstream body
// unchanged.
func (s *Server) handleTorreGenome(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if err := validation.ValidateUsername(username); err != nil {
		s.respondJSON(w, http.StatusBadRequest, ProxyErrorResponse{
			Error:   "Invalid username",
			Details: err.Error(),
		})
		return
	}

	body, err := s.upstream.GenomeRaw(r.Context(), username)
	switch {
	case errors.Is(err, torre.ErrNotFound):
		s.respondJSON(w, http.StatusNotFound, ProxyErrorResponse{Error: "User not found"})
	case err != nil:
		s.logger.Warn("torre genome failed", logging.Username(username), logging.Error(err))
		s.respondJSON(w, http.StatusInternalServerError, ProxyErrorResponse{
			Error:   "Failed to fetch user genome",
			Details: err.Error(),
		})
	default:
		s.respondRaw(w, http.StatusOK, body)
	}
}
