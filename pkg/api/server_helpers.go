package api

import (
	"encoding/json"
	"net/http"

	"github.com/dd0wney/talentgraph/pkg/logging"
	"github.com/dd0wney/talentgraph/pkg/network"
	"github.com/dd0wney/talentgraph/pkg/session"
)

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("error encoding JSON response", logging.Error(err))
	}
}

func (s *Server) respondRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		s.logger.Error("error writing response", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}
	s.respondJSON(w, status, response)
}

// sessionFor returns the session selected by the request.
func (s *Server) sessionFor(r *http.Request) *session.Session {
	return s.sessions.Get(session.MustIDFromContext(r.Context()))
}

// graphResponse renders snap filtered by cfg.
func graphResponse(snap session.Snapshot, cfg network.FilterConfig) GraphResponse {
	resp := GraphResponse{
		Reason:   snap.Reason,
		Advisory: snap.Advisory,
		Epoch:    snap.Epoch,
		Skipped:  snap.Skipped,
		Filter:   cfg,
		Nodes:    []network.Node{},
		Edges:    []network.Edge{},
	}
	if snap.Graph == nil {
		return resp
	}
	view := snap.Graph.Filter(cfg)
	resp.GraphID = snap.Graph.ID
	resp.Origin = snap.Graph.Origin
	resp.Query = snap.Graph.Query
	resp.Nodes = view.Nodes
	resp.Edges = view.Edges
	return resp
}
