package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dd0wney/talentgraph/pkg/network"
	"github.com/dd0wney/talentgraph/pkg/session"
	"github.com/dd0wney/talentgraph/pkg/validation"
	"github.com/dd0wney/talentgraph/pkg/visualization"
)

// DefaultLayoutSteps is the tick count of a layout request without steps.
const DefaultLayoutSteps = 300

// handleNetworkSearch runs the search pipeline for the session. A failed or
// thin search still answers 200 with the demo network and an advisory.
func (s *Server) handleNetworkSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	dec := s.NewRequestDecoder(w, r).DecodeJSON(&req).ValidateSearch(&req)
	if dec.RespondError() {
		return
	}

	sess := s.sessionFor(r)
	if _, err := sess.Search(r.Context(), req.Query); err != nil {
		switch {
		case errors.Is(err, session.ErrSuperseded):
			s.respondError(w, http.StatusConflict, "Search superseded by a newer request")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			s.respondError(w, http.StatusServiceUnavailable, "Search cancelled")
		default:
			s.respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	snap := sess.Snapshot()
	s.respondJSON(w, http.StatusOK, graphResponse(snap, snap.Filter))
}

// handleNetworkDemo installs the demo network.
func (s *Server) handleNetworkDemo(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(r)
	if _, err := sess.LoadDemo(); err != nil {
		s.respondError(w, http.StatusConflict, "Demo load superseded by a newer request")
		return
	}
	snap := sess.Snapshot()
	s.respondJSON(w, http.StatusOK, graphResponse(snap, snap.Filter))
}

// handleGetNetwork returns the current view. Filter query parameters apply
// to this read only.
func (s *Server) handleGetNetwork(w http.ResponseWriter, r *http.Request) {
	snap := s.sessionFor(r).Snapshot()
	cfg, err := filterFromQuery(snap.Filter, r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, graphResponse(snap, cfg))
}

// handleSetFilter stores the session filter. Omitted fields take their
// defaults.
func (s *Server) handleSetFilter(w http.ResponseWriter, r *http.Request) {
	cfg := network.DefaultFilterConfig()
	dec := s.NewRequestDecoder(w, r).DecodeJSON(&cfg)
	if dec.RespondError() {
		return
	}

	sess := s.sessionFor(r)
	if err := sess.SetFilter(cfg); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	snap := sess.Snapshot()
	s.respondJSON(w, http.StatusOK, graphResponse(snap, snap.Filter))
}

// handleResetFilter restores the default filter.
func (s *Server) handleResetFilter(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(r)
	sess.ResetFilter()
	snap := sess.Snapshot()
	s.respondJSON(w, http.StatusOK, graphResponse(snap, snap.Filter))
}

// handleLayout lays out the current view headlessly and returns node
// positions with the links.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	steps, err := intQuery(q, "steps", DefaultLayoutSteps)
	if err == nil {
		err = validation.ValidateLayoutSteps(steps)
	}
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := s.sessionFor(r).Snapshot()
	cfg, err := filterFromQuery(snap.Filter, q)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	view := snap.View()
	if snap.Graph != nil {
		view = snap.Graph.Filter(cfg)
	}

	start := time.Now()
	viz, err := visualization.RunHeadless(view, s.cfg.Layout, steps,
		visualization.WithObserver(s.metricsRegistry.ObserveSimulationStep))
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Layout failed")
		return
	}
	s.metricsRegistry.RecordLayout(time.Since(start))

	body, err := viz.ExportJSON()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Layout export failed")
		return
	}
	s.respondRaw(w, http.StatusOK, body)
}

// handleNode returns a node of the full snapshot with its connections.
func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	g, err := s.sessionFor(r).Graph()
	if err != nil {
		s.respondError(w, http.StatusNotFound, "No network loaded")
		return
	}

	id := chi.URLParam(r, "id")
	n, ok := g.Node(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "Node not found")
		return
	}

	resp := NodeDetailResponse{
		Node:      n,
		Degree:    g.Degree(id),
		Neighbors: []Neighbor{},
	}
	for _, e := range g.Neighbors(id) {
		other, _ := g.Node(e.Other(id))
		resp.Neighbors = append(resp.Neighbors, Neighbor{Node: other, Connection: e})
	}
	s.respondJSON(w, http.StatusOK, resp)
}
