package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dd0wney/talentgraph/pkg/network"
	"github.com/dd0wney/talentgraph/pkg/validation"
)

// requestDecoder decodes and validates request bodies.
// It provides a fluent interface for common request handling patterns.
type requestDecoder struct {
	r          *http.Request
	w          http.ResponseWriter
	server     *Server
	err        error
	statusCode int
}

// NewRequestDecoder creates a new request decoder for the given request.
func (s *Server) NewRequestDecoder(w http.ResponseWriter, r *http.Request) *requestDecoder {
	return &requestDecoder{
		r:      r,
		w:      w,
		server: s,
	}
}

// DecodeJSON decodes the request body into the provided struct.
// Returns the decoder for chaining. Check HasError() after calling.
func (rd *requestDecoder) DecodeJSON(v any) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	if err := json.NewDecoder(rd.r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			rd.err = errors.New("request body too large")
			rd.statusCode = http.StatusRequestEntityTooLarge
			return rd
		}
		rd.err = fmt.Errorf("invalid request body: %w", err)
		rd.statusCode = http.StatusBadRequest
	}
	return rd
}

// ValidateSearch validates a search request, trimming its query.
// Returns the decoder for chaining.
func (rd *requestDecoder) ValidateSearch(req *SearchRequest) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	v := validation.SearchRequest{Query: req.Query, Limit: req.Limit, Offset: req.Offset}
	if err := validation.ValidateSearchRequest(&v); err != nil {
		rd.err = err
		rd.statusCode = http.StatusBadRequest
		return rd
	}
	req.Query = v.Query
	return rd
}

// ValidateFilter validates a filter.
// Returns the decoder for chaining.
func (rd *requestDecoder) ValidateFilter(cfg *network.FilterConfig) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	if err := validation.ValidateFilter(cfg); err != nil {
		rd.err = err
		rd.statusCode = http.StatusBadRequest
	}
	return rd
}

// HasError returns true if any error occurred during decoding/validation.
func (rd *requestDecoder) HasError() bool {
	return rd.err != nil
}

// Error returns the error if any occurred.
func (rd *requestDecoder) Error() error {
	return rd.err
}

// RespondError sends the error response and returns true if there was an error.
// Returns false if no error occurred.
func (rd *requestDecoder) RespondError() bool {
	if rd.err == nil {
		return false
	}
	rd.server.respondError(rd.w, rd.statusCode, rd.err.Error())
	return true
}

// filterFromQuery overlays the filter parameters present in q onto base.
func filterFromQuery(base network.FilterConfig, q url.Values) (network.FilterConfig, error) {
	cfg := base
	if v := q.Get("minStrength"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("minStrength: %q is not a number", v)
		}
		cfg.MinStrength = n
	}
	if q.Has("skill") {
		cfg.Skill = q.Get("skill")
	}
	if q.Has("location") {
		cfg.Location = q.Get("location")
	}
	if q.Has("type") {
		ct, err := network.ParseConnectionType(q.Get("type"))
		if err != nil {
			return cfg, err
		}
		cfg.ConnectionType = ct
	}
	if err := validation.ValidateFilter(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// intQuery parses an optional integer query parameter.
func intQuery(q url.Values, key string, def int) (int, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", key, v)
	}
	return n, nil
}
