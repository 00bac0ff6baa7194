package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/dd0wney/talentgraph/pkg/api/middleware"
	"github.com/dd0wney/talentgraph/pkg/network"
	"github.com/dd0wney/talentgraph/pkg/session"
	"github.com/dd0wney/talentgraph/pkg/torre"
)

// brokenUpstream fails every genome fetch.
type brokenUpstream struct {
	Upstream
}

func (b *brokenUpstream) GenomeRaw(ctx context.Context, username string) ([]byte, error) {
	return nil, errors.New("connection reset")
}

func TestGetNetworkServesDemoByDefault(t *testing.T) {
	_, h := setupTestServer(t, &fakeTorre{})

	rr := doRequest(t, h, http.MethodGet, "/api/network", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	resp := decode[GraphResponse](t, rr)
	if resp.Origin != network.OriginDemo {
		t.Errorf("origin = %q, want demo", resp.Origin)
	}
	if len(resp.Nodes) != 10 || len(resp.Edges) != 17 {
		t.Errorf("got %d nodes / %d edges, want 10 / 17", len(resp.Nodes), len(resp.Edges))
	}
	if resp.Advisory != "" {
		t.Errorf("advisory = %q, want none", resp.Advisory)
	}
}

func TestGetNetworkQueryOverrides(t *testing.T) {
	_, h := setupTestServer(t, &fakeTorre{})

	tests := []struct {
		name   string
		query  string
		status int
		edges  int
	}{
		{"strength", "?minStrength=6", http.StatusOK, 2},
		{"type", "?type=company", http.StatusOK, 4},
		{"bad strength", "?minStrength=zero", http.StatusBadRequest, 0},
		{"bad type", "?type=friends", http.StatusBadRequest, 0},
		{"strength below one", "?minStrength=0", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, h, http.MethodGet, "/api/network"+tt.query, nil)
			if rr.Code != tt.status {
				t.Fatalf("status = %d, want %d", rr.Code, tt.status)
			}
			if tt.status != http.StatusOK {
				return
			}
			if resp := decode[GraphResponse](t, rr); len(resp.Edges) != tt.edges {
				t.Errorf("edges = %d, want %d", len(resp.Edges), tt.edges)
			}
		})
	}

	// overrides are not stored
	resp := decode[GraphResponse](t, doRequest(t, h, http.MethodGet, "/api/network", nil))
	if len(resp.Edges) != 17 {
		t.Errorf("edges after overrides = %d, want 17", len(resp.Edges))
	}
}

func TestNetworkSearchLive(t *testing.T) {
	_, h := setupTestServer(t, &fakeTorre{})

	rr := doRequest(t, h, http.MethodPost, "/api/network/search", SearchRequest{Query: "  golang "})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	resp := decode[GraphResponse](t, rr)
	if resp.Origin != network.OriginSearch {
		t.Errorf("origin = %q, want search", resp.Origin)
	}
	if resp.Query != "golang" {
		t.Errorf("query = %q, want golang", resp.Query)
	}
	if len(resp.Nodes) != 3 || len(resp.Edges) != 3 {
		t.Errorf("got %d nodes / %d edges, want 3 / 3", len(resp.Nodes), len(resp.Edges))
	}
	if resp.GraphID == "" {
		t.Error("graphId should be set")
	}

	// the snapshot is kept for later reads
	again := decode[GraphResponse](t, doRequest(t, h, http.MethodGet, "/api/network", nil))
	if again.GraphID != resp.GraphID {
		t.Errorf("graphId = %q, want %q", again.GraphID, resp.GraphID)
	}
}

func TestNetworkSearchFallback(t *testing.T) {
	tests := []struct {
		name     string
		upstream *fakeTorre
		reason   session.FallbackReason
	}{
		{"search failed", &fakeTorre{searchStatus: http.StatusInternalServerError}, session.ReasonSearchFailed},
		{"no results", &fakeTorre{searchBody: `{"total":0,"results":[]}`}, session.ReasonNoResults},
		{"insufficient", &fakeTorre{searchBody: `{"results":[{"username":"ana"},{"username":"ghost"}]}`}, session.ReasonInsufficientProfiles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := setupTestServer(t, tt.upstream)

			rr := doRequest(t, h, http.MethodPost, "/api/network/search", SearchRequest{Query: "go"})
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rr.Code)
			}
			resp := decode[GraphResponse](t, rr)
			if resp.Reason != tt.reason {
				t.Errorf("reason = %q, want %q", resp.Reason, tt.reason)
			}
			if resp.Advisory != tt.reason.Advisory() {
				t.Errorf("advisory = %q", resp.Advisory)
			}
			if resp.Origin != network.OriginDemo || len(resp.Nodes) != 10 {
				t.Errorf("expected demo network, got %s with %d nodes", resp.Origin, len(resp.Nodes))
			}
		})
	}
}

func TestNetworkSearchValidation(t *testing.T) {
	_, h := setupTestServer(t, &fakeTorre{})

	for _, body := range []any{"{broken", SearchRequest{Query: "   "}} {
		rr := doRequest(t, h, http.MethodPost, "/api/network/search", body)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("body %v: status = %d, want 400", body, rr.Code)
		}
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	_, h := setupTestServer(t, &fakeTorre{})

	rr := doRequest(t, h, http.MethodPost, "/api/network/search", SearchRequest{Query: "go"},
		middleware.SessionIDHeader, "viewer-a")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	a := decode[GraphResponse](t, doRequest(t, h, http.MethodGet, "/api/network", nil, middleware.SessionIDHeader, "viewer-a"))
	b := decode[GraphResponse](t, doRequest(t, h, http.MethodGet, "/api/network", nil, middleware.SessionIDHeader, "viewer-b"))
	if a.Origin != network.OriginSearch {
		t.Errorf("viewer-a origin = %q, want search", a.Origin)
	}
	if b.Origin != network.OriginDemo {
		t.Errorf("viewer-b origin = %q, want demo", b.Origin)
	}
}

func TestNetworkDemoResets(t *testing.T) {
	_, h := setupTestServer(t, &fakeTorre{searchStatus: http.StatusInternalServerError})

	doRequest(t, h, http.MethodPost, "/api/network/search", SearchRequest{Query: "go"})
	rr := doRequest(t, h, http.MethodPost, "/api/network/demo", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	resp := decode[GraphResponse](t, rr)
	if resp.Advisory != "" || resp.Reason != session.ReasonNone {
		t.Errorf("demo load should clear the advisory, got %q", resp.Advisory)
	}
}

func TestFilterEndpoints(t *testing.T) {
	_, h := setupTestServer(t, &fakeTorre{})

	rr := doRequest(t, h, http.MethodPut, "/api/network/filter", map[string]any{"minStrength": 5, "connectionType": "skill"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	resp := decode[GraphResponse](t, rr)
	for _, e := range resp.Edges {
		if e.Strength < 5 || e.Type != network.ConnectionSkill {
			t.Errorf("edge %s-%s (%s, %d) passed the filter", e.Source, e.Target, e.Type, e.Strength)
		}
	}
	if resp.Filter.MinStrength != 5 {
		t.Errorf("filter = %+v", resp.Filter)
	}

	stored := decode[GraphResponse](t, doRequest(t, h, http.MethodGet, "/api/network", nil))
	if len(stored.Edges) != len(resp.Edges) {
		t.Errorf("stored filter not applied: %d edges, want %d", len(stored.Edges), len(resp.Edges))
	}

	if rr := doRequest(t, h, http.MethodPut, "/api/network/filter", map[string]any{"minStrength": 0}); rr.Code != http.StatusBadRequest {
		t.Errorf("invalid filter status = %d, want 400", rr.Code)
	}
	if rr := doRequest(t, h, http.MethodPut, "/api/network/filter", map[string]any{"connectionType": "friends"}); rr.Code != http.StatusBadRequest {
		t.Errorf("invalid type status = %d, want 400", rr.Code)
	}

	reset := decode[GraphResponse](t, doRequest(t, h, http.MethodDelete, "/api/network/filter", nil))
	if len(reset.Edges) != 17 {
		t.Errorf("edges after reset = %d, want 17", len(reset.Edges))
	}
}

func TestLayoutEndpoint(t *testing.T) {
	_, h := setupTestServer(t, &fakeTorre{})

	rr := doRequest(t, h, http.MethodGet, "/api/network/layout?steps=50", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Nodes []struct {
			ID string  `json:"id"`
			X  float64 `json:"x"`
			Y  float64 `json:"y"`
		} `json:"nodes"`
		Links []json.RawMessage `json:"links"`
		Steps int               `json:"steps"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Nodes) != 10 || len(resp.Links) != 17 {
		t.Errorf("got %d nodes / %d links", len(resp.Nodes), len(resp.Links))
	}
	if resp.Steps != 50 {
		t.Errorf("steps = %d, want 50", resp.Steps)
	}
	moved := false
	for _, n := range resp.Nodes {
		if n.X != 0 || n.Y != 0 {
			moved = true
		}
	}
	if !moved {
		t.Error("expected laid out positions")
	}

	for _, q := range []string{"?steps=0", "?steps=5000", "?steps=many"} {
		if rr := doRequest(t, h, http.MethodGet, "/api/network/layout"+q, nil); rr.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", q, rr.Code)
		}
	}
}

func TestNodeEndpoint(t *testing.T) {
	_, h := setupTestServer(t, &fakeTorre{})

	rr := doRequest(t, h, http.MethodGet, "/api/network/nodes/demo1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	resp := decode[NodeDetailResponse](t, rr)
	if resp.Node.Username != "sarah_dev" {
		t.Errorf("username = %q", resp.Node.Username)
	}
	if resp.Degree != 5 {
		t.Errorf("degree = %d, want 5", resp.Degree)
	}
	if len(resp.Neighbors) != 6 {
		t.Errorf("neighbors = %d, want 6", len(resp.Neighbors))
	}
	for _, n := range resp.Neighbors {
		if n.Node.ID == "" || n.Node.ID == "demo1" {
			t.Errorf("bad neighbor %+v", n.Node)
		}
	}

	if rr := doRequest(t, h, http.MethodGet, "/api/network/nodes/ghost", nil); rr.Code != http.StatusNotFound {
		t.Errorf("unknown node status = %d, want 404", rr.Code)
	}
}

func TestGraphQLEndpointUsesSession(t *testing.T) {
	_, h := setupTestServer(t, &fakeTorre{})

	doRequest(t, h, http.MethodPost, "/api/network/search", SearchRequest{Query: "go"}, middleware.SessionIDHeader, "gql")

	rr := doRequest(t, h, http.MethodPost, "/graphql",
		map[string]any{"query": `{ network { origin nodes { id } } }`},
		middleware.SessionIDHeader, "gql")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var resp struct {
		Data struct {
			Network struct {
				Origin string `json:"origin"`
				Nodes  []struct {
					ID string `json:"id"`
				} `json:"nodes"`
			} `json:"network"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Network.Origin != string(network.OriginSearch) || len(resp.Data.Network.Nodes) != 3 {
		t.Errorf("unexpected network %+v", resp.Data.Network)
	}
}

var _ Upstream = (*torre.Client)(nil)
