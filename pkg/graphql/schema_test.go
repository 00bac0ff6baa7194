package graphql

import (
	"context"
	"strings"
	"testing"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/talentgraph/pkg/network"
	"github.com/dd0wney/talentgraph/pkg/session"
)

func demoSchema(t *testing.T) (graphql.Schema, *session.Session) {
	t.Helper()
	sess := session.New(nil)
	if _, err := sess.LoadDemo(); err != nil {
		t.Fatalf("LoadDemo() error = %v", err)
	}
	schema, err := NewSchema(func(context.Context) *session.Session { return sess })
	if err != nil {
		t.Fatalf("NewSchema() error = %v", err)
	}
	return schema, sess
}

func networkData(t *testing.T, result *graphql.Result) map[string]interface{} {
	t.Helper()
	if result.HasErrors() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	data, ok := result.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data %T", result.Data)
	}
	n, ok := data["network"].(map[string]interface{})
	if !ok {
		t.Fatalf("network missing from %v", data)
	}
	return n
}

func TestNewSchemaRequiresResolver(t *testing.T) {
	if _, err := NewSchema(nil); err == nil {
		t.Fatal("expected error for nil session resolver")
	}
}

func TestNetworkQuery(t *testing.T) {
	schema, _ := demoSchema(t)

	result := Execute(context.Background(), schema,
		`{ network { graphId origin query advisory nodes { id name degree } edges { source target type strength } } }`,
		nil, "", DefaultMaxDepth)
	n := networkData(t, result)

	if n["origin"] != string(network.OriginDemo) {
		t.Errorf("origin = %v, want %s", n["origin"], network.OriginDemo)
	}
	if n["query"] != network.DemoQuery {
		t.Errorf("query = %v, want %s", n["query"], network.DemoQuery)
	}
	if n["graphId"] == "" || n["graphId"] == nil {
		t.Error("graphId should be set")
	}
	if got := len(n["nodes"].([]interface{})); got != 10 {
		t.Errorf("nodes = %d, want 10", got)
	}
	if got := len(n["edges"].([]interface{})); got != 17 {
		t.Errorf("edges = %d, want 17", got)
	}
}

func TestNetworkQueryArguments(t *testing.T) {
	schema, sess := demoSchema(t)

	tests := []struct {
		name  string
		query string
		edges int
	}{
		{"min strength", `{ network(minStrength: 6) { edges { source } } }`, 2},
		{"company", `{ network(type: "company") { edges { source } } }`, 4},
		{"company and strength", `{ network(type: "company", minStrength: 3) { edges { source } } }`, 2},
		{"no arguments", `{ network { edges { source } } }`, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := networkData(t, Execute(context.Background(), schema, tt.query, nil, "", DefaultMaxDepth))
			if got := len(n["edges"].([]interface{})); got != tt.edges {
				t.Errorf("edges = %d, want %d", got, tt.edges)
			}
		})
	}

	if sess.Filter() != network.DefaultFilterConfig() {
		t.Errorf("arguments must not change the session filter, got %+v", sess.Filter())
	}
}

func TestNetworkQueryUsesSessionFilter(t *testing.T) {
	schema, sess := demoSchema(t)
	cfg := network.DefaultFilterConfig()
	cfg.MinStrength = 5
	if err := sess.SetFilter(cfg); err != nil {
		t.Fatalf("SetFilter() error = %v", err)
	}

	n := networkData(t, Execute(context.Background(), schema, `{ network { edges { strength } } }`, nil, "", DefaultMaxDepth))
	for _, e := range n["edges"].([]interface{}) {
		if s := e.(map[string]interface{})["strength"].(int); s < 5 {
			t.Errorf("edge with strength %d passed the session filter", s)
		}
	}
}

func TestNetworkQueryInvalidArguments(t *testing.T) {
	schema, _ := demoSchema(t)

	for _, q := range []string{
		`{ network(minStrength: 0) { graphId } }`,
		`{ network(type: "friendship") { graphId } }`,
	} {
		result := Execute(context.Background(), schema, q, nil, "", DefaultMaxDepth)
		if !result.HasErrors() {
			t.Errorf("expected error for %s", q)
		}
	}
}

func TestNodeQuery(t *testing.T) {
	schema, _ := demoSchema(t)

	result := Execute(context.Background(), schema,
		`query($id: ID!) { node(id: $id) { id username name location degree skills } }`,
		map[string]interface{}{"id": "demo1"}, "", DefaultMaxDepth)
	if result.HasErrors() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	node := result.Data.(map[string]interface{})["node"].(map[string]interface{})
	if node["username"] != "sarah_dev" {
		t.Errorf("username = %v, want sarah_dev", node["username"])
	}
	if node["degree"] != 5 {
		t.Errorf("degree = %v, want 5", node["degree"])
	}
	if got := len(node["skills"].([]interface{})); got != 8 {
		t.Errorf("skills = %d, want 8", got)
	}
}

func TestNodeQueryUnknown(t *testing.T) {
	schema, _ := demoSchema(t)

	result := Execute(context.Background(), schema, `{ node(id: "nobody") { id } }`, nil, "", DefaultMaxDepth)
	if result.HasErrors() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if node := result.Data.(map[string]interface{})["node"]; node != nil {
		t.Errorf("node = %v, want nil", node)
	}
}

func TestNetworkQueryWithoutSnapshot(t *testing.T) {
	sess := session.New(nil)
	schema, err := NewSchema(func(context.Context) *session.Session { return sess })
	if err != nil {
		t.Fatalf("NewSchema() error = %v", err)
	}

	result := Execute(context.Background(), schema, `{ network { graphId } }`, nil, "", DefaultMaxDepth)
	if !result.HasErrors() {
		t.Fatal("expected error when no snapshot is loaded")
	}
	if !strings.Contains(result.Errors[0].Message, session.ErrNoSnapshot.Error()) {
		t.Errorf("error = %q", result.Errors[0].Message)
	}
}

func TestHealthQuery(t *testing.T) {
	schema, _ := demoSchema(t)

	result := Execute(context.Background(), schema, `{ health }`, nil, "", DefaultMaxDepth)
	if result.HasErrors() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if got := result.Data.(map[string]interface{})["health"]; got != "ok" {
		t.Errorf("health = %v, want ok", got)
	}
}
