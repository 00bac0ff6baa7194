package network

import (
	"errors"
	"testing"
)

func TestParseConnectionType(t *testing.T) {
	tests := []struct {
		in      string
		want    ConnectionType
		wantErr bool
	}{
		{"", ConnectionAll, false},
		{"all", ConnectionAll, false},
		{" Skill ", ConnectionSkill, false},
		{"COMPANY", ConnectionCompany, false},
		{"location", ConnectionLocation, false},
		{"friendship", "", true},
	}
	for _, tt := range tests {
		got, err := ParseConnectionType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseConnectionType(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseConnectionType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewGraphValidation(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}}

	tests := []struct {
		name  string
		nodes []Node
		edges []Edge
		want  error
	}{
		{"empty id", []Node{{ID: ""}}, nil, ErrEmptyID},
		{"duplicate node", []Node{{ID: "a"}, {ID: "a"}}, nil, ErrDuplicateNode},
		{"self loop", nodes, []Edge{{Source: "a", Target: "a", Strength: 1}}, ErrSelfLoop},
		{"unknown target", nodes, []Edge{{Source: "a", Target: "z", Strength: 1}}, ErrUnknownNode},
		{"valid", nodes, []Edge{{Source: "a", Target: "b", Strength: 1}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGraph(OriginSearch, "q", tt.nodes, tt.edges)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if err == nil && g.ID == "" {
				t.Error("expected a snapshot id")
			}
		})
	}
}

func TestGraphNeighborsAndDegree(t *testing.T) {
	g := DemoGraph()

	if got := g.Degree("demo1"); got != 5 {
		t.Errorf("Degree(demo1) = %d, want 5", got)
	}
	// demo1 has six incident edges because the fixture lists demo1/demo9 twice
	if got := len(g.Neighbors("demo1")); got != 6 {
		t.Errorf("len(Neighbors(demo1)) = %d, want 6", got)
	}
	if got := g.Degree("nobody"); got != 0 {
		t.Errorf("Degree(nobody) = %d, want 0", got)
	}
	if _, ok := g.Node("nobody"); ok {
		t.Error("expected missing node")
	}
}

func TestEdgeHelpers(t *testing.T) {
	e := Edge{Source: "b", Target: "a"}
	if e.Key() != "a|b" {
		t.Errorf("Key() = %s", e.Key())
	}
	if e.Other("a") != "b" || e.Other("b") != "a" || e.Other("c") != "" {
		t.Error("Other() returned the wrong endpoint")
	}
	if !e.Touches("a") || e.Touches("c") {
		t.Error("Touches() mismatch")
	}
}

func TestHasLocation(t *testing.T) {
	for loc, want := range map[string]bool{
		"":           false,
		"  ":         false,
		NotSpecified: true,
		"Lisbon":     true,
	} {
		n := Node{Location: loc}
		if n.HasLocation() != want {
			t.Errorf("HasLocation(%q) = %v, want %v", loc, !want, want)
		}
	}
}
