// Package network holds the professional graph: canonical nodes, inferred
// connections, the filter model and the demo fixture used as a fallback.
package network

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NotSpecified is the location recorded for a profile without one.
const NotSpecified = "Not specified"

var (
	// ErrUnknownNode is returned when an edge or lookup references a node
	// that is not part of the snapshot.
	ErrUnknownNode = errors.New("unknown node")
	// ErrDuplicateNode is returned when two nodes share an id.
	ErrDuplicateNode = errors.New("duplicate node id")
	// ErrSelfLoop is returned for an edge whose endpoints are the same node.
	ErrSelfLoop = errors.New("self-loop edge")
	// ErrEmptyID is returned for a node without an id.
	ErrEmptyID = errors.New("node id is empty")
)

// ConnectionType classifies why two professionals are connected.
type ConnectionType string

const (
	ConnectionSkill    ConnectionType = "skill"
	ConnectionCompany  ConnectionType = "company"
	ConnectionLocation ConnectionType = "location"
	// ConnectionAll is only meaningful in a FilterConfig.
	ConnectionAll ConnectionType = "all"
)

// ParseConnectionType parses a filter value. Empty input means ConnectionAll.
func ParseConnectionType(s string) (ConnectionType, error) {
	switch ConnectionType(strings.ToLower(strings.TrimSpace(s))) {
	case "", ConnectionAll:
		return ConnectionAll, nil
	case ConnectionSkill:
		return ConnectionSkill, nil
	case ConnectionCompany:
		return ConnectionCompany, nil
	case ConnectionLocation:
		return ConnectionLocation, nil
	default:
		return "", fmt.Errorf("invalid connection type %q", s)
	}
}

// Node is one professional. X, Y, FX and FY are layout state owned by the
// simulation for the lifetime of the snapshot.
type Node struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Name      string   `json:"name"`
	Picture   string   `json:"picture,omitempty"`
	Skills    []string `json:"skills"`
	Companies []string `json:"companies"`
	Location  string   `json:"location,omitempty"`

	X  float64  `json:"x,omitempty"`
	Y  float64  `json:"y,omitempty"`
	FX *float64 `json:"fx,omitempty"`
	FY *float64 `json:"fy,omitempty"`
}

// HasLocation reports whether the node carries a non-blank location. The
// NotSpecified placeholder counts as a location and matches like any other.
func (n *Node) HasLocation() bool {
	return strings.TrimSpace(n.Location) != ""
}

// Edge is an inferred connection between two professionals.
type Edge struct {
	Source      string         `json:"source"`
	Target      string         `json:"target"`
	Type        ConnectionType `json:"type"`
	Strength    int            `json:"strength"`
	SharedItems []string       `json:"sharedItems"`
}

// Key identifies the unordered endpoint pair.
func (e Edge) Key() string {
	if e.Source < e.Target {
		return e.Source + "|" + e.Target
	}
	return e.Target + "|" + e.Source
}

// Other returns the endpoint opposite id, or "" if id is not an endpoint.
func (e Edge) Other(id string) string {
	switch id {
	case e.Source:
		return e.Target
	case e.Target:
		return e.Source
	default:
		return ""
	}
}

// Touches reports whether id is one of the edge's endpoints.
func (e Edge) Touches(id string) bool {
	return e.Source == id || e.Target == id
}

// Origin records how a snapshot was produced.
type Origin string

const (
	OriginSearch Origin = "search"
	OriginDemo   Origin = "demo"
)

// Graph is one snapshot built from a single search or demo load. It is
// replaced wholesale, never edited.
type Graph struct {
	ID        string    `json:"graphId"`
	Origin    Origin    `json:"origin"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"createdAt"`
	Nodes     []Node    `json:"nodes"`
	Edges     []Edge    `json:"edges"`

	index map[string]int
}

// NewGraph validates nodes and edges and builds a snapshot. Parallel edges
// between a pair are accepted because the demo fixture carries some.
func NewGraph(origin Origin, query string, nodes []Node, edges []Edge) (*Graph, error) {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node %d: %w", i, ErrEmptyID)
		}
		if _, dup := index[n.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
		}
		index[n.ID] = i
	}
	for i, e := range edges {
		if e.Source == e.Target {
			return nil, fmt.Errorf("edge %d: %w: %s", i, ErrSelfLoop, e.Source)
		}
		if _, ok := index[e.Source]; !ok {
			return nil, fmt.Errorf("edge %d source: %w: %s", i, ErrUnknownNode, e.Source)
		}
		if _, ok := index[e.Target]; !ok {
			return nil, fmt.Errorf("edge %d target: %w: %s", i, ErrUnknownNode, e.Target)
		}
	}

	return &Graph{
		ID:        uuid.NewString(),
		Origin:    origin,
		Query:     query,
		CreatedAt: time.Now().UTC(),
		Nodes:     nodes,
		Edges:     edges,
		index:     index,
	}, nil
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// Neighbors returns the edges touching id, in snapshot order.
func (g *Graph) Neighbors(id string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Touches(id) {
			out = append(out, e)
		}
	}
	return out
}

// Degree counts the distinct nodes connected to id.
func (g *Graph) Degree(id string) int {
	seen := make(map[string]struct{})
	for _, e := range g.Edges {
		if other := e.Other(id); other != "" {
			seen[other] = struct{}{}
		}
	}
	return len(seen)
}

// Filter derives the visible subgraph for cfg.
func (g *Graph) Filter(cfg FilterConfig) View {
	return ApplyFilter(g.Nodes, g.Edges, cfg)
}
