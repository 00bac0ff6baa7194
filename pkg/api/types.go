package api

import (
	"github.com/dd0wney/talentgraph/pkg/network"
	"github.com/dd0wney/talentgraph/pkg/session"
)

// API Request/Response Types

// SearchRequest is the body of both search endpoints.
type SearchRequest struct {
	Query  string `json:"query"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// ProxyErrorResponse is the error envelope of the /api/torre proxy routes.
type ProxyErrorResponse struct {
	Error       string `json:"error"`
	Details     string `json:"details,omitempty"`
	UseFallback bool   `json:"useFallback,omitempty"`
}

// GraphResponse is a filtered view of a session snapshot.
type GraphResponse struct {
	GraphID  string                 `json:"graphId"`
	Origin   network.Origin         `json:"origin"`
	Query    string                 `json:"query"`
	Reason   session.FallbackReason `json:"reason,omitempty"`
	Advisory string                 `json:"advisory,omitempty"`
	Epoch    uint64                 `json:"epoch"`
	Skipped  int                    `json:"skipped"`
	Filter   network.FilterConfig   `json:"filter"`
	Nodes    []network.Node         `json:"nodes"`
	Edges    []network.Edge         `json:"edges"`
}

// Neighbor is one connection of a node in a NodeDetailResponse.
type Neighbor struct {
	Node       network.Node `json:"node"`
	Connection network.Edge `json:"connection"`
}

// NodeDetailResponse describes a node and everything connected to it.
type NodeDetailResponse struct {
	Node      network.Node `json:"node"`
	Degree    int          `json:"degree"`
	Neighbors []Neighbor   `json:"neighbors"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
