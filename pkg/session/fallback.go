package session

import (
	"errors"

	"github.com/dd0wney/talentgraph/pkg/network"
)

// FallbackReason says why a search was answered with the demo network.
type FallbackReason string

const (
	ReasonNone                 FallbackReason = ""
	ReasonSearchFailed         FallbackReason = "search_failed"
	ReasonNoResults            FallbackReason = "no_results"
	ReasonInsufficientProfiles FallbackReason = "insufficient_profiles"
	ReasonNoConnections        FallbackReason = "no_connections"
)

var advisories = map[FallbackReason]string{
	ReasonSearchFailed:         "Search failed in Torre API. Showing demo data instead.",
	ReasonNoResults:            "No results found. Try a different search term or use the demo data.",
	ReasonInsufficientProfiles: "Not enough profile data found. Showing demo data instead.",
	ReasonNoConnections:        "No connections found between professionals. Showing demo data instead.",
}

// Advisory is the user-facing message for r, empty for ReasonNone.
func (r FallbackReason) Advisory() string {
	return advisories[r]
}

// IsFallback reports whether r names a fallback.
func (r FallbackReason) IsFallback() bool {
	return r != ReasonNone
}

// reasonFor maps a network sufficiency error to its fallback.
func reasonFor(err error) FallbackReason {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, network.ErrTooFewNodes):
		return ReasonInsufficientProfiles
	case errors.Is(err, network.ErrNoConnections):
		return ReasonNoConnections
	default:
		return ReasonSearchFailed
	}
}
