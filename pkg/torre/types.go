package torre

import "github.com/dd0wney/talentgraph/pkg/profile"

// SearchRequest is a people search.
type SearchRequest struct {
	Query  string
	Limit  int
	Offset int
}

// searchBody is the upstream wire shape.
type searchBody struct {
	Query  string `json:"query"`
	Size   int    `json:"size"`
	Offset int    `json:"offset"`
}

// SearchResponse is a decoded search result page.
type SearchResponse struct {
	Results profile.List[profile.Summary] `json:"results"`
	Total   int                           `json:"total"`
}
