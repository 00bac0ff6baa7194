package session

import (
	"context"

	"github.com/dd0wney/talentgraph/pkg/logging"
	"github.com/dd0wney/talentgraph/pkg/network"
	"github.com/dd0wney/talentgraph/pkg/profile"
	"github.com/dd0wney/talentgraph/pkg/torre"
)

const (
	// MaxCandidates is how many search results are turned into profiles.
	MaxCandidates = 12
	// SearchLimit is the page size requested from the search API.
	SearchLimit = 15
)

// Upstream is the subset of the Torre client the pipeline needs.
type Upstream interface {
	Search(ctx context.Context, req torre.SearchRequest) (*torre.SearchResponse, error)
	Genome(ctx context.Context, username string) (*profile.Genome, error)
}

// batch is the outcome of fetching and normalizing one result page.
type batch struct {
	nodes   []network.Node
	skipped int
}

// collect fetches genomes one at a time, in result order, waiting on the gate
// before each request. Failed or unusable profiles are skipped. It returns
// early with ctx.Err() on cancellation, or ErrSuperseded once stale reports
// true.
func (s *Session) collect(ctx context.Context, results []profile.Summary, stale func() bool) (batch, error) {
	if len(results) > MaxCandidates {
		results = results[:MaxCandidates]
	}

	b := batch{nodes: make([]network.Node, 0, len(results))}
	seen := make(map[string]struct{}, len(results))

	for _, summary := range results {
		username := summary.Identifier()
		if username == "" {
			b.skipped++
			s.recordFetch("skipped")
			continue
		}
		// only profiles that made it into the batch count as seen, so a
		// repeated entry gets another attempt after a failed fetch
		if _, dup := seen[username]; dup {
			continue
		}

		if err := s.gate.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return b, ctxErr
			}
			return b, err
		}
		if stale() {
			return b, ErrSuperseded
		}

		genome, err := s.upstream.Genome(ctx, username)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return b, ctxErr
			}
			s.logger.Warn("profile fetch failed", logging.Username(username), logging.Error(err))
			b.skipped++
			s.recordFetch("error")
			continue
		}

		node, err := profile.Normalize(summary, genome)
		if err != nil {
			if !profile.IsSkip(err) {
				s.logger.Warn("profile normalization failed", logging.Username(username), logging.Error(err))
			}
			b.skipped++
			s.recordFetch("skipped")
			continue
		}
		seen[username] = struct{}{}
		b.nodes = append(b.nodes, node)
		s.recordFetch("ok")
	}
	return b, nil
}

// build turns a search into a snapshot, or names the fallback that applies.
// Only cancellation and supersession are returned as errors.
func (s *Session) build(ctx context.Context, query string, stale func() bool) (*network.Graph, FallbackReason, int, error) {
	resp, err := s.upstream.Search(ctx, torre.SearchRequest{Query: query, Limit: SearchLimit})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ReasonNone, 0, ctxErr
		}
		s.logger.Warn("search failed", logging.Query(query), logging.Error(err))
		return nil, ReasonSearchFailed, 0, nil
	}
	if len(resp.Results) == 0 {
		return nil, ReasonNoResults, 0, nil
	}

	b, err := s.collect(ctx, resp.Results, stale)
	if err != nil {
		return nil, ReasonNone, b.skipped, err
	}

	edges := network.InferEdges(b.nodes)
	if s.metrics != nil {
		s.metrics.RecordInference(len(edges))
	}
	if err := network.Sufficient(b.nodes, edges); err != nil {
		return nil, reasonFor(err), b.skipped, nil
	}

	g, err := network.NewGraph(network.OriginSearch, query, b.nodes, edges)
	if err != nil {
		s.logger.Error("invalid batch", logging.Query(query), logging.Error(err))
		return nil, ReasonSearchFailed, b.skipped, nil
	}
	return g, ReasonNone, b.skipped, nil
}

func (s *Session) recordFetch(status string) {
	if s.metrics != nil {
		s.metrics.RecordProfileFetch(status)
	}
}
