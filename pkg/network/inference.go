package network

import (
	"errors"
	"strings"
)

// MinNodes is the smallest normalized batch worth rendering as a live graph.
const MinNodes = 3

// Scoring weights. Shared employment is a stronger signal than a shared skill.
const (
	SkillWeight    = 1
	CompanyWeight  = 2
	LocationWeight = 1
)

var (
	// ErrTooFewNodes means fewer than MinNodes profiles survived normalization.
	ErrTooFewNodes = errors.New("not enough profiles to build a network")
	// ErrNoConnections means inference produced no edges at all.
	ErrNoConnections = errors.New("no connections between profiles")
)

// profileTerms caches the lower-cased matching terms of a node.
type profileTerms struct {
	skills    []string
	companies []string
	location  string
}

func termsOf(n *Node) profileTerms {
	t := profileTerms{
		skills:    lowerAll(n.Skills),
		companies: lowerAll(n.Companies),
	}
	if n.HasLocation() {
		t.location = strings.ToLower(strings.TrimSpace(n.Location))
	}
	return t
}

func lowerAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.ToLower(s)
	}
	return out
}

// InferEdges compares every unordered pair of nodes and emits one edge per
// pair with a positive strength. Output is ordered by (i, j) node index; the
// endpoint with the lower id is the edge source.
func InferEdges(nodes []Node) []Edge {
	terms := make([]profileTerms, len(nodes))
	for i := range nodes {
		terms[i] = termsOf(&nodes[i])
	}

	edges := make([]Edge, 0)
	seen := make(map[string]struct{})
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if nodes[i].ID == nodes[j].ID {
				continue
			}
			e, ok := evaluateOriented(&nodes[i], &nodes[j], terms[i], terms[j])
			if !ok {
				continue
			}
			// first classification wins for a pair
			if _, dup := seen[e.Key()]; dup {
				continue
			}
			seen[e.Key()] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}

// EvaluatePair scores a single pair. ok is false when the pair shares nothing
// or both nodes have the same id.
func EvaluatePair(a, b Node) (Edge, bool) {
	if a.ID == b.ID {
		return Edge{}, false
	}
	return evaluateOriented(&a, &b, termsOf(&a), termsOf(&b))
}

// evaluateOriented scores the pair with the lower id as the reference side,
// so the result does not depend on argument order.
func evaluateOriented(a, b *Node, ta, tb profileTerms) (Edge, bool) {
	if b.ID < a.ID {
		return evaluate(b, a, tb, ta)
	}
	return evaluate(a, b, ta, tb)
}

func evaluate(a, b *Node, ta, tb profileTerms) (Edge, bool) {
	sharedSkills := matchItems(a.Skills, ta.skills, tb.skills)
	sharedCompanies := matchItems(a.Companies, ta.companies, tb.companies)
	sameLocation := ta.location != "" && tb.location != "" &&
		(strings.Contains(ta.location, tb.location) || strings.Contains(tb.location, ta.location))

	strength := SkillWeight*len(sharedSkills) + CompanyWeight*len(sharedCompanies)
	if sameLocation {
		strength += LocationWeight
	}
	if strength <= 0 {
		return Edge{}, false
	}

	var kind ConnectionType
	switch {
	case len(sharedCompanies) > 0:
		kind = ConnectionCompany
	case sameLocation:
		kind = ConnectionLocation
	default:
		kind = ConnectionSkill
	}

	shared := make([]string, 0, len(sharedSkills)+len(sharedCompanies)+1)
	shared = append(shared, sharedSkills...)
	shared = append(shared, sharedCompanies...)
	if sameLocation {
		shared = append(shared, a.Location)
	}

	return Edge{
		Source:      a.ID,
		Target:      b.ID,
		Type:        kind,
		Strength:    strength,
		SharedItems: shared,
	}, true
}

// matchItems returns the items of a (original casing) whose lower-cased form
// contains, or is contained by, any lower-cased item of b.
func matchItems(a, lowerA, lowerB []string) []string {
	var out []string
	for i, item := range lowerA {
		if item == "" {
			continue
		}
		for _, other := range lowerB {
			if other == "" {
				continue
			}
			if strings.Contains(other, item) || strings.Contains(item, other) {
				out = append(out, a[i])
				break
			}
		}
	}
	return out
}

// Sufficient reports whether a normalized batch and its edges are worth
// rendering, or which degraded-result condition applies.
func Sufficient(nodes []Node, edges []Edge) error {
	if len(nodes) < MinNodes {
		return ErrTooFewNodes
	}
	if len(edges) == 0 {
		return ErrNoConnections
	}
	return nil
}
