package network

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var (
	propSkills    = []string{"Go", "go", "Python", "React", "React Native", "SQL", "PostgreSQL", "AWS", "Docker"}
	propCompanies = []string{"Acme", "ACME Corp", "Globex", "Initech", "Umbrella"}
	propLocations = []string{"", NotSpecified, "Berlin", "Berlin, DE", "Lisbon", "Seattle, WA", "Seattle"}
)

func pick(r *rand.Rand, from []string, max int) []string {
	n := r.Intn(max + 1)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, from[r.Intn(len(from))])
	}
	return out
}

// randomNodes builds a deterministic batch of profiles from seed.
func randomNodes(seed int64, count int) []Node {
	r := rand.New(rand.NewSource(seed))
	nodes := make([]Node, count)
	for i := range nodes {
		id := fmt.Sprintf("p%02d", i)
		nodes[i] = Node{
			ID:        id,
			Username:  id,
			Name:      id,
			Skills:    pick(r, propSkills, 4),
			Companies: pick(r, propCompanies, 2),
			Location:  propLocations[r.Intn(len(propLocations))],
		}
	}
	return nodes
}

func TestInferenceProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("pair evaluation is symmetric", prop.ForAll(
		func(seed int64) bool {
			nodes := randomNodes(seed, 2)
			ab, ok1 := EvaluatePair(nodes[0], nodes[1])
			ba, ok2 := EvaluatePair(nodes[1], nodes[0])
			return ok1 == ok2 && reflect.DeepEqual(ab, ba)
		},
		gen.Int64(),
	))

	properties.Property("no self loops and at most one edge per pair", prop.ForAll(
		func(seed int64, count int) bool {
			edges := InferEdges(randomNodes(seed, count))
			seen := make(map[string]bool, len(edges))
			for _, e := range edges {
				if e.Source == e.Target || seen[e.Key()] {
					return false
				}
				seen[e.Key()] = true
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(0, 12),
	))

	properties.Property("edge strength matches its shared items", prop.ForAll(
		func(seed int64, count int) bool {
			for _, e := range InferEdges(randomNodes(seed, count)) {
				if e.Strength < 1 || len(e.SharedItems) == 0 {
					return false
				}
				if e.Type == ConnectionCompany && e.Strength < CompanyWeight {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(2, 12),
	))

	properties.Property("profiles with nothing in common are not connected", prop.ForAll(
		func(a, b string) bool {
			n1 := Node{ID: "x", Skills: []string{"x" + a}, Location: "Lisbon"}
			n2 := Node{ID: "y", Skills: []string{"y" + b}, Location: "Seattle"}
			if len(a) == 0 || len(b) == 0 {
				return true
			}
			// "xa" and "yb" can still overlap by substring, skip those
			la, lb := "x"+a, "y"+b
			if containsFold(la, lb) || containsFold(lb, la) {
				return true
			}
			_, ok := EvaluatePair(n1, n2)
			return !ok
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestFilterProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	genConfig := gopter.CombineGens(
		gen.IntRange(1, 8),
		gen.OneConstOf("", "go", "react", "sql"),
		gen.OneConstOf("", "berlin", "seattle"),
		gen.OneConstOf(ConnectionAll, ConnectionSkill, ConnectionCompany, ConnectionLocation),
	).Map(func(v []interface{}) FilterConfig {
		return FilterConfig{
			MinStrength:    v[0].(int),
			Skill:          v[1].(string),
			Location:       v[2].(string),
			ConnectionType: v[3].(ConnectionType),
		}
	})

	properties.Property("filtering is idempotent", prop.ForAll(
		func(seed int64, cfg FilterConfig) bool {
			nodes := randomNodes(seed, 10)
			once := ApplyFilter(nodes, InferEdges(nodes), cfg)
			twice := ApplyFilter(once.Nodes, once.Edges, cfg)
			return reflect.DeepEqual(once, twice)
		},
		gen.Int64(),
		genConfig,
	))

	properties.Property("visible edges only reference visible nodes", prop.ForAll(
		func(seed int64, cfg FilterConfig) bool {
			nodes := randomNodes(seed, 10)
			view := ApplyFilter(nodes, InferEdges(nodes), cfg)
			visible := make(map[string]bool, len(view.Nodes))
			for _, n := range view.Nodes {
				visible[n.ID] = true
			}
			for _, e := range view.Edges {
				if !visible[e.Source] || !visible[e.Target] || e.Strength < cfg.MinStrength {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		genConfig,
	))

	properties.TestingRun(t)
}

func containsFold(s, sub string) bool {
	return len(matchItems([]string{s}, lowerAll([]string{s}), lowerAll([]string{sub}))) > 0
}
