package network

import "testing"

func TestDemoGraph(t *testing.T) {
	g := DemoGraph()
	if g.Origin != OriginDemo {
		t.Errorf("origin = %s, want %s", g.Origin, OriginDemo)
	}
	if g.Query != DemoQuery {
		t.Errorf("query = %q, want %q", g.Query, DemoQuery)
	}
	if len(g.Nodes) != 10 || len(g.Edges) != 17 {
		t.Fatalf("fixture has %d nodes and %d edges, want 10 and 17", len(g.Nodes), len(g.Edges))
	}

	for _, e := range g.Edges {
		if e.Strength < 1 {
			t.Errorf("edge %s has strength %d", e.Key(), e.Strength)
		}
		if e.Source == e.Target {
			t.Errorf("self-loop %s", e.Source)
		}
	}

	n, ok := g.Node("demo10")
	if !ok {
		t.Fatal("demo10 missing")
	}
	if n.Name != "Fatima Al-Zahra" || n.Location != "Dubai, UAE" {
		t.Errorf("unexpected demo10: %+v", n)
	}
}

func TestDemoGraphIsFreshEachCall(t *testing.T) {
	a := DemoGraph()
	b := DemoGraph()
	if a.ID == b.ID {
		t.Error("expected distinct snapshot ids")
	}
	a.Nodes[0].Skills[0] = "mutated"
	if b.Nodes[0].Skills[0] == "mutated" {
		t.Error("demo snapshots share backing arrays")
	}
}

func TestDemoFixtureKeepsReversedDuplicates(t *testing.T) {
	counts := map[string]int{}
	for _, e := range DemoEdges() {
		counts[e.Key()]++
	}
	for _, key := range []string{"demo1|demo9", "demo5|demo7", "demo10|demo3"} {
		if counts[key] != 2 {
			t.Errorf("pair %s appears %d times, want 2", key, counts[key])
		}
	}
}
