package network

import "strings"

// FilterConfig selects the visible part of a snapshot.
type FilterConfig struct {
	MinStrength    int            `json:"minStrength" yaml:"min_strength" validate:"min=1"`
	Skill          string         `json:"skill" yaml:"skill" validate:"max=100"`
	Location       string         `json:"location" yaml:"location" validate:"max=100"`
	ConnectionType ConnectionType `json:"connectionType" yaml:"connection_type" validate:"omitempty,oneof=all skill company location"`
}

// DefaultFilterConfig shows everything.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinStrength:    1,
		ConnectionType: ConnectionAll,
	}
}

// View is the visible subgraph. Its slices are fresh; the snapshot is not
// touched.
type View struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// ApplyFilter filters nodes first (skill and location substring, both must
// pass) and then keeps edges of the selected type and minimum strength whose
// endpoints are both visible.
func ApplyFilter(nodes []Node, edges []Edge, cfg FilterConfig) View {
	skill := strings.ToLower(strings.TrimSpace(cfg.Skill))
	location := strings.ToLower(strings.TrimSpace(cfg.Location))

	view := View{
		Nodes: make([]Node, 0, len(nodes)),
		Edges: make([]Edge, 0, len(edges)),
	}
	visible := make(map[string]struct{}, len(nodes))

	for _, n := range nodes {
		if skill != "" && !anyContains(n.Skills, skill) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(n.Location), location) {
			continue
		}
		view.Nodes = append(view.Nodes, n)
		visible[n.ID] = struct{}{}
	}

	for _, e := range edges {
		if cfg.ConnectionType != "" && cfg.ConnectionType != ConnectionAll && e.Type != cfg.ConnectionType {
			continue
		}
		if e.Strength < cfg.MinStrength {
			continue
		}
		if _, ok := visible[e.Source]; !ok {
			continue
		}
		if _, ok := visible[e.Target]; !ok {
			continue
		}
		view.Edges = append(view.Edges, e)
	}

	return view
}

func anyContains(items []string, lowerNeedle string) bool {
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), lowerNeedle) {
			return true
		}
	}
	return false
}
