package visualization

import (
	"encoding/json"

	"github.com/dd0wney/talentgraph/pkg/network"
)

// Visualization is a laid-out view ready for a renderer.
type Visualization struct {
	Nodes     []network.Node
	Edges     []network.Edge
	Positions map[string]Position
	Alpha     float64
	Steps     int
}

// RunHeadless lays out a view without a display, running steps ticks from a
// fresh simulation. Node coordinates in the result carry the final positions.
func RunHeadless(view network.View, cfg LayoutConfig, steps int, opts ...Option) (*Visualization, error) {
	sim, err := NewSimulation(view.Nodes, view.Edges, cfg, opts...)
	if err != nil {
		return nil, err
	}
	alpha := sim.Tick(steps)

	nodes := make([]network.Node, len(view.Nodes))
	copy(nodes, view.Nodes)
	sim.WriteBack(nodes)

	return &Visualization{
		Nodes:     nodes,
		Edges:     view.Edges,
		Positions: sim.Positions(),
		Alpha:     alpha,
		Steps:     steps,
	}, nil
}

// ExportJSON exports the visualization in the node/link shape used by
// browser force-graph renderers.
func (v *Visualization) ExportJSON() ([]byte, error) {
	type NodeViz struct {
		ID        string   `json:"id"`
		Username  string   `json:"username"`
		Name      string   `json:"name"`
		Picture   string   `json:"picture,omitempty"`
		Skills    []string `json:"skills"`
		Companies []string `json:"companies"`
		Location  string   `json:"location,omitempty"`
		X         float64  `json:"x"`
		Y         float64  `json:"y"`
		FX        *float64 `json:"fx,omitempty"`
		FY        *float64 `json:"fy,omitempty"`
	}

	type LinkViz struct {
		Source      string   `json:"source"`
		Target      string   `json:"target"`
		Type        string   `json:"type"`
		Strength    int      `json:"strength"`
		SharedItems []string `json:"sharedItems"`
	}

	type VizData struct {
		Nodes []NodeViz `json:"nodes"`
		Links []LinkViz `json:"links"`
		Alpha float64   `json:"alpha"`
		Steps int       `json:"steps"`
	}

	data := VizData{
		Nodes: make([]NodeViz, 0, len(v.Nodes)),
		Links: make([]LinkViz, 0, len(v.Edges)),
		Alpha: v.Alpha,
		Steps: v.Steps,
	}

	for _, n := range v.Nodes {
		pos, ok := v.Positions[n.ID]
		if !ok {
			pos = Position{X: n.X, Y: n.Y}
		}
		data.Nodes = append(data.Nodes, NodeViz{
			ID:        n.ID,
			Username:  n.Username,
			Name:      n.Name,
			Picture:   n.Picture,
			Skills:    n.Skills,
			Companies: n.Companies,
			Location:  n.Location,
			X:         pos.X,
			Y:         pos.Y,
			FX:        n.FX,
			FY:        n.FY,
		})
	}

	for _, e := range v.Edges {
		data.Links = append(data.Links, LinkViz{
			Source:      e.Source,
			Target:      e.Target,
			Type:        string(e.Type),
			Strength:    e.Strength,
			SharedItems: e.SharedItems,
		})
	}

	return json.Marshal(data)
}
