package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/dd0wney/talentgraph/pkg/network"
	"github.com/dd0wney/talentgraph/pkg/session"
)

func networkResolver(sessions SessionFunc) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		snap := sessions(p.Context).Snapshot()
		if snap.Graph == nil {
			return nil, session.ErrNoSnapshot
		}

		cfg, err := filterFromArgs(snap.Filter, p.Args)
		if err != nil {
			return nil, err
		}
		view := snap.Graph.Filter(cfg)

		nodes := make([]map[string]interface{}, len(view.Nodes))
		for i := range view.Nodes {
			nodes[i] = personOf(snap.Graph, &view.Nodes[i])
		}
		edges := make([]map[string]interface{}, len(view.Edges))
		for i, e := range view.Edges {
			edges[i] = connectionOf(e)
		}

		return map[string]interface{}{
			"graphId":  snap.Graph.ID,
			"origin":   string(snap.Graph.Origin),
			"query":    snap.Graph.Query,
			"advisory": snap.Advisory,
			"nodes":    nodes,
			"edges":    edges,
		}, nil
	}
}

func nodeResolver(sessions SessionFunc) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		g, err := sessions(p.Context).Graph()
		if err != nil {
			return nil, err
		}
		id, _ := p.Args["id"].(string)
		n, ok := g.Node(id)
		if !ok {
			return nil, nil
		}
		return personOf(g, &n), nil
	}
}

func personOf(g *network.Graph, n *network.Node) map[string]interface{} {
	return map[string]interface{}{
		"id":        n.ID,
		"username":  n.Username,
		"name":      n.Name,
		"picture":   n.Picture,
		"skills":    n.Skills,
		"companies": n.Companies,
		"location":  n.Location,
		"degree":    g.Degree(n.ID),
	}
}

func connectionOf(e network.Edge) map[string]interface{} {
	return map[string]interface{}{
		"source":      e.Source,
		"target":      e.Target,
		"type":        string(e.Type),
		"strength":    e.Strength,
		"sharedItems": e.SharedItems,
	}
}
