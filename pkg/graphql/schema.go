// Package graphql exposes a session's network view over GraphQL.
package graphql

import (
	"context"
	"errors"
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/talentgraph/pkg/network"
	"github.com/dd0wney/talentgraph/pkg/session"
	"github.com/dd0wney/talentgraph/pkg/validation"
)

// SessionFunc returns the session a request reads from.
type SessionFunc func(ctx context.Context) *session.Session

var connectionTypeEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "ConnectionType",
	Values: graphql.EnumValueConfigMap{
		"skill":    &graphql.EnumValueConfig{Value: string(network.ConnectionSkill)},
		"company":  &graphql.EnumValueConfig{Value: string(network.ConnectionCompany)},
		"location": &graphql.EnumValueConfig{Value: string(network.ConnectionLocation)},
	},
})

var personType = graphql.NewObject(graphql.ObjectConfig{
	Name:        "Person",
	Description: "A professional in the network",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"username":  &graphql.Field{Type: graphql.String},
		"name":      &graphql.Field{Type: graphql.String},
		"picture":   &graphql.Field{Type: graphql.String},
		"skills":    &graphql.Field{Type: graphql.NewList(graphql.String)},
		"companies": &graphql.Field{Type: graphql.NewList(graphql.String)},
		"location":  &graphql.Field{Type: graphql.String},
		"degree": &graphql.Field{
			Type:        graphql.Int,
			Description: "Number of distinct people connected in the full snapshot",
		},
	},
})

var connectionType = graphql.NewObject(graphql.ObjectConfig{
	Name:        "Connection",
	Description: "An inferred relationship between two people",
	Fields: graphql.Fields{
		"source":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"target":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"type":        &graphql.Field{Type: connectionTypeEnum},
		"strength":    &graphql.Field{Type: graphql.Int},
		"sharedItems": &graphql.Field{Type: graphql.NewList(graphql.String)},
	},
})

var networkType = graphql.NewObject(graphql.ObjectConfig{
	Name:        "Network",
	Description: "The visible part of the current snapshot",
	Fields: graphql.Fields{
		"graphId":  &graphql.Field{Type: graphql.ID},
		"origin":   &graphql.Field{Type: graphql.String},
		"query":    &graphql.Field{Type: graphql.String},
		"advisory": &graphql.Field{Type: graphql.String},
		"nodes":    &graphql.Field{Type: graphql.NewList(personType)},
		"edges":    &graphql.Field{Type: graphql.NewList(connectionType)},
	},
})

// NewSchema builds the read schema over the sessions returned by sessions.
func NewSchema(sessions SessionFunc) (graphql.Schema, error) {
	if sessions == nil {
		return graphql.Schema{}, errors.New("graphql: nil session resolver")
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"health": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return "ok", nil
				},
			},
			"network": &graphql.Field{
				Type: networkType,
				Args: graphql.FieldConfigArgument{
					"minStrength": &graphql.ArgumentConfig{Type: graphql.Int},
					"skill":       &graphql.ArgumentConfig{Type: graphql.String},
					"location":    &graphql.ArgumentConfig{Type: graphql.String},
					"type":        &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: networkResolver(sessions),
			},
			"node": &graphql.Field{
				Type: personType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: nodeResolver(sessions),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}

// filterFromArgs overlays the arguments present in args onto base.
func filterFromArgs(base network.FilterConfig, args map[string]interface{}) (network.FilterConfig, error) {
	cfg := base
	if v, ok := args["minStrength"].(int); ok {
		cfg.MinStrength = v
	}
	if v, ok := args["skill"].(string); ok {
		cfg.Skill = v
	}
	if v, ok := args["location"].(string); ok {
		cfg.Location = v
	}
	if v, ok := args["type"].(string); ok {
		ct, err := network.ParseConnectionType(v)
		if err != nil {
			return cfg, err
		}
		cfg.ConnectionType = ct
	}
	if err := validation.ValidateFilter(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid filter: %w", err)
	}
	return cfg, nil
}
