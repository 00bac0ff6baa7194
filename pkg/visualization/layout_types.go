package visualization

import (
	"errors"
	"math"

	"github.com/dd0wney/talentgraph/pkg/validation"
)

// ErrUnknownNode is returned when an operation names a node that is not part
// of the simulation.
var ErrUnknownNode = errors.New("visualization: unknown node")

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// Width of the box.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height of the box.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center of the box.
func (r Rect) Center() Position {
	return Position{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// LayoutConfig configures the force simulation. Zero fields take the
// defaults from DefaultLayoutConfig.
type LayoutConfig struct {
	Width  float64 `yaml:"width" json:"width"`   // Canvas width
	Height float64 `yaml:"height" json:"height"` // Canvas height
	// Padding keeps seeded and fitted positions away from the canvas edge.
	Padding float64 `yaml:"padding" json:"padding"`

	LinkDistance      float64 `yaml:"link_distance" json:"linkDistance"`
	LinkDistanceStep  float64 `yaml:"link_distance_step" json:"linkDistanceStep"`
	MinLinkDistance   float64 `yaml:"min_link_distance" json:"minLinkDistance"`
	LinkStrengthScale float64 `yaml:"link_strength_scale" json:"linkStrengthScale"`

	Charge        float64 `yaml:"charge" json:"charge"`
	Theta         float64 `yaml:"theta" json:"theta"`
	DistanceMin2  float64 `yaml:"distance_min2" json:"distanceMin2"`
	CollideRadius float64 `yaml:"collide_radius" json:"collideRadius"`

	CollideStrength float64 `yaml:"collide_strength" json:"collideStrength"`
	CenterStrength  float64 `yaml:"center_strength" json:"centerStrength"`

	AlphaMin      float64 `yaml:"alpha_min" json:"alphaMin"`
	AlphaDecay    float64 `yaml:"alpha_decay" json:"alphaDecay"`
	VelocityDecay float64 `yaml:"velocity_decay" json:"velocityDecay"`
}

// DefaultLayoutConfig matches the browser renderer's tuning.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Width:             800,
		Height:            600,
		Padding:           50,
		LinkDistance:      100,
		LinkDistanceStep:  10,
		MinLinkDistance:   10,
		LinkStrengthScale: 0.1,
		Charge:            -300,
		Theta:             0.9,
		DistanceMin2:      1,
		CollideRadius:     30,
		CollideStrength:   1,
		CenterStrength:    1,
		AlphaMin:          0.001,
		// reaches AlphaMin from 1 in ~300 steps
		AlphaDecay:    1 - math.Pow(0.001, 1.0/300),
		VelocityDecay: 0.4,
	}
}

// WithDefaults returns a copy of c with zero fields filled in.
func (c LayoutConfig) WithDefaults() LayoutConfig {
	d := DefaultLayoutConfig()
	c.Width = validation.DefaultOr(c.Width, d.Width)
	c.Height = validation.DefaultOr(c.Height, d.Height)
	c.Padding = validation.DefaultOr(c.Padding, d.Padding)
	c.LinkDistance = validation.DefaultOr(c.LinkDistance, d.LinkDistance)
	c.LinkDistanceStep = validation.DefaultOr(c.LinkDistanceStep, d.LinkDistanceStep)
	c.MinLinkDistance = validation.DefaultOr(c.MinLinkDistance, d.MinLinkDistance)
	c.LinkStrengthScale = validation.DefaultOr(c.LinkStrengthScale, d.LinkStrengthScale)
	c.Charge = validation.DefaultOr(c.Charge, d.Charge)
	c.Theta = validation.DefaultOr(c.Theta, d.Theta)
	c.DistanceMin2 = validation.DefaultOr(c.DistanceMin2, d.DistanceMin2)
	c.CollideRadius = validation.DefaultOr(c.CollideRadius, d.CollideRadius)
	c.CollideStrength = validation.DefaultOr(c.CollideStrength, d.CollideStrength)
	c.CenterStrength = validation.DefaultOr(c.CenterStrength, d.CenterStrength)
	c.AlphaMin = validation.DefaultOr(c.AlphaMin, d.AlphaMin)
	c.AlphaDecay = validation.DefaultOr(c.AlphaDecay, d.AlphaDecay)
	c.VelocityDecay = validation.DefaultOr(c.VelocityDecay, d.VelocityDecay)
	return c
}

// Validate checks a config after defaults are applied.
func (c LayoutConfig) Validate() error {
	return validation.NewConfigValidator("Layout").
		PositiveFloat("Width", c.Width).
		PositiveFloat("Height", c.Height).
		RangeFloat("Padding", c.Padding, 0, math.Min(c.Width, c.Height)/2).
		PositiveFloat("LinkDistance", c.LinkDistance).
		PositiveFloat("MinLinkDistance", c.MinLinkDistance).
		RangeFloat("LinkStrengthScale", c.LinkStrengthScale, 0, 1).
		NegativeFloat("Charge", c.Charge).
		RangeFloat("Theta", c.Theta, 0, 2).
		PositiveFloat("DistanceMin2", c.DistanceMin2).
		PositiveFloat("CollideRadius", c.CollideRadius).
		RangeFloat("CollideStrength", c.CollideStrength, 0, 1).
		RangeFloat("CenterStrength", c.CenterStrength, 0, 1).
		RangeFloat("AlphaMin", c.AlphaMin, 0, 1).
		RangeFloat("AlphaDecay", c.AlphaDecay, 0, 1).
		RangeFloat("VelocityDecay", c.VelocityDecay, 0, 1).
		Validate()
}
