package interaction

import (
	"math"

	"github.com/dd0wney/talentgraph/pkg/validation"
	"github.com/dd0wney/talentgraph/pkg/visualization"
)

// Point is a screen or world coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ZoomRange bounds the viewport scale.
type ZoomRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// DefaultZoomRange is 0.1× to 4×.
var DefaultZoomRange = ZoomRange{Min: 0.1, Max: 4}

// Clamp bounds k to the range.
func (r ZoomRange) Clamp(k float64) float64 {
	return validation.Clamp(k, r.Min, r.Max)
}

// Viewport maps world coordinates to the screen: screen = world·K + (X, Y).
type Viewport struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// Identity is the untransformed viewport.
var Identity = Viewport{K: 1}

// ToWorld converts a screen point to world coordinates.
func (v Viewport) ToWorld(p Point) Point {
	return Point{X: (p.X - v.X) / v.K, Y: (p.Y - v.Y) / v.K}
}

// ToScreen converts a world point to screen coordinates.
func (v Viewport) ToScreen(p Point) Point {
	return Point{X: p.X*v.K + v.X, Y: p.Y*v.K + v.Y}
}

// zoomAt scales by factor about the screen point p, so the world point under
// p stays put.
func (v Viewport) zoomAt(factor float64, p Point, r ZoomRange) Viewport {
	k := r.Clamp(v.K * factor)
	w := v.ToWorld(p)
	return Viewport{X: p.X - w.X*k, Y: p.Y - w.Y*k, K: k}
}

// fit returns the viewport that shows bounds inside a width×height screen
// with padding, centered.
func fit(bounds visualization.Rect, width, height, padding float64, r ZoomRange) Viewport {
	bw, bh := bounds.Width(), bounds.Height()
	k := 1.0
	availW := math.Max(width-2*padding, 1)
	availH := math.Max(height-2*padding, 1)
	switch {
	case bw > 0 && bh > 0:
		k = math.Min(availW/bw, availH/bh)
	case bw > 0:
		k = availW / bw
	case bh > 0:
		k = availH / bh
	}
	k = r.Clamp(k)
	c := bounds.Center()
	return Viewport{X: width/2 - c.X*k, Y: height/2 - c.Y*k, K: k}
}
