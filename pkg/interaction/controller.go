// Package interaction tracks selection, hover, the pan/zoom viewport and
// drag gestures, and feeds pins and reheats into the layout simulation.
package interaction

import (
	"errors"
	"fmt"
	"math"

	"github.com/dd0wney/talentgraph/pkg/visualization"
)

var (
	// ErrUnknownNode is returned for a gesture on a node the simulator does
	// not know.
	ErrUnknownNode = errors.New("interaction: unknown node")
	// ErrNotDragging is returned by DragMove and DragEnd without a drag.
	ErrNotDragging = errors.New("interaction: no drag in progress")
)

// Defaults taken from the browser renderer.
const (
	DefaultNodeRadius      = 20
	DefaultDragAlphaTarget = 0.3
)

// Simulator is the part of the layout the controller drives.
type Simulator interface {
	Position(id string) (visualization.Position, bool)
	NodeIDs() []string
	Pin(id string, x, y float64) error
	Unpin(id string) error
	Reheat(target float64)
}

// State is an immutable snapshot of the interaction state for renderers.
type State struct {
	Selected string   `json:"selected,omitempty"`
	Anchor   *Point   `json:"anchor,omitempty"`
	Hovered  string   `json:"hovered,omitempty"`
	Dragging string   `json:"dragging,omitempty"`
	Viewport Viewport `json:"viewport"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithNodeRadius sets the hit-test radius in world units.
func WithNodeRadius(r float64) Option {
	return func(c *Controller) { c.nodeRadius = r }
}

// WithZoomRange sets the allowed viewport scale.
func WithZoomRange(r ZoomRange) Option {
	return func(c *Controller) { c.zoom = r }
}

// WithDragAlphaTarget sets the temperature held while a node is dragged.
func WithDragAlphaTarget(alpha float64) Option {
	return func(c *Controller) { c.dragAlpha = alpha }
}

// Controller owns interaction state for one simulator. It is not safe for
// concurrent use.
type Controller struct {
	sim        Simulator
	nodeRadius float64
	zoom       ZoomRange
	dragAlpha  float64

	viewport Viewport
	selected string
	anchor   *Point
	hovered  string
	dragging string
}

// NewController creates a controller with an identity viewport.
func NewController(sim Simulator, opts ...Option) *Controller {
	c := &Controller{
		sim:        sim,
		nodeRadius: DefaultNodeRadius,
		zoom:       DefaultZoomRange,
		dragAlpha:  DefaultDragAlphaTarget,
		viewport:   Identity,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetSimulator switches to a new snapshot's simulator. Selection, hover and
// any drag refer to the old snapshot and are cleared; the viewport is kept.
func (c *Controller) SetSimulator(sim Simulator) {
	c.sim = sim
	c.selected, c.anchor, c.hovered, c.dragging = "", nil, "", ""
}

// SetNodeRadius changes the hit-test radius, for renderers whose glyphs keep
// a fixed screen size while zooming.
func (c *Controller) SetNodeRadius(r float64) {
	if r > 0 {
		c.nodeRadius = r
	}
}

// HitTest returns the topmost node under a screen point. Nodes later in the
// simulator's order are drawn on top.
func (c *Controller) HitTest(screen Point) (string, bool) {
	if c.sim == nil {
		return "", false
	}
	w := c.viewport.ToWorld(screen)
	ids := c.sim.NodeIDs()
	for i := len(ids) - 1; i >= 0; i-- {
		p, ok := c.sim.Position(ids[i])
		if !ok {
			continue
		}
		if math.Hypot(p.X-w.X, p.Y-w.Y) <= c.nodeRadius {
			return ids[i], true
		}
	}
	return "", false
}

// Click selects the node under the pointer and anchors a detail popup at the
// pointer, or clears the selection on empty canvas.
func (c *Controller) Click(screen Point) (string, bool) {
	id, ok := c.HitTest(screen)
	if !ok {
		c.ClearSelection()
		return "", false
	}
	c.selected = id
	anchor := screen
	c.anchor = &anchor
	return id, true
}

// Select selects a node without a popup anchor (detail panel variant).
func (c *Controller) Select(id string) error {
	if c.sim == nil {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	if _, ok := c.sim.Position(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	c.selected, c.anchor = id, nil
	return nil
}

// ClearSelection deselects.
func (c *Controller) ClearSelection() {
	c.selected, c.anchor = "", nil
}

// HoverAt updates the hovered node and returns it ("" for none).
func (c *Controller) HoverAt(screen Point) string {
	id, _ := c.HitTest(screen)
	c.hovered = id
	return id
}

// Pan moves the viewport by a screen delta.
func (c *Controller) Pan(dx, dy float64) {
	c.viewport.X += dx
	c.viewport.Y += dy
}

// ZoomAt scales the viewport about a screen point, clamped to the zoom range.
func (c *Controller) ZoomAt(factor float64, screen Point) {
	if factor <= 0 {
		return
	}
	c.viewport = c.viewport.zoomAt(factor, screen, c.zoom)
}

// ZoomToFit frames bounds inside a width×height screen.
func (c *Controller) ZoomToFit(bounds visualization.Rect, width, height, padding float64) {
	c.viewport = fit(bounds, width, height, padding, c.zoom)
}

// SetViewport replaces the viewport, clamping its scale.
func (c *Controller) SetViewport(v Viewport) {
	v.K = c.zoom.Clamp(v.K)
	c.viewport = v
}

// Viewport returns the current transform.
func (c *Controller) Viewport() Viewport { return c.viewport }

// DragStart reheats the simulation and pins the node where it is.
func (c *Controller) DragStart(id string) error {
	if c.sim == nil {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	p, ok := c.sim.Position(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	if c.dragging == "" {
		c.sim.Reheat(c.dragAlpha)
	} else if c.dragging != id {
		// a new gesture replaces a stale one
		if err := c.sim.Unpin(c.dragging); err != nil {
			return fmt.Errorf("release %s: %w", c.dragging, err)
		}
	}
	if err := c.sim.Pin(id, p.X, p.Y); err != nil {
		return err
	}
	c.dragging = id
	return nil
}

// DragMove moves the pin to follow the pointer.
func (c *Controller) DragMove(screen Point) error {
	if c.dragging == "" {
		return ErrNotDragging
	}
	w := c.viewport.ToWorld(screen)
	return c.sim.Pin(c.dragging, w.X, w.Y)
}

// DragEnd releases the pin and lets the simulation cool.
func (c *Controller) DragEnd() error {
	if c.dragging == "" {
		return ErrNotDragging
	}
	id := c.dragging
	c.dragging = ""
	c.sim.Reheat(0)
	return c.sim.Unpin(id)
}

// Dragging returns the node being dragged, if any.
func (c *Controller) Dragging() (string, bool) {
	return c.dragging, c.dragging != ""
}

// State returns a copy of the interaction state.
func (c *Controller) State() State {
	s := State{
		Selected: c.selected,
		Hovered:  c.hovered,
		Dragging: c.dragging,
		Viewport: c.viewport,
	}
	if c.anchor != nil {
		a := *c.anchor
		s.Anchor = &a
	}
	return s
}
