// Package visualization lays out the professional graph with a
// force-directed simulation and exports positioned views.
package visualization

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/dd0wney/talentgraph/pkg/network"
)

// body is the simulation state of one node.
type body struct {
	id     string
	x, y   float64
	vx, vy float64
	fx, fy *float64
}

// link is an edge resolved to body indices.
type link struct {
	source, target int
	distance       float64
	strength       float64
	bias           float64
}

// Observer is called after every step with the new temperature.
type Observer func(alpha float64)

type options struct {
	positions map[string]Position
	seed      int64
	observer  Observer
}

// Option configures a Simulation.
type Option func(*options)

// WithPositions seeds nodes from a previous layout of the same snapshot.
func WithPositions(positions map[string]Position) Option {
	return func(o *options) { o.positions = positions }
}

// WithSeed fixes the source used to separate coincident nodes.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithObserver registers a per-step callback.
func WithObserver(fn Observer) Option {
	return func(o *options) { o.observer = fn }
}

// Simulation is the layout state for one visible view of a snapshot. It is
// not safe for concurrent use; the owner drives it from a single goroutine.
type Simulation struct {
	cfg    LayoutConfig
	bodies []body
	index  map[string]int
	links  []link

	alpha       float64
	alphaTarget float64
	steps       uint64

	rng      *rand.Rand
	observer Observer
}

// NewSimulation builds a simulation over nodes and edges. Every edge endpoint
// must be one of nodes.
func NewSimulation(nodes []network.Node, edges []network.Edge, cfg LayoutConfig, opts ...Option) (*Simulation, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{seed: 1}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Simulation{
		cfg:      cfg,
		bodies:   make([]body, len(nodes)),
		index:    make(map[string]int, len(nodes)),
		alpha:    1,
		rng:      rand.New(rand.NewSource(o.seed)),
		observer: o.observer,
	}

	seeds := circularPositions(len(nodes), cfg)
	for i, n := range nodes {
		if _, dup := s.index[n.ID]; dup {
			return nil, fmt.Errorf("visualization: duplicate node %s", n.ID)
		}
		s.index[n.ID] = i
		b := body{id: n.ID, x: seeds[i].X, y: seeds[i].Y}
		if p, ok := o.positions[n.ID]; ok {
			b.x, b.y = p.X, p.Y
		} else if n.X != 0 || n.Y != 0 {
			b.x, b.y = n.X, n.Y
		}
		if n.FX != nil {
			fx := *n.FX
			b.fx, b.x = &fx, fx
		}
		if n.FY != nil {
			fy := *n.FY
			b.fy, b.y = &fy, fy
		}
		s.bodies[i] = b
	}

	if err := s.initLinks(edges); err != nil {
		return nil, err
	}
	return s, nil
}

// Step advances the simulation by one tick and returns the new alpha.
func (s *Simulation) Step() float64 {
	s.alpha += (s.alphaTarget - s.alpha) * s.cfg.AlphaDecay

	s.applyLinks()
	s.applyCharge()
	s.applyCenter()
	s.applyCollide()

	decay := 1 - s.cfg.VelocityDecay
	for i := range s.bodies {
		b := &s.bodies[i]
		if b.fx != nil {
			b.x, b.vx = *b.fx, 0
		} else {
			b.vx *= decay
			b.x += b.vx
		}
		if b.fy != nil {
			b.y, b.vy = *b.fy, 0
		} else {
			b.vy *= decay
			b.y += b.vy
		}
	}

	s.steps++
	if s.observer != nil {
		s.observer(s.alpha)
	}
	return s.alpha
}

// Tick runs n steps and returns the final alpha.
func (s *Simulation) Tick(n int) float64 {
	for i := 0; i < n; i++ {
		s.Step()
	}
	return s.alpha
}

// Alpha returns the current temperature.
func (s *Simulation) Alpha() float64 { return s.alpha }

// AlphaTarget returns the temperature the simulation is moving toward.
func (s *Simulation) AlphaTarget() float64 { return s.alphaTarget }

// Steps returns the number of steps taken so far.
func (s *Simulation) Steps() uint64 { return s.steps }

// Settled reports whether the temperature has dropped below AlphaMin.
func (s *Simulation) Settled() bool { return s.alpha < s.cfg.AlphaMin }

// Reheat sets the target temperature. A settled simulation restarts from the
// target so motion resumes immediately.
func (s *Simulation) Reheat(target float64) {
	target = math.Max(0, math.Min(1, target))
	s.alphaTarget = target
	if s.alpha < s.cfg.AlphaMin && target > s.alpha {
		s.alpha = target
	}
}

// Pin fixes a node at (x, y) until Unpin. The node moves there immediately.
func (s *Simulation) Pin(id string, x, y float64) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	b := &s.bodies[i]
	b.fx, b.fy = &x, &y
	b.x, b.y = x, y
	b.vx, b.vy = 0, 0
	return nil
}

// Unpin returns a node to force-driven motion.
func (s *Simulation) Unpin(id string) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	s.bodies[i].fx = nil
	s.bodies[i].fy = nil
	return nil
}

// Pinned reports whether id has a fixed position on either axis.
func (s *Simulation) Pinned(id string) bool {
	i, ok := s.index[id]
	return ok && (s.bodies[i].fx != nil || s.bodies[i].fy != nil)
}

// Position returns the current position of id.
func (s *Simulation) Position(id string) (Position, bool) {
	i, ok := s.index[id]
	if !ok {
		return Position{}, false
	}
	return Position{X: s.bodies[i].x, Y: s.bodies[i].y}, true
}

// Positions returns a copy of every node position.
func (s *Simulation) Positions() map[string]Position {
	out := make(map[string]Position, len(s.bodies))
	for _, b := range s.bodies {
		out[b.id] = Position{X: b.x, Y: b.y}
	}
	return out
}

// NodeIDs returns node ids in insertion order.
func (s *Simulation) NodeIDs() []string {
	ids := make([]string, len(s.bodies))
	for i, b := range s.bodies {
		ids[i] = b.id
	}
	return ids
}

// Len returns the number of nodes.
func (s *Simulation) Len() int { return len(s.bodies) }

// Config returns the effective configuration.
func (s *Simulation) Config() LayoutConfig { return s.cfg }

// WriteBack copies layout state onto the matching nodes.
func (s *Simulation) WriteBack(nodes []network.Node) {
	for k := range nodes {
		i, ok := s.index[nodes[k].ID]
		if !ok {
			continue
		}
		b := s.bodies[i]
		nodes[k].X, nodes[k].Y = b.x, b.y
		nodes[k].FX, nodes[k].FY = nil, nil
		if b.fx != nil {
			fx := *b.fx
			nodes[k].FX = &fx
		}
		if b.fy != nil {
			fy := *b.fy
			nodes[k].FY = &fy
		}
	}
}

// jiggle returns a tiny random offset used to separate coincident points.
func (s *Simulation) jiggle() float64 {
	return (s.rng.Float64() - 0.5) * 1e-6
}
