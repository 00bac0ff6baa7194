package visualization

import (
	"fmt"
	"math"

	"github.com/dd0wney/talentgraph/pkg/network"
)

// initLinks resolves edges and precomputes rest length, stiffness and the
// degree bias that splits each correction between endpoints.
func (s *Simulation) initLinks(edges []network.Edge) error {
	s.links = make([]link, 0, len(edges))
	count := make([]int, len(s.bodies))

	for _, e := range edges {
		src, ok := s.index[e.Source]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownNode, e.Source)
		}
		dst, ok := s.index[e.Target]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownNode, e.Target)
		}
		count[src]++
		count[dst]++
		s.links = append(s.links, link{
			source:   src,
			target:   dst,
			distance: s.linkDistance(e.Strength),
			strength: s.linkStrength(e.Strength),
		})
	}

	for i := range s.links {
		l := &s.links[i]
		l.bias = float64(count[l.source]) / float64(count[l.source]+count[l.target])
	}
	return nil
}

// linkDistance shortens the rest length of stronger connections.
func (s *Simulation) linkDistance(strength int) float64 {
	d := s.cfg.LinkDistance - float64(strength)*s.cfg.LinkDistanceStep
	return math.Max(s.cfg.MinLinkDistance, d)
}

// linkStrength is capped at 1 to keep the integrator stable.
func (s *Simulation) linkStrength(strength int) float64 {
	return math.Min(1, float64(strength)*s.cfg.LinkStrengthScale)
}

// applyLinks pulls or pushes endpoints toward each link's rest length,
// using positions predicted from current velocities.
func (s *Simulation) applyLinks() {
	for _, l := range s.links {
		src, dst := &s.bodies[l.source], &s.bodies[l.target]

		x := dst.x + dst.vx - src.x - src.vx
		y := dst.y + dst.vy - src.y - src.vy
		if x == 0 {
			x = s.jiggle()
		}
		if y == 0 {
			y = s.jiggle()
		}
		d := math.Sqrt(x*x + y*y)
		k := (d - l.distance) / d * s.alpha * l.strength
		x *= k
		y *= k

		dst.vx -= x * l.bias
		dst.vy -= y * l.bias
		src.vx += x * (1 - l.bias)
		src.vy += y * (1 - l.bias)
	}
}

// applyCenter translates every node so the centroid sits at the canvas
// center. It moves positions directly and leaves velocities alone.
func (s *Simulation) applyCenter() {
	n := len(s.bodies)
	if n == 0 {
		return
	}
	var sx, sy float64
	for _, b := range s.bodies {
		sx += b.x
		sy += b.y
	}
	sx = (sx/float64(n) - s.cfg.Width/2) * s.cfg.CenterStrength
	sy = (sy/float64(n) - s.cfg.Height/2) * s.cfg.CenterStrength
	for i := range s.bodies {
		s.bodies[i].x -= sx
		s.bodies[i].y -= sy
	}
}
