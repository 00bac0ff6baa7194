package visualization

import "math"

// applyCharge repels every node from every other, approximating distant
// groups by their centroid (Barnes–Hut).
func (s *Simulation) applyCharge() {
	n := len(s.bodies)
	if n < 2 {
		return
	}
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, b := range s.bodies {
		xs[i], ys[i] = b.x, b.y
	}
	tree := newQuadTree(xs, ys)
	tree.accumulate()

	theta2 := s.cfg.Theta * s.cfg.Theta
	dmin2 := s.cfg.DistanceMin2
	k := s.cfg.Charge * s.alpha

	for i := range s.bodies {
		b := &s.bodies[i]
		tree.visit(func(q *quad, x0, _, x1, _ float64) bool {
			if q.count == 0 {
				return true
			}
			dx, dy := q.cx-b.x, q.cy-b.y
			w := x1 - x0
			l := dx*dx + dy*dy

			// far enough away: treat the whole quad as one body
			if !q.leaf && w*w/theta2 < l {
				if l < dmin2 {
					l = math.Sqrt(dmin2 * l)
				}
				f := k * float64(q.count) / l
				b.vx += dx * f
				b.vy += dy * f
				return true
			}
			if !q.leaf {
				return false
			}

			for _, j := range q.points {
				if j == i {
					continue
				}
				dx, dy := xs[j]-b.x, ys[j]-b.y
				if dx == 0 {
					dx = s.jiggle()
				}
				if dy == 0 {
					dy = s.jiggle()
				}
				l := dx*dx + dy*dy
				if l < dmin2 {
					l = math.Sqrt(dmin2 * l)
				}
				f := k / l
				b.vx += dx * f
				b.vy += dy * f
			}
			return true
		})
	}
}

// applyCollide pushes apart nodes whose disks overlap, using positions
// predicted from current velocities.
func (s *Simulation) applyCollide() {
	n := len(s.bodies)
	if n < 2 {
		return
	}
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, b := range s.bodies {
		xs[i], ys[i] = b.x+b.vx, b.y+b.vy
	}
	tree := newQuadTree(xs, ys)

	r := s.cfg.CollideRadius
	reach := 2 * r
	strength := s.cfg.CollideStrength

	for i := range s.bodies {
		b := &s.bodies[i]
		xi, yi := b.x+b.vx, b.y+b.vy

		tree.visit(func(q *quad, x0, y0, x1, y1 float64) bool {
			if x0 > xi+reach || x1 < xi-reach || y0 > yi+reach || y1 < yi-reach {
				return true
			}
			if !q.leaf {
				return false
			}
			for _, j := range q.points {
				// each pair once
				if j <= i {
					continue
				}
				o := &s.bodies[j]
				x := xi - o.x - o.vx
				y := yi - o.y - o.vy
				l := x*x + y*y
				if l >= reach*reach {
					continue
				}
				if x == 0 {
					x = s.jiggle()
					l += x * x
				}
				if y == 0 {
					y = s.jiggle()
					l += y * y
				}
				d := math.Sqrt(l)
				k := (reach - d) / d * strength
				x *= k
				y *= k
				// equal radii split the correction evenly
				b.vx += x * 0.5
				b.vy += y * 0.5
				o.vx -= x * 0.5
				o.vy -= y * 0.5
			}
			return true
		})
	}
}
