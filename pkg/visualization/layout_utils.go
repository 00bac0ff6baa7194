package visualization

import "math"

// Bounds returns the box around every node, or the zero Rect when empty.
func (s *Simulation) Bounds() Rect {
	return boundsOf(s.Positions())
}

// Fit maps current positions into a width×height canvas with padding,
// preserving aspect ratio and centering the result.
func (s *Simulation) Fit(width, height, padding float64) map[string]Position {
	return fitPositions(s.Positions(), width, height, padding)
}

func boundsOf(positions map[string]Position) Rect {
	if len(positions) == 0 {
		return Rect{}
	}
	r := Rect{
		MinX: math.MaxFloat64, MinY: math.MaxFloat64,
		MaxX: -math.MaxFloat64, MaxY: -math.MaxFloat64,
	}
	for _, p := range positions {
		r.MinX = math.Min(r.MinX, p.X)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxY = math.Max(r.MaxY, p.Y)
	}
	return r
}

// fitPositions scales positions uniformly to fit within the padded canvas.
func fitPositions(positions map[string]Position, width, height, padding float64) map[string]Position {
	out := make(map[string]Position, len(positions))
	if len(positions) == 0 {
		return out
	}

	b := boundsOf(positions)
	targetWidth := math.Max(width-2*padding, 0)
	targetHeight := math.Max(height-2*padding, 0)

	rangeX, rangeY := b.Width(), b.Height()
	scale := 1.0
	switch {
	case rangeX < 0.01 && rangeY < 0.01:
		// a single point, or all points coincide
	case rangeX < 0.01:
		scale = targetHeight / rangeY
	case rangeY < 0.01:
		scale = targetWidth / rangeX
	default:
		scale = math.Min(targetWidth/rangeX, targetHeight/rangeY)
	}

	c := b.Center()
	for id, p := range positions {
		out[id] = Position{
			X: width/2 + (p.X-c.X)*scale,
			Y: height/2 + (p.Y-c.Y)*scale,
		}
	}
	return out
}
