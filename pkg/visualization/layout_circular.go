package visualization

import "math"

// circularPositions arranges n nodes on a circle around the canvas center.
// A single node sits at the center.
func circularPositions(n int, cfg LayoutConfig) []Position {
	positions := make([]Position, n)
	if n == 0 {
		return positions
	}

	centerX := cfg.Width / 2
	centerY := cfg.Height / 2
	if n == 1 {
		positions[0] = Position{X: centerX, Y: centerY}
		return positions
	}

	radius := math.Min(centerX, centerY) - cfg.Padding
	if radius <= 0 {
		radius = math.Min(centerX, centerY)
	}
	angleStep := 2 * math.Pi / float64(n)

	for i := range positions {
		angle := float64(i) * angleStep
		positions[i] = Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}
	return positions
}
