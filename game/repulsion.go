package game

import "math"

// repulsionForce is the separation magnitude at dist, zero outside the radius.
func (t Tuning) repulsionForce(dist float64) float64 {
	if dist >= t.RepulseRadius || dist <= 0 {
		return 0
	}
	return math.Min(t.RepulseK/(dist*dist), t.RepulseCap)
}

// applyRepulsion recomputes every dot's repulsion velocity from the pairs of
// the current grid. Nothing carries over from the previous tick.
func applyRepulsion(s *State) {
	for i := range s.Dots {
		s.Dots[i].RX, s.Dots[i].RY = 0, 0
	}
	for i, j := range s.grid.Pairs() {
		a, b := &s.Dots[i], &s.Dots[j]
		dx, dy := b.X-a.X, b.Y-a.Y
		dist := math.Hypot(dx, dy)
		f := s.Tuning.repulsionForce(dist)
		if f == 0 {
			continue
		}
		fx, fy := dx/dist*f, dy/dist*f
		a.RX -= fx
		a.RY -= fy
		b.RX += fx
		b.RY += fy
	}
}
