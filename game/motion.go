package game

import (
	"math"
	"slices"
)

// integrate moves every dot one tick and applies the boundary policy: an
// escaping dot is removed while the population is above the base floor,
// otherwise it wraps to the opposite edge and turns neutral.
func integrate(s *State) {
	t := &s.Tuning
	for i := len(s.Dots) - 1; i >= 0; i-- {
		d := &s.Dots[i]
		d.IX *= t.ImpulseRetention
		d.IY *= t.ImpulseRetention
		d.X += d.VX + d.IX + d.RX
		d.Y += d.VY + d.IY + d.RY

		outX := d.X < 0 || d.X > t.MapWidth
		outY := d.Y < 0 || d.Y > t.MapHeight
		if !outX && !outY {
			continue
		}
		if len(s.Dots) > t.BaseDots {
			s.Dots = slices.Delete(s.Dots, i, i+1)
			continue
		}
		if outX {
			d.X = wrap(d.X, t.MapWidth)
		}
		if outY {
			d.Y = wrap(d.Y, t.MapHeight)
		}
		d.Owner = NoOwner
	}
}

func wrap(v, size float64) float64 {
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	return v
}
