package game

import "math"

// Click is a player impulse request. A drag pushes along the segment from
// (PX,PY) to (X,Y); a point click pushes away from (X,Y).
type Click struct {
	Player PlayerID
	X, Y   float64
	Drag   bool
	PX, PY float64
}

// ClickResult describes an accepted click for broadcast to other players.
// Stamina is the value that set the click's effectiveness.
type ClickResult struct {
	Click
	Stamina float64
	Cost    float64
}

// Effectiveness maps stamina to a radius and force multiplier in
// [MinEffectiveness, 1].
func (t Tuning) Effectiveness(stamina float64) float64 {
	frac := math.Max(0, math.Min(1, stamina/t.MaxStamina))
	return t.MinEffectiveness + (1-t.MinEffectiveness)*math.Sqrt(frac)
}

// ApplyClick validates c against the player's territory and stamina and
// pushes nearby dots. Invalid clicks are ignored: ok is false and nothing
// changes.
func ApplyClick(s *State, c Click) (res ClickResult, ok bool) {
	p, found := s.Players[c.Player]
	if !found || !finite(c.X, c.Y) || (c.Drag && !finite(c.PX, c.PY)) {
		return ClickResult{}, false
	}
	if !s.nearOwned(c.Player, c.X, c.Y) {
		return ClickResult{}, false
	}
	if c.Drag && !s.nearOwned(c.Player, c.PX, c.PY) {
		return ClickResult{}, false
	}

	t := &s.Tuning
	cost := t.ClickCost
	if c.Drag {
		cost = math.Hypot(c.X-c.PX, c.Y-c.PY) * t.DragCostPerDistance
	}
	cost = math.Min(cost, p.Stamina)

	stamina := p.Stamina
	eff := t.Effectiveness(stamina)
	p.Stamina = math.Max(0, p.Stamina-cost)
	p.Holding = true

	radius := t.ClickRadius * eff
	force := t.ClickForce * eff
	ax, ay := c.X, c.Y
	if c.Drag {
		ax, ay = c.PX, c.PY
	}
	for i := range s.Dots {
		d := &s.Dots[i]
		qx, qy := closestOnSegment(d.X, d.Y, ax, ay, c.X, c.Y)
		dx, dy := d.X-qx, d.Y-qy
		dist := math.Hypot(dx, dy)
		if dist >= radius || dist == 0 {
			continue
		}
		mag := (1 - dist/radius) * force
		d.IX = combineImpulse(d.IX, dx/dist*mag)
		d.IY = combineImpulse(d.IY, dy/dist*mag)
	}
	return ClickResult{Click: c, Stamina: stamina, Cost: cost}, true
}

func (s *State) nearOwned(id PlayerID, x, y float64) bool {
	r2 := s.Tuning.ClickRange * s.Tuning.ClickRange
	for i := range s.Dots {
		d := &s.Dots[i]
		if d.Owner != id {
			continue
		}
		dx, dy := d.X-x, d.Y-y
		if dx*dx+dy*dy < r2 {
			return true
		}
	}
	return false
}

// combineImpulse merges one velocity component. Opposing pushes add; pushes
// in the same direction keep whichever is stronger.
func combineImpulse(old, add float64) float64 {
	if math.Signbit(old) != math.Signbit(add) || old == 0 || add == 0 {
		return old + add
	}
	if math.Abs(add) > math.Abs(old) {
		return add
	}
	return old
}

// closestOnSegment returns the point of segment a-b nearest to (px,py).
func closestOnSegment(px, py, ax, ay, bx, by float64) (float64, float64) {
	dx, dy := bx-ax, by-ay
	len2 := dx*dx + dy*dy
	if len2 == 0 {
		return ax, ay
	}
	t := ((px-ax)*dx + (py-ay)*dy) / len2
	t = math.Max(0, math.Min(1, t))
	return ax + t*dx, ay + t*dy
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
