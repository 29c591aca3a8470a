package game

type ownerTally struct {
	owner PlayerID
	count int
}

func addTally(ts []ownerTally, owner PlayerID) []ownerTally {
	for k := range ts {
		if ts[k].owner == owner {
			ts[k].count++
			return ts
		}
	}
	return append(ts, ownerTally{owner: owner, count: 1})
}

func tallyOf(ts []ownerTally, owner PlayerID) int {
	for _, t := range ts {
		if t.owner == owner {
			return t.count
		}
	}
	return 0
}

// stableClaim reports whether d may influence its neighbors at tick. A dot
// claimed this tick or the previous one is still in its grace period.
// Ownership granted at spawn (ClaimTick 0) is stable from the start.
func stableClaim(d *Dot, tick int) bool {
	return d.ClaimTick == 0 || d.ClaimTick < tick-1
}

// resolveOwnership tallies neighbor owners over this tick's edges, then
// decides each dot from that snapshot so no decision feeds another.
func resolveOwnership(s *State) {
	n := len(s.Dots)
	if cap(s.tallies) < n {
		s.tallies = make([][]ownerTally, n)
	}
	s.tallies = s.tallies[:n]
	for i := range s.tallies {
		s.tallies[i] = s.tallies[i][:0]
	}

	for _, e := range s.Edges {
		a, b := &s.Dots[e.I], &s.Dots[e.J]
		if a.Owner != NoOwner && stableClaim(a, s.Tick) {
			s.tallies[e.J] = addTally(s.tallies[e.J], a.Owner)
		}
		if b.Owner != NoOwner && stableClaim(b, s.Tick) {
			s.tallies[e.I] = addTally(s.tallies[e.I], b.Owner)
		}
	}

	for i := range s.Dots {
		d := &s.Dots[i]
		owner, changed := decideOwner(d.Owner, s.tallies[i])
		if !changed {
			continue
		}
		d.Owner = owner
		if owner != NoOwner {
			d.ClaimTick = s.Tick
		}
	}
}

// decideOwner is the per-dot ownership rule. The incumbent keeps the dot
// unless a single challenger strictly out-counts it; ties never flip.
func decideOwner(current PlayerID, ts []ownerTally) (PlayerID, bool) {
	currentCount := 0
	if current != NoOwner {
		currentCount = tallyOf(ts, current)
	}
	if len(ts) == 0 {
		if currentCount == 0 && current != NoOwner {
			return NoOwner, true
		}
		return current, false
	}

	maxCount, best, leaders := 0, NoOwner, 0
	for _, t := range ts {
		switch {
		case t.count > maxCount:
			maxCount, best, leaders = t.count, t.owner, 1
		case t.count == maxCount:
			leaders++
		}
	}
	if maxCount <= currentCount || leaders > 1 {
		return current, false
	}
	return best, true
}
