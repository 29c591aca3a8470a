package game

import "math"

// AddPlayer registers id at full stamina and grants it a fresh cluster.
func AddPlayer(s *State, id PlayerID) *Player {
	p := &Player{ID: id, Stamina: s.Tuning.MaxStamina}
	s.Players[id] = p
	spawnCluster(s, id)
	return p
}

// RemovePlayer neutralizes every dot id owned and forgets the player. Dots
// are never destroyed here.
func RemovePlayer(s *State, id PlayerID) {
	for i := range s.Dots {
		if s.Dots[i].Owner == id {
			s.Dots[i].Owner = NoOwner
		}
	}
	delete(s.Players, id)
}

func spawnCluster(s *State, id PlayerID) {
	t := &s.Tuning
	x, y := findSpawnPoint(s)
	for range t.SpawnDots {
		d := s.newDot(
			x+(s.rng.Float64()-0.5)*t.SpawnSpread,
			y+(s.rng.Float64()-0.5)*t.SpawnSpread,
		)
		d.Owner = id
		s.Dots = append(s.Dots, d)
	}
}

// findSpawnPoint looks for a point inside the spawn margin that is at least
// SpawnMinDist from every owned dot, and falls back to a uniform random point
// once the attempt budget runs out.
func findSpawnPoint(s *State) (float64, float64) {
	t := &s.Tuning
	var owned []int
	for i := range s.Dots {
		if s.Dots[i].Owner != NoOwner {
			owned = append(owned, i)
		}
	}
	for range t.SpawnAttempts {
		x := t.SpawnMargin + s.rng.Float64()*(t.MapWidth-2*t.SpawnMargin)
		y := t.SpawnMargin + s.rng.Float64()*(t.MapHeight-2*t.SpawnMargin)
		if len(owned) == 0 {
			return x, y
		}
		minDist := math.Inf(1)
		for _, i := range owned {
			minDist = math.Min(minDist, math.Hypot(s.Dots[i].X-x, s.Dots[i].Y-y))
		}
		if minDist >= t.SpawnMinDist {
			return x, y
		}
	}
	return s.rng.Float64() * t.MapWidth, s.rng.Float64() * t.MapHeight
}
