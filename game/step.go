package game

import (
	"maps"
	"slices"
)

// StepResult lists the players that lost all territory this tick and were
// granted a fresh cluster.
type StepResult struct {
	Respawned []PlayerID
}

// Step advances the simulation by one tick.
func Step(s *State) StepResult {
	s.Tick++

	s.grid.Rebuild(s.Dots)
	applyRepulsion(s)
	integrate(s)

	s.grid.Rebuild(s.Dots)
	connect(s)
	resolveOwnership(s)

	var res StepResult
	owned := s.OwnedCounts()
	for _, id := range slices.Sorted(maps.Keys(s.Players)) {
		p := s.Players[id]
		if p.Holding {
			p.Holding = false
		} else {
			p.Stamina += (s.Tuning.MaxStamina - p.Stamina) * s.Tuning.StaminaRegenFraction
			p.Stamina = min(p.Stamina, s.Tuning.MaxStamina)
		}
		if owned[id] == 0 {
			spawnCluster(s, id)
			res.Respawned = append(res.Respawned, id)
		}
	}
	return res
}
