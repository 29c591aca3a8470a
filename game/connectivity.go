package game

// connect rebuilds the edge set from the current grid. A pair that was
// connected last tick stays connected up to DisconnectDist; a new pair needs
// to come within ConnectDist.
func connect(s *State) {
	connectR2 := s.Tuning.ConnectDist * s.Tuning.ConnectDist
	disconnectR2 := s.Tuning.DisconnectDist * s.Tuning.DisconnectDist

	next := make(map[pairKey]struct{}, len(s.connected))
	s.Edges = s.Edges[:0]
	for i, j := range s.grid.Pairs() {
		a, b := &s.Dots[i], &s.Dots[j]
		dx, dy := a.X-b.X, a.Y-b.Y
		dist2 := dx*dx + dy*dy

		key := makePairKey(a.ID, b.ID)
		threshold := connectR2
		if _, ok := s.connected[key]; ok {
			threshold = disconnectR2
		}
		if dist2 < threshold {
			s.Edges = append(s.Edges, Edge{I: i, J: j})
			next[key] = struct{}{}
		}
	}
	s.connected = next
}
