package game

import "testing"

func TestDecideOwner(t *testing.T) {
	tests := []struct {
		name    string
		current PlayerID
		tallies []ownerTally
		want    PlayerID
		changed bool
	}{
		{"isolated owned dot turns neutral", 1, nil, NoOwner, true},
		{"isolated neutral dot stays neutral", NoOwner, nil, NoOwner, false},
		{"single challenger claims neutral", NoOwner, []ownerTally{{2, 1}}, 2, true},
		{"incumbent holds on equal support", 1, []ownerTally{{1, 2}, {2, 2}}, 1, false},
		{"challenger must strictly exceed", 1, []ownerTally{{1, 1}, {2, 3}}, 2, true},
		{"tie between challengers keeps owner", 1, []ownerTally{{2, 2}, {3, 2}}, 1, false},
		{"tie on neutral keeps neutral", NoOwner, []ownerTally{{2, 1}, {3, 1}}, NoOwner, false},
		{"owner without own support loses to challenger", 1, []ownerTally{{2, 1}}, 2, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := decideOwner(tc.current, tc.tallies)
			if got != tc.want || changed != tc.changed {
				t.Fatalf("decideOwner(%d, %v) = (%d, %v), want (%d, %v)",
					tc.current, tc.tallies, got, changed, tc.want, tc.changed)
			}
		})
	}
}

// graceState links dot 0, owned by player 1, to neutral dot 1.
func graceState(claimTick, tick int) *State {
	s := emptyState(DefaultTuning())
	s.AddDot(Dot{X: 100, Y: 100, Owner: 1, ClaimTick: claimTick})
	s.AddDot(Dot{X: 120, Y: 100})
	s.Tick = tick
	s.Edges = []Edge{{I: 0, J: 1}}
	return s
}

func TestGracePeriodBlocksFreshClaims(t *testing.T) {
	for _, claim := range []int{10, 9} {
		s := graceState(claim, 10)
		resolveOwnership(s)
		if s.Dots[1].Owner != NoOwner {
			t.Fatalf("dot claimed at %d influenced neighbor at tick 10", claim)
		}
	}
}

func TestStableClaimPropagates(t *testing.T) {
	s := graceState(8, 10)
	resolveOwnership(s)
	if s.Dots[1].Owner != 1 {
		t.Fatalf("stable claim did not propagate, owner=%d", s.Dots[1].Owner)
	}
	if s.Dots[1].ClaimTick != 10 {
		t.Fatalf("claim tick = %d, want 10", s.Dots[1].ClaimTick)
	}
}

func TestSpawnGrantIsStable(t *testing.T) {
	s := graceState(0, 1)
	resolveOwnership(s)
	if s.Dots[1].Owner != 1 {
		t.Fatalf("spawn-granted ownership did not influence neighbor on first tick")
	}
}

func TestResolveUsesSnapshotOfOwners(t *testing.T) {
	// 0(p1) - 1(neutral) - 2(neutral): dot 1 flips this tick, but dot 2 must
	// not see that flip within the same tick.
	s := emptyState(DefaultTuning())
	s.AddDot(Dot{X: 100, Y: 100, Owner: 1})
	s.AddDot(Dot{X: 120, Y: 100})
	s.AddDot(Dot{X: 140, Y: 100})
	s.Tick = 5
	s.Edges = []Edge{{I: 0, J: 1}, {I: 1, J: 2}}

	resolveOwnership(s)
	if s.Dots[1].Owner != 1 {
		t.Fatalf("middle dot owner = %d, want 1", s.Dots[1].Owner)
	}
	if s.Dots[2].Owner != NoOwner {
		t.Fatalf("ownership cascaded within one tick")
	}
}
