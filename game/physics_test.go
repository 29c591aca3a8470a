package game

import (
	"math"
	"testing"
)

func emptyState(tun Tuning) *State {
	tun.BaseDots = 0
	return NewState(tun, 1)
}

func TestRepulsionPushesPairApart(t *testing.T) {
	s := emptyState(DefaultTuning())
	a := s.AddDot(Dot{X: 100, Y: 100})
	b := s.AddDot(Dot{X: 110, Y: 100})

	s.grid.Rebuild(s.Dots)
	applyRepulsion(s)

	if got := s.Dots[a].RX; math.Abs(got+1) > 1e-9 {
		t.Fatalf("left dot RX = %f, want -1", got)
	}
	if got := s.Dots[b].RX; math.Abs(got-1) > 1e-9 {
		t.Fatalf("right dot RX = %f, want 1", got)
	}
	if s.Dots[a].RY != 0 || s.Dots[b].RY != 0 {
		t.Fatalf("expected no vertical repulsion")
	}
}

func TestRepulsionIsRecomputedEachTick(t *testing.T) {
	s := emptyState(DefaultTuning())
	a := s.AddDot(Dot{X: 100, Y: 100, RX: 5, RY: 5})
	s.AddDot(Dot{X: 400, Y: 400})

	s.grid.Rebuild(s.Dots)
	applyRepulsion(s)
	if s.Dots[a].RX != 0 || s.Dots[a].RY != 0 {
		t.Fatalf("stale repulsion carried over: (%f,%f)", s.Dots[a].RX, s.Dots[a].RY)
	}
}

func TestRepulsionCapsNearZero(t *testing.T) {
	tun := DefaultTuning()
	if f := tun.repulsionForce(0.5); f != tun.RepulseCap {
		t.Fatalf("force at 0.5 = %f, want cap %f", f, tun.RepulseCap)
	}
	if f := tun.repulsionForce(0); f != 0 {
		t.Fatalf("force at 0 = %f, want 0", f)
	}
	if f := tun.repulsionForce(tun.RepulseRadius); f != 0 {
		t.Fatalf("force at radius = %f, want 0", f)
	}
}

func TestIntegrateDecaysImpulse(t *testing.T) {
	s := emptyState(DefaultTuning())
	i := s.AddDot(Dot{X: 100, Y: 100, IX: 1})
	integrate(s)
	if got := s.Dots[i].IX; math.Abs(got-0.95) > 1e-12 {
		t.Fatalf("IX = %f, want 0.95", got)
	}
	if got := s.Dots[i].X; math.Abs(got-100.95) > 1e-9 {
		t.Fatalf("X = %f, want 100.95", got)
	}
}

func TestIntegrateWrapsAtPopulationFloor(t *testing.T) {
	tun := DefaultTuning()
	tun.BaseDots = 1
	s := NewState(tun, 1)
	s.Dots[0] = Dot{ID: s.Dots[0].ID, X: tun.MapWidth - 5, Y: 100, VX: 10, Owner: 3}

	integrate(s)
	if len(s.Dots) != 1 {
		t.Fatalf("dot removed at floor")
	}
	d := s.Dots[0]
	if math.Abs(d.X-5) > 1e-9 {
		t.Fatalf("wrapped X = %f, want 5", d.X)
	}
	if d.Y != 100 {
		t.Fatalf("Y changed on X wrap: %f", d.Y)
	}
	if d.Owner != NoOwner {
		t.Fatalf("owner kept after wrap: %d", d.Owner)
	}
}

func TestIntegrateRemovesAboveFloor(t *testing.T) {
	tun := DefaultTuning()
	tun.BaseDots = 1
	s := NewState(tun, 1)
	s.Dots[0].X, s.Dots[0].Y, s.Dots[0].VX, s.Dots[0].VY = 100, 100, 0, 0
	s.AddDot(Dot{X: 10, Y: 2, VY: -5})

	integrate(s)
	if len(s.Dots) != 1 {
		t.Fatalf("population = %d, want 1", len(s.Dots))
	}
	if s.Dots[0].X != 100 {
		t.Fatalf("wrong dot removed")
	}
}

func TestConnectHysteresis(t *testing.T) {
	s := emptyState(DefaultTuning())
	s.AddDot(Dot{X: 100, Y: 100})
	s.AddDot(Dot{X: 150.5, Y: 100})
	s.grid.Rebuild(s.Dots)

	connect(s)
	if len(s.Edges) != 0 {
		t.Fatalf("unconnected pair between thresholds connected: %v", s.Edges)
	}

	s.connected[makePairKey(s.Dots[0].ID, s.Dots[1].ID)] = struct{}{}
	connect(s)
	if len(s.Edges) != 1 || s.Edges[0] != (Edge{I: 0, J: 1}) {
		t.Fatalf("connected pair between thresholds dropped: %v", s.Edges)
	}
	connect(s)
	if len(s.Edges) != 1 {
		t.Fatalf("edge flickered on repeat: %v", s.Edges)
	}

	s.Dots[1].X = 152
	s.grid.Rebuild(s.Dots)
	connect(s)
	if len(s.Edges) != 0 {
		t.Fatalf("edge kept beyond disconnect distance")
	}
}

func TestConnectFollowsDotIdentityAcrossRemoval(t *testing.T) {
	s := emptyState(DefaultTuning())
	s.AddDot(Dot{X: 500, Y: 500})
	s.AddDot(Dot{X: 100, Y: 100})
	s.AddDot(Dot{X: 150.5, Y: 100})
	s.grid.Rebuild(s.Dots)
	s.connected[makePairKey(s.Dots[0].ID, s.Dots[1].ID)] = struct{}{}

	s.Dots = s.Dots[1:]
	s.grid.Rebuild(s.Dots)
	connect(s)
	if len(s.Edges) != 0 {
		t.Fatalf("pair inherited a removed dot's connection: %v", s.Edges)
	}
}
