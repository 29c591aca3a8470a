package game

import (
	"math"
	"math/rand/v2"
)

// Internal truth authoritative game state

// PlayerID is a compact player identifier. NoOwner marks a neutral dot.
type PlayerID uint32

const NoOwner PlayerID = 0

type Dot struct {
	ID uint64 // stable across ticks, unlike the slice index

	X, Y   float64
	VX, VY float64 // meander, fixed at creation
	IX, IY float64 // click impulse, decays every tick
	RX, RY float64 // repulsion, recomputed every tick

	Owner     PlayerID
	ClaimTick int // tick the resolver last assigned Owner, 0 if never
}

type Player struct {
	ID      PlayerID
	Stamina float64
	Holding bool // an impulse was applied since the last tick
}

// Edge is a connection between two dot indices of the current tick, I < J.
type Edge struct {
	I, J int
}

// pairKey is the hysteresis key: stable dot ids, A < B.
type pairKey struct {
	A, B uint64
}

func makePairKey(a, b uint64) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{A: a, B: b}
}

type State struct {
	Tick    int
	Tuning  Tuning
	Dots    []Dot
	Players map[PlayerID]*Player
	Edges   []Edge

	connected map[pairKey]struct{}
	grid      *Grid
	tallies   [][]ownerTally
	nextDotID uint64
	rng       *rand.Rand
}

// NewState seeds the base population at uniformly random positions.
func NewState(t Tuning, seed uint64) *State {
	s := &State{
		Tuning:    t,
		Dots:      make([]Dot, 0, t.BaseDots),
		Players:   make(map[PlayerID]*Player),
		connected: make(map[pairKey]struct{}),
		grid:      NewGrid(t.MapWidth, t.MapHeight, t.CellSize()),
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	for range t.BaseDots {
		s.Dots = append(s.Dots, s.newDot(s.rng.Float64()*t.MapWidth, s.rng.Float64()*t.MapHeight))
	}
	return s
}

func (s *State) newDot(x, y float64) Dot {
	s.nextDotID++
	theta := 2 * math.Pi * s.rng.Float64()
	vel := s.Tuning.MinDotVel + s.rng.Float64()*(s.Tuning.MaxDotVel-s.Tuning.MinDotVel)
	return Dot{
		ID: s.nextDotID,
		X:  x,
		Y:  y,
		VX: vel * math.Cos(theta),
		VY: vel * math.Sin(theta),
	}
}

// AddDot appends a dot with explicit kinematics; used by tests and tools.
func (s *State) AddDot(d Dot) int {
	s.nextDotID++
	d.ID = s.nextDotID
	s.Dots = append(s.Dots, d)
	return len(s.Dots) - 1
}

// OwnedCounts returns how many dots each player owns.
func (s *State) OwnedCounts() map[PlayerID]int {
	counts := make(map[PlayerID]int, len(s.Players))
	for i := range s.Dots {
		if o := s.Dots[i].Owner; o != NoOwner {
			counts[o]++
		}
	}
	return counts
}
