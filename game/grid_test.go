package game

import (
	"math/rand/v2"
	"testing"
)

func TestGridPairsCoverNeighborsOnce(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	const w, h, cell = 500.0, 400.0, 51.0
	dots := make([]Dot, 400)
	for i := range dots {
		dots[i] = Dot{X: rng.Float64() * w, Y: rng.Float64() * h}
	}
	g := NewGrid(w, h, cell)
	g.Rebuild(dots)

	got := make(map[Edge]int)
	for i, j := range g.Pairs() {
		if i >= j {
			t.Fatalf("pair (%d,%d) not ordered", i, j)
		}
		got[Edge{I: i, J: j}]++
	}
	for e, n := range got {
		if n != 1 {
			t.Fatalf("pair %v emitted %d times", e, n)
		}
	}
	for i := range dots {
		for j := i + 1; j < len(dots); j++ {
			dx, dy := dots[i].X-dots[j].X, dots[i].Y-dots[j].Y
			if dx*dx+dy*dy < cell*cell && got[Edge{I: i, J: j}] == 0 {
				t.Fatalf("neighbor pair (%d,%d) missing", i, j)
			}
		}
	}

	again := 0
	for range g.Pairs() {
		again++
	}
	if again != len(got) {
		t.Fatalf("second pass yielded %d pairs, want %d", again, len(got))
	}
}

func TestGridSkipsOutOfBoundsDots(t *testing.T) {
	g := NewGrid(100, 100, 50)
	g.Rebuild([]Dot{{X: 10, Y: 10}, {X: -500, Y: 10}, {X: 20, Y: 20}})
	n := 0
	for i, j := range g.Pairs() {
		if i == 1 || j == 1 {
			t.Fatalf("out of bounds dot paired: (%d,%d)", i, j)
		}
		n++
	}
	if n != 1 {
		t.Fatalf("pairs = %d, want 1", n)
	}
}

func TestGridPairsStopEarly(t *testing.T) {
	g := NewGrid(100, 100, 50)
	g.Rebuild([]Dot{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}})
	n := 0
	for range g.Pairs() {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("expected iteration to stop after first pair")
	}
}
