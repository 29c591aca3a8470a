package game

import (
	"iter"
	"math"
)

// Grid buckets dot indices into square cells so neighbor pairs can be
// enumerated without scanning every pair.
type Grid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]int
}

// NewGrid creates a grid covering [0,w]x[0,h] inclusive of the far edges.
func NewGrid(w, h, cellSize float64) *Grid {
	cols := int(w/cellSize) + 1
	rows := int(h/cellSize) + 1
	return &Grid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([][]int, cols*rows),
	}
}

// Rebuild clears every cell and re-inserts all dots. Dots whose cell lies
// outside the grid are skipped.
func (g *Grid) Rebuild(dots []Dot) {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	for i := range dots {
		cx := int(math.Floor(dots[i].X / g.cellSize))
		cy := int(math.Floor(dots[i].Y / g.cellSize))
		if cx < 0 || cx >= g.cols || cy < 0 || cy >= g.rows {
			continue
		}
		idx := cy*g.cols + cx
		g.cells[idx] = append(g.cells[idx], i)
	}
}

// forward neighbors: east, south-west, south, south-east. Visiting only
// these from every cell covers each adjacent cell pair exactly once.
var forward = [4][2]int{{1, 0}, {-1, 1}, {0, 1}, {1, 1}}

// Pairs yields every candidate pair (i, j), i < j, sharing a cell or lying
// in adjacent cells. The sequence can be ranged over repeatedly.
func (g *Grid) Pairs() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for cy := range g.rows {
			for cx := range g.cols {
				cell := g.cells[cy*g.cols+cx]
				if len(cell) == 0 {
					continue
				}
				for a := 0; a < len(cell); a++ {
					for b := a + 1; b < len(cell); b++ {
						if !yieldOrdered(yield, cell[a], cell[b]) {
							return
						}
					}
				}
				for _, off := range forward {
					nx, ny := cx+off[0], cy+off[1]
					if nx < 0 || nx >= g.cols || ny >= g.rows {
						continue
					}
					other := g.cells[ny*g.cols+nx]
					for _, i := range cell {
						for _, j := range other {
							if !yieldOrdered(yield, i, j) {
								return
							}
						}
					}
				}
			}
		}
	}
}

func yieldOrdered(yield func(int, int) bool, i, j int) bool {
	if i > j {
		i, j = j, i
	}
	return yield(i, j)
}
