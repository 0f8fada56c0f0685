package model

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Observed combat map size.
const (
	DefaultGridWidth  = 10
	DefaultGridHeight = 8
)

// Cell is a square on the combat grid. X grows to the right, Y grows down.
type Cell struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Add returns the cell offset by d.
func (c Cell) Add(d Cell) Cell { return Cell{X: c.X + d.X, Y: c.Y + d.Y} }

// Distance is the Chebyshev distance between two cells: diagonal and
// orthogonal steps both cost one move point.
func Distance(a, b Cell) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return max(dx, dy)
}

// Adjacent reports whether b is one of a's eight neighbours.
func Adjacent(a, b Cell) bool {
	return a != b && Distance(a, b) <= 1
}

// Grid is the fixed-size combat map. Asteroid cells are permanently blocked;
// stack occupancy is not stored here (see Roster.Occupancy).
type Grid struct {
	Width     int
	Height    int
	asteroids mapset.Set[Cell]
}

// NewGrid builds a grid with the given asteroid cells. Out-of-bounds asteroids
// are ignored.
func NewGrid(width, height int, asteroids ...Cell) *Grid {
	g := &Grid{Width: width, Height: height, asteroids: mapset.New[Cell]()}
	for _, c := range asteroids {
		if g.InBounds(c) {
			g.asteroids.Put(c)
		}
	}
	return g
}

// InBounds reports whether c lies on the map.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Asteroid reports whether c is a permanently blocked cell.
func (g *Grid) Asteroid(c Cell) bool {
	return g.asteroids.Has(c)
}

// Valid reports whether a stack could ever stand on c.
func (g *Grid) Valid(c Cell) bool {
	return g.InBounds(c) && !g.Asteroid(c)
}

// Asteroids returns the blocked cells in row-major order.
func (g *Grid) Asteroids() []Cell {
	out := make([]Cell, 0, g.asteroids.Size())
	g.asteroids.Each(func(c Cell) { out = append(out, c) })
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
