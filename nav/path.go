// Package nav finds movement routes for stacks on the combat grid.
package nav

import (
	"math"

	"github.com/nstehr/vimy/vimy-combat/model"
)

// Path is a route from an origin (exclusive) to a destination (inclusive).
// Its length is the number of move points it costs.
type Path []model.Cell

// Last returns the final cell of the path, or origin for an empty path.
func (p Path) Last(origin model.Cell) model.Cell {
	if len(p) == 0 {
		return origin
	}
	return p[len(p)-1]
}

// Truncate returns the prefix of p that fits in n move points.
func (p Path) Truncate(n int) Path {
	if n < 0 {
		n = 0
	}
	if n >= len(p) {
		return p
	}
	return p[:n]
}

// Field is an occupancy snapshot taken for a single path query. Callers build
// a fresh Field from the roster for every query.
type Field struct {
	Grid     *model.Grid
	Occupied map[model.Cell]*model.Stack
}

// NewField snapshots the current combat occupancy.
func NewField(c *model.Combat) Field {
	return Field{Grid: c.Grid, Occupied: c.Roster.Occupancy()}
}

// Free reports whether mover may stand on c. The mover's own cell is free.
func (f Field) Free(c model.Cell, mover *model.Stack) bool {
	if !f.Grid.Valid(c) {
		return false
	}
	occ, ok := f.Occupied[c]
	return !ok || occ == mover
}

// Neighbour offsets indexed by octant: E, SE, S, SW, W, NW, N, NE. Y grows
// down, so octant k is the direction of angle k*45 degrees from atan2(dy, dx).
var compass = [8]model.Cell{
	{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: -1, Y: 1},
	{X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
}

// priority[k] lists neighbour offsets for a destination in octant k: the
// direct heading first, then alternating outward until the reverse heading.
var priority = func() [8][8]model.Cell {
	var out [8][8]model.Cell
	spread := [8]int{0, 1, -1, 2, -2, 3, -3, 4}
	for k := range 8 {
		for i, s := range spread {
			out[k][i] = compass[(k+s+8)%8]
		}
	}
	return out
}()

func octant(from, to model.Cell) int {
	dx, dy := to.X-from.X, to.Y-from.Y
	if dx == 0 && dy == 0 {
		return 0
	}
	k := int(math.Round(math.Atan2(float64(dy), float64(dx)) / (math.Pi / 4)))
	return (k%8 + 8) % 8
}

// BestPath returns the shortest path from origin to dest within budget move
// points. Among equally short paths the first one found under the octant
// priority order wins, which keeps the choice reproducible. origin == dest
// yields an empty path.
func BestPath(f Field, origin, dest model.Cell, budget int, mover *model.Stack) (Path, bool) {
	return BestPathInRange(f, origin, dest, budget, 0, mover)
}

// BestPathInRange is BestPath for a goal of any cell within rng of dest.
func BestPathInRange(f Field, origin, dest model.Cell, budget, rng int, mover *model.Stack) (Path, bool) {
	if gap(origin, dest, rng) == 0 {
		return Path{}, true
	}
	if budget <= 0 || gap(origin, dest, rng) > budget {
		return nil, false
	}
	s := &search{
		field:   f,
		dest:    dest,
		rng:     rng,
		budget:  budget,
		mover:   mover,
		onPath:  map[model.Cell]bool{origin: true},
		seen:    make(map[model.Cell]int),
		bestLen: budget + 1,
	}
	s.visit(origin, origin, 0)
	if s.best == nil {
		return nil, false
	}
	return s.best, true
}

// gap is the number of steps still needed to bring c within rng of dest.
func gap(c, dest model.Cell, rng int) int {
	return max(0, model.Distance(c, dest)-rng)
}

type search struct {
	field  Field
	dest   model.Cell
	rng    int
	budget int
	mover  *model.Stack

	path   []model.Cell
	onPath map[model.Cell]bool
	seen   map[model.Cell]int // shallowest depth each cell was entered at

	best    Path
	bestLen int
}

func (s *search) visit(cur, prev model.Cell, depth int) {
	if depth > 0 && gap(cur, s.dest, s.rng) == 0 {
		if depth < s.bestLen {
			s.best = append(Path(nil), s.path...)
			s.bestLen = depth
		}
		return
	}
	for _, d := range priority[octant(cur, s.dest)] {
		next := cur.Add(d)
		if s.onPath[next] || !s.field.Free(next, s.mover) {
			continue
		}
		// Stepping to a neighbour of the previous cell is never shorter
		// than going there directly.
		if depth > 0 && model.Adjacent(next, prev) {
			continue
		}
		nd := depth + 1
		rem := gap(next, s.dest, s.rng)
		if rem > s.budget-nd || nd+rem >= s.bestLen {
			continue
		}
		if d0, ok := s.seen[next]; ok && d0 <= nd {
			continue
		}
		s.seen[next] = nd

		s.path = append(s.path, next)
		s.onPath[next] = true
		s.visit(next, cur, nd)
		delete(s.onPath, next)
		s.path = s.path[:len(s.path)-1]
	}
}
