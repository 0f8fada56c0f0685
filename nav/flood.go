package nav

import "github.com/nstehr/vimy/vimy-combat/model"

// Flood returns every cell mover can reach from origin within budget move
// points, mapped to its step count. The origin maps to zero.
func Flood(f Field, origin model.Cell, budget int, mover *model.Stack) map[model.Cell]int {
	dist := map[model.Cell]int{origin: 0}
	frontier := []model.Cell{origin}
	for step := 1; step <= budget && len(frontier) > 0; step++ {
		var next []model.Cell
		for _, c := range frontier {
			for _, d := range compass {
				n := c.Add(d)
				if _, ok := dist[n]; ok || !f.Free(n, mover) {
					continue
				}
				dist[n] = step
				next = append(next, n)
			}
		}
		frontier = next
	}
	return dist
}

// Reachable reports whether s could legally end its move on to this turn,
// without building a path.
func Reachable(f Field, s *model.Stack, to model.Cell) bool {
	if !s.CanMove() && to != s.Cell() {
		return false
	}
	if !f.Free(to, s) {
		return false
	}
	if model.Distance(s.Cell(), to) > s.Move {
		return false
	}
	_, ok := Flood(f, s.Cell(), s.Move, s)[to]
	return ok
}

// Approach picks where mover should stop to close on dest: the reachable
// cell needing the fewest further steps to bring dest within rng, then the
// fewest steps to get there, then the closest to dest, then row-major order.
func Approach(f Field, origin, dest model.Cell, budget, rng int, mover *model.Stack) (model.Cell, int) {
	best, bestSteps := origin, 0
	bestGap, bestDist := gap(origin, dest, rng), model.Distance(origin, dest)
	for c, steps := range Flood(f, origin, budget, mover) {
		g, d := gap(c, dest, rng), model.Distance(c, dest)
		switch {
		case g != bestGap:
			if g > bestGap {
				continue
			}
		case steps != bestSteps:
			if steps > bestSteps {
				continue
			}
		case d != bestDist:
			if d > bestDist {
				continue
			}
		case !rowMajorLess(c, best):
			continue
		}
		best, bestSteps, bestGap, bestDist = c, steps, g, d
	}
	return best, bestSteps
}

func rowMajorLess(a, b model.Cell) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
