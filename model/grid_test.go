package model

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b Cell
		want int
	}{
		{Cell{X: 0, Y: 0}, Cell{X: 0, Y: 0}, 0},
		{Cell{X: 0, Y: 0}, Cell{X: 3, Y: 0}, 3},
		{Cell{X: 0, Y: 0}, Cell{X: 3, Y: 3}, 3},
		{Cell{X: 5, Y: 1}, Cell{X: 2, Y: 7}, 6},
		{Cell{X: 4, Y: 4}, Cell{X: 3, Y: 5}, 1},
	}
	for _, tc := range tests {
		if got := Distance(tc.a, tc.b); got != tc.want {
			t.Errorf("Distance(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
		if got := Distance(tc.b, tc.a); got != tc.want {
			t.Errorf("Distance(%v, %v) = %d, want %d (symmetry)", tc.b, tc.a, got, tc.want)
		}
	}
}

func TestAdjacent(t *testing.T) {
	c := Cell{X: 3, Y: 3}
	if Adjacent(c, c) {
		t.Error("a cell is not adjacent to itself")
	}
	if !Adjacent(c, Cell{X: 4, Y: 4}) {
		t.Error("diagonal neighbour should be adjacent")
	}
	if Adjacent(c, Cell{X: 5, Y: 3}) {
		t.Error("cell two steps away should not be adjacent")
	}
}

func TestGridValid(t *testing.T) {
	g := NewGrid(DefaultGridWidth, DefaultGridHeight, Cell{X: 4, Y: 4}, Cell{X: 20, Y: 20})

	tests := []struct {
		c    Cell
		want bool
	}{
		{Cell{X: 0, Y: 0}, true},
		{Cell{X: 9, Y: 7}, true},
		{Cell{X: 10, Y: 0}, false},
		{Cell{X: 0, Y: 8}, false},
		{Cell{X: -1, Y: 3}, false},
		{Cell{X: 4, Y: 4}, false},
	}
	for _, tc := range tests {
		if got := g.Valid(tc.c); got != tc.want {
			t.Errorf("Valid(%v) = %v, want %v", tc.c, got, tc.want)
		}
	}

	if got := g.Asteroids(); len(got) != 1 || got[0] != (Cell{X: 4, Y: 4}) {
		t.Errorf("Asteroids() = %v, want only the in-bounds asteroid", got)
	}
}

func TestGridAsteroidsSorted(t *testing.T) {
	g := NewGrid(10, 8, Cell{X: 5, Y: 2}, Cell{X: 1, Y: 2}, Cell{X: 9, Y: 0})
	got := g.Asteroids()
	want := []Cell{{X: 9, Y: 0}, {X: 1, Y: 2}, {X: 5, Y: 2}}
	if len(got) != len(want) {
		t.Fatalf("Asteroids() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Asteroids()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
