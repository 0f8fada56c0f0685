package battle

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/nstehr/vimy/vimy-combat/model"
	"github.com/nstehr/vimy/vimy-combat/rules"
)

var laser = &model.Weapon{Name: "laser", Kind: model.Beam, MinDamage: 1, MaxDamage: 4, Range: 1, Shots: 1}

func warship() *model.Design {
	return &model.Design{Name: "warship", Hits: 10, Attack: 2, Speed: 2, Cost: 50, Retreat: true,
		Mounts: []model.Mount{{Weapon: laser, Count: 2}}}
}

func scout() *model.Design {
	return &model.Design{Name: "scout", Hits: 3, Speed: 3, Cost: 5, Retreat: true}
}

func ship(name string, empire model.EmpireID, d *model.Design, num, x, y int) *model.Stack {
	return model.NewShip(name, empire, d, num, model.Cell{X: x, Y: y})
}

func twoEmpires() []*model.Empire {
	return []*model.Empire{{ID: 1, Name: "Humans", AI: true}, {ID: 2, Name: "Sakkra", AI: true}}
}

func TestNewRequiresTwoSides(t *testing.T) {
	tests := []struct {
		name   string
		stacks []*model.Stack
		allies [][2]model.EmpireID
		ok     bool
	}{
		{
			name:   "one side",
			stacks: []*model.Stack{ship("a", 1, warship(), 1, 0, 0), ship("b", 1, warship(), 1, 1, 0)},
		},
		{
			name: "three sides",
			stacks: []*model.Stack{
				ship("a", 1, warship(), 1, 0, 0),
				ship("b", 2, warship(), 1, 5, 0),
				ship("c", 3, warship(), 1, 9, 0),
			},
		},
		{
			name: "allies make one side",
			stacks: []*model.Stack{
				ship("a", 1, warship(), 1, 0, 0),
				ship("b", 2, warship(), 1, 5, 0),
				ship("c", 3, warship(), 1, 9, 0),
			},
			allies: [][2]model.EmpireID{{1, 3}},
			ok:     true,
		},
		{
			name: "late member links two blocs",
			stacks: []*model.Stack{
				ship("a", 1, warship(), 1, 0, 0),
				ship("b", 4, warship(), 1, 5, 0),
				ship("c", 3, warship(), 1, 9, 0),
				ship("d", 2, warship(), 1, 0, 7),
			},
			allies: [][2]model.EmpireID{{1, 2}, {2, 3}},
			ok:     true,
		},
		{
			name: "monsters are a side",
			stacks: []*model.Stack{
				ship("a", 1, warship(), 1, 0, 0),
				model.NewMonster("Guardian", warship(), 1, model.Cell{X: 5, Y: 5}),
			},
			ok: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rel := model.NewRelations()
			for _, p := range tc.allies {
				rel.Ally(p[0], p[1])
			}
			_, err := New(Options{Stacks: tc.stacks, Diplomacy: rel})
			if tc.ok && err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidSides) {
				t.Fatalf("err = %v, want ErrInvalidSides", err)
			}
		})
	}
}

func TestNewValidatesPlacement(t *testing.T) {
	grid := model.NewGrid(10, 8, model.Cell{X: 4, Y: 4})
	tests := []struct {
		name   string
		stacks []*model.Stack
		wards  map[string]string
		want   string
	}{
		{
			name:   "duplicate name",
			stacks: []*model.Stack{ship("a", 1, warship(), 1, 0, 0), ship("a", 2, warship(), 1, 5, 0)},
			want:   "duplicate stack name",
		},
		{
			name:   "shared cell",
			stacks: []*model.Stack{ship("a", 1, warship(), 1, 0, 0), ship("b", 2, warship(), 1, 0, 0)},
			want:   "share cell",
		},
		{
			name:   "asteroid",
			stacks: []*model.Stack{ship("a", 1, warship(), 1, 4, 4), ship("b", 2, warship(), 1, 0, 0)},
			want:   "off the grid or blocked",
		},
		{
			name:   "off grid",
			stacks: []*model.Stack{ship("a", 1, warship(), 1, 10, 0), ship("b", 2, warship(), 1, 0, 0)},
			want:   "off the grid or blocked",
		},
		{
			name:   "unknown ward",
			stacks: []*model.Stack{ship("a", 1, warship(), 1, 0, 0), ship("b", 2, warship(), 1, 5, 0)},
			wards:  map[string]string{"a": "Sol"},
			want:   "no such stack",
		},
		{
			name:   "enemy ward",
			stacks: []*model.Stack{ship("a", 1, warship(), 1, 0, 0), ship("b", 2, warship(), 1, 5, 0)},
			wards:  map[string]string{"a": "b"},
			want:   "another side",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(Options{Grid: grid, Stacks: tc.stacks, Wards: tc.wards})
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestNewAssignsWardsAndControl(t *testing.T) {
	colony := model.NewColony("Sol", 1, nil, 0, 80, 40, model.Cell{X: 0, Y: 4})
	escort := ship("escort", 1, warship(), 1, 1, 4)
	raider := ship("raider", 2, warship(), 1, 8, 4)
	empires := twoEmpires()
	empires[1].AI = false

	b, err := New(Options{
		Empires: empires,
		Stacks:  []*model.Stack{colony, escort, raider},
		Wards:   map[string]string{"escort": "Sol"},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if b.Combat.Roster.Get(escort.Ward) != colony {
		t.Error("escort ward not resolved to the colony")
	}
	if raider.AI {
		t.Error("stack of a human empire marked AI-controlled")
	}
	if !escort.AI {
		t.Error("stack of an AI empire marked human-controlled")
	}
}

func TestRunScoutFlees(t *testing.T) {
	b, err := New(Options{
		Empires: twoEmpires(),
		Stacks: []*model.Stack{
			ship("wolves", 1, warship(), 3, 0, 0),
			ship("snoop", 2, scout(), 1, 6, 6),
		},
		Seed: 1,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Outcome != OutcomeVictory || !res.Outcome.Decided() {
		t.Fatalf("outcome = %v, want victory", res.Outcome)
	}
	if res.Rounds != 1 {
		t.Errorf("rounds = %d, want 1", res.Rounds)
	}
	if !reflect.DeepEqual(res.Winners, []model.EmpireID{1}) {
		t.Errorf("winners = %v, want [1]", res.Winners)
	}
	if b.Log.Count(EventRetreated) != 1 {
		t.Errorf("retreat events = %d, want 1", b.Log.Count(EventRetreated))
	}
	if got := res.Survivors(); len(got) != 1 || got[0].Name != "wolves" {
		t.Errorf("survivors = %+v", got)
	}
}

func TestRunStalemate(t *testing.T) {
	b, err := New(Options{
		Stacks: []*model.Stack{
			ship("snoop", 1, scout(), 1, 0, 0),
			ship("peek", 2, scout(), 1, 9, 7),
		},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Outcome != OutcomeStalemate || res.Rounds != 0 {
		t.Errorf("outcome = %v after %d rounds, want stalemate after 0", res.Outcome, res.Rounds)
	}
	if res.Outcome.Decided() || len(res.Winners) != 0 {
		t.Errorf("stalemate reported winners %v", res.Winners)
	}
}

func duel(seed uint64) *Battle {
	b, err := New(Options{
		Name:    "duel",
		Empires: twoEmpires(),
		Stacks: []*model.Stack{
			ship("alpha", 1, warship(), 2, 0, 3),
			ship("bravo", 2, warship(), 2, 9, 4),
		},
		Seed:      seed,
		MaxRounds: 30,
	})
	if err != nil {
		panic(err)
	}
	return b
}

func TestRunDeterministic(t *testing.T) {
	first, err := duel(42).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	second, err := duel(42).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different battles:\n%s\nvs\n%s",
			FormatEvents(first.Events), FormatEvents(second.Events))
	}
	if len(first.Events) == 0 {
		t.Error("duel recorded no events")
	}
	if first.Rounds > 30 {
		t.Errorf("rounds = %d, beyond the cap", first.Rounds)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := duel(7).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if res.Outcome != OutcomeCancelled {
		t.Errorf("outcome = %v, want cancelled", res.Outcome)
	}
}

type holdCommander struct{ turns []string }

func (h *holdCommander) TakeTurn(_ context.Context, _ *model.Combat, s *model.Stack) rules.TurnState {
	h.turns = append(h.turns, s.Name)
	return rules.TurnComplete
}

func TestRunHumanStacksUseCommander(t *testing.T) {
	empires := twoEmpires()
	empires[1].AI = false
	cmd := &holdCommander{}

	b, err := New(Options{
		Empires: empires,
		Stacks: []*model.Stack{
			ship("alpha", 1, warship(), 1, 0, 0),
			ship("bravo", 2, warship(), 1, 9, 7),
		},
		MaxRounds: 1,
		Commander: cmd,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Outcome != OutcomeRoundLimit || res.Rounds != 1 {
		t.Errorf("outcome = %v after %d rounds, want round limit after 1", res.Outcome, res.Rounds)
	}
	if !reflect.DeepEqual(cmd.turns, []string{"bravo"}) {
		t.Errorf("commander turns = %v, want [bravo]", cmd.turns)
	}
	if b.Log.Count(EventMoved) != 1 {
		t.Errorf("moves = %d, want alpha's single advance", b.Log.Count(EventMoved))
	}
}

func TestInitiativeOrder(t *testing.T) {
	slow := ship("slow", 1, warship(), 1, 0, 0)
	fast := ship("fast", 1, scout(), 1, 1, 0)
	nimble := ship("nimble", 2, warship(), 1, 5, 5)
	nimble.Maneuver = 3
	late := ship("late", 2, warship(), 1, 6, 6)

	b, err := New(Options{Stacks: []*model.Stack{slow, fast, nimble, late}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	var got []string
	for _, s := range b.initiative() {
		got = append(got, s.Name)
	}
	want := []string{"nimble", "fast", "slow", "late"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("initiative = %v, want %v", got, want)
	}
}

func TestSameSeedSameID(t *testing.T) {
	if duel(3).Combat.ID != duel(3).Combat.ID {
		t.Error("battle id differs for identical name and seed")
	}
	if duel(3).Combat.ID == duel(4).Combat.ID {
		t.Error("battle id collides across seeds")
	}
}
