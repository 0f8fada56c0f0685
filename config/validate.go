package config

import (
	"fmt"
	"strings"

	"github.com/nstehr/vimy/vimy-combat/battle"
	"github.com/nstehr/vimy/vimy-combat/model"
)

// Stack kinds accepted in scenarios.
const (
	KindShip    = "ship"
	KindColony  = "colony"
	KindMonster = "monster"
)

func (s *Scenario) applyDefaults() {
	if s.Name == "" {
		s.Name = "scenario"
	}
	if s.Grid.Width <= 0 {
		s.Grid.Width = model.DefaultGridWidth
	}
	if s.Grid.Height <= 0 {
		s.Grid.Height = model.DefaultGridHeight
	}
	if s.MaxRounds <= 0 {
		s.MaxRounds = battle.DefaultMaxRounds
	}
	for i := range s.Weapons {
		w := &s.Weapons[i]
		if w.Shots <= 0 {
			w.Shots = 1
		}
		if strings.EqualFold(w.Kind, model.Missile.String()) && w.Speed <= 0 {
			w.Speed = DefaultMissileSpeed
		}
	}
	for i := range s.Designs {
		d := &s.Designs[i]
		if d.Retreat == nil {
			yes := true
			d.Retreat = &yes
		}
		for j := range d.Mounts {
			if d.Mounts[j].Count <= 0 {
				d.Mounts[j].Count = 1
			}
		}
	}
	for i := range s.Stacks {
		st := &s.Stacks[i]
		if st.Kind == "" {
			st.Kind = KindShip
		}
		st.Kind = strings.ToLower(st.Kind)
		if st.Kind == KindMonster {
			st.Empire = int(model.MonsterEmpire)
		}
		if st.Count <= 0 && st.Kind != KindColony {
			st.Count = 1
		}
	}
}

func (s *Scenario) errorf(format string, args ...any) error {
	return fmt.Errorf("scenario %s: "+format, append([]any{s.Name}, args...)...)
}

// Validate checks references, names and placement. It does not check the
// number of sides; battle.New owns that rule.
func (s *Scenario) Validate() error {
	if len(s.Stacks) == 0 {
		return s.errorf("no stacks")
	}

	empires := make(map[int]bool, len(s.Empires))
	for _, e := range s.Empires {
		if e.ID == int(model.MonsterEmpire) {
			return s.errorf("empire id %d is reserved for monsters", e.ID)
		}
		if empires[e.ID] {
			return s.errorf("duplicate empire id %d", e.ID)
		}
		if e.RetreatRatio < 0 {
			return s.errorf("empire %d: negative retreat ratio", e.ID)
		}
		empires[e.ID] = true
	}
	for _, group := range [][][2]int{s.Relations.Allies, s.Relations.Pacts, s.Relations.War} {
		for _, p := range group {
			if !empires[p[0]] || !empires[p[1]] {
				return s.errorf("relation %v names an unknown empire", p)
			}
		}
	}

	weapons := make(map[string]bool, len(s.Weapons))
	for _, w := range s.Weapons {
		if w.Name == "" || weapons[w.Name] {
			return s.errorf("weapon %q: missing or duplicate name", w.Name)
		}
		if _, err := model.ParseWeaponKind(w.Kind); err != nil {
			return s.errorf("weapon %q: %w", w.Name, err)
		}
		if w.MinDamage < 0 || w.MaxDamage < w.MinDamage {
			return s.errorf("weapon %q: damage range %d-%d", w.Name, w.MinDamage, w.MaxDamage)
		}
		if w.Range < 0 {
			return s.errorf("weapon %q: negative range", w.Name)
		}
		weapons[w.Name] = true
	}

	specials := make(map[string]bool, len(s.Specials))
	for _, sp := range s.Specials {
		if sp.Name == "" || specials[sp.Name] {
			return s.errorf("special %q: missing or duplicate name", sp.Name)
		}
		if _, err := model.ParseSpecialKind(sp.Kind); err != nil {
			return s.errorf("special %q: %w", sp.Name, err)
		}
		if sp.MaxDamage < sp.MinDamage {
			return s.errorf("special %q: damage range %d-%d", sp.Name, sp.MinDamage, sp.MaxDamage)
		}
		specials[sp.Name] = true
	}

	designs := make(map[string]bool, len(s.Designs))
	for _, d := range s.Designs {
		if d.Name == "" || designs[d.Name] {
			return s.errorf("design %q: missing or duplicate name", d.Name)
		}
		if d.Hits <= 0 {
			return s.errorf("design %q: hits must be positive", d.Name)
		}
		for _, m := range d.Mounts {
			if !weapons[m.Weapon] {
				return s.errorf("design %q: unknown weapon %q", d.Name, m.Weapon)
			}
		}
		for _, sp := range d.Specials {
			if !specials[sp] {
				return s.errorf("design %q: unknown special %q", d.Name, sp)
			}
		}
		designs[d.Name] = true
	}

	asteroids := make(map[CellSpec]bool, len(s.Grid.Asteroids))
	for _, a := range s.Grid.Asteroids {
		if !s.inBounds(a) {
			return s.errorf("asteroid (%d,%d) off the grid", a.X, a.Y)
		}
		asteroids[a] = true
	}

	names := make(map[string]bool, len(s.Stacks))
	cells := make(map[CellSpec]string, len(s.Stacks))
	for _, st := range s.Stacks {
		if st.Name == "" || names[st.Name] {
			return s.errorf("stack %q: missing or duplicate name", st.Name)
		}
		switch st.Kind {
		case KindShip, KindMonster:
			if st.Design == "" {
				return s.errorf("stack %q: no design", st.Name)
			}
		case KindColony:
			if st.Population < 0 || st.Factories < 0 {
				return s.errorf("stack %q: negative population or factories", st.Name)
			}
		default:
			return s.errorf("stack %q: unknown kind %q", st.Name, st.Kind)
		}
		if st.Kind != KindMonster && !empires[st.Empire] {
			return s.errorf("stack %q: unknown empire %d", st.Name, st.Empire)
		}
		if st.Design != "" && !designs[st.Design] {
			return s.errorf("stack %q: unknown design %q", st.Name, st.Design)
		}
		if !s.inBounds(st.At) || asteroids[st.At] {
			return s.errorf("stack %q: cell (%d,%d) is off the grid or an asteroid", st.Name, st.At.X, st.At.Y)
		}
		if other, ok := cells[st.At]; ok {
			return s.errorf("stacks %q and %q share cell (%d,%d)", other, st.Name, st.At.X, st.At.Y)
		}
		names[st.Name] = true
		cells[st.At] = st.Name
	}
	for _, st := range s.Stacks {
		if st.Ward != "" && !names[st.Ward] {
			return s.errorf("stack %q: unknown ward %q", st.Name, st.Ward)
		}
	}
	return nil
}

func (s *Scenario) inBounds(c CellSpec) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < s.Grid.Width && c.Y < s.Grid.Height
}
