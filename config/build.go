package config

import (
	"github.com/nstehr/vimy/vimy-combat/battle"
	"github.com/nstehr/vimy/vimy-combat/model"
	"github.com/nstehr/vimy/vimy-combat/rules"
)

// Catalog builds the weapon, special and design entries. The scenario must
// already be validated.
func (s *Scenario) Catalog() (*model.Catalog, error) {
	cat := model.NewCatalog()
	for _, w := range s.Weapons {
		kind, err := model.ParseWeaponKind(w.Kind)
		if err != nil {
			return nil, s.errorf("weapon %q: %w", w.Name, err)
		}
		cat.Weapons[w.Name] = &model.Weapon{
			Name:              w.Name,
			Kind:              kind,
			MinDamage:         w.MinDamage,
			MaxDamage:         w.MaxDamage,
			Range:             w.Range,
			Shots:             w.Shots,
			AttackBonus:       w.AttackBonus,
			ShieldPierce:      w.ShieldPierce,
			ColonyReduction:   w.ColonyReduction,
			DamageLossPerCell: w.DamageLossPerCell,
			ArmorReduction:    w.ArmorReduction,
			Speed:             w.Speed,
			Ammo:              w.Ammo,
		}
	}
	for _, sp := range s.Specials {
		kind, err := model.ParseSpecialKind(sp.Kind)
		if err != nil {
			return nil, s.errorf("special %q: %w", sp.Name, err)
		}
		cat.Specials[sp.Name] = &model.Special{
			Name:         sp.Name,
			Kind:         kind,
			Range:        sp.Range,
			MinDamage:    sp.MinDamage,
			MaxDamage:    sp.MaxDamage,
			Chance:       sp.Chance,
			ShieldPierce: sp.ShieldPierce,
		}
	}
	for _, d := range s.Designs {
		design := &model.Design{
			Name:           d.Name,
			Hits:           d.Hits,
			Attack:         d.Attack,
			BeamDefense:    d.BeamDefense,
			MissileDefense: d.MissileDefense,
			Maneuver:       d.Maneuver,
			Shield:         d.Shield,
			Speed:          d.Speed,
			Cost:           d.Cost,
			Retreat:        d.Retreat == nil || *d.Retreat,
		}
		for _, m := range d.Mounts {
			w, ok := cat.Weapons[m.Weapon]
			if !ok {
				return nil, s.errorf("design %q: unknown weapon %q", d.Name, m.Weapon)
			}
			design.Mounts = append(design.Mounts, model.Mount{Weapon: w, Count: m.Count})
		}
		for _, name := range d.Specials {
			sp, ok := cat.Specials[name]
			if !ok {
				return nil, s.errorf("design %q: unknown special %q", d.Name, name)
			}
			design.Specials = append(design.Specials, sp)
		}
		cat.Designs[d.Name] = design
	}
	return cat, nil
}

// Diplomacy builds the relations snapshot. Each empire's retreat ratio comes
// from its leader's doctrine unless the scenario pins one.
func (s *Scenario) Diplomacy() *model.Relations {
	rel := model.NewRelations()
	for _, p := range s.Relations.Allies {
		rel.Ally(model.EmpireID(p[0]), model.EmpireID(p[1]))
	}
	for _, p := range s.Relations.Pacts {
		rel.Pact(model.EmpireID(p[0]), model.EmpireID(p[1]))
	}
	for _, p := range s.Relations.War {
		rel.DeclareWar(model.EmpireID(p[0]), model.EmpireID(p[1]))
	}
	for _, e := range s.Empires {
		d := rules.LeaderDoctrine(e.Leader)
		if e.RetreatRatio > 0 {
			d.RetreatRatio = e.RetreatRatio
		}
		rel.SetRetreatRatio(model.EmpireID(e.ID), d.Ratio())
	}
	return rel
}

// Options builds fresh battle options: every call yields new stacks, so one
// scenario can be fought many times.
func (s *Scenario) Options() (battle.Options, error) {
	cat, err := s.Catalog()
	if err != nil {
		return battle.Options{}, err
	}

	asteroids := make([]model.Cell, 0, len(s.Grid.Asteroids))
	for _, a := range s.Grid.Asteroids {
		asteroids = append(asteroids, model.Cell{X: a.X, Y: a.Y})
	}
	empires := make([]*model.Empire, 0, len(s.Empires))
	for _, e := range s.Empires {
		empires = append(empires, &model.Empire{
			ID:       model.EmpireID(e.ID),
			Name:     e.Name,
			Leader:   e.Leader,
			Antidote: e.Antidote,
			AI:       !e.Human,
		})
	}

	stacks := make([]*model.Stack, 0, len(s.Stacks))
	wards := make(map[string]string)
	for _, st := range s.Stacks {
		at := model.Cell{X: st.At.X, Y: st.At.Y}
		d := cat.Designs[st.Design]
		switch st.Kind {
		case KindColony:
			stacks = append(stacks, model.NewColony(st.Name, model.EmpireID(st.Empire), d, st.Count, st.Population, st.Factories, at))
		case KindMonster:
			stacks = append(stacks, model.NewMonster(st.Name, d, st.Count, at))
		default:
			stacks = append(stacks, model.NewShip(st.Name, model.EmpireID(st.Empire), d, st.Count, at))
		}
		if st.Ward != "" {
			wards[st.Name] = st.Ward
		}
	}

	return battle.Options{
		Name:        s.Name,
		Grid:        model.NewGrid(s.Grid.Width, s.Grid.Height, asteroids...),
		Empires:     empires,
		Diplomacy:   s.Diplomacy(),
		Stacks:      stacks,
		Wards:       wards,
		Seed:        s.Seed,
		AutoResolve: s.AutoResolve,
		MaxRounds:   s.MaxRounds,
	}, nil
}
