package rules

import "github.com/nstehr/vimy/vimy-combat/model"

var (
	laser    = &model.Weapon{Name: "laser", Kind: model.Beam, MinDamage: 1, MaxDamage: 4, Range: 1, Shots: 1}
	baseGun  = &model.Weapon{Name: "mass driver", Kind: model.Beam, MinDamage: 1, MaxDamage: 6, Range: 9, Shots: 1}
	bombs    = &model.Weapon{Name: "nuclear bomb", Kind: model.Bomb, MinDamage: 3, MaxDamage: 12, Range: 1, Shots: 1}
	missiles = &model.Weapon{Name: "hyper-v rocket", Kind: model.Missile, MinDamage: 6, MaxDamage: 6, Range: 5, Shots: 1, Speed: 2}
)

func warship() *model.Design {
	return &model.Design{Name: "warship", Hits: 10, Attack: 2, Speed: 2, Cost: 50, Retreat: true,
		Mounts: []model.Mount{{Weapon: laser, Count: 2}}}
}

func scoutDesign() *model.Design {
	return &model.Design{Name: "scout", Hits: 3, Speed: 3, Cost: 5, Retreat: true}
}

func bomber() *model.Design {
	return &model.Design{Name: "bomber", Hits: 5, Speed: 2, Cost: 30, Retreat: true,
		Mounts: []model.Mount{{Weapon: bombs, Count: 1}}}
}

func missileBase() *model.Design {
	return &model.Design{Name: "missile base", Hits: 20, Cost: 40,
		Mounts: []model.Mount{{Weapon: baseGun, Count: 1}}}
}

type fixture struct {
	c   *model.Combat
	rel *model.Relations
}

func newFixture(asteroids ...model.Cell) *fixture {
	rel := model.NewRelations()
	return &fixture{
		rel: rel,
		c: &model.Combat{
			Grid:   model.NewGrid(model.DefaultGridWidth, model.DefaultGridHeight, asteroids...),
			Roster: model.NewRoster(),
			Empires: map[model.EmpireID]*model.Empire{
				1: {ID: 1, AI: true},
				2: {ID: 2, AI: true},
				3: {ID: 3, AI: true},
			},
			Diplomacy: rel,
			Rand:      model.NewRand(1),
		},
	}
}

func (f *fixture) add(s *model.Stack) *model.Stack {
	f.c.Roster.Add(s)
	return s
}

func (f *fixture) ship(name string, empire model.EmpireID, d *model.Design, num, x, y int) *model.Stack {
	return f.add(model.NewShip(name, empire, d, num, model.Cell{X: x, Y: y}))
}
