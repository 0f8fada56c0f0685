package rules

import (
	"github.com/nstehr/vimy/vimy-combat/model"
	"github.com/nstehr/vimy/vimy-combat/weapons"
)

// RuleEnv wraps one stack's combat situation and exposes helper methods
// callable from expr expressions.
type RuleEnv struct {
	Combat *model.Combat
	Stack  *model.Stack
	forces *forceTally
}

// NewRuleEnv builds the environment for s. The force tally is computed on
// first use and shared by every rule evaluated against this env.
func NewRuleEnv(c *model.Combat, s *model.Stack) RuleEnv {
	return RuleEnv{Combat: c, Stack: s, forces: &forceTally{}}
}

func (e RuleEnv) AIControlled() bool { return e.Stack.AI }
func (e RuleEnv) AutoResolve() bool  { return e.Combat.AutoResolve }
func (e RuleEnv) Armed() bool        { return e.Stack.Armed() }
func (e RuleEnv) CanRetreat() bool   { return e.Stack.CanRetreat() }
func (e RuleEnv) CanMove() bool      { return e.Stack.CanMove() }

func (e RuleEnv) MissilesInFlight() int {
	return e.Combat.MissilesInFlight(e.Stack)
}

// PactedColonyOwnerPresent reports whether a colony of an empire this
// stack's empire holds a pact with, and has no wish to fight, is in combat.
func (e RuleEnv) PactedColonyOwnerPresent() bool {
	own := e.Stack.Empire
	for _, s := range e.Combat.Roster.Active() {
		if !s.IsColony() || s.Empire == own {
			continue
		}
		if e.Combat.Diplomacy.Pacted(own, s.Empire) && !e.Combat.Diplomacy.WantsWar(own, s.Empire) {
			return true
		}
	}
	return false
}

// WardActive reports whether the stack this one escorts is still fighting.
func (e RuleEnv) WardActive() bool {
	return e.Combat.Roster.Get(e.Stack.Ward).Active()
}

// TargetableByEnemy reports whether any hostile stack could still harm this
// one: an armed hostile able to affect it, or a salvo already locked on it.
func (e RuleEnv) TargetableByEnemy() bool {
	for _, s := range e.Combat.Roster.Active() {
		if !e.Combat.Hostile(s, e.Stack) {
			continue
		}
		if s.IsMissile() {
			if s.Target == e.Stack.ID {
				return true
			}
			continue
		}
		if weapons.Threatens(s, e.Stack) {
			return true
		}
	}
	return false
}

// AllyKills is the summed best kill value of this stack's side.
func (e RuleEnv) AllyKills() float64 {
	e.forces.compute(e.Combat, e.Stack)
	return e.forces.ally
}

// EnemyKills is the summed best kill value of the opposing side.
func (e RuleEnv) EnemyKills() float64 {
	e.forces.compute(e.Combat, e.Stack)
	return e.forces.enemy
}

// forceTally compares the two sides around a stack. Each attacker
// contributes its single best kill value against any unit of the other side,
// maximised, not summed, per attacker.
type forceTally struct {
	done  bool
	ally  float64
	enemy float64
}

func (f *forceTally) compute(c *model.Combat, s *model.Stack) {
	if f == nil || f.done {
		return
	}
	f.done = true
	allies, enemies := Sides(c, s)
	f.ally = sideKills(allies, enemies)
	f.enemy = sideKills(enemies, allies)
}

// Sides partitions the active non-missile stacks into s's allies (s
// included) and its enemies. Monsters are always enemies; neutral stacks
// are in neither.
func Sides(c *model.Combat, s *model.Stack) (allies, enemies []*model.Stack) {
	for _, o := range c.Roster.Active() {
		if o.IsMissile() {
			continue
		}
		switch {
		case o.IsMonster() && !s.IsMonster():
			enemies = append(enemies, o)
		case o.Empire == s.Empire || c.Diplomacy.Allied(o.Empire, s.Empire):
			allies = append(allies, o)
		case c.Diplomacy.Hostile(o.Empire, s.Empire):
			enemies = append(enemies, o)
		}
	}
	return allies, enemies
}

func sideKills(attackers, defenders []*model.Stack) float64 {
	total := 0.0
	for _, a := range attackers {
		best := 0.0
		for _, d := range defenders {
			best = max(best, KillValue(a, d))
		}
		total += best
	}
	return total
}

// KillValue is the cost-weighted fraction of d that a could destroy with a
// full volley.
func KillValue(a, d *model.Stack) float64 {
	if d.Design == nil {
		return 0
	}
	return weapons.PotentialKillPct(a, d) * float64(d.Num) * d.Design.Cost
}
