package weapons

import "github.com/nstehr/vimy/vimy-combat/model"

// The estimates below are pure expected values: they draw no random numbers
// and mutate nothing. Their expectations match the stochastic resolution in
// fire.go, armor stripping included: both go through perHit.

// estimateDist clamps a firing distance into [1, range]: the firer is
// assumed to close to firing range before it shoots.
func estimateDist(dist, rng int) int {
	return min(max(1, dist), max(1, rng))
}

// EstimatedDamage is the expected hit point damage count shots of w fired by
// src at dist deal to tgt's units, before the stack's total hits cap it.
func EstimatedDamage(w *model.Weapon, src, tgt *model.Stack, count, dist int) float64 {
	if count <= 0 || !hitsUnits(w, tgt) || tgt.Num <= 0 {
		return 0
	}
	p := HitChance(src.Attack+w.AttackBonus, Defense(w, tgt))
	return float64(count) * p * meanPerHit(w, tgt, estimateDist(dist, w.Range))
}

// EstimatedKills is the expected number of tgt units (in whole-unit hit
// point equivalents) count shots of w would destroy.
func EstimatedKills(w *model.Weapon, src, tgt *model.Stack, count, dist int) float64 {
	dmg := EstimatedDamage(w, src, tgt, count, dist)
	return min(dmg, tgt.TotalHits()) / tgt.MaxHits
}

// EstimatedBombardDamage is the expected population count shots of w would
// kill on colony tgt. antidote blunts bio-weapon doses.
func EstimatedBombardDamage(w *model.Weapon, src, tgt *model.Stack, count, dist, antidote int) float64 {
	if count <= 0 || !hitsGround(w, tgt) || tgt.Population <= 0 {
		return 0
	}
	var pop float64
	if w.Kind == model.BioWeapon {
		pop = float64(count) * meanDose(w, antidote)
	} else {
		p := HitChance(src.Attack+w.AttackBonus, Defense(w, tgt))
		pop = float64(count) * p * meanPerHit(w, tgt, estimateDist(dist, w.Range)) * model.PopLossPerDamage
	}
	return min(pop, tgt.Population)
}

// mountFilter selects which mounts an estimate counts.
type mountFilter func(s *model.Stack, i int) bool

func readyNow(s *model.Stack, i int) bool { return s.MountReady(i) }
func fullVolley(s *model.Stack, i int) bool { return s.HasAmmo(i) }

func killPct(src, tgt *model.Stack, use mountFilter, readySpecials bool) float64 {
	if tgt.IsMissile() || tgt.Num <= 0 || src.Num <= 0 || !src.Active() {
		return 0
	}
	dist := model.Distance(src.Cell(), tgt.Cell())
	dmg := 0.0
	for i, m := range src.Mounts() {
		if !use(src, i) {
			continue
		}
		dmg += EstimatedDamage(m.Weapon, src, tgt, shots(m, src.Num), dist)
	}
	if SpecialCanAffect(nil, tgt) {
		for i, sp := range src.Specials() {
			if sp.Damaging() && (!readySpecials || src.SpecialReady(i)) {
				dmg += float64(src.Num) * meanPulse(sp, tgt)
			}
		}
	}
	if dmg <= 0 {
		return 0
	}
	return min(1, min(dmg, tgt.TotalHits())/(tgt.MaxHits*float64(tgt.Num)))
}

// disableCredit is the kill fraction credited to a ready ship-disabling
// special, so a design carrying nothing else still picks targets.
const disableCredit = 0.01

// DisableWorth is the nominal value of the ship-disabling specials src has
// ready against tgt: disableCredit when any can fire, else 0.
func DisableWorth(src, tgt *model.Stack) float64 {
	if tgt.IsMissile() || tgt.InStasis || !src.Active() || !SpecialCanAffect(nil, tgt) {
		return 0
	}
	for i, sp := range src.Specials() {
		if !sp.Damaging() && src.SpecialReady(i) {
			return disableCredit
		}
	}
	return 0
}

// EstimatedKillPct is the expected fraction of tgt's units src would destroy
// with the shots it has left this turn.
func EstimatedKillPct(src, tgt *model.Stack) float64 {
	return killPct(src, tgt, readyNow, true)
}

// PotentialKillPct is EstimatedKillPct for a full volley, ignoring what src
// has already fired this turn.
func PotentialKillPct(src, tgt *model.Stack) float64 {
	return killPct(src, tgt, fullVolley, false)
}

func popLossPct(c *model.Combat, src, tgt *model.Stack, use mountFilter) float64 {
	if !tgt.IsColony() || tgt.Population <= 0 || src.Num <= 0 || !src.Active() {
		return 0
	}
	dist := model.Distance(src.Cell(), tgt.Cell())
	antidote := c.Antidote(tgt.Empire)
	pop := 0.0
	for i, m := range src.Mounts() {
		if !use(src, i) {
			continue
		}
		pop += EstimatedBombardDamage(m.Weapon, src, tgt, shots(m, src.Num), dist, antidote)
	}
	return min(1, pop/tgt.Population)
}

// EstimatedPopLossPct is the expected fraction of colony tgt's population
// src would kill with the shots it has left this turn.
func EstimatedPopLossPct(c *model.Combat, src, tgt *model.Stack) float64 {
	return popLossPct(c, src, tgt, readyNow)
}

// PotentialPopLossPct is EstimatedPopLossPct for a full volley.
func PotentialPopLossPct(c *model.Combat, src, tgt *model.Stack) float64 {
	return popLossPct(c, src, tgt, fullVolley)
}

// FiringRange is the longest range among src's usable weapons and specials
// that can affect tgt. It reports false when nothing can.
func FiringRange(src, tgt *model.Stack) (int, bool) {
	rng, ok := 0, false
	for i, m := range src.Mounts() {
		if src.MountReady(i) && CanAffect(m.Weapon, tgt) {
			rng, ok = max(rng, m.Weapon.Range), true
		}
	}
	for i, sp := range src.Specials() {
		if src.SpecialReady(i) && SpecialCanAffect(sp, tgt) {
			rng, ok = max(rng, sp.Range), true
		}
	}
	return rng, ok
}

// Threatens reports whether src could ever harm tgt with what it still has
// this battle.
func Threatens(src, tgt *model.Stack) bool {
	if !src.Armed() || tgt.IsMissile() {
		return false
	}
	for i, m := range src.Mounts() {
		if src.HasAmmo(i) && CanAffect(m.Weapon, tgt) {
			return true
		}
	}
	for _, sp := range src.Specials() {
		if SpecialCanAffect(sp, tgt) {
			return true
		}
	}
	return false
}
