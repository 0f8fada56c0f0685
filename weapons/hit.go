// Package weapons resolves weapon and special-device fire and computes the
// pure expected-value estimates the targeting and retreat logic rank with.
package weapons

import (
	"github.com/nstehr/vimy/vimy-combat/model"
)

// MinHitChance is the floor applied to every hit roll.
const MinHitChance = 0.05

// HitChance is (5 + attack - defense) / 10, clamped to [0.05, 1].
func HitChance(attack, defense int) float64 {
	return min(1, max(MinHitChance, float64(5+attack-defense)/10))
}

// Defense picks the target defense a weapon rolls against.
func Defense(w *model.Weapon, tgt *model.Stack) int {
	switch w.Kind {
	case model.Missile, model.Torpedo:
		return tgt.MissileDefense
	default:
		return tgt.BeamDefense
	}
}

// CanAffect reports whether w can do anything to tgt at all.
func CanAffect(w *model.Weapon, tgt *model.Stack) bool {
	switch tgt.Kind {
	case model.MissileStack:
		return false
	case model.ColonyStack:
		return true
	default:
		return !w.GroundOnly()
	}
}

// SpecialCanAffect reports whether sp can be used against tgt.
func SpecialCanAffect(sp *model.Special, tgt *model.Stack) bool {
	return tgt.IsShip() || tgt.IsMonster()
}

// hitsUnits reports whether w damages tgt's units (ships, monsters or
// missile bases) rather than its surface.
func hitsUnits(w *model.Weapon, tgt *model.Stack) bool {
	if w.GroundOnly() {
		return false
	}
	if tgt.IsColony() {
		return tgt.Num > 0
	}
	return true
}

// hitsGround reports whether w damages tgt's population.
func hitsGround(w *model.Weapon, tgt *model.Stack) bool {
	return tgt.IsColony() && (w.GroundOnly() || tgt.Num <= 0)
}

// rollRange lists the damage rolls w can produce against tgt. Missiles
// always deal maximum damage to colonies.
func rollRange(w *model.Weapon, tgt *model.Stack) (lo, hi int) {
	lo, hi = w.MinDamage, max(w.MinDamage, w.MaxDamage)
	if w.Kind == model.Missile && tgt.IsColony() {
		lo = hi
	}
	return lo, hi
}

// hitDamage is the damage one successful hit of roll deals to tgt after the
// colony multiplier, torpedo fall-off and shields. It never goes negative.
func hitDamage(w *model.Weapon, tgt *model.Stack, roll, dist int) float64 {
	dmg := float64(roll)
	if tgt.IsColony() {
		dmg *= w.ColonyFactor()
	}
	if w.Kind == model.Torpedo {
		dmg -= w.DamageLossPerCell * float64(max(0, dist-1))
	}
	dmg -= tgt.Shield * w.ShieldFactor()
	return max(0, dmg)
}

// perHit is the damage a hit actually removes. A unit hit that gets through
// shields also strips the weapon's armor fraction of the unit's max hits, and
// the total never exceeds one unit's max hits. Ground hits are uncapped.
func perHit(w *model.Weapon, tgt *model.Stack, roll, dist int) float64 {
	dmg := hitDamage(w, tgt, roll, dist)
	if hitsUnits(w, tgt) {
		if dmg > 0 {
			dmg += w.ArmorFactor() * tgt.MaxHits
		}
		dmg = min(dmg, tgt.MaxHits)
	}
	return dmg
}

// meanPerHit is the exact mean of perHit over the uniform roll range.
func meanPerHit(w *model.Weapon, tgt *model.Stack, dist int) float64 {
	lo, hi := rollRange(w, tgt)
	sum := 0.0
	for r := lo; r <= hi; r++ {
		sum += perHit(w, tgt, r, dist)
	}
	return sum / float64(hi-lo+1)
}

// meanDose is the mean population a bio-weapon dose kills.
func meanDose(w *model.Weapon, antidote int) float64 {
	lo, hi := w.MinDamage, max(w.MinDamage, w.MaxDamage)
	sum := 0
	for r := lo; r <= hi; r++ {
		sum += max(0, r-antidote)
	}
	return float64(sum) / float64(hi-lo+1)
}

func roll(rng model.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

func shots(m model.Mount, num int) int {
	return m.Count * max(1, m.Weapon.Shots) * num
}
