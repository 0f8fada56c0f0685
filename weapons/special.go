package weapons

import "github.com/nstehr/vimy/vimy-combat/model"

// FireSpecial activates special i of src against tgt. Pulsars ignore tgt
// beyond requiring it to be adjacent and strike every adjacent hostile.
func FireSpecial(c *model.Combat, src, tgt *model.Stack, i int) Outcome {
	if !ready(c, src, tgt) || !src.SpecialReady(i) {
		return Outcome{}
	}
	sp := src.Design.Specials[i]
	if !SpecialCanAffect(sp, tgt) || model.Distance(src.Cell(), tgt.Cell()) > sp.Range {
		return Outcome{}
	}
	src.MarkSpecialUsed(i)
	switch sp.Kind {
	case model.Nullifier:
		return nullify(c, src, tgt, sp)
	case model.Stasis:
		return freeze(c, src, tgt, sp)
	case model.Pulsar:
		return pulse(c, src, sp)
	}
	return Outcome{}
}

// nullify gives each unit of src one chance to strip a point of attack,
// speed or defense from tgt.
func nullify(c *model.Combat, src, tgt *model.Stack, sp *model.Special) Outcome {
	out := Outcome{Shots: src.Num}
	for range src.Num {
		if c.Rand.Float64() >= sp.Chance {
			continue
		}
		out.Hits++
		switch c.Rand.IntN(3) {
		case 0:
			tgt.Attack = max(0, tgt.Attack-1)
		case 1:
			tgt.MaxMove = max(0, tgt.MaxMove-1)
			tgt.Move = min(tgt.Move, tgt.MaxMove)
		default:
			tgt.BeamDefense = max(0, tgt.BeamDefense-1)
			tgt.MissileDefense = max(0, tgt.MissileDefense-1)
		}
	}
	report(c, src, tgt, sp.Name, out)
	return out
}

// freeze rolls once against the target's beam defense; success puts the
// target in stasis for its next turn.
func freeze(c *model.Combat, src, tgt *model.Stack, sp *model.Special) Outcome {
	out := Outcome{Shots: 1}
	if c.Rand.Float64() < HitChance(src.Attack, tgt.BeamDefense) {
		out.Hits = 1
		tgt.InStasis = true
		tgt.Target = model.Nobody
	}
	report(c, src, tgt, sp.Name, out)
	return out
}

// pulse deals src.Num automatic hits to every active hostile ship or monster
// stack adjacent to src.
func pulse(c *model.Combat, src *model.Stack, sp *model.Special) Outcome {
	var total Outcome
	for _, tgt := range c.Roster.Active() {
		if !SpecialCanAffect(sp, tgt) || !model.Adjacent(src.Cell(), tgt.Cell()) || !c.Hostile(src, tgt) {
			continue
		}
		out := Outcome{Shots: src.Num}
		for range src.Num {
			if tgt.Num <= 0 {
				break
			}
			dmg := pulseDamage(sp, tgt, roll(c.Rand, sp.MinDamage, max(sp.MinDamage, sp.MaxDamage)))
			if dmg <= 0 {
				continue
			}
			out.Hits++
			out.Damage += dmg
			out.Killed += tgt.TakeDamage(dmg)
		}
		report(c, src, tgt, sp.Name, out)
		total.add(out)
	}
	return total
}

func pulseDamage(sp *model.Special, tgt *model.Stack, r int) float64 {
	return min(tgt.MaxHits, max(0, float64(r)-tgt.Shield*sp.ShieldFactor()))
}

func meanPulse(sp *model.Special, tgt *model.Stack) float64 {
	lo, hi := sp.MinDamage, max(sp.MinDamage, sp.MaxDamage)
	sum := 0.0
	for r := lo; r <= hi; r++ {
		sum += pulseDamage(sp, tgt, r)
	}
	return sum / float64(hi-lo+1)
}
