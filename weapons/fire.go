package weapons

import (
	"log/slog"

	"github.com/nstehr/vimy/vimy-combat/model"
)

// Outcome summarises the effect of one volley or special activation.
type Outcome struct {
	Shots   int
	Hits    int
	Damage  float64
	Killed  int
	PopLost float64
}

func (o *Outcome) add(other Outcome) {
	o.Shots += other.Shots
	o.Hits += other.Hits
	o.Damage += other.Damage
	o.Killed += other.Killed
	o.PopLost += other.PopLost
}

// Fire discharges every ready mount and special of src that can reach and
// affect tgt. Stale or illegal requests are no-ops.
func Fire(c *model.Combat, src, tgt *model.Stack) Outcome {
	var out Outcome
	for i := range src.Mounts() {
		out.add(FireMount(c, src, tgt, i))
	}
	for i := range src.Specials() {
		out.add(FireSpecial(c, src, tgt, i))
	}
	return out
}

// ready reports whether src and tgt are both still able to take part in an
// exchange of fire.
func ready(c *model.Combat, src, tgt *model.Stack) bool {
	return src.Active() && !src.InStasis && src.Num > 0 &&
		tgt.Active() && !tgt.InStasis && c.Hostile(src, tgt)
}

// FireMount fires mount i of src at tgt. Missile mounts launch a salvo.
func FireMount(c *model.Combat, src, tgt *model.Stack, i int) Outcome {
	if !ready(c, src, tgt) || !src.MountReady(i) {
		return Outcome{}
	}
	m := src.Design.Mounts[i]
	w := m.Weapon
	dist := model.Distance(src.Cell(), tgt.Cell())
	if !CanAffect(w, tgt) || dist > w.Range {
		return Outcome{}
	}
	src.MarkFired(i)
	if w.Kind == model.Missile {
		return launch(c, src, tgt, w, shots(m, src.Num))
	}
	return resolve(c, src, tgt, w, shots(m, src.Num), src.Attack+w.AttackBonus, dist)
}

// resolve rolls count shots of w against tgt and applies the damage.
func resolve(c *model.Combat, src, tgt *model.Stack, w *model.Weapon, count, attack, dist int) Outcome {
	out := Outcome{Shots: count}
	lo, hi := rollRange(w, tgt)
	switch {
	case w.Kind == model.BioWeapon:
		if !tgt.IsColony() {
			return Outcome{}
		}
		antidote := c.Antidote(tgt.Empire)
		for range count {
			lost := tgt.KillPopulation(float64(max(0, roll(c.Rand, lo, hi)-antidote)), 0)
			if lost > 0 {
				out.Hits++
				out.PopLost += lost
			}
		}
	case hitsGround(w, tgt):
		p := HitChance(attack, Defense(w, tgt))
		for range count {
			if c.Rand.Float64() >= p {
				continue
			}
			dmg := hitDamage(w, tgt, roll(c.Rand, lo, hi), dist)
			out.Hits++
			out.Damage += dmg
			out.PopLost += tgt.TakeGroundDamage(dmg)
		}
	default:
		p := HitChance(attack, Defense(w, tgt))
		for range count {
			if tgt.Num <= 0 {
				break
			}
			if c.Rand.Float64() >= p {
				continue
			}
			dmg := perHit(w, tgt, roll(c.Rand, lo, hi), dist)
			out.Hits++
			out.Damage += dmg
			out.Killed += tgt.TakeDamage(dmg)
		}
	}
	report(c, src, tgt, w.Name, out)
	return out
}

func report(c *model.Combat, src, tgt *model.Stack, name string, out Outcome) {
	if out.Hits == 0 {
		c.Events().MissDrawn(src, tgt, name)
	} else {
		c.Events().AttackDrawn(src, tgt, name, out.Damage, out.Killed)
	}
	if tgt.Wiped() {
		slog.Debug("stack wiped out", "stack", tgt.Name, "by", src.Name, "weapon", name)
		c.Destroy(tgt)
	}
}
