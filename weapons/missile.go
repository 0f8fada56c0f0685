package weapons

import (
	"log/slog"

	"github.com/nstehr/vimy/vimy-combat/model"
)

// launch puts a salvo of count missiles into flight at tgt and flies it
// its first leg immediately.
func launch(c *model.Combat, src, tgt *model.Stack, w *model.Weapon, count int) Outcome {
	if count <= 0 {
		return Outcome{}
	}
	ms := model.NewMissiles(src, w, count, tgt.ID)
	c.Roster.Add(ms)
	slog.Debug("missiles launched", "source", src.Name, "target", tgt.Name, "count", count, "weapon", w.Name)
	return Fly(c, ms)
}

// Fly advances a missile salvo up to its speed toward its locked target,
// spending one point of fuel per cell. A salvo detonates on reaching the
// target cell and fizzles when its target leaves combat or its fuel runs out.
// Salvos hold position while the target is in stasis.
func Fly(c *model.Combat, ms *model.Stack) Outcome {
	if !ms.Active() || !ms.IsMissile() || ms.Launch == nil {
		return Outcome{}
	}
	tgt := c.Roster.Get(ms.Target)
	if !tgt.Active() {
		fizzle(c, ms, "target gone")
		return Outcome{}
	}
	if tgt.InStasis {
		return Outcome{}
	}
	dest := tgt.Cell()
	for step := 0; step < ms.Launch.Speed && ms.Cell() != dest && ms.Launch.Fuel > 0; step++ {
		from := ms.Cell()
		ms.X += sign(dest.X - ms.X)
		ms.Y += sign(dest.Y - ms.Y)
		ms.Launch.Fuel--
		c.Events().StackMoved(ms, from, ms.Cell())
	}
	if ms.Cell() == dest {
		return detonate(c, ms, tgt)
	}
	if ms.Launch.Fuel <= 0 {
		fizzle(c, ms, "out of fuel")
	}
	return Outcome{}
}

func detonate(c *model.Combat, ms, tgt *model.Stack) Outcome {
	out := resolve(c, ms, tgt, ms.Launch.Weapon, ms.Num, ms.Launch.Attack, 1)
	ms.Num = 0
	c.Destroy(ms)
	return out
}

func fizzle(c *model.Combat, ms *model.Stack, why string) {
	slog.Debug("missiles fizzled", "salvo", ms.Name, "reason", why)
	ms.Num = 0
	c.Destroy(ms)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
