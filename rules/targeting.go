package rules

import (
	"github.com/nstehr/vimy/vimy-combat/model"
	"github.com/nstehr/vimy/vimy-combat/nav"
	"github.com/nstehr/vimy/vimy-combat/weapons"
)

// Desirability weights.
const (
	desireScale     = 10000.0
	desireFloor     = 0.01
	bombThreatScale = 100.0
	nearThreatScale = 10.0
)

// Choice is a selected target with the route to firing range. Path is nil
// when no pathfinding was done (auto-resolve, immobile stacks).
type Choice struct {
	Target       *model.Stack
	Path         nav.Path
	Range        int
	KillPct      float64
	Threat       float64
	Desirability float64
}

// Candidates lists the stacks s could pick as a target: active, hostile, not
// in stasis and not missiles.
func Candidates(c *model.Combat, s *model.Stack) []*model.Stack {
	var out []*model.Stack
	for _, o := range c.Roster.Active() {
		if o.IsMissile() || o.InStasis || !c.Hostile(s, o) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// defendedColony is the colony s is obliged to protect: itself, or its ward.
func defendedColony(c *model.Combat, s *model.Stack) *model.Stack {
	if s.IsColony() {
		return s
	}
	if w := c.Roster.Get(s.Ward); w.Active() && w.IsColony() {
		return w
	}
	return nil
}

// threatTo is the worst loss fraction cand could inflict on colony with a
// full volley, against either its bases or its population.
func threatTo(c *model.Combat, cand, colony *model.Stack) float64 {
	return max(weapons.PotentialKillPct(cand, colony), weapons.PotentialPopLossPct(c, cand, colony))
}

// ChooseTarget ranks every candidate by desirability and returns the best.
// A stack guarding a colony locks onto candidates able to bomb it this turn
// as soon as the first one turns up. Equal scores keep the earlier candidate.
func ChooseTarget(c *model.Combat, s *model.Stack) (Choice, bool) {
	var (
		best     Choice
		found    bool
		bombLock bool
	)
	colony := defendedColony(c, s)
	pathing := !c.AutoResolve && !s.IsColony() && s.Mobile()

	for _, cand := range Candidates(c, s) {
		killPct := weapons.EstimatedKillPct(s, cand)
		if cand.IsColony() {
			killPct = max(killPct, weapons.EstimatedPopLossPct(c, s, cand))
		}
		killPct = max(killPct, weapons.DisableWorth(s, cand))
		if killPct <= 0 {
			continue
		}
		rng, ok := weapons.FiringRange(s, cand)
		if !ok {
			continue
		}
		if !s.Mobile() && model.Distance(s.Cell(), cand.Cell()) > rng {
			continue
		}

		threat := 1.0
		if colony != nil {
			loss := threatTo(c, cand, colony)
			after := max(0, model.Distance(cand.Cell(), colony.Cell())-cand.MaxMove)
			if loss > 0 && after <= 1 {
				if !bombLock {
					bombLock = true
					found = false
					best = Choice{}
				}
				threat = bombThreatScale * loss
			} else {
				if bombLock {
					continue
				}
				threat = nearThreatScale / float64(max(1, after)) * loss
			}
		}

		desire := max(desireScale*threat*threat*killPct, desireFloor)

		var path nav.Path
		if pathing {
			p, ok := nav.BestPathInRange(nav.NewField(c), s.Cell(), cand.Cell(), c.Grid.Width*c.Grid.Height, rng, s)
			if !ok {
				continue
			}
			if turns := (len(p) + s.MaxMove - 1) / s.MaxMove; turns > 1 {
				desire /= float64(turns)
			}
			path = p
		}

		if !found || desire > best.Desirability {
			best = Choice{
				Target:       cand,
				Path:         path,
				Range:        rng,
				KillPct:      killPct,
				Threat:       threat,
				Desirability: desire,
			}
			found = true
		}
	}
	return best, found
}
