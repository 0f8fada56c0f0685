package rules

import (
	"log/slog"

	"github.com/nstehr/vimy/vimy-combat/model"
)

// RetreatEvaluator decides whether a stack should flee. It keeps one compiled
// engine per empire, built from the empire's retreat ratio.
type RetreatEvaluator struct {
	engines map[model.EmpireID]*Engine
	ratios  map[model.EmpireID]float64
}

func NewRetreatEvaluator() *RetreatEvaluator {
	return &RetreatEvaluator{
		engines: make(map[model.EmpireID]*Engine),
		ratios:  make(map[model.EmpireID]float64),
	}
}

func (r *RetreatEvaluator) engineFor(c *model.Combat, empire model.EmpireID) (*Engine, error) {
	ratio := c.Diplomacy.RetreatRatio(empire)
	if e, ok := r.engines[empire]; ok && r.ratios[empire] == ratio {
		return e, nil
	}
	e, err := NewEngine(CompileDoctrine(Doctrine{Name: "leader", RetreatRatio: ratio}))
	if err != nil {
		return nil, err
	}
	r.engines[empire] = e
	r.ratios[empire] = ratio
	return e, nil
}

// ShouldRetreat evaluates the retreat rules for s. Evaluation errors keep the
// stack in the fight.
func (r *RetreatEvaluator) ShouldRetreat(c *model.Combat, s *model.Stack) bool {
	if !s.Active() || s.IsMissile() {
		return false
	}
	engine, err := r.engineFor(c, s.Empire)
	if err != nil {
		slog.Warn("retreat rules unavailable", "empire", s.Empire, "error", err)
		return false
	}
	env := NewRuleEnv(c, s)
	verdict, rule := engine.Decide(env, CategoryRetreat)
	if verdict == Retreat {
		slog.Debug("retreat verdict", "stack", s.Name, "rule", rule.Name,
			"allyKills", env.AllyKills(), "enemyKills", env.EnemyKills())
	}
	return verdict == Retreat
}
