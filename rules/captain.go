package rules

import (
	"fmt"
	"log/slog"

	"github.com/nstehr/vimy/vimy-combat/model"
	"github.com/nstehr/vimy/vimy-combat/nav"
	"github.com/nstehr/vimy/vimy-combat/weapons"
)

// TurnState is where a stack is in its decision turn. Destroyed and
// Retreated are terminal.
type TurnState int

const (
	Idle TurnState = iota
	Deciding
	Moving
	Attacking
	TurnComplete
	Destroyed
	Retreated
)

var turnStateNames = [...]string{"idle", "deciding", "moving", "attacking", "turn-complete", "destroyed", "retreated"}

func (s TurnState) String() string {
	if int(s) < len(turnStateNames) {
		return turnStateNames[s]
	}
	return fmt.Sprintf("state(%d)", s)
}

// Terminal reports whether no further turns can follow.
func (s TurnState) Terminal() bool { return s == Destroyed || s == Retreated }

// DefaultMaxIterations bounds the move/attack loop of a single turn.
const DefaultMaxIterations = 100

// Captain plays AI-controlled stacks one turn at a time.
type Captain struct {
	Retreat       *RetreatEvaluator
	MaxIterations int
}

func NewCaptain() *Captain {
	return &Captain{Retreat: NewRetreatEvaluator(), MaxIterations: DefaultMaxIterations}
}

func exitState(s *model.Stack) TurnState {
	if s.Retreated {
		return Retreated
	}
	return Destroyed
}

// TakeTurn runs s through one decision turn: retreat check, then repeated
// target selection, movement and fire until an iteration makes no progress. A stack in
// stasis thaws and loses the turn. Missile salvos only fly.
func (cp *Captain) TakeTurn(c *model.Combat, s *model.Stack) TurnState {
	if !s.Active() {
		return exitState(s)
	}
	if s.InStasis {
		s.InStasis = false
		slog.Debug("stack thawed", "stack", s.Name)
		return TurnComplete
	}
	if s.IsMissile() {
		weapons.Fly(c, s)
		if !s.Active() {
			return exitState(s)
		}
		return TurnComplete
	}

	state := Deciding
	if cp.Retreat != nil && cp.Retreat.ShouldRetreat(c, s) {
		c.Withdraw(s)
		return Retreated
	}

	limit := cp.MaxIterations
	if limit <= 0 {
		limit = DefaultMaxIterations
	}
	for i := 0; ; i++ {
		if i == limit {
			slog.Warn("turn guard tripped", "stack", s.Name, "iterations", limit)
			break
		}
		prevMove, prevTarget, prevShots := s.Move, s.Target, s.ShotsRemaining()

		choice, ok := ChooseTarget(c, s)
		if !ok {
			s.Target = model.Nobody
			break
		}
		tgt := choice.Target
		s.Target = tgt.ID
		slog.Debug("target chosen", "stack", s.Name, "target", tgt.Name,
			"desirability", choice.Desirability, "killPct", choice.KillPct)

		if model.Distance(s.Cell(), tgt.Cell()) > choice.Range && s.CanMove() && s.Move > 0 {
			state = Moving
			cp.advance(c, s, tgt, choice)
		}
		if model.Distance(s.Cell(), tgt.Cell()) <= choice.Range && s.CanAttack() {
			state = Attacking
			weapons.Fire(c, s, tgt)
		}
		if !s.Active() {
			return exitState(s)
		}
		// No progress: same target, no movement, nothing fired.
		if s.Move == prevMove && s.Target == prevTarget && s.ShotsRemaining() == prevShots && tgt.Active() {
			break
		}
	}
	slog.Debug("turn complete", "stack", s.Name, "last", state)
	return TurnComplete
}

// advance moves s toward firing range of tgt, spending move points.
func (cp *Captain) advance(c *model.Combat, s, tgt *model.Stack, choice Choice) {
	from := s.Cell()
	if c.AutoResolve || choice.Path == nil {
		to, steps := nav.Approach(nav.NewField(c), from, tgt.Cell(), s.Move, choice.Range, s)
		if to == from {
			return
		}
		s.X, s.Y = to.X, to.Y
		s.Spend(steps)
		c.Events().StackMoved(s, from, to)
		return
	}

	// Movement stops at the first step that is no longer free.
	field := nav.NewField(c)
	steps := 0
	for _, cell := range choice.Path.Truncate(s.Move) {
		if !field.Free(cell, s) {
			break
		}
		s.X, s.Y = cell.X, cell.Y
		steps++
	}
	if steps == 0 {
		return
	}
	s.Spend(steps)
	c.Events().StackMoved(s, from, s.Cell())
}
