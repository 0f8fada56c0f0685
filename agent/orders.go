package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nstehr/vimy/vimy-combat/ipc"
	"github.com/nstehr/vimy/vimy-combat/model"
	"github.com/nstehr/vimy/vimy-combat/nav"
	"github.com/nstehr/vimy/vimy-combat/rules"
	"github.com/nstehr/vimy/vimy-combat/weapons"
)

type turnKey struct {
	round int
	stack string
}

// Script plays human-controlled stacks from orders submitted up front. A
// stack with no orders for the current round holds position.
type Script struct {
	orders map[turnKey][]ipc.Order
}

func NewScript(orders []ipc.Order) (*Script, error) {
	sc := &Script{orders: make(map[turnKey][]ipc.Order)}
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		k := turnKey{o.Round, o.Stack}
		sc.orders[k] = append(sc.orders[k], o)
	}
	return sc, nil
}

// Len is the number of scripted orders.
func (sc *Script) Len() int {
	n := 0
	for _, os := range sc.orders {
		n += len(os)
	}
	return n
}

func (sc *Script) TakeTurn(ctx context.Context, c *model.Combat, s *model.Stack) rules.TurnState {
	for _, o := range sc.orders[turnKey{c.Round, s.Name}] {
		if ctx.Err() != nil {
			break
		}
		switch o.Type {
		case ipc.OrderMove:
			moveTo(c, s, model.Cell{X: o.X, Y: o.Y})
		case ipc.OrderAttack:
			if err := attack(c, s, o.Target); err != nil {
				slog.Warn("attack order refused", "stack", s.Name, "round", c.Round, "error", err)
			}
		case ipc.OrderRetreat:
			if !s.CanRetreat() {
				slog.Warn("retreat order refused", "stack", s.Name, "round", c.Round)
				continue
			}
			c.Withdraw(s)
		}
		if !s.Active() {
			if s.Retreated {
				return rules.Retreated
			}
			return rules.Destroyed
		}
	}
	return rules.TurnComplete
}

// moveTo walks s toward dest with the move points it has left. An
// unreachable destination moves it as close as it can get.
func moveTo(c *model.Combat, s *model.Stack, dest model.Cell) {
	if !s.CanMove() || s.Move == 0 {
		return
	}
	from := s.Cell()
	field := nav.NewField(c)
	path, ok := nav.BestPath(field, from, dest, s.Move, s)
	if !ok {
		to, steps := nav.Approach(field, from, dest, s.Move, 0, s)
		if to == from {
			return
		}
		s.X, s.Y = to.X, to.Y
		s.Spend(steps)
		c.Events().StackMoved(s, from, to)
		return
	}
	if len(path) == 0 {
		return
	}
	to := path.Last(from)
	s.X, s.Y = to.X, to.Y
	s.Spend(len(path))
	c.Events().StackMoved(s, from, to)
}

func attack(c *model.Combat, s *model.Stack, target string) error {
	var tgt *model.Stack
	for _, o := range c.Roster.Active() {
		if o.Name == target {
			tgt = o
			break
		}
	}
	if tgt == nil {
		return fmt.Errorf("no active stack %q", target)
	}
	if !c.Hostile(s, tgt) {
		return fmt.Errorf("%q is not hostile", target)
	}
	rng, ok := weapons.FiringRange(s, tgt)
	if !ok {
		return fmt.Errorf("nothing ready can affect %q", target)
	}
	if d := model.Distance(s.Cell(), tgt.Cell()); d > rng {
		return fmt.Errorf("%q is %d cells away, range %d", target, d, rng)
	}
	s.Target = tgt.ID
	weapons.Fire(c, s, tgt)
	return nil
}
