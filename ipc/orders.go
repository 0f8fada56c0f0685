package ipc

import "fmt"

// Order kinds for scripted human turns.
const (
	OrderMove    = "move"
	OrderAttack  = "attack"
	OrderRetreat = "retreat"
	OrderHold    = "hold"
)

// Order is one instruction for a human stack in a given round. Orders for
// the same stack and round run in the order given.
type Order struct {
	Round  int    `json:"round"`
	Stack  string `json:"stack"`
	Type   string `json:"type"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	Target string `json:"target,omitempty"`
}

func (o Order) Validate() error {
	if o.Round < 1 {
		return fmt.Errorf("order for %q: round %d, rounds start at 1", o.Stack, o.Round)
	}
	if o.Stack == "" {
		return fmt.Errorf("order %s: no stack", o.Type)
	}
	switch o.Type {
	case OrderMove, OrderRetreat, OrderHold:
	case OrderAttack:
		if o.Target == "" {
			return fmt.Errorf("attack order for %q: no target", o.Stack)
		}
	default:
		return fmt.Errorf("order for %q: unknown type %q", o.Stack, o.Type)
	}
	return nil
}
