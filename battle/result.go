package battle

import (
	"github.com/google/uuid"

	"github.com/nstehr/vimy/vimy-combat/model"
)

// Outcome is how a battle ended.
type Outcome string

const (
	OutcomeVictory     Outcome = "victory"     // no hostile pair of stacks remains
	OutcomeAnnihilated Outcome = "annihilated" // nobody is left
	OutcomeStalemate   Outcome = "stalemate"   // hostiles remain but none can hurt another
	OutcomeRoundLimit  Outcome = "round_limit"
	OutcomeCancelled   Outcome = "cancelled"
)

// Decided reports whether the battle ended with a side left standing.
func (o Outcome) Decided() bool { return o == OutcomeVictory }

// StackReport is the end-of-battle state of one stack.
type StackReport struct {
	Name       string         `json:"name"`
	Kind       string         `json:"kind"`
	Empire     model.EmpireID `json:"empire"`
	Design     string         `json:"design,omitempty"`
	Num        int            `json:"num"`
	Hits       float64        `json:"hits"`
	Population float64        `json:"population,omitempty"`
	Factories  float64        `json:"factories,omitempty"`
	Destroyed  bool           `json:"destroyed,omitempty"`
	Retreated  bool           `json:"retreated,omitempty"`
}

func report(s *model.Stack) StackReport {
	r := StackReport{
		Name:       s.Name,
		Kind:       s.Kind.String(),
		Empire:     s.Empire,
		Num:        s.Num,
		Hits:       s.TotalHits(),
		Population: s.Population,
		Factories:  s.Factories,
		Destroyed:  s.Destroyed,
		Retreated:  s.Retreated,
	}
	if s.Design != nil {
		r.Design = s.Design.Name
	}
	return r
}

// Result summarises a finished battle. Winners lists the empires still in the
// fight after a victory, in roster order.
type Result struct {
	ID      uuid.UUID        `json:"id"`
	Name    string           `json:"name,omitempty"`
	Seed    uint64           `json:"seed"`
	Rounds  int              `json:"rounds"`
	Outcome Outcome          `json:"outcome"`
	Winners []model.EmpireID `json:"winners,omitempty"`
	Stacks  []StackReport    `json:"stacks"`
	Events  []Event          `json:"events,omitempty"`
}

// Survivors returns the reports of stacks still in combat at the end.
func (r Result) Survivors() []StackReport {
	var out []StackReport
	for _, s := range r.Stacks {
		if !s.Destroyed && !s.Retreated {
			out = append(out, s)
		}
	}
	return out
}
