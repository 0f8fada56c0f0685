package rules

import "github.com/expr-lang/expr/vm"

// Verdict is what a matching rule decides for the stack.
type Verdict int

const (
	Stay Verdict = iota
	Retreat
)

func (v Verdict) String() string {
	if v == Retreat {
		return "retreat"
	}
	return "stay"
}

// Rule is a condition → verdict pair. The engine evaluates rules by priority
// and the first match in a category decides it.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Category     string      // rules only compete within a category
	ConditionSrc string      // expr source
	program      *vm.Program // compiled bytecode
	Verdict      Verdict
}
