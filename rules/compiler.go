package rules

import (
	"fmt"
	"strconv"
)

// CategoryRetreat is the category the retreat rules compete in.
const CategoryRetreat = "retreat"

// CompileDoctrine generates the retreat rule set for a doctrine.
// All conditions are built via fmt.Sprintf with interpolated values, so
// the compiler never generates invalid expr.
func CompileDoctrine(d Doctrine) []*Rule {
	d.Validate()
	var rules []*Rule

	rules = append(rules, &Rule{
		Name:         "hold-unarmed-manual",
		Priority:     1000,
		Category:     CategoryRetreat,
		ConditionSrc: `!AIControlled() && !AutoResolve() && !Armed()`,
		Verdict:      Stay,
	})

	rules = append(rules, &Rule{
		Name:         "hold-cannot-retreat",
		Priority:     950,
		Category:     CategoryRetreat,
		ConditionSrc: `!CanRetreat() || !CanMove()`,
		Verdict:      Stay,
	})

	rules = append(rules, &Rule{
		Name:         "hold-missiles-in-flight",
		Priority:     900,
		Category:     CategoryRetreat,
		ConditionSrc: `MissilesInFlight() > 0`,
		Verdict:      Stay,
	})

	rules = append(rules, &Rule{
		Name:         "flee-pacted-colony",
		Priority:     850,
		Category:     CategoryRetreat,
		ConditionSrc: `PactedColonyOwnerPresent()`,
		Verdict:      Retreat,
	})

	rules = append(rules, &Rule{
		Name:         "hold-defend-ward",
		Priority:     800,
		Category:     CategoryRetreat,
		ConditionSrc: `WardActive()`,
		Verdict:      Stay,
	})

	rules = append(rules, &Rule{
		Name:         "hold-untargetable",
		Priority:     750,
		Category:     CategoryRetreat,
		ConditionSrc: `!TargetableByEnemy()`,
		Verdict:      Stay,
	})

	rules = append(rules, &Rule{
		Name:         "flee-overwhelming-force",
		Priority:     500,
		Category:     CategoryRetreat,
		ConditionSrc: fmt.Sprintf(`EnemyKills() > 0 && (AllyKills() <= 0 || EnemyKills() / AllyKills() > %s)`, strconv.FormatFloat(d.RetreatRatio, 'f', -1, 64)),
		Verdict:      Retreat,
	})

	return rules
}
