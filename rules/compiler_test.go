package rules

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/expr-lang/expr"
)

func TestCompileDoctrineBalanced(t *testing.T) {
	rules := CompileDoctrine(DefaultDoctrine())

	if len(rules) == 0 {
		t.Fatal("CompileDoctrine returned no rules")
	}

	// Verify all rules compile with expr
	for _, r := range rules {
		_, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			t.Errorf("rule %q failed to compile: %v\ncondition: %s", r.Name, err, r.ConditionSrc)
		}
		if r.Category != CategoryRetreat {
			t.Errorf("rule %q in category %q, want %q", r.Name, r.Category, CategoryRetreat)
		}
	}

	names := map[string]bool{
		"hold-unarmed-manual":     false,
		"hold-cannot-retreat":     false,
		"hold-missiles-in-flight": false,
		"flee-pacted-colony":      false,
		"hold-defend-ward":        false,
		"hold-untargetable":       false,
		"flee-overwhelming-force": false,
	}
	for _, r := range rules {
		if _, ok := names[r.Name]; ok {
			names[r.Name] = true
		}
	}
	for name, found := range names {
		if !found {
			t.Errorf("rule %q missing from compiled doctrine", name)
		}
	}
}

func TestCompileDoctrineInterpolatesRatio(t *testing.T) {
	rules := CompileDoctrine(Doctrine{Name: "Pinned", RetreatRatio: 3.5})
	var force *Rule
	for _, r := range rules {
		if r.Name == "flee-overwhelming-force" {
			force = r
		}
	}
	if force == nil {
		t.Fatal("flee-overwhelming-force missing")
	}
	if !strings.Contains(force.ConditionSrc, "> 3.5)") {
		t.Errorf("condition %q does not carry the ratio", force.ConditionSrc)
	}
	if force.Verdict != Retreat {
		t.Errorf("verdict = %v, want retreat", force.Verdict)
	}
}

func TestCompileDoctrineRuleOrder(t *testing.T) {
	engine, err := NewEngine(CompileDoctrine(DefaultDoctrine()))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	want := []string{
		"hold-unarmed-manual",
		"hold-cannot-retreat",
		"hold-missiles-in-flight",
		"flee-pacted-colony",
		"hold-defend-ward",
		"hold-untargetable",
		"flee-overwhelming-force",
	}
	got := engine.Rules()
	if len(got) != len(want) {
		t.Fatalf("got %d rules, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("rule %d = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestCompileDoctrineKeepsRatioPrecision(t *testing.T) {
	for _, ratio := range []float64{1.00004, 0.333333333, 2.5, 10} {
		var cond string
		for _, r := range CompileDoctrine(Doctrine{Name: "Pinned", RetreatRatio: ratio}) {
			if r.Name == "flee-overwhelming-force" {
				cond = r.ConditionSrc
			}
		}
		want := fmt.Sprintf("> %s)", strconv.FormatFloat(ratio, 'f', -1, 64))
		if !strings.Contains(cond, want) {
			t.Errorf("ratio %v: condition %q, want %q", ratio, cond, want)
		}
		if _, err := expr.Compile(cond, expr.Env(RuleEnv{}), expr.AsBool()); err != nil {
			t.Errorf("ratio %v: condition does not compile: %v", ratio, err)
		}
	}
}
