package main

import (
	"strings"
	"testing"

	"github.com/nstehr/vimy/vimy-combat/battle"
	"github.com/nstehr/vimy/vimy-combat/config"
	"github.com/nstehr/vimy/vimy-combat/model"
)

func TestFormatReport(t *testing.T) {
	sc := &config.Scenario{
		Name:    "skirmish",
		Empires: []config.EmpireSpec{{ID: 1, Name: "Humans"}, {ID: 2, Name: "Sakkra"}},
	}
	results := []battle.Result{
		{Seed: 42, Rounds: 3, Outcome: battle.OutcomeVictory, Winners: []model.EmpireID{1},
			Stacks: []battle.StackReport{
				{Name: "Lancers", Kind: "ship", Empire: 1, Num: 2, Hits: 12},
				{Name: "Screen", Kind: "ship", Empire: 2, Destroyed: true},
			}},
		{Seed: 43, Rounds: 5, Outcome: battle.OutcomeStalemate},
	}

	out := formatReport(sc, 42, 1, results, true)
	for _, want := range []string{
		"scenario=skirmish runs=2 seed_base=42 seed_step=1",
		"--- Run 1 (seed=42) ---",
		"outcome=victory rounds=3 winners=1",
		"--- Run 2 (seed=43) ---",
		"winners=-",
		"battles=2 mean_rounds=4.0 max_rounds=5",
		"outcomes: victory=1 stalemate=1",
		"Humans",
		"50.0%",
		"destroyed=1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Sakkra") {
		t.Error("an empire with no wins should not get a win-rate line")
	}

	quiet := formatReport(sc, 42, 1, results, false)
	if strings.Contains(quiet, "--- Run") {
		t.Error("per-run sections printed without -v")
	}
}
