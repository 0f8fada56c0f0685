package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nstehr/vimy/vimy-combat/battle"
	"github.com/nstehr/vimy/vimy-combat/config"
	"github.com/nstehr/vimy/vimy-combat/model"
)

var outcomeOrder = []battle.Outcome{
	battle.OutcomeVictory,
	battle.OutcomeAnnihilated,
	battle.OutcomeStalemate,
	battle.OutcomeRoundLimit,
	battle.OutcomeCancelled,
}

func formatReport(sc *config.Scenario, seedBase, seedStep uint64, results []battle.Result, verbose bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Battle Report ===\n")
	fmt.Fprintf(&b, "scenario=%s runs=%d seed_base=%d seed_step=%d auto=%v\n\n",
		sc.Name, len(results), seedBase, seedStep, sc.AutoResolve)

	if verbose {
		for i, r := range results {
			writeRun(&b, i+1, r)
		}
	}
	writeAggregate(&b, sc, battle.Summarize(results))
	return b.String()
}

func writeRun(b *strings.Builder, n int, r battle.Result) {
	fmt.Fprintf(b, "--- Run %d (seed=%d) ---\n", n, r.Seed)
	fmt.Fprintf(b, "outcome=%s rounds=%d winners=%s\n", r.Outcome, r.Rounds, empireList(r.Winners))
	for _, s := range r.Stacks {
		fmt.Fprintf(b, "  %-18s %-8s empire=%-3d num=%-3d hits=%-7.1f %s\n",
			s.Name, s.Kind, s.Empire, s.Num, s.Hits, fate(s))
	}
	fmt.Fprintln(b)
}

func writeAggregate(b *strings.Builder, sc *config.Scenario, s battle.Summary) {
	fmt.Fprintln(b, "=== Aggregate ===")
	fmt.Fprintf(b, "battles=%d mean_rounds=%.1f max_rounds=%d\n", s.Battles, s.MeanRounds, s.MaxRounds)

	parts := make([]string, 0, len(outcomeOrder))
	for _, o := range outcomeOrder {
		if n := s.Outcomes[o]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", o, n))
		}
	}
	fmt.Fprintf(b, "outcomes: %s\n", strings.Join(parts, " "))

	names := make(map[model.EmpireID]string, len(sc.Empires))
	for _, e := range sc.Empires {
		names[model.EmpireID(e.ID)] = e.Name
	}
	fmt.Fprintln(b, "win_rate:")
	for _, e := range s.Empires() {
		label := names[e]
		if label == "" {
			label = fmt.Sprintf("empire %d", e)
		}
		fmt.Fprintf(b, "  %-16s %5.1f%%\n", label, 100*s.WinRate(e))
	}

	if len(s.Destroyed)+len(s.Retreated) > 0 {
		fmt.Fprintln(b, "losses:")
		for _, name := range stackNames(s) {
			fmt.Fprintf(b, "  %-18s destroyed=%-3d retreated=%d\n", name, s.Destroyed[name], s.Retreated[name])
		}
	}
}

func fate(s battle.StackReport) string {
	switch {
	case s.Destroyed:
		return "destroyed"
	case s.Retreated:
		return "retreated"
	}
	return "holding"
}

func empireList(ids []model.EmpireID) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(int(id))
	}
	return strings.Join(parts, ",")
}

func stackNames(s battle.Summary) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range []map[string]int{s.Destroyed, s.Retreated} {
		for name := range m {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	sort.Strings(out)
	return out
}
