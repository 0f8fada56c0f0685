package agent

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nstehr/vimy/vimy-combat/battle"
	"github.com/nstehr/vimy/vimy-combat/ipc"
)

const rout = `{
	"name": "rout",
	"seed": 5,
	"empires": [{"id": 1, "name": "Humans"}, {"id": 2, "name": "Alkari"}],
	"weapons": [{"name": "laser", "kind": "beam", "min_damage": 1, "max_damage": 4, "range": 1}],
	"designs": [
		{"name": "warship", "hits": 10, "attack": 2, "speed": 2, "cost": 50, "mounts": [{"weapon": "laser", "count": 2}]},
		{"name": "scout", "hits": 3, "speed": 3, "cost": 5}
	],
	"stacks": [
		{"name": "Lancer", "empire": 1, "design": "warship", "at": {"x": 0, "y": 0}},
		{"name": "Picket", "empire": 2, "design": "scout", "at": {"x": 1, "y": 0}}
	]
}`

// duel has a human warship and an immobile, unarmed hulk that cannot flee.
const duel = `{
	"name": "duel",
	"max_rounds": 1,
	"empires": [{"id": 1, "human": true}, {"id": 2}],
	"weapons": [{"name": "laser", "kind": "beam", "min_damage": 1, "max_damage": 4, "range": 1}],
	"designs": [
		{"name": "warship", "hits": 10, "attack": 2, "speed": 2, "mounts": [{"weapon": "laser", "count": 2}]},
		{"name": "hulk", "hits": 500, "speed": 0, "retreat": false}
	],
	"stacks": [
		{"name": "Lancer", "empire": 1, "design": "warship", "at": {"x": 0, "y": 0}},
		{"name": "Hulk", "empire": 2, "design": "hulk", "at": {"x": 3, "y": 0}}
	]
}`

func TestHandleHello(t *testing.T) {
	a := New(nil)
	env, err := ipc.NewEnvelope(ipc.TypeHello, ipc.HelloMessage{Client: "bench"})
	if err != nil {
		t.Fatalf("NewEnvelope failed: %v", err)
	}
	reply, err := a.HandleHello(context.Background(), env)
	if err != nil {
		t.Fatalf("HandleHello failed: %v", err)
	}
	if reply.Type != ipc.TypeAck || a.Client != "bench" {
		t.Errorf("reply = %s, client = %q", reply.Type, a.Client)
	}
}

func TestResolveSeeds(t *testing.T) {
	a := New(nil)
	results, err := a.Resolve(context.Background(), ipc.BattleMessage{
		ID:       "r1",
		Scenario: json.RawMessage(rout),
		Seeds:    []uint64{3, 1, 2},
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, want := range []uint64{3, 1, 2} {
		r := results[i]
		if r.Seed != want {
			t.Errorf("result %d seed = %d, want %d", i, r.Seed, want)
		}
		if r.Outcome != battle.OutcomeVictory || len(r.Winners) != 1 || r.Winners[0] != 1 {
			t.Errorf("result %d = %s winners %v", i, r.Outcome, r.Winners)
		}
		if r.Events != nil {
			t.Errorf("result %d carries events without asking", i)
		}
	}
}

func TestResolveDefaultSeed(t *testing.T) {
	results, err := New(nil).Resolve(context.Background(), ipc.BattleMessage{Scenario: json.RawMessage(rout), Events: true})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(results) != 1 || results[0].Seed != 5 {
		t.Fatalf("results = %+v", results)
	}
	if len(results[0].Events) == 0 {
		t.Error("events were requested but not returned")
	}
}

func TestScriptedOrders(t *testing.T) {
	results, err := New(nil).Resolve(context.Background(), ipc.BattleMessage{
		Scenario: json.RawMessage(duel),
		Events:   true,
		Orders: []ipc.Order{
			{Round: 1, Stack: "Lancer", Type: ipc.OrderMove, X: 2, Y: 0},
			{Round: 1, Stack: "Lancer", Type: ipc.OrderAttack, Target: "Hulk"},
		},
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	r := results[0]
	if r.Outcome != battle.OutcomeRoundLimit || r.Rounds != 1 {
		t.Errorf("outcome = %s after %d rounds", r.Outcome, r.Rounds)
	}
	var moved, fired bool
	for _, e := range r.Events {
		if e.Stack != "Lancer" {
			continue
		}
		switch e.Kind {
		case battle.EventMoved:
			moved = e.Detail == "(0,0) → (2,0)"
		case battle.EventAttack, battle.EventMiss:
			fired = e.Target == "Hulk"
		}
	}
	if !moved || !fired {
		t.Errorf("moved=%v fired=%v, events:\n%s", moved, fired, battle.FormatEvents(r.Events))
	}
}

func TestUnscriptedHumanHolds(t *testing.T) {
	results, err := New(nil).Resolve(context.Background(), ipc.BattleMessage{Scenario: json.RawMessage(duel), Events: true})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if n := len(results[0].Events); n != 0 {
		t.Errorf("got %d events, want none", n)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		req  ipc.BattleMessage
		want string
	}{
		{"no scenario", ipc.BattleMessage{ID: "x"}, "no scenario"},
		{"bad json", ipc.BattleMessage{Scenario: json.RawMessage(`{"stacks": 3}`)}, "scenario"},
		{"bad order", ipc.BattleMessage{
			Scenario: json.RawMessage(rout),
			Orders:   []ipc.Order{{Round: 1, Stack: "Lancer", Type: "ram"}},
		}, "unknown type"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(nil).Resolve(context.Background(), tc.req)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("err = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestHandleBattleReplies(t *testing.T) {
	a := New(nil)
	ok, err := ipc.NewEnvelope(ipc.TypeBattle, ipc.BattleMessage{ID: "good", Scenario: json.RawMessage(rout)})
	if err != nil {
		t.Fatalf("NewEnvelope failed: %v", err)
	}
	reply, err := a.HandleBattle(context.Background(), ok)
	if err != nil {
		t.Fatalf("HandleBattle failed: %v", err)
	}
	var res ipc.BattleResultMessage
	if reply.Type != ipc.TypeBattleResult || reply.Decode(&res) != nil {
		t.Fatalf("reply = %s %s", reply.Type, reply.Data)
	}
	if res.ID != "good" || res.Summary.Battles != 1 || res.Summary.Outcomes[battle.OutcomeVictory] != 1 {
		t.Errorf("result = %+v", res)
	}

	bad, err := ipc.NewEnvelope(ipc.TypeBattle, ipc.BattleMessage{ID: "bad"})
	if err != nil {
		t.Fatalf("NewEnvelope failed: %v", err)
	}
	reply, err = a.HandleBattle(context.Background(), bad)
	if err != nil {
		t.Fatalf("HandleBattle failed: %v", err)
	}
	var em ipc.ErrorMessage
	if reply.Type != ipc.TypeError || reply.Decode(&em) != nil || em.ID != "bad" {
		t.Errorf("reply = %s %s", reply.Type, reply.Data)
	}
}
