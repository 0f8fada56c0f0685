package ipc

import (
	"encoding/json"

	"github.com/nstehr/vimy/vimy-combat/battle"
)

// Message types on the wire. Clients must use the same strings.
const (
	TypeHello        = "hello"
	TypeAck          = "ack"
	TypeBattle       = "battle"
	TypeBattleResult = "battle_result"
	TypeError        = "error"
)

type HelloMessage struct {
	Client  string `json:"client"`
	Version string `json:"version,omitempty"`
}

type AckMessage struct {
	Status string `json:"status"`
}

// BattleMessage asks the service to fight a scenario. Scenario holds the
// scenario document in JSON form. Each seed is fought once; with no seeds
// the scenario's own seed is used.
type BattleMessage struct {
	ID          string          `json:"id"`
	Scenario    json.RawMessage `json:"scenario"`
	Seeds       []uint64        `json:"seeds,omitempty"`
	AutoResolve *bool           `json:"auto_resolve,omitempty"`
	// Orders script the turns of human-controlled stacks.
	Orders []Order `json:"orders,omitempty"`
	// Events asks for the per-battle event log in the reply.
	Events bool `json:"events,omitempty"`
}

type BattleResultMessage struct {
	ID      string          `json:"id"`
	Results []battle.Result `json:"results"`
	Summary battle.Summary  `json:"summary"`
}

type ErrorMessage struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
}
