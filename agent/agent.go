package agent

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/nstehr/vimy/vimy-combat/battle"
	"github.com/nstehr/vimy/vimy-combat/config"
	"github.com/nstehr/vimy/vimy-combat/ipc"
)

// Agent serves battle requests for a single client session.
type Agent struct {
	Conn   *ipc.Connection
	Client string
	// Limit caps how many battles of one request run at once.
	Limit int
}

func New(conn *ipc.Connection) *Agent {
	return &Agent{Conn: conn, Limit: runtime.NumCPU()}
}

// Register wires the agent's handlers into its connection.
func (a *Agent) Register() {
	a.Conn.RegisterHandler(ipc.TypeHello, a.HandleHello)
	a.Conn.RegisterHandler(ipc.TypeBattle, a.HandleBattle)
}

// HandleHello completes the handshake so the client knows the service is ready.
func (a *Agent) HandleHello(_ context.Context, env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := env.Decode(&hello); err != nil {
		return nil, err
	}

	a.Client = hello.Client
	if a.Conn != nil {
		a.Conn.Client = hello.Client
	}
	slog.Info("client identified", "client", a.Client, "version", hello.Version)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleBattle fights the requested scenario once per seed and replies with
// every result. Request errors are answered with an error envelope carrying
// the request id.
func (a *Agent) HandleBattle(ctx context.Context, env ipc.Envelope) (*ipc.Envelope, error) {
	var req ipc.BattleMessage
	if err := env.Decode(&req); err != nil {
		return nil, err
	}

	results, err := a.Resolve(ctx, req)
	if err != nil {
		slog.Error("battle request failed", "client", a.Client, "id", req.ID, "error", err)
		reply, err := ipc.NewEnvelope(ipc.TypeError, ipc.ErrorMessage{ID: req.ID, Error: err.Error()})
		if err != nil {
			return nil, err
		}
		return &reply, nil
	}

	summary := battle.Summarize(results)
	slog.Info("battle request resolved", "client", a.Client, "id", req.ID,
		"battles", summary.Battles, "outcomes", summary.Outcomes, "meanRounds", summary.MeanRounds)

	reply, err := ipc.NewEnvelope(ipc.TypeBattleResult, ipc.BattleResultMessage{
		ID:      req.ID,
		Results: results,
		Summary: summary,
	})
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// Resolve runs a battle request without touching the wire.
func (a *Agent) Resolve(ctx context.Context, req ipc.BattleMessage) ([]battle.Result, error) {
	if len(req.Scenario) == 0 {
		return nil, fmt.Errorf("request %q: no scenario", req.ID)
	}
	sc, err := config.ParseJSON(req.Scenario)
	if err != nil {
		return nil, err
	}
	if req.AutoResolve != nil {
		sc.AutoResolve = *req.AutoResolve
	}
	script, err := NewScript(req.Orders)
	if err != nil {
		return nil, err
	}

	seeds := req.Seeds
	if len(seeds) == 0 {
		seeds = []uint64{sc.Seed}
	}
	results, err := battle.RunSeeds(ctx, seeds, a.Limit, func(uint64) (battle.Options, error) {
		opts, err := sc.Options()
		opts.Commander = script
		return opts, err
	})
	if err != nil {
		return nil, err
	}
	if !req.Events {
		for i := range results {
			results[i].Events = nil
		}
	}
	return results, nil
}
