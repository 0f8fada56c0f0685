// Package battle drives a combat from setup to outcome: it validates the
// participants, orders stacks by initiative each round, hands every stack its
// decision turn, and detects victory, stalemate and the round cap.
package battle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/nstehr/vimy/vimy-combat/model"
	"github.com/nstehr/vimy/vimy-combat/rules"
	"github.com/nstehr/vimy/vimy-combat/weapons"
)

// DefaultMaxRounds caps a battle that never reaches a decision.
const DefaultMaxRounds = 100

// ErrInvalidSides is returned when the participants do not form exactly two
// opposing sides.
var ErrInvalidSides = errors.New("battle needs exactly two sides")

// Commander plays human-controlled stacks when the battle is not
// auto-resolved. It must leave the stack in a consistent state and return
// the turn's final state.
type Commander interface {
	TakeTurn(ctx context.Context, c *model.Combat, s *model.Stack) rules.TurnState
}

// Options describes a battle. Stacks are added to the roster in order, which
// is also the final initiative tie-break.
type Options struct {
	Name      string
	Grid      *model.Grid
	Empires   []*model.Empire
	Diplomacy model.Diplomacy
	Stacks    []*model.Stack
	// Wards maps an escort's name to the name of the stack it defends.
	Wards       map[string]string
	Seed        uint64
	Rand        model.Rand
	Sink        model.Sink
	AutoResolve bool
	MaxRounds   int
	Commander   Commander
}

// Battle is one running combat.
type Battle struct {
	Combat    *model.Combat
	Log       *Log
	Captain   *rules.Captain
	commander Commander
	name      string
	seed      uint64
	maxRounds int
}

// New validates opts and places every stack on the grid.
func New(opts Options) (*Battle, error) {
	grid := opts.Grid
	if grid == nil {
		grid = model.NewGrid(model.DefaultGridWidth, model.DefaultGridHeight)
	}
	diplomacy := opts.Diplomacy
	if diplomacy == nil {
		diplomacy = model.NewRelations()
	}
	empires := make(map[model.EmpireID]*model.Empire, len(opts.Empires))
	for _, e := range opts.Empires {
		empires[e.ID] = e
	}

	if err := validateStacks(grid, opts.Stacks); err != nil {
		return nil, err
	}
	if n := len(blocs(diplomacy, opts.Stacks)); n != 2 {
		return nil, fmt.Errorf("%w: found %d", ErrInvalidSides, n)
	}

	rng := opts.Rand
	if rng == nil {
		rng = model.NewRand(opts.Seed)
	}
	log := &Log{}
	var sink model.Sink = log
	if opts.Sink != nil {
		sink = model.Sinks{log, opts.Sink}
	}

	c := &model.Combat{
		ID:          uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "battle/%s/%d", opts.Name, opts.Seed)),
		Grid:        grid,
		Roster:      model.NewRoster(),
		Empires:     empires,
		Diplomacy:   diplomacy,
		Rand:        rng,
		Sink:        sink,
		AutoResolve: opts.AutoResolve,
	}
	byName := make(map[string]*model.Stack, len(opts.Stacks))
	for _, s := range opts.Stacks {
		if e, ok := empires[s.Empire]; ok && !s.IsMonster() {
			s.AI = e.AI
		}
		c.Roster.Add(s)
		byName[s.Name] = s
	}
	if err := assignWards(diplomacy, byName, opts.Wards); err != nil {
		return nil, err
	}

	maxRounds := opts.MaxRounds
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	return &Battle{
		Combat:    c,
		Log:       log,
		Captain:   rules.NewCaptain(),
		commander: opts.Commander,
		name:      opts.Name,
		seed:      opts.Seed,
		maxRounds: maxRounds,
	}, nil
}

func validateStacks(grid *model.Grid, stacks []*model.Stack) error {
	if len(stacks) == 0 {
		return errors.New("battle has no stacks")
	}
	names := make(map[string]bool, len(stacks))
	cells := make(map[model.Cell]string, len(stacks))
	for _, s := range stacks {
		switch {
		case s.Name == "":
			return errors.New("stack without a name")
		case names[s.Name]:
			return fmt.Errorf("duplicate stack name %q", s.Name)
		case s.IsMissile():
			return fmt.Errorf("stack %q: missile salvos cannot start a battle", s.Name)
		case s.Design == nil && !s.IsColony():
			return fmt.Errorf("stack %q: no design", s.Name)
		case s.Num <= 0 && !s.IsColony():
			return fmt.Errorf("stack %q: count must be positive", s.Name)
		case !grid.Valid(s.Cell()):
			return fmt.Errorf("stack %q: cell (%d,%d) is off the grid or blocked", s.Name, s.X, s.Y)
		}
		if other, ok := cells[s.Cell()]; ok {
			return fmt.Errorf("stacks %q and %q share cell (%d,%d)", other, s.Name, s.X, s.Y)
		}
		names[s.Name] = true
		cells[s.Cell()] = s.Name
	}
	return nil
}

func assignWards(d model.Diplomacy, byName map[string]*model.Stack, wards map[string]string) error {
	for escort, ward := range wards {
		e, ok := byName[escort]
		if !ok {
			return fmt.Errorf("ward escort %q: no such stack", escort)
		}
		w, ok := byName[ward]
		if !ok {
			return fmt.Errorf("ward of %q: no such stack %q", escort, ward)
		}
		if e == w {
			return fmt.Errorf("stack %q cannot ward itself", escort)
		}
		if !d.Allied(e.Empire, w.Empire) {
			return fmt.Errorf("stack %q cannot ward %q of another side", escort, ward)
		}
		e.Ward = w.ID
	}
	return nil
}

// blocs groups the empires fielding stacks into sides: an empire joins the
// first bloc holding one of its allies, and blocs it links together merge.
// Monsters always stand alone.
func blocs(d model.Diplomacy, stacks []*model.Stack) [][]model.EmpireID {
	var out [][]model.EmpireID
	seen := make(map[model.EmpireID]bool)
	for _, s := range stacks {
		if s.IsMissile() || seen[s.Empire] {
			continue
		}
		seen[s.Empire] = true
		var merged []model.EmpireID
		at := -1
		kept := make([][]model.EmpireID, 0, len(out)+1)
		for _, bloc := range out {
			if !alliedWithAny(d, s.Empire, bloc) {
				kept = append(kept, bloc)
				continue
			}
			if at < 0 {
				at = len(kept)
				kept = append(kept, nil)
			}
			merged = append(merged, bloc...)
		}
		merged = append(merged, s.Empire)
		if at < 0 {
			kept = append(kept, merged)
		} else {
			kept[at] = merged
		}
		out = kept
	}
	return out
}

func alliedWithAny(d model.Diplomacy, e model.EmpireID, bloc []model.EmpireID) bool {
	for _, m := range bloc {
		if d.Allied(m, e) {
			return true
		}
	}
	return false
}

// Run plays rounds until the battle is decided, stalls, hits the round cap,
// or ctx is cancelled. Cancellation is only observed between stack turns, so
// a move-then-attack step is never cut in half; the partial result is
// returned with ctx's error.
func (b *Battle) Run(ctx context.Context) (Result, error) {
	slog.Info("battle started", "battle", b.Combat.ID, "name", b.name,
		"stacks", len(b.Combat.Roster.Stacks()), "auto", b.Combat.AutoResolve)

	for {
		if outcome, over := b.status(); over {
			return b.finish(outcome), nil
		}
		if b.Combat.Round >= b.maxRounds {
			return b.finish(OutcomeRoundLimit), nil
		}
		if err := b.playRound(ctx); err != nil {
			res := b.finish(OutcomeCancelled)
			return res, err
		}
	}
}

func (b *Battle) playRound(ctx context.Context) error {
	b.Combat.Round++
	b.Log.Round = b.Combat.Round
	order := b.initiative()
	for _, s := range order {
		s.ResetTurn()
	}
	slog.Debug("round started", "round", b.Combat.Round, "stacks", len(order))

	for _, s := range order {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.Active() {
			continue
		}
		if _, over := b.status(); over {
			return nil
		}
		state := b.turn(ctx, s)
		slog.Debug("turn ended", "round", b.Combat.Round, "stack", s.Name, "state", state)
	}
	return nil
}

// initiative orders the active stacks by maneuverability, then speed, then
// roster order.
func (b *Battle) initiative() []*model.Stack {
	order := b.Combat.Roster.Active()
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].Maneuver != order[j].Maneuver {
			return order[i].Maneuver > order[j].Maneuver
		}
		return order[i].MaxMove > order[j].MaxMove
	})
	return order
}

func (b *Battle) turn(ctx context.Context, s *model.Stack) rules.TurnState {
	if s.AI || b.Combat.AutoResolve || s.IsMissile() {
		return b.Captain.TakeTurn(b.Combat, s)
	}
	if s.InStasis {
		s.InStasis = false
		return rules.TurnComplete
	}
	if b.commander == nil {
		return rules.TurnComplete
	}
	return b.commander.TakeTurn(ctx, b.Combat, s)
}

// status reports whether the battle is over and how.
func (b *Battle) status() (Outcome, bool) {
	var fighters, missiles []*model.Stack
	for _, s := range b.Combat.Roster.Active() {
		if s.IsMissile() {
			missiles = append(missiles, s)
			continue
		}
		fighters = append(fighters, s)
	}

	hostile, threat := false, false
	for _, a := range fighters {
		for _, d := range fighters {
			if !b.Combat.Hostile(a, d) {
				continue
			}
			hostile = true
			if weapons.Threatens(a, d) {
				threat = true
			}
		}
	}
	switch {
	case len(fighters) == 0:
		return OutcomeAnnihilated, true
	case !hostile:
		return OutcomeVictory, true
	case !threat && len(missiles) == 0:
		return OutcomeStalemate, true
	}
	return "", false
}

func (b *Battle) finish(outcome Outcome) Result {
	res := Result{
		ID:      b.Combat.ID,
		Name:    b.name,
		Seed:    b.seed,
		Rounds:  b.Combat.Round,
		Outcome: outcome,
		Events:  b.Log.Events(),
	}
	seen := make(map[model.EmpireID]bool)
	for _, s := range b.Combat.Roster.Stacks() {
		if s.IsMissile() {
			continue
		}
		res.Stacks = append(res.Stacks, report(s))
		if outcome == OutcomeVictory && s.Active() && !seen[s.Empire] {
			seen[s.Empire] = true
			res.Winners = append(res.Winners, s.Empire)
		}
	}
	slog.Info("battle finished", "battle", b.Combat.ID, "outcome", outcome,
		"rounds", res.Rounds, "winners", res.Winners)
	return res
}
