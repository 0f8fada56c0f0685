package model

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

// Rand is the random source used for hit and damage rolls. *rand.Rand from
// math/rand/v2 satisfies it; tests substitute scripted sources.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// NewRand returns a seeded PCG source.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed>>8|3))
}

// Sink receives presentation events. Calls are fire-and-forget; combat logic
// never depends on what a sink does.
type Sink interface {
	StackMoved(s *Stack, from, to Cell)
	AttackDrawn(src, tgt *Stack, weapon string, damage float64, killed int)
	MissDrawn(src, tgt *Stack, weapon string)
	StackDestroyed(s *Stack)
	StackRetreated(s *Stack)
}

// NopSink discards every event. Used in headless resolution.
type NopSink struct{}

func (NopSink) StackMoved(*Stack, Cell, Cell)                    {}
func (NopSink) AttackDrawn(*Stack, *Stack, string, float64, int) {}
func (NopSink) MissDrawn(*Stack, *Stack, string)                 {}
func (NopSink) StackDestroyed(*Stack)                            {}
func (NopSink) StackRetreated(*Stack)                            {}

// Sinks fans events out to several sinks in order.
type Sinks []Sink

func (ss Sinks) StackMoved(s *Stack, from, to Cell) {
	for _, k := range ss {
		k.StackMoved(s, from, to)
	}
}

func (ss Sinks) AttackDrawn(src, tgt *Stack, weapon string, damage float64, killed int) {
	for _, k := range ss {
		k.AttackDrawn(src, tgt, weapon, damage, killed)
	}
}

func (ss Sinks) MissDrawn(src, tgt *Stack, weapon string) {
	for _, k := range ss {
		k.MissDrawn(src, tgt, weapon)
	}
}

func (ss Sinks) StackDestroyed(s *Stack) {
	for _, k := range ss {
		k.StackDestroyed(s)
	}
}

func (ss Sinks) StackRetreated(s *Stack) {
	for _, k := range ss {
		k.StackRetreated(s)
	}
}

// Combat is the shared state of one battle, handed by reference into every
// engine call. Nothing in it is cached across calls by the engine.
type Combat struct {
	ID          uuid.UUID
	Grid        *Grid
	Roster      *Roster
	Empires     map[EmpireID]*Empire
	Diplomacy   Diplomacy
	Rand        Rand
	Sink        Sink
	AutoResolve bool
	Round       int
}

// Events returns the presentation sink, never nil.
func (c *Combat) Events() Sink {
	if c.Sink == nil {
		return NopSink{}
	}
	return c.Sink
}

// Hostile reports whether a and b are on opposing sides.
func (c *Combat) Hostile(a, b *Stack) bool {
	if a == nil || b == nil || a == b {
		return false
	}
	return c.Diplomacy.Hostile(a.Empire, b.Empire)
}

// Antidote is the bio-weapon protection of an empire's colonies.
func (c *Combat) Antidote(e EmpireID) int {
	if emp, ok := c.Empires[e]; ok {
		return emp.Antidote
	}
	return 0
}

// Destroy removes s from combat as destroyed.
func (c *Combat) Destroy(s *Stack) {
	if !s.Active() {
		return
	}
	s.Destroyed = true
	s.Target = Nobody
	c.Roster.Remove(s)
	c.Events().StackDestroyed(s)
}

// Withdraw removes s from combat as retreated.
func (c *Combat) Withdraw(s *Stack) {
	if !s.Active() {
		return
	}
	s.Retreated = true
	s.Target = Nobody
	c.Roster.Remove(s)
	c.Events().StackRetreated(s)
}

// MissilesInFlight counts active missile stacks launched by s.
func (c *Combat) MissilesInFlight(s *Stack) int {
	n := 0
	for _, m := range c.Roster.Active() {
		if m.IsMissile() && m.Launch != nil && m.Launch.Source == s.ID {
			n++
		}
	}
	return n
}
