package battle

import (
	"fmt"
	"strings"

	"github.com/nstehr/vimy/vimy-combat/model"
)

// EventKind identifies the category of a presentation event recorded during
// a battle.
type EventKind string

const (
	EventMoved     EventKind = "moved"
	EventAttack    EventKind = "attack"
	EventMiss      EventKind = "miss"
	EventDestroyed EventKind = "destroyed"
	EventRetreated EventKind = "retreated"
)

// Event is one presentation callback captured by the Log. Events carry names,
// not stack pointers, so a finished log stays readable after the roster is
// gone.
type Event struct {
	Kind   EventKind `json:"kind"`
	Round  int       `json:"round"`
	Stack  string    `json:"stack"`
	Target string    `json:"target,omitempty"`
	Detail string    `json:"detail"`
}

// Log is a model.Sink that records every event in order. The battle driver
// advances Round; everything else is written through the Sink methods.
type Log struct {
	Round  int
	events []Event
}

func (l *Log) add(e Event) {
	e.Round = l.Round
	l.events = append(l.events, e)
}

func (l *Log) StackMoved(s *model.Stack, from, to model.Cell) {
	l.add(Event{
		Kind:   EventMoved,
		Stack:  s.Name,
		Detail: fmt.Sprintf("(%d,%d) → (%d,%d)", from.X, from.Y, to.X, to.Y),
	})
}

func (l *Log) AttackDrawn(src, tgt *model.Stack, weapon string, damage float64, killed int) {
	l.add(Event{
		Kind:   EventAttack,
		Stack:  src.Name,
		Target: tgt.Name,
		Detail: fmt.Sprintf("%s hit for %.1f, %d killed", weapon, damage, killed),
	})
}

func (l *Log) MissDrawn(src, tgt *model.Stack, weapon string) {
	l.add(Event{Kind: EventMiss, Stack: src.Name, Target: tgt.Name, Detail: weapon + " missed"})
}

func (l *Log) StackDestroyed(s *model.Stack) {
	l.add(Event{Kind: EventDestroyed, Stack: s.Name, Detail: "destroyed"})
}

func (l *Log) StackRetreated(s *model.Stack) {
	l.add(Event{Kind: EventRetreated, Stack: s.Name, Detail: "retreated"})
}

// Events returns the recorded events in order.
func (l *Log) Events() []Event { return l.events }

// Count returns how many events of kind were recorded.
func (l *Log) Count(kind EventKind) int {
	n := 0
	for _, e := range l.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// FormatEvents renders events one per line, grouped by round.
func FormatEvents(events []Event) string {
	if len(events) == 0 {
		return ""
	}
	var b strings.Builder
	round := -1
	for _, e := range events {
		if e.Round != round {
			round = e.Round
			fmt.Fprintf(&b, "Round %d:\n", round)
		}
		if e.Target != "" {
			fmt.Fprintf(&b, "- %s %s %s: %s\n", e.Stack, e.Kind, e.Target, e.Detail)
			continue
		}
		fmt.Fprintf(&b, "- %s %s: %s\n", e.Stack, e.Kind, e.Detail)
	}
	return b.String()
}
