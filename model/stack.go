package model

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
)

// StackKind discriminates the concrete stack variants.
type StackKind uint8

const (
	ShipStack StackKind = iota
	MissileStack
	ColonyStack
	MonsterStack
)

var stackKindNames = [...]string{"ship", "missile", "colony", "monster"}

func (k StackKind) String() string {
	if int(k) < len(stackKindNames) {
		return stackKindNames[k]
	}
	return fmt.Sprintf("stack(%d)", k)
}

// Ground damage converts to colony losses at these rates.
const (
	PopLossPerDamage     = 0.1
	FactoryLossPerDamage = 0.05
)

// Launch is the flight state of a missile stack.
type Launch struct {
	Source ecs.Entity
	Weapon *Weapon
	Attack int
	Fuel   int
	Speed  int
}

// Stack is a group of identical units acting as one combatant. Hits is the
// remaining hit points of the front unit; every other unit is at MaxHits.
//
// Target and Ward are weak references: they are roster ids and must be
// resolved through Roster.Get, which returns nil once the referenced stack
// has left combat.
type Stack struct {
	ID     ecs.Entity
	Name   string
	Kind   StackKind
	Empire EmpireID
	Design *Design
	Num    int

	X, Y             int
	OffsetX, OffsetY float64 // render-only

	Hits           float64
	MaxHits        float64
	Move           int
	MaxMove        int
	Attack         int
	BeamDefense    int
	MissileDefense int
	Maneuver       int
	Shield         float64

	Target ecs.Entity
	Ward   ecs.Entity

	Destroyed bool
	InStasis  bool
	Retreated bool
	AI        bool

	// Colony ground state.
	Population float64
	Factories  float64

	Launch *Launch

	fired       []bool // mount volley spent this turn
	volleys     []int  // mount volleys spent this battle
	specialUsed []bool
}

func fromDesign(name string, kind StackKind, empire EmpireID, d *Design, num int, at Cell) *Stack {
	s := &Stack{
		Name:    name,
		Kind:    kind,
		Empire:  empire,
		Design:  d,
		Num:     num,
		X:       at.X,
		Y:       at.Y,
		MaxHits: 1,
		AI:      true,
	}
	if d != nil {
		s.MaxHits = max(1, d.Hits)
		s.MaxMove = max(0, d.Speed)
		s.Attack = d.Attack
		s.BeamDefense = d.BeamDefense
		s.MissileDefense = d.MissileDefense
		s.Maneuver = d.Maneuver
		s.Shield = d.Shield
		s.fired = make([]bool, len(d.Mounts))
		s.volleys = make([]int, len(d.Mounts))
		s.specialUsed = make([]bool, len(d.Specials))
	}
	s.Hits = s.MaxHits
	s.Move = s.MaxMove
	return s
}

// NewShip builds a ship stack of num units of design d.
func NewShip(name string, empire EmpireID, d *Design, num int, at Cell) *Stack {
	return fromDesign(name, ShipStack, empire, d, num, at)
}

// NewMonster builds a monster stack; monsters belong to MonsterEmpire.
func NewMonster(name string, d *Design, num int, at Cell) *Stack {
	return fromDesign(name, MonsterStack, MonsterEmpire, d, num, at)
}

// NewColony builds a colony defended by bases missile bases of design d.
// d may be nil for an undefended colony.
func NewColony(name string, empire EmpireID, d *Design, bases int, population, factories float64, at Cell) *Stack {
	s := fromDesign(name, ColonyStack, empire, d, bases, at)
	s.MaxMove, s.Move = 0, 0
	s.Population = population
	s.Factories = factories
	return s
}

// NewMissiles builds a missile salvo fired by src at target.
func NewMissiles(src *Stack, w *Weapon, count int, target ecs.Entity) *Stack {
	s := fromDesign(fmt.Sprintf("%s %s", src.Name, w.Name), MissileStack, src.Empire, nil, count, src.Cell())
	s.AI = src.AI
	s.Target = target
	s.Launch = &Launch{
		Source: src.ID,
		Weapon: w,
		Attack: src.Attack + w.AttackBonus,
		Fuel:   w.Range,
		Speed:  max(1, w.Speed),
	}
	s.MaxMove, s.Move = s.Launch.Speed, s.Launch.Speed
	return s
}

func (s *Stack) Cell() Cell { return Cell{X: s.X, Y: s.Y} }

// Active reports whether the stack is still part of the combat.
func (s *Stack) Active() bool { return s != nil && !s.Destroyed && !s.Retreated }

func (s *Stack) IsShip() bool    { return s.Kind == ShipStack }
func (s *Stack) IsMissile() bool { return s.Kind == MissileStack }
func (s *Stack) IsColony() bool  { return s.Kind == ColonyStack }
func (s *Stack) IsMonster() bool { return s.Kind == MonsterStack }

// Mobile reports whether the stack ever moves on the grid by itself.
func (s *Stack) Mobile() bool {
	return (s.Kind == ShipStack || s.Kind == MonsterStack) && s.MaxMove > 0
}

// CanMove reports whether the stack may spend move points now.
func (s *Stack) CanMove() bool {
	return s.Active() && s.Mobile() && !s.InStasis
}

// CanRetreat reports whether the stack could leave combat this turn.
func (s *Stack) CanRetreat() bool {
	return s.Kind == ShipStack && s.Design != nil && s.Design.Retreat && s.CanMove()
}

// Spend consumes n move points, never dropping below zero.
func (s *Stack) Spend(n int) {
	s.Move = max(0, s.Move-n)
}

// Mounts returns the design's weapon mounts.
func (s *Stack) Mounts() []Mount {
	if s.Design == nil {
		return nil
	}
	return s.Design.Mounts
}

// Specials returns the design's special devices.
func (s *Stack) Specials() []*Special {
	if s.Design == nil {
		return nil
	}
	return s.Design.Specials
}

// HasAmmo reports whether mount i has volleys left this battle.
func (s *Stack) HasAmmo(i int) bool {
	if s.Design == nil || i < 0 || i >= len(s.volleys) {
		return false
	}
	w := s.Design.Mounts[i].Weapon
	return w.Ammo <= 0 || s.volleys[i] < w.Ammo
}

// MountReady reports whether mount i can still fire this turn.
func (s *Stack) MountReady(i int) bool {
	if i < 0 || i >= len(s.fired) {
		return false
	}
	return !s.fired[i] && s.HasAmmo(i)
}

// MarkFired spends mount i's volley for the turn and one round of ammo.
func (s *Stack) MarkFired(i int) {
	if i < 0 || i >= len(s.fired) {
		return
	}
	s.fired[i] = true
	s.volleys[i]++
}

// SpecialReady reports whether special i can still be used this turn.
func (s *Stack) SpecialReady(i int) bool {
	return i >= 0 && i < len(s.specialUsed) && !s.specialUsed[i]
}

func (s *Stack) MarkSpecialUsed(i int) {
	if i >= 0 && i < len(s.specialUsed) {
		s.specialUsed[i] = true
	}
}

// Armed reports whether the stack has anything left to fire this battle,
// ignoring per-turn readiness.
func (s *Stack) Armed() bool {
	if !s.Active() || s.Design == nil {
		return false
	}
	if s.IsColony() && s.Num <= 0 {
		return false
	}
	for i := range s.Design.Mounts {
		if s.HasAmmo(i) {
			return true
		}
	}
	return len(s.Design.Specials) > 0
}

// ShotsRemaining counts the individual shots the stack can still fire this
// turn across every ready mount and special.
func (s *Stack) ShotsRemaining() int {
	if !s.Active() || s.InStasis || s.Design == nil || s.Num <= 0 {
		return 0
	}
	n := 0
	for i, m := range s.Design.Mounts {
		if s.MountReady(i) {
			n += m.Count * max(1, m.Weapon.Shots) * s.Num
		}
	}
	for i := range s.Design.Specials {
		if s.SpecialReady(i) {
			n += s.Num
		}
	}
	return n
}

// CanAttack reports whether the stack has any shot left this turn.
func (s *Stack) CanAttack() bool { return s.ShotsRemaining() > 0 }

// ResetTurn restores move points and per-turn weapon readiness.
func (s *Stack) ResetTurn() {
	s.Move = s.MaxMove
	clear(s.fired)
	clear(s.specialUsed)
}

// TotalHits is the hit point pool of every remaining unit.
func (s *Stack) TotalHits() float64 {
	if s.Num <= 0 {
		return 0
	}
	return float64(s.Num-1)*s.MaxHits + s.Hits
}

// TakeDamage removes dmg hit points from the pool, front unit first, carrying
// any excess into the next unit. It returns the number of units killed.
func (s *Stack) TakeDamage(dmg float64) int {
	killed := 0
	for dmg > 0 && s.Num > 0 {
		if dmg < s.Hits {
			s.Hits -= dmg
			return killed
		}
		dmg -= s.Hits
		s.Num--
		killed++
		s.Hits = s.MaxHits
	}
	return killed
}

// TakeGroundDamage converts damage on the colony surface into population
// and factory losses. It returns the population lost.
func (s *Stack) TakeGroundDamage(dmg float64) float64 {
	if dmg <= 0 {
		return 0
	}
	return s.KillPopulation(dmg*PopLossPerDamage, dmg*FactoryLossPerDamage)
}

// KillPopulation removes pop population and fact factories, floored at zero.
func (s *Stack) KillPopulation(pop, fact float64) float64 {
	lost := min(s.Population, max(0, pop))
	s.Population -= lost
	s.Factories = max(0, s.Factories-max(0, fact))
	return lost
}

// Wiped reports whether the stack has nothing left to fight with: every unit
// of a ship group is dead, or a colony has lost its whole population.
func (s *Stack) Wiped() bool {
	if s.IsColony() {
		return s.Population <= 0
	}
	return s.Num <= 0
}

func (s *Stack) String() string {
	return fmt.Sprintf("%s(%s x%d @%d,%d)", s.Name, s.Kind, s.Num, s.X, s.Y)
}
