package model

import (
	"fmt"
	"strings"
)

// WeaponKind is the closed set of weapon archetypes. Resolution dispatches on
// it with a switch; there is no per-weapon behaviour attached to the data.
type WeaponKind uint8

const (
	Beam WeaponKind = iota
	Missile
	Torpedo
	Bomb
	BioWeapon
)

var weaponKindNames = [...]string{"beam", "missile", "torpedo", "bomb", "bio"}

func (k WeaponKind) String() string {
	if int(k) < len(weaponKindNames) {
		return weaponKindNames[k]
	}
	return fmt.Sprintf("weapon(%d)", k)
}

// ParseWeaponKind maps a catalog name ("beam", "missile", ...) to its kind.
func ParseWeaponKind(s string) (WeaponKind, error) {
	for i, n := range weaponKindNames {
		if strings.EqualFold(s, n) {
			return WeaponKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weapon kind %q", s)
}

// Weapon is an immutable catalog entry shared by every design that mounts it.
// It owns no per-battle state.
type Weapon struct {
	Name      string
	Kind      WeaponKind
	MinDamage int
	MaxDamage int
	Range     int // firing range in cells; for missiles also the fuel
	Shots     int // shots per mount per volley (doses for bio-weapons)

	AttackBonus       int     // added to the firer's attack level
	ShieldPierce      float64 // fraction of target shields ignored (0 = full shields)
	ColonyReduction   float64 // beams: fraction of damage lost against colonies
	DamageLossPerCell float64 // torpedoes: damage lost per cell beyond the first
	ArmorReduction    float64 // unit hits: plating stripped per penetrating hit, as a fraction of unit max hits
	Speed             int     // missiles: cells flown per turn
	Ammo              int     // volleys per battle; 0 means unlimited
}

// GroundOnly reports whether the weapon can only strike colonies.
func (w *Weapon) GroundOnly() bool {
	return w.Kind == Bomb || w.Kind == BioWeapon
}

// AttacksShips reports whether the weapon can engage ship, monster and
// missile-base units.
func (w *Weapon) AttacksShips() bool { return !w.GroundOnly() }

// ShieldFactor is the per-weapon multiplier applied to target shields.
func (w *Weapon) ShieldFactor() float64 {
	return clamp01(1 - w.ShieldPierce)
}

// ArmorFactor is the clamped plating fraction a penetrating hit strips.
func (w *Weapon) ArmorFactor() float64 { return clamp01(w.ArmorReduction) }

// ColonyFactor is the damage multiplier beams apply against colonies.
func (w *Weapon) ColonyFactor() float64 {
	if w.Kind != Beam {
		return 1
	}
	return clamp01(1 - w.ColonyReduction)
}

// SpecialKind is the closed set of special devices.
type SpecialKind uint8

const (
	Nullifier SpecialKind = iota // ship-disabling: strips attack, speed or defense
	Stasis                       // ship-disabling: freezes the target for a turn
	Pulsar                       // area effect: damages every adjacent hostile ship
)

var specialKindNames = [...]string{"nullifier", "stasis", "pulsar"}

func (k SpecialKind) String() string {
	if int(k) < len(specialKindNames) {
		return specialKindNames[k]
	}
	return fmt.Sprintf("special(%d)", k)
}

// ParseSpecialKind maps a catalog name to its kind.
func ParseSpecialKind(s string) (SpecialKind, error) {
	for i, n := range specialKindNames {
		if strings.EqualFold(s, n) {
			return SpecialKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown special kind %q", s)
}

// Special is an immutable catalog entry for a non-weapon device.
type Special struct {
	Name         string
	Kind         SpecialKind
	Range        int
	MinDamage    int
	MaxDamage    int
	Chance       float64 // nullifier per-unit success chance
	ShieldPierce float64
}

// Shots is always one activation per unit per turn.
func (s *Special) Shots() int { return 1 }

// GroundOnly is false for every special.
func (s *Special) GroundOnly() bool { return false }

// AttacksShips is true for every special.
func (s *Special) AttacksShips() bool { return true }

// Damaging reports whether the special deals hit point damage.
func (s *Special) Damaging() bool { return s.Kind == Pulsar && s.MaxDamage > 0 }

// ShieldFactor is the multiplier applied to target shields.
func (s *Special) ShieldFactor() float64 { return clamp01(1 - s.ShieldPierce) }

// Mount is a weapon slot on a design: Count copies of the same weapon.
type Mount struct {
	Weapon *Weapon
	Count  int
}

// Design is a finished ship, monster or missile-base design.
type Design struct {
	Name           string
	Hits           float64 // hit points per unit
	Attack         int
	BeamDefense    int
	MissileDefense int
	Maneuver       int
	Shield         float64
	Speed          int
	Cost           float64
	Retreat        bool // design carries the capability to disengage
	Mounts         []Mount
	Specials       []*Special
}

// Armed reports whether the design carries anything it can fire.
func (d *Design) Armed() bool {
	return d != nil && (len(d.Mounts) > 0 || len(d.Specials) > 0)
}

// Catalog holds the weapon, special and design entries for one battle.
// It is built once and passed in; nothing reads a global list.
type Catalog struct {
	Weapons  map[string]*Weapon
	Specials map[string]*Special
	Designs  map[string]*Design
}

func NewCatalog() *Catalog {
	return &Catalog{
		Weapons:  make(map[string]*Weapon),
		Specials: make(map[string]*Special),
		Designs:  make(map[string]*Design),
	}
}

func clamp01(v float64) float64 {
	return min(1, max(0, v))
}
