// Package config loads battle scenarios from YAML or JSON and turns them into
// battle options.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultMissileSpeed is the flight speed of missiles that set none.
const DefaultMissileSpeed = 4

// Scenario is the on-disk description of one battle.
type Scenario struct {
	Name        string        `yaml:"name" json:"name"`
	Seed        uint64        `yaml:"seed" json:"seed"`
	AutoResolve bool          `yaml:"auto_resolve" json:"auto_resolve"`
	MaxRounds   int           `yaml:"max_rounds" json:"max_rounds"`
	Grid        GridSpec      `yaml:"grid" json:"grid"`
	Empires     []EmpireSpec  `yaml:"empires" json:"empires"`
	Relations   RelationsSpec `yaml:"relations" json:"relations"`
	Weapons     []WeaponSpec  `yaml:"weapons" json:"weapons"`
	Specials    []SpecialSpec `yaml:"specials" json:"specials"`
	Designs     []DesignSpec  `yaml:"designs" json:"designs"`
	Stacks      []StackSpec   `yaml:"stacks" json:"stacks"`
}

type CellSpec struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

type GridSpec struct {
	Width     int        `yaml:"width" json:"width"`
	Height    int        `yaml:"height" json:"height"`
	Asteroids []CellSpec `yaml:"asteroids" json:"asteroids"`
}

// EmpireSpec describes a participant. Leader is a personality name that sets
// the retreat ratio unless RetreatRatio pins one.
type EmpireSpec struct {
	ID           int     `yaml:"id" json:"id"`
	Name         string  `yaml:"name" json:"name"`
	Leader       string  `yaml:"leader" json:"leader"`
	Antidote     int     `yaml:"antidote" json:"antidote"`
	Human        bool    `yaml:"human" json:"human"`
	RetreatRatio float64 `yaml:"retreat_ratio" json:"retreat_ratio"`
}

// RelationsSpec lists empire pairs. Everyone not allied or pacted is hostile;
// War lists directed [aggressor, victim] pairs that override a pact.
type RelationsSpec struct {
	Allies [][2]int `yaml:"allies" json:"allies"`
	Pacts  [][2]int `yaml:"pacts" json:"pacts"`
	War    [][2]int `yaml:"war" json:"war"`
}

type WeaponSpec struct {
	Name              string  `yaml:"name" json:"name"`
	Kind              string  `yaml:"kind" json:"kind"`
	MinDamage         int     `yaml:"min_damage" json:"min_damage"`
	MaxDamage         int     `yaml:"max_damage" json:"max_damage"`
	Range             int     `yaml:"range" json:"range"`
	Shots             int     `yaml:"shots" json:"shots"`
	AttackBonus       int     `yaml:"attack_bonus" json:"attack_bonus"`
	ShieldPierce      float64 `yaml:"shield_pierce" json:"shield_pierce"`
	ColonyReduction   float64 `yaml:"colony_reduction" json:"colony_reduction"`
	DamageLossPerCell float64 `yaml:"damage_loss_per_cell" json:"damage_loss_per_cell"`
	ArmorReduction    float64 `yaml:"armor_reduction" json:"armor_reduction"`
	Speed             int     `yaml:"speed" json:"speed"`
	Ammo              int     `yaml:"ammo" json:"ammo"`
}

type SpecialSpec struct {
	Name         string  `yaml:"name" json:"name"`
	Kind         string  `yaml:"kind" json:"kind"`
	Range        int     `yaml:"range" json:"range"`
	MinDamage    int     `yaml:"min_damage" json:"min_damage"`
	MaxDamage    int     `yaml:"max_damage" json:"max_damage"`
	Chance       float64 `yaml:"chance" json:"chance"`
	ShieldPierce float64 `yaml:"shield_pierce" json:"shield_pierce"`
}

type MountSpec struct {
	Weapon string `yaml:"weapon" json:"weapon"`
	Count  int    `yaml:"count" json:"count"`
}

// DesignSpec is a ship, base or monster design. Retreat defaults to true.
type DesignSpec struct {
	Name           string      `yaml:"name" json:"name"`
	Hits           float64     `yaml:"hits" json:"hits"`
	Attack         int         `yaml:"attack" json:"attack"`
	BeamDefense    int         `yaml:"beam_defense" json:"beam_defense"`
	MissileDefense int         `yaml:"missile_defense" json:"missile_defense"`
	Maneuver       int         `yaml:"maneuver" json:"maneuver"`
	Shield         float64     `yaml:"shield" json:"shield"`
	Speed          int         `yaml:"speed" json:"speed"`
	Cost           float64     `yaml:"cost" json:"cost"`
	Retreat        *bool       `yaml:"retreat" json:"retreat"`
	Mounts         []MountSpec `yaml:"mounts" json:"mounts"`
	Specials       []string    `yaml:"specials" json:"specials"`
}

// StackSpec places a stack. Kind is ship, colony or monster. For colonies
// Count is the number of bases and Design their base design (optional).
type StackSpec struct {
	Name       string   `yaml:"name" json:"name"`
	Kind       string   `yaml:"kind" json:"kind"`
	Empire     int      `yaml:"empire" json:"empire"`
	Design     string   `yaml:"design" json:"design"`
	Count      int      `yaml:"count" json:"count"`
	At         CellSpec `yaml:"at" json:"at"`
	Population float64  `yaml:"population" json:"population"`
	Factories  float64  `yaml:"factories" json:"factories"`
	Ward       string   `yaml:"ward" json:"ward"`
}

// Load reads a scenario file. Files ending in .json are parsed as JSON,
// anything else as YAML.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data)
	}
	return Parse(data)
}

// Parse decodes a YAML scenario, applies defaults and validates it.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal scenario: %w", err)
	}
	return prepare(&s)
}

// ParseJSON is Parse for the JSON form of the schema.
func ParseJSON(data []byte) (*Scenario, error) {
	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal scenario: %w", err)
	}
	return prepare(&s)
}

func prepare(s *Scenario) (*Scenario, error) {
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
