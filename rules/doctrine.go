package rules

import "strings"

// Retreat ratio bounds. The ratio is the enemy/ally force ratio above which
// a stack flees.
const (
	minRetreatRatio = 0.25
	maxRetreatRatio = 10
	timidRatio      = 0.5
	boldRatio       = 2.0
)

// Doctrine is a leader's combat posture. Aggression is 0.0–1.0; the compiler
// maps it to the retreat threshold unless RetreatRatio pins one.
type Doctrine struct {
	Name         string  `json:"name" yaml:"name"`
	Rationale    string  `json:"rationale" yaml:"rationale"`
	Aggression   float64 `json:"aggression" yaml:"aggression"`
	RetreatRatio float64 `json:"retreat_ratio" yaml:"retreat_ratio"`
}

// DefaultDoctrine returns a balanced baseline doctrine.
func DefaultDoctrine() Doctrine {
	return Doctrine{
		Name:       "Balanced",
		Rationale:  "Default balanced posture",
		Aggression: 1.0 / 3,
	}
}

// personalities maps a leader personality to its aggression.
var personalities = map[string]Doctrine{
	"pacifist":   {Name: "Pacifist", Rationale: "flees anything close to an even fight", Aggression: 0.2},
	"erratic":    {Name: "Erratic", Rationale: "holds until outgunned", Aggression: 1.0 / 3},
	"honorable":  {Name: "Honorable", Rationale: "accepts a modest disadvantage", Aggression: 0.5},
	"xenophobic": {Name: "Xenophobic", Rationale: "accepts a modest disadvantage", Aggression: 0.5},
	"ruthless":   {Name: "Ruthless", Rationale: "fights at long odds", Aggression: 2.0 / 3},
	"aggressive": {Name: "Aggressive", Rationale: "only flees a crushing force", Aggression: 1.0},
}

// LeaderDoctrine returns the doctrine for a leader personality, or the
// default for unknown personalities.
func LeaderDoctrine(personality string) Doctrine {
	if d, ok := personalities[strings.ToLower(personality)]; ok {
		return d
	}
	return DefaultDoctrine()
}

// Validate clamps all weights to their valid ranges and derives the retreat
// ratio from aggression when none is pinned.
func (d *Doctrine) Validate() {
	d.Aggression = clamp(d.Aggression, 0, 1)
	if d.RetreatRatio <= 0 {
		d.RetreatRatio = lerpf(timidRatio, boldRatio, d.Aggression)
	}
	d.RetreatRatio = clamp(d.RetreatRatio, minRetreatRatio, maxRetreatRatio)
}

// Ratio returns the validated retreat ratio.
func (d Doctrine) Ratio() float64 {
	d.Validate()
	return d.RetreatRatio
}

// lerpf linearly interpolates between min and max by t (0–1), returning a float64.
func lerpf(min, max, t float64) float64 {
	return min + (max-min)*t
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
