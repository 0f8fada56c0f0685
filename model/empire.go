package model

// EmpireID identifies a side in combat. Monsters share one pseudo-empire.
type EmpireID int

const MonsterEmpire EmpireID = -1

// DefaultRetreatRatio is used for empires with no leader-specific threshold.
const DefaultRetreatRatio = 1.0

// Empire carries the per-side data combat reads: the leader personality that
// selects a retreat doctrine, the empire-wide antidote level that blunts
// bio-weapons, and whether the empire is AI-controlled.
type Empire struct {
	ID       EmpireID
	Name     string
	Leader   string
	Antidote int
	AI       bool
}

// Diplomacy answers relation queries between two empires. It is owned by the
// strategic layer; combat only reads it.
type Diplomacy interface {
	Hostile(a, b EmpireID) bool
	Allied(a, b EmpireID) bool
	Pacted(a, b EmpireID) bool
	// WantsWar reports whether a intends to fight b despite an existing pact.
	WantsWar(a, b EmpireID) bool
	// RetreatRatio is the enemy/ally force ratio above which a's stacks flee.
	RetreatRatio(a EmpireID) float64
}

type empirePair struct{ a, b EmpireID }

func pairOf(a, b EmpireID) empirePair {
	if a > b {
		a, b = b, a
	}
	return empirePair{a, b}
}

// Relations is a static Diplomacy snapshot taken when combat begins.
type Relations struct {
	allied map[empirePair]bool
	pacted map[empirePair]bool
	war    map[[2]EmpireID]bool // directed: war[{a,b}] means a wants war on b
	ratios map[EmpireID]float64
}

func NewRelations() *Relations {
	return &Relations{
		allied: make(map[empirePair]bool),
		pacted: make(map[empirePair]bool),
		war:    make(map[[2]EmpireID]bool),
		ratios: make(map[EmpireID]float64),
	}
}

func (r *Relations) Ally(a, b EmpireID) { r.allied[pairOf(a, b)] = true }
func (r *Relations) Pact(a, b EmpireID) { r.pacted[pairOf(a, b)] = true }

// DeclareWar marks a as wanting war on b, overriding a pact between them.
func (r *Relations) DeclareWar(a, b EmpireID) { r.war[[2]EmpireID{a, b}] = true }

func (r *Relations) SetRetreatRatio(e EmpireID, v float64) { r.ratios[e] = v }

func (r *Relations) Allied(a, b EmpireID) bool {
	if a == b {
		return true
	}
	if a == MonsterEmpire || b == MonsterEmpire {
		return false
	}
	return r.allied[pairOf(a, b)]
}

func (r *Relations) Pacted(a, b EmpireID) bool {
	if a == b || a == MonsterEmpire || b == MonsterEmpire {
		return false
	}
	return r.pacted[pairOf(a, b)]
}

func (r *Relations) WantsWar(a, b EmpireID) bool {
	return r.war[[2]EmpireID{a, b}]
}

// Hostile: monsters fight everyone, allies never fight, a pact holds unless
// either side has declared war.
func (r *Relations) Hostile(a, b EmpireID) bool {
	if a == b {
		return false
	}
	if a == MonsterEmpire || b == MonsterEmpire {
		return true
	}
	if r.Allied(a, b) {
		return false
	}
	if r.Pacted(a, b) {
		return r.WantsWar(a, b) || r.WantsWar(b, a)
	}
	return true
}

func (r *Relations) RetreatRatio(e EmpireID) float64 {
	if v, ok := r.ratios[e]; ok && v > 0 {
		return v
	}
	return DefaultRetreatRatio
}
