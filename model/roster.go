package model

import "github.com/mlange-42/ark/ecs"

// Nobody is the cleared weak reference.
var Nobody = ecs.Entity{}

// crew links an entity to the stack it represents.
type crew struct {
	stack *Stack
}

// Roster is the active-stack table owned by the turn driver. Stacks are
// entities in an ECS world; their entity handle is the stack id, and weak
// references held by other stacks go stale as soon as the entity is removed.
type Roster struct {
	world *ecs.World
	crews *ecs.Map[crew]
	spawn *ecs.Map1[crew]
	all   []*Stack
}

func NewRoster() *Roster {
	w := ecs.NewWorld(64)
	return &Roster{
		world: w,
		crews: ecs.NewMap[crew](w),
		spawn: ecs.NewMap1[crew](w),
	}
}

// Add registers s and assigns its id.
func (r *Roster) Add(s *Stack) ecs.Entity {
	s.ID = r.spawn.NewEntity(&crew{stack: s})
	r.all = append(r.all, s)
	return s.ID
}

// Get resolves a weak reference. It returns nil for the zero id and for
// stacks that have left combat.
func (r *Roster) Get(id ecs.Entity) *Stack {
	if id.IsZero() || !r.world.Alive(id) {
		return nil
	}
	c := r.crews.Get(id)
	if c == nil {
		return nil
	}
	return c.stack
}

// Remove drops s from the live table. The stack stays in Stacks for
// reporting.
func (r *Roster) Remove(s *Stack) {
	if s.ID.IsZero() || !r.world.Alive(s.ID) {
		return
	}
	r.world.RemoveEntity(s.ID)
}

// Stacks returns every stack ever added, in insertion order.
func (r *Roster) Stacks() []*Stack { return r.all }

// Active returns the stacks still in combat, in insertion order.
func (r *Roster) Active() []*Stack {
	out := make([]*Stack, 0, len(r.all))
	for _, s := range r.all {
		if s.Active() && r.world.Alive(s.ID) {
			out = append(out, s)
		}
	}
	return out
}

// Occupancy is a fresh snapshot of the cells held by active stacks. Missiles
// fly over the grid and hold no cell.
func (r *Roster) Occupancy() map[Cell]*Stack {
	occ := make(map[Cell]*Stack, len(r.all))
	for _, s := range r.Active() {
		if s.IsMissile() {
			continue
		}
		occ[s.Cell()] = s
	}
	return occ
}

// At returns the active non-missile stack on c, if any.
func (r *Roster) At(c Cell) *Stack {
	for _, s := range r.Active() {
		if !s.IsMissile() && s.Cell() == c {
			return s
		}
	}
	return nil
}
