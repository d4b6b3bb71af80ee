package combat

import (
	"sort"

	"github.com/lixenwraith/pulse-arena/core"
)

// Roster owns the live actors of a session, iterated in ID order
type Roster struct {
	actors map[core.ActorID]*Actor
	order  []core.ActorID
	player core.ActorID
}

// NewRoster returns an empty roster
func NewRoster() *Roster {
	return &Roster{actors: make(map[core.ActorID]*Actor)}
}

// Add inserts an actor; a player archetype becomes the roster's player
func (r *Roster) Add(a *Actor) {
	if _, exists := r.actors[a.ID]; exists {
		return
	}
	r.actors[a.ID] = a
	r.order = append(r.order, a.ID)
	if len(r.order) > 1 && r.order[len(r.order)-2] > a.ID {
		sort.Slice(r.order, func(i, j int) bool { return r.order[i] < r.order[j] })
	}
	if a.Archetype == core.ArchetypePlayer {
		r.player = a.ID
	}
}

// Get returns the actor with id
func (r *Roster) Get(id core.ActorID) (*Actor, bool) {
	a, ok := r.actors[id]
	return a, ok
}

// Player returns the player actor, nil when absent
func (r *Roster) Player() *Actor {
	if r.player == 0 {
		return nil
	}
	return r.actors[r.player]
}

// All returns every actor in ascending ID order
func (r *Roster) All() []*Actor {
	out := make([]*Actor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.actors[id])
	}
	return out
}

// Len returns the number of actors including the player
func (r *Roster) Len() int {
	return len(r.order)
}

// Hostiles counts non-player actors that have not committed to Dead
func (r *Roster) Hostiles() int {
	n := 0
	for _, id := range r.order {
		a := r.actors[id]
		if a.Archetype != core.ArchetypePlayer && !a.Dead() {
			n++
		}
	}
	return n
}

// Sweep removes non-player actors that reached Dead and returns them
func (r *Roster) Sweep() []*Actor {
	var removed []*Actor
	kept := r.order[:0]
	for _, id := range r.order {
		a := r.actors[id]
		if a.Dead() && a.Archetype != core.ArchetypePlayer {
			removed = append(removed, a)
			delete(r.actors, id)
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return removed
}

// Occupants returns index entries for every actor that is not Dead
// Pending actors still occupy space
func (r *Roster) Occupants() []core.Occupant {
	out := make([]core.Occupant, 0, len(r.order))
	for _, id := range r.order {
		a := r.actors[id]
		if !a.Dead() {
			out = append(out, a.Occupant())
		}
	}
	return out
}

// NearestAlive returns the closest Alive actor of archetype, skipping exclude
func (r *Roster) NearestAlive(archetype core.Archetype, from core.Vec2, exclude core.ActorID) *Actor {
	var best *Actor
	bestDist := 0.0
	for _, id := range r.order {
		a := r.actors[id]
		if id == exclude || a.Archetype != archetype || !a.Alive() {
			continue
		}
		d := from.DistSq(a.Pos)
		if best == nil || d < bestDist {
			best = a
			bestDist = d
		}
	}
	return best
}

// SelectTarget picks the actor's attack target
// An Angry actor goes after the nearest living member of its focus archetype,
// falling back to the player when none remain
func (r *Roster) SelectTarget(a *Actor) *Actor {
	if anger, ok := a.Anger(); ok && anger.Active {
		if t := r.NearestAlive(anger.Focus, a.Pos, a.ID); t != nil {
			return t
		}
	}
	p := r.Player()
	if p == nil || !p.Alive() || p.ID == a.ID {
		return nil
	}
	return p
}

// Clear removes every actor
func (r *Roster) Clear() {
	r.actors = make(map[core.ActorID]*Actor)
	r.order = r.order[:0]
	r.player = 0
}
