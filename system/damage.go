package system

import (
	"math"

	"github.com/lixenwraith/pulse-arena/engine"
	"github.com/lixenwraith/pulse-arena/event"
	"github.com/lixenwraith/pulse-arena/parameter"
)

// DamageRouter fans area damage out to the player and every actor in range
// Area events queued during one tick's dispatch are applied on the next tick
type DamageRouter struct {
	pending []event.AreaDamagePayload
}

// NewDamageRouter creates the area damage router
func NewDamageRouter() *DamageRouter {
	r := &DamageRouter{}
	r.Init()
	return r
}

// Init drops queued area events
func (r *DamageRouter) Init() {
	r.pending = r.pending[:0]
}

// Name returns system's name
func (r *DamageRouter) Name() string {
	return "damage"
}

// Priority returns the system's priority
func (r *DamageRouter) Priority() int {
	return parameter.PriorityDamage
}

// EventTypes returns the event types DamageRouter handles
func (r *DamageRouter) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventAreaDamage,
		event.EventGameReset,
	}
}

// HandleEvent queues area damage for the next update
func (r *DamageRouter) HandleEvent(ctx *engine.SimulationContext, ev event.GameEvent) {
	switch ev.Type {
	case event.EventGameReset:
		r.Init()
	case event.EventAreaDamage:
		if p, ok := ev.Payload.(*event.AreaDamagePayload); ok {
			r.pending = append(r.pending, *p)
		}
	}
}

// Update applies queued area events
func (r *DamageRouter) Update(ctx *engine.SimulationContext) {
	if len(r.pending) == 0 {
		return
	}
	events := r.pending
	r.pending = nil
	r.Apply(ctx, events)
}

// Apply resolves each area event against the player and every actor
// Returns the number of targets hit
func (r *DamageRouter) Apply(ctx *engine.SimulationContext, events []event.AreaDamagePayload) int {
	hits := 0
	for _, ev := range events {
		if ev.Radius <= 0 || ev.Amount <= 0 {
			continue
		}
		r2 := ev.Radius * ev.Radius
		for _, a := range ctx.Actors.All() {
			if a.ID == ev.Source.ID || a.Dead() {
				continue
			}
			d2 := ev.Origin.DistSq(a.Pos)
			if d2 > r2 {
				continue
			}
			amount := Falloff(ev, d2)
			if amount <= 0 {
				continue
			}
			ResolveHit(ctx, a, hitFrom(a, ev.Origin, amount, ev.Source))
			hits++
		}
	}
	return hits
}

// Falloff returns the damage dealt at squared distance d2 from the origin
// Without a floor the full amount applies across the radius
func Falloff(ev event.AreaDamagePayload, d2 float64) float64 {
	if ev.FalloffFloor <= 0 || ev.Radius <= 0 {
		return ev.Amount
	}
	t := math.Sqrt(d2) / ev.Radius
	if t > 1 {
		t = 1
	}
	return ev.Amount - (ev.Amount-ev.FalloffFloor)*t
}
