package system

import (
	"fmt"

	"github.com/lixenwraith/pulse-arena/combat"
	"github.com/lixenwraith/pulse-arena/core"
	"github.com/lixenwraith/pulse-arena/engine"
	"github.com/lixenwraith/pulse-arena/event"
	"github.com/lixenwraith/pulse-arena/gate"
	"github.com/lixenwraith/pulse-arena/parameter"
)

// ActorSystem advances hostile actors: timers, deferred deaths, pursuit and beat-gated attacks
// Actors update sequentially in ID order against one clock snapshot per tick
type ActorSystem struct {
	gates *gate.Table
	guard *gate.FriendlyFireGuard
}

// NewActorSystem creates the actor system
func NewActorSystem(gates *gate.Table, guard *gate.FriendlyFireGuard) *ActorSystem {
	s := &ActorSystem{
		gates: gates,
		guard: guard,
	}
	s.Init()
	return s
}

// Init resets session state for new game
func (s *ActorSystem) Init() {}

// Name returns system's name
func (s *ActorSystem) Name() string {
	return "actor"
}

// Priority returns the system's priority
func (s *ActorSystem) Priority() int {
	return parameter.PriorityActor
}

// Update runs one tick for every actor in two passes
// Timers run for all actors first so that a deferral started by an attack in the
// second pass begins its grace countdown on the next tick, whatever the IDs involved
func (s *ActorSystem) Update(ctx *engine.SimulationContext) {
	actors := ctx.Actors.All()

	for _, a := range actors {
		if a.Dead() {
			continue
		}
		if a.TickTimers(ctx.Dt, ctx.DtTicks, ctx) {
			CommitKill(ctx, a, a.Death.Captured.Source)
		}
	}

	for _, a := range actors {
		if !a.Alive() || a.Archetype == core.ArchetypePlayer {
			continue
		}

		// A running charge fires on its timer even without a live target
		s.release(ctx, a)

		target := ctx.Actors.SelectTarget(a)
		if target == nil {
			continue
		}

		s.pursue(ctx, a, target)
		s.attack(ctx, a, target)
	}
}

// release fires a heavy-ranged charge whose timer has run out, along the locked aim
func (s *ActorSystem) release(ctx *engine.SimulationContext, a *combat.Actor) {
	p, ok := a.Payload.(*combat.ChargePayload)
	if !ok || !p.Charging || p.ChargeRemaining > 0 {
		return
	}
	p.Charging = false
	s.fire(ctx, a, p.Aim)
}

// pursue faces the target and closes to preferred range
func (s *ActorSystem) pursue(ctx *engine.SimulationContext, a, target *combat.Actor) {
	d := target.Pos.Sub(a.Pos)
	if d.IsZero() {
		return
	}
	a.Facing = d.Angle()

	dist := d.Len()
	if dist <= a.Stats.PreferredRange {
		return
	}
	step := a.Stats.Speed * ctx.Dt.Seconds()
	if step > dist-a.Stats.PreferredRange {
		step = dist - a.Stats.PreferredRange
	}
	a.Pos = ctx.Config.Bounds().Clamp(a.Pos.Add(d.Normalized().Scale(step)))
}

// attack dispatches on the archetype payload
func (s *ActorSystem) attack(ctx *engine.SimulationContext, a, target *combat.Actor) {
	switch p := a.Payload.(type) {
	case *combat.RangedPayload:
		if !s.ready(ctx, a, target) {
			return
		}
		if s.withheld(ctx, a, target) {
			return
		}
		s.fire(ctx, a, a.Facing)
		p.Volleys++

	case *combat.ChargePayload:
		if p.Charging {
			return
		}
		if a.Cooldown > 0 || !s.inRange(a, target) || !s.gates.CanStartCharge(a.Archetype, ctx.State) {
			return
		}
		if s.withheld(ctx, a, target) {
			return
		}
		p.Charging = true
		p.ChargeRemaining = s.gates.ChargeDuration(a.Archetype)
		p.Aim = a.Facing
		ctx.Emit(event.EventChargeStarted, &event.ChargeStartedPayload{ActorID: a.ID, Archetype: a.Archetype})
		ctx.Cue(a.Archetype, core.CueChargeStart)

	case *combat.MeleePayload:
		if !s.ready(ctx, a, target) {
			return
		}
		s.strike(ctx, a, target)
		p.Strikes++

	case *combat.ArmorPayload:
		if !s.ready(ctx, a, target) {
			return
		}
		s.strike(ctx, a, target)

	case *combat.PlayerPayload:
	default:
		panic(fmt.Sprintf("actor: unhandled payload %T", a.Payload))
	}
}

// ready reports cooldown elapsed, target in reach and gate open on this tick's snapshot
func (s *ActorSystem) ready(ctx *engine.SimulationContext, a, target *combat.Actor) bool {
	return a.Cooldown <= 0 && s.inRange(a, target) && s.gates.Eligible(a.Archetype, ctx.State)
}

func (s *ActorSystem) inRange(a, target *combat.Actor) bool {
	reach := a.Stats.AttackRange + target.Stats.CollisionRadius
	return a.Pos.DistSq(target.Pos) <= reach*reach
}

// withheld runs the friendly-fire guard; a withheld shot still spends the cooldown
func (s *ActorSystem) withheld(ctx *engine.SimulationContext, a, target *combat.Actor) bool {
	rng := a.Pos.Dist(target.Pos)
	hold, blocker := s.guard.Check(ctx.Index, a.Occupant(), target.Pos.Sub(a.Pos), rng)
	if !hold {
		return false
	}
	a.Cooldown = a.Stats.Cooldown
	ctx.Telemetry.ShotsWithheld.Add(1)
	ctx.Emit(event.EventShotWithheld, &event.ShotWithheldPayload{
		ActorID:   a.ID,
		Archetype: a.Archetype,
		Blocker:   blocker,
	})
	ctx.Cue(a.Archetype, core.CueWithheld)
	return true
}

// fire emits a projectile descriptor along angle
func (s *ActorSystem) fire(ctx *engine.SimulationContext, a *combat.Actor, angle float64) {
	a.Cooldown = a.Stats.Cooldown
	emitProjectile(ctx, a, angle)
}

// strike applies a direct melee hit
func (s *ActorSystem) strike(ctx *engine.SimulationContext, a, target *combat.Actor) {
	a.Cooldown = a.Stats.Cooldown
	ctx.Cue(a.Archetype, core.CueFire)
	ResolveHit(ctx, target, hitFrom(target, a.Pos, a.Stats.Damage, sourceOf(a)))
}

// emitProjectile hands a descriptor to the projectile subsystem
func emitProjectile(ctx *engine.SimulationContext, a *combat.Actor, angle float64) {
	ctx.Telemetry.ShotsFired.Add(1)
	ctx.Emit(event.EventProjectileSpawn, &event.ProjectilePayload{
		Origin:   a.Pos,
		Angle:    angle,
		Speed:    a.Stats.ProjectileSpeed,
		Owner:    sourceOf(a),
		Damage:   a.Stats.Damage,
		Piercing: a.Stats.Piercing,
	})
	ctx.Cue(a.Archetype, core.CueFire)
}
