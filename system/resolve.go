package system

import (
	"github.com/lixenwraith/pulse-arena/combat"
	"github.com/lixenwraith/pulse-arena/core"
	"github.com/lixenwraith/pulse-arena/engine"
	"github.com/lixenwraith/pulse-arena/event"
)

// ResolveHit applies one damage event to target and routes the three-way result
// Every damage path (area, projectile, melee, slash) goes through here so that
// kill and deferral side effects are produced exactly once
func ResolveHit(ctx *engine.SimulationContext, target *combat.Actor, ev combat.DamageEvent) combat.DamageOutcome {
	ev.Target = target.ID
	pending := target.Death.Pending()

	out := target.TakeDamage(ev, ctx)
	if out.Ignored {
		if pending && ctx.Config.Death.PendingHitCues {
			ctx.Cue(target.Archetype, core.CueHit)
		}
		return out
	}

	if out.AngleUnknown {
		ctx.Telemetry.UnknownAngles.Add(1)
		ctx.Log.Printf("damage: actor %d hit with unusable angle %v, armor bypassed", target.ID, ev.ImpactAngle)
	}

	if out.Forwarded > 0 {
		ctx.Cue(target.Archetype, core.CueHit)
		if target.Archetype == core.ArchetypePlayer {
			ctx.Emit(event.EventPlayerDamaged, &event.PlayerDamagedPayload{
				Amount:    out.Forwarded,
				Remaining: target.Health,
				Source:    ev.Source,
			})
		}
	}

	switch out.Result {
	case combat.ResultDeferred:
		ctx.Emit(event.EventDeathDeferred, &event.DeathDeferredPayload{
			ActorID:    target.ID,
			Archetype:  target.Archetype,
			Cause:      ev.Source.Cause,
			GraceTicks: target.Death.RemainingTicks,
		})
		ctx.Cue(target.Archetype, core.CueDeathPending)
	case combat.ResultKilled:
		CommitKill(ctx, target, ev.Source)
	}
	return out
}

// CommitKill produces the side effects of an actor reaching Dead
// Callers guarantee it runs once per actor: on ResultKilled or on grace expiry
func CommitKill(ctx *engine.SimulationContext, a *combat.Actor, src core.SourceTag) {
	ctx.Cue(a.Archetype, core.CueKilled)

	if a.Archetype == core.ArchetypePlayer {
		ctx.Emit(event.EventPlayerDown, &event.PlayerDamagedPayload{Source: src})
		return
	}

	ctx.Emit(event.EventActorKilled, &event.ActorKilledPayload{
		ActorID:         a.ID,
		Archetype:       a.Archetype,
		Cause:           src.Cause,
		Source:          src,
		BonusMultiplier: ctx.Config.BonusFor(src.Cause),
		Position:        a.Pos,
	})

	if a.Stats.ExplosionRadius > 0 && a.Stats.ExplosionDamage > 0 {
		cause, _ := core.ParseCause(a.Stats.ExplosionCause)
		ctx.Emit(event.EventAreaDamage, &event.AreaDamagePayload{
			Origin:       a.Pos,
			Radius:       a.Stats.ExplosionRadius,
			Amount:       a.Stats.ExplosionDamage,
			FalloffFloor: a.Stats.ExplosionFloor,
			Source:       core.SourceTag{ID: a.ID, Archetype: a.Archetype, Cause: cause},
		})
	}
}

// sourceOf builds the attribution tag for an actor's own attack
func sourceOf(a *combat.Actor) core.SourceTag {
	cause, ok := core.ParseCause(a.Stats.Cause)
	if !ok {
		cause = core.CauseProjectile
	}
	return core.SourceTag{ID: a.ID, Archetype: a.Archetype, Cause: cause}
}

// hitFrom builds a damage event arriving at target from origin
// Coincident positions leave the angle unknown, which bypasses armor
func hitFrom(target *combat.Actor, origin core.Vec2, amount float64, src core.SourceTag) combat.DamageEvent {
	ev := combat.DamageEvent{
		Target: target.ID,
		Amount: amount,
		Source: src,
		Origin: origin,
	}
	if deg, ok := combat.RelativeImpactAngle(origin, target.Pos, target.Facing); ok {
		ev = ev.WithAngle(deg)
	}
	return ev
}
