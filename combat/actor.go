package combat

import (
	"fmt"
	"time"

	"github.com/lixenwraith/pulse-arena/config"
	"github.com/lixenwraith/pulse-arena/core"
	"github.com/lixenwraith/pulse-arena/event"
)

// ActorCore is the state shared by every archetype
type ActorCore struct {
	ID        core.ActorID
	Archetype core.Archetype
	Pos       core.Vec2
	Facing    float64 // radians, world frame
	Health    float64
	MaxHealth float64

	// Cooldown is the remaining wall time before the next attack may be attempted
	Cooldown time.Duration

	Death DeathMachine
}

// Payload is the archetype-specific variant carried by an actor
// The set is closed: PlayerPayload, RangedPayload, ChargePayload, MeleePayload, ArmorPayload
type Payload interface {
	payload()
}

// PlayerPayload is the free actor's state
type PlayerPayload struct {
	SlashCooldown time.Duration
}

// RangedPayload is light-ranged state
type RangedPayload struct {
	Volleys int
}

// ChargePayload is heavy-ranged state; a charge fires once its timer elapses
type ChargePayload struct {
	Charging        bool
	ChargeRemaining time.Duration
	Aim             float64 // radians, locked at charge start
}

// MeleePayload is fast-melee state
type MeleePayload struct {
	Strikes int
}

// ArmorPayload is heavy-armor state: directional plates plus anger
type ArmorPayload struct {
	Armor Armor
	Anger Anger
}

func (*PlayerPayload) payload() {}
func (*RangedPayload) payload() {}
func (*ChargePayload) payload() {}
func (*MeleePayload) payload() {}
func (*ArmorPayload) payload() {}

// Actor is a combat actor: shared core plus archetype payload
type Actor struct {
	ActorCore
	Stats   config.ArchetypeConfig
	Payload Payload
}

// Alive reports whether the actor participates in movement and targeting
func (a *Actor) Alive() bool {
	return a.Death.Phase == PhaseAlive
}

// Dead reports whether the death sequence has committed
func (a *Actor) Dead() bool {
	return a.Death.Phase == PhaseDead
}

// Occupant returns the spatial index entry for the actor
func (a *Actor) Occupant() core.Occupant {
	return core.Occupant{ID: a.ID, Archetype: a.Archetype, Pos: a.Pos}
}

// Anger returns the anger machine for archetypes that carry one
func (a *Actor) Anger() (*Anger, bool) {
	if p, ok := a.Payload.(*ArmorPayload); ok && a.Stats.Angers {
		return &p.Anger, true
	}
	return nil, false
}

// TakeDamage is the single damage entry point
// Armor notifications and anger transitions are emitted through n; the death
// transition is reported in the outcome for the caller to route exactly once
func (a *Actor) TakeDamage(ev DamageEvent, n Notifier) DamageOutcome {
	if a.Death.Phase != PhaseAlive {
		return DamageOutcome{Result: ResultAlive, Ignored: true}
	}

	var out DamageOutcome
	forward := ev.Amount

	switch p := a.Payload.(type) {
	case *ArmorPayload:
		deg, ok := ev.angle()
		out.AngleUnknown = ev.AngleKnown && !ok
		res := p.Armor.Absorb(ev.Amount, deg, ok)
		out.Segment = res.Segment
		out.Absorbed = res.Absorbed
		forward = res.Overflow
		a.notifyArmor(p, res, n)

	case *PlayerPayload, *RangedPayload, *ChargePayload, *MeleePayload:
		_, ok := ev.angle()
		out.AngleUnknown = ev.AngleKnown && !ok

	default:
		panic(fmt.Sprintf("combat: unhandled payload %T", a.Payload))
	}

	out.Forwarded = forward
	if forward <= 0 {
		return out
	}

	out.Result = a.Death.apply(&a.Health, ev, forward)
	if out.Result == ResultAlive {
		if anger, ok := a.Anger(); ok && anger.RecordHit(ev.Source.Archetype) {
			n.Emit(event.EventAngerTriggered, &event.AngerPayload{
				ActorID:   a.ID,
				Archetype: a.Archetype,
				Focus:     anger.Focus,
			})
			n.Cue(a.Archetype, core.CueAngerTriggered)
		}
	}
	return out
}

func (a *Actor) notifyArmor(p *ArmorPayload, res ArmorResult, n Notifier) {
	if res.Bypassed {
		return
	}
	if res.Destroyed {
		n.Emit(event.EventArmorSegmentDestroyed, &event.ArmorSegmentPayload{
			ActorID:   a.ID,
			Archetype: a.Archetype,
			Segment:   res.Segment,
		})
		n.Cue(a.Archetype, core.CueArmorDestroyed)
		return
	}
	n.Emit(event.EventArmorSegmentDamaged, &event.ArmorSegmentPayload{
		ActorID:           a.ID,
		Archetype:         a.Archetype,
		Segment:           res.Segment,
		RemainingFraction: p.Armor.Segments[res.Segment].Fraction(),
	})
	n.Cue(a.Archetype, core.CueArmorDamaged)
}

// TickTimers advances cooldowns and sub-machines by one tick
// dt is wall time for cooldowns, dtTicks the normalized tick delta for tick-based timers
// Returns true when a pending death committed on this tick
func (a *Actor) TickTimers(dt time.Duration, dtTicks float64, n Notifier) bool {
	if a.Cooldown > 0 {
		a.Cooldown = max(0, a.Cooldown-dt)
	}

	switch p := a.Payload.(type) {
	case *PlayerPayload:
		if p.SlashCooldown > 0 {
			p.SlashCooldown = max(0, p.SlashCooldown-dt)
		}
	case *ChargePayload:
		if p.Charging && a.Alive() {
			p.ChargeRemaining -= dt
		}
	case *ArmorPayload:
		if a.Alive() && p.Anger.Tick(dtTicks) {
			n.Emit(event.EventAngerCalmed, &event.AngerPayload{
				ActorID:   a.ID,
				Archetype: a.Archetype,
			})
			n.Cue(a.Archetype, core.CueAngerCalmed)
		}
	case *RangedPayload, *MeleePayload:
	default:
		panic(fmt.Sprintf("combat: unhandled payload %T", a.Payload))
	}

	return a.Death.tick(&a.Health, dtTicks)
}
