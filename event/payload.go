package event

import (
	"github.com/lixenwraith/pulse-arena/core"
)

// ActorKilledPayload is the actor-killed scoring event
type ActorKilledPayload struct {
	ActorID         core.ActorID
	Archetype       core.Archetype
	Cause           core.Cause
	Source          core.SourceTag
	BonusMultiplier float64
	Position        core.Vec2
}

// ArmorSegmentPayload reports a plate change; RemainingFraction is 0 when destroyed
type ArmorSegmentPayload struct {
	ActorID           core.ActorID
	Archetype         core.Archetype
	Segment           core.Segment
	RemainingFraction float64
}

// DeathDeferredPayload reports the start of a grace window
type DeathDeferredPayload struct {
	ActorID    core.ActorID
	Archetype  core.Archetype
	Cause      core.Cause
	GraceTicks float64
}

// AngerPayload reports an anger transition; Focus is ArchetypeNone on calm
type AngerPayload struct {
	ActorID   core.ActorID
	Archetype core.Archetype
	Focus     core.Archetype
}

// PlayerDamagedPayload reports damage reaching the player
type PlayerDamagedPayload struct {
	Amount    float64
	Remaining float64
	Source    core.SourceTag
}

// ProjectilePayload is the projectile descriptor handed to the projectile subsystem
// Angle is in radians, world frame
type ProjectilePayload struct {
	Origin   core.Vec2
	Angle    float64
	Speed    float64
	Owner    core.SourceTag
	Damage   float64
	Piercing bool
}

// AreaDamagePayload is a radial damage event
// FalloffFloor > 0 enables linear falloff from Amount at origin to the floor at Radius
type AreaDamagePayload struct {
	Origin       core.Vec2
	Radius       float64
	Amount       float64
	FalloffFloor float64
	Source       core.SourceTag
}

// ActorSpawnedPayload reports a placement
type ActorSpawnedPayload struct {
	ActorID   core.ActorID
	Archetype core.Archetype
	Position  core.Vec2
	Strategy  string
}

// ShotWithheldPayload reports a friendly-fire hold
type ShotWithheldPayload struct {
	ActorID   core.ActorID
	Archetype core.Archetype
	Blocker   core.ActorID
}

// ChargeStartedPayload reports a charge start
type ChargeStartedPayload struct {
	ActorID   core.ActorID
	Archetype core.Archetype
}

// BeatPayload reports a beat crossing
type BeatPayload struct {
	BeatIndex     int64
	BeatInMeasure int
}
