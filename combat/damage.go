package combat

import (
	"math"

	"github.com/lixenwraith/pulse-arena/core"
	"github.com/lixenwraith/pulse-arena/event"
	"github.com/lixenwraith/pulse-arena/vmath"
)

// DamageResult is the three-way outcome of a damage entry point
type DamageResult uint8

const (
	// ResultAlive means no death transition happened on this call
	ResultAlive DamageResult = iota
	// ResultDeferred means the call moved the actor into PendingDeath
	ResultDeferred
	// ResultKilled means the call moved the actor into Dead
	ResultKilled
)

func (r DamageResult) String() string {
	switch r {
	case ResultAlive:
		return "alive"
	case ResultDeferred:
		return "deferred"
	case ResultKilled:
		return "killed"
	}
	return "unknown"
}

// DamageEvent is one hit on one target
type DamageEvent struct {
	Target core.ActorID
	Amount float64
	// ImpactAngle is the bearing of the hit origin relative to the target's facing,
	// in degrees; only read when AngleKnown is set
	ImpactAngle float64
	AngleKnown  bool
	Source      core.SourceTag
	Origin      core.Vec2
}

// WithAngle returns a copy with a known impact angle
func (ev DamageEvent) WithAngle(deg float64) DamageEvent {
	ev.ImpactAngle = deg
	ev.AngleKnown = true
	return ev
}

// angle returns the impact angle and whether it is usable for armor routing
func (ev DamageEvent) angle() (float64, bool) {
	if !ev.AngleKnown || !vmath.IsFinite(ev.ImpactAngle) {
		return 0, false
	}
	return ev.ImpactAngle, true
}

// RelativeImpactAngle returns the bearing of origin as seen from a target at pos
// facing facingRad, in degrees within (-180, 180]
// The second value is false when origin coincides with pos
func RelativeImpactAngle(origin, pos core.Vec2, facingRad float64) (float64, bool) {
	d := origin.Sub(pos)
	if d.IsZero() {
		return math.NaN(), false
	}
	return vmath.NormalizeDegrees((d.Angle() - facingRad) * vmath.RadToDeg), true
}

// DamageOutcome reports how one damage call was distributed
type DamageOutcome struct {
	Result DamageResult

	// Segment is the plate that took the hit, SegmentNone on the bypass path
	Segment core.Segment

	// Absorbed is the amount taken by armor; Forwarded is what reached the death machine
	// Absorbed + Forwarded == amount for armored actors
	Absorbed  float64
	Forwarded float64

	// AngleUnknown is set when a known angle was NaN or infinite and armor was bypassed
	AngleUnknown bool

	// Ignored is set when the actor was already PendingDeath or Dead
	Ignored bool
}

// Notifier receives the side-effect events produced inside actor state machines
type Notifier interface {
	Emit(t event.EventType, payload any)
	Cue(archetype core.Archetype, kind core.CueKind)
}
