package gate

import (
	"github.com/lixenwraith/pulse-arena/config"
	"github.com/lixenwraith/pulse-arena/core"
	"github.com/lixenwraith/pulse-arena/engine"
	"github.com/lixenwraith/pulse-arena/vmath"
)

// FriendlyFireGuard withholds hostile shots that would cross another hostile
type FriendlyFireGuard struct {
	probability float64
	tolerance   float64 // radians
	rand        vmath.Rand
}

// NewFriendlyFireGuard creates a guard drawing from r
func NewFriendlyFireGuard(cfg config.FriendlyFireConfig, r vmath.Rand) *FriendlyFireGuard {
	return &FriendlyFireGuard{
		probability: cfg.WithholdProbability,
		tolerance:   cfg.AngleToleranceDeg * vmath.DegToRad,
		rand:        r,
	}
}

// Check reports whether a shot from shooter along aim, reaching rng, is withheld
// and the first blocking actor found
// A nil index always allows the shot
func (g *FriendlyFireGuard) Check(index engine.SpatialIndex, shooter core.Occupant, aim core.Vec2, rng float64) (bool, core.ActorID) {
	if index == nil {
		return false, 0
	}

	var blocker core.ActorID
	for _, o := range index.ConeQuery(shooter.Pos, aim, rng, g.tolerance) {
		if o.ID == shooter.ID || o.Archetype == core.ArchetypePlayer {
			continue
		}
		blocker = o.ID
		break
	}
	if blocker == 0 {
		return false, 0
	}
	if !vmath.Chance(g.rand, g.probability) {
		return false, blocker
	}
	return true, blocker
}
