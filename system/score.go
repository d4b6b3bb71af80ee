package system

import (
	"github.com/lixenwraith/pulse-arena/engine"
	"github.com/lixenwraith/pulse-arena/event"
	"github.com/lixenwraith/pulse-arena/parameter"
)

// ScoreSystem turns scoring events into points and session counters
type ScoreSystem struct {
	playerDown bool
}

// NewScoreSystem creates the score system
func NewScoreSystem() *ScoreSystem {
	s := &ScoreSystem{}
	s.Init()
	return s
}

// Init resets session state for new game
func (s *ScoreSystem) Init() {
	s.playerDown = false
}

// Name returns system's name
func (s *ScoreSystem) Name() string {
	return "score"
}

// Priority returns the system's priority
func (s *ScoreSystem) Priority() int {
	return parameter.PriorityScore
}

// EventTypes returns the event types ScoreSystem handles
func (s *ScoreSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventActorKilled,
		event.EventDeathDeferred,
		event.EventArmorSegmentDestroyed,
		event.EventAngerTriggered,
		event.EventPlayerDown,
		event.EventGameReset,
	}
}

// HandleEvent processes scoring events
func (s *ScoreSystem) HandleEvent(ctx *engine.SimulationContext, ev event.GameEvent) {
	t := ctx.Telemetry
	switch ev.Type {
	case event.EventGameReset:
		s.Init()
	case event.EventActorKilled:
		p, ok := ev.Payload.(*event.ActorKilledPayload)
		if !ok {
			return
		}
		t.Kills.Add(1)
		base := ctx.Config.Score.Points[p.Archetype.String()]
		t.Score.Add(int64(float64(base) * p.BonusMultiplier))
	case event.EventDeathDeferred:
		t.DeferredDeaths.Add(1)
	case event.EventArmorSegmentDestroyed:
		t.ArmorBroken.Add(1)
	case event.EventAngerTriggered:
		t.AngerTriggers.Add(1)
	case event.EventPlayerDown:
		if !s.playerDown {
			s.playerDown = true
			ctx.Log.Printf("score: player down, final score %d", t.Score.Load())
		}
	}
}

// PlayerDown reports whether the player has fallen this session
func (s *ScoreSystem) PlayerDown() bool {
	return s.playerDown
}

// Update is a no-op; scoring is event driven
func (s *ScoreSystem) Update(ctx *engine.SimulationContext) {}
